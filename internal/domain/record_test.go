package domain_test

import (
	"testing"
	"time"

	"github.com/petmercado/petmercado/internal/domain"
)

func TestConstructors_StartPending(t *testing.T) {
	before := time.Now().UTC()
	records := []domain.Record{
		domain.NewCampaign("c-1", "u-1", domain.CampaignDetails{Title: "Castração solidária", GoalCents: 500000}),
		domain.NewIndication("i-1", "u-1", domain.IndicationDetails{Referred: domain.ReferralPetshop}),
		domain.NewFeedback("f-1", "u-1", domain.FeedbackDetails{ProviderID: "p-1", Comment: "ótimo"}),
		domain.NewContract("ct-1", "u-1", domain.ContractDetails{ProviderID: "p-1"}),
		domain.NewProduct("pr-1", "u-1", domain.ProductDetails{Name: "Ração premium", PriceCents: 12990}),
	}
	after := time.Now().UTC()

	for _, r := range records {
		if r.Status != domain.StatusPending {
			t.Errorf("%s: Status = %q, want %q", r.Kind, r.Status, domain.StatusPending)
		}
		if r.ModerationReason != "" {
			t.Errorf("%s: ModerationReason = %q, want empty", r.Kind, r.ModerationReason)
		}
		if r.OwnerID != "u-1" {
			t.Errorf("%s: OwnerID = %q, want %q", r.Kind, r.OwnerID, "u-1")
		}
		if r.CreatedAt.Before(before) || r.CreatedAt.After(after) {
			t.Errorf("%s: CreatedAt = %v, want between %v and %v", r.Kind, r.CreatedAt, before, after)
		}
		if r.StatusChangedAt != r.CreatedAt {
			t.Errorf("%s: StatusChangedAt should equal CreatedAt on a new record", r.Kind)
		}
	}
}

func TestConstructors_PayloadMatchesKind(t *testing.T) {
	r := domain.NewContract("ct-1", "u-1", domain.ContractDetails{ProviderID: "p-1"})
	if r.Contract == nil {
		t.Fatal("Contract payload should be set")
	}
	if r.Campaign != nil || r.Indication != nil || r.Feedback != nil || r.Product != nil {
		t.Error("only the contract payload should be set")
	}
}

func TestTransitions_ValidPaths(t *testing.T) {
	cases := []struct {
		kind domain.Kind
		src  domain.Status
		dst  domain.Status
	}{
		{domain.KindCampaign, domain.StatusPending, domain.CampaignActive},
		{domain.KindCampaign, domain.StatusPending, domain.CampaignDenied},
		{domain.KindCampaign, domain.CampaignActive, domain.CampaignPaused},
		{domain.KindCampaign, domain.CampaignPaused, domain.CampaignActive},
		{domain.KindCampaign, domain.CampaignActive, domain.CampaignDone},
		{domain.KindCampaign, domain.CampaignPaused, domain.CampaignDone},
		{domain.KindIndication, domain.StatusPending, domain.IndicationApproved},
		{domain.KindIndication, domain.StatusPending, domain.IndicationRejected},
		{domain.KindFeedback, domain.StatusPending, domain.FeedbackPublished},
		{domain.KindFeedback, domain.StatusPending, domain.FeedbackRejected},
		{domain.KindContract, domain.StatusPending, domain.ContractActive},
		{domain.KindContract, domain.StatusPending, domain.ContractCancelled},
		{domain.KindContract, domain.ContractActive, domain.ContractDone},
		{domain.KindContract, domain.ContractActive, domain.ContractCancelled},
		{domain.KindProduct, domain.StatusPending, domain.ProductPublished},
		{domain.KindProduct, domain.StatusPending, domain.ProductRejected},
		{domain.KindProduct, domain.ProductPublished, domain.ProductArchived},
	}

	for _, tc := range cases {
		if _, ok := domain.RuleFor(tc.kind, tc.src, tc.dst); !ok {
			t.Errorf("missing transition: %s %q → %q", tc.kind, tc.src, tc.dst)
		}
	}
}

func TestTransitions_InvalidPaths(t *testing.T) {
	// These transitions must NOT exist.
	invalid := []struct {
		kind domain.Kind
		src  domain.Status
		dst  domain.Status
	}{
		// Terminal states accept nothing.
		{domain.KindCampaign, domain.CampaignDenied, domain.CampaignActive},
		{domain.KindCampaign, domain.CampaignDone, domain.CampaignActive},
		{domain.KindIndication, domain.IndicationApproved, domain.StatusPending},
		{domain.KindIndication, domain.IndicationRejected, domain.IndicationApproved},
		{domain.KindFeedback, domain.FeedbackPublished, domain.FeedbackRejected},
		{domain.KindContract, domain.ContractDone, domain.ContractCancelled},
		{domain.KindContract, domain.ContractCancelled, domain.ContractActive},
		{domain.KindProduct, domain.ProductRejected, domain.ProductPublished},
		// Skipping intermediate states.
		{domain.KindContract, domain.StatusPending, domain.ContractDone},
		{domain.KindCampaign, domain.StatusPending, domain.CampaignPaused},
		// Statuses from another kind's machine.
		{domain.KindContract, domain.StatusPending, domain.CampaignActive},
	}

	for _, tc := range invalid {
		if _, ok := domain.RuleFor(tc.kind, tc.src, tc.dst); ok {
			t.Errorf("unexpected transition: %s %q → %q should not exist", tc.kind, tc.src, tc.dst)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := []struct {
		kind   domain.Kind
		status domain.Status
	}{
		{domain.KindCampaign, domain.CampaignDenied},
		{domain.KindCampaign, domain.CampaignDone},
		{domain.KindIndication, domain.IndicationApproved},
		{domain.KindIndication, domain.IndicationRejected},
		{domain.KindFeedback, domain.FeedbackPublished},
		{domain.KindFeedback, domain.FeedbackRejected},
		{domain.KindContract, domain.ContractDone},
		{domain.KindContract, domain.ContractCancelled},
		{domain.KindProduct, domain.ProductRejected},
		{domain.KindProduct, domain.ProductArchived},
	}
	for _, tc := range terminal {
		if !domain.IsTerminal(tc.kind, tc.status) {
			t.Errorf("%s %q should be terminal", tc.kind, tc.status)
		}
	}

	nonTerminal := []struct {
		kind   domain.Kind
		status domain.Status
	}{
		{domain.KindCampaign, domain.StatusPending},
		{domain.KindCampaign, domain.CampaignActive},
		{domain.KindCampaign, domain.CampaignPaused},
		{domain.KindContract, domain.ContractActive},
		{domain.KindProduct, domain.ProductPublished},
	}
	for _, tc := range nonTerminal {
		if domain.IsTerminal(tc.kind, tc.status) {
			t.Errorf("%s %q should not be terminal", tc.kind, tc.status)
		}
	}
}

func TestTransitions_DenialsRequireReason(t *testing.T) {
	denials := []struct {
		kind domain.Kind
		src  domain.Status
		dst  domain.Status
	}{
		{domain.KindCampaign, domain.StatusPending, domain.CampaignDenied},
		{domain.KindIndication, domain.StatusPending, domain.IndicationRejected},
		{domain.KindFeedback, domain.StatusPending, domain.FeedbackRejected},
		{domain.KindContract, domain.StatusPending, domain.ContractCancelled},
		{domain.KindContract, domain.ContractActive, domain.ContractCancelled},
		{domain.KindProduct, domain.StatusPending, domain.ProductRejected},
	}

	for _, tc := range denials {
		rule, ok := domain.RuleFor(tc.kind, tc.src, tc.dst)
		if !ok {
			t.Errorf("missing transition: %s %q → %q", tc.kind, tc.src, tc.dst)
			continue
		}
		if !rule.RequiresReason {
			t.Errorf("%s %q → %q should require a reason", tc.kind, tc.src, tc.dst)
		}
	}
}

func TestTransitions_ApprovalsAreModeratorOnly(t *testing.T) {
	approvals := []struct {
		kind domain.Kind
		dst  domain.Status
	}{
		{domain.KindCampaign, domain.CampaignActive},
		{domain.KindIndication, domain.IndicationApproved},
		{domain.KindFeedback, domain.FeedbackPublished},
		{domain.KindContract, domain.ContractActive},
		{domain.KindProduct, domain.ProductPublished},
	}

	for _, tc := range approvals {
		rule, ok := domain.RuleFor(tc.kind, domain.StatusPending, tc.dst)
		if !ok {
			t.Errorf("missing approval transition for %s", tc.kind)
			continue
		}
		if rule.AllowsRole(domain.RoleOwner) {
			t.Errorf("%s approval should not allow the owner role", tc.kind)
		}
		if !rule.AllowsRole(domain.RoleModerator) {
			t.Errorf("%s approval should allow the moderator role", tc.kind)
		}
	}
}
