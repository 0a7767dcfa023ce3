package domain

import "time"

// Kind identifies which moderated record type a Record is, and therefore
// which transition table and side effects apply to it.
type Kind string

const (
	KindCampaign   Kind = "campaign"
	KindIndication Kind = "indication"
	KindFeedback   Kind = "feedback"
	KindContract   Kind = "contract"
	KindProduct    Kind = "product"
)

// Status represents the lifecycle state of a record. Values are the
// marketplace's canonical Portuguese status strings.
type Status string

const (
	StatusPending Status = "pendente"

	// Campaign. "aprovada" and "ativa" were historically used
	// interchangeably; "ativa" is the single canonical active state.
	CampaignActive Status = "ativa"
	CampaignDenied Status = "negada"
	CampaignPaused Status = "pausada"
	CampaignDone   Status = "concluida"

	// Indication (referral).
	IndicationApproved Status = "aprovada"
	IndicationRejected Status = "rejeitada"

	// Feedback.
	FeedbackPublished Status = "publicado"
	FeedbackRejected  Status = "rejeitado"

	// Service contract.
	ContractActive    Status = "ativo"
	ContractDone      Status = "concluido"
	ContractCancelled Status = "cancelado"

	// Product listing.
	ProductPublished Status = "publicado"
	ProductRejected  Status = "rejeitado"
	ProductArchived  Status = "arquivado"
)

// Role is the authorization level of an acting identity.
type Role string

const (
	RoleOwner     Role = "owner"
	RoleModerator Role = "moderator"
)

// Actor is the acting identity supplied by the session layer. The core
// never reads ambient session state; every call receives an Actor.
type Actor struct {
	ID   string
	Role Role
}

// Transition defines a valid state change for one kind: which roles may
// move a record from Src to Dst, and whether a moderation reason is
// mandatory (denials and cancellations).
type Transition struct {
	Kind           Kind
	Src            Status
	Dst            Status
	Roles          []Role
	RequiresReason bool
}

// Transitions defines every valid state change, per kind. This is domain
// knowledge consumed by the FSM adapter and by authorization lookup; no
// other code path encodes reachability.
var Transitions = []Transition{
	// Campaign: pendente → ativa|negada, ativa ⇄ pausada, → concluida.
	{Kind: KindCampaign, Src: StatusPending, Dst: CampaignActive, Roles: []Role{RoleModerator}},
	{Kind: KindCampaign, Src: StatusPending, Dst: CampaignDenied, Roles: []Role{RoleModerator}, RequiresReason: true},
	{Kind: KindCampaign, Src: CampaignActive, Dst: CampaignPaused, Roles: []Role{RoleOwner, RoleModerator}},
	{Kind: KindCampaign, Src: CampaignPaused, Dst: CampaignActive, Roles: []Role{RoleOwner, RoleModerator}},
	{Kind: KindCampaign, Src: CampaignActive, Dst: CampaignDone, Roles: []Role{RoleOwner, RoleModerator}},
	{Kind: KindCampaign, Src: CampaignPaused, Dst: CampaignDone, Roles: []Role{RoleOwner, RoleModerator}},

	// Indication: pendente → aprovada|rejeitada. Approval pays commission.
	{Kind: KindIndication, Src: StatusPending, Dst: IndicationApproved, Roles: []Role{RoleModerator}},
	{Kind: KindIndication, Src: StatusPending, Dst: IndicationRejected, Roles: []Role{RoleModerator}, RequiresReason: true},

	// Feedback: pendente → publicado|rejeitado.
	{Kind: KindFeedback, Src: StatusPending, Dst: FeedbackPublished, Roles: []Role{RoleModerator}},
	{Kind: KindFeedback, Src: StatusPending, Dst: FeedbackRejected, Roles: []Role{RoleModerator}, RequiresReason: true},

	// Contract: pendente → ativo|cancelado, ativo → concluido|cancelado.
	// The owning customer may cancel their own contract.
	{Kind: KindContract, Src: StatusPending, Dst: ContractActive, Roles: []Role{RoleModerator}},
	{Kind: KindContract, Src: StatusPending, Dst: ContractCancelled, Roles: []Role{RoleOwner, RoleModerator}, RequiresReason: true},
	{Kind: KindContract, Src: ContractActive, Dst: ContractDone, Roles: []Role{RoleOwner, RoleModerator}},
	{Kind: KindContract, Src: ContractActive, Dst: ContractCancelled, Roles: []Role{RoleOwner, RoleModerator}, RequiresReason: true},

	// Product: pendente → publicado|rejeitado, publicado → arquivado.
	{Kind: KindProduct, Src: StatusPending, Dst: ProductPublished, Roles: []Role{RoleModerator}},
	{Kind: KindProduct, Src: StatusPending, Dst: ProductRejected, Roles: []Role{RoleModerator}, RequiresReason: true},
	{Kind: KindProduct, Src: ProductPublished, Dst: ProductArchived, Roles: []Role{RoleOwner, RoleModerator}},
}

// RuleFor returns the transition rule for (kind, src, dst), if one exists.
func RuleFor(kind Kind, src, dst Status) (Transition, bool) {
	for _, t := range Transitions {
		if t.Kind == kind && t.Src == src && t.Dst == dst {
			return t, true
		}
	}
	return Transition{}, false
}

// IsTerminal reports whether status accepts no further transition for kind.
func IsTerminal(kind Kind, status Status) bool {
	for _, t := range Transitions {
		if t.Kind == kind && t.Src == status {
			return false
		}
	}
	return true
}

// AllowsRole reports whether the rule permits the given role.
func (t Transition) AllowsRole(role Role) bool {
	for _, r := range t.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// ReferralKind identifies what kind of party an indication refers.
type ReferralKind string

const (
	ReferralCustomer ReferralKind = "cliente"
	ReferralPetshop  ReferralKind = "petshop"
	ReferralSupplier ReferralKind = "fornecedor"
	ReferralCompany  ReferralKind = "empresa"
)

// CampaignDetails is the payload of a fundraising campaign.
type CampaignDetails struct {
	Title     string
	GoalCents int64
}

// IndicationDetails is the payload of a referral. CommissionCents is zero
// until the indication is approved.
type IndicationDetails struct {
	Referred        ReferralKind
	CommissionCents int64
}

// FeedbackDetails is the payload of a provider review awaiting moderation.
type FeedbackDetails struct {
	ProviderID string
	Comment    string
}

// ContractDetails is the payload of a service contract. Rating is zero
// until the customer rates a completed contract; RatingAggregated marks
// that the rating has been folded into the provider exactly once.
type ContractDetails struct {
	ProviderID       string
	Rating           int
	RatingAggregated bool
}

// ProductDetails is the payload of a product listing.
type ProductDetails struct {
	Name       string
	PriceCents int64
}

// Record is the common shape shared by all moderated record kinds. Exactly
// one payload pointer is non-nil, matching Kind.
type Record struct {
	ID               string
	OwnerID          string
	Kind             Kind
	Status           Status
	ModerationReason string
	CreatedAt        time.Time
	StatusChangedAt  time.Time

	Campaign   *CampaignDetails
	Indication *IndicationDetails
	Feedback   *FeedbackDetails
	Contract   *ContractDetails
	Product    *ProductDetails
}

func newRecord(id, ownerID string, kind Kind) Record {
	now := time.Now().UTC()
	return Record{
		ID:              id,
		OwnerID:         ownerID,
		Kind:            kind,
		Status:          StatusPending,
		CreatedAt:       now,
		StatusChangedAt: now,
	}
}

// NewCampaign creates a campaign record in the initial pending state.
func NewCampaign(id, ownerID string, details CampaignDetails) Record {
	r := newRecord(id, ownerID, KindCampaign)
	r.Campaign = &details
	return r
}

// NewIndication creates an indication record in the initial pending state.
func NewIndication(id, ownerID string, details IndicationDetails) Record {
	r := newRecord(id, ownerID, KindIndication)
	r.Indication = &details
	return r
}

// NewFeedback creates a feedback record in the initial pending state.
func NewFeedback(id, ownerID string, details FeedbackDetails) Record {
	r := newRecord(id, ownerID, KindFeedback)
	r.Feedback = &details
	return r
}

// NewContract creates a contract record in the initial pending state.
func NewContract(id, ownerID string, details ContractDetails) Record {
	r := newRecord(id, ownerID, KindContract)
	r.Contract = &details
	return r
}

// NewProduct creates a product record in the initial pending state.
func NewProduct(id, ownerID string, details ProductDetails) Record {
	r := newRecord(id, ownerID, KindProduct)
	r.Product = &details
	return r
}

// TransitionApplied is the event emitted after a successful transition.
// Delivery is fire-and-forget from the core's perspective.
type TransitionApplied struct {
	Kind     Kind
	RecordID string
	From     Status
	To       Status
}
