package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/petmercado/petmercado/internal/domain"
)

// LifecycleService is the sole authority for moving a record between
// statuses. It validates reachability, authorization and reason
// requirements, applies side effects, and publishes a transition event.
type LifecycleService struct {
	records     domain.RecordRepository
	validator   domain.TransitionValidator
	publisher   domain.EventPublisher
	commissions domain.CommissionTable
}

// NewLifecycleService creates a service with the given adapters.
func NewLifecycleService(records domain.RecordRepository, validator domain.TransitionValidator, publisher domain.EventPublisher, commissions domain.CommissionTable) *LifecycleService {
	return &LifecycleService{
		records:     records,
		validator:   validator,
		publisher:   publisher,
		commissions: commissions,
	}
}

// CreateCampaign persists a new campaign in the pending state.
func (s *LifecycleService) CreateCampaign(ctx context.Context, actor domain.Actor, details domain.CampaignDetails) (domain.Record, error) {
	return s.create(ctx, domain.NewCampaign(newID(), actor.ID, details))
}

// CreateIndication persists a new indication in the pending state. The
// referred kind must be one the commission table knows, otherwise the
// payout on approval would be undefined.
func (s *LifecycleService) CreateIndication(ctx context.Context, actor domain.Actor, details domain.IndicationDetails) (domain.Record, error) {
	if _, ok := s.commissions.Amount(details.Referred); !ok {
		return domain.Record{}, fmt.Errorf("unknown referred kind %q", details.Referred)
	}
	details.CommissionCents = 0
	return s.create(ctx, domain.NewIndication(newID(), actor.ID, details))
}

// CreateFeedback persists a new feedback in the pending state.
func (s *LifecycleService) CreateFeedback(ctx context.Context, actor domain.Actor, details domain.FeedbackDetails) (domain.Record, error) {
	return s.create(ctx, domain.NewFeedback(newID(), actor.ID, details))
}

// CreateContract persists a new contract in the pending state.
func (s *LifecycleService) CreateContract(ctx context.Context, actor domain.Actor, details domain.ContractDetails) (domain.Record, error) {
	details.Rating = 0
	details.RatingAggregated = false
	return s.create(ctx, domain.NewContract(newID(), actor.ID, details))
}

// CreateProduct persists a new product in the pending state.
func (s *LifecycleService) CreateProduct(ctx context.Context, actor domain.Actor, details domain.ProductDetails) (domain.Record, error) {
	return s.create(ctx, domain.NewProduct(newID(), actor.ID, details))
}

func (s *LifecycleService) create(ctx context.Context, record domain.Record) (domain.Record, error) {
	if err := s.records.Create(ctx, record); err != nil {
		return domain.Record{}, fmt.Errorf("creating %s: %w", record.Kind, err)
	}
	return record, nil
}

// GetByID returns a record by its unique identifier.
func (s *LifecycleService) GetByID(ctx context.Context, id string) (domain.Record, error) {
	return s.records.GetByID(ctx, id)
}

// List returns records matching the given filter.
func (s *LifecycleService) List(ctx context.Context, filter domain.ListFilter) ([]domain.Record, error) {
	return s.records.List(ctx, filter)
}

// Transition moves a record to the target status on behalf of the actor.
// Either every check passes and the record changes, or nothing changes and
// a typed error is returned.
func (s *LifecycleService) Transition(ctx context.Context, id string, target domain.Status, actor domain.Actor, reason string) (domain.Record, error) {
	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		return domain.Record{}, err
	}

	if err := s.validator.Apply(ctx, record.Kind, record.Status, target); err != nil {
		return domain.Record{}, err
	}

	rule, ok := domain.RuleFor(record.Kind, record.Status, target)
	if !ok {
		return domain.Record{}, &domain.TransitionError{Kind: record.Kind, Current: record.Status, Target: target}
	}

	if !s.authorized(rule, record, actor) {
		return domain.Record{}, &domain.UnauthorizedError{Actor: actor, Target: target}
	}

	reason = strings.TrimSpace(reason)
	if rule.RequiresReason && reason == "" {
		return domain.Record{}, domain.ErrReasonRequired
	}

	prior := record.Status
	record.Status = target
	record.StatusChangedAt = time.Now().UTC()
	if rule.RequiresReason {
		record.ModerationReason = reason
	}

	// Indication approval pays out a fixed commission per referred kind.
	if record.Kind == domain.KindIndication && target == domain.IndicationApproved {
		amount, ok := s.commissions.Amount(record.Indication.Referred)
		if !ok {
			return domain.Record{}, fmt.Errorf("no commission tier for referred kind %q", record.Indication.Referred)
		}
		record.Indication.CommissionCents = amount
	}

	if err := s.records.Update(ctx, record, prior); err != nil {
		return domain.Record{}, err
	}

	if err := s.publisher.Publish(ctx, domain.TransitionApplied{
		Kind:     record.Kind,
		RecordID: record.ID,
		From:     prior,
		To:       target,
	}); err != nil {
		return domain.Record{}, fmt.Errorf("publishing transition event: %w", err)
	}

	return record, nil
}

// authorized checks the rule's role list against the actor. The owner role
// only counts when the actor actually owns the record; a moderator is
// never restricted by ownership.
func (s *LifecycleService) authorized(rule domain.Transition, record domain.Record, actor domain.Actor) bool {
	switch actor.Role {
	case domain.RoleModerator:
		return rule.AllowsRole(domain.RoleModerator)
	case domain.RoleOwner:
		return rule.AllowsRole(domain.RoleOwner) && actor.ID == record.OwnerID
	default:
		return false
	}
}
