package app

import (
	"context"

	"github.com/petmercado/petmercado/internal/domain"
)

// RatingService folds one completed contract's rating into its provider's
// running statistics exactly once.
type RatingService struct {
	records   domain.RecordRepository
	providers domain.ProviderRepository
	ratings   domain.RatingStore
}

// NewRatingService creates a service with the given adapters.
func NewRatingService(records domain.RecordRepository, providers domain.ProviderRepository, ratings domain.RatingStore) *RatingService {
	return &RatingService{
		records:   records,
		providers: providers,
		ratings:   ratings,
	}
}

// Rate attaches a 1-5 rating to a completed contract and folds it into the
// provider's average. The flag check-and-set and the provider update are
// one atomic step in the store, so a duplicate or concurrent attempt gets
// ErrAlreadyRated or ErrConflict rather than double-counting.
func (s *RatingService) Rate(ctx context.Context, contractID string, rating int, actor domain.Actor) (domain.ProviderProfile, error) {
	if rating < 1 || rating > 5 {
		return domain.ProviderProfile{}, &domain.InvalidRatingError{Rating: rating}
	}

	contract, err := s.records.GetByID(ctx, contractID)
	if err != nil {
		return domain.ProviderProfile{}, err
	}
	if contract.Kind != domain.KindContract {
		return domain.ProviderProfile{}, domain.ErrNotFound
	}

	if actor.Role != domain.RoleModerator && actor.ID != contract.OwnerID {
		return domain.ProviderProfile{}, &domain.UnauthorizedError{Actor: actor, Target: contract.Status}
	}

	if contract.Status != domain.ContractDone {
		return domain.ProviderProfile{}, &domain.InvalidStateError{Kind: contract.Kind, Status: contract.Status}
	}
	if contract.Contract.RatingAggregated {
		return domain.ProviderProfile{}, domain.ErrAlreadyRated
	}

	provider, err := s.providers.GetByID(ctx, contract.Contract.ProviderID)
	if err != nil {
		return domain.ProviderProfile{}, err
	}

	contract.Contract.Rating = rating
	contract.Contract.RatingAggregated = true
	provider.ApplyRating(rating)

	if err := s.ratings.Aggregate(ctx, contract, provider); err != nil {
		return domain.ProviderProfile{}, err
	}

	return provider, nil
}
