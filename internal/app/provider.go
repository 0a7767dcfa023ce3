package app

import (
	"context"
	"fmt"

	"github.com/petmercado/petmercado/internal/domain"
)

// ProviderService registers and looks up provider profiles. Rating
// statistics on a profile are maintained exclusively by the rating
// aggregation path, never written here.
type ProviderService struct {
	providers domain.ProviderRepository
}

// NewProviderService creates a service over the given repository.
func NewProviderService(providers domain.ProviderRepository) *ProviderService {
	return &ProviderService{providers: providers}
}

// Register persists a new provider profile with zero rating statistics.
func (s *ProviderService) Register(ctx context.Context, profile domain.ProviderProfile) (domain.ProviderProfile, error) {
	profile.ID = newID()
	profile.RatingAvg = 0
	profile.RatingCount = 0

	if err := s.providers.Create(ctx, profile); err != nil {
		return domain.ProviderProfile{}, fmt.Errorf("creating provider: %w", err)
	}
	return profile, nil
}

// GetByID returns a provider profile by its unique identifier.
func (s *ProviderService) GetByID(ctx context.Context, id string) (domain.ProviderProfile, error) {
	return s.providers.GetByID(ctx, id)
}
