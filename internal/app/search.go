package app

import (
	"context"
	"sort"

	"github.com/petmercado/petmercado/internal/domain"
)

// DefaultPageSize is used when the caller does not specify one.
const DefaultPageSize = 20

// SearchService turns a partial set of filter criteria into a
// deterministic, paginated result set over provider profiles. It has no
// write side effects.
type SearchService struct {
	providers domain.ProviderRepository
}

// NewSearchService creates a service over the given repository.
func NewSearchService(providers domain.ProviderRepository) *SearchService {
	return &SearchService{providers: providers}
}

// Search applies the criteria as an AND predicate, orders by the requested
// key with id tie-break, and returns the 1-indexed page. Totals are
// computed from the filtered set. An out-of-range page returns empty items
// but still reports total and totalPages.
func (s *SearchService) Search(ctx context.Context, criteria domain.Criteria, page, pageSize int) (domain.Page, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	var kind *domain.ProviderKind
	if criteria.Kind != "" {
		kind = &criteria.Kind
	}

	profiles, err := s.providers.List(ctx, kind)
	if err != nil {
		return domain.Page{}, err
	}

	matched := make([]domain.ProviderProfile, 0, len(profiles))
	for _, p := range profiles {
		if criteria.Matches(p) {
			matched = append(matched, p)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return criteria.Less(matched[i], matched[j])
	})

	total := len(matched)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return domain.Page{
		Items:      matched[start:end],
		Total:      total,
		PageNumber: page,
		TotalPages: totalPages,
	}, nil
}
