package domain

import "strings"

// OrderBy selects the primary sort key for search results. Ties are always
// broken by provider id so repeated queries page deterministically.
type OrderBy string

const (
	OrderByName     OrderBy = "nome"
	OrderByRating   OrderBy = "avaliacao"
	OrderByDistance OrderBy = "distancia"
)

// Criteria is a partial, optional set of search filters combined with
// logical AND. Zero values ("", 0, nil, false) mean "not specified", never
// "match empty".
type Criteria struct {
	Query        string
	Kind         ProviderKind
	City         string
	State        string
	Category     string
	MinRating    float64
	VerifiedOnly bool

	OrderBy OrderBy
	// Distances supplies an externally computed distance per provider id
	// when OrderBy is OrderByDistance. Providers without an entry sort last.
	Distances map[string]float64
}

// Matches reports whether the profile satisfies every specified criterion.
func (c Criteria) Matches(p ProviderProfile) bool {
	if c.Query != "" && !matchesQuery(p, c.Query) {
		return false
	}
	if c.Kind != "" && p.Kind != c.Kind {
		return false
	}
	if c.City != "" && !strings.EqualFold(p.City, c.City) {
		return false
	}
	if c.State != "" && !strings.EqualFold(p.State, c.State) {
		return false
	}
	if c.Category != "" && !p.HasCategory(c.Category) {
		return false
	}
	if c.MinRating > 0 && p.RatingAvg < c.MinRating {
		return false
	}
	if c.VerifiedOnly && !p.Verified {
		return false
	}
	return true
}

// matchesQuery does a case-insensitive substring match against the
// profile's name, description and category tags.
func matchesQuery(p ProviderProfile, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, c := range p.Categories {
		if strings.Contains(strings.ToLower(c), q) {
			return true
		}
	}
	return false
}

// Less orders two profiles by the criteria's primary key, falling back to
// id on ties. This is the single comparator used by search.
func (c Criteria) Less(a, b ProviderProfile) bool {
	switch c.OrderBy {
	case OrderByRating:
		if a.RatingAvg != b.RatingAvg {
			return a.RatingAvg > b.RatingAvg
		}
	case OrderByDistance:
		da, aok := c.Distances[a.ID]
		db, bok := c.Distances[b.ID]
		switch {
		case aok && !bok:
			return true
		case !aok && bok:
			return false
		case aok && bok && da != db:
			return da < db
		}
	default:
		if a.Name != b.Name {
			return a.Name < b.Name
		}
	}
	return a.ID < b.ID
}

// Page is one page of search results, with totals computed from the
// filtered set.
type Page struct {
	Items      []ProviderProfile
	Total      int
	PageNumber int
	TotalPages int
}
