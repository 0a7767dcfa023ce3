package domain

// ProviderKind distinguishes the two provider profiles discoverable
// through search.
type ProviderKind string

const (
	ProviderPetshop  ProviderKind = "petshop"
	ProviderSupplier ProviderKind = "fornecedor"
)

// ProviderProfile is the search subject: a petshop or supplier with a
// running average rating maintained incrementally by rating aggregation,
// never recomputed by a full scan.
type ProviderProfile struct {
	ID          string
	Kind        ProviderKind
	Name        string
	Description string
	City        string
	State       string
	Categories  []string
	Verified    bool
	RatingAvg   float64
	RatingCount int
}

// ApplyRating folds one contract rating into the running statistics:
// newAvg = (oldAvg*oldCount + rating) / (oldCount + 1).
func (p *ProviderProfile) ApplyRating(rating int) {
	p.RatingAvg = (p.RatingAvg*float64(p.RatingCount) + float64(rating)) / float64(p.RatingCount+1)
	p.RatingCount++
}

// HasCategory reports whether the profile carries the given category tag.
func (p ProviderProfile) HasCategory(tag string) bool {
	for _, c := range p.Categories {
		if c == tag {
			return true
		}
	}
	return false
}
