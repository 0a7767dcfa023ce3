package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/petmercado/petmercado/internal/adapter/sqlite"
	"github.com/petmercado/petmercado/internal/domain"
)

func mustCreateProvider(t *testing.T, repo *sqlite.ProviderRepository, p domain.ProviderProfile) {
	t.Helper()
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("mustCreateProvider failed: %v", err)
	}
}

func TestProvider_Create_And_GetByID(t *testing.T) {
	repo := newTestStore(t).Providers()
	ctx := context.Background()

	profile := domain.ProviderProfile{
		ID:          "p-1",
		Kind:        domain.ProviderPetshop,
		Name:        "Petshop Amigo",
		Description: "Banho e tosa",
		City:        "Curitiba",
		State:       "PR",
		Categories:  []string{"banho", "tosa"},
		Verified:    true,
		RatingAvg:   4.5,
		RatingCount: 12,
	}
	mustCreateProvider(t, repo, profile)

	got, err := repo.GetByID(ctx, "p-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Petshop Amigo" {
		t.Errorf("Name = %q", got.Name)
	}
	if got.Kind != domain.ProviderPetshop {
		t.Errorf("Kind = %q", got.Kind)
	}
	if len(got.Categories) != 2 || got.Categories[0] != "banho" || got.Categories[1] != "tosa" {
		t.Errorf("Categories = %v", got.Categories)
	}
	if !got.Verified {
		t.Error("Verified = false, want true")
	}
	if got.RatingAvg != 4.5 || got.RatingCount != 12 {
		t.Errorf("rating = %v/%d, want 4.5/12", got.RatingAvg, got.RatingCount)
	}
}

func TestProvider_GetByID_NotFound(t *testing.T) {
	repo := newTestStore(t).Providers()

	_, err := repo.GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, domain.ErrProviderNotFound) {
		t.Errorf("expected ErrProviderNotFound, got %v", err)
	}
}

func TestProvider_EmptyCategories(t *testing.T) {
	repo := newTestStore(t).Providers()

	mustCreateProvider(t, repo, domain.ProviderProfile{ID: "p-1", Kind: domain.ProviderSupplier, Name: "X"})

	got, err := repo.GetByID(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Categories != nil {
		t.Errorf("Categories = %v, want nil", got.Categories)
	}
}

func TestProvider_List(t *testing.T) {
	repo := newTestStore(t).Providers()
	ctx := context.Background()

	mustCreateProvider(t, repo, domain.ProviderProfile{ID: "p-1", Kind: domain.ProviderPetshop, Name: "A"})
	mustCreateProvider(t, repo, domain.ProviderProfile{ID: "p-2", Kind: domain.ProviderSupplier, Name: "B"})
	mustCreateProvider(t, repo, domain.ProviderProfile{ID: "p-3", Kind: domain.ProviderPetshop, Name: "C"})

	all, err := repo.List(ctx, nil)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("got %d profiles, want 3", len(all))
	}
	// Ordered by id.
	if all[0].ID != "p-1" || all[2].ID != "p-3" {
		t.Errorf("unexpected order: %q, %q, %q", all[0].ID, all[1].ID, all[2].ID)
	}

	kind := domain.ProviderPetshop
	petshops, err := repo.List(ctx, &kind)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(petshops) != 2 {
		t.Errorf("got %d petshops, want 2", len(petshops))
	}
}
