package domain_test

import (
	"testing"

	"github.com/petmercado/petmercado/internal/domain"
)

func TestCommissionTable_CoversAllReferralKinds(t *testing.T) {
	kinds := []domain.ReferralKind{
		domain.ReferralCustomer,
		domain.ReferralPetshop,
		domain.ReferralSupplier,
		domain.ReferralCompany,
	}

	for _, k := range kinds {
		amount, ok := domain.DefaultCommissions.Amount(k)
		if !ok {
			t.Errorf("no commission tier for %q", k)
			continue
		}
		if amount <= 0 {
			t.Errorf("commission for %q = %d, want > 0", k, amount)
		}
	}
}

func TestCommissionTable_Deterministic(t *testing.T) {
	first, _ := domain.DefaultCommissions.Amount(domain.ReferralCompany)
	second, _ := domain.DefaultCommissions.Amount(domain.ReferralCompany)
	if first != second {
		t.Errorf("same kind returned different amounts: %d then %d", first, second)
	}
}

func TestCommissionTable_UnknownKind(t *testing.T) {
	if _, ok := domain.DefaultCommissions.Amount("gato"); ok {
		t.Error("unknown referral kind should not have a tier")
	}
}
