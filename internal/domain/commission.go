package domain

// CommissionTable maps an indication's referred kind to a fixed payout in
// centavos. Amounts are configuration, not computed from record history:
// the same kind always yields the same amount.
type CommissionTable map[ReferralKind]int64

// DefaultCommissions carries the configured commission tiers.
var DefaultCommissions = CommissionTable{
	ReferralCustomer: 2000,
	ReferralPetshop:  5000,
	ReferralSupplier: 7500,
	ReferralCompany:  10000,
}

// Amount returns the commission for the given referred kind. The second
// return is false for an unknown kind.
func (t CommissionTable) Amount(kind ReferralKind) (int64, bool) {
	amount, ok := t[kind]
	return amount, ok
}
