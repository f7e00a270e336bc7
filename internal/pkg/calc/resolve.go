// Package calc holds the pure tier-resolution and net-return arithmetic for
// normalized savings offers. Everything here is stateless and deterministic.
package calc

import (
	"github.com/shopspring/decimal"

	"github.com/ytoklu/mevduat-compare/internal/pkg/model"
)

// ResolveTier selects the applicable tier for principal: the first tier in scan
// order whose range contains it. A principal below every tier's lower bound falls
// back to the last tier, so one malformed bound never makes a bank unusable.
// ok is false only for an empty tier list.
func ResolveTier(tiers []model.Tier, principal decimal.Decimal) (tier model.Tier, ok bool) {
	if len(tiers) == 0 {
		return model.Tier{}, false
	}
	for _, t := range tiers {
		if t.Contains(principal) {
			return t, true
		}
	}
	return tiers[len(tiers)-1], true
}

// RateForPrincipal returns the annual rate the bank pays on principal, or zero for
// a bank without tiers.
func RateForPrincipal(b model.Bank, principal decimal.Decimal) decimal.Decimal {
	t, ok := ResolveTier(b.Tiers, principal)
	if !ok {
		return decimal.Zero
	}
	return t.AnnualRate
}

// NIBForPrincipal returns the non-interest-bearing amount the resolved tier
// withholds from principal.
func NIBForPrincipal(b model.Bank, principal decimal.Decimal) decimal.Decimal {
	t, ok := ResolveTier(b.Tiers, principal)
	if !ok {
		return decimal.Zero
	}
	return t.NIBFor(principal)
}

// EffectivePrincipal is the interest-earning part of principal, clamped at zero.
func EffectivePrincipal(b model.Bank, principal decimal.Decimal) decimal.Decimal {
	eff := principal.Sub(NIBForPrincipal(b, principal))
	if eff.IsNegative() {
		return decimal.Zero
	}
	return eff
}
