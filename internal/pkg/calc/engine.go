package calc

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/ytoklu/mevduat-compare/internal/pkg/model"
)

// Rejections for the calculation call boundary: proceeding with a non-positive
// principal or rate would produce a misleading zero result.
var (
	ErrNonPositivePrincipal = errors.New("principal must be positive")
	ErrNonPositiveRate      = errors.New("annual rate must be positive")
)

var (
	one      = decimal.NewFromInt(1)
	hundred  = decimal.NewFromInt(100)
	daysYear = decimal.NewFromInt(365)
)

// Compound results are rounded to a fixed scale so identical inputs always yield
// identical decimals regardless of how the intermediate precision grew.
const compoundScale = 8

func dailyRate(annualRate decimal.Decimal) decimal.Decimal {
	return annualRate.Div(daysYear).Div(hundred)
}

// DailyGross is the interest earned in one day before tax.
func DailyGross(principal, annualRate decimal.Decimal) decimal.Decimal {
	return principal.Mul(dailyRate(annualRate))
}

// WithholdingTax is the tax withheld at source on a gross interest amount.
func WithholdingTax(gross, withholdingRate decimal.Decimal) decimal.Decimal {
	return gross.Mul(withholdingRate).Div(hundred)
}

// DailyNet is the daily interest after withholding tax.
func DailyNet(principal, annualRate, withholdingRate decimal.Decimal) decimal.Decimal {
	gross := DailyGross(principal, annualRate)
	return gross.Sub(WithholdingTax(gross, withholdingRate))
}

// CompoundReturn is the net return earned on principal over the given number of
// days when the daily net interest is reinvested.
func CompoundReturn(principal, annualRate, withholdingRate decimal.Decimal, days int) decimal.Decimal {
	netRate := dailyRate(annualRate).Mul(one.Sub(withholdingRate.Div(hundred)))
	factor := one.Add(netRate).Pow(decimal.NewFromInt(int64(days)))
	return principal.Mul(factor.Sub(one)).Round(compoundScale)
}

func bundle(principal, effective, nib, annualRate, withholdingRate decimal.Decimal) model.CalculationResult {
	gross := DailyGross(effective, annualRate)
	tax := WithholdingTax(gross, withholdingRate)
	yearly := CompoundReturn(effective, annualRate, withholdingRate, 365)

	return model.CalculationResult{
		Principal:          principal,
		EffectivePrincipal: effective,
		AnnualRate:         annualRate,
		DailyGross:         gross,
		DailyTax:           tax,
		DailyNet:           gross.Sub(tax),
		MonthlyNet:         CompoundReturn(effective, annualRate, withholdingRate, 30),
		YearlyNet:          yearly,
		// The NIB portion earns nothing but is still paid back at maturity, so the
		// total is built on the original principal.
		YearlyTotal:        principal.Add(yearly),
		NonInterestBalance: nib,
	}
}

// Calculate bundles the daily/monthly/yearly figures for a principal the caller has
// already adjusted for any non-interest-bearing deduction.
func Calculate(principal, annualRate, withholdingRate decimal.Decimal) (model.CalculationResult, error) {
	if !principal.IsPositive() {
		return model.CalculationResult{}, ErrNonPositivePrincipal
	}
	if !annualRate.IsPositive() {
		return model.CalculationResult{}, ErrNonPositiveRate
	}
	return bundle(principal, principal, decimal.Zero, annualRate, withholdingRate), nil
}

// CalculateWithNIB is Calculate for callers that supply their own non-interest
// deduction, for example a manually entered rate and balance.
func CalculateWithNIB(principal, nib, annualRate, withholdingRate decimal.Decimal) (model.CalculationResult, error) {
	if !principal.IsPositive() {
		return model.CalculationResult{}, ErrNonPositivePrincipal
	}
	if !annualRate.IsPositive() {
		return model.CalculationResult{}, ErrNonPositiveRate
	}
	if nib.IsNegative() {
		nib = decimal.Zero
	}
	effective := principal.Sub(nib)
	if effective.IsNegative() {
		effective = decimal.Zero
	}
	return bundle(principal, effective, nib, annualRate, withholdingRate), nil
}

// CalculateForBank resolves the bank's tier for principal and computes the full
// result from the tier's rate and NIB policy. A bank without a usable rate at this
// principal is rejected, never reported as a zero return.
func CalculateForBank(b model.Bank, principal, withholdingRate decimal.Decimal) (model.CalculationResult, error) {
	if !principal.IsPositive() {
		return model.CalculationResult{}, ErrNonPositivePrincipal
	}
	rate := RateForPrincipal(b, principal)
	if !rate.IsPositive() {
		return model.CalculationResult{}, ErrNonPositiveRate
	}
	nib := NIBForPrincipal(b, principal)
	return bundle(principal, EffectivePrincipal(b, principal), nib, rate, withholdingRate), nil
}

// DailyNetForBank is the tier- and NIB-aware daily net return for one bank.
// Unusable banks yield zero.
func DailyNetForBank(b model.Bank, principal, withholdingRate decimal.Decimal) decimal.Decimal {
	rate := RateForPrincipal(b, principal)
	if !rate.IsPositive() {
		return decimal.Zero
	}
	return DailyNet(EffectivePrincipal(b, principal), rate, withholdingRate)
}
