package model

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Snapshot documents carry plain JSON numbers, not quoted decimals.
	decimal.MarshalJSONWithoutQuotes = true
}

var hundred = decimal.NewFromInt(100)

// Tier is one contiguous principal range of a savings offer. Max == nil means the
// tier is open-ended; only the last tier of a bank may be open-ended.
//
// The non-interest-bearing deduction is either a fixed amount (NIB) or a percentage
// of the principal (NIBPercentage). A positive percentage takes precedence.
type Tier struct {
	Min           decimal.Decimal  `json:"min"`
	Max           *decimal.Decimal `json:"max"`
	AnnualRate    decimal.Decimal  `json:"annualRate"`
	NIB           decimal.Decimal  `json:"nib"`
	NIBPercentage decimal.Decimal  `json:"nibPercentage,omitzero"`
}

// Contains reports whether principal falls within [Min, Max].
func (t Tier) Contains(principal decimal.Decimal) bool {
	return principal.GreaterThanOrEqual(t.Min) &&
		(t.Max == nil || principal.LessThanOrEqual(*t.Max))
}

// NIBFor returns the non-interest-bearing amount this tier withholds from principal.
func (t Tier) NIBFor(principal decimal.Decimal) decimal.Decimal {
	if t.NIBPercentage.IsPositive() {
		return principal.Mul(t.NIBPercentage).Div(hundred)
	}
	return t.NIB
}

// Bank is one normalized savings offer. An empty tier list means ingestion failed
// for this source; such a bank is unusable but still listed.
type Bank struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	ProductName string `json:"productName"`
	Website     string `json:"website"`
	Tiers       []Tier `json:"tiers"`
}

func (b Bank) Usable() bool {
	return len(b.Tiers) > 0
}

// Snapshot is the interchange document produced by one ingestion cycle and consumed
// wholesale by a serving session.
type Snapshot struct {
	LastUpdated            time.Time       `json:"lastUpdated"`
	DefaultWithholdingRate decimal.Decimal `json:"defaultWithholdingRatePercent"`
	Banks                  []Bank          `json:"banks"`
}

// CalculationResult is the transient output of one net-return calculation.
type CalculationResult struct {
	Principal          decimal.Decimal `json:"principal"`
	EffectivePrincipal decimal.Decimal `json:"effectivePrincipal"`
	AnnualRate         decimal.Decimal `json:"annualRatePercent"`
	DailyGross         decimal.Decimal `json:"dailyGross"`
	DailyTax           decimal.Decimal `json:"dailyTax"`
	DailyNet           decimal.Decimal `json:"dailyNet"`
	MonthlyNet         decimal.Decimal `json:"monthlyNet"`
	YearlyNet          decimal.Decimal `json:"yearlyNet"`
	YearlyTotal        decimal.Decimal `json:"yearlyTotal"`
	NonInterestBalance decimal.Decimal `json:"nonInterestBalanceAmount"`
}

// CanonicalTiers turns raw adapter output into a canonical tier list: invalid tiers
// are dropped (rate <= 0, negative min, bounded max below min), the rest are sorted
// ascending by min, exact duplicate ranges keep their first occurrence, and an
// open-ended tier is only kept in last position. Overlaps and gaps are left as-is;
// lookup order resolves them.
func CanonicalTiers(in []Tier) []Tier {
	valid := make([]Tier, 0, len(in))
	for _, t := range in {
		if !t.AnnualRate.IsPositive() || t.Min.IsNegative() {
			continue
		}
		if t.Max != nil && t.Max.LessThan(t.Min) {
			continue
		}
		valid = append(valid, t)
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Min.LessThan(valid[j].Min)
	})

	seen := make(map[string]bool, len(valid))
	deduped := make([]Tier, 0, len(valid))
	for _, t := range valid {
		key := t.Min.String() + "|"
		if t.Max != nil {
			key += t.Max.String()
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, t)
	}

	out := make([]Tier, 0, len(deduped))
	for i, t := range deduped {
		if t.Max == nil && i != len(deduped)-1 {
			continue
		}
		out = append(out, t)
	}
	return out
}
