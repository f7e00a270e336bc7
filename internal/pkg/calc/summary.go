package calc

import (
	"github.com/shopspring/decimal"

	"github.com/ytoklu/mevduat-compare/internal/pkg/model"
)

// Summary aggregates a bank registry at one reference principal.
type Summary struct {
	Best         *model.Bank     `json:"best,omitempty"`
	BestRate     decimal.Decimal `json:"bestRate"`
	BestDailyNet decimal.Decimal `json:"bestDailyNet"`
	AverageRate  decimal.Decimal `json:"averageRate"`
	UsableCount  int             `json:"usableCount"`
	TotalCount   int             `json:"totalCount"`
}

// Summarize selects the usable bank with the highest daily net return at the given
// principal and the unweighted mean rate across usable banks. Equal daily nets are
// broken by registry order: the first bank reaching the maximum wins.
func Summarize(banks []model.Bank, principal, withholdingRate decimal.Decimal) Summary {
	s := Summary{TotalCount: len(banks)}

	bestIdx := -1
	rateSum := decimal.Zero
	for i := range banks {
		if !banks[i].Usable() {
			continue
		}
		s.UsableCount++
		rateSum = rateSum.Add(RateForPrincipal(banks[i], principal))

		net := DailyNetForBank(banks[i], principal, withholdingRate)
		if bestIdx < 0 || net.GreaterThan(s.BestDailyNet) {
			bestIdx = i
			s.BestDailyNet = net
		}
	}

	if bestIdx >= 0 {
		s.Best = &banks[bestIdx]
		s.BestRate = RateForPrincipal(banks[bestIdx], principal)
		s.AverageRate = rateSum.Div(decimal.NewFromInt(int64(s.UsableCount)))
	}
	return s
}
