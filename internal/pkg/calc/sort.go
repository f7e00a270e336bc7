package calc

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ytoklu/mevduat-compare/internal/pkg/model"
)

type SortField string
type SortDir string

const (
	ByName  SortField = "name"
	ByRate  SortField = "rate"
	ByNIB   SortField = "nib"
	ByDaily SortField = "daily"

	Asc  SortDir = "asc"
	Desc SortDir = "desc"
)

// SortBanks returns a new slice ordered by the requested field and direction.
// Banks without a usable rate always sort after usable ones regardless of the
// requested order, and among themselves by Turkish-collated name ascending. The
// sort is stable: ties keep their relative input order. An unknown field leaves
// usable banks in input order.
func SortBanks(banks []model.Bank, field SortField, dir SortDir, principal, withholdingRate decimal.Decimal) []model.Bank {
	type row struct {
		bank   model.Bank
		usable bool
		num    decimal.Decimal
	}

	rows := make([]row, len(banks))
	for i, b := range banks {
		r := row{bank: b, usable: b.Usable()}
		if r.usable {
			switch field {
			case ByRate:
				r.num = RateForPrincipal(b, principal)
			case ByNIB:
				r.num = NIBForPrincipal(b, principal)
			case ByDaily:
				r.num = DailyNetForBank(b, principal, withholdingRate)
			}
		}
		rows[i] = r
	}

	coll := collate.New(language.Turkish)
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.usable != b.usable {
			return a.usable
		}
		if !a.usable {
			return coll.CompareString(a.bank.Name, b.bank.Name) < 0
		}

		var cmp int
		if field == ByName {
			cmp = coll.CompareString(a.bank.Name, b.bank.Name)
		} else {
			cmp = a.num.Cmp(b.num)
		}
		if dir == Desc {
			return cmp > 0
		}
		return cmp < 0
	})

	out := make([]model.Bank, len(rows))
	for i, r := range rows {
		out[i] = r.bank
	}
	return out
}

// FilterByName keeps banks whose name contains the query, using Turkish case
// folding. An empty query returns a copy of the input.
func FilterByName(banks []model.Bank, query string) []model.Bank {
	query = strings.TrimSpace(query)
	if query == "" {
		return append([]model.Bank(nil), banks...)
	}

	lower := cases.Lower(language.Turkish)
	q := lower.String(query)

	out := make([]model.Bank, 0, len(banks))
	for _, b := range banks {
		if strings.Contains(lower.String(b.Name), q) {
			out = append(out, b)
		}
	}
	return out
}
