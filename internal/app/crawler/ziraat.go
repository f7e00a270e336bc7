package crawler

import (
	"bytes"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/ytoklu/mevduat-compare/internal/pkg/model"
)

const ziraatRatesURL = "https://www.ziraatbank.com.tr/tr/bireysel/mevduat/vadeli-hesaplar/biriktiren-hesap"

var _ SourceAdapter = &ZiraatAdapter{}

// ZiraatAdapter scrapes two separate tables: one with the rate per range and one
// with the non-interest-bearing amount per range, correlated by row index.
type ZiraatAdapter struct {
	logger *zap.Logger
}

func NewZiraatAdapter(logger *zap.Logger) *ZiraatAdapter {
	return &ZiraatAdapter{logger: logger}
}

func (a *ZiraatAdapter) Profile() Profile {
	return Profile{
		ID:          "ziraat-bankasi",
		Name:        "Ziraat Bankası",
		Type:        "state",
		ProductName: "Biriktiren Hesap",
		Website:     "https://www.ziraatbank.com.tr",
	}
}

func (a *ZiraatAdapter) Request() Request {
	return Request{URL: ziraatRatesURL}
}

func (a *ZiraatAdapter) Normalize(raw []byte) []model.Tier {
	doc, err := htmlquery.Parse(bytes.NewReader(raw))
	if err != nil {
		a.logger.Warn("failed to parse document", zap.Error(err))
		return nil
	}

	tables, err := htmlquery.QueryAll(doc, "//table")
	if err != nil {
		return nil
	}

	var rateTable, nibTable *html.Node
	for _, t := range tables {
		headers, err := htmlquery.QueryAll(t, "//th")
		if err != nil {
			continue
		}
		for _, th := range headers {
			text := nodeText(th)
			if nibTable == nil && strings.Contains(text, "Faizlendirilmeyecek") {
				nibTable = t
			}
			if rateTable == nil && strings.Contains(text, "Faiz Oran") {
				rateTable = t
			}
		}
	}
	if rateTable == nil {
		return nil
	}

	var nibLookup []decimal.Decimal
	if nibTable != nil {
		rows, _ := htmlquery.QueryAll(nibTable, "//tbody/tr")
		for _, row := range rows {
			cells, err := htmlquery.QueryAll(row, "//td")
			if err != nil || len(cells) < 2 {
				continue
			}
			if _, _, ok := parseRange(nodeText(cells[0])); !ok {
				continue
			}
			nibLookup = append(nibLookup, parseAmount(nodeText(cells[1])))
		}
	}

	rows, err := htmlquery.QueryAll(rateTable, "//tbody/tr")
	if err != nil {
		return nil
	}

	var tiers []model.Tier
	idx := 0
	for _, row := range rows {
		cells, err := htmlquery.QueryAll(row, "//td")
		if err != nil || len(cells) < 2 {
			continue
		}
		min, max, ok := parseRange(nodeText(cells[0]))
		if !ok {
			continue
		}
		nib := decimal.Zero
		if idx < len(nibLookup) {
			nib = nibLookup[idx]
		}
		idx++

		rate := parseRate(nodeText(cells[1]))
		if !rate.IsPositive() {
			continue
		}
		tiers = append(tiers, model.Tier{Min: min, Max: max, AnnualRate: rate, NIB: nib})
	}
	return model.CanonicalTiers(tiers)
}
