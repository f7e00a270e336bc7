package crawler

import (
	"bytes"
	"strings"

	"github.com/antchfx/htmlquery"
	"go.uber.org/zap"

	"github.com/ytoklu/mevduat-compare/internal/pkg/model"
)

const ingRatesURL = "https://www.ing.com.tr/tr/sizin-icin/mevduat-yatirim/turuncu-hesap/faiz-oranlari"

var _ SourceAdapter = &INGAdapter{}

// INGAdapter scrapes the Turuncu Hesap rate table. Cell values sit inside a
// div.value when present, otherwise in the cell text itself.
type INGAdapter struct {
	logger *zap.Logger
}

func NewINGAdapter(logger *zap.Logger) *INGAdapter {
	return &INGAdapter{logger: logger}
}

func (a *INGAdapter) Profile() Profile {
	return Profile{
		ID:          "ing",
		Name:        "ING",
		Type:        "private",
		ProductName: "Turuncu Hesap",
		Website:     "https://www.ing.com.tr",
	}
}

func (a *INGAdapter) Request() Request {
	return Request{URL: ingRatesURL}
}

func (a *INGAdapter) Normalize(raw []byte) []model.Tier {
	doc, err := htmlquery.Parse(bytes.NewReader(raw))
	if err != nil {
		a.logger.Warn("failed to parse document", zap.Error(err))
		return nil
	}

	table, err := htmlquery.Query(doc, "//table[contains(@class,'ui-tables')]")
	if err != nil || table == nil {
		return nil
	}

	rows, err := htmlquery.QueryAll(table, "//tr")
	if err != nil {
		return nil
	}

	var tiers []model.Tier
	for _, row := range rows {
		if strings.Contains(htmlquery.SelectAttr(row, "class"), "table-header") {
			continue
		}
		cells, err := htmlquery.QueryAll(row, "//td")
		if err != nil || len(cells) < 4 {
			continue
		}

		vals := make([]string, len(cells))
		for i, cell := range cells {
			if v, _ := htmlquery.Query(cell, "//div[contains(@class,'value')]"); v != nil {
				vals[i] = nodeText(v)
			} else {
				vals[i] = nodeText(cell)
			}
		}

		min, max, ok := parseRange(vals[0])
		if !ok {
			continue
		}
		rate := parseRate(vals[2])
		if !rate.IsPositive() {
			continue
		}
		tiers = append(tiers, model.Tier{
			Min:        min,
			Max:        max,
			AnnualRate: rate,
			NIB:        parseAmount(vals[1]),
		})
	}
	return model.CanonicalTiers(tiers)
}
