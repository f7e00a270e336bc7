package crawler

import (
	"bytes"

	"github.com/antchfx/htmlquery"
	"go.uber.org/zap"

	"github.com/ytoklu/mevduat-compare/internal/pkg/model"
)

const denizbankRatesURL = "https://www.denizbank.com/hesaplar/ek-hesaplar/vob-hesap"

var _ SourceAdapter = &DenizBankAdapter{}

// DenizBankAdapter scrapes the TL tab's blueTable: range, fixed NIB and rate
// columns per row.
type DenizBankAdapter struct {
	logger *zap.Logger
}

func NewDenizBankAdapter(logger *zap.Logger) *DenizBankAdapter {
	return &DenizBankAdapter{logger: logger}
}

func (a *DenizBankAdapter) Profile() Profile {
	return Profile{
		ID:          "denizbank",
		Name:        "DenizBank",
		Type:        "private",
		ProductName: "VOB Hesap",
		Website:     "https://www.denizbank.com",
	}
}

func (a *DenizBankAdapter) Request() Request {
	return Request{URL: denizbankRatesURL}
}

func (a *DenizBankAdapter) Normalize(raw []byte) []model.Tier {
	doc, err := htmlquery.Parse(bytes.NewReader(raw))
	if err != nil {
		a.logger.Warn("failed to parse document", zap.Error(err))
		return nil
	}

	table, _ := htmlquery.Query(doc, "//*[@id='tab1']//table[contains(@class,'blueTable')]")
	if table == nil {
		table, _ = htmlquery.Query(doc, "//table[contains(@class,'blueTable')]")
	}
	if table == nil {
		return nil
	}

	rows, err := htmlquery.QueryAll(table, "//tbody/tr")
	if err != nil {
		return nil
	}

	var tiers []model.Tier
	for _, row := range rows {
		cells, err := htmlquery.QueryAll(row, "//td")
		if err != nil || len(cells) < 4 {
			continue
		}
		min, max, ok := parseRange(nodeText(cells[0]))
		if !ok {
			continue
		}
		rate := parseRate(nodeText(cells[2]))
		if !rate.IsPositive() {
			continue
		}
		tiers = append(tiers, model.Tier{
			Min:        min,
			Max:        max,
			AnnualRate: rate,
			NIB:        parseAmount(nodeText(cells[1])),
		})
	}
	return model.CanonicalTiers(tiers)
}
