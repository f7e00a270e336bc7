package crawler

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ytoklu/mevduat-compare/internal/pkg/model"
)

const vakifbankRatesURL = "https://www.vakifbank.com.tr/tr/bireysel/mevduat/vadeli-mevduat/tanisma-faizi"

// The promo rate only appears in running text, in a few phrasings.
var vakifbankRateREs = []*regexp.Regexp{
	regexp.MustCompile(`(?i)g[üu]nl[üu]k\s*%\s*([\d.,]+)`),
	regexp.MustCompile(`(?i)tan[ıi][şs]ma\s+faizi[^%]*%\s*([\d.,]+)`),
	regexp.MustCompile(`(?i)%\s*([\d.,]+)\s*(?:faiz|tan[ıi][şs]ma)`),
}

var _ SourceAdapter = &VakifBankAdapter{}

// VakifBankAdapter produces a single open-ended tier: one promo rate scraped from
// the page text plus a percentage-based NIB from the last row of the TL tab's
// table (10% when the table is missing).
type VakifBankAdapter struct {
	logger *zap.Logger
}

func NewVakifBankAdapter(logger *zap.Logger) *VakifBankAdapter {
	return &VakifBankAdapter{logger: logger}
}

func (a *VakifBankAdapter) Profile() Profile {
	return Profile{
		ID:          "vakifbank",
		Name:        "VakıfBank",
		Type:        "state",
		ProductName: "Tanışma Faizi",
		Website:     "https://www.vakifbank.com.tr",
	}
}

func (a *VakifBankAdapter) Request() Request {
	return Request{URL: vakifbankRatesURL}
}

func (a *VakifBankAdapter) Normalize(raw []byte) []model.Tier {
	doc, err := htmlquery.Parse(bytes.NewReader(raw))
	if err != nil {
		a.logger.Warn("failed to parse document", zap.Error(err))
		return nil
	}

	body := nodeText(doc)
	rate := decimal.Zero
	for _, re := range vakifbankRateREs {
		if m := re.FindStringSubmatch(body); m != nil {
			rate = parseRate(m[1])
			break
		}
	}
	if !rate.IsPositive() {
		return nil
	}

	nibPct := decimal.NewFromInt(10)
	if tab, _ := htmlquery.Query(doc, "//*[@id='nav-tl']//table"); tab != nil {
		rows, _ := htmlquery.QueryAll(tab, "//tbody/tr")
		for _, row := range rows {
			cells, err := htmlquery.QueryAll(row, "//td")
			if err != nil || len(cells) < 2 {
				continue
			}
			if _, _, ok := parseRange(nodeText(cells[0])); !ok {
				continue
			}
			if text := nodeText(cells[1]); strings.Contains(text, "tamam") {
				nibPct = decimal.NewFromInt(100)
			} else {
				nibPct = parseRate(text)
			}
		}
	}

	return model.CanonicalTiers([]model.Tier{{
		AnnualRate:    rate,
		NIBPercentage: nibPct,
	}})
}
