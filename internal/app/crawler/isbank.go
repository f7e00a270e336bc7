package crawler

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ytoklu/mevduat-compare/internal/pkg/model"
)

const isbankRatesURL = "https://www.isbank.com.tr/api/overnight-deposit-rates"

// İş Bankası publishes en-US formatted amounts: comma thousands, period decimal,
// open-ended ranges as "1,000,000+".
var (
	isbankOpenRE    = regexp.MustCompile(`([\d,]+\.?\d*)\s*\+`)
	isbankBoundedRE = regexp.MustCompile(`([\d,]+\.?\d*)\s*[-–]\s*([\d,]+\.?\d*)`)
)

var _ SourceAdapter = &IsBankasiAdapter{}

type IsBankasiAdapter struct {
	logger *zap.Logger
}

func NewIsBankasiAdapter(logger *zap.Logger) *IsBankasiAdapter {
	return &IsBankasiAdapter{logger: logger}
}

func (a *IsBankasiAdapter) Profile() Profile {
	return Profile{
		ID:          "is-bankasi",
		Name:        "İş Bankası",
		Type:        "private",
		ProductName: "Gecelik Vadeli Mevduat",
		Website:     "https://www.isbank.com.tr",
	}
}

func (a *IsBankasiAdapter) Request() Request {
	return Request{URL: isbankRatesURL}
}

type isbankPayload struct {
	Data []struct {
		PriceRange string `json:"PriceRange"`
		RateValue  string `json:"RateValue"`
	} `json:"Data"`
}

func (a *IsBankasiAdapter) Normalize(raw []byte) []model.Tier {
	var payload isbankPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		a.logger.Warn("unexpected payload", zap.Error(err))
		return nil
	}

	tiers := make([]model.Tier, 0, len(payload.Data))
	for _, item := range payload.Data {
		rate := enUSAmount(item.RateValue)
		if !rate.IsPositive() {
			continue
		}

		if m := isbankOpenRE.FindStringSubmatch(item.PriceRange); m != nil {
			tiers = append(tiers, model.Tier{Min: enUSAmount(m[1]), AnnualRate: rate})
			continue
		}
		if m := isbankBoundedRE.FindStringSubmatch(item.PriceRange); m != nil {
			max := enUSAmount(m[2])
			tiers = append(tiers, model.Tier{Min: enUSAmount(m[1]), Max: &max, AnnualRate: rate})
		}
	}
	return model.CanonicalTiers(tiers)
}

func enUSAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(strings.ReplaceAll(s, ",", "")))
	if err != nil {
		return decimal.Zero
	}
	return d
}
