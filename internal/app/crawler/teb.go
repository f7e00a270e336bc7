package crawler

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ytoklu/mevduat-compare/internal/pkg/model"
)

const tebRatesURL = "https://www.teb.com.tr/api/marifetli-hesap-oranlari"

var _ SourceAdapter = &TEBAdapter{}

// TEBAdapter reads TEB's rate endpoint: an array of tier objects with numeric
// bounds, a welcome rate falling back to the list rate, and a fixed
// non-interest-bearing balance per tier. A null upper limit means open-ended.
type TEBAdapter struct {
	logger *zap.Logger
}

func NewTEBAdapter(logger *zap.Logger) *TEBAdapter {
	return &TEBAdapter{logger: logger}
}

func (a *TEBAdapter) Profile() Profile {
	return Profile{
		ID:          "teb",
		Name:        "TEB",
		Type:        "private",
		ProductName: "Marifetli Hesap",
		Website:     "https://www.teb.com.tr",
	}
}

func (a *TEBAdapter) Request() Request {
	return Request{
		URL:         tebRatesURL,
		Method:      "POST",
		Body:        "paraKod=TL&ceptetebEH=E",
		ContentType: "application/x-www-form-urlencoded; charset=UTF-8",
	}
}

type tebTier struct {
	AltLimit      decimal.Decimal  `json:"altLimit"`
	UstLimit      *decimal.Decimal `json:"ustLimit"`
	HosgeldinOran decimal.Decimal  `json:"hosgeldinOran"`
	TabelaOran    decimal.Decimal  `json:"tabelaOran"`
	VadesizBakiye decimal.Decimal  `json:"vadesizBakiye"`
}

func (a *TEBAdapter) Normalize(raw []byte) []model.Tier {
	var items []tebTier
	if err := json.Unmarshal(raw, &items); err != nil {
		a.logger.Warn("unexpected payload", zap.Error(err))
		return nil
	}

	tiers := make([]model.Tier, 0, len(items))
	for _, item := range items {
		rate := item.HosgeldinOran
		if !rate.IsPositive() {
			rate = item.TabelaOran
		}
		if !rate.IsPositive() {
			continue
		}
		tiers = append(tiers, model.Tier{
			Min:        item.AltLimit,
			Max:        item.UstLimit,
			AnnualRate: rate,
			NIB:        item.VadesizBakiye,
		})
	}
	return model.CanonicalTiers(tiers)
}
