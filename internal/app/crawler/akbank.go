package crawler

import (
	"encoding/json"
	"regexp"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ytoklu/mevduat-compare/internal/pkg/model"
)

const akbankRatesURL = "https://www.akbank.com/api/interest-rates/serbest-plus"

var nibPercentRE = regexp.MustCompile(`%(\d+)`)

var _ SourceAdapter = &AkbankAdapter{}

// AkbankAdapter reads Akbank's rate service: a header row of range labels zipped
// with one row of gross rates. The account's NIB percentage is only mentioned in
// the free-text description.
type AkbankAdapter struct {
	logger *zap.Logger
}

func NewAkbankAdapter(logger *zap.Logger) *AkbankAdapter {
	return &AkbankAdapter{logger: logger}
}

func (a *AkbankAdapter) Profile() Profile {
	return Profile{
		ID:          "akbank",
		Name:        "Akbank",
		Type:        "private",
		ProductName: "Serbest Plus Hesap",
		Website:     "https://www.akbank.com",
	}
}

func (a *AkbankAdapter) Request() Request {
	return Request{
		URL:         akbankRatesURL,
		Method:      "POST",
		Body:        `{"dovizKodu":888,"faizTipi":20,"faizTuru":0,"kanalKodu":72}`,
		ContentType: "application/json; charset=utf-8",
	}
}

type akbankPayload struct {
	D struct {
		Data struct {
			Description string `json:"Description"`
			ServiceData *struct {
				Headers    []string `json:"Headers"`
				GrossRates []struct {
					GRates []struct {
						Rate string `json:"Rate"`
					} `json:"GRates"`
				} `json:"GrossRates"`
			} `json:"ServiceData"`
		} `json:"Data"`
	} `json:"d"`
}

func (a *AkbankAdapter) Normalize(raw []byte) []model.Tier {
	var payload akbankPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		a.logger.Warn("unexpected payload", zap.Error(err))
		return nil
	}

	svc := payload.D.Data.ServiceData
	if svc == nil || len(svc.Headers) == 0 || len(svc.GrossRates) == 0 {
		return nil
	}
	rates := svc.GrossRates[0].GRates
	if len(rates) != len(svc.Headers) {
		a.logger.Warn("header/rate column mismatch",
			zap.Int("headers", len(svc.Headers)), zap.Int("rates", len(rates)))
		return nil
	}

	var nibPct int64
	if m := nibPercentRE.FindStringSubmatch(payload.D.Data.Description); m != nil {
		nibPct = parseAmount(m[1]).IntPart()
	}

	tiers := make([]model.Tier, 0, len(svc.Headers))
	for i, header := range svc.Headers {
		min, max, ok := parseRange(header)
		if !ok {
			continue
		}
		rate := parseRate(rates[i].Rate)
		if !rate.IsPositive() {
			continue
		}
		t := model.Tier{Min: min, Max: max, AnnualRate: rate}
		if nibPct > 0 {
			t.NIBPercentage = decimal.NewFromInt(nibPct)
		}
		tiers = append(tiers, t)
	}
	return model.CanonicalTiers(tiers)
}
