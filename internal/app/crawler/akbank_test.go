package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const akbankFixture = `{
  "d": {
    "Data": {
      "Description": "Vadesiz bakiyenin %20'si faiz dışı tutulur.",
      "ServiceData": {
        "Headers": ["0 - 50.000 TL", "50.000 - 250.000 TL", "250.000 TL ve üzeri"],
        "GrossRates": [
          {"GRates": [{"Rate": "%30"}, {"Rate": "%0"}, {"Rate": "%41,5"}]}
        ]
      }
    }
  }
}`

func TestAkbankNormalize(t *testing.T) {
	a := NewAkbankAdapter(zap.NewNop())
	tiers := a.Normalize([]byte(akbankFixture))

	// The zero-rate middle column is dropped.
	require.Len(t, tiers, 2)

	assert.Equal(t, "0", tiers[0].Min.String())
	require.NotNil(t, tiers[0].Max)
	assert.Equal(t, "50000", tiers[0].Max.String())
	assert.Equal(t, "30", tiers[0].AnnualRate.String())
	assert.Equal(t, "20", tiers[0].NIBPercentage.String())

	assert.Equal(t, "250000", tiers[1].Min.String())
	assert.Nil(t, tiers[1].Max)
	assert.Equal(t, "41.5", tiers[1].AnnualRate.String())
}

func TestAkbankNormalize_Malformed(t *testing.T) {
	a := NewAkbankAdapter(zap.NewNop())

	assert.Empty(t, a.Normalize([]byte("not json")))
	assert.Empty(t, a.Normalize([]byte(`{"d":{}}`)))
	assert.Empty(t, a.Normalize(nil))

	// Header/rate column mismatch discards the payload rather than guessing.
	mismatch := `{"d":{"Data":{"ServiceData":{
		"Headers":["0 - 50.000 TL","50.000 TL ve üzeri"],
		"GrossRates":[{"GRates":[{"Rate":"%30"}]}]}}}}`
	assert.Empty(t, a.Normalize([]byte(mismatch)))
}
