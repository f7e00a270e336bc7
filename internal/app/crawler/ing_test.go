package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const ingFixture = `<html><body>
<table class="ui-tables">
  <tr class="table-header"><td>Tutar Aralığı</td><td>Vadesiz Tutar</td><td>Faiz Oranı</td><td>Vade</td></tr>
  <tr>
    <td><div class="value">25.000 - 250.000 TL</div></td>
    <td><div class="value">2.500 TL</div></td>
    <td><div class="value">%44,25</div></td>
    <td><div class="value">32 gün</div></td>
  </tr>
  <tr>
    <td>250.000 TL ve üzeri</td>
    <td>7.500 TL</td>
    <td>%46</td>
    <td>32 gün</td>
  </tr>
  <tr><td>Kampanya koşulları</td><td>-</td><td>-</td><td>-</td></tr>
</table>
</body></html>`

func TestINGNormalize(t *testing.T) {
	a := NewINGAdapter(zap.NewNop())
	tiers := a.Normalize([]byte(ingFixture))

	require.Len(t, tiers, 2)

	// Values wrapped in div.value and bare cell text both parse.
	assert.Equal(t, "25000", tiers[0].Min.String())
	require.NotNil(t, tiers[0].Max)
	assert.Equal(t, "250000", tiers[0].Max.String())
	assert.Equal(t, "44.25", tiers[0].AnnualRate.String())
	assert.Equal(t, "2500", tiers[0].NIB.String())

	assert.Equal(t, "250000", tiers[1].Min.String())
	assert.Nil(t, tiers[1].Max)
	assert.Equal(t, "46", tiers[1].AnnualRate.String())
	assert.Equal(t, "7500", tiers[1].NIB.String())
}

func TestINGNormalize_NoTable(t *testing.T) {
	a := NewINGAdapter(zap.NewNop())
	assert.Empty(t, a.Normalize([]byte("<html><body><table><tr><td>yanlış tablo</td></tr></table></body></html>")))
}
