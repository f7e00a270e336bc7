package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const vakifbankFixture = `<html><body>
<h1>Tanışma Faizi</h1>
<p>Yeni müşterilerimize günlük %48,5 faiz fırsatı.</p>
<div id="nav-tl">
  <table>
    <tbody>
      <tr><td>0 - 100.000 TL</td><td>%10</td></tr>
      <tr><td>100.000 TL ve üzeri</td><td>%20</td></tr>
      <tr><td>Açıklama</td><td>Oranlar değişebilir.</td></tr>
    </tbody>
  </table>
</div>
</body></html>`

func TestVakifBankNormalize(t *testing.T) {
	a := NewVakifBankAdapter(zap.NewNop())
	tiers := a.Normalize([]byte(vakifbankFixture))

	require.Len(t, tiers, 1)
	assert.Equal(t, "0", tiers[0].Min.String())
	assert.Nil(t, tiers[0].Max)
	assert.Equal(t, "48.5", tiers[0].AnnualRate.String())
	// NIB percentage comes from the last row with a parseable range.
	assert.Equal(t, "20", tiers[0].NIBPercentage.String())
}

func TestVakifBankNormalize_FullBalanceKeyword(t *testing.T) {
	fixture := `<html><body>
<p>Tanışma faizi ile %45 kazanın.</p>
<div id="nav-tl"><table><tbody>
<tr><td>0 TL ve üzeri</td><td>tutarın tamamı</td></tr>
</tbody></table></div>
</body></html>`

	a := NewVakifBankAdapter(zap.NewNop())
	tiers := a.Normalize([]byte(fixture))

	require.Len(t, tiers, 1)
	assert.Equal(t, "45", tiers[0].AnnualRate.String())
	assert.Equal(t, "100", tiers[0].NIBPercentage.String())
}

func TestVakifBankNormalize_MissingTableDefaultsNIB(t *testing.T) {
	a := NewVakifBankAdapter(zap.NewNop())
	tiers := a.Normalize([]byte(`<html><body><p>günlük %40 faiz</p></body></html>`))

	require.Len(t, tiers, 1)
	assert.Equal(t, "40", tiers[0].AnnualRate.String())
	assert.Equal(t, "10", tiers[0].NIBPercentage.String())
}

func TestVakifBankNormalize_NoRateText(t *testing.T) {
	a := NewVakifBankAdapter(zap.NewNop())
	assert.Empty(t, a.Normalize([]byte("<html><body><p>Kampanya sona ermiştir.</p></body></html>")))
}
