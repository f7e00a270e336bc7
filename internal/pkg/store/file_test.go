package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ytoklu/mevduat-compare/internal/pkg/model"
)

func sampleSnapshot() model.Snapshot {
	max := decimal.NewFromInt(100000)
	return model.Snapshot{
		LastUpdated:            time.Date(2026, 8, 29, 7, 30, 0, 0, time.UTC),
		DefaultWithholdingRate: decimal.NewFromFloat(17.5),
		Banks: []model.Bank{
			{
				ID:          "alfabank",
				Name:        "Alfa Bank",
				Type:        "private",
				ProductName: "Vadeli Hesap",
				Website:     "https://alfabank.example",
				Tiers: []model.Tier{
					{Max: &max, AnnualRate: decimal.NewFromInt(42), NIB: decimal.NewFromInt(5000)},
					{Min: decimal.NewFromInt(100000), AnnualRate: decimal.NewFromFloat(44.5)},
				},
			},
			{ID: "kapali", Name: "Kapalı Bank", Type: "state", Tiers: []model.Tier{}},
		},
	}
}

func TestFileRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "rates.json")
	f := NewFile(path, zap.NewNop())

	want := sampleSnapshot()
	require.NoError(t, f.WriteSnapshot(context.Background(), want))

	got, err := f.ReadSnapshot(context.Background())
	require.NoError(t, err)

	assert.True(t, got.LastUpdated.Equal(want.LastUpdated))
	assert.True(t, got.DefaultWithholdingRate.Equal(want.DefaultWithholdingRate))
	require.Len(t, got.Banks, 2)

	tiers := got.Banks[0].Tiers
	require.Len(t, tiers, 2)
	require.NotNil(t, tiers[0].Max)
	assert.True(t, tiers[0].Max.Equal(*want.Banks[0].Tiers[0].Max))
	assert.Nil(t, tiers[1].Max)
	assert.True(t, tiers[1].AnnualRate.Equal(decimal.NewFromFloat(44.5)))

	// An unavailable bank survives as an empty list, not null.
	assert.NotNil(t, got.Banks[1].Tiers)
	assert.Empty(t, got.Banks[1].Tiers)
	assert.False(t, got.Banks[1].Usable())
}

func TestFileWriteLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rates.json")
	f := NewFile(path, zap.NewNop())

	require.NoError(t, f.WriteSnapshot(context.Background(), sampleSnapshot()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "rates.json", entries[0].Name())
}

func TestFileReadMissing(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "nope.json"), zap.NewNop())
	_, err := f.ReadSnapshot(context.Background())
	assert.Error(t, err)
}

func TestFanout(t *testing.T) {
	dir := t.TempDir()
	first := NewFile(filepath.Join(dir, "a.json"), zap.NewNop())
	second := NewFile(filepath.Join(dir, "b.json"), zap.NewNop())
	fan := Fanout{first, second}

	require.NoError(t, fan.WriteSnapshot(context.Background(), sampleSnapshot()))

	// Both targets got the write; reads come from the first that answers.
	for _, s := range []*File{first, second} {
		snap, err := s.ReadSnapshot(context.Background())
		require.NoError(t, err)
		assert.Len(t, snap.Banks, 2)
	}

	snap, err := fan.ReadSnapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Banks, 2)
}

func TestFanoutEmpty(t *testing.T) {
	_, err := Fanout{}.ReadSnapshot(context.Background())
	assert.Error(t, err)
}
