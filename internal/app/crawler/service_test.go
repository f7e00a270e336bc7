package crawler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ytoklu/mevduat-compare/internal/pkg/model"
)

type stubAdapter struct {
	id     string
	tiers  []model.Tier
	panics bool
}

func (s *stubAdapter) Profile() Profile {
	return Profile{ID: s.id, Name: s.id, Type: "private", ProductName: "Vadeli Hesap"}
}

func (s *stubAdapter) Request() Request { return Request{URL: "https://" + s.id + ".example"} }

func (s *stubAdapter) Normalize(_ []byte) []model.Tier {
	if s.panics {
		panic("boom")
	}
	return s.tiers
}

type stubFetcher struct {
	failFor map[string]bool
	delay   time.Duration
}

func (f *stubFetcher) Fetch(ctx context.Context, req Request) ([]byte, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.failFor[req.URL] {
		return nil, errors.New("connection refused")
	}
	return []byte("payload"), nil
}

type captureStore struct {
	snap    model.Snapshot
	written bool
	err     error
}

func (c *captureStore) WriteSnapshot(_ context.Context, snap model.Snapshot) error {
	if c.err != nil {
		return c.err
	}
	c.snap = snap
	c.written = true
	return nil
}

func oneTier(rate int64) []model.Tier {
	return []model.Tier{{AnnualRate: decimal.NewFromInt(rate)}}
}

func TestServiceCrawl_FailuresStayIsolated(t *testing.T) {
	store := &captureStore{}
	fetcher := &stubFetcher{failFor: map[string]bool{"https://down.example": true}}
	adapters := []SourceAdapter{
		&stubAdapter{id: "alfa", tiers: oneTier(40)},
		&stubAdapter{id: "down"},
		&stubAdapter{id: "bos"}, // fetch succeeds, normalization yields nothing
		&stubAdapter{id: "beta", tiers: oneTier(45)},
	}

	svc := NewService(store, fetcher, adapters, ServiceConfig{WithholdingRate: decimal.NewFromFloat(17.5)}, zap.NewNop())
	stats, err := svc.Crawl(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Stats{Succeeded: 2, Total: 4}, stats)
	assert.False(t, stats.Degraded())

	require.True(t, store.written)
	require.Len(t, store.snap.Banks, 4)

	// Registration order survives the fan-out.
	assert.Equal(t, "alfa", store.snap.Banks[0].ID)
	assert.Equal(t, "down", store.snap.Banks[1].ID)
	assert.Equal(t, "bos", store.snap.Banks[2].ID)
	assert.Equal(t, "beta", store.snap.Banks[3].ID)

	// Failed sources still appear, with an empty (non-nil) tier list.
	assert.NotNil(t, store.snap.Banks[1].Tiers)
	assert.Empty(t, store.snap.Banks[1].Tiers)
	assert.False(t, store.snap.Banks[1].Usable())
	assert.Empty(t, store.snap.Banks[2].Tiers)

	assert.Equal(t, "17.5", store.snap.DefaultWithholdingRate.String())
	assert.False(t, store.snap.LastUpdated.IsZero())
}

func TestServiceCrawl_Degraded(t *testing.T) {
	store := &captureStore{}
	fetcher := &stubFetcher{failFor: map[string]bool{
		"https://bir.example": true,
		"https://iki.example": true,
		"https://uc.example":  true,
	}}
	adapters := []SourceAdapter{
		&stubAdapter{id: "bir"},
		&stubAdapter{id: "iki"},
		&stubAdapter{id: "uc"},
		&stubAdapter{id: "dort", tiers: oneTier(42)},
	}

	svc := NewService(store, fetcher, adapters, ServiceConfig{}, zap.NewNop())
	stats, err := svc.Crawl(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Stats{Succeeded: 1, Total: 4}, stats)
	assert.True(t, stats.Degraded())
	assert.True(t, store.written)
}

func TestServiceCrawl_PanickingAdapter(t *testing.T) {
	store := &captureStore{}
	adapters := []SourceAdapter{
		&stubAdapter{id: "patlak", panics: true},
		&stubAdapter{id: "saglam", tiers: oneTier(41)},
	}

	svc := NewService(store, &stubFetcher{}, adapters, ServiceConfig{}, zap.NewNop())
	stats, err := svc.Crawl(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Stats{Succeeded: 1, Total: 2}, stats)
	require.Len(t, store.snap.Banks, 2)
	assert.Empty(t, store.snap.Banks[0].Tiers)
	assert.Equal(t, "saglam", store.snap.Banks[1].ID)
	assert.True(t, store.snap.Banks[1].Usable())
}

func TestServiceCrawl_SlowSourceTimesOut(t *testing.T) {
	store := &captureStore{}
	fetcher := &stubFetcher{delay: 200 * time.Millisecond}
	adapters := []SourceAdapter{&stubAdapter{id: "yavas", tiers: oneTier(44)}}

	svc := NewService(store, fetcher, adapters, ServiceConfig{SourceTimeout: 10 * time.Millisecond}, zap.NewNop())
	stats, err := svc.Crawl(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Stats{Succeeded: 0, Total: 1}, stats)
	assert.True(t, stats.Degraded())
}

func TestServiceCrawl_StoreError(t *testing.T) {
	store := &captureStore{err: errors.New("disk full")}
	adapters := []SourceAdapter{&stubAdapter{id: "tek", tiers: oneTier(40)}}

	svc := NewService(store, &stubFetcher{}, adapters, ServiceConfig{}, zap.NewNop())
	stats, err := svc.Crawl(context.Background())

	require.Error(t, err)
	assert.Equal(t, Stats{Succeeded: 1, Total: 1}, stats)
}
