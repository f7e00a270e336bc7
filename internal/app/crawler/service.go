package crawler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/ytoklu/mevduat-compare/internal/pkg/model"
)

// Store receives the finished snapshot of one ingestion cycle. Each write
// replaces the previous snapshot wholesale.
type Store interface {
	WriteSnapshot(ctx context.Context, snap model.Snapshot) error
}

// Stats is the batch outcome of one crawl.
type Stats struct {
	Succeeded int
	Total     int
}

// Degraded reports whether fewer than half of the configured sources produced a
// non-empty tier list.
func (s Stats) Degraded() bool {
	return s.Succeeded*2 < s.Total
}

type ServiceConfig struct {
	Workers         int64
	SourceTimeout   time.Duration
	WithholdingRate decimal.Decimal
}

// Service fans the configured sources out over a bounded worker pool, normalizes
// each payload independently and assembles the canonical snapshot. One source's
// failure or timeout never aborts its siblings; a failed source is kept in the
// snapshot with an empty tier list so it renders as unavailable.
type Service struct {
	store    Store
	fetcher  Fetcher
	adapters []SourceAdapter
	cfg      ServiceConfig
	logger   *zap.Logger
}

func NewService(store Store, fetcher Fetcher, adapters []SourceAdapter, cfg ServiceConfig, logger *zap.Logger) *Service {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.SourceTimeout <= 0 {
		cfg.SourceTimeout = 20 * time.Second
	}
	return &Service{
		store:    store,
		fetcher:  fetcher,
		adapters: adapters,
		cfg:      cfg,
		logger:   logger,
	}
}

// Crawl runs one ingestion cycle and writes the resulting snapshot to the store.
// Bank order in the snapshot follows adapter registration order.
func (s *Service) Crawl(ctx context.Context) (Stats, error) {
	sem := semaphore.NewWeighted(s.cfg.Workers)
	banks := make([]model.Bank, len(s.adapters))

	var wg sync.WaitGroup
	for i, a := range s.adapters {
		wg.Add(1)
		go func(i int, a SourceAdapter) {
			defer wg.Done()
			banks[i] = s.crawlOne(ctx, sem, a)
		}(i, a)
	}
	wg.Wait()
	s.logger.Info("all sources finished")

	stats := Stats{Total: len(banks)}
	for _, b := range banks {
		if b.Usable() {
			stats.Succeeded++
		}
	}

	snap := model.Snapshot{
		LastUpdated:            time.Now().UTC(),
		DefaultWithholdingRate: s.cfg.WithholdingRate,
		Banks:                  banks,
	}
	if err := s.store.WriteSnapshot(ctx, snap); err != nil {
		return stats, fmt.Errorf("writing snapshot: %w", err)
	}

	s.logger.Info("snapshot written",
		zap.Int("succeeded", stats.Succeeded),
		zap.Int("total", stats.Total))
	return stats, nil
}

func (s *Service) crawlOne(ctx context.Context, sem *semaphore.Weighted, a SourceAdapter) (bank model.Bank) {
	p := a.Profile()
	bank = model.Bank{
		ID:          p.ID,
		Name:        p.Name,
		Type:        p.Type,
		ProductName: p.ProductName,
		Website:     p.Website,
		Tiers:       []model.Tier{},
	}

	// An adapter must not panic, but a misbehaving one may only take down its
	// own source.
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("source adapter panicked", zap.String("source", p.ID), zap.Any("panic", r))
		}
	}()

	if err := sem.Acquire(ctx, 1); err != nil {
		s.logger.Warn("source skipped", zap.String("source", p.ID), zap.Error(err))
		return bank
	}
	defer sem.Release(1)

	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.SourceTimeout)
	defer cancel()

	raw, err := s.fetcher.Fetch(fetchCtx, a.Request())
	if err != nil {
		s.logger.Warn("source fetch failed", zap.String("source", p.ID), zap.Error(err))
		return bank
	}

	tiers := a.Normalize(raw)
	if len(tiers) == 0 {
		s.logger.Warn("source produced no tiers", zap.String("source", p.ID))
		return bank
	}

	bank.Tiers = tiers
	s.logger.Info("source normalized", zap.String("source", p.ID), zap.Int("tiers", len(tiers)))
	return bank
}
