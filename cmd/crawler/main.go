package main

import (
	"context"
	"os"

	"github.com/jackc/pgx/v4/pgxpool"
	"go.uber.org/zap"

	"github.com/ytoklu/mevduat-compare/internal/app/crawler"
	"github.com/ytoklu/mevduat-compare/internal/pkg/config"
	"github.com/ytoklu/mevduat-compare/internal/pkg/store"
)

func main() {
	logger, err := zap.NewDevelopment()
	noErr(err)
	defer logger.Sync()

	cfg := config.Load()
	ctx := context.Background()

	adapters := []crawler.SourceAdapter{
		crawler.NewAkbankAdapter(logger.Named("Akbank")),
		crawler.NewIsBankasiAdapter(logger.Named("IsBankasi")),
		crawler.NewTEBAdapter(logger.Named("TEB")),
		crawler.NewINGAdapter(logger.Named("ING")),
		crawler.NewDenizBankAdapter(logger.Named("DenizBank")),
		crawler.NewZiraatAdapter(logger.Named("Ziraat")),
		crawler.NewVakifBankAdapter(logger.Named("VakifBank")),
	}

	stores := store.Fanout{store.NewFile(cfg.SnapshotPath, logger.Named("File Store"))}
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.DatabaseURL)
		noErr(err)
		defer pool.Close()

		pgStore := store.NewPostgres(pool, logger.Named("PG Store"))
		noErr(pgStore.EnsureSchema(ctx))
		stores = append(stores, pgStore)
	}

	fetcher := crawler.NewHTTPFetcher(cfg.SourceTimeout, logger.Named("Fetcher"))
	svc := crawler.NewService(stores, fetcher, adapters, crawler.ServiceConfig{
		Workers:         cfg.CrawlWorkers,
		SourceTimeout:   cfg.SourceTimeout,
		WithholdingRate: cfg.WithholdingRate,
	}, logger.Named("Crawler Svc"))

	stats, err := svc.Crawl(ctx)
	noErr(err)

	if stats.Degraded() {
		logger.Error("batch degraded: less than half of the sources produced tiers",
			zap.Int("succeeded", stats.Succeeded), zap.Int("total", stats.Total))
		os.Exit(1)
	}
}

func noErr(err error) {
	if err != nil {
		panic("failed to initialize something important: " + err.Error())
	}
}
