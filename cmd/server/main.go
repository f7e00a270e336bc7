package main

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	"go.uber.org/zap"

	"github.com/ytoklu/mevduat-compare/internal/app/api"
	"github.com/ytoklu/mevduat-compare/internal/pkg/config"
	"github.com/ytoklu/mevduat-compare/internal/pkg/store"
)

func main() {
	logger, err := zap.NewDevelopment()
	noErr(err)
	defer logger.Sync()

	cfg := config.Load()
	ctx := context.Background()

	var st store.Store = store.NewFile(cfg.SnapshotPath, logger.Named("File Store"))
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.DatabaseURL)
		noErr(err)
		defer pool.Close()
		st = store.NewPostgres(pool, logger.Named("PG Store"))
	}

	snap, err := st.ReadSnapshot(ctx)
	noErr(err)
	logger.Info("snapshot loaded",
		zap.Time("lastUpdated", snap.LastUpdated),
		zap.Int("banks", len(snap.Banks)))

	srv := api.New(snap, logger.Named("API"))
	noErr(srv.Router().Run(cfg.HTTPAddr))
}

func noErr(err error) {
	if err != nil {
		panic("failed to initialize something important: " + err.Error())
	}
}
