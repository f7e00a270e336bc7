package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ytoklu/mevduat-compare/internal/pkg/model"
)

var _ Store = &Postgres{}

// Postgres keeps one snapshot row per civil day; rerunning the batch on the same
// day overwrites that day's snapshot. ReadSnapshot returns the most recent day.
type Postgres struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) *Postgres {
	return &Postgres{pool: pool, logger: logger}
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS snapshots (
    rate_date        date PRIMARY KEY,
    last_updated     timestamptz NOT NULL,
    withholding_rate numeric     NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshot_banks (
    rate_date    date NOT NULL REFERENCES snapshots (rate_date) ON DELETE CASCADE,
    position     int  NOT NULL,
    id           text NOT NULL,
    name         text NOT NULL,
    bank_type    text NOT NULL,
    product_name text NOT NULL,
    website      text NOT NULL,
    tiers        jsonb NOT NULL,
    PRIMARY KEY (rate_date, id)
);`

func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}

func (p *Postgres) WriteSnapshot(ctx context.Context, snap model.Snapshot) error {
	day := civil.DateOf(snap.LastUpdated)

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO snapshots (rate_date, last_updated, withholding_rate)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (rate_date) DO UPDATE
		 SET last_updated = EXCLUDED.last_updated, withholding_rate = EXCLUDED.withholding_rate`,
		day.String(), snap.LastUpdated, snap.DefaultWithholdingRate.String())
	if err != nil {
		return fmt.Errorf("upserting snapshot row: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM snapshot_banks WHERE rate_date = $1`, day.String()); err != nil {
		return fmt.Errorf("clearing banks: %w", err)
	}

	for i, b := range snap.Banks {
		tiers, err := json.Marshal(b.Tiers)
		if err != nil {
			return fmt.Errorf("encoding tiers for %s: %w", b.ID, err)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO snapshot_banks (rate_date, position, id, name, bank_type, product_name, website, tiers)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			day.String(), i, b.ID, b.Name, b.Type, b.ProductName, b.Website, tiers)
		if err != nil {
			return fmt.Errorf("inserting bank %s: %w", b.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}

	p.logger.Info("snapshot stored", zap.String("rateDate", day.String()), zap.Int("banks", len(snap.Banks)))
	return nil
}

func (p *Postgres) ReadSnapshot(ctx context.Context) (model.Snapshot, error) {
	var (
		rateDate    string
		lastUpdated time.Time
		withholding string
	)
	err := p.pool.QueryRow(ctx,
		`SELECT rate_date::text, last_updated, withholding_rate::text
		 FROM snapshots ORDER BY rate_date DESC LIMIT 1`).
		Scan(&rateDate, &lastUpdated, &withholding)
	if err == pgx.ErrNoRows {
		return model.Snapshot{}, fmt.Errorf("no snapshot stored")
	}
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("reading snapshot row: %w", err)
	}

	rate, err := decimal.NewFromString(withholding)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("decoding withholding rate: %w", err)
	}
	snap := model.Snapshot{LastUpdated: lastUpdated, DefaultWithholdingRate: rate}

	rows, err := p.pool.Query(ctx,
		`SELECT id, name, bank_type, product_name, website, tiers
		 FROM snapshot_banks WHERE rate_date = $1 ORDER BY position`, rateDate)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("reading banks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			b        model.Bank
			rawTiers []byte
		)
		if err := rows.Scan(&b.ID, &b.Name, &b.Type, &b.ProductName, &b.Website, &rawTiers); err != nil {
			return model.Snapshot{}, fmt.Errorf("scanning bank: %w", err)
		}
		b.Tiers = []model.Tier{}
		if err := json.Unmarshal(rawTiers, &b.Tiers); err != nil {
			return model.Snapshot{}, fmt.Errorf("decoding tiers for %s: %w", b.ID, err)
		}
		snap.Banks = append(snap.Banks, b)
	}
	if err := rows.Err(); err != nil {
		return model.Snapshot{}, fmt.Errorf("iterating banks: %w", err)
	}
	return snap, nil
}
