// Package store persists ingestion snapshots and serves them back to a session.
package store

import (
	"context"
	"errors"

	"github.com/ytoklu/mevduat-compare/internal/pkg/model"
)

// Store holds at most one current snapshot; writes replace it wholesale.
type Store interface {
	WriteSnapshot(ctx context.Context, snap model.Snapshot) error
	ReadSnapshot(ctx context.Context) (model.Snapshot, error)
}

var _ Store = Fanout{}

// Fanout writes to every underlying store and reads from the first one that has
// a snapshot.
type Fanout []Store

func (f Fanout) WriteSnapshot(ctx context.Context, snap model.Snapshot) error {
	for _, s := range f {
		if err := s.WriteSnapshot(ctx, snap); err != nil {
			return err
		}
	}
	return nil
}

func (f Fanout) ReadSnapshot(ctx context.Context) (model.Snapshot, error) {
	lastErr := errors.New("no stores configured")
	for _, s := range f {
		snap, err := s.ReadSnapshot(ctx)
		if err == nil {
			return snap, nil
		}
		lastErr = err
	}
	return model.Snapshot{}, lastErr
}
