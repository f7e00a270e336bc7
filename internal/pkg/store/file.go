package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ytoklu/mevduat-compare/internal/pkg/model"
)

var _ Store = &File{}

// File keeps the snapshot as one JSON document on disk, the same document the
// ingestion batch exchanges with serving sessions. Writes are atomic via a
// temp-file rename.
type File struct {
	path   string
	logger *zap.Logger
}

func NewFile(path string, logger *zap.Logger) *File {
	return &File{path: path, logger: logger}
}

func (f *File) WriteSnapshot(_ context.Context, snap model.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("creating snapshot dir: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replacing snapshot: %w", err)
	}

	f.logger.Info("snapshot file written", zap.String("path", f.path), zap.Int("banks", len(snap.Banks)))
	return nil
}

func (f *File) ReadSnapshot(_ context.Context) (model.Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("reading snapshot: %w", err)
	}

	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return model.Snapshot{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	return snap, nil
}
