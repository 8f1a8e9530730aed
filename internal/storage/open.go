package storage

import (
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/leadboard/internal/sqlite"
	"github.com/mesh-intelligence/leadboard/pkg/types"
)

// Open validates config and returns a LeadStore on the selected backend.
// The caller must Close the store.
func Open(config types.Config, logger *slog.Logger) (*LeadStore, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var kv KV
	switch config.Backend {
	case types.BackendFile:
		f, err := NewFileKV(config.DataDir)
		if err != nil {
			return nil, err
		}
		kv = f
	case types.BackendSQLite:
		b := sqlite.NewBackend()
		if err := b.Attach(config); err != nil {
			return nil, fmt.Errorf("attach sqlite: %w", err)
		}
		kv = b
	case types.BackendMemory:
		kv = NewMemoryKV()
	}

	return NewLeadStore(kv, logger), nil
}
