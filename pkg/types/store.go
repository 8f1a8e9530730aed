package types

import "errors"

// Store persists the lead collection as a single unit.
// Callers follow a read-modify-write discipline: Load, compute the new
// collection, Save.
type Store interface {
	// Load returns the persisted collection. It returns an empty collection
	// when nothing is stored or the stored value is not valid JSON; only
	// failures of the underlying storage are reported as errors.
	Load() (Collection, error)

	// Save replaces the persisted collection. No partial write is ever
	// observable by a later Load.
	Save(c Collection) error

	// Clear removes every persisted lead. Idempotent.
	Clear() error
}

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// Lead errors.
var (
	ErrInvalidStage     = errors.New("invalid stage value")
	ErrInvalidName      = errors.New("name must not be empty")
	ErrInvalidPhone     = errors.New("phone must not be empty")
	ErrInvalidInterest  = errors.New("interest must not be empty")
	ErrNothingToExport  = errors.New("no leads to export")
	ErrInvalidThreshold = errors.New("idle threshold must be positive")
)
