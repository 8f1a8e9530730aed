package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/leadboard/pkg/types"
)

// LeadsKey is the namespaced key the collection is stored under. The format
// carries no version field; the suffix is part of the name only.
const LeadsKey = "mini_crm_leads_v1"

// Compile-time interface check: LeadStore must implement types.Store.
var _ types.Store = (*LeadStore)(nil)

// LeadStore persists the lead collection as one JSON array in a KV slot.
type LeadStore struct {
	kv     KV
	key    string
	logger *slog.Logger
}

// NewLeadStore wraps kv. A nil logger uses slog.Default().
func NewLeadStore(kv KV, logger *slog.Logger) *LeadStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &LeadStore{kv: kv, key: LeadsKey, logger: logger}
}

// Load returns the stored collection. A missing value or one that is not a
// JSON array yields an empty collection; the corruption is logged and not
// returned. Records inside the array decode one by one, and a record that
// does not decode as a lead is skipped with a warning so the rest survive.
func (s *LeadStore) Load() (types.Collection, error) {
	data, ok, err := s.kv.Get(s.key)
	if err != nil {
		return nil, fmt.Errorf("loading leads: %w", err)
	}
	if !ok {
		return types.Collection{}, nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn("discarding unreadable lead data", "key", s.key, "error", err)
		return types.Collection{}, nil
	}

	c := make(types.Collection, 0, len(records))
	for i, raw := range records {
		var l types.Lead
		if err := json.Unmarshal(raw, &l); err != nil {
			s.logger.Warn("skipping malformed lead", "key", s.key, "index", i, "error", err)
			continue
		}
		c = append(c, l)
	}
	return c, nil
}

// Save replaces the stored collection.
func (s *LeadStore) Save(c types.Collection) error {
	if c == nil {
		c = types.Collection{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding leads: %w", err)
	}
	if err := s.kv.Put(s.key, data); err != nil {
		return fmt.Errorf("saving leads: %w", err)
	}
	s.logger.Debug("saved leads", "key", s.key, "count", len(c))
	return nil
}

// Clear removes the stored collection.
func (s *LeadStore) Clear() error {
	if err := s.kv.Delete(s.key); err != nil {
		return fmt.Errorf("clearing leads: %w", err)
	}
	return nil
}

// Close releases the underlying slot.
func (s *LeadStore) Close() error {
	return s.kv.Close()
}
