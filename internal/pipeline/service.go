// Package pipeline runs lead operations against a Store. Each mutating call
// loads the whole collection, applies one engine operation and saves the
// result before returning.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mesh-intelligence/leadboard/pkg/leads"
	"github.com/mesh-intelligence/leadboard/pkg/types"
)

// Service orchestrates read-modify-write cycles over a Store.
type Service struct {
	store  types.Store
	rule   leads.Rule
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRule replaces leads.DefaultRule for RunAutomation.
func WithRule(r leads.Rule) Option {
	return func(s *Service) { s.rule = r }
}

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// New returns a Service over store.
func New(store types.Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		rule:   leads.DefaultRule,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Outcome describes the result of an operation on a single lead.
type Outcome struct {
	Lead   types.Lead // The lead after the operation; zero when not found.
	Found  bool       // False when the ID was not in the collection.
	Notice string     // Human-readable summary for the user.
}

// Add creates a lead and stores it at the front of the collection.
func (s *Service) Add(name, phone, interest string) (Outcome, error) {
	c, err := s.store.Load()
	if err != nil {
		return Outcome{}, err
	}
	l, err := leads.NewLead(name, phone, interest, s.now())
	if err != nil {
		return Outcome{}, err
	}
	if err := s.store.Save(leads.AddLead(c, l)); err != nil {
		return Outcome{}, err
	}
	s.logger.Info("lead added", "id", l.ID)
	return Outcome{Lead: l, Found: true, Notice: fmt.Sprintf("Lead %q added.", l.Name)}, nil
}

// Move moves a lead to stage.
func (s *Service) Move(id string, stage types.Stage) (Outcome, error) {
	c, err := s.store.Load()
	if err != nil {
		return Outcome{}, err
	}
	next, err := leads.MoveStage(c, id, stage, s.now())
	if err != nil {
		return Outcome{}, err
	}
	return s.commit(next, id, func(l types.Lead) string {
		return fmt.Sprintf("Lead %q moved to %q.", l.Name, l.Stage)
	})
}

// ToggleFollowUp flips a lead's follow-up flag.
func (s *Service) ToggleFollowUp(id string) (Outcome, error) {
	c, err := s.store.Load()
	if err != nil {
		return Outcome{}, err
	}
	return s.commit(leads.ToggleFollowUp(c, id, s.now()), id, func(l types.Lead) string {
		return fmt.Sprintf("Follow-up updated for %q.", l.Name)
	})
}

// Remove deletes a lead permanently.
func (s *Service) Remove(id string) (Outcome, error) {
	c, err := s.store.Load()
	if err != nil {
		return Outcome{}, err
	}
	l, ok := c.Find(id)
	if err := s.store.Save(leads.RemoveLead(c, id)); err != nil {
		return Outcome{}, err
	}
	if !ok {
		return notFound(id), nil
	}
	s.logger.Info("lead removed", "id", id)
	return Outcome{Lead: l, Found: true, Notice: fmt.Sprintf("Lead %q removed.", l.Name)}, nil
}

// RunAutomation applies the follow-up rule and returns how many leads it
// newly flagged.
func (s *Service) RunAutomation() (int, string, error) {
	c, err := s.store.Load()
	if err != nil {
		return 0, "", err
	}
	next, n := s.rule.Apply(c, s.now())
	if err := s.store.Save(next); err != nil {
		return 0, "", err
	}
	s.logger.Info("automation run", "flagged", n, "idle_after", s.rule.IdleAfter)
	if n == 0 {
		return 0, "Automation: no pending leads.", nil
	}
	return n, fmt.Sprintf("Automation: %d lead(s) flagged for follow-up.", n), nil
}

// List returns the current collection.
func (s *Service) List() (types.Collection, error) {
	return s.store.Load()
}

// Stats summarizes the current collection.
func (s *Service) Stats() (leads.Stats, error) {
	c, err := s.store.Load()
	if err != nil {
		return leads.Stats{}, err
	}
	return leads.ComputeStats(c), nil
}

// Export is a rendered CSV file.
type Export struct {
	FileName string
	Data     []byte
	Count    int
}

// Export renders the current collection as CSV. An empty collection
// returns types.ErrNothingToExport.
func (s *Service) Export() (Export, error) {
	c, err := s.store.Load()
	if err != nil {
		return Export{}, err
	}
	data, err := leads.ExportCSV(c)
	if err != nil {
		return Export{}, err
	}
	return Export{
		FileName: leads.ExportFileName(s.now()),
		Data:     data,
		Count:    len(c),
	}, nil
}

// Clear removes all stored leads.
func (s *Service) Clear() error {
	if err := s.store.Clear(); err != nil {
		return err
	}
	s.logger.Info("leads cleared")
	return nil
}

// IsNothingToExport reports whether err is the empty-export signal.
func IsNothingToExport(err error) bool {
	return errors.Is(err, types.ErrNothingToExport)
}

// commit saves next and describes the lead with the given ID in it.
func (s *Service) commit(next types.Collection, id string, notice func(types.Lead) string) (Outcome, error) {
	if err := s.store.Save(next); err != nil {
		return Outcome{}, err
	}
	l, ok := next.Find(id)
	if !ok {
		s.logger.Debug("lead not found", "id", id)
		return notFound(id), nil
	}
	return Outcome{Lead: l, Found: true, Notice: notice(l)}, nil
}

func notFound(id string) Outcome {
	return Outcome{Notice: fmt.Sprintf("Lead %s not found.", id)}
}
