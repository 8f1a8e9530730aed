package pipeline

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/leadboard/internal/storage"
	"github.com/mesh-intelligence/leadboard/pkg/leads"
	"github.com/mesh-intelligence/leadboard/pkg/types"
)

// clock is a settable time source.
type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newService(t *testing.T) (*Service, *storage.LeadStore, *clock) {
	t.Helper()
	store := storage.NewLeadStore(storage.NewMemoryKV(), nil)
	clk := &clock{t: time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)}
	return New(store, WithClock(clk.now)), store, clk
}

func TestService_AddPrependsAndPersists(t *testing.T) {
	svc, store, _ := newService(t)

	first, err := svc.Add("Ana", "555-0101", "Plan A")
	require.NoError(t, err)
	assert.Equal(t, `Lead "Ana" added.`, first.Notice)

	second, err := svc.Add("Bo", "555-0102", "Plan B")
	require.NoError(t, err)

	stored, err := store.Load()
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, second.Lead.ID, stored[0].ID, "newest first")
	assert.Equal(t, first.Lead.ID, stored[1].ID)
}

func TestService_AddValidation(t *testing.T) {
	svc, store, _ := newService(t)

	_, err := svc.Add("Ana", "", "Plan A")
	assert.ErrorIs(t, err, types.ErrInvalidPhone)

	stored, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, stored, "nothing saved on validation failure")
}

func TestService_MoveAndToggle(t *testing.T) {
	svc, store, clk := newService(t)
	added, err := svc.Add("Ana", "555-0101", "Plan A")
	require.NoError(t, err)
	id := added.Lead.ID

	clk.t = clk.t.Add(time.Hour)
	out, err := svc.ToggleFollowUp(id)
	require.NoError(t, err)
	assert.True(t, out.Found)
	assert.True(t, out.Lead.FollowUp)
	assert.Equal(t, `Follow-up updated for "Ana".`, out.Notice)

	clk.t = clk.t.Add(time.Hour)
	out, err = svc.Move(id, types.StageClosed)
	require.NoError(t, err)
	assert.Equal(t, types.StageClosed, out.Lead.Stage)
	assert.False(t, out.Lead.FollowUp)
	assert.Equal(t, `Lead "Ana" moved to "closed".`, out.Notice)

	stored, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, out.Lead, stored[0])
	assert.Equal(t, types.NewTimestamp(clk.t), stored[0].UpdatedAt)
}

func TestService_MissingID(t *testing.T) {
	svc, _, _ := newService(t)
	_, err := svc.Add("Ana", "555-0101", "Plan A")
	require.NoError(t, err)

	for name, op := range map[string]func() (Outcome, error){
		"move":   func() (Outcome, error) { return svc.Move("missing", types.StageLost) },
		"toggle": func() (Outcome, error) { return svc.ToggleFollowUp("missing") },
		"remove": func() (Outcome, error) { return svc.Remove("missing") },
	} {
		t.Run(name, func(t *testing.T) {
			out, err := op()
			require.NoError(t, err)
			assert.False(t, out.Found)
			assert.Equal(t, "Lead missing not found.", out.Notice)
		})
	}

	list, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestService_MoveInvalidStage(t *testing.T) {
	svc, _, _ := newService(t)
	added, err := svc.Add("Ana", "555-0101", "Plan A")
	require.NoError(t, err)

	_, err = svc.Move(added.Lead.ID, "won")
	assert.ErrorIs(t, err, types.ErrInvalidStage)
}

func TestService_Remove(t *testing.T) {
	svc, _, _ := newService(t)
	added, err := svc.Add("Ana", "555-0101", "Plan A")
	require.NoError(t, err)

	out, err := svc.Remove(added.Lead.ID)
	require.NoError(t, err)
	assert.True(t, out.Found)
	assert.Equal(t, `Lead "Ana" removed.`, out.Notice)

	list, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestService_RunAutomation(t *testing.T) {
	svc, _, clk := newService(t)
	_, err := svc.Add("Ana", "555-0101", "Plan A")
	require.NoError(t, err)

	n, notice, err := svc.RunAutomation()
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, "Automation: no pending leads.", notice)

	clk.t = clk.t.Add(3 * 24 * time.Hour)
	n, notice, err = svc.RunAutomation()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "Automation: 1 lead(s) flagged for follow-up.", notice)

	n, _, err = svc.RunAutomation()
	require.NoError(t, err)
	assert.Zero(t, n, "second run with the same clock flags nothing")

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.FollowUp)
}

func TestService_CustomRule(t *testing.T) {
	store := storage.NewLeadStore(storage.NewMemoryKV(), nil)
	clk := &clock{t: time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)}
	rule, err := leads.NewRule(time.Hour)
	require.NoError(t, err)
	svc := New(store, WithClock(clk.now), WithRule(rule))

	_, err = svc.Add("Ana", "555-0101", "Plan A")
	require.NoError(t, err)

	clk.t = clk.t.Add(time.Hour)
	n, _, err := svc.RunAutomation()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestService_Export(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Export()
	assert.True(t, IsNothingToExport(err))

	_, err = svc.Add("Ana", "555-0101", "Plan A")
	require.NoError(t, err)

	exp, err := svc.Export()
	require.NoError(t, err)
	assert.Equal(t, "leads_2024-01-15.csv", exp.FileName)
	assert.Equal(t, 1, exp.Count)
	assert.True(t, strings.HasPrefix(string(exp.Data), "name,phone,interest"))
}

func TestService_Clear(t *testing.T) {
	svc, _, _ := newService(t)
	_, err := svc.Add("Ana", "555-0101", "Plan A")
	require.NoError(t, err)

	require.NoError(t, svc.Clear())

	list, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

// failingStore fails every operation.
type failingStore struct{ err error }

func (f failingStore) Load() (types.Collection, error) { return nil, f.err }
func (f failingStore) Save(types.Collection) error     { return f.err }
func (f failingStore) Clear() error                    { return f.err }

func TestService_PropagatesStoreErrors(t *testing.T) {
	boom := errors.New("disk full")
	svc := New(failingStore{err: boom})

	_, err := svc.Add("Ana", "1", "x")
	assert.ErrorIs(t, err, boom)
	_, err = svc.Move("id", types.StageNew)
	assert.ErrorIs(t, err, boom)
	_, err = svc.ToggleFollowUp("id")
	assert.ErrorIs(t, err, boom)
	_, err = svc.Remove("id")
	assert.ErrorIs(t, err, boom)
	_, _, err = svc.RunAutomation()
	assert.ErrorIs(t, err, boom)
	_, err = svc.Stats()
	assert.ErrorIs(t, err, boom)
	_, err = svc.Export()
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, svc.Clear(), boom)
}
