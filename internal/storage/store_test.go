package storage

import (
	"bytes"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/leadboard/pkg/types"
)

func sampleCollection() types.Collection {
	ts := types.NewTimestamp(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return types.Collection{
		{ID: "b", Name: "Bea", Phone: "555-0102", Interest: "Plan B", Stage: types.StageContacted, CreatedAt: ts, UpdatedAt: ts},
		{ID: "a", Name: "Ana", Phone: "555-0101", Interest: "Plan A", Stage: types.StageNew, FollowUp: true, CreatedAt: ts, UpdatedAt: ts},
	}
}

// backends returns a fresh KV for every backend the store runs on.
func backends(t *testing.T) map[string]KV {
	t.Helper()
	file, err := NewFileKV(t.TempDir())
	require.NoError(t, err)

	store, err := Open(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return map[string]KV{
		"memory": NewMemoryKV(),
		"file":   file,
		"sqlite": store.kv,
	}
}

func TestLeadStore_RoundTrip(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := NewLeadStore(kv, nil)

			got, err := s.Load()
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Empty(t, got, "nothing stored yet")

			want := sampleCollection()
			require.NoError(t, s.Save(want))

			got, err = s.Load()
			require.NoError(t, err)
			assert.Equal(t, want, got, "order and fields survive a save")

			require.NoError(t, s.Clear())
			got, err = s.Load()
			require.NoError(t, err)
			assert.Empty(t, got)

			require.NoError(t, s.Clear(), "Clear is idempotent")
		})
	}
}

func TestLeadStore_SaveReplacesWholesale(t *testing.T) {
	s := NewLeadStore(NewMemoryKV(), nil)

	require.NoError(t, s.Save(sampleCollection()))
	require.NoError(t, s.Save(sampleCollection()[:1]))

	got, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}

func TestLeadStore_SaveNilWritesEmptyArray(t *testing.T) {
	kv := NewMemoryKV()
	s := NewLeadStore(kv, nil)

	require.NoError(t, s.Save(nil))

	raw, ok, err := kv.Get(LeadsKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", string(raw))
}

func TestLeadStore_CorruptionYieldsEmpty(t *testing.T) {
	inputs := map[string]string{
		"truncated":  `[{"id":"a","name":`,
		"not json":   `hello`,
		"object":     `{"id":"a"}`,
		"null":       `null`,
	}
	for name, raw := range inputs {
		t.Run(name, func(t *testing.T) {
			kv := NewMemoryKV()
			require.NoError(t, kv.Put(LeadsKey, []byte(raw)))

			got, err := NewLeadStore(kv, nil).Load()
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestLeadStore_MalformedRecordsSkipped(t *testing.T) {
	kv := NewMemoryKV()
	raw := `[
		{"id":"a","name":"Ana","phone":"555-0101","interest":"Plan A","stage":"new"},
		{"id":"b","name":"Bea","phone":5550102,"interest":"Plan B","stage":"new"},
		7,
		{"id":"c","name":"Cy","phone":"555-0103","interest":"Plan C","stage":"lost"}
	]`
	require.NoError(t, kv.Put(LeadsKey, []byte(raw)))

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	got, err := NewLeadStore(kv, logger).Load()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
	assert.Equal(t, 2, strings.Count(logs.String(), "skipping malformed lead"))
}

func TestLeadStore_NonLeadArrayLoadsEmpty(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Put(LeadsKey, []byte(`[1,2,3]`)))

	got, err := NewLeadStore(kv, nil).Load()
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLeadStore_LegacyRecords(t *testing.T) {
	kv := NewMemoryKV()
	raw := `[{"id":"old","name":"Legacy","stage":"new","createdAt":"2023-05-01T10:00:00.000Z"}]`
	require.NoError(t, kv.Put(LeadsKey, []byte(raw)))

	got, err := NewLeadStore(kv, nil).Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Legacy", got[0].Name)
	assert.Empty(t, got[0].Phone)
	assert.Equal(t, "2023-05-01T10:00:00.000Z", got[0].CreatedAt.String())
	assert.True(t, got[0].UpdatedAt.IsZero())
}

func TestFileKV_AtomicWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewFileKV(dir)
	require.NoError(t, err)

	s := NewLeadStore(kv, nil)
	for i := 0; i < 3; i++ {
		require.NoError(t, s.Save(sampleCollection()))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, LeadsKey+".json", entries[0].Name())
}

func TestFileKV_RejectsInvalidKeys(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "..", "a/b", `a\b`} {
		_, _, err := kv.Get(key)
		assert.ErrorIs(t, err, ErrInvalidKey, "Get(%q)", key)
		assert.ErrorIs(t, kv.Put(key, nil), ErrInvalidKey, "Put(%q)", key)
		assert.ErrorIs(t, kv.Delete(key), ErrInvalidKey, "Delete(%q)", key)
	}
}

func TestOpen(t *testing.T) {
	t.Run("file backend", func(t *testing.T) {
		dir := t.TempDir()
		s, err := Open(types.Config{Backend: types.BackendFile, DataDir: dir}, nil)
		require.NoError(t, err)
		defer s.Close()

		require.NoError(t, s.Save(sampleCollection()))
		assert.FileExists(t, s.kv.(*FileKV).Path(LeadsKey))
	})

	t.Run("memory backend", func(t *testing.T) {
		s, err := Open(types.Config{Backend: types.BackendMemory}, nil)
		require.NoError(t, err)
		defer s.Close()
		assert.IsType(t, &MemoryKV{}, s.kv)
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := Open(types.Config{Backend: "postgres", DataDir: t.TempDir()}, nil)
		assert.ErrorIs(t, err, types.ErrBackendUnknown)
	})
}
