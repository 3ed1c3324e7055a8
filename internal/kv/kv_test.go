// ABOUTME: Contract tests run against every Store backend.
// ABOUTME: Also covers quota enforcement and backend selection.

package kv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	b, err := OpenBadger(filepath.Join(t.TempDir(), "badger"), nil)
	require.NoError(t, err)
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "quill.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return map[string]Store{
		BackendBadger: b,
		BackendSQLite: s,
		BackendMemory: NewMemory(),
	}
}

func TestStoreContract(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get("notes-app-data")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, store.Set("notes-app-data", []byte(`[1]`)))
			got, err := store.Get("notes-app-data")
			require.NoError(t, err)
			assert.Equal(t, `[1]`, string(got))

			require.NoError(t, store.Set("notes-app-data", []byte(`[2]`)))
			got, err = store.Get("notes-app-data")
			require.NoError(t, err)
			assert.Equal(t, `[2]`, string(got))

			require.NoError(t, store.Delete("notes-app-data"))
			_, err = store.Get("notes-app-data")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, store.Delete("never-written"))
		})
	}
}

func TestBadgerPersistsAcrossInstances(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "badger")

	first, err := OpenBadger(dir, nil)
	require.NoError(t, err)
	require.NoError(t, first.Set("k", []byte("v")))

	second, err := OpenBadger(dir, nil)
	require.NoError(t, err)
	got, err := second.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestSQLitePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "quill.db")

	first, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, first.Set("k", []byte("v")))
	require.NoError(t, first.Close())

	_, err = os.Stat(path)
	require.NoError(t, err)

	second, err := OpenSQLite(path)
	require.NoError(t, err)
	defer func() { _ = second.Close() }()
	got, err := second.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestMemoryInjectedFailures(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Set("k", []byte("v")))

	m.FailWrites(true)
	assert.ErrorIs(t, m.Set("k", []byte("w")), ErrInjected)
	m.FailReads(true)
	_, err := m.Get("k")
	assert.ErrorIs(t, err, ErrInjected)

	m.FailReads(false)
	got, err := m.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
	assert.Equal(t, 1, m.Writes())
}

func TestQuota(t *testing.T) {
	m := NewMemory()
	q := WithQuota(m, 10)

	require.NoError(t, q.Set("k", []byte("12345")))
	err := q.Set("k", []byte("1234567890"))
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	got, err := q.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "12345", string(got))
}

func TestQuotaDisabled(t *testing.T) {
	m := NewMemory()
	assert.Same(t, Store(m), WithQuota(m, 0))
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(BackendMemory, dir, nil)
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	s, err = Open(BackendSQLite, dir, nil)
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, s)
	require.NoError(t, s.Close())

	s, err = Open(BackendBadger, dir, nil)
	require.NoError(t, err)
	assert.IsType(t, &Badger{}, s)

	_, err = Open("etcd", dir, nil)
	assert.ErrorIs(t, err, ErrUnknownBackend)
}
