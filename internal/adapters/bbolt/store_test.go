package bbolt

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/corey/reviewbot/internal/domain/lint"
	"github.com/corey/reviewbot/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

// =============================================================================
// bbolt result cache: per-project, per-file review results that survive
// restarts and are keyed by content hash and config fingerprint.
// =============================================================================

// newTestStore creates a temporary bbolt store for testing.
func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	store, err := NewStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

func makeTestResult() *ports.CachedResult {
	return &ports.CachedResult{
		ContentHash:       "abc123",
		ConfigFingerprint: "cfg1",
		CheckedAt:         time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC),
		Issues: []lint.Issue{
			{Line: 3, EndLine: 9, Message: "Unused imports", Severity: lint.SevError, Category: lint.CatUnusedImport},
			{Line: 1, Message: "File too long", Severity: lint.SevWarn, Category: lint.CatFileSize, FileLevel: true},
		},
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	want := makeTestResult()

	require.NoError(t, store.SaveResult("proj", "src/A.tsx", want))
	got, err := store.LoadResult("proj", "src/A.tsx")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, want.ContentHash, got.ContentHash)
	assert.Equal(t, want.ConfigFingerprint, got.ConfigFingerprint)
	assert.Equal(t, want.Issues, got.Issues)
	assert.True(t, want.CheckedAt.Equal(got.CheckedAt))
	assert.True(t, got.Matches("abc123", "cfg1"))
	assert.False(t, got.Matches("abc123", "cfg2"))
}

func TestStore_LoadMissing(t *testing.T) {
	store, _ := newTestStore(t)

	got, err := store.LoadResult("proj", "nope.tsx")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.SaveResult("proj", "a.tsx", makeTestResult()))
	got, err = store.LoadResult("proj", "b.tsx")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_CleanFileRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	clean := &ports.CachedResult{ContentHash: "h", ConfigFingerprint: "f", CheckedAt: time.Now()}

	require.NoError(t, store.SaveResult("proj", "clean.ts", clean))
	got, err := store.LoadResult("proj", "clean.ts")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.Issues)
}

func TestStore_Overwrite(t *testing.T) {
	store, _ := newTestStore(t)
	first := makeTestResult()
	second := makeTestResult()
	second.ContentHash = "def456"
	second.Issues = second.Issues[:1]

	require.NoError(t, store.SaveResult("proj", "a.tsx", first))
	require.NoError(t, store.SaveResult("proj", "a.tsx", second))

	got, err := store.LoadResult("proj", "a.tsx")
	require.NoError(t, err)
	assert.Equal(t, "def456", got.ContentHash)
	assert.Len(t, got.Issues, 1)
}

func TestStore_ProjectIsolation(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.SaveResult("p1", "a.tsx", makeTestResult()))

	got, err := store.LoadResult("p2", "a.tsx")
	require.NoError(t, err)
	assert.Nil(t, got)

	n, err := store.CountResults("p2")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStore_CountAndDelete(t *testing.T) {
	store, _ := newTestStore(t)
	for i := 0; i < 3; i++ {
		require.NoError(t, store.SaveResult("proj", fmt.Sprintf("f%d.tsx", i), makeTestResult()))
	}
	n, err := store.CountResults("proj")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.NoError(t, store.DeleteProject("proj"))
	require.NoError(t, store.DeleteProject("proj"), "delete is idempotent")

	n, err = store.CountResults("proj")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, store.SaveResult("proj", "a.tsx", makeTestResult()))
	require.NoError(t, store.Close())

	reopened, err := NewStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.LoadResult("proj", "a.tsx")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "abc123", got.ContentHash)
}

func TestStore_UnknownVersionIsMiss(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.SaveResult("proj", "a.tsx", makeTestResult()))

	// Rewrite the entry with a future version byte.
	err := store.db.Update(func(tx *bolt.Tx) error {
		rb := resultsBucket(tx, "proj")
		v := append([]byte(nil), rb.Get([]byte("a.tsx"))...)
		v[0] = encodingVersion + 1
		return rb.Put([]byte("a.tsx"), v)
	})
	require.NoError(t, err)

	got, err := store.LoadResult("proj", "a.tsx")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_TruncatedEntryErrors(t *testing.T) {
	_, err := decodeResult([]byte{encodingVersion, 0, 0})
	assert.Error(t, err)
}

func TestStore_NilResult(t *testing.T) {
	store, _ := newTestStore(t)
	assert.Error(t, store.SaveResult("proj", "a.tsx", nil))
}

func TestStore_ConcurrentWrites(t *testing.T) {
	store, _ := newTestStore(t)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, store.SaveResult("proj", fmt.Sprintf("f%d.tsx", i), makeTestResult()))
		}(i)
	}
	wg.Wait()

	n, err := store.CountResults("proj")
	require.NoError(t, err)
	assert.Equal(t, 20, n)
}

func TestNewStore_LockedFileTimesOut(t *testing.T) {
	_, path := newTestStore(t)
	start := time.Now()
	_, err := NewStore(path)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}
