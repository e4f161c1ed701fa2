package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/turbgrid/internal/db"
	"github.com/banshee-data/turbgrid/internal/monitoring"
	"github.com/banshee-data/turbgrid/internal/turbulence"
)

func setupGridStore(t *testing.T) *GridStore {
	t.Helper()
	restore := monitoring.Mute()
	t.Cleanup(restore)

	database, err := db.NewDB(filepath.Join(t.TempDir(), "grids.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return NewGridStore(database.DB)
}

func buildGrid(t *testing.T, seed int64) *turbulence.Grid {
	t.Helper()
	geom := turbulence.Geometry{Origin: r3.Vec{X: 1, Y: 2, Z: 3}, Samples: 8, Spacing: 0.5}
	p := turbulence.Params{LMin: 1, LMax: 2, Brms: 1e-10, SpectralIndex: turbulence.KolmogorovIndex}
	g, err := turbulence.New(geom, p, turbulence.DefaultOptions().WithSeed(seed))
	require.NoError(t, err)
	return g
}

func TestGridStore_PersistAndRestore(t *testing.T) {
	store := setupGridStore(t)
	g := buildGrid(t, 5)

	id, err := g.Persist(store, "manual")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	snap, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, id, snap.GridID)
	assert.Equal(t, "manual", snap.Reason)
	assert.Equal(t, int64(5), snap.Seed)
	assert.Equal(t, turbulence.SamplingSequential, snap.Sampling)
	assert.Equal(t, g.Params(), snap.Params)
	assert.Equal(t, r3.Vec{X: 1, Y: 2, Z: 3}, snap.Origin)

	restored, err := turbulence.RestoreGrid(snap, turbulence.DefaultOptions())
	require.NoError(t, err)
	if diff := cmp.Diff(g.Cells(), restored.Cells()); diff != "" {
		t.Errorf("restored cells mismatch (-want +got):\n%s", diff)
	}
}

func TestGridStore_InsertKeepsExplicitID(t *testing.T) {
	store := setupGridStore(t)
	snap, err := buildGrid(t, 1).Snapshot("")
	require.NoError(t, err)
	snap.GridID = "fixed-id"

	id, err := store.InsertSnapshot(snap)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", id)

	got, err := store.Get("fixed-id")
	require.NoError(t, err)
	assert.Empty(t, got.Reason)

	_, err = store.InsertSnapshot(snap)
	assert.Error(t, err, "duplicate id should violate the primary key")
}

func TestGridStore_InsertNil(t *testing.T) {
	store := setupGridStore(t)
	_, err := store.InsertSnapshot(nil)
	assert.Error(t, err)
}

func TestGridStore_ListRecent(t *testing.T) {
	store := setupGridStore(t)
	g := buildGrid(t, 1)

	for i, ts := range []int64{300, 100, 200} {
		snap, err := g.Snapshot("generated")
		require.NoError(t, err)
		snap.TakenUnixNanos = ts
		snap.Seed = int64(i)
		_, err = store.InsertSnapshot(snap)
		require.NoError(t, err)
	}

	snaps, err := store.ListRecent(2)
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, int64(300), snaps[0].TakenUnixNanos)
	assert.Equal(t, int64(200), snaps[1].TakenUnixNanos)

	all, err := store.ListRecent(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGridStore_GetAndDeleteMissing(t *testing.T) {
	store := setupGridStore(t)

	_, err := store.Get("nope")
	assert.True(t, errors.Is(err, ErrGridNotFound), "got %v", err)

	err = store.Delete("nope")
	assert.True(t, errors.Is(err, ErrGridNotFound), "got %v", err)
}

func TestGridStore_Delete(t *testing.T) {
	store := setupGridStore(t)
	id, err := buildGrid(t, 2).Persist(store, "generated")
	require.NoError(t, err)

	require.NoError(t, store.Delete(id))
	_, err = store.Get(id)
	assert.True(t, errors.Is(err, ErrGridNotFound))
}
