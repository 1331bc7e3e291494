package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvpack/knapsack"
	"github.com/katalvlaran/lvpack/store"
)

func openTemp(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "runs", "lvpack.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestSaveGet_RoundTrip(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	res := knapsack.Result{
		Value: 19, Weight: 11, Taken: []int{0, 0, 1, 1}, Optimal: true,
		Algo:  knapsack.BranchAndBoundAlgo,
		Stats: knapsack.Stats{Expanded: 7, Pruned: 3, MaxQueue: 4},
	}
	id, err := s.Save(ctx, store.NewRecord("ks_4_0", 11, res, 3*time.Millisecond, nil))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "ks_4_0", got.Instance)
	assert.Equal(t, "branch-and-bound", got.Algorithm)
	assert.Equal(t, 11, got.Capacity)
	assert.Equal(t, 19.0, got.Value)
	assert.Equal(t, []int{0, 0, 1, 1}, got.Taken)
	assert.True(t, got.Optimal)
	assert.Equal(t, 7, got.Stats.Expanded)
	assert.Equal(t, 3, got.Stats.Pruned)
	assert.Equal(t, 4, got.Stats.MaxQueue)
	assert.Equal(t, 3*time.Millisecond, got.Duration)
	assert.Empty(t, got.Err)
	assert.WithinDuration(t, time.Now(), got.CreatedAt, time.Minute)
}

func TestSave_RecordsError(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	res := knapsack.Result{Value: 8, Taken: []int{1, 0}, Algo: knapsack.BranchAndBoundAlgo}
	id, err := s.Save(ctx, store.NewRecord("cut", 5, res, 0, knapsack.ErrNodeLimit))
	require.NoError(t, err)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, got.Optimal)
	assert.Equal(t, knapsack.ErrNodeLimit.Error(), got.Err)
}

func TestList_FiltersAndOrders(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	var ids []string
	for _, name := range []string{"a", "b", "a"} {
		id, err := s.Save(ctx, store.Record{Instance: name, Algorithm: "dynamic-programming", Taken: []int{1}})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	recs, err := s.List(ctx, "a")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, ids[0], recs[0].ID)
	assert.Equal(t, ids[2], recs[1].ID)

	all, err := s.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := s.List(ctx, "zzz")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGet_NotFound(t *testing.T) {
	s := openTemp(t)

	_, err := s.Get(context.Background(), "0190a000-0000-7000-8000-000000000000")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestClosed(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "x.db"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.Save(context.Background(), store.Record{})
	assert.True(t, errors.Is(err, store.ErrClosed))
	assert.ErrorIs(t, s.Close(), store.ErrClosed)
}

func TestReopen_KeepsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lvpack.db")
	s, err := store.Open(path)
	require.NoError(t, err)
	id, err := s.Save(context.Background(), store.Record{Instance: "k", Taken: []int{0, 1, 1}})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = store.Open(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 1}, got.Taken)
}
