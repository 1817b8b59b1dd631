package heredity

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *ResultStore {
	t.Helper()

	store, err := OpenResultStore(filepath.Join(t.TempDir(), "results.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestResultStoreRoundTrip(t *testing.T) {
	store := openTestStore(t)
	res := mustInfer(t, mustOpenPedigree(t, "testdata/family0.csv"), Options{})

	before := time.Now().Add(-time.Second)
	rec, err := store.SaveRun("testdata/family0.csv", res)
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)

	got, err := store.Run(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "testdata/family0.csv", got.Source)
	assert.Equal(t, 3, got.NPeople)
	assert.Equal(t, int64(54), got.Worlds)
	assert.Equal(t, int64(6), got.Pruned)
	assert.True(t, got.CreatedAt.Time().After(before), "created at %s", got.CreatedAt)

	stored, err := store.Result(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Names, stored.Names)
	for _, name := range res.Names {
		want, have := res.Posteriors[name], stored.Posteriors[name]
		for _, g := range GeneCounts {
			assert.InDelta(t, want.GeneProbability(g), have.GeneProbability(g), tolerance)
		}
		assert.InDelta(t, want.TraitProbability(true), have.TraitProbability(true), tolerance)
		assert.InDelta(t, want.TraitProbability(false), have.TraitProbability(false), tolerance)
	}
}

func TestResultStoreRuns(t *testing.T) {
	store := openTestStore(t)
	res := mustInfer(t, mustOpenPedigree(t, "testdata/family0.csv"), Options{})

	first, err := store.SaveRun("a.csv", res)
	require.NoError(t, err)
	second, err := store.SaveRun("b.csv", res)
	require.NoError(t, err)

	runs, err := store.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 2)

	ids := []string{runs[0].ID, runs[1].ID}
	assert.ElementsMatch(t, []string{first.ID, second.ID}, ids)
}

func TestResultStoreDeleteRun(t *testing.T) {
	store := openTestStore(t)
	res := mustInfer(t, mustOpenPedigree(t, "testdata/family0.csv"), Options{})

	rec, err := store.SaveRun("family0.csv", res)
	require.NoError(t, err)

	require.NoError(t, store.DeleteRun(rec.ID))

	_, err = store.Run(rec.ID)
	assert.ErrorIs(t, err, ErrRunNotFound)

	rows, err := store.Posteriors(rec.ID)
	require.NoError(t, err)
	assert.Empty(t, rows, "posteriors should be removed with their run")

	assert.ErrorIs(t, store.DeleteRun(rec.ID), ErrRunNotFound)
}

func TestResultStoreUnknownRun(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Result("00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestTimeScan(t *testing.T) {
	var ts Time
	require.NoError(t, ts.Scan(int64(86400)))
	assert.Equal(t, time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC), ts.Time())

	require.NoError(t, ts.Scan([]byte("2021-04-08 12:11:54")))
	assert.Equal(t, time.Date(2021, 4, 8, 12, 11, 54, 0, time.UTC), ts.Time())

	require.NoError(t, ts.Scan("2021-04-08 12:11:54"))
	assert.Equal(t, time.UTC, ts.Time().Location())

	est := time.FixedZone("EST", -5*60*60)
	require.NoError(t, ts.Scan(time.Date(2021, 4, 8, 7, 11, 54, 0, est)))
	assert.Equal(t, time.Date(2021, 4, 8, 12, 11, 54, 0, time.UTC), ts.Time())

	assert.Error(t, ts.Scan(3.5))
}
