package heredity

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	ped := mustOpenPedigree(t, "testdata/family0.csv")

	mustInfer(t, ped, Options{Metrics: m})
	mustInfer(t, ped, Options{Metrics: m, Workers: 2})

	assert.Equal(t, 108.0, testutil.ToFloat64(m.worldsEvaluated))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.traitsPruned))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.runs.WithLabelValues(outcomeOK)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Infer(ctx, ped, Options{Metrics: m})
	require.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues(outcomeCanceled)))
}

func TestMetricsInconsistent(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	tables := DefaultTables()
	for _, g := range GeneCounts {
		tables.Trait[g] = [2]float64{1, 0}
	}
	ped, err := NewPedigree([]Person{{Name: "A", Trait: EvidencePresent}})
	require.NoError(t, err)

	_, err = Infer(context.Background(), ped, Options{Metrics: m, Tables: &tables})
	require.ErrorIs(t, err, ErrInconsistentEvidence)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues(outcomeInconsistent)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.worldsEvaluated))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.observe(Stats{Worlds: 1}, outcomeOK)
		m.observeFailure(context.Canceled)
	})
}
