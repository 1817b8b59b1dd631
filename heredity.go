// Package heredity computes exact posterior distributions over how many
// copies of a trait-causing gene each member of a small pedigree carries,
// and whether they express the trait, given observed trait evidence.
//
// Inference enumerates every world consistent with the evidence, weights each
// by its joint probability under a Mendelian inheritance model with mutation,
// and normalizes the per-person sums. The cost is O(6^n) in the number of
// people, so it is meant for families, not populations.
package heredity

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

// Options configures a single inference run. The zero value runs serially
// with DefaultTables.
type Options struct {
	// Tables overrides DefaultTables when non-nil.
	Tables *ProbabilityTables

	// Workers is the number of goroutines sharing the enumeration. Values
	// below 2 run serially.
	Workers int

	// Logger receives debug-level progress. Defaults to the logrus standard
	// logger.
	Logger logrus.FieldLogger

	// Metrics, if set, is updated once per run.
	Metrics *Metrics
}

// Stats describes the work done by one run.
type Stats struct {
	// Worlds is the number of fully-specified worlds evaluated.
	Worlds uint64

	// Pruned is the number of trait assignments rejected by the evidence
	// before any of their worlds were evaluated.
	Pruned uint64

	// RawMass is the total joint probability of every evaluated world,
	// before normalization. It is 1 when there is no evidence.
	RawMass float64

	Elapsed time.Duration
}

// Result holds the normalized posterior distributions for every person.
type Result struct {
	// Names lists every person in pedigree order.
	Names      []string
	Posteriors map[string]Distribution
	Stats      Stats
}

// Posterior returns the distributions computed for name.
func (r *Result) Posterior(name string) (Distribution, bool) {
	d, ok := r.Posteriors[name]
	return d, ok
}

// shard is the private state of one slice of the enumeration.
type shard struct {
	tally tally
	stats Stats
}

func (s *shard) merge(other *shard) {
	s.tally.merge(other.tally)
	s.stats.Worlds += other.stats.Worlds
	s.stats.Pruned += other.stats.Pruned
	s.stats.RawMass += other.stats.RawMass
}

// runShard evaluates and accumulates every admissible world with a trait mask
// in [lo, hi).
func runShard(ctx context.Context, ped *Pedigree, t ProbabilityTables, lo, hi uint64) (*shard, error) {
	s := &shard{tally: newTally(ped.Len())}

	pruned, err := enumerateRange(ctx, ped, lo, hi, func(h *Hypothesis) {
		p := JointProbability(ped, t, h)
		s.tally.accumulate(h, p)
		s.stats.Worlds++
		s.stats.RawMass += p
	})
	s.stats.Pruned = pruned

	return s, err
}

// Infer computes every person's posterior gene-count and trait distributions
// given the evidence recorded in ped. It fails with ErrInconsistentEvidence if
// no world is consistent with that evidence, and returns no partial result on
// any failure.
func Infer(ctx context.Context, ped *Pedigree, opts Options) (*Result, error) {
	if ped == nil {
		return nil, errors.New("heredity: nil pedigree")
	}
	started := time.Now()

	tables := DefaultTables()
	if opts.Tables != nil {
		tables = *opts.Tables
	}
	if err := tables.Validate(); err != nil {
		opts.Metrics.observeFailure(err)
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	log.WithFields(logrus.Fields{
		"people":  ped.Len(),
		"workers": workers,
	}).Debug("heredity: starting inference")

	var (
		s   *shard
		err error
	)
	if workers == 1 {
		s, err = runShard(ctx, ped, tables, 0, traitMasks(ped))
	} else {
		s, err = runParallel(ctx, ped, tables, workers)
	}
	if err != nil {
		opts.Metrics.observeFailure(err)
		return nil, err
	}
	s.stats.Elapsed = time.Since(started)

	if err := s.tally.normalize(ped); err != nil {
		opts.Metrics.observe(s.stats, outcomeInconsistent)
		return nil, err
	}

	res := &Result{
		Names:      ped.Names(),
		Posteriors: make(map[string]Distribution, ped.Len()),
		Stats:      s.stats,
	}
	for i, name := range res.Names {
		res.Posteriors[name] = s.tally[i]
	}

	log.WithFields(logrus.Fields{
		"worlds":  s.stats.Worlds,
		"pruned":  s.stats.Pruned,
		"elapsed": s.stats.Elapsed,
	}).Debug("heredity: finished inference")
	opts.Metrics.observe(s.stats, outcomeOK)

	return res, nil
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, ErrInconsistentEvidence):
		return outcomeInconsistent
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return outcomeCanceled
	}
	return outcomeError
}
