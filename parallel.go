package heredity

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// runParallel splits the trait masks into contiguous ranges, one per worker.
// Each worker keeps a private shard; the shards are summed once every worker
// has finished, in worker order so the result is deterministic.
func runParallel(ctx context.Context, ped *Pedigree, t ProbabilityTables, workers int) (*shard, error) {
	total := traitMasks(ped)
	if uint64(workers) > total {
		workers = int(total)
	}

	shards := make([]*shard, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		lo := total * uint64(w) / uint64(workers)
		hi := total * uint64(w+1) / uint64(workers)

		g.Go(func() error {
			s, err := runShard(ctx, ped, t, lo, hi)
			shards[w] = s
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := shards[0]
	for _, s := range shards[1:] {
		out.merge(s)
	}
	return out, nil
}
