package heredity

import (
	"context"
	"errors"
	"fmt"

	"github.com/carbocation/pfx"
)

// ErrUnknownPerson is returned when a hypothesis names someone who is not in
// the pedigree.
var ErrUnknownPerson = errors.New("person is not present in the pedigree")

// ErrConflictingGenes is returned when a hypothesis assigns someone both one
// and two copies of the gene.
var ErrConflictingGenes = errors.New("person is assigned both one and two copies")

// Hypothesis is one fully-specified world: a gene count and a trait value for
// every person, indexed like the Pedigree it was built for.
type Hypothesis struct {
	Genes  []GeneCount
	Traits []bool
}

func newHypothesis(n int) *Hypothesis {
	return &Hypothesis{
		Genes:  make([]GeneCount, n),
		Traits: make([]bool, n),
	}
}

// HypothesisFromSets builds the world in which exactly the people in
// haveTrait express the trait, the people in oneGene carry one copy, the
// people in twoGenes carry two copies and everyone else carries none.
func HypothesisFromSets(ped *Pedigree, haveTrait, oneGene, twoGenes []string) (*Hypothesis, error) {
	h := newHypothesis(ped.Len())

	for _, name := range haveTrait {
		i, ok := ped.Index(name)
		if !ok {
			return nil, pfx.Err(fmt.Errorf("%w: %q", ErrUnknownPerson, name))
		}
		h.Traits[i] = true
	}

	assign := func(names []string, g GeneCount) error {
		for _, name := range names {
			i, ok := ped.Index(name)
			if !ok {
				return fmt.Errorf("%w: %q", ErrUnknownPerson, name)
			}
			if h.Genes[i] != NoCopies && h.Genes[i] != g {
				return fmt.Errorf("%w: %q", ErrConflictingGenes, name)
			}
			h.Genes[i] = g
		}
		return nil
	}
	if err := assign(oneGene, OneCopy); err != nil {
		return nil, pfx.Err(err)
	}
	if err := assign(twoGenes, TwoCopies); err != nil {
		return nil, pfx.Err(err)
	}

	return h, nil
}

// setTraitMask sets person i's trait to bit i of mask.
func (h *Hypothesis) setTraitMask(mask uint64) {
	for i := range h.Traits {
		h.Traits[i] = mask&(1<<uint(i)) != 0
	}
}

// nextGenes advances the gene assignment like an odometer in base 3. It
// returns false, leaving every gene at zero, once all 3^n assignments have
// been visited.
func (h *Hypothesis) nextGenes() bool {
	for i := range h.Genes {
		if h.Genes[i] < TwoCopies {
			h.Genes[i]++
			return true
		}
		h.Genes[i] = NoCopies
	}
	return false
}

// traitMasks returns the number of distinct trait assignments for ped.
func traitMasks(ped *Pedigree) uint64 {
	return uint64(1) << uint(ped.Len())
}

// enumerateRange visits every admissible world whose trait mask lies in
// [lo, hi). Inadmissible trait assignments are skipped before any of their
// gene assignments are generated; the number skipped is returned. visit
// receives a Hypothesis that is reused between calls.
func enumerateRange(ctx context.Context, ped *Pedigree, lo, hi uint64, visit func(h *Hypothesis)) (pruned uint64, err error) {
	h := newHypothesis(ped.Len())

	for mask := lo; mask < hi; mask++ {
		if err := ctx.Err(); err != nil {
			return pruned, err
		}

		h.setTraitMask(mask)
		if !ped.Admits(h.Traits) {
			pruned++
			continue
		}

		for {
			visit(h)
			if !h.nextGenes() {
				break
			}
		}
	}

	return pruned, nil
}

// Enumerate visits every world admitted by the pedigree's evidence, 3^n gene
// assignments for each of up to 2^n trait assignments. The Hypothesis passed
// to visit is reused and must not be retained.
func Enumerate(ctx context.Context, ped *Pedigree, visit func(h *Hypothesis)) error {
	_, err := enumerateRange(ctx, ped, 0, traitMasks(ped), visit)
	return err
}
