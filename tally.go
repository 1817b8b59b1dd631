package heredity

import (
	"errors"
	"fmt"

	"github.com/carbocation/pfx"
)

// ErrInconsistentEvidence is returned when no world is consistent with the
// observed evidence, leaving nothing to normalize.
var ErrInconsistentEvidence = errors.New("no hypothesis is consistent with the evidence")

// Distribution is one person's gene-count and trait distributions. While
// inference runs it holds unnormalized probability mass.
type Distribution struct {
	Gene [NGeneCounts]float64

	// Trait[0] is the mass for no trait, Trait[1] for the trait.
	Trait [2]float64
}

// GeneProbability returns the mass assigned to gene count g.
func (d Distribution) GeneProbability(g GeneCount) float64 {
	return d.Gene[g]
}

// TraitProbability returns the mass assigned to hasTrait.
func (d Distribution) TraitProbability(hasTrait bool) float64 {
	return d.Trait[traitIndex(hasTrait)]
}

// normalize rescales gene and trait masses independently so each sums to one.
func (d *Distribution) normalize() error {
	var geneSum float64
	for _, v := range d.Gene {
		geneSum += v
	}
	traitSum := d.Trait[0] + d.Trait[1]
	if geneSum == 0 || traitSum == 0 {
		return ErrInconsistentEvidence
	}

	for i := range d.Gene {
		d.Gene[i] /= geneSum
	}
	for i := range d.Trait {
		d.Trait[i] /= traitSum
	}
	return nil
}

// tally holds one unnormalized Distribution per person, indexed like the
// pedigree.
type tally []Distribution

func newTally(n int) tally {
	return make(tally, n)
}

// accumulate adds p to every person's bucket for their value in h.
func (t tally) accumulate(h *Hypothesis, p float64) {
	for i := range t {
		t[i].Gene[h.Genes[i]] += p
		t[i].Trait[traitIndex(h.Traits[i])] += p
	}
}

// merge adds other into t. Tallies are purely additive, so partial tallies
// from disjoint parts of the hypothesis space may be merged in any order.
func (t tally) merge(other tally) {
	for i := range t {
		for g := range t[i].Gene {
			t[i].Gene[g] += other[i].Gene[g]
		}
		for v := range t[i].Trait {
			t[i].Trait[v] += other[i].Trait[v]
		}
	}
}

// normalize finalizes every person's distributions in place.
func (t tally) normalize(ped *Pedigree) error {
	for i := range t {
		if err := t[i].normalize(); err != nil {
			return pfx.Err(fmt.Errorf("%w: %q has no probability mass", err, ped.people[i].Name))
		}
	}
	return nil
}
