package heredity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTallyAccumulate(t *testing.T) {
	tl := newTally(2)

	tl.accumulate(&Hypothesis{Genes: []GeneCount{TwoCopies, NoCopies}, Traits: []bool{true, false}}, 0.2)
	tl.accumulate(&Hypothesis{Genes: []GeneCount{TwoCopies, OneCopy}, Traits: []bool{false, false}}, 0.1)

	assert.InDelta(t, 0.3, tl[0].Gene[TwoCopies], tolerance)
	assert.InDelta(t, 0.2, tl[0].TraitProbability(true), tolerance)
	assert.InDelta(t, 0.1, tl[0].TraitProbability(false), tolerance)
	assert.InDelta(t, 0.2, tl[1].Gene[NoCopies], tolerance)
	assert.InDelta(t, 0.1, tl[1].Gene[OneCopy], tolerance)
	assert.InDelta(t, 0.3, tl[1].TraitProbability(false), tolerance)
}

func TestDistributionNormalize(t *testing.T) {
	d := Distribution{
		Gene:  [NGeneCounts]float64{1, 2, 5},
		Trait: [2]float64{3, 1},
	}
	require.NoError(t, d.normalize())

	assert.InDelta(t, 0.125, d.Gene[NoCopies], tolerance)
	assert.InDelta(t, 0.25, d.Gene[OneCopy], tolerance)
	assert.InDelta(t, 0.625, d.Gene[TwoCopies], tolerance)
	assert.InDelta(t, 0.75, d.TraitProbability(false), tolerance)
	assert.InDelta(t, 0.25, d.TraitProbability(true), tolerance)
}

func TestTallyNormalizeZeroMass(t *testing.T) {
	ped, err := NewPedigree([]Person{{Name: "A"}, {Name: "B"}})
	require.NoError(t, err)

	tl := newTally(2)
	tl[0] = Distribution{Gene: [NGeneCounts]float64{1, 0, 0}, Trait: [2]float64{1, 0}}

	err = tl.normalize(ped)
	assert.ErrorIs(t, err, ErrInconsistentEvidence)
	assert.Contains(t, err.Error(), `"B"`)
	assert.True(t, strings.HasPrefix(err.Error(), "heredity.tally.normalize: "), err.Error())
}

func TestTallyMerge(t *testing.T) {
	a, b := newTally(1), newTally(1)
	h := &Hypothesis{Genes: []GeneCount{OneCopy}, Traits: []bool{true}}
	a.accumulate(h, 0.25)
	b.accumulate(h, 0.5)

	a.merge(b)
	assert.InDelta(t, 0.75, a[0].Gene[OneCopy], tolerance)
	assert.InDelta(t, 0.75, a[0].TraitProbability(true), tolerance)
}
