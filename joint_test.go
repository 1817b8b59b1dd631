package heredity

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJointProbability(t *testing.T) {
	ped := mustOpenPedigree(t, "testdata/family0.csv")

	h, err := HypothesisFromSets(ped, []string{"James"}, []string{"Harry"}, []string{"James"})
	require.NoError(t, err)

	// Lily: 0.96 * 0.99
	// James: 0.01 * 0.65
	// Harry: (0.01*0.01 + 0.99*0.99) * 0.44
	assert.InDelta(t, 0.0026643247488, JointProbability(ped, DefaultTables(), h), 1e-15)
}

func TestJointProbabilityOrderInvariant(t *testing.T) {
	ped := mustOpenPedigree(t, "testdata/family1.csv")
	tables := DefaultTables()
	rng := rand.New(rand.NewSource(1))

	order := make([]int, ped.Len())
	for i := range order {
		order[i] = i
	}

	err := Enumerate(context.Background(), ped, func(h *Hypothesis) {
		if rng.Intn(50) != 0 {
			return
		}

		want := JointProbability(ped, tables, h)

		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		got := 1.0
		for _, i := range order {
			got *= personFactor(ped, tables, h, i)
		}

		assert.InEpsilon(t, want, got, 1e-12)
	})
	require.NoError(t, err)
}

func TestJointProbabilityChildGivenParents(t *testing.T) {
	ped, err := NewPedigree([]Person{
		{Name: "Mother"},
		{Name: "Father"},
		{Name: "Child", Mother: "Mother", Father: "Father"},
	})
	require.NoError(t, err)
	tables := DefaultTables()

	// With both parents at two copies and no trait anywhere, the child's
	// factor is inheritance times P(no trait | g).
	parents := tables.Gene[TwoCopies] * tables.TraitGivenGene(TwoCopies, false)
	parents *= parents

	for g, inherit := range map[GeneCount]float64{
		TwoCopies: 0.99 * 0.99,
		OneCopy:   2 * 0.01 * 0.99,
		NoCopies:  0.01 * 0.01,
	} {
		var one, two []string
		switch g {
		case OneCopy:
			one = []string{"Child"}
		case TwoCopies:
			two = []string{"Child"}
		}
		h, err := HypothesisFromSets(ped, nil, one, append(two, "Mother", "Father"))
		require.NoError(t, err)

		want := parents * inherit * tables.TraitGivenGene(g, false)
		assert.InDelta(t, want, JointProbability(ped, tables, h), 1e-15, "child gene=%s", g)
	}
}
