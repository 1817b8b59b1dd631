package heredity

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidTables is returned when probability tables are not proper
// distributions.
var ErrInvalidTables = errors.New("invalid probability tables")

const probabilityTolerance = 1e-9

// ProbabilityTables holds the constants of the inheritance model. It is a
// plain value; pass it explicitly and copy freely.
type ProbabilityTables struct {
	// Gene is the unconditional distribution over gene counts for people
	// without recorded parents.
	Gene [NGeneCounts]float64

	// Trait[g][0] is P(no trait | g) and Trait[g][1] is P(trait | g).
	Trait [NGeneCounts][2]float64

	// Mutation is the probability that a transmitted copy flips type.
	Mutation float64
}

// DefaultTables returns the reference model constants.
func DefaultTables() ProbabilityTables {
	return ProbabilityTables{
		Gene: [NGeneCounts]float64{
			NoCopies:  0.96,
			OneCopy:   0.03,
			TwoCopies: 0.01,
		},
		Trait: [NGeneCounts][2]float64{
			NoCopies:  {0.99, 0.01},
			OneCopy:   {0.44, 0.56},
			TwoCopies: {0.35, 0.65},
		},
		Mutation: 0.01,
	}
}

// TraitGivenGene returns P(trait = hasTrait | gene = g).
func (t ProbabilityTables) TraitGivenGene(g GeneCount, hasTrait bool) float64 {
	return t.Trait[g][traitIndex(hasTrait)]
}

// Transmit returns the probability that a parent carrying g copies passes one
// copy to a child. A parent with one copy passes it with probability exactly
// one half; mutation only affects homozygous parents.
func (t ProbabilityTables) Transmit(g GeneCount) float64 {
	switch g {
	case TwoCopies:
		return 1 - t.Mutation
	case OneCopy:
		return 0.5
	}
	return t.Mutation
}

// Inherit returns P(child = g | mother, father). Each parent transmits
// independently, and a child with one copy received it from exactly one of
// them.
func (t ProbabilityTables) Inherit(g, mother, father GeneCount) float64 {
	m, f := t.Transmit(mother), t.Transmit(father)

	switch g {
	case TwoCopies:
		return m * f
	case OneCopy:
		return m*(1-f) + f*(1-m)
	}
	return (1 - m) * (1 - f)
}

// Validate checks that every entry is a probability, that the gene prior sums
// to one and that each row of the trait table sums to one.
func (t ProbabilityTables) Validate() error {
	check := func(what string, p float64) error {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return fmt.Errorf("%w: %s = %v is not a probability", ErrInvalidTables, what, p)
		}
		return nil
	}

	var sum float64
	for _, g := range GeneCounts {
		if err := check(fmt.Sprintf("P(gene=%s)", g), t.Gene[g]); err != nil {
			return err
		}
		sum += t.Gene[g]
	}
	if math.Abs(sum-1) > probabilityTolerance {
		return fmt.Errorf("%w: gene prior sums to %v", ErrInvalidTables, sum)
	}

	for _, g := range GeneCounts {
		for _, hasTrait := range []bool{false, true} {
			if err := check(fmt.Sprintf("P(trait=%t|gene=%s)", hasTrait, g), t.TraitGivenGene(g, hasTrait)); err != nil {
				return err
			}
		}
		if rowSum := t.Trait[g][0] + t.Trait[g][1]; math.Abs(rowSum-1) > probabilityTolerance {
			return fmt.Errorf("%w: trait distribution for gene=%s sums to %v", ErrInvalidTables, g, rowSum)
		}
	}

	return check("mutation", t.Mutation)
}

func traitIndex(hasTrait bool) int {
	if hasTrait {
		return 1
	}
	return 0
}
