package heredity

// JointProbability returns the probability of the exact world h: the product,
// over every person, of P(trait | gene) and either the gene prior (founders)
// or the probability of inheriting that gene count from the parents' genes in
// the same world.
//
// h must be indexed like ped. The pedigree's structural invariants are
// assumed to hold, which NewPedigree guarantees.
func JointProbability(ped *Pedigree, t ProbabilityTables, h *Hypothesis) float64 {
	p := 1.0
	for i := range ped.people {
		p *= personFactor(ped, t, h, i)
	}
	return p
}

// personFactor is person i's conditional probability given the rest of h.
func personFactor(ped *Pedigree, t ProbabilityTables, h *Hypothesis, i int) float64 {
	g := h.Genes[i]
	trait := t.TraitGivenGene(g, h.Traits[i])

	mother, father := ped.parents(i)
	if mother == noParent {
		return t.Gene[g] * trait
	}

	return t.Inherit(g, h.Genes[mother], h.Genes[father]) * trait
}
