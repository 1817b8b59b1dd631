package heredity

import (
	"errors"
	"fmt"
	"sort"

	"github.com/carbocation/pfx"
)

// MaxPeople is the largest pedigree that can be enumerated. Trait assignments
// are enumerated as 64-bit masks, and the 6^n cost of exact inference is
// prohibitive well before this limit.
const MaxPeople = 32

// Structural-integrity errors, reported when a Pedigree is built.
var (
	ErrEmptyName       = errors.New("person has an empty name")
	ErrDuplicatePerson = errors.New("person is listed more than once")
	ErrSingleParent    = errors.New("person has exactly one recorded parent")
	ErrSelfParent      = errors.New("person is recorded as their own parent")
	ErrUnknownParent   = errors.New("parent is not present in the pedigree")
	ErrParentCycle     = errors.New("pedigree contains an ancestry cycle")
	ErrTooManyPeople   = fmt.Errorf("pedigree has more than %d people", MaxPeople)
)

const noParent = -1

// Pedigree is an immutable, validated family graph. People are indexed by
// their position in name order; that index is how a Hypothesis refers to
// them.
type Pedigree struct {
	people []Person
	index  map[string]int
	mother []int
	father []int
}

// NewPedigree validates people and builds a Pedigree. Every parent must be
// present, each person must have zero or two parents, and the parent graph
// must be acyclic.
func NewPedigree(people []Person) (*Pedigree, error) {
	if len(people) > MaxPeople {
		return nil, pfx.Err(fmt.Errorf("%w: got %d", ErrTooManyPeople, len(people)))
	}

	sorted := make([]Person, len(people))
	copy(sorted, people)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	p := &Pedigree{
		people: sorted,
		index:  make(map[string]int, len(sorted)),
		mother: make([]int, len(sorted)),
		father: make([]int, len(sorted)),
	}

	for i, person := range sorted {
		if person.Name == "" {
			return nil, pfx.Err(ErrEmptyName)
		}
		if _, exists := p.index[person.Name]; exists {
			return nil, pfx.Err(fmt.Errorf("%w: %q", ErrDuplicatePerson, person.Name))
		}
		p.index[person.Name] = i
	}

	for i, person := range sorted {
		p.mother[i], p.father[i] = noParent, noParent

		if (person.Mother == "") != (person.Father == "") {
			return nil, pfx.Err(fmt.Errorf("%w: %q (mother %q, father %q)", ErrSingleParent, person.Name, person.Mother, person.Father))
		}
		if !person.HasParents() {
			continue
		}

		for _, parent := range []string{person.Mother, person.Father} {
			if parent == person.Name {
				return nil, pfx.Err(fmt.Errorf("%w: %q", ErrSelfParent, person.Name))
			}
			if _, exists := p.index[parent]; !exists {
				return nil, pfx.Err(fmt.Errorf("%w: %q, referenced by %q", ErrUnknownParent, parent, person.Name))
			}
		}
		p.mother[i] = p.index[person.Mother]
		p.father[i] = p.index[person.Father]
	}

	if err := p.checkAcyclic(); err != nil {
		return nil, pfx.Err(err)
	}

	return p, nil
}

// checkAcyclic walks every person's ancestry depth-first.
func (p *Pedigree) checkAcyclic() error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]int, len(p.people))

	var visit func(i int) error
	visit = func(i int) error {
		switch state[i] {
		case visiting:
			return fmt.Errorf("%w: %q is their own ancestor", ErrParentCycle, p.people[i].Name)
		case done:
			return nil
		}
		state[i] = visiting
		if p.mother[i] != noParent {
			if err := visit(p.mother[i]); err != nil {
				return err
			}
			if err := visit(p.father[i]); err != nil {
				return err
			}
		}
		state[i] = done
		return nil
	}

	for i := range p.people {
		if err := visit(i); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of people in the pedigree.
func (p *Pedigree) Len() int {
	return len(p.people)
}

// Names returns every person's name in index order.
func (p *Pedigree) Names() []string {
	names := make([]string, len(p.people))
	for i, person := range p.people {
		names[i] = person.Name
	}
	return names
}

// People returns a copy of the pedigree's members in index order.
func (p *Pedigree) People() []Person {
	out := make([]Person, len(p.people))
	copy(out, p.people)
	return out
}

// Person looks a member up by name.
func (p *Pedigree) Person(name string) (Person, bool) {
	i, ok := p.index[name]
	if !ok {
		return Person{}, false
	}
	return p.people[i], true
}

// Index returns the position of name within the pedigree.
func (p *Pedigree) Index(name string) (int, bool) {
	i, ok := p.index[name]
	return i, ok
}

// HasParents reports whether name has recorded parents. Unknown names have
// none.
func (p *Pedigree) HasParents(name string) bool {
	i, ok := p.index[name]
	return ok && p.mother[i] != noParent
}

// Evidence returns the observed trait status of name.
func (p *Pedigree) Evidence(name string) Evidence {
	i, ok := p.index[name]
	if !ok {
		return EvidenceUnknown
	}
	return p.people[i].Trait
}

// Admits reports whether a trait assignment, indexed like the pedigree,
// agrees with every person's observed evidence.
func (p *Pedigree) Admits(traits []bool) bool {
	for i, person := range p.people {
		if !person.Trait.Admits(traits[i]) {
			return false
		}
	}
	return true
}

// parents returns the indices of person i's mother and father, or noParent
// for both.
func (p *Pedigree) parents(i int) (int, int) {
	return p.mother[i], p.father[i]
}
