package heredity

// Evidence is the observed trait status of a person, if any.
type Evidence int8

const (
	EvidenceUnknown Evidence = iota
	EvidenceAbsent
	EvidencePresent
)

// EvidenceFromBool converts an observed trait value into Evidence.
func EvidenceFromBool(hasTrait bool) Evidence {
	if hasTrait {
		return EvidencePresent
	}
	return EvidenceAbsent
}

// Known reports whether the trait was observed.
func (e Evidence) Known() bool {
	return e == EvidenceAbsent || e == EvidencePresent
}

// Admits reports whether a world in which the person's trait is hasTrait is
// consistent with this evidence.
func (e Evidence) Admits(hasTrait bool) bool {
	switch e {
	case EvidencePresent:
		return hasTrait
	case EvidenceAbsent:
		return !hasTrait
	}
	return true
}

func (e Evidence) String() string {
	switch e {
	case EvidenceUnknown:
		return "unknown"
	case EvidenceAbsent:
		return "absent"
	case EvidencePresent:
		return "present"

	default:
		return "Illegal evidence"
	}
}

// Person is one member of a pedigree. Mother and Father are either both empty
// (a founder) or both name other members of the same pedigree.
type Person struct {
	Name   string
	Mother string
	Father string
	Trait  Evidence
}

// HasParents reports whether the person has recorded parents.
func (p Person) HasParents() bool {
	return p.Mother != "" && p.Father != ""
}
