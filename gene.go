package heredity

// GeneCount is the number of copies of the trait-causing gene that a person
// carries.
type GeneCount uint8

const (
	NoCopies GeneCount = iota
	OneCopy
	TwoCopies
)

// NGeneCounts is the number of distinct values a GeneCount can take.
const NGeneCounts = 3

// GeneCounts lists every gene count in ascending order.
var GeneCounts = [NGeneCounts]GeneCount{NoCopies, OneCopy, TwoCopies}

func (g GeneCount) String() string {
	switch g {
	case NoCopies:
		return "0"
	case OneCopy:
		return "1"
	case TwoCopies:
		return "2"

	default:
		return "Illegal gene count"
	}
}

// Valid reports whether g is one of 0, 1 or 2.
func (g GeneCount) Valid() bool {
	return g <= TwoCopies
}
