package heredity

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/carbocation/pfx"
)

// ErrInvalidEvidence is returned for a trait field other than "1", "0" or
// blank.
var ErrInvalidEvidence = errors.New("trait must be 1, 0 or blank")

// ErrMissingColumn is returned when a pedigree file lacks a required column.
var ErrMissingColumn = errors.New("pedigree header is missing a required column")

// Columns a pedigree CSV must carry. Other columns are ignored.
const (
	ColumnName   = "name"
	ColumnMother = "mother"
	ColumnFather = "father"
	ColumnTrait  = "trait"
)

// PersonReader streams people from a pedigree CSV with a header row naming
// at least the name, mother, father and trait columns, in any order.
type PersonReader struct {
	RowsSeen int
	csv      *csv.Reader
	columns  map[string]int
	err      error
}

// NewPersonReader reads the header row from r.
func NewPersonReader(r io.Reader) (*PersonReader, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: file is empty", ErrMissingColumn)
		}
		return nil, pfx.Err(err)
	}

	pr := &PersonReader{
		csv:     cr,
		columns: make(map[string]int, len(header)),
	}
	for i, column := range header {
		pr.columns[strings.ToLower(strings.TrimSpace(column))] = i
	}
	for _, required := range []string{ColumnName, ColumnMother, ColumnFather, ColumnTrait} {
		if _, ok := pr.columns[required]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, required)
		}
	}

	return pr, nil
}

func (pr *PersonReader) Error() error {
	return pr.err
}

// Read returns the next person, or nil at the end of input or on error. Check
// Error after Read returns nil.
func (pr *PersonReader) Read() *Person {
	if pr.err != nil {
		return nil
	}

	record, err := pr.csv.Read()
	if err != nil {
		if err != io.EOF {
			pr.err = pfx.Err(err)
		}
		return nil
	}
	pr.RowsSeen++

	field := func(column string) string {
		return strings.TrimSpace(record[pr.columns[column]])
	}

	p := &Person{
		Name:   field(ColumnName),
		Mother: field(ColumnMother),
		Father: field(ColumnFather),
	}

	switch trait := field(ColumnTrait); trait {
	case "1":
		p.Trait = EvidencePresent
	case "0":
		p.Trait = EvidenceAbsent
	case "":
		p.Trait = EvidenceUnknown
	default:
		line, _ := pr.csv.FieldPos(pr.columns[ColumnTrait])
		pr.err = fmt.Errorf("%w: line %d has %q for %q", ErrInvalidEvidence, line, trait, p.Name)
		return nil
	}

	return p
}

// ReadPedigree reads every person from a pedigree CSV and validates the
// resulting family graph.
func ReadPedigree(r io.Reader) (*Pedigree, error) {
	pr, err := NewPersonReader(r)
	if err != nil {
		return nil, err
	}

	var people []Person
	for {
		p := pr.Read()
		if p == nil {
			break
		}
		people = append(people, *p)
	}
	if err := pr.Error(); err != nil {
		return nil, err
	}

	return NewPedigree(people)
}
