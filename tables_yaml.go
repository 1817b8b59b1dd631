package heredity

import (
	"fmt"
	"io"
	"os"

	"github.com/carbocation/pfx"
	"gopkg.in/yaml.v3"
)

// tablesFile is the YAML layout of ProbabilityTables:
//
//	gene: {0: 0.96, 1: 0.03, 2: 0.01}
//	trait:
//	  0: {present: 0.01, absent: 0.99}
//	  1: {present: 0.56, absent: 0.44}
//	  2: {present: 0.65, absent: 0.35}
//	mutation: 0.01
type tablesFile struct {
	Gene     map[int]float64    `yaml:"gene"`
	Trait    map[int]traitEntry `yaml:"trait"`
	Mutation *float64           `yaml:"mutation"`
}

type traitEntry struct {
	Present *float64 `yaml:"present"`
	Absent  *float64 `yaml:"absent"`
}

// ReadTablesYAML decodes and validates probability tables. Every gene count
// must appear in both the gene and trait sections, and mutation is required.
func ReadTablesYAML(r io.Reader) (ProbabilityTables, error) {
	var (
		file tablesFile
		t    ProbabilityTables
	)

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return t, pfx.Err(err)
	}

	for key := range file.Gene {
		if key < 0 || key > int(TwoCopies) {
			return t, fmt.Errorf("%w: gene count %d in gene section", ErrInvalidTables, key)
		}
	}
	for key := range file.Trait {
		if key < 0 || key > int(TwoCopies) {
			return t, fmt.Errorf("%w: gene count %d in trait section", ErrInvalidTables, key)
		}
	}

	for _, g := range GeneCounts {
		p, ok := file.Gene[int(g)]
		if !ok {
			return t, fmt.Errorf("%w: gene section has no entry for %s", ErrInvalidTables, g)
		}
		t.Gene[g] = p

		entry, ok := file.Trait[int(g)]
		if !ok || entry.Present == nil || entry.Absent == nil {
			return t, fmt.Errorf("%w: trait section needs present and absent for %s", ErrInvalidTables, g)
		}
		t.Trait[g][traitIndex(true)] = *entry.Present
		t.Trait[g][traitIndex(false)] = *entry.Absent
	}

	if file.Mutation == nil {
		return t, fmt.Errorf("%w: mutation is required", ErrInvalidTables)
	}
	t.Mutation = *file.Mutation

	if err := t.Validate(); err != nil {
		return t, err
	}
	return t, nil
}

// LoadTablesYAML reads probability tables from a YAML file.
func LoadTablesYAML(path string) (ProbabilityTables, error) {
	path, err := ExpandHome(path)
	if err != nil {
		return ProbabilityTables{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return ProbabilityTables{}, pfx.Err(err)
	}
	defer f.Close()

	t, err := ReadTablesYAML(f)
	if err != nil {
		return t, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// WriteTablesYAML encodes t in the layout ReadTablesYAML accepts.
func WriteTablesYAML(w io.Writer, t ProbabilityTables) error {
	file := tablesFile{
		Gene:     make(map[int]float64, NGeneCounts),
		Trait:    make(map[int]traitEntry, NGeneCounts),
		Mutation: &t.Mutation,
	}
	for _, g := range GeneCounts {
		present, absent := t.TraitGivenGene(g, true), t.TraitGivenGene(g, false)
		file.Gene[int(g)] = t.Gene[g]
		file.Trait[int(g)] = traitEntry{Present: &present, Absent: &absent}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(file); err != nil {
		return pfx.Err(err)
	}
	if err := enc.Close(); err != nil {
		return pfx.Err(err)
	}
	return nil
}
