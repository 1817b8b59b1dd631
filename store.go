package heredity

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/carbocation/pfx"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ErrRunNotFound is returned when a run ID is not in the result store.
var ErrRunNotFound = errors.New("run not found")

const resultSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	source     TEXT NOT NULL,
	n_people   INTEGER NOT NULL,
	worlds     INTEGER NOT NULL,
	pruned     INTEGER NOT NULL,
	raw_mass   REAL NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS posteriors (
	run_id      TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	person      TEXT NOT NULL,
	gene0       REAL NOT NULL,
	gene1       REAL NOT NULL,
	gene2       REAL NOT NULL,
	trait_true  REAL NOT NULL,
	trait_false REAL NOT NULL,
	PRIMARY KEY (run_id, person)
);
`

// ResultStore persists inference results in a SQLite database.
type ResultStore struct {
	DB *sqlx.DB
}

// RunRecord conforms to the rows of the "runs" table and can be parsed with
// sqlx.
type RunRecord struct {
	ID        string  `db:"id"`
	Source    string  `db:"source"`
	NPeople   int     `db:"n_people"`
	Worlds    int64   `db:"worlds"`
	Pruned    int64   `db:"pruned"`
	RawMass   float64 `db:"raw_mass"`
	CreatedAt Time    `db:"created_at"`
}

// PosteriorRow conforms to the rows of the "posteriors" table.
type PosteriorRow struct {
	RunID      string  `db:"run_id"`
	Person     string  `db:"person"`
	Gene0      float64 `db:"gene0"`
	Gene1      float64 `db:"gene1"`
	Gene2      float64 `db:"gene2"`
	TraitTrue  float64 `db:"trait_true"`
	TraitFalse float64 `db:"trait_false"`
}

// Distribution converts the row back into a Distribution.
func (r PosteriorRow) Distribution() Distribution {
	var d Distribution
	d.Gene[NoCopies], d.Gene[OneCopy], d.Gene[TwoCopies] = r.Gene0, r.Gene1, r.Gene2
	d.Trait[traitIndex(true)], d.Trait[traitIndex(false)] = r.TraitTrue, r.TraitFalse
	return d
}

// OpenResultStore opens (creating if needed) the result database at path.
func OpenResultStore(path string) (*ResultStore, error) {
	path, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}

	// URI filenames have to begin with 'file:'; see
	// https://www.sqlite.org/c3ref/open.html
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}

	db, err := sqlx.Connect(whichSQLiteDriver, sqliteDSN(path))
	if err != nil {
		return nil, pfx.Err(err)
	}
	// SQLite has a single writer; one connection also keeps per-connection
	// pragmas in force.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(resultSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to create schema: %w", err)
	}

	return &ResultStore{DB: db}, nil
}

func (s *ResultStore) Close() error {
	return s.DB.Close()
}

// SaveRun records r, computed from source, in a single transaction.
func (s *ResultStore) SaveRun(source string, r *Result) (RunRecord, error) {
	rec := RunRecord{
		ID:        uuid.NewString(),
		Source:    source,
		NPeople:   len(r.Names),
		Worlds:    int64(r.Stats.Worlds),
		Pruned:    int64(r.Stats.Pruned),
		RawMass:   r.Stats.RawMass,
		CreatedAt: Time(time.Now().UTC().Truncate(time.Second)),
	}

	tx, err := s.DB.Beginx()
	if err != nil {
		return rec, pfx.Err(err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs (id, source, n_people, worlds, pruned, raw_mass, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Source, rec.NPeople, rec.Worlds, rec.Pruned, rec.RawMass, rec.CreatedAt.Time().Unix())
	if err != nil {
		return rec, pfx.Err(err)
	}

	for _, name := range r.Names {
		d := r.Posteriors[name]
		_, err = tx.NamedExec(`INSERT INTO posteriors (run_id, person, gene0, gene1, gene2, trait_true, trait_false)
			VALUES (:run_id, :person, :gene0, :gene1, :gene2, :trait_true, :trait_false)`,
			PosteriorRow{
				RunID:      rec.ID,
				Person:     name,
				Gene0:      d.GeneProbability(NoCopies),
				Gene1:      d.GeneProbability(OneCopy),
				Gene2:      d.GeneProbability(TwoCopies),
				TraitTrue:  d.TraitProbability(true),
				TraitFalse: d.TraitProbability(false),
			})
		if err != nil {
			return rec, pfx.Err(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return rec, pfx.Err(err)
	}
	return rec, nil
}

// Runs lists stored runs, newest first.
func (s *ResultStore) Runs() ([]RunRecord, error) {
	var runs []RunRecord
	if err := s.DB.Select(&runs, "SELECT * FROM runs ORDER BY created_at DESC, id ASC"); err != nil {
		return nil, pfx.Err(err)
	}
	return runs, nil
}

// Run returns the run with the given ID.
func (s *ResultStore) Run(id string) (RunRecord, error) {
	var rec RunRecord
	err := s.DB.Get(&rec, "SELECT * FROM runs WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return rec, pfx.Err(err)
	}
	return rec, nil
}

// Posteriors returns a run's per-person distributions in name order.
func (s *ResultStore) Posteriors(id string) ([]PosteriorRow, error) {
	var rows []PosteriorRow
	if err := s.DB.Select(&rows, "SELECT * FROM posteriors WHERE run_id = ? ORDER BY person ASC", id); err != nil {
		return nil, pfx.Err(err)
	}
	return rows, nil
}

// Result reassembles a stored run. Elapsed time is not stored.
func (s *ResultStore) Result(id string) (*Result, error) {
	rec, err := s.Run(id)
	if err != nil {
		return nil, err
	}

	rows, err := s.Posteriors(id)
	if err != nil {
		return nil, err
	}

	r := &Result{
		Names:      make([]string, 0, len(rows)),
		Posteriors: make(map[string]Distribution, len(rows)),
		Stats: Stats{
			Worlds:  uint64(rec.Worlds),
			Pruned:  uint64(rec.Pruned),
			RawMass: rec.RawMass,
		},
	}
	for _, row := range rows {
		r.Names = append(r.Names, row.Person)
		r.Posteriors[row.Person] = row.Distribution()
	}
	return r, nil
}

// DeleteRun removes a run and, through the foreign key, its posteriors.
func (s *ResultStore) DeleteRun(id string) error {
	res, err := s.DB.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return pfx.Err(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}
