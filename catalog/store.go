package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/viant/featurematch/descriptor"
	"github.com/viant/featurematch/engine"
	"github.com/viant/featurematch/extractor"
	"github.com/viant/featurematch/internal/logger"
)

// ErrNotFound is returned when no matcher is stored under a name.
var ErrNotFound = errors.New("catalog: matcher not found")

// Reference is one stored reference image.
type Reference struct {
	Name        string
	Descriptors *descriptor.Matrix
}

// Entry is a stored matcher.
type Entry struct {
	Name       string
	Extractor  extractor.Type
	BuildID    string
	UpdatedAt  time.Time
	References []Reference
}

// Summary describes a stored matcher without loading its descriptors.
type Summary struct {
	Name       string
	Extractor  string
	BuildID    string
	References int
	Vectors    int64
}

// Store is a SQLite backed matcher catalog.
type Store struct {
	db     *sql.DB
	owned  bool
	logger *logger.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger reporting skipped records.
func WithLogger(l *logger.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Open opens (creating if needed) the catalog database at path.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	db, err := engine.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	s, err := New(ctx, db, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	s.owned = true
	return s, nil
}

// New wraps a database handle opened with engine.Open and ensures the schema.
func New(ctx context.Context, db *sql.DB, opts ...Option) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("catalog: db is nil")
	}
	s := &Store{db: db}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logger.OrDefault(s.logger)
	if err := EnsureSchema(ctx, db); err != nil {
		return nil, fmt.Errorf("catalog: schema: %w", err)
	}
	return s, nil
}

// Close closes the database when the store opened it.
func (s *Store) Close() error {
	if s.owned {
		return s.db.Close()
	}
	return nil
}

// Save replaces the matcher stored under e.Name.
func (s *Store) Save(ctx context.Context, e *Entry) error {
	if e == nil || e.Name == "" {
		return fmt.Errorf("catalog: entry name must be set")
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = time.Now()
	}
	ext, err := e.Extractor.MarshalText()
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM reference WHERE matcher = ?`, e.Name); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO matcher(name, extractor, build_id, updated_at) VALUES(?, ?, ?, ?)`,
		e.Name, string(ext), e.BuildID, e.UpdatedAt.Unix()); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO reference(matcher, position, name, descriptors) VALUES(?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for pos, ref := range e.References {
		mat := ref.Descriptors
		if mat == nil {
			mat = &descriptor.Matrix{Type: descriptor.Float32}
		}
		blob, err := mat.MarshalBinary()
		if err != nil {
			return fmt.Errorf("catalog: reference %q: %w", ref.Name, err)
		}
		if _, err := stmt.ExecContext(ctx, e.Name, pos, ref.Name, blob); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Load returns the matcher stored under name. References whose descriptor
// record is corrupt are logged and omitted.
func (s *Store) Load(ctx context.Context, name string) (*Entry, error) {
	e := &Entry{Name: name}
	var ext string
	var updated int64
	err := s.db.QueryRowContext(ctx, `SELECT extractor, build_id, updated_at FROM matcher WHERE name = ?`, name).
		Scan(&ext, &e.BuildID, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	if err := e.Extractor.UnmarshalText([]byte(ext)); err != nil {
		return nil, fmt.Errorf("catalog: matcher %s: %w", name, err)
	}
	e.UpdatedAt = time.Unix(updated, 0)

	rows, err := s.db.QueryContext(ctx, `SELECT name, descriptors FROM reference WHERE matcher = ? ORDER BY position`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var refName string
		var blob []byte
		if err := rows.Scan(&refName, &blob); err != nil {
			return nil, err
		}
		mat := &descriptor.Matrix{}
		if err := mat.UnmarshalBinary(blob); err != nil {
			s.logger.Warn.Printf("catalog: skipping reference %q of %s: %v", refName, name, err)
			continue
		}
		e.References = append(e.References, Reference{Name: refName, Descriptors: mat})
	}
	return e, rows.Err()
}

// Delete removes the matcher stored under name. Deleting a missing matcher is not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `DELETE FROM reference WHERE matcher = ?`, name); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM matcher WHERE name = ?`, name); err != nil {
		return err
	}
	return tx.Commit()
}

// List summarizes all stored matchers ordered by name. Vector counts are
// read from the descriptor record headers; corrupt records count as zero.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT m.name, m.extractor, m.build_id, COUNT(r.position), COALESCE(SUM(descr_rows(r.descriptors)), 0)
FROM matcher m LEFT JOIN reference r ON r.matcher = m.name
GROUP BY m.name, m.extractor, m.build_id
ORDER BY m.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.Name, &sum.Extractor, &sum.BuildID, &sum.References, &sum.Vectors); err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}
