package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// SQLite is a file backed Store. Writers from multiple goroutines are
// serialized by the driver; the per-protein partitioning upstream keeps
// record writes race-free without table locks.
type SQLite struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the database at path. An empty path
// opens an in-memory database, used by tests.
func Open(path string) (*SQLite, error) {
	var dsn string
	if path == "" {
		dsn = "file::memory:?_pragma=foreign_keys(1)"
	} else {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
		// repeated _pragma params apply per-connection across the pool
		dsn = fmt.Sprintf(
			"file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
			path,
		)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// a single connection keeps in-memory databases coherent and avoids
	// SQLITE_BUSY churn between concurrent record builders
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("exec schema: %w", err)
	}

	return &SQLite{db: db, path: path}, nil
}

// UpsertProtein creates or refreshes a protein record by name.
func (s *SQLite) UpsertProtein(ctx context.Context, p *Protein) error {
	const query = `
		INSERT INTO proteins (name, uid, reviewed, unreviewed)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			uid        = excluded.uid,
			reviewed   = excluded.reviewed,
			unreviewed = excluded.unreviewed
	`
	_, err := s.db.ExecContext(ctx, query,
		p.Name,
		p.UID,
		strings.Join(p.Reviewed, ","),
		strings.Join(p.Unreviewed, ","),
	)
	if err != nil {
		return fmt.Errorf("upsert protein %s: %w", p.Name, err)
	}
	return nil
}

// GetProtein fetches one protein or returns an error if absent.
func (s *SQLite) GetProtein(ctx context.Context, name string) (*Protein, error) {
	const query = `SELECT name, uid, reviewed, unreviewed FROM proteins WHERE name = ?`

	var p Protein
	var reviewed, unreviewed string
	err := s.db.QueryRowContext(ctx, query, name).Scan(&p.Name, &p.UID, &reviewed, &unreviewed)
	if err != nil {
		return nil, fmt.Errorf("get protein %s: %w", name, err)
	}
	p.Reviewed = splitList(reviewed)
	p.Unreviewed = splitList(unreviewed)
	return &p, nil
}

// AppendVariant adds a variant to its protein, merging metadata on repeat
// ingestion of the same (protein, name) pair.
func (s *SQLite) AppendVariant(ctx context.Context, v *Variant) error {
	const query = `
		INSERT INTO variants (protein, name, chromosome, dna_start, dna_end, ref_na, alt_na, patient, family)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (protein, name) DO UPDATE SET
			chromosome = excluded.chromosome,
			dna_start  = excluded.dna_start,
			dna_end    = excluded.dna_end,
			ref_na     = excluded.ref_na,
			alt_na     = excluded.alt_na,
			patient    = excluded.patient,
			family     = excluded.family
	`
	_, err := s.db.ExecContext(ctx, query,
		v.Protein, v.Name, v.Chromosome, v.DNAStart, v.DNAEnd, v.RefNA, v.AltNA, v.Patient, v.Family,
	)
	if err != nil {
		return fmt.Errorf("append variant %s: %w", v.LongName(), err)
	}
	return nil
}

// ListVariants returns all variants with their protein's primary accession
// and any scores already recorded.
func (s *SQLite) ListVariants(ctx context.Context) ([]Variant, error) {
	return s.listWhere(ctx, "")
}

// ListUnscored returns variants without a score for the given model.
func (s *SQLite) ListUnscored(ctx context.Context, model string) ([]Variant, error) {
	where := `
		WHERE NOT EXISTS (
			SELECT 1 FROM scores sc
			WHERE sc.protein = v.protein AND sc.variant = v.name AND sc.model = ?
		)`
	return s.listWhere(ctx, where, model)
}

func (s *SQLite) listWhere(ctx context.Context, where string, args ...interface{}) ([]Variant, error) {
	query := `
		SELECT v.protein, p.uid, v.name, v.chromosome, v.dna_start, v.dna_end,
		       v.ref_na, v.alt_na, v.patient, v.family
		FROM variants v
		JOIN proteins p ON p.name = v.protein` + where + `
		ORDER BY v.protein, v.name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()

	var variants []Variant
	for rows.Next() {
		var v Variant
		if err := rows.Scan(
			&v.Protein, &v.UID, &v.Name, &v.Chromosome, &v.DNAStart, &v.DNAEnd,
			&v.RefNA, &v.AltNA, &v.Patient, &v.Family,
		); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		variants = append(variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}

	if err := s.fillScores(ctx, variants); err != nil {
		return nil, err
	}
	return variants, nil
}

func (s *SQLite) fillScores(ctx context.Context, variants []Variant) error {
	if len(variants) == 0 {
		return nil
	}
	byKey := make(map[string]*Variant, len(variants))
	for i := range variants {
		byKey[variants[i].Protein+"\x00"+variants[i].Name] = &variants[i]
	}

	rows, err := s.db.QueryContext(ctx, `SELECT protein, variant, model, score FROM scores`)
	if err != nil {
		return fmt.Errorf("list scores: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var protein, variant, model string
		var score float64
		if err := rows.Scan(&protein, &variant, &model, &score); err != nil {
			return fmt.Errorf("scan score: %w", err)
		}
		if v, ok := byKey[protein+"\x00"+variant]; ok {
			if v.Scores == nil {
				v.Scores = map[string]float64{}
			}
			v.Scores[model] = score
		}
	}
	return rows.Err()
}

// SetScore records a model score for one variant. Re-applying the same
// score is a no-op; applying a new one overwrites (recalc path).
func (s *SQLite) SetScore(ctx context.Context, protein, variant, model string, score float64) error {
	const query = `
		INSERT INTO scores (protein, variant, model, score)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (protein, variant, model) DO UPDATE SET score = excluded.score
	`
	if _, err := s.db.ExecContext(ctx, query, protein, variant, model, score); err != nil {
		return fmt.Errorf("set %s score on %s %s: %w", model, protein, variant, err)
	}
	return nil
}

// Drop removes every record. Used by the delete-DB maintenance command.
func (s *SQLite) Drop(ctx context.Context) error {
	for _, table := range []string{"scores", "variants", "proteins"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
