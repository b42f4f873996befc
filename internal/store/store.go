// Package store persists protein and variant records behind a small
// interface so the filesystem layout of the database is swappable.
package store

import (
	"context"

	"github.com/dina-lab3D/FamAnalysis/config"
)

// Protein is a record for one gene/protein, keyed by its reference name.
type Protein struct {
	// gene reference name, i.e. TP53
	Name string

	// primary UniProt accession
	UID string

	// reviewed alias accessions, searched first during the alias pass
	Reviewed []string

	// non-reviewed alias accessions
	Unreviewed []string
}

// Variant is one missense mutation on a protein.
type Variant struct {
	// owning protein's reference name
	Protein string

	// primary UniProt accession of the owning protein (filled on reads)
	UID string

	// normalized descriptor, i.e. D17Y
	Name string

	// genomic coordinate metadata, kept as supplied
	Chromosome string
	DNAStart   int64
	DNAEnd     int64
	RefNA      string
	AltNA      string

	// optional cohort metadata
	Patient string
	Family  string

	// model name -> score for models that resolved this variant
	Scores map[string]float64
}

// LongName is the variant's fully qualified name, i.e. TP53 D17Y.
func (v *Variant) LongName() string {
	return v.Protein + " " + v.Name
}

// Score returns the variant's score under the model, or config.NoScore
// when the model has not resolved it.
func (v *Variant) Score(model string) float64 {
	if s, ok := v.Scores[model]; ok {
		return s
	}
	return config.NoScore
}

// Store is the persisted protein/variant record store. Upserts and score
// sets are idempotent so failed runs can be safely repeated.
type Store interface {
	// UpsertProtein creates or refreshes a protein record by name.
	UpsertProtein(ctx context.Context, p *Protein) error

	// GetProtein fetches one protein or returns an error if absent.
	GetProtein(ctx context.Context, name string) (*Protein, error)

	// AppendVariant adds a variant to its protein, merging metadata on
	// repeat ingestion of the same (protein, name) pair.
	AppendVariant(ctx context.Context, v *Variant) error

	// ListVariants returns all variants in the database.
	ListVariants(ctx context.Context) ([]Variant, error)

	// ListUnscored returns variants without a score for the given model.
	ListUnscored(ctx context.Context, model string) ([]Variant, error)

	// SetScore records a model score for one variant.
	SetScore(ctx context.Context, protein, variant, model string, score float64) error

	// Drop removes every record. Used by the delete-DB maintenance command.
	Drop(ctx context.Context) error

	Close() error
}
