package fam

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dina-lab3D/FamAnalysis/internal/store"
)

// resolveTimeout bounds one protein metadata lookup; a slow lookup fails
// only the row that triggered it.
const resolveTimeout = 10 * time.Second

// Resolver fetches the external metadata needed to create a protein
// record: its primary accession and alias accessions.
type Resolver interface {
	Resolve(ctx context.Context, name string) (*store.Protein, error)
}

// Builder materializes one row group into persisted protein and variant
// records. Row failures are collected, never propagated: a bad row must not
// abort the rows after it.
type Builder struct {
	Store    store.Store
	Resolver Resolver

	// Timeout for one metadata resolution; resolveTimeout when zero
	Timeout time.Duration
}

// Build processes the group's rows in order. The protein record is created
// from the first row that succeeds; later rows only append variants.
func (b *Builder) Build(ctx context.Context, g RowGroup) []Failure {
	var failures []Failure
	created := false

	for _, row := range g.Rows {
		if !created {
			if err := b.createProtein(ctx, g.Protein); err != nil {
				printIf(VerboseThreadWarnings, "skipped %s: %v", g.Protein, err)
				failures = append(failures, Failure{Index: row.Index, Protein: g.Protein, Err: err})
				continue
			}
			created = true
			printIf(VerboseThreadProgress, "created protein record %s", g.Protein)
		}

		if err := b.appendVariant(ctx, g.Protein, row); err != nil {
			printIf(VerboseThreadWarnings, "skipped %s %s: %v", g.Protein, row.Variant, err)
			failures = append(failures, Failure{Index: row.Index, Protein: g.Protein, Err: err})
		}
	}
	return failures
}

func (b *Builder) createProtein(ctx context.Context, name string) error {
	timeout := b.Timeout
	if timeout == 0 {
		timeout = resolveTimeout
	}
	rctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	p, err := b.Resolver.Resolve(rctx, name)
	if err != nil {
		return fmt.Errorf("resolve protein metadata: %w", err)
	}
	if err := b.Store.UpsertProtein(ctx, p); err != nil {
		return err
	}
	return nil
}

func (b *Builder) appendVariant(ctx context.Context, protein string, row Row) error {
	if row.Variant == "" {
		return fmt.Errorf("missing variant description")
	}
	desc, err := ParseDescriptor(row.Variant)
	if err != nil {
		return err
	}

	v := &store.Variant{
		Protein:    protein,
		Name:       desc.String(),
		Chromosome: row.Chromosome,
		RefNA:      row.RefNA,
		AltNA:      row.AltNA,
		Patient:    row.Patient,
		Family:     row.Family,
	}
	// coordinates are optional metadata; a bad number fails the row since
	// half-parsed coordinates are worse than none
	if row.DNAStart != "" {
		if v.DNAStart, err = strconv.ParseInt(row.DNAStart, 10, 64); err != nil {
			return fmt.Errorf("bad dna start %q", row.DNAStart)
		}
	}
	if row.DNAEnd != "" {
		if v.DNAEnd, err = strconv.ParseInt(row.DNAEnd, 10, 64); err != nil {
			return fmt.Errorf("bad dna end %q", row.DNAEnd)
		}
	}

	printIf(VerboseThreadProgress, "adding variant %s to %s", v.Name, protein)
	return b.Store.AppendVariant(ctx, v)
}
