package fam

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dina-lab3D/FamAnalysis/config"
	"github.com/dina-lab3D/FamAnalysis/internal/store"
	"github.com/spf13/afero"
)

// BuildDB runs one ingestion: read the batch, partition it by protein and
// build all records through the worker pool. Used by both init-DB and
// update-DB since every store write is an idempotent upsert.
func BuildDB(ctx context.Context, fs afero.Fs, cfg *config.Config, st store.Store, res Resolver, dataPath string) (*Report, error) {
	rows, err := ReadBatch(fs, dataPath, cfg.Columns)
	if err != nil {
		return nil, err
	}

	groups, invalid := Partition(rows)

	printIf(VerboseProgress, "running on %d CPUs", cfg.Workers)
	printIf(VerboseProgress, "Building protein database...")

	builder := &Builder{Store: st, Resolver: res}
	report := RunPool(ctx, groups, cfg.Workers, builder.Build)
	report.Rows += len(invalid)
	report.Failures = append(report.Failures, invalid...)

	if len(report.Failures) == 0 {
		printIf(VerboseProgress, "done, successfully created all records")
	} else {
		printIf(VerboseProgress, "done, skipped records in indexes:\n%s", joinIndexes(report.FailedIndexes()))
	}
	return report, nil
}

func joinIndexes(idxs []int) string {
	strs := make([]string, len(idxs))
	for i, idx := range idxs {
		strs[i] = strconv.Itoa(idx)
	}
	return strings.Join(strs, ", ")
}

// DeleteDB drops every persisted record.
func DeleteDB(ctx context.Context, st store.Store) error {
	if err := st.Drop(ctx); err != nil {
		return fmt.Errorf("delete database: %w", err)
	}
	printIf(VerboseProgress, "deleted all protein and mutation records")
	return nil
}
