package fam

import (
	"context"
	"errors"
	"fmt"

	"github.com/dina-lab3D/FamAnalysis/config"
	"github.com/dina-lab3D/FamAnalysis/internal/store"
	"github.com/spf13/afero"
)

// Models the store can record scores for. The store accepts all of them
// so model loaders can be added without a schema change.
var Models = map[string]bool{"AFM": true, "EVE": true, "ESM": true}

// datasetModels are the models whose scores the configured substitutions
// snapshot actually carries. Scoring any other model must fail loudly:
// scanning the wrong dataset would persist misattributed scores.
var datasetModels = map[string]bool{"AFM": true}

// ScoreSummary is the final tally of one scoring run.
type ScoreSummary struct {
	Model      string
	Total      int
	Direct     int
	Alias      int
	Unresolved int
}

// Resolved is the number of variants scored across both passes.
func (s *ScoreSummary) Resolved() int {
	return s.Direct + s.Alias
}

// ScoreModel enriches every pending variant with the model's score from the
// external dataset: a direct pass over primary accessions, then (unless
// disabled) an alias pass over the variants the direct pass missed. Each
// pass is an independent full scan from row 0.
func ScoreModel(ctx context.Context, fs afero.Fs, cfg *config.Config, st store.Store, model string) (*ScoreSummary, error) {
	if !Models[model] {
		return nil, fmt.Errorf("unknown scoring model %q", model)
	}
	if !datasetModels[model] {
		return nil, fmt.Errorf("no dataset wired for model %s", model)
	}

	chunkRows, err := AdaptiveChunkRows(cfg.RAMFraction, cfg.Dataset.RowBytes)
	if err != nil {
		return nil, err
	}

	var variants []store.Variant
	if cfg.Recalc {
		variants, err = st.ListVariants(ctx)
	} else {
		variants, err = st.ListUnscored(ctx, model)
	}
	if err != nil {
		return nil, err
	}

	summary := &ScoreSummary{Model: model, Total: len(variants)}
	if len(variants) == 0 {
		printIf(VerboseProgress, "no variants need %s scores", model)
		return summary, nil
	}

	scanner := &Scanner{FS: fs, Path: cfg.Dataset.Path, ChunkRows: chunkRows}
	totalIter := PassCount(cfg.Dataset.Rows, chunkRows)

	printIf(VerboseProgress, "Calculating %s scores...", model)
	task := NewTask(model, variants, directKeys)
	if summary.Direct, err = runPass(ctx, scanner, st, task, totalIter); err != nil {
		return nil, err
	}

	if cfg.UseAlias && !task.Done() {
		printIf(VerboseProgress, "Expanding search for unresolved mutations...")
		aliasTask, err := NewAliasTask(ctx, st, model, task.Pending())
		if err != nil {
			return nil, err
		}
		if summary.Alias, err = runPass(ctx, scanner, st, aliasTask, totalIter); err != nil {
			return nil, err
		}
	}

	summary.Unresolved = summary.Total - summary.Resolved()
	printIf(VerboseProgress, "done, scored %d of %d mutations", summary.Resolved(), summary.Total)
	return summary, nil
}

// runPass scans the whole dataset once for the task, stopping early only
// when nothing is left to match.
func runPass(ctx context.Context, scanner *Scanner, st store.Store, task *Task, totalIter int) (int, error) {
	resolved := 0
	iter := 1

	err := scanner.Scan(ctx, func(c *Chunk) error {
		n, err := task.Match(ctx, st, c)
		if err != nil {
			return err
		}
		resolved += n
		printIf(VerboseProgress, "iter %d of %d: %d resolved, %d pending", iter, totalIter, resolved, task.Remaining())
		iter++

		if task.Done() {
			return ErrStopScan
		}
		return nil
	})
	if err != nil && !errors.Is(err, ErrStopScan) {
		return resolved, err
	}
	return resolved, nil
}
