package fam

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Report aggregates the outcome of one ingestion run.
type Report struct {
	Rows     int
	Groups   int
	Failures []Failure
}

// FailedIndexes returns the original batch positions of all failed rows,
// sorted, for re-running just the failed subset.
func (r *Report) FailedIndexes() []int {
	idxs := make([]int, len(r.Failures))
	for i, f := range r.Failures {
		idxs[i] = f.Index
	}
	sort.Ints(idxs)
	return idxs
}

// RunPool executes build over all row groups with at most workers running
// concurrently. The result is best effort: a group's failures (even a
// panic) are recorded and the remaining groups still run.
func RunPool(ctx context.Context, groups []RowGroup, workers int, build func(context.Context, RowGroup) []Failure) *Report {
	if workers < 1 {
		workers = 1
	}

	report := &Report{Groups: len(groups)}
	for _, g := range groups {
		report.Rows += len(g.Rows)
	}

	var mu sync.Mutex
	record := func(failures []Failure) {
		if len(failures) == 0 {
			return
		}
		mu.Lock()
		report.Failures = append(report.Failures, failures...)
		mu.Unlock()
	}

	var eg errgroup.Group
	eg.SetLimit(workers)

	for _, g := range groups {
		g := g
		eg.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					failures := make([]Failure, len(g.Rows))
					for i, row := range g.Rows {
						failures[i] = Failure{
							Index:   row.Index,
							Protein: g.Protein,
							Err:     fmt.Errorf("worker panic: %v", r),
						}
					}
					record(failures)
				}
			}()
			record(build(ctx, g))
			return nil
		})
	}
	eg.Wait() // workers never return errors; failures travel via record

	return report
}
