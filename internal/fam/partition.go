package fam

import (
	"fmt"
	"sort"
)

// RowGroup is an ordered run of rows sharing one protein key: the unit of
// concurrent work. Grouping by protein prevents write races when several
// variants of the same protein are created in one run.
type RowGroup struct {
	Protein string
	Rows    []Row
}

// Failure records one row that could not be processed, by its original
// position in the batch.
type Failure struct {
	Index   int
	Protein string
	Err     error
}

func (f Failure) String() string {
	return fmt.Sprintf("row %d (%s): %v", f.Index, f.Protein, f.Err)
}

// Partition splits a batch into per-protein row groups. Every row lands in
// exactly one group and keeps its original relative order; rows without a
// protein key are returned as validation failures.
//
// Groups holding multiple rows are scheduled first: they are the slowest
// (one protein record, several variants) and front-loading them keeps the
// worker pool busy at the tail of a run.
func Partition(rows []Row) ([]RowGroup, []Failure) {
	var failures []Failure
	groups := map[string]*RowGroup{}
	var order []string

	for _, row := range rows {
		if row.Protein == "" {
			failures = append(failures, Failure{
				Index: row.Index,
				Err:   fmt.Errorf("missing protein reference name"),
			})
			continue
		}
		g, ok := groups[row.Protein]
		if !ok {
			g = &RowGroup{Protein: row.Protein}
			groups[row.Protein] = g
			order = append(order, row.Protein)
		}
		g.Rows = append(g.Rows, row)
	}

	out := make([]RowGroup, 0, len(order))
	for _, name := range order {
		out = append(out, *groups[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Rows) > 1 && len(out[j].Rows) == 1
	})

	return out, failures
}
