package fam

import (
	"context"

	"github.com/dina-lab3D/FamAnalysis/internal/store"
)

// Pending is one unresolved variant together with the accessions used to
// look it up in a chunk's index.
type Pending struct {
	Variant store.Variant
	Keys    []string
}

// Task is the working set of unresolved variants for one scan pass. A
// variant leaves the task the moment it resolves, which is what makes
// re-running a chunk a no-op.
type Task struct {
	Model   string
	pending []Pending
}

// NewTask builds a pass working set. keys derives the lookup accessions
// for one variant (its primary accession for the direct pass, its aliases
// for the alias pass).
func NewTask(model string, variants []store.Variant, keys func(store.Variant) []string) *Task {
	t := &Task{Model: model}
	for _, v := range variants {
		ks := keys(v)
		if len(ks) == 0 {
			continue // nothing to look it up by; stays unresolved
		}
		t.pending = append(t.pending, Pending{Variant: v, Keys: ks})
	}
	return t
}

// Remaining is how many variants are still unresolved.
func (t *Task) Remaining() int {
	return len(t.pending)
}

// Done reports whether every variant in the task resolved.
func (t *Task) Done() bool {
	return len(t.pending) == 0
}

// Pending returns the variants still unresolved, for building the next
// pass's task.
func (t *Task) Pending() []store.Variant {
	out := make([]store.Variant, len(t.pending))
	for i, p := range t.pending {
		out[i] = p.Variant
	}
	return out
}

// Match resolves every pending variant whose accession and descriptor both
// appear in the chunk, persisting the score. Returns how many variants this
// chunk newly resolved.
func (t *Task) Match(ctx context.Context, st store.Store, c *Chunk) (int, error) {
	resolved := 0
	remaining := t.pending[:0]

	for _, p := range t.pending {
		score, ok := t.find(p, c)
		if !ok {
			remaining = append(remaining, p)
			continue
		}
		printIf(VerboseThreadProgress, "resolved %s score for %s (was %v)", t.Model, p.Variant.LongName(), p.Variant.Score(t.Model))
		if err := st.SetScore(ctx, p.Variant.Protein, p.Variant.Name, t.Model, score); err != nil {
			return resolved, err
		}
		resolved++
	}

	t.pending = remaining
	return resolved, nil
}

func (t *Task) find(p Pending, c *Chunk) (float64, bool) {
	for _, key := range p.Keys {
		if !c.Contains(key) {
			continue
		}
		if score, ok := c.Find(key, p.Variant.Name); ok {
			return score, true
		}
	}
	return 0, false
}
