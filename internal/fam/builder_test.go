package fam

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dina-lab3D/FamAnalysis/internal/store"
)

// fakeResolver serves protein metadata from a map, erring on anything
// absent and hanging on anything in slow to exercise the row timeout.
type fakeResolver struct {
	proteins map[string]*store.Protein
	slow     map[string]bool
}

func (f *fakeResolver) Resolve(ctx context.Context, name string) (*store.Protein, error) {
	if f.slow[name] {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	p, ok := f.proteins[name]
	if !ok {
		return nil, fmt.Errorf("unknown protein %s", name)
	}
	return p, nil
}

func resolverFor(names ...string) *fakeResolver {
	r := &fakeResolver{proteins: map[string]*store.Protein{}, slow: map[string]bool{}}
	for _, name := range names {
		r.proteins[name] = &store.Protein{Name: name, UID: "UID-" + name}
	}
	return r
}

func newBuilderStore(t *testing.T) *store.SQLite {
	t.Helper()

	s, err := store.Open("")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestBuilder_badRowContinues(t *testing.T) {
	st := newBuilderStore(t)
	b := &Builder{Store: st, Resolver: resolverFor("TP53")}

	g := RowGroup{Protein: "TP53", Rows: []Row{
		{Index: 0, Protein: "TP53", Variant: "D17Y"},
		{Index: 1, Protein: "TP53", Variant: "not-a-variant"},
		{Index: 2, Protein: "TP53", Variant: "R175H"},
	}}

	failures := b.Build(context.Background(), g)

	if len(failures) != 1 || failures[0].Index != 1 {
		t.Fatalf("failures = %v, want only row 1", failures)
	}

	variants, err := st.ListVariants(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(variants) != 2 {
		t.Errorf("got %d variants, want 2", len(variants))
	}
}

func TestBuilder_resolveTimeout(t *testing.T) {
	st := newBuilderStore(t)
	r := resolverFor("TP53")
	r.slow["TP53"] = true
	b := &Builder{Store: st, Resolver: r, Timeout: 10 * time.Millisecond}

	g := RowGroup{Protein: "TP53", Rows: []Row{
		{Index: 0, Protein: "TP53", Variant: "D17Y"},
	}}

	failures := b.Build(context.Background(), g)

	if len(failures) != 1 {
		t.Fatalf("failures = %v, want the timed-out row", failures)
	}
	variants, err := st.ListVariants(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(variants) != 0 {
		t.Errorf("no variants should exist after a resolve timeout, got %d", len(variants))
	}
}

func TestBuilder_laterRowRetriesCreation(t *testing.T) {
	st := newBuilderStore(t)
	b := &Builder{Store: st, Resolver: resolverFor("TP53")}

	// first row has a bad descriptor so it fails before protein creation
	// can be confirmed useful; the second row still creates everything
	g := RowGroup{Protein: "TP53", Rows: []Row{
		{Index: 0, Protein: "TP53", Variant: "broken"},
		{Index: 1, Protein: "TP53", Variant: "R175H"},
	}}

	failures := b.Build(context.Background(), g)

	if len(failures) != 1 || failures[0].Index != 0 {
		t.Fatalf("failures = %v, want only row 0", failures)
	}
	if _, err := st.GetProtein(context.Background(), "TP53"); err != nil {
		t.Errorf("protein record missing: %v", err)
	}
}
