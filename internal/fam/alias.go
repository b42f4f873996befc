package fam

import (
	"context"

	"github.com/dina-lab3D/FamAnalysis/internal/store"
)

// directKeys looks a variant up by its protein's primary accession only.
func directKeys(v store.Variant) []string {
	if v.UID == "" {
		return nil
	}
	return []string{v.UID}
}

// NewAliasTask builds the working set for the fallback pass: only variants
// still unresolved, keyed by their protein's alias accessions. Reviewed
// aliases come first so a reviewed entry wins when both appear in a chunk.
func NewAliasTask(ctx context.Context, st store.Store, model string, unresolved []store.Variant) (*Task, error) {
	aliases := map[string][]string{}
	for _, v := range unresolved {
		if _, ok := aliases[v.Protein]; ok {
			continue
		}
		p, err := st.GetProtein(ctx, v.Protein)
		if err != nil {
			return nil, err
		}
		keys := make([]string, 0, len(p.Reviewed)+len(p.Unreviewed))
		keys = append(keys, p.Reviewed...)
		keys = append(keys, p.Unreviewed...)
		aliases[v.Protein] = keys
	}

	return NewTask(model, unresolved, func(v store.Variant) []string {
		return aliases[v.Protein]
	}), nil
}
