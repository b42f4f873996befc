package fam

import (
	"encoding/csv"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dina-lab3D/FamAnalysis/config"
	"github.com/spf13/afero"
)

// aaSyn maps single letter amino acid codes to their three letter synonyms.
var aaSyn = map[string]string{
	"A": "ALA", "C": "CYS", "D": "ASP", "E": "GLU", "F": "PHE", "G": "GLY", "H": "HIS", "I": "ILE",
	"K": "LYS", "L": "LEU", "M": "MET", "N": "ASN", "P": "PRO", "Q": "GLN", "R": "ARG", "S": "SER",
	"T": "THR", "V": "VAL", "W": "TRP", "Y": "TYR",
}

// aaSynRev maps three letter amino acid codes back to single letters.
var aaSynRev = func() map[string]string {
	m := make(map[string]string, len(aaSyn))
	for k, v := range aaSyn {
		m[v] = k
	}
	return m
}()

var (
	shortDesc = regexp.MustCompile(`^([A-Z])(\d+)([A-Z])$`)
	longDesc  = regexp.MustCompile(`^([A-Za-z]{3})(\d+)([A-Za-z]{3})$`)
)

// Descriptor is a missense variant in protein coordinates: the original
// residue, its position, and the substituted residue.
type Descriptor struct {
	WT  string
	Pos int
	Mut string
}

// String renders the descriptor in the single letter form used by the
// substitutions dataset, i.e. D17Y.
func (d Descriptor) String() string {
	return fmt.Sprintf("%s%d%s", d.WT, d.Pos, d.Mut)
}

// ParseDescriptor normalizes a variant description to single letter form.
// Accepts D17Y, p.D17Y and three letter synonyms like Asp17Tyr.
func ParseDescriptor(s string) (Descriptor, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimPrefix(raw, "p.")

	if m := shortDesc.FindStringSubmatch(raw); m != nil {
		if _, okWT := aaSyn[m[1]]; okWT {
			if _, okMut := aaSyn[m[3]]; okMut {
				pos, _ := strconv.Atoi(m[2])
				return Descriptor{WT: m[1], Pos: pos, Mut: m[3]}, nil
			}
		}
	}
	if m := longDesc.FindStringSubmatch(strings.ToUpper(raw)); m != nil {
		wt, okWT := aaSynRev[m[1]]
		mut, okMut := aaSynRev[m[3]]
		if okWT && okMut {
			pos, _ := strconv.Atoi(m[2])
			return Descriptor{WT: wt, Pos: pos, Mut: mut}, nil
		}
	}
	return Descriptor{}, fmt.Errorf("unrecognized variant description %q", s)
}

// Row is one ingestion record with its original batch position. Fields are
// kept raw; descriptor and coordinate parsing happen in the record builder
// so a malformed value fails only its own row.
type Row struct {
	Index      int
	Protein    string
	Variant    string
	Patient    string
	Family     string
	Chromosome string
	DNAStart   string
	DNAEnd     string
	RefNA      string
	AltNA      string
}

// schema resolves the configured logical -> physical column mapping once
// per batch, failing fast when a required column is missing entirely.
type schema struct {
	protein, variant                       int
	patient, family                        int
	chromosome, dnaStart, dnaEnd, ref, alt int
}

func resolveSchema(header []string, cols config.ColumnConfig) (*schema, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}

	find := func(name string) int {
		if i, ok := idx[name]; ok {
			return i
		}
		return -1
	}

	s := &schema{
		protein:    find(cols.Protein),
		variant:    find(cols.Variant),
		patient:    find(cols.Patient),
		family:     find(cols.Family),
		chromosome: find(cols.Chromosome),
		dnaStart:   find(cols.Start),
		dnaEnd:     find(cols.End),
		ref:        find(cols.Ref),
		alt:        find(cols.Alt),
	}

	// only the protein and variant columns are required at batch level;
	// coordinate columns may be absent for descriptor-only datasets
	if s.protein < 0 {
		return nil, fmt.Errorf("missing required column %q in csv header", cols.Protein)
	}
	if s.variant < 0 {
		return nil, fmt.Errorf("missing required column %q in csv header", cols.Variant)
	}
	return s, nil
}

func (s *schema) field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func (s *schema) row(index int, record []string) Row {
	return Row{
		Index:      index,
		Protein:    s.field(record, s.protein),
		Variant:    s.field(record, s.variant),
		Patient:    s.field(record, s.patient),
		Family:     s.field(record, s.family),
		Chromosome: s.field(record, s.chromosome),
		DNAStart:   s.field(record, s.dnaStart),
		DNAEnd:     s.field(record, s.dnaEnd),
		RefNA:      s.field(record, s.ref),
		AltNA:      s.field(record, s.alt),
	}
}

// ReadBatch reads the ingestion CSV at path and maps it to rows using the
// configured column names. A missing required column is fatal; everything
// row-level is deferred to partitioning and record building.
func ReadBatch(fs afero.Fs, path string, cols config.ColumnConfig) ([]Row, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows fail per-row, not per-batch

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read data csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("data csv %s is empty", path)
	}

	s, err := resolveSchema(records[0], cols)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(records)-1)
	for i, record := range records[1:] {
		rows = append(rows, s.row(i, record))
	}
	return rows, nil
}
