package fam

import (
	"testing"

	"github.com/dina-lab3D/FamAnalysis/config"
	"github.com/spf13/afero"
)

func TestParseDescriptor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"short form", "D17Y", "D17Y", false},
		{"hgvs prefix", "p.D17Y", "D17Y", false},
		{"three letter", "Asp17Tyr", "D17Y", false},
		{"three letter upper", "ASP17TYR", "D17Y", false},
		{"padded", " R175H ", "R175H", false},
		{"nonsense", "banana", "", true},
		{"empty", "", "", true},
		{"bad residue", "B17Y", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDescriptor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDescriptor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got.String() != tt.want {
				t.Errorf("ParseDescriptor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func defaultColumns() config.ColumnConfig {
	return config.ColumnConfig{
		Protein: "Protein", Variant: "Variant", Patient: "Patient", Family: "Family",
		Chromosome: "Chr", Start: "Start", End: "End", Ref: "Ref", Alt: "Alt",
	}
}

func TestReadBatch(t *testing.T) {
	fs := afero.NewMemMapFs()
	csv := "Protein,Variant,Patient,Family,Chr,Start,End,Ref,Alt\n" +
		"TP53,D17Y,HR2_1,HR2,17,7579472,7579472,G,A\n" +
		"BRCA1,p.C61G,HR3_2,HR3,17,41258504,41258504,A,C\n"
	if err := afero.WriteFile(fs, "data.csv", []byte(csv), 0644); err != nil {
		t.Fatal(err)
	}

	rows, err := ReadBatch(fs, "data.csv", defaultColumns())
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Protein != "TP53" || rows[0].Chromosome != "17" || rows[0].DNAStart != "7579472" {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].Index != 1 || rows[1].Variant != "p.C61G" {
		t.Errorf("row 1 = %+v", rows[1])
	}
}

func TestReadBatch_renamedColumns(t *testing.T) {
	fs := afero.NewMemMapFs()
	csv := "gene,mutation\nTP53,D17Y\n"
	if err := afero.WriteFile(fs, "data.csv", []byte(csv), 0644); err != nil {
		t.Fatal(err)
	}

	cols := defaultColumns()
	cols.Protein = "gene"
	cols.Variant = "mutation"

	rows, err := ReadBatch(fs, "data.csv", cols)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].Protein != "TP53" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestReadBatch_missingRequiredColumn(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "data.csv", []byte("Gene,Variant\nTP53,D17Y\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadBatch(fs, "data.csv", defaultColumns()); err == nil {
		t.Error("expected an error for a csv without the protein column")
	}
}
