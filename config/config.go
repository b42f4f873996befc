// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"
	"runtime"

	"github.com/spf13/viper"
)

// Fraction of available RAM a scan pass may hold at once.
const (
	DefaultRAMFraction = 0.65
	LowMemRAMFraction  = 0.25
)

// NoScore marks a variant that has not been scored by a model yet.
const NoScore = -1.0

// Defaults for the AlphaMissense aa-substitutions snapshot. The row count
// and per-row byte cost come from the published file and its fixed schema.
const (
	AFMRows     = 216175351
	AFMRowBytes = 32.0
	AFMURL      = "https://storage.googleapis.com/dm_alphamissense/AlphaMissense_aa_substitutions.tsv.gz"
)

// ColumnConfig maps the logical fields of an ingestion CSV to
// the physical column names used in the file
type ColumnConfig struct {
	// column holding the protein reference name i.e. TP53
	Protein string `mapstructure:"protein-col"`

	// column holding the missense variant description i.e. D17Y | p.D17Y
	Variant string `mapstructure:"variant-col"`

	// column holding the patient i.d
	Patient string `mapstructure:"patient-col"`

	// column holding the family i.d
	Family string `mapstructure:"family-col"`

	// column holding the chromosome in which the gene is found
	Chromosome string `mapstructure:"chromosome-col"`

	// column holding the variant dna start index
	Start string `mapstructure:"dna-start-col"`

	// column holding the variant dna end index
	End string `mapstructure:"dna-end-col"`

	// column holding the wt (reference) nucleic acid
	Ref string `mapstructure:"wt-col"`

	// column holding the altered nucleic acid
	Alt string `mapstructure:"alt-col"`
}

// DatasetConfig describes the external pathogenicity dataset
type DatasetConfig struct {
	// path to the gzip compressed substitutions file
	Path string `mapstructure:"path"`

	// total row count, used for pass-count estimation only
	Rows int64 `mapstructure:"rows"`

	// estimated in-memory cost of one projected row in bytes
	RowBytes float64 `mapstructure:"row-bytes"`

	// public download URL for the fetch command
	URL string `mapstructure:"url"`
}

// Config is the root-level settings struct and is a mix
// of settings available in settings.yaml and those
// available from the command line
type Config struct {
	// path to the protein/mutation database file
	DB string `mapstructure:"db"`

	// number of workers building records concurrently; 0 means all CPUs
	Workers int `mapstructure:"workers"`

	// verbosity level 0-3
	Verbosity int `mapstructure:"verbose"`

	// fraction of available RAM a dataset chunk may occupy
	RAMFraction float64 `mapstructure:"ram-fraction"`

	// use LowMemRAMFraction regardless of ram-fraction
	LowMem bool `mapstructure:"low-mem"`

	// re-score variants that already carry a score
	Recalc bool `mapstructure:"recalc"`

	// run a second scan pass over alias accessions
	UseAlias bool `mapstructure:"use-alias"`

	// ingestion CSV column names
	Columns ColumnConfig `mapstructure:"columns"`

	// external dataset settings
	Dataset DatasetConfig `mapstructure:"dataset"`
}

// New returns a new Config struct populated by
// Viper settings (either from the local settings.yaml)
// and/or command line arguments
func New() *Config {
	setDefaults()

	c := &Config{}
	if err := viper.Unmarshal(c); err != nil {
		log.Fatalf("unable to decode settings: %v", err)
	}

	if c.Workers < 1 {
		c.Workers = runtime.NumCPU()
	}
	if c.LowMem {
		c.RAMFraction = LowMemRAMFraction
	}

	return c
}

// setDefaults registers fallback values for every setting so a bare
// invocation without settings.yaml behaves like the documented defaults
func setDefaults() {
	viper.SetDefault("db", "DB/fam.db")
	viper.SetDefault("workers", 0)
	viper.SetDefault("verbose", 1)
	viper.SetDefault("ram-fraction", DefaultRAMFraction)
	viper.SetDefault("low-mem", false)
	viper.SetDefault("recalc", false)
	viper.SetDefault("use-alias", true)

	viper.SetDefault("columns.protein-col", "Protein")
	viper.SetDefault("columns.variant-col", "Variant")
	viper.SetDefault("columns.patient-col", "Patient")
	viper.SetDefault("columns.family-col", "Family")
	viper.SetDefault("columns.chromosome-col", "Chr")
	viper.SetDefault("columns.dna-start-col", "Start")
	viper.SetDefault("columns.dna-end-col", "End")
	viper.SetDefault("columns.wt-col", "Ref")
	viper.SetDefault("columns.alt-col", "Alt")

	viper.SetDefault("dataset.path", "DB/AFM/AlphaMissense_aa_substitutions.tsv.gz")
	viper.SetDefault("dataset.rows", AFMRows)
	viper.SetDefault("dataset.row-bytes", AFMRowBytes)
	viper.SetDefault("dataset.url", AFMURL)
}
