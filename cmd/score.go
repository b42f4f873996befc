package cmd

import (
	"github.com/dina-lab3D/FamAnalysis/internal/fam"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// scoreCmd is for enriching stored variants with pathogenicity scores
var scoreCmd = &cobra.Command{
	Use:                        "score [model]",
	Short:                      "Calculate model scores for all missense variants in the database",
	Run:                        fam.ScoreCmd,
	SuggestionsMinimumDistance: 2,
	Aliases:                    []string{"score-afm"},
	Long: `
Scan the external pathogenicity dataset in memory-bounded chunks and record
the model's score on every matching variant. A first pass matches primary
UniProt accessions; a second pass re-scans the dataset for still-unresolved
variants using alias accessions. Both passes are idempotent, so an
interrupted run can simply be repeated.`,
}

// set flags
func init() {
	scoreCmd.Flags().Bool("recalc", false, "re-calculate scores for variants that already have one")
	scoreCmd.Flags().Bool("use-alias", true, "run the alias fallback pass for unresolved variants")
	scoreCmd.Flags().Bool("low-mem", false, "cap dataset chunks at 25% of available RAM instead of 65%")
	scoreCmd.Flags().Float64("ram-fraction", 0.65, "fraction of available RAM a dataset chunk may occupy")
	scoreCmd.Flags().String("dataset-path", "DB/AFM/AlphaMissense_aa_substitutions.tsv.gz",
		"path to the dataset snapshot")

	must(viper.BindPFlag("recalc", scoreCmd.Flags().Lookup("recalc")))
	must(viper.BindPFlag("use-alias", scoreCmd.Flags().Lookup("use-alias")))
	must(viper.BindPFlag("low-mem", scoreCmd.Flags().Lookup("low-mem")))
	must(viper.BindPFlag("ram-fraction", scoreCmd.Flags().Lookup("ram-fraction")))
	must(viper.BindPFlag("dataset.path", scoreCmd.Flags().Lookup("dataset-path")))

	RootCmd.AddCommand(scoreCmd)
}
