package cmd

import (
	"github.com/dina-lab3D/FamAnalysis/internal/fam"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// buildCmd is for creating or updating the local database from a cohort csv
var buildCmd = &cobra.Command{
	Use:                        "build [data.csv]",
	Short:                      "Build or update the protein/mutation database from a csv file",
	Run:                        fam.BuildCmd,
	SuggestionsMinimumDistance: 2,
	Aliases:                    []string{"init-db", "update-db"},
	Long: `
Read a cohort csv of missense variants, create a record for every protein
referenced and append its variants. Rows for the same protein are always
handled by a single worker, in file order, so repeated runs and partial
failures are safe to retry.`,
}

// set flags
func init() {
	buildCmd.Flags().StringP("data-path", "d", "data.csv", "path to csv file containing the cohort data")
	buildCmd.Flags().IntP("workers", "w", 0, "number of CPUs to run on; 0 uses all available")
	buildCmd.Flags().String("protein-col", "Protein", "column holding the protein reference name i.e. TP53")
	buildCmd.Flags().String("variant-col", "Variant", "column holding the missense variant i.e. D17Y | p.D17Y")
	buildCmd.Flags().String("patient-col", "Patient", "column holding the patient i.d")
	buildCmd.Flags().String("family-col", "Family", "column holding the family i.d")
	buildCmd.Flags().String("chromosome-col", "Chr", "column holding the chromosome of the gene")
	buildCmd.Flags().String("dna-start-col", "Start", "column holding the variant dna start index")
	buildCmd.Flags().String("dna-end-col", "End", "column holding the variant dna end index")
	buildCmd.Flags().String("wt-col", "Ref", "column holding the wt (reference) nucleic acid")
	buildCmd.Flags().String("alt-col", "Alt", "column holding the altered nucleic acid")

	must(viper.BindPFlag("workers", buildCmd.Flags().Lookup("workers")))
	must(viper.BindPFlag("columns.protein-col", buildCmd.Flags().Lookup("protein-col")))
	must(viper.BindPFlag("columns.variant-col", buildCmd.Flags().Lookup("variant-col")))
	must(viper.BindPFlag("columns.patient-col", buildCmd.Flags().Lookup("patient-col")))
	must(viper.BindPFlag("columns.family-col", buildCmd.Flags().Lookup("family-col")))
	must(viper.BindPFlag("columns.chromosome-col", buildCmd.Flags().Lookup("chromosome-col")))
	must(viper.BindPFlag("columns.dna-start-col", buildCmd.Flags().Lookup("dna-start-col")))
	must(viper.BindPFlag("columns.dna-end-col", buildCmd.Flags().Lookup("dna-end-col")))
	must(viper.BindPFlag("columns.wt-col", buildCmd.Flags().Lookup("wt-col")))
	must(viper.BindPFlag("columns.alt-col", buildCmd.Flags().Lookup("alt-col")))

	RootCmd.AddCommand(buildCmd)
}
