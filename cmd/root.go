// Package cmd is for command line interactions with the FamAnalysis pipeline
package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "fam",
	Short: `Protein-level analysis of missense variants in familial data.
Build a local protein/mutation database from cohort CSVs and enrich it
with pathogenicity scores from external datasets`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

// set flags
func init() {
	RootCmd.PersistentFlags().String("db", "DB/fam.db", "path to the protein/mutation database file")
	RootCmd.PersistentFlags().IntP("verbose", "v", 1, "verbosity level 0-3")

	must(viper.BindPFlag("db", RootCmd.PersistentFlags().Lookup("db")))
	must(viper.BindPFlag("verbose", RootCmd.PersistentFlags().Lookup("verbose")))

	cobra.OnInitialize(initSettings)
}

// initSettings reads an optional settings.yaml next to the binary or in
// the working directory; flags and defaults cover everything it omits.
func initSettings() {
	viper.SetConfigName("settings")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("failed to read settings.yaml: %v", err)
		}
	}
}

func must(err error) {
	if err != nil {
		log.Fatalf("%v", err)
	}
}
