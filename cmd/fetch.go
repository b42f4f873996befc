package cmd

import (
	"github.com/dina-lab3D/FamAnalysis/config"
	"github.com/dina-lab3D/FamAnalysis/internal/fam"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// fetchCmd is for downloading the external dataset snapshot
var fetchCmd = &cobra.Command{
	Use:                        "fetch",
	Short:                      "Download the pathogenicity dataset snapshot",
	Run:                        fam.FetchCmd,
	SuggestionsMinimumDistance: 2,
	Long: `
Download the published AlphaMissense aa-substitutions snapshot to the
configured dataset path. The file stays gzip-compressed at rest and is
decompressed on the fly while scoring.`,
}

// set flags
func init() {
	fetchCmd.Flags().String("url", config.AFMURL, "dataset download URL")

	must(viper.BindPFlag("dataset.url", fetchCmd.Flags().Lookup("url")))

	RootCmd.AddCommand(fetchCmd)
}
