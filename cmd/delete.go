package cmd

import (
	"github.com/dina-lab3D/FamAnalysis/internal/fam"
	"github.com/spf13/cobra"
)

// deleteCmd is for dropping the local protein/mutation database
var deleteCmd = &cobra.Command{
	Use:                        "delete",
	Short:                      "Delete every protein and mutation record",
	Run:                        fam.DeleteCmd,
	SuggestionsMinimumDistance: 2,
	Aliases:                    []string{"delete-db", "rm"},
	Long: `Delete all protein and mutation records from the local database.
Scores are removed with their variants. The external dataset snapshot
is left in place.`,
}

// set flags
func init() {
	RootCmd.AddCommand(deleteCmd)
}
