package fam

import (
	"context"
	"strings"

	"github.com/dina-lab3D/FamAnalysis/config"
	"github.com/dina-lab3D/FamAnalysis/internal/store"
	"github.com/dina-lab3D/FamAnalysis/internal/uniprot"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// BuildCmd is the entry for init-DB/update-DB: ingest the cohort CSV into
// the local database.
func BuildCmd(cmd *cobra.Command, args []string) {
	cfg := config.New()
	SetVerbosity(cfg.Verbosity)

	dataPath, _ := cmd.Flags().GetString("data-path")
	if len(args) > 0 {
		dataPath = args[0]
	}

	st := openStore(cfg)
	defer st.Close()

	report, err := BuildDB(context.Background(), afero.NewOsFs(), cfg, st, uniprot.New(), dataPath)
	if err != nil {
		stderr.Fatalln(err)
	}
	printIf(VerboseProgress, "%d rows in %d proteins, %d skipped", report.Rows, report.Groups, len(report.Failures))
}

// ScoreCmd is the entry for score-[model]: enrich stored variants with
// pathogenicity scores from the external dataset.
func ScoreCmd(cmd *cobra.Command, args []string) {
	cfg := config.New()
	SetVerbosity(cfg.Verbosity)

	model := "AFM"
	if len(args) > 0 {
		model = strings.ToUpper(args[0])
	}

	st := openStore(cfg)
	defer st.Close()

	summary, err := ScoreModel(context.Background(), afero.NewOsFs(), cfg, st, model)
	if err != nil {
		stderr.Fatalln(err)
	}
	printIf(VerboseProgress, "%d of %d variants resolved (%d direct, %d alias), %d unresolved",
		summary.Resolved(), summary.Total, summary.Direct, summary.Alias, summary.Unresolved)
}

// DeleteCmd is the entry for delete-DB: drop every stored record.
func DeleteCmd(cmd *cobra.Command, args []string) {
	cfg := config.New()
	SetVerbosity(cfg.Verbosity)

	st := openStore(cfg)
	defer st.Close()

	if err := DeleteDB(context.Background(), st); err != nil {
		stderr.Fatalln(err)
	}
}

// FetchCmd downloads the external dataset snapshot.
func FetchCmd(cmd *cobra.Command, args []string) {
	cfg := config.New()
	SetVerbosity(cfg.Verbosity)

	if err := FetchDataset(context.Background(), afero.NewOsFs(), cfg); err != nil {
		stderr.Fatalln(err)
	}
}

func openStore(cfg *config.Config) store.Store {
	st, err := store.Open(cfg.DB)
	if err != nil {
		stderr.Fatalln(err)
	}
	return st
}
