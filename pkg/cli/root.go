// Package cli provides the agristat command-line interface, which runs the
// same services as the HTTP API against a local dataset cache.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"agristat/config"
	"agristat/database"
	analysis "agristat/pkg/analysis/service"
	analysisImp "agristat/pkg/analysis/serviceImp"
	"agristat/pkg/record"
	"agristat/pkg/record/repository"
	recordImp "agristat/pkg/record/repositoryImp"
)

var Version = "0.1.0"

type appKey struct{}

// app is built once per invocation in PersistentPreRunE.
type app struct {
	db       *gorm.DB
	records  repository.RecordRepository
	analysis analysis.AnalysisService
	output   string
}

func fromContext(cmd *cobra.Command) *app {
	a, _ := cmd.Context().Value(appKey{}).(*app)
	return a
}

// NewRootCmd creates the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	cfg := config.FromEnv()
	var (
		dbPath string
		output string
		noSeed bool
	)

	root := &cobra.Command{
		Use:   "agristat",
		Short: "Crop statistics analytics",
		Long: `agristat projects production trends, ranks regional efficiency,
flags anomalous seasons and produces agronomic recommendations from CONAB
crop statistics kept in a local SQLite cache.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			if output != "table" && output != "json" {
				return fmt.Errorf("unknown output format %q (table|json)", output)
			}
			db, err := database.Open(dbPath)
			if err != nil {
				return err
			}
			records := recordImp.New(db)
			if !noSeed {
				if _, err := record.Seed(records); err != nil {
					return fmt.Errorf("seed: %w", err)
				}
			}
			a := &app{
				db:      db,
				records: records,
				analysis: analysisImp.New(records, analysisImp.Config{
					MaxHorizon:    cfg.MaxHorizon,
					ReferenceYear: cfg.ReferenceYear,
				}),
				output: output,
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, appKey{}, a))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			a := fromContext(cmd)
			if a == nil {
				return nil
			}
			sqlDB, err := a.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&dbPath, "db", cfg.DBPath, "Path to the SQLite dataset cache")
	root.PersistentFlags().StringVarP(&output, "output", "o", "table", "Output format (table|json)")
	root.PersistentFlags().BoolVar(&noSeed, "no-seed", !cfg.SeedOnBoot, "Do not load the built-in historical dataset into an empty cache")

	root.AddCommand(
		newSyncCommand(),
		newMatrixCommand(),
		newPredictCommand(),
		newAnomaliesCommand(),
		newRecommendCommand(),
		newTrendsCommand(),
		newReportCommand(),
	)
	return root
}
