package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	syncRepoImp "agristat/pkg/datasync/repositoryImp"
	syncSvcImp "agristat/pkg/datasync/serviceImp"
	"agristat/pkg/ingest"
	"agristat/pkg/report"
)

func newSyncCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Load crop statistics into the local cache",
		Long: `Fetch, parse and validate a dataset, then upsert it into the cache.
Without --file the built-in sample snapshot is used. Nothing is stored when
any record fails validation.`,
		Example: `  agristat sync
  agristat sync --file conab_cafe.xlsx`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := fromContext(cmd)
			var src ingest.Source = ingest.SampleSource{}
			if file != "" {
				src = ingest.FileSource{Path: file}
			}
			res, err := syncSvcImp.New(src, a.records, syncRepoImp.New(a.db)).SyncAll(cmd.Context())
			if err != nil {
				return err
			}
			if a.output == "json" {
				return renderJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "run %s: %s\n", res.RunID, res.Message)
			if !res.Success {
				return errors.New("sync failed")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "CSV, XLSX or HTML file to load")
	return cmd
}

func newMatrixCommand() *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:     "matrix",
		Short:   "Rank regions by productivity against the national mean",
		Example: "  agristat matrix --year 2024",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := fromContext(cmd)
			m, err := a.analysis.EfficiencyMatrix(year)
			if err != nil {
				return err
			}
			if a.output == "json" {
				return renderJSON(cmd.OutOrStdout(), m)
			}
			renderMatrix(cmd.OutOrStdout(), m)
			return nil
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "Reference year (default: latest in cache)")
	return cmd
}

func newPredictCommand() *cobra.Command {
	var (
		state, crop string
		horizon     int
	)
	cmd := &cobra.Command{
		Use:     "predict",
		Short:   "Project production with biennial-cycle correction",
		Example: "  agristat predict --state MG --horizon 3",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := fromContext(cmd)
			p, err := a.analysis.Predict(state, crop, horizon)
			if err != nil {
				return err
			}
			if a.output == "json" {
				return renderJSON(cmd.OutOrStdout(), p)
			}
			renderPredictions(cmd.OutOrStdout(), p.Predictions)
			return nil
		},
	}
	cmd.Flags().StringVarP(&state, "state", "s", "", "State code (e.g. MG)")
	cmd.Flags().StringVar(&crop, "crop", "", "Restrict to one crop type")
	cmd.Flags().IntVar(&horizon, "horizon", 3, "Seasons to project")
	_ = cmd.MarkFlagRequired("state")
	return cmd
}

func newAnomaliesCommand() *cobra.Command {
	var state string
	cmd := &cobra.Command{
		Use:   "anomalies",
		Short: "List seasons whose production falls outside Tukey's fences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := fromContext(cmd)
			recs, err := a.analysis.Anomalies(state)
			if err != nil {
				return err
			}
			if a.output == "json" {
				return renderJSON(cmd.OutOrStdout(), recs)
			}
			renderRecords(cmd.OutOrStdout(), recs)
			return nil
		},
	}
	cmd.Flags().StringVarP(&state, "state", "s", "", "State code")
	_ = cmd.MarkFlagRequired("state")
	return cmd
}

func newRecommendCommand() *cobra.Command {
	var state, id string
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Agronomic recommendations for a region or a single record",
		Example: `  agristat recommend --state RO
  agristat recommend --id mg-2026`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := fromContext(cmd)
			var (
				out []string
				err error
			)
			switch {
			case id != "":
				out, err = a.analysis.RecordRecommendations(id)
			case state != "":
				out, err = a.analysis.RegionRecommendations(state)
			default:
				return errors.New("one of --state or --id is required")
			}
			if err != nil {
				return err
			}
			if a.output == "json" {
				return renderJSON(cmd.OutOrStdout(), out)
			}
			renderList(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&state, "state", "s", "", "State code")
	cmd.Flags().StringVar(&id, "id", "", "Record ID")
	cmd.MarkFlagsMutuallyExclusive("state", "id")
	return cmd
}

func newTrendsCommand() *cobra.Command {
	var state string
	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Year-over-year volatility and direction of production",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := fromContext(cmd)
			tr, err := a.analysis.Trends(state)
			if err != nil {
				return err
			}
			if a.output == "json" {
				return renderJSON(cmd.OutOrStdout(), tr)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "volatility %.2f%%, %s, cyclic: %t\n", tr.VolatilityPercent, tr.Direction, tr.IsCyclic)
			return nil
		},
	}
	cmd.Flags().StringVarP(&state, "state", "s", "", "State code")
	_ = cmd.MarkFlagRequired("state")
	return cmd
}

func newReportCommand() *cobra.Command {
	var (
		out     string
		year    int
		horizon int
	)
	cmd := &cobra.Command{
		Use:     "report",
		Short:   "Write an XLSX workbook with efficiency, projections and anomalies",
		Example: "  agristat report --out outlook.xlsx",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := fromContext(cmd)
			states, err := a.records.Regions()
			if err != nil {
				return err
			}
			b, err := report.Collect(a.analysis, states, year, horizon)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := b.WriteWorkbook(f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d regions, %d projections, %d anomalies)\n", out, len(b.Matrix), len(b.Projections), len(b.Anomalies))
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "agristat_report.xlsx", "Output file")
	cmd.Flags().IntVar(&year, "year", 0, "Reference year for the efficiency sheet")
	cmd.Flags().IntVar(&horizon, "horizon", 3, "Seasons to project per state")
	return cmd
}
