package main

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/uncharted-waters/tradedb/internal/config"
	"github.com/uncharted-waters/tradedb/internal/export"
	"github.com/uncharted-waters/tradedb/internal/pipeline"
)

var (
	genSources sourceFlags
	genTargets export.Targets
	genStrict  bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the trade database from the city and price tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runGenerate(cmd.Context(), cfg, genSources, genTargets, genStrict)
		return err
	},
}

// errStrict is returned after a successful write when --strict is set and
// the run found data anomalies.
var errStrict = eris.New("anomalies found in strict mode")

// runGenerate runs the pipeline and commits every configured artifact. Flag
// targets override the configured output paths.
func runGenerate(ctx context.Context, c *config.Config, src sourceFlags, t export.Targets, strict bool) (*pipeline.Result, error) {
	applyTargets(c, t)

	p, err := initPipeline(c, src)
	if err != nil {
		return nil, err
	}

	res, err := p.Run(ctx)
	if err != nil {
		return nil, err
	}
	pipeline.LogReport(res.Report)

	targets := export.Targets{
		JSON:    c.Output.Path,
		GeoJSON: c.Output.GeoJSON,
		Archive: c.Output.Archive,
		SQLite:  c.Output.SQLite,
		Report:  c.Output.Report,
	}
	if err := export.Commit(ctx, export.Plan(targets, res.Database, res.Report)); err != nil {
		return nil, err
	}

	zap.L().Info("generate complete",
		zap.String("output", c.Output.Path),
		zap.String("id", res.Database.Metadata.ID),
		zap.Int("anomalies", res.Report.Len()),
	)

	if strict && !res.Report.Empty() {
		return res, eris.Wrapf(errStrict, "%d anomalies", res.Report.Len())
	}
	return res, nil
}

func applyTargets(c *config.Config, t export.Targets) {
	if t.JSON != "" {
		c.Output.Path = t.JSON
	}
	if t.GeoJSON != "" {
		c.Output.GeoJSON = t.GeoJSON
	}
	if t.Archive != "" {
		c.Output.Archive = t.Archive
	}
	if t.SQLite != "" {
		c.Output.SQLite = t.SQLite
	}
	if t.Report != "" {
		c.Output.Report = t.Report
	}
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&genSources.Cities, "cities", "", "city table (CSV, TSV or XLSX)")
	f.StringVar(&genSources.Prices, "prices", "", "price table (CSV, TSV or XLSX)")
	f.StringVar(&genSources.Tables, "tables", "", "lookup tables file (YAML or TOML; default embedded)")
	f.StringVar(&genSources.Created, "created", "", "fixed creation time (RFC3339) for reproducible output")
	f.StringVar(&genTargets.JSON, "out", "", "output JSON path")
	f.StringVar(&genTargets.GeoJSON, "geojson", "", "also write cities as GeoJSON")
	f.StringVar(&genTargets.Archive, "archive", "", "also write a zstd-compressed copy")
	f.StringVar(&genTargets.SQLite, "sqlite", "", "also write a SQLite snapshot")
	f.StringVar(&genTargets.Report, "report", "", "also write the anomaly report as JSON")
	f.BoolVar(&genStrict, "strict", false, "exit non-zero when anomalies are found")
	rootCmd.AddCommand(generateCmd)
}
