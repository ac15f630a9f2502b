package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/uncharted-waters/tradedb/internal/config"
	"github.com/uncharted-waters/tradedb/internal/pipeline"
)

var (
	checkSources sourceFlags
	checkStrict  bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the pipeline without writing and print the anomaly report",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd.Context(), cmd.OutOrStdout(), cfg, checkSources, checkStrict)
	},
}

func runCheck(ctx context.Context, w io.Writer, c *config.Config, src sourceFlags, strict bool) error {
	p, err := initPipeline(c, src)
	if err != nil {
		return err
	}
	res, err := p.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%d cities, %d items in %d categories\n\n",
		len(res.Database.Cities), len(res.Database.Items), len(res.Database.Categories))
	fmt.Fprint(w, pipeline.FormatReport(res.Report))

	if strict && !res.Report.Empty() {
		return eris.Wrapf(errStrict, "%d anomalies", res.Report.Len())
	}
	return nil
}

func init() {
	f := checkCmd.Flags()
	f.StringVar(&checkSources.Cities, "cities", "", "city table (CSV, TSV or XLSX)")
	f.StringVar(&checkSources.Prices, "prices", "", "price table (CSV, TSV or XLSX)")
	f.StringVar(&checkSources.Tables, "tables", "", "lookup tables file (YAML or TOML; default embedded)")
	f.BoolVar(&checkStrict, "strict", false, "exit non-zero when anomalies are found")
	rootCmd.AddCommand(checkCmd)
}
