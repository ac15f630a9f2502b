package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/uncharted-waters/tradedb/internal/registry"
)

var regionsTables string

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "Print the region table",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := regionsTables
		if path == "" {
			path = cfg.Tables.Path
		}
		reg, err := registry.Load(path)
		if err != nil {
			return err
		}
		printRegions(cmd.OutOrStdout(), reg)
		return nil
	},
}

func printRegions(w io.Writer, reg *registry.Registry) {
	rows := [][]string{}
	for _, r := range reg.Mapper.Regions() {
		rows = append(rows, []string{r.Code, r.Name, r.Display, strings.Join(r.Aliases, ", ")})
	}
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Regions (%s, version %s)", reg.Source, reg.Version)))
	fmt.Fprint(w, renderTable([]string{"code", "name", "display", "aliases"}, rows))
}

func init() {
	regionsCmd.Flags().StringVar(&regionsTables, "tables", "", "lookup tables file (default from config, else embedded)")
	rootCmd.AddCommand(regionsCmd)
}
