package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/uncharted-waters/tradedb/internal/geo"
	"github.com/uncharted-waters/tradedb/internal/model"
	"github.com/uncharted-waters/tradedb/internal/query"
)

var (
	queryDB       string
	queryCategory string
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query a generated trade database",
}

var queryPricesCmd = &cobra.Command{
	Use:   "prices <item>",
	Short: "Rank the cities that trade an item by price",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := query.Load(queryDBPath())
		if err != nil {
			return err
		}
		item, ok := query.FindItem(db, args[0], queryCategory)
		if !ok {
			return eris.Errorf("unknown item %q", args[0])
		}
		printPrices(cmd.OutOrStdout(), db, item)
		return nil
	},
}

var queryCityCmd = &cobra.Command{
	Use:   "city <name>",
	Short: "Show a city and the items it produces",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := query.Load(queryDBPath())
		if err != nil {
			return err
		}
		return printCity(cmd.OutOrStdout(), db, args[0])
	},
}

func queryDBPath() string {
	if queryDB != "" {
		return queryDB
	}
	return cfg.Output.Path
}

func printPrices(w io.Writer, db *model.TradeDatabase, item model.Item) {
	ranking := query.PriceRanking(db, item)
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s (%s)", item.Name, item.Category)))
	if len(ranking) == 0 {
		fmt.Fprintln(w, dimStyle.Render("no city has a price for this item"))
		return
	}
	rows := make([][]string, 0, len(ranking))
	for i, cp := range ranking {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			cp.City.Name,
			cp.City.CultureName,
			strconv.Itoa(cp.Price),
		})
	}
	fmt.Fprint(w, renderTable([]string{"#", "city", "region", "price"}, rows))
}

func printCity(w io.Writer, db *model.TradeDatabase, name string) error {
	c, ok := db.City(name)
	if !ok {
		return eris.Errorf("unknown city %q", name)
	}
	items, err := query.CitySpecialtyItems(db, name)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, titleStyle.Render(c.Name))
	field := func(label, value string) {
		fmt.Fprintf(w, "%s %s\n", headerStyle.Width(10).Render(label), valueStyle.Render(value))
	}
	field("region", c.CultureName)
	field("position", c.Coordinates.Display)
	field("develop", strconv.Itoa(c.Development))
	field("military", strconv.Itoa(c.Military))
	field("type", c.Type)
	field("tavern", yesNo(c.HasTavern))
	field("shipyard", yesNo(c.HasShipyard))
	field("specialty", strings.Join(c.Specialties, ", "))

	if len(items) > 0 {
		fmt.Fprintln(w)
		rows := make([][]string, 0, len(items))
		for _, it := range items {
			p, ok := it.Price(c.Culture)
			price := "-"
			if ok {
				price = strconv.Itoa(p)
			}
			rows = append(rows, []string{it.Name, it.Category, price})
		}
		fmt.Fprint(w, renderTable([]string{"item", "category", "local price"}, rows))
	}

	if neighbors, err := geo.Nearest(db.Cities, c, 3); err == nil && len(neighbors) > 0 {
		fmt.Fprintln(w)
		rows := make([][]string, 0, len(neighbors))
		for _, n := range neighbors {
			rows = append(rows, []string{n.City.Name, n.City.CultureName, strconv.FormatFloat(n.DistanceKM, 'f', 0, 64) + "km", n.Band})
		}
		fmt.Fprint(w, renderTable([]string{"nearby", "region", "distance", "band"}, rows))
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func init() {
	queryCmd.PersistentFlags().StringVar(&queryDB, "db", "", "trade database JSON or .zst (default output.path)")
	queryPricesCmd.Flags().StringVar(&queryCategory, "category", "", "narrow the item lookup to one category")
	queryCmd.AddCommand(queryPricesCmd, queryCityCmd)
	rootCmd.AddCommand(queryCmd)
}
