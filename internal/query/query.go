// Package query answers the lookups the map viewer makes against a
// generated trade database.
package query

import (
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/uncharted-waters/tradedb/internal/export"
	"github.com/uncharted-waters/tradedb/internal/model"
)

// Load reads a generated document. Paths ending in .zst are decompressed
// first. The document is checked against the schema before decoding.
func Load(path string) (*model.TradeDatabase, error) {
	var (
		data []byte
		err  error
	)
	if strings.HasSuffix(path, export.ArchiveExt) {
		data, err = export.ReadArchive(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, eris.Wrapf(model.ErrMissingSource, "query: %s: %v", path, err)
	}
	if err := export.Validate(data); err != nil {
		return nil, eris.Wrapf(err, "query: %s", path)
	}

	var db model.TradeDatabase
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, eris.Wrapf(err, "query: decode %s", path)
	}
	return &db, nil
}

// CityPrice is one city where an item trades, with the price of its region.
type CityPrice struct {
	City  model.City `json:"city"`
	Price int        `json:"price"`
}

// PriceRanking lists the cities whose region has a positive price for item,
// highest price first. Ties are broken by city name.
func PriceRanking(db *model.TradeDatabase, item model.Item) []CityPrice {
	out := []CityPrice{}
	for _, c := range db.Cities {
		p, ok := item.Price(c.Culture)
		if !ok || p <= 0 {
			continue
		}
		out = append(out, CityPrice{City: c, Price: p})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Price != out[j].Price {
			return out[i].Price > out[j].Price
		}
		return out[i].City.Name < out[j].City.Name
	})
	return out
}

// FindItem looks an item up by name, optionally narrowed to one category.
func FindItem(db *model.TradeDatabase, name, category string) (model.Item, bool) {
	name = strings.TrimSpace(name)
	for _, it := range db.Items {
		if it.Name != name {
			continue
		}
		if category == "" || it.Category == category {
			return it, true
		}
	}
	return model.Item{}, false
}

// ItemsByCategory returns the items of one category in table order.
func ItemsByCategory(db *model.TradeDatabase, category string) []model.Item {
	out := []model.Item{}
	for _, it := range db.Items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

// CitySpecialtyItems returns the priced items a city lists as specialties.
// Specialties without a matching item are skipped.
func CitySpecialtyItems(db *model.TradeDatabase, city string) ([]model.Item, error) {
	c, ok := db.City(city)
	if !ok {
		return nil, eris.Errorf("query: unknown city %q", city)
	}
	out := []model.Item{}
	for _, sp := range c.Specialties {
		if it, ok := FindItem(db, sp, ""); ok {
			out = append(out, it)
		}
	}
	return out, nil
}

// CitiesInRegion returns the cities whose culture is the given region code.
func CitiesInRegion(db *model.TradeDatabase, code string) []model.City {
	out := []model.City{}
	for _, c := range db.Cities {
		if c.Culture == code {
			out = append(out, c)
		}
	}
	return out
}
