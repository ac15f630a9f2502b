package pipeline

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/uncharted-waters/tradedb/internal/fetcher"
	"github.com/uncharted-waters/tradedb/internal/model"
	"github.com/uncharted-waters/tradedb/internal/region"
)

// Fixed positions in the price table.
const (
	priceCategoryCol = 0
	priceItemCol     = 1
	priceFirstCol    = 2
)

// PriceColumn binds a price-table column to the region code it holds.
type PriceColumn struct {
	Index  int
	Header string
	Code   string
}

// PriceColumns maps every price-table header after the item column to a
// region code. Headers the region table does not know (note columns and the
// like) are skipped, as is a second column for a code already bound.
func PriceColumns(header []string, m *region.Mapper) []PriceColumn {
	var cols []PriceColumn
	bound := make(map[string]bool)
	for i := priceFirstCol; i < len(header); i++ {
		h := header[i]
		code := m.Canonical(h)
		if code == "" {
			if h != "" {
				zap.L().Debug("pipeline: ignoring price column", zap.String("header", h))
			}
			continue
		}
		if bound[code] {
			zap.L().Debug("pipeline: duplicate price column", zap.String("header", h), zap.String("code", code))
			continue
		}
		bound[code] = true
		cols = append(cols, PriceColumn{Index: i, Header: h, Code: code})
	}
	return cols
}

// Pivot is the price table reshaped into one item per item row.
type Pivot struct {
	Categories []string
	Items      []model.Item
}

// PivotPrices folds the price table rows left to right. The only state
// carried between rows is the running category and what has been seen so far.
func PivotPrices(t *fetcher.Table, m *region.Mapper, report *model.Report) (*Pivot, error) {
	if len(t.Header) < priceFirstCol {
		return nil, eris.Errorf("pipeline: price table %s needs a category and an item column, has %d columns", t.Source, len(t.Header))
	}

	cols := PriceColumns(t.Header, m)
	if len(cols) == 0 {
		zap.L().Warn("pipeline: price table has no region columns", zap.String("source", t.Source))
	}

	var state PivotState
	for _, row := range t.Rows {
		state = state.Step(row, cols, report)
	}
	return &Pivot{Categories: state.Categories(), Items: state.Items()}, nil
}

// PivotState is the fold accumulator. The zero value is the empty state.
// Step never modifies its receiver, so any earlier state can be stepped
// again.
type PivotState struct {
	Category   string
	categories []string
	items      []model.Item
	seenCat    map[string]bool
	seenItem   map[string]bool
}

// Categories returns the categories seen so far in first-seen order.
func (s PivotState) Categories() []string {
	return append([]string{}, s.categories...)
}

// Items returns the items emitted so far.
func (s PivotState) Items() []model.Item {
	return append([]model.Item{}, s.items...)
}

// StampCategory applies the category rule for a single row: a populated
// category cell starts a new category, otherwise the running one carries
// over. header reports whether the row declared a category.
func StampCategory(running string, row fetcher.Row) (category string, header bool) {
	if c := row.Get(priceCategoryCol); c != "" {
		return c, true
	}
	return running, false
}

// Step consumes one row and returns the next state. A row may both declare a
// category and carry the first item of that category; rows with neither are
// ignored.
func (s PivotState) Step(row fetcher.Row, cols []PriceColumn, report *model.Report) PivotState {
	var header bool
	s.Category, header = StampCategory(s.Category, row)
	if header && !s.seenCat[s.Category] {
		s.seenCat = withKey(s.seenCat, s.Category)
		s.categories = append(slices.Clip(s.categories), s.Category)
	}

	name := row.Get(priceItemCol)
	if name == "" {
		return s
	}

	if s.Category == "" {
		report.Add(model.AnomalyUncategorizedItem, name, row.Line, "no category row precedes this item")
	}

	key := s.Category + "\x00" + name
	if s.seenItem[key] {
		report.Add(model.AnomalyDuplicateItem, name, row.Line, "repeated in category "+strconv.Quote(s.Category))
		return s
	}
	s.seenItem = withKey(s.seenItem, key)

	s.items = append(slices.Clip(s.items), model.Item{
		Name:     name,
		Category: s.Category,
		Prices:   rowPrices(row, name, cols, report),
	})
	return s
}

// withKey returns a copy of set with k added.
func withKey(set map[string]bool, k string) map[string]bool {
	out := make(map[string]bool, len(set)+1)
	maps.Copy(out, set)
	out[k] = true
	return out
}

// rowPrices collects the parseable price cells of an item row. Blank and
// non-numeric cells produce no entry; they never become zero.
func rowPrices(row fetcher.Row, name string, cols []PriceColumn, report *model.Report) map[string]int {
	prices := make(map[string]int, len(cols))
	for _, col := range cols {
		cell := row.Get(col.Index)
		if cell == "" {
			continue
		}
		v, ok := ParsePrice(cell)
		if !ok {
			continue
		}
		if v < 0 {
			report.Add(model.AnomalyMalformedRow, name, row.Line, col.Header+": negative price "+cell)
			continue
		}
		prices[col.Code] = v
	}
	return prices
}

// ParsePrice parses a price cell, tolerating thousands separators.
func ParsePrice(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(stripSeparators(s))
	if err != nil {
		return 0, false
	}
	return v, true
}
