package pipeline

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/uncharted-waters/tradedb/internal/model"
)

// reportHints tells the reader which table to edit for each anomaly kind.
var reportHints = map[model.AnomalyKind]string{
	model.AnomalyUnresolvedCulture: "add the city to overrides or inferred in the lookup tables",
	model.AnomalyUnmappedRegion:    "add the culture as a region alias, or correct the override",
	model.AnomalyUncategorizedItem: "add a category row above the item in the price table",
	model.AnomalyDuplicateCity:     "remove the repeated city row",
	model.AnomalyDuplicateItem:     "remove the repeated item row",
	model.AnomalyUnknownPriceKey:   "price columns must map to region codes",
	model.AnomalyMalformedRow:      "fix the cell in the source table",
}

// FormatReport renders the anomaly report grouped by kind.
func FormatReport(r *model.Report) string {
	var b strings.Builder

	if r.Empty() {
		b.WriteString("# Data quality report\nNo anomalies.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "# Data quality report\n%d anomalies\n", r.Len())
	for _, kind := range model.AnomalyKinds() {
		list := r.ByKind(kind)
		if len(list) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s (%d)\n", kind, len(list))
		if hint := reportHints[kind]; hint != "" {
			fmt.Fprintf(&b, "Fix: %s\n", hint)
		}
		for _, a := range list {
			b.WriteString("- ")
			b.WriteString(a.Subject)
			if a.Row > 0 {
				fmt.Fprintf(&b, " (row %d)", a.Row)
			}
			if a.Detail != "" {
				b.WriteString(": ")
				b.WriteString(a.Detail)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// LogReport logs the report once per anomaly kind so the full list can be
// fixed in one pass.
func LogReport(r *model.Report) {
	if r.Empty() {
		zap.L().Info("pipeline: no data anomalies")
		return
	}
	for _, kind := range model.AnomalyKinds() {
		subjects := r.Subjects(kind)
		if len(subjects) == 0 {
			continue
		}
		zap.L().Warn("pipeline: data anomalies",
			zap.String("kind", string(kind)),
			zap.Int("count", len(r.ByKind(kind))),
			zap.Strings("subjects", subjects),
			zap.String("fix", reportHints[kind]),
		)
	}
}
