package export

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"

	"github.com/uncharted-waters/tradedb/internal/geo"
	"github.com/uncharted-waters/tradedb/internal/model"
)

// GeoJSON writes the cities as a point feature collection.
func GeoJSON(path string, db *model.TradeDatabase) Artifact {
	return &fileArtifact{
		name: "geojson",
		path: path,
		render: func(w io.Writer) error {
			enc := json.NewEncoder(w)
			enc.SetEscapeHTML(false)
			return eris.Wrap(enc.Encode(geo.CityFeatures(db.Cities)), "export: encode geojson")
		},
	}
}
