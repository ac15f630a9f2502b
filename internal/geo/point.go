package geo

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/uncharted-waters/tradedb/internal/model"
)

// SRID is the spatial reference used for every exported geometry.
const SRID = 4326

// Point converts coordinates to an XY point (x = longitude, y = latitude).
func Point(c model.Coordinates) *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{float64(c.Lng), float64(c.Lat)}).SetSRID(SRID)
}

// EncodeEWKB returns the little-endian EWKB encoding of the city position.
// Cities without coordinates encode to nil.
func EncodeEWKB(c model.Coordinates) ([]byte, error) {
	if !Located(c) {
		return nil, nil
	}
	data, err := ewkb.Marshal(Point(c), ewkb.NDR)
	if err != nil {
		return nil, eris.Wrap(err, "geo: encode EWKB")
	}
	return data, nil
}

// CityFeatures builds a GeoJSON feature collection of every city that has
// parsed coordinates. Cities whose coordinate string did not parse are left
// out rather than pinned to the origin.
func CityFeatures(cities []model.City) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(cities))}
	for _, c := range cities {
		if !Located(c.Coordinates) {
			continue
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       c.Name,
			Geometry: Point(c.Coordinates),
			Properties: map[string]any{
				"name":         c.Name,
				"culture":      c.Culture,
				"culture_name": c.CultureName,
				"type":         c.Type,
				"development":  c.Development,
				"military":     c.Military,
				"specialties":  c.Specialties,
				"display":      c.Coordinates.Display,
			},
		})
	}
	return fc
}
