package geo

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"

	"github.com/uncharted-waters/tradedb/internal/model"
)

const earthRadiusKM = 6371.0

// Neighbor is a city near some origin city.
type Neighbor struct {
	City       model.City `json:"city"`
	DistanceKM float64    `json:"distance_km"`
	Band       string     `json:"band"`
}

// DistanceKM is the haversine distance between two positions.
func DistanceKM(a, b model.Coordinates) float64 {
	lat1, lat2 := radians(float64(a.Lat)), radians(float64(b.Lat))
	dLat := lat2 - lat1
	dLng := radians(float64(b.Lng - a.Lng))

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKM * math.Asin(math.Min(1, math.Sqrt(h)))
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// Nearest returns the n closest located cities to origin, nearest first,
// ties broken by name. origin itself is excluded.
func Nearest(cities []model.City, origin model.City, n int) ([]Neighbor, error) {
	if n <= 0 {
		n = 3
	}
	if !Located(origin.Coordinates) {
		return nil, eris.Errorf("geo: %s has no position", origin.Name)
	}

	out := []Neighbor{}
	for _, c := range cities {
		if c.Name == origin.Name || !Located(c.Coordinates) {
			continue
		}
		d := DistanceKM(origin.Coordinates, c.Coordinates)
		out = append(out, Neighbor{City: c, DistanceKM: math.Round(d*10) / 10, Band: Classify(d)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DistanceKM != out[j].DistanceKM {
			return out[i].DistanceKM < out[j].DistanceKM
		}
		return out[i].City.Name < out[j].City.Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}
