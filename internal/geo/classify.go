package geo

// Distance bands between two ports.
const (
	BandAdjacent = "adjacent"
	BandRegional = "regional"
	BandDistant  = "distant"
)

// Band thresholds in kilometers.
const (
	adjacentThresholdKM = 600.0
	regionalThresholdKM = 2000.0
)

// Classify returns the distance band for a great-circle distance:
//   - adjacent: <= 600km, typically a short coastal hop
//   - regional: <= 2000km
//   - distant: anything further
func Classify(distanceKM float64) string {
	switch {
	case distanceKM <= adjacentThresholdKM:
		return BandAdjacent
	case distanceKM <= regionalThresholdKM:
		return BandRegional
	default:
		return BandDistant
	}
}
