// Package geo parses compass-notation map coordinates and converts them to
// geometries for map artifacts.
package geo

import (
	"regexp"
	"strconv"

	"github.com/uncharted-waters/tradedb/internal/model"
)

// Compass tokens as written in the source spreadsheets.
const (
	North = "북"
	South = "남"
	East  = "동"
	West  = "서"
)

var compassRe = regexp.MustCompile(`(북|남)(\d+)\s*(동|서)(\d+)`)

// ParseCompass converts a string such as "남10 서20" into signed coordinates.
// South latitudes and west longitudes are negative. It never fails: empty
// input yields the zero value and input that does not match keeps its
// display text with zeroed numbers so the viewer can flag it.
func ParseCompass(s string) model.Coordinates {
	if s == "" {
		return model.Coordinates{}
	}
	out := model.Coordinates{Display: s}
	if lat, lng, ok := matchCompass(s); ok {
		out.Lat, out.Lng = lat, lng
	}
	return out
}

// Located reports whether the display string holds a compass position.
// "북0 동0" is located; an unmatched string is not, whatever its numbers.
func Located(c model.Coordinates) bool {
	_, _, ok := matchCompass(c.Display)
	return ok
}

// Unparsed reports whether a coordinate string was present but did not
// parse.
func Unparsed(c model.Coordinates) bool {
	return c.Display != "" && !Located(c)
}

func matchCompass(s string) (lat, lng int, ok bool) {
	m := compassRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	lat, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, 0, false
	}
	lng, err = strconv.Atoi(m[4])
	if err != nil {
		return 0, 0, false
	}
	if m[1] == South {
		lat = -lat
	}
	if m[3] == West {
		lng = -lng
	}
	return lat, lng, true
}

// FormatCompass renders coordinates back into compass notation.
func FormatCompass(lat, lng int) string {
	ns, ew := North, East
	if lat < 0 {
		ns, lat = South, -lat
	}
	if lng < 0 {
		ew, lng = West, -lng
	}
	return ns + strconv.Itoa(lat) + " " + ew + strconv.Itoa(lng)
}
