package model

// Coordinates is a parsed compass-notation position. Display always carries
// the source string verbatim so the viewer can fall back to it.
type Coordinates struct {
	Lat     int    `json:"lat"`
	Lng     int    `json:"lng"`
	Display string `json:"display"`
}

// City is one row of the city table after normalization. Culture holds the
// region code; CultureName is its display label, or the raw resolved label
// when no region matched.
type City struct {
	Name        string      `json:"name"`
	Culture     string      `json:"culture"`
	CultureName string      `json:"culture_name"`
	Coordinates Coordinates `json:"coordinates"`
	Development int         `json:"development"`
	Military    int         `json:"military"`
	Specialties []string    `json:"specialties"`
	Type        string      `json:"type"`
	HasTavern   bool        `json:"has_tavern"`
	HasShipyard bool        `json:"has_shipyard"`

	// Line is the source row, kept for anomaly reports only.
	Line int `json:"-"`
}

// HasSpecialty reports whether the city lists the named trade good.
func (c City) HasSpecialty(name string) bool {
	for _, s := range c.Specialties {
		if s == name {
			return true
		}
	}
	return false
}
