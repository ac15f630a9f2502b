package model

// Sources records which input files a document was generated from.
type Sources struct {
	Cities string `json:"cities"`
	Prices string `json:"prices"`
}

// Metadata describes a generated document.
type Metadata struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Version     string  `json:"version"`
	Created     string  `json:"created"`
	Sources     Sources `json:"sources"`
}

// TradeDatabase is the root document consumed by the map viewer.
type TradeDatabase struct {
	Metadata   Metadata               `json:"metadata"`
	Regions    map[string]RegionEntry `json:"regions"`
	Categories []string               `json:"categories"`
	Cities     []City                 `json:"cities"`
	Items      []Item                 `json:"items"`
}

// City returns the city with the given name.
func (db *TradeDatabase) City(name string) (City, bool) {
	for _, c := range db.Cities {
		if c.Name == name {
			return c, true
		}
	}
	return City{}, false
}

// Item returns the first item with the given name across all categories.
func (db *TradeDatabase) Item(name string) (Item, bool) {
	for _, it := range db.Items {
		if it.Name == name {
			return it, true
		}
	}
	return Item{}, false
}
