package model

// Item is one trade good from the price table. Prices is keyed by region code;
// a missing key means no known price in that region, which is distinct from a
// recorded price of zero.
type Item struct {
	Name     string         `json:"name"`
	Category string         `json:"category"`
	Prices   map[string]int `json:"prices"`
}

// Price returns the item's price in the given region and whether one is known.
func (i Item) Price(code string) (int, bool) {
	p, ok := i.Prices[code]
	return p, ok
}
