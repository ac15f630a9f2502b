package model

// Region is a hand-authored culture zone. Code is the identifier shared by
// City.Culture and the keys of Item.Prices.
type Region struct {
	Code    string   `json:"code" yaml:"code" toml:"code" validate:"required,max=4"`
	Name    string   `json:"name" yaml:"name" toml:"name" validate:"required"`
	Display string   `json:"display" yaml:"display" toml:"display" validate:"required"`
	Aliases []string `json:"aliases,omitempty" yaml:"aliases" toml:"aliases" validate:"dive,required"`
}

// RegionEntry is the serialized form of a Region in the output document,
// keyed by code.
type RegionEntry struct {
	Name    string `json:"name"`
	Display string `json:"display"`
}

// Entry returns the output form of r.
func (r Region) Entry() RegionEntry {
	return RegionEntry{Name: r.Name, Display: r.Display}
}
