// Package region maps culture labels to the region codes used as the join key
// between cities and item prices.
package region

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/uncharted-waters/tradedb/internal/model"
)

// Mapper is an immutable lookup over a hand-authored region table.
type Mapper struct {
	regions []model.Region
	codes   map[string]int
	names   map[string]int
	aliases map[string]int
}

// New indexes regions. Codes must be unique, and a name or alias may not
// point at two different regions.
func New(regions []model.Region) (*Mapper, error) {
	m := &Mapper{
		regions: make([]model.Region, len(regions)),
		codes:   make(map[string]int, len(regions)),
		names:   make(map[string]int, len(regions)),
		aliases: make(map[string]int),
	}
	copy(m.regions, regions)

	for i, r := range m.regions {
		code := strings.TrimSpace(r.Code)
		if code == "" {
			return nil, eris.Errorf("region: entry %d has no code", i)
		}
		if _, dup := m.codes[code]; dup {
			return nil, eris.Errorf("region: duplicate code %q", code)
		}
		m.regions[i].Code = code
		m.codes[code] = i
	}

	claim := func(idx map[string]int, label string, i int) error {
		k := key(label)
		if k == "" {
			return nil
		}
		if j, ok := m.owner(k); ok && j != i {
			return eris.Errorf("region: label %q maps to both %q and %q", label, m.regions[j].Code, m.regions[i].Code)
		}
		idx[k] = i
		return nil
	}
	for i, r := range m.regions {
		if err := claim(m.names, r.Name, i); err != nil {
			return nil, err
		}
		for _, a := range r.Aliases {
			if err := claim(m.aliases, a, i); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

func (m *Mapper) owner(k string) (int, bool) {
	if i, ok := m.codes[k]; ok {
		return i, true
	}
	if i, ok := m.names[k]; ok {
		return i, true
	}
	i, ok := m.aliases[k]
	return i, ok
}

// Lookup resolves a code, region name, or alias. Whitespace inside the label
// is ignored, so "카리브 해" matches "카리브해". An unknown label returns the
// zero Region, whose empty Code callers must treat as "no mapping".
func (m *Mapper) Lookup(label string) (model.Region, bool) {
	k := key(label)
	if k == "" {
		return model.Region{}, false
	}
	if i, ok := m.owner(k); ok {
		return m.regions[i], true
	}
	return model.Region{}, false
}

// Canonical returns the region code for label, or "" when unmapped.
func (m *Mapper) Canonical(label string) string {
	r, _ := m.Lookup(label)
	return r.Code
}

// IsCode reports whether s is exactly a region code.
func (m *Mapper) IsCode(s string) bool {
	_, ok := m.codes[s]
	return ok
}

// Codes returns region codes in table order.
func (m *Mapper) Codes() []string {
	out := make([]string, len(m.regions))
	for i, r := range m.regions {
		out[i] = r.Code
	}
	return out
}

// Regions returns a copy of the table in authored order.
func (m *Mapper) Regions() []model.Region {
	out := make([]model.Region, len(m.regions))
	copy(out, m.regions)
	return out
}

// Entries returns the output-document form of the table keyed by code.
func (m *Mapper) Entries() map[string]model.RegionEntry {
	out := make(map[string]model.RegionEntry, len(m.regions))
	for _, r := range m.regions {
		out[r.Code] = r.Entry()
	}
	return out
}

// key strips all whitespace so spacing variants of a label compare equal.
func key(s string) string {
	return strings.Join(strings.Fields(s), "")
}
