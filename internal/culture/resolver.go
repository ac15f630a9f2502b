// Package culture decides which culture zone a city belongs to.
package culture

import "strings"

// Tier names the rule that produced a resolution.
type Tier string

const (
	TierOverride   Tier = "override"
	TierInferred   Tier = "inferred"
	TierRaw        Tier = "raw"
	TierUnresolved Tier = "unresolved"
)

// Resolution is the outcome of resolving one city.
type Resolution struct {
	Label string
	Tier  Tier
}

// Resolved reports whether any rule produced a culture.
func (r Resolution) Resolved() bool { return r.Tier != TierUnresolved }

// Resolver applies the culture priority chain:
//  1. manual override by exact city name
//  2. name-based inference by exact city name
//  3. the raw culture field from the source row, trimmed
//  4. unresolved
//
// The first rule yielding a non-empty value wins.
type Resolver struct {
	overrides map[string]string
	inferred  map[string]string
}

// NewResolver builds a resolver over the given name -> culture tables. Either
// table may be nil.
func NewResolver(overrides, inferred map[string]string) *Resolver {
	return &Resolver{overrides: overrides, inferred: inferred}
}

// Resolve returns the culture for a city.
func (r *Resolver) Resolve(name, raw string) Resolution {
	if v := strings.TrimSpace(r.overrides[name]); v != "" {
		return Resolution{Label: v, Tier: TierOverride}
	}
	if v := strings.TrimSpace(r.inferred[name]); v != "" {
		return Resolution{Label: v, Tier: TierInferred}
	}
	if v := strings.TrimSpace(raw); v != "" {
		return Resolution{Label: v, Tier: TierRaw}
	}
	return Resolution{Tier: TierUnresolved}
}
