// Package catalog holds the static advice tables used by the suggestion
// engine: rotating care tips per plant type and one seasonal advisory per
// season.
//
// A Catalog is immutable once built. Default returns the built-in tables;
// LoadFile overlays entries from a CUE file on top of them.
package catalog

import (
	"slices"
	"strings"
	"time"
)

// Season is a calendar season.
type Season string

const (
	Winter Season = "winter"
	Spring Season = "spring"
	Summer Season = "summer"
	Fall   Season = "fall"
)

// Seasons lists every season in calendar order starting with winter.
var Seasons = []Season{Winter, Spring, Summer, Fall}

// SeasonOf maps a month to its season: Dec-Feb winter, Mar-May spring,
// Jun-Aug summer, everything else fall.
func SeasonOf(m time.Month) Season {
	switch m {
	case time.December, time.January, time.February:
		return Winter
	case time.March, time.April, time.May:
		return Spring
	case time.June, time.July, time.August:
		return Summer
	default:
		return Fall
	}
}

// IsValid reports whether s is one of the four seasons.
func (s Season) IsValid() bool {
	return slices.Contains(Seasons, s)
}

// PlantPlaceholder is replaced by the plant name when a message is rendered.
const PlantPlaceholder = "{plant}"

// Tip is one rotating care tip for a plant type.
type Tip struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Icon    string `json:"icon"`
}

// SeasonalTip is the advisory for one season. When OnlyType is set the
// advisory applies to that plant type only.
type SeasonalTip struct {
	OnlyType string `json:"only_type,omitempty"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Icon     string `json:"icon"`
	Priority int    `json:"priority"`
}

// AppliesTo reports whether the advisory is relevant to plantType.
func (s SeasonalTip) AppliesTo(plantType string) bool {
	return s.OnlyType == "" || s.OnlyType == plantType
}

// Render expands the plant placeholder in message.
func Render(message, plantName string) string {
	return strings.ReplaceAll(message, PlantPlaceholder, plantName)
}

// Catalog is an immutable set of lookup tables.
type Catalog struct {
	tips     map[string][]Tip
	seasonal map[Season]SeasonalTip
}

// New builds a catalog from the given tables. The maps are copied.
func New(tips map[string][]Tip, seasonal map[Season]SeasonalTip) *Catalog {
	c := &Catalog{
		tips:     make(map[string][]Tip, len(tips)),
		seasonal: make(map[Season]SeasonalTip, len(seasonal)),
	}
	for k, v := range tips {
		c.tips[k] = slices.Clone(v)
	}
	for k, v := range seasonal {
		c.seasonal[k] = v
	}
	return c
}

// TipsFor returns the tips for a plant type. Unknown types have none.
func (c *Catalog) TipsFor(plantType string) []Tip {
	return slices.Clone(c.tips[plantType])
}

// Seasonal returns the advisory for a season, if any.
func (c *Catalog) Seasonal(s Season) (SeasonalTip, bool) {
	tip, ok := c.seasonal[s]
	return tip, ok
}

// Types returns the plant types that have tips, sorted.
func (c *Catalog) Types() []string {
	types := make([]string, 0, len(c.tips))
	for k := range c.tips {
		types = append(types, k)
	}
	slices.Sort(types)
	return types
}

// Overlay returns a new catalog where every type and season present in
// other replaces the entry in c.
func (c *Catalog) Overlay(other *Catalog) *Catalog {
	out := New(c.tips, c.seasonal)
	for k, v := range other.tips {
		out.tips[k] = slices.Clone(v)
	}
	for k, v := range other.seasonal {
		out.seasonal[k] = v
	}
	return out
}
