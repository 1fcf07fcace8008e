package suggest

import (
	"cmp"
	"slices"
)

// Kind classifies a suggestion for display.
type Kind string

const (
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindTip     Kind = "tip"
)

// Suggestion is a single advisory. Higher priority is more urgent.
type Suggestion struct {
	Kind     Kind   `json:"type"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Icon     string `json:"icon"`
	Priority int    `json:"priority"`
}

// PlantSuggestions groups one plant's ordered suggestions.
type PlantSuggestions struct {
	PlantID     int64        `json:"plantId"`
	PlantName   string       `json:"plantName"`
	Suggestions []Suggestion `json:"suggestions"`
}

// IsEmpty reports whether no rule produced anything for the plant.
func (ps PlantSuggestions) IsEmpty() bool {
	return len(ps.Suggestions) == 0
}

// Titles returns the suggestion titles in order.
func (ps PlantSuggestions) Titles() []string {
	titles := make([]string, len(ps.Suggestions))
	for i, s := range ps.Suggestions {
		titles[i] = s.Title
	}
	return titles
}

// sortByPriority orders suggestions by priority, highest first. The sort is
// stable so equal priorities keep the order the rules emitted them in.
func sortByPriority(s []Suggestion) {
	slices.SortStableFunc(s, func(a, b Suggestion) int {
		return cmp.Compare(b.Priority, a.Priority)
	})
}
