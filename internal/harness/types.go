package harness

import (
	"github.com/Wassimkraiem/plant-tracker/internal/suggest"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool `json:"pass"`

	// Output is the aggregator output, in store order, empty entries
	// filtered out.
	Output []suggest.PlantSuggestions `json:"output"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Output: []suggest.PlantSuggestions{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// ForPlant returns the output entry for a plant id.
func (r *Result) ForPlant(id int64) (suggest.PlantSuggestions, bool) {
	for _, ps := range r.Output {
		if ps.PlantID == id {
			return ps, true
		}
	}
	return suggest.PlantSuggestions{}, false
}
