package suggest

import (
	"time"

	"github.com/Wassimkraiem/plant-tracker/internal/catalog"
	"github.com/Wassimkraiem/plant-tracker/internal/garden"
)

// Engine runs a fixed, ordered set of rules against one plant at a time.
//
// An Engine holds no mutable state after construction and is safe for
// concurrent use.
type Engine struct {
	rules   []Rule // evaluation order, never reordered after New
	catalog *catalog.Catalog
}

// Option configures an Engine.
type Option func(*Engine)

// WithCatalog sets the tip and seasonal tables. Default: catalog.Default().
func WithCatalog(c *catalog.Catalog) Option {
	return func(e *Engine) {
		if c != nil {
			e.catalog = c
		}
	}
}

// WithRules replaces the rule set. The slice is copied; its order becomes
// the evaluation order and the tie-break order for equal priorities.
func WithRules(rules []Rule) Option {
	return func(e *Engine) {
		e.rules = make([]Rule, len(rules))
		copy(e.rules, rules)
	}
}

// New creates an Engine with DefaultRules and the default catalog unless
// overridden by options.
func New(opts ...Option) *Engine {
	e := &Engine{
		rules:   DefaultRules(),
		catalog: catalog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rules returns the rule names in evaluation order.
func (e *Engine) Rules() []string {
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name
	}
	return names
}

// Catalog returns the tables the engine reads.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Evaluate runs every rule against p at now and returns the merged
// suggestions sorted by priority, highest first. Equal priorities keep rule
// order.
//
// Evaluate never fails. Absent watering logs or care tasks are treated as
// empty. now is converted to UTC before any rule sees it, so season and day
// of year are taken from the UTC calendar.
func (e *Engine) Evaluate(p garden.Plant, now time.Time) PlantSuggestions {
	now = now.UTC()

	suggestions := []Suggestion{}
	for _, r := range e.rules {
		suggestions = append(suggestions, r.Eval(&p, now, e.catalog)...)
	}
	sortByPriority(suggestions)

	return PlantSuggestions{
		PlantID:     p.ID,
		PlantName:   p.Name,
		Suggestions: suggestions,
	}
}

// EvaluateAll evaluates plants sequentially and returns the entries with at
// least one suggestion, in input order.
func (e *Engine) EvaluateAll(plants []garden.Plant, now time.Time) []PlantSuggestions {
	out := []PlantSuggestions{}
	for _, p := range plants {
		if ps := e.Evaluate(p, now); !ps.IsEmpty() {
			out = append(out, ps)
		}
	}
	return out
}
