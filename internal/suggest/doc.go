// Package suggest evaluates a plant snapshot against a fixed set of care
// rules and produces a prioritized list of advisories.
//
// The package is pure computation. Nothing here performs I/O or reads the
// wall clock: callers load plants (with their watering logs and care tasks
// already attached) and pass the evaluation instant explicitly.
//
// Evaluation pipeline:
//
//	plant + now -> rules (fixed order) -> concatenated suggestions
//	            -> stable sort by priority, descending -> PlantSuggestions
//
// Rules run in this order, which is also the tie-break order for equal
// priorities:
//
//	watering, overdue-tasks, upcoming-tasks, age, seasonal, type-tip, activity
//
// Engine evaluates one plant. Aggregator evaluates many plants, optionally
// on a bounded worker pool, and keeps only plants that produced at least one
// suggestion, in input order.
package suggest
