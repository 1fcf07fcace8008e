// Package harness runs YAML suggestion scenarios end to end.
//
// A scenario describes a garden and an evaluation instant. Run stores the
// garden in a fresh in-memory database, reads it back by owner and runs
// the batch aggregator, then checks the output against the scenario's
// assertions.
//
// # Scenario Format
//
//	name: overdue_tomato
//	description: "Tomato three days past its watering interval"
//	now: 2024-10-15T12:00:00Z
//	catalog: herbs.cue          # optional, relative to the scenario
//	workers: 4                  # optional
//	plants:
//	  - id: 1
//	    name: Roma
//	    type: Tomato
//	    planted: 2024-08-01T00:00:00Z
//	    watering_frequency_days: 5
//	    last_watered: 2024-10-07T12:00:00Z
//	assertions:
//	  - type: suggestion_contains
//	    plant: 1
//	    title: Watering Overdue
//	    kind: warning
//	    priority: 10
//	  - type: plants_reported
//	    plants: [1]
//
// # Assertion Types
//
//   - suggestion_contains: the plant has a suggestion with the title, and
//     optionally the kind, priority and a message substring
//   - suggestion_absent: the plant has no suggestion with the title
//   - suggestion_count: the plant has exactly count suggestions
//   - suggestion_order: the titles appear in this relative order
//   - plants_reported: the output lists exactly these plant ids, in order
//
// # Golden Files
//
// Snapshot renders the output as canonical JSON. RunWithGolden compares it
// against testdata/golden/<name>.golden using goldie; the CLI test command
// keeps golden files next to the scenarios under golden/.
package harness
