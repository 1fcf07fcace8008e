package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Wassimkraiem/plant-tracker/internal/garden"
)

// Scenario defines one suggestion scenario: a garden, an evaluation
// instant and the assertions that must hold on the engine output.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description"`

	// Now is the evaluation instant. Required so runs are reproducible.
	Now time.Time `yaml:"now"`

	// Catalog is an optional CUE overlay file. LoadScenario resolves it
	// relative to the scenario file.
	Catalog string `yaml:"catalog,omitempty"`

	// Workers sets the aggregator parallelism. Zero means one worker.
	Workers int `yaml:"workers,omitempty"`

	// Plants is the garden, inserted in order for owner 1.
	Plants []garden.PlantRecord `yaml:"plants"`

	// Assertions validate the output.
	// Supported types: suggestion_contains, suggestion_absent,
	// suggestion_count, suggestion_order, plants_reported
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates the suggestions produced for one plant, or the set
// of plants reported.
type Assertion struct {
	// Type specifies the assertion type:
	// - "suggestion_contains": a suggestion with Title exists for Plant
	// - "suggestion_absent": no suggestion with Title exists for Plant
	// - "suggestion_count": Plant has exactly Count suggestions
	// - "suggestion_order": Titles appear in this relative order for Plant
	// - "plants_reported": the output lists exactly Plants, in order
	Type string `yaml:"type"`

	// Plant is the plant id the assertion is about.
	Plant int64 `yaml:"plant,omitempty"`

	// Title is the suggestion title (suggestion_contains, suggestion_absent).
	Title string `yaml:"title,omitempty"`

	// Kind optionally narrows suggestion_contains to one kind.
	Kind string `yaml:"kind,omitempty"`

	// Priority optionally narrows suggestion_contains to one priority.
	Priority *int `yaml:"priority,omitempty"`

	// Message is an optional substring the matching message must contain.
	Message string `yaml:"message,omitempty"`

	// Count is the expected number of suggestions (suggestion_count).
	Count int `yaml:"count,omitempty"`

	// Titles is the expected relative order (suggestion_order).
	Titles []string `yaml:"titles,omitempty"`

	// Plants is the expected list of reported plant ids (plants_reported).
	Plants []int64 `yaml:"plants,omitempty"`
}

// Assertion type constants.
const (
	AssertSuggestionContains = "suggestion_contains"
	AssertSuggestionAbsent   = "suggestion_absent"
	AssertSuggestionCount    = "suggestion_count"
	AssertSuggestionOrder    = "suggestion_order"
	AssertPlantsReported     = "plants_reported"
)

// LoadScenario reads and parses a scenario YAML file. A relative catalog
// path is resolved against the scenario's directory.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields, or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving the catalog path relative to basePath.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.Catalog != "" && !filepath.IsAbs(scenario.Catalog) && basePath != "" {
		scenario.Catalog = filepath.Join(basePath, scenario.Catalog)
	}
	if scenario.Catalog != "" {
		if _, err := os.Stat(scenario.Catalog); os.IsNotExist(err) {
			return nil, fmt.Errorf("invalid scenario: catalog file not found: %s", scenario.Catalog)
		}
	}

	return scenario, nil
}

// ParseScenario parses scenario YAML. Catalog paths are left as written.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Now.IsZero() {
		return fmt.Errorf("now is required")
	}

	if s.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", s.Workers)
	}

	if len(s.Plants) == 0 {
		return fmt.Errorf("plants list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	seen := make(map[int64]bool, len(s.Plants))
	for i, p := range s.Plants {
		if p.ID <= 0 {
			return fmt.Errorf("plants[%d]: id is required and must be positive", i)
		}
		if seen[p.ID] {
			return fmt.Errorf("plants[%d]: duplicate id %d", i, p.ID)
		}
		seen[p.ID] = true
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertSuggestionContains, AssertSuggestionAbsent:
		if a.Plant == 0 {
			return fmt.Errorf("assertions[%d]: plant is required for %s", index, a.Type)
		}
		if a.Title == "" {
			return fmt.Errorf("assertions[%d]: title is required for %s", index, a.Type)
		}
	case AssertSuggestionCount:
		if a.Plant == 0 {
			return fmt.Errorf("assertions[%d]: plant is required for suggestion_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for suggestion_count", index)
		}
	case AssertSuggestionOrder:
		if a.Plant == 0 {
			return fmt.Errorf("assertions[%d]: plant is required for suggestion_order", index)
		}
		if len(a.Titles) < 2 {
			return fmt.Errorf("assertions[%d]: at least two titles are required for suggestion_order", index)
		}
	case AssertPlantsReported:
		if a.Plants == nil {
			return fmt.Errorf("assertions[%d]: plants list is required for plants_reported (use [] for none)", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
