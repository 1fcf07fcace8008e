package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Wassimkraiem/plant-tracker/internal/suggest"
)

// AssertionError is returned when an assertion fails.
// It carries the plant's full suggestion list to help debug the failure.
type AssertionError struct {
	Type     string               // Assertion type for categorization
	Expected string               // Human-readable expected outcome
	Actual   string               // Human-readable actual outcome
	Context  []suggest.Suggestion // Suggestions for the plant, if any
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Context) > 0 {
		fmt.Fprintf(&buf, "\nSuggestions:\n")
		for i, s := range e.Context {
			fmt.Fprintf(&buf, "  [%d] %s (%s/%d)\n", i+1, s.Title, s.Kind, s.Priority)
		}
	}

	return buf.String()
}

// EvaluateAssertions checks every assertion against the result output and
// returns one message per failure.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluateAssertion(result, a); err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %s", i, err.Error()))
		}
	}
	return errs
}

func evaluateAssertion(result *Result, a Assertion) error {
	switch a.Type {
	case AssertSuggestionContains:
		return assertSuggestionContains(result, a)
	case AssertSuggestionAbsent:
		return assertSuggestionAbsent(result, a)
	case AssertSuggestionCount:
		return assertSuggestionCount(result, a)
	case AssertSuggestionOrder:
		return assertSuggestionOrder(result, a)
	case AssertPlantsReported:
		return assertPlantsReported(result, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// assertSuggestionContains checks that the plant has a suggestion with the
// title and, where given, the kind, priority and message substring.
func assertSuggestionContains(result *Result, a Assertion) error {
	ps, _ := result.ForPlant(a.Plant)
	for _, s := range ps.Suggestions {
		if matchSuggestion(s, a) {
			return nil
		}
	}

	return &AssertionError{
		Type:     AssertSuggestionContains,
		Expected: fmt.Sprintf("plant %d has %s", a.Plant, describe(a)),
		Actual:   "not found",
		Context:  ps.Suggestions,
	}
}

// assertSuggestionAbsent checks that no suggestion with the title exists.
// A plant missing from the output has no suggestions.
func assertSuggestionAbsent(result *Result, a Assertion) error {
	ps, _ := result.ForPlant(a.Plant)
	for _, s := range ps.Suggestions {
		if s.Title == a.Title {
			return &AssertionError{
				Type:     AssertSuggestionAbsent,
				Expected: fmt.Sprintf("plant %d has no %q", a.Plant, a.Title),
				Actual:   fmt.Sprintf("found %s/%d", s.Kind, s.Priority),
				Context:  ps.Suggestions,
			}
		}
	}
	return nil
}

// assertSuggestionCount checks the number of suggestions for the plant.
func assertSuggestionCount(result *Result, a Assertion) error {
	ps, _ := result.ForPlant(a.Plant)
	if len(ps.Suggestions) != a.Count {
		return &AssertionError{
			Type:     AssertSuggestionCount,
			Expected: fmt.Sprintf("plant %d has %d suggestions", a.Plant, a.Count),
			Actual:   fmt.Sprintf("%d suggestions", len(ps.Suggestions)),
			Context:  ps.Suggestions,
		}
	}
	return nil
}

// assertSuggestionOrder checks that the titles appear in the given relative
// order. Other suggestions may appear between them.
func assertSuggestionOrder(result *Result, a Assertion) error {
	ps, _ := result.ForPlant(a.Plant)
	titles := ps.Titles()

	positions := make([]int, len(a.Titles))
	for i, title := range a.Titles {
		pos := slices.Index(titles, title)
		if pos < 0 {
			return &AssertionError{
				Type:     AssertSuggestionOrder,
				Expected: fmt.Sprintf("all titles present: %v", a.Titles),
				Actual:   fmt.Sprintf("missing title: %s", title),
				Context:  ps.Suggestions,
			}
		}
		positions[i] = pos
	}

	for i := 1; i < len(positions); i++ {
		if positions[i-1] >= positions[i] {
			return &AssertionError{
				Type:     AssertSuggestionOrder,
				Expected: fmt.Sprintf("titles in order: %v", a.Titles),
				Actual: fmt.Sprintf("%s (pos %d) should be before %s (pos %d)",
					a.Titles[i-1], positions[i-1]+1, a.Titles[i], positions[i]+1),
				Context: ps.Suggestions,
			}
		}
	}

	return nil
}

// assertPlantsReported checks the exact ordered list of plant ids in the
// output.
func assertPlantsReported(result *Result, a Assertion) error {
	got := make([]int64, len(result.Output))
	for i, ps := range result.Output {
		got[i] = ps.PlantID
	}
	if !slices.Equal(got, a.Plants) {
		return &AssertionError{
			Type:     AssertPlantsReported,
			Expected: fmt.Sprintf("plants %v", a.Plants),
			Actual:   fmt.Sprintf("plants %v", got),
		}
	}
	return nil
}

func matchSuggestion(s suggest.Suggestion, a Assertion) bool {
	if s.Title != a.Title {
		return false
	}
	if a.Kind != "" && string(s.Kind) != a.Kind {
		return false
	}
	if a.Priority != nil && s.Priority != *a.Priority {
		return false
	}
	return a.Message == "" || strings.Contains(s.Message, a.Message)
}

func describe(a Assertion) string {
	parts := []string{fmt.Sprintf("%q", a.Title)}
	if a.Kind != "" {
		parts = append(parts, "kind "+a.Kind)
	}
	if a.Priority != nil {
		parts = append(parts, fmt.Sprintf("priority %d", *a.Priority))
	}
	if a.Message != "" {
		parts = append(parts, fmt.Sprintf("message containing %q", a.Message))
	}
	return strings.Join(parts, " with ")
}
