package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/Wassimkraiem/plant-tracker/internal/canonical"
	"github.com/Wassimkraiem/plant-tracker/internal/suggest"
)

// GoldenDir is where RunWithGolden and AssertGolden keep golden files,
// relative to the test's package directory.
const GoldenDir = "testdata/golden"

// Snapshot renders the scenario name and output as canonical JSON. This is
// the exact content of a golden file.
func Snapshot(scenarioName string, result *Result) ([]byte, error) {
	return canonical.Marshal(map[string]any{
		"scenario_name": scenarioName,
		"output":        suggest.SnapshotAll(result.Output),
	})
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails. Test failure (via goldie)
// occurs if the output doesn't match the golden file. Assertion failures
// are left in the returned result for the caller to check.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := Snapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir(GoldenDir),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}
