package harness

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wassimkraiem/plant-tracker/internal/garden"
)

var scenarioNow = time.Date(2024, 10, 15, 12, 0, 0, 0, time.UTC)

func basil(id int64, name string) garden.PlantRecord {
	return garden.PlantRecord{
		ID:                    id,
		Name:                  name,
		Type:                  "Basil",
		Planted:               scenarioNow.AddDate(0, -3, 0),
		WateringFrequencyDays: 5,
	}
}

func TestRun_MinimalScenario(t *testing.T) {
	scenario := &Scenario{
		Name:        "minimal",
		Description: "Never watered plant",
		Now:         scenarioNow,
		Plants:      []garden.PlantRecord{basil(1, "Thai")},
		Assertions: []Assertion{
			{Type: AssertSuggestionContains, Plant: 1, Title: "No Watering History", Kind: "warning"},
			{Type: AssertPlantsReported, Plants: []int64{1}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Output, 1)
	assert.Equal(t, "Thai", result.Output[0].PlantName)
}

func TestRun_FailingAssertionReported(t *testing.T) {
	scenario := &Scenario{
		Name:        "failing",
		Description: "Expects a suggestion that is not produced",
		Now:         scenarioNow,
		Plants:      []garden.PlantRecord{basil(1, "Thai")},
		Assertions: []Assertion{
			{Type: AssertSuggestionContains, Plant: 1, Title: "Watering Due"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "assertions[0]")
	assert.Contains(t, result.Errors[0], "No Watering History", "failure lists the actual suggestions")
}

func TestRun_StoreRoundTripKeepsOrderAndFilters(t *testing.T) {
	watered := scenarioNow.Add(-24 * time.Hour)
	quiet := basil(2, "Quiet")
	quiet.LastWatered = &watered
	quiet.CareTasks = &[]garden.TaskRecord{{Name: "Prune", Completed: true}}

	scenario := &Scenario{
		Name:        "round_trip",
		Description: "Plants come back by owner in id order",
		Now:         scenarioNow,
		Workers:     3,
		Plants:      []garden.PlantRecord{basil(5, "Five"), quiet, basil(3, "Three")},
		Assertions: []Assertion{
			{Type: AssertPlantsReported, Plants: []int64{3, 5}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_CatalogOverlay(t *testing.T) {
	scenario := &Scenario{
		Name:        "overlay",
		Description: "Basil tips come from the overlay",
		Now:         scenarioNow,
		Catalog:     filepath.Join("testdata", "catalogs", "single_tip.cue"),
		Plants: []garden.PlantRecord{{
			ID: 1, Name: "Roma", Type: "Tomato",
			Planted:               scenarioNow.AddDate(0, -3, 0),
			WateringFrequencyDays: 3,
		}},
		Assertions: []Assertion{
			{Type: AssertSuggestionContains, Plant: 1, Title: "Deep Roots", Message: "Roma: Water at the base"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_BadCatalog(t *testing.T) {
	scenario := &Scenario{
		Name:        "bad_catalog",
		Description: "Missing catalog file",
		Now:         scenarioNow,
		Catalog:     filepath.Join(t.TempDir(), "missing.cue"),
		Plants:      []garden.PlantRecord{basil(1, "Thai")},
		Assertions:  []Assertion{{Type: AssertPlantsReported, Plants: []int64{1}}},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load catalog")
}

func TestRun_BundledScenarios(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)

	for _, f := range files {
		t.Run(filepath.Base(f), func(t *testing.T) {
			scenario, err := LoadScenario(f)
			require.NoError(t, err)

			result, err := Run(scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestRun_Deterministic(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "busy_tomato.yaml"))
	require.NoError(t, err)

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	assert.Equal(t, first.Output, second.Output)
}
