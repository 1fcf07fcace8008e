package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wassimkraiem/plant-tracker/internal/garden"
	"github.com/Wassimkraiem/plant-tracker/internal/suggest"
	"github.com/Wassimkraiem/plant-tracker/internal/testutil"
)

var cliNow = time.Date(2024, 10, 15, 12, 0, 0, 0, time.UTC)

// cliEnv runs root commands against one temp database with a frozen clock.
type cliEnv struct {
	t     *testing.T
	db    string
	clock suggest.Clock
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	return &cliEnv{
		t:     t,
		db:    filepath.Join(t.TempDir(), "plantcare.db"),
		clock: testutil.NewFixedClock(cliNow),
	}
}

func (e *cliEnv) run(args ...string) (string, error) {
	e.t.Helper()
	cmd := NewRootCommandWithOptions(&RootOptions{
		Database: e.db,
		UserID:   1,
		Workers:  2,
		Clock:    e.clock,
		TraceIDs: testutil.NewFixedTokenGenerator("trace-test"),
	})
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func (e *cliEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run(args...)
	require.NoError(e.t, err, "plantcare %s\n%s", strings.Join(args, " "), out)
	return out
}

type jsonResponse struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Error   *CLIError       `json:"error"`
	TraceID string          `json:"trace_id"`
}

func decodeResponse(t *testing.T, out string, data any) jsonResponse {
	t.Helper()
	var resp jsonResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	if data != nil && len(resp.Data) > 0 {
		require.NoError(t, json.Unmarshal(resp.Data, data))
	}
	return resp
}

func (e *cliEnv) addBasil(name string, frequency string) {
	e.t.Helper()
	e.mustRun("plant", "add", "--name", name, "--type", "Basil", "--planted", "2024-08-01", "--frequency", frequency)
}

func TestPlantAddAndList(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun("plant", "add", "--name", "Roma", "--type", "Tomato", "--planted", "2024-05-01", "--frequency", "3")
	assert.Equal(t, "Created plant 1 (Roma)\n", out)

	out = env.mustRun("plant", "list")
	assert.Contains(t, out, "Roma")
	assert.Contains(t, out, "every 3 days, never watered")

	out = env.mustRun("--format", "json", "plant", "list")
	var list struct {
		Plants []garden.Plant `json:"plants"`
	}
	resp := decodeResponse(t, out, &list)
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, list.Plants, 1)
	assert.Equal(t, "Tomato", list.Plants[0].Type)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), list.Plants[0].PlantedDate)
}

func TestPlantListEmpty(t *testing.T) {
	env := newCLIEnv(t)
	assert.Equal(t, "No plants.\n", env.mustRun("plant", "list"))
}

func TestPlantAddValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code string
	}{
		{"zero frequency", []string{"--name", "A", "--type", "Basil", "--frequency", "0"}, garden.ErrFrequencyNotPositive},
		{"blank name", []string{"--name", " ", "--type", "Basil", "--frequency", "3"}, garden.ErrNameRequired},
		{"planted in future", []string{"--name", "A", "--type", "Basil", "--frequency", "3", "--planted", "2024-10-20"}, garden.ErrPlantedInFuture},
		{"watered in future", []string{"--name", "A", "--type", "Basil", "--frequency", "3", "--last-watered", "2024-10-16"}, garden.ErrLastWateredInFuture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newCLIEnv(t)
			out, err := env.run(append([]string{"--format", "json", "plant", "add"}, tt.args...)...)
			require.Error(t, err)
			assert.Equal(t, ExitFailure, GetExitCode(err))

			resp := decodeResponse(t, out, nil)
			assert.Equal(t, "error", resp.Status)
			assert.Equal(t, ErrCodeValidation, resp.Error.Code)
			assert.Contains(t, resp.Error.Message, tt.code)

			assert.Equal(t, "No plants.\n", env.mustRun("plant", "list"), "nothing written")
		})
	}
}

func TestPlantAddBadDate(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.run("plant", "add", "--name", "A", "--type", "Basil", "--frequency", "3", "--planted", "yesterday")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid --planted")
}

func TestPlantRemove(t *testing.T) {
	env := newCLIEnv(t)
	env.addBasil("Mint", "4")

	assert.Equal(t, "Removed plant 1\n", env.mustRun("plant", "remove", "1"))

	out, err := env.run("plant", "remove", "1")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E002]")
}

func TestPlantRemoveOtherUser(t *testing.T) {
	env := newCLIEnv(t)
	env.addBasil("Mint", "4")

	_, err := env.run("--user", "2", "plant", "remove", "1")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestWaterMovesLastWatered(t *testing.T) {
	env := newCLIEnv(t)
	env.addBasil("Mint", "4")

	out := env.mustRun("water", "1", "--at", "2024-10-13T09:00:00Z", "--notes", "deep soak")
	assert.Equal(t, "Watered plant 1 at 2024-10-13T09:00:00Z\n", out)

	env.mustRun("water", "1", "--at", "2024-10-10")

	assert.Contains(t, env.mustRun("plant", "list"), "last watered 2024-10-13", "back-dated log keeps the newer date")
}

func TestWaterErrors(t *testing.T) {
	env := newCLIEnv(t)
	env.addBasil("Mint", "4")

	_, err := env.run("water", "1", "--at", "2024-10-16")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err), "future watering is invalid")

	_, err = env.run("water", "9")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err), "unknown plant")

	_, err = env.run("water", "abc")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTaskAddAndDone(t *testing.T) {
	env := newCLIEnv(t)
	env.addBasil("Mint", "4")
	env.mustRun("water", "1", "--at", "2024-10-14")

	out := env.mustRun("task", "add", "1", "--name", "Fertilize", "--due", "2024-10-10")
	assert.Equal(t, "Added task 1 (Fertilize) to plant 1\n", out)

	out = env.mustRun("suggest", "1")
	assert.Contains(t, out, "1 Overdue Task")
	assert.Contains(t, out, "'Fertilize' is 5 days overdue.")

	assert.Equal(t, "Task 1 completed\n", env.mustRun("task", "done", "1"))
	assert.NotContains(t, env.mustRun("suggest", "1"), "Overdue Task")

	assert.Equal(t, "Task 1 reopened\n", env.mustRun("task", "done", "1", "--undo"))
	assert.Contains(t, env.mustRun("suggest", "1"), "Overdue Task")
}

func TestTaskErrors(t *testing.T) {
	env := newCLIEnv(t)
	env.addBasil("Mint", "4")

	_, err := env.run("task", "add", "1", "--name", "  ")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	_, err = env.run("task", "done", "42")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestSuggestSinglePlantJSON(t *testing.T) {
	env := newCLIEnv(t)
	env.addBasil("Thai Basil", "5")
	env.mustRun("water", "1", "--at", "2024-10-07T12:00:00Z")

	out := env.mustRun("--format", "json", "suggest", "1")

	var report SuggestReport
	resp := decodeResponse(t, out, &report)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "trace-test", resp.TraceID)
	assert.Equal(t, cliNow, report.Now)
	assert.Len(t, report.Fingerprint, 64)

	require.Len(t, report.Plants, 1)
	ps := report.Plants[0]
	assert.Equal(t, int64(1), ps.PlantID)
	require.NotEmpty(t, ps.Suggestions)
	assert.Equal(t, "Urgent: Overdue Watering", ps.Suggestions[0].Title)
	assert.Equal(t, suggest.KindWarning, ps.Suggestions[0].Kind)
	assert.Equal(t, 10, ps.Suggestions[0].Priority)
	assert.Contains(t, ps.Suggestions[0].Message, "3 days overdue")
}

func TestSuggestSinglePlantWithNothingToDo(t *testing.T) {
	env := newCLIEnv(t)
	env.addBasil("Quiet", "7")
	env.mustRun("water", "1", "--at", "2024-10-14")
	env.mustRun("task", "add", "1", "--name", "Prune")

	out := env.mustRun("--format", "json", "suggest", "1")
	var report SuggestReport
	decodeResponse(t, out, &report)

	require.Len(t, report.Plants, 1, "single-plant mode always returns the entry")
	assert.Empty(t, report.Plants[0].Suggestions)

	assert.Contains(t, env.mustRun("suggest", "1"), "nothing to do")
}

func TestSuggestAllFiltersQuietPlants(t *testing.T) {
	env := newCLIEnv(t)
	env.addBasil("Thirsty", "5")
	env.addBasil("Quiet", "7")
	env.mustRun("water", "2", "--at", "2024-10-14")
	env.mustRun("task", "add", "2", "--name", "Prune")
	env.addBasil("Also Thirsty", "5")

	out := env.mustRun("--format", "json", "suggest")
	var report SuggestReport
	decodeResponse(t, out, &report)

	ids := make([]int64, len(report.Plants))
	for i, ps := range report.Plants {
		ids[i] = ps.PlantID
	}
	assert.Equal(t, []int64{1, 3}, ids)
}

func TestSuggestFingerprintStableAcrossWorkers(t *testing.T) {
	env := newCLIEnv(t)
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		env.addBasil(name, "3")
	}
	env.mustRun("water", "2", "--at", "2024-10-13")
	env.mustRun("water", "4", "--at", "2024-10-01")

	var one, many SuggestReport
	decodeResponse(t, env.mustRun("--format", "json", "suggest", "--workers", "1"), &one)
	decodeResponse(t, env.mustRun("--format", "json", "suggest", "--workers", "8"), &many)

	assert.Equal(t, one.Fingerprint, many.Fingerprint)
	assert.Equal(t, one.Plants, many.Plants)
}

func TestSuggestNowFlagAndCatalog(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("plant", "add", "--name", "Roma", "--type", "Tomato", "--planted", "2024-05-01", "--frequency", "3")

	catalogPath := filepath.Join(t.TempDir(), "one.cue")
	require.NoError(t, os.WriteFile(catalogPath, []byte(
		`tips: Tomato: [{title: "Deep Roots", message: "Water at the base.", icon: "🌱"}]`), 0644))

	out := env.mustRun("suggest", "1", "--now", "2024-07-10", "--catalog", catalogPath)
	assert.Contains(t, out, "Summer Heat Care")
	assert.Contains(t, out, "Deep Roots: Roma: Water at the base.")
	assert.Contains(t, out, "Harvest Time Approaching")
}

func TestSuggestErrors(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run("suggest", "7")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err), "unknown plant")

	_, err = env.run("suggest", "--catalog", filepath.Join(t.TempDir(), "missing.cue"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = env.run("suggest", "--now", "soon")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestSuggestEmptyGardenText(t *testing.T) {
	env := newCLIEnv(t)
	assert.Contains(t, env.mustRun("suggest"), "No suggestions.")
}

const importDocument = `
plants:
  - name: Roma
    type: Tomato
    planted: 2024-05-01
    watering_frequency_days: 3
    last_watered: 2024-10-14T08:00:00Z
    watering_logs:
      - date: 2024-10-14T08:00:00Z
    care_tasks:
      - name: Stake
        due: 2024-10-16
  - name: Mint
    type: Basil
    planted: 2024-09-01
    watering_frequency_days: 4
`

func TestImport(t *testing.T) {
	env := newCLIEnv(t)
	path := filepath.Join(t.TempDir(), "garden.yaml")
	require.NoError(t, os.WriteFile(path, []byte(importDocument), 0644))

	out := env.mustRun("--format", "json", "import", path)
	var result ImportResult
	decodeResponse(t, out, &result)
	assert.Equal(t, []int64{1, 2}, result.Created)

	list := env.mustRun("plant", "list")
	assert.Contains(t, list, "Roma")
	assert.Contains(t, list, "Mint")
	assert.Contains(t, list, "1 open task(s)")

	assert.Contains(t, env.mustRun("suggest", "1"), "'Stake' is due in 0 days.")
}

func TestImportRejectsInvalidGarden(t *testing.T) {
	env := newCLIEnv(t)
	path := filepath.Join(t.TempDir(), "garden.yaml")
	bad := importDocument + `  - name: Broken
    type: Basil
    planted: 2024-09-01
    watering_frequency_days: 0
`
	require.NoError(t, os.WriteFile(path, []byte(bad), 0644))

	out, err := env.run("import", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "plants[2].watering_frequency_days")
	assert.Equal(t, "No plants.\n", env.mustRun("plant", "list"), "nothing imported")
}

func TestImportUnknownField(t *testing.T) {
	env := newCLIEnv(t)
	path := filepath.Join(t.TempDir(), "garden.yaml")
	require.NoError(t, os.WriteFile(path, []byte("plants:\n  - name: A\n    colour: green\n"), 0644))

	_, err := env.run("import", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCatalogShow(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun("catalog", "show")
	assert.Contains(t, out, "Olive Tree")
	assert.Contains(t, out, "Pinch Suckers")
	assert.Contains(t, out, "Summer Heat Care (priority 5, all types)")
	assert.Contains(t, out, "Harvest Season (priority 6, Olive Tree)")

	var view CatalogView
	decodeResponse(t, env.mustRun("--format", "json", "catalog", "show"), &view)
	assert.Len(t, view.Tips["Tomato"], 3)
	assert.Len(t, view.Seasonal, 4)
}

func TestCatalogValidate(t *testing.T) {
	env := newCLIEnv(t)
	dir := t.TempDir()

	good := filepath.Join(dir, "good.cue")
	require.NoError(t, os.WriteFile(good, []byte(`tips: Basil: [{title: "t", message: "m", icon: "i"}]`), 0644))
	out := env.mustRun("catalog", "validate", good)
	assert.Contains(t, out, "is valid (5 plant types)")

	bad := filepath.Join(dir, "bad.cue")
	require.NoError(t, os.WriteFile(bad, []byte(`seasonal: monsoon: {title: "t", message: "m", icon: "i", priority: 1}`), 0644))
	out, err := env.run("--format", "json", "catalog", "validate", bad)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	resp := decodeResponse(t, out, nil)
	assert.Equal(t, "E302", resp.Error.Code)

	_, err = env.run("catalog", "validate", filepath.Join(dir, "missing.cue"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCommandsReadClockInUTC(t *testing.T) {
	env := newCLIEnv(t)
	tokyo := time.FixedZone("UTC+9", 9*60*60)
	env.clock = suggest.ClockFunc(func() time.Time { return cliNow.In(tokyo) })

	var report SuggestReport
	decodeResponse(t, env.mustRun("--format", "json", "suggest"), &report)
	assert.Equal(t, cliNow, report.Now)
	assert.Equal(t, time.UTC, report.Now.Location())
}

func TestPlantShow(t *testing.T) {
	env := newCLIEnv(t)
	env.addBasil("Mint", "4")
	env.mustRun("water", "1", "--at", "2024-10-05T07:30:00Z", "--notes", "first")
	env.mustRun("water", "1", "--at", "2024-10-13T09:00:00Z")
	env.mustRun("water", "1", "--at", "2024-10-09T09:00:00Z")
	env.mustRun("task", "add", "1", "--name", "Prune", "--due", "2024-10-20")

	var detail PlantDetail
	decodeResponse(t, env.mustRun("--format", "json", "plant", "show", "1"), &detail)
	assert.Equal(t, "Mint", detail.Plant.Name)
	require.Len(t, detail.WateringHistory, 3)
	assert.Equal(t, time.Date(2024, 10, 13, 9, 0, 0, 0, time.UTC), detail.WateringHistory[0].WateredDate, "newest first")
	assert.Equal(t, time.Date(2024, 10, 9, 9, 0, 0, 0, time.UTC), detail.WateringHistory[1].WateredDate)
	assert.Equal(t, "first", detail.WateringHistory[2].Notes)

	out := env.mustRun("plant", "show", "1")
	assert.Contains(t, out, "Mint (#1), Basil, planted 2024-08-01, water every 4 days")
	assert.Contains(t, out, "2024-10-13 09:00\n  2024-10-09 09:00\n  2024-10-05 07:30  first")
	assert.Contains(t, out, "[ ] #1 Prune (due 2024-10-20)")

	_, err := env.run("plant", "show", "2")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestPlantShowEmpty(t *testing.T) {
	env := newCLIEnv(t)
	env.addBasil("Mint", "4")

	out := env.mustRun("plant", "show", "1")
	assert.Contains(t, out, "Watering history:\n  none")
	assert.Contains(t, out, "Tasks:\n  none")
}

func TestPlantUpdate(t *testing.T) {
	env := newCLIEnv(t)
	env.addBasil("Mint", "4")
	env.mustRun("task", "add", "1", "--name", "Prune")

	out := env.mustRun("plant", "update", "1", "--name", "Spearmint", "--frequency", "2", "--last-watered", "2024-10-14")
	assert.Equal(t, "Updated plant 1 (Spearmint)\n", out)

	var detail PlantDetail
	decodeResponse(t, env.mustRun("--format", "json", "plant", "show", "1"), &detail)
	p := detail.Plant
	assert.Equal(t, "Spearmint", p.Name)
	assert.Equal(t, "Basil", p.Type, "unchanged fields are kept")
	assert.Equal(t, 2, p.WateringFrequencyDays)
	require.NotNil(t, p.LastWateredDate)
	assert.Equal(t, time.Date(2024, 10, 14, 0, 0, 0, 0, time.UTC), *p.LastWateredDate)
	assert.Equal(t, 1, p.CareTasks.Len(), "tasks are kept")

	assert.Contains(t, env.mustRun("suggest", "1"), "Watering Soon")
}

func TestPlantUpdateErrors(t *testing.T) {
	env := newCLIEnv(t)
	env.addBasil("Mint", "4")

	out, err := env.run("--format", "json", "plant", "update", "1", "--frequency", "0")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	resp := decodeResponse(t, out, nil)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, garden.ErrFrequencyNotPositive)
	assert.Contains(t, env.mustRun("plant", "list"), "every 4 days", "rejected update leaves the plant alone")

	_, err = env.run("plant", "update", "1", "--planted", "2024-11-01")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	_, err = env.run("plant", "update", "1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "nothing to update")

	_, err = env.run("--user", "2", "plant", "update", "1", "--name", "Stolen")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestTaskRemove(t *testing.T) {
	env := newCLIEnv(t)
	env.addBasil("Mint", "4")
	env.mustRun("task", "add", "1", "--name", "Prune")

	_, err := env.run("--user", "2", "task", "remove", "1")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err), "other owner")

	assert.Equal(t, "Removed task 1\n", env.mustRun("task", "remove", "1"))
	assert.Contains(t, env.mustRun("plant", "show", "1"), "Tasks:\n  none")

	_, err = env.run("task", "remove", "1")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestImportRejectsDuplicateIDs(t *testing.T) {
	env := newCLIEnv(t)
	path := filepath.Join(t.TempDir(), "garden.yaml")
	doc := `
plants:
  - id: 5
    name: A
    type: Basil
    planted: 2024-09-01
    watering_frequency_days: 4
  - id: 5
    name: B
    type: Basil
    planted: 2024-09-01
    watering_frequency_days: 4
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	out, err := env.run("--format", "json", "import", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	resp := decodeResponse(t, out, nil)
	assert.Contains(t, resp.Error.Message, garden.ErrDuplicatePlantID)
	assert.Contains(t, resp.Error.Message, "plants[1].id")
	assert.Equal(t, "No plants.\n", env.mustRun("plant", "list"), "nothing imported")
}

func TestImportIsAllOrNothing(t *testing.T) {
	env := newCLIEnv(t)
	env.addBasil("Existing", "4")

	path := filepath.Join(t.TempDir(), "garden.yaml")
	doc := `
plants:
  - name: New
    type: Basil
    planted: 2024-09-01
    watering_frequency_days: 4
  - id: 1
    name: Clash
    type: Basil
    planted: 2024-09-01
    watering_frequency_days: 4
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	_, err := env.run("import", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var list struct {
		Plants []garden.Plant `json:"plants"`
	}
	decodeResponse(t, env.mustRun("--format", "json", "plant", "list"), &list)
	require.Len(t, list.Plants, 1, "first record of the failed import is rolled back")
	assert.Equal(t, "Existing", list.Plants[0].Name)
}

func TestImportLogsImplyWateringHistory(t *testing.T) {
	env := newCLIEnv(t)
	path := filepath.Join(t.TempDir(), "garden.yaml")
	doc := `
plants:
  - name: Mint
    type: Basil
    planted: 2024-09-01
    watering_frequency_days: 4
    watering_logs:
      - date: 2024-10-14T08:00:00Z
    care_tasks: []
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
	env.mustRun("import", path)

	assert.Contains(t, env.mustRun("plant", "list"), "last watered 2024-10-14")
	assert.NotContains(t, env.mustRun("suggest", "1"), "No Watering History")
}
