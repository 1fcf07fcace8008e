package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wassimkraiem/plant-tracker/internal/garden"
)

func TestAddWateringLog_AdvancesLastWatered(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	id, err := s.CreatePlant(ctx, createTestPlant(1, "Roma"))
	require.NoError(t, err)

	recent := testNow.AddDate(0, 0, -1)
	_, err = s.AddWateringLog(ctx, 1, garden.WateringLog{PlantID: id, WateredDate: recent, Notes: "deep soak"})
	require.NoError(t, err)

	got, err := s.GetPlant(ctx, 1, id)
	require.NoError(t, err)
	require.NotNil(t, got.LastWateredDate)
	assert.Equal(t, recent, *got.LastWateredDate)

	// A back-dated log is recorded but does not move last watered backwards.
	_, err = s.AddWateringLog(ctx, 1, garden.WateringLog{PlantID: id, WateredDate: testNow.AddDate(0, 0, -10)})
	require.NoError(t, err)

	got, err = s.GetPlant(ctx, 1, id)
	require.NoError(t, err)
	assert.Equal(t, recent, *got.LastWateredDate)
	assert.Equal(t, 2, got.WateringLogs.Len())
	assert.Equal(t, "deep soak", got.WateringLogs.Items()[1].Notes)
}

func TestAddWateringLog_OtherOwner(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	id, err := s.CreatePlant(ctx, createTestPlant(1, "Roma"))
	require.NoError(t, err)

	_, err = s.AddWateringLog(ctx, 2, garden.WateringLog{PlantID: id, WateredDate: testNow})
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := s.GetPlant(ctx, 1, id)
	require.NoError(t, err)
	assert.True(t, got.WateringLogs.IsEmpty(), "rejected log must not be written")
	assert.Nil(t, got.LastWateredDate)
}

func TestAddCareTask(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	plantID, err := s.CreatePlant(ctx, createTestPlant(1, "Roma"))
	require.NoError(t, err)

	due := testNow.AddDate(0, 0, 3)
	taskID, err := s.AddCareTask(ctx, 1, garden.CareTask{
		PlantID:     plantID,
		TaskName:    "Fertilize",
		Description: "half strength",
		DueDate:     &due,
	})
	require.NoError(t, err)
	assert.Positive(t, taskID)

	got, err := s.GetPlant(ctx, 1, plantID)
	require.NoError(t, err)
	tasks := got.CareTasks.Items()
	require.Len(t, tasks, 1)
	assert.Equal(t, garden.CareTask{
		ID:          taskID,
		PlantID:     plantID,
		TaskName:    "Fertilize",
		Description: "half strength",
		DueDate:     &due,
	}, tasks[0])
}

func TestAddCareTask_MissingPlant(t *testing.T) {
	s := createTestStore(t)

	_, err := s.AddCareTask(context.Background(), 1, garden.CareTask{PlantID: 5, TaskName: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetTaskCompleted(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	plantID, err := s.CreatePlant(ctx, createTestPlant(1, "Roma"))
	require.NoError(t, err)
	taskID, err := s.AddCareTask(ctx, 1, garden.CareTask{PlantID: plantID, TaskName: "Prune"})
	require.NoError(t, err)

	require.NoError(t, s.SetTaskCompleted(ctx, 1, taskID, true))
	got, err := s.GetPlant(ctx, 1, plantID)
	require.NoError(t, err)
	assert.True(t, got.CareTasks.Items()[0].IsCompleted)

	require.NoError(t, s.SetTaskCompleted(ctx, 1, taskID, false))
	got, err = s.GetPlant(ctx, 1, plantID)
	require.NoError(t, err)
	assert.False(t, got.CareTasks.Items()[0].IsCompleted)
}

func TestSetTaskCompleted_NotFound(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	plantID, err := s.CreatePlant(ctx, createTestPlant(1, "Roma"))
	require.NoError(t, err)
	taskID, err := s.AddCareTask(ctx, 1, garden.CareTask{PlantID: plantID, TaskName: "Prune"})
	require.NoError(t, err)

	assert.ErrorIs(t, s.SetTaskCompleted(ctx, 2, taskID, true), ErrNotFound, "other owner")
	assert.ErrorIs(t, s.SetTaskCompleted(ctx, 1, taskID+1, true), ErrNotFound, "missing task")
}

func TestListWateringLogs_NewestFirst(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	id, err := s.CreatePlant(ctx, createTestPlant(1, "Roma"))
	require.NoError(t, err)
	for _, days := range []int{-5, -1, -3} {
		_, err := s.AddWateringLog(ctx, 1, garden.WateringLog{PlantID: id, WateredDate: testNow.AddDate(0, 0, days)})
		require.NoError(t, err)
	}

	logs, err := s.ListWateringLogs(ctx, 1, id)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, testNow.AddDate(0, 0, -1), logs[0].WateredDate)
	assert.Equal(t, testNow.AddDate(0, 0, -3), logs[1].WateredDate)
	assert.Equal(t, testNow.AddDate(0, 0, -5), logs[2].WateredDate)
}

func TestListWateringLogs_Empty(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	id, err := s.CreatePlant(ctx, createTestPlant(1, "Roma"))
	require.NoError(t, err)

	logs, err := s.ListWateringLogs(ctx, 1, id)
	require.NoError(t, err)
	assert.NotNil(t, logs)
	assert.Empty(t, logs)
}

func TestListWateringLogs_OtherOwner(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	id, err := s.CreatePlant(ctx, createTestPlant(1, "Roma"))
	require.NoError(t, err)

	_, err = s.ListWateringLogs(ctx, 2, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCareTask(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	plantID, err := s.CreatePlant(ctx, createTestPlant(1, "Roma"))
	require.NoError(t, err)
	keep, err := s.AddCareTask(ctx, 1, garden.CareTask{PlantID: plantID, TaskName: "Prune"})
	require.NoError(t, err)
	drop, err := s.AddCareTask(ctx, 1, garden.CareTask{PlantID: plantID, TaskName: "Stake"})
	require.NoError(t, err)

	assert.ErrorIs(t, s.DeleteCareTask(ctx, 2, drop), ErrNotFound, "other owner")
	require.NoError(t, s.DeleteCareTask(ctx, 1, drop))
	assert.ErrorIs(t, s.DeleteCareTask(ctx, 1, drop), ErrNotFound, "already deleted")

	got, err := s.GetPlant(ctx, 1, plantID)
	require.NoError(t, err)
	require.Equal(t, 1, got.CareTasks.Len())
	assert.Equal(t, keep, got.CareTasks.Items()[0].ID)
}
