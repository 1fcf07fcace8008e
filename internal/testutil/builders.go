package testutil

import (
	"time"

	"github.com/Wassimkraiem/plant-tracker/internal/garden"
)

// PlantBuilder assembles garden.Plant values for tests. Dates are given
// as whole days relative to a reference instant.
//
// The zero builder state is a plant that was planted at the reference
// instant, waters every 7 days, has never been watered and has no logs
// or tasks loaded.
type PlantBuilder struct {
	now   time.Time
	plant garden.Plant
	logs  []garden.WateringLog
	tasks []garden.CareTask

	logsLoaded  bool
	tasksLoaded bool
}

// NewPlant starts a builder for a plant with the given id relative to now.
func NewPlant(id int64, now time.Time) *PlantBuilder {
	return &PlantBuilder{
		now: now.UTC(),
		plant: garden.Plant{
			ID:                    id,
			UserID:                1,
			Name:                  "Plant",
			Type:                  "Basil",
			PlantedDate:           now.UTC(),
			WateringFrequencyDays: 7,
		},
	}
}

// Named sets the plant name.
func (b *PlantBuilder) Named(name string) *PlantBuilder {
	b.plant.Name = name
	return b
}

// OfType sets the plant type.
func (b *PlantBuilder) OfType(typ string) *PlantBuilder {
	b.plant.Type = typ
	return b
}

// OwnedBy sets the owning user.
func (b *PlantBuilder) OwnedBy(userID int64) *PlantBuilder {
	b.plant.UserID = userID
	return b
}

// PlantedDaysAgo sets the planted date n days before now.
func (b *PlantBuilder) PlantedDaysAgo(n int) *PlantBuilder {
	b.plant.PlantedDate = b.daysAgo(n)
	return b
}

// EveryDays sets the watering frequency.
func (b *PlantBuilder) EveryDays(n int) *PlantBuilder {
	b.plant.WateringFrequencyDays = n
	return b
}

// LastWateredDaysAgo sets the last watered date n days before now.
func (b *PlantBuilder) LastWateredDaysAgo(n int) *PlantBuilder {
	b.plant.LastWateredDate = garden.TimePtr(b.daysAgo(n))
	return b
}

// LastWateredAt sets the last watered date.
func (b *PlantBuilder) LastWateredAt(t time.Time) *PlantBuilder {
	b.plant.LastWateredDate = garden.TimePtr(t.UTC())
	return b
}

// WithLogsDaysAgo marks logs as loaded and adds one log per entry.
// LastWateredDate is left untouched.
func (b *PlantBuilder) WithLogsDaysAgo(days ...int) *PlantBuilder {
	b.logsLoaded = true
	for _, n := range days {
		b.logs = append(b.logs, garden.WateringLog{
			ID:          int64(len(b.logs) + 1),
			PlantID:     b.plant.ID,
			WateredDate: b.daysAgo(n),
		})
	}
	return b
}

// WithTask marks tasks as loaded and adds an open task due n days from now
// (negative n is in the past).
func (b *PlantBuilder) WithTask(name string, dueInDays int) *PlantBuilder {
	return b.addTask(name, garden.TimePtr(b.now.AddDate(0, 0, dueInDays)), false)
}

// WithTaskDueAt adds an open task with an exact due instant.
func (b *PlantBuilder) WithTaskDueAt(name string, due time.Time) *PlantBuilder {
	return b.addTask(name, garden.TimePtr(due.UTC()), false)
}

// WithUndatedTask adds an open task without a due date.
func (b *PlantBuilder) WithUndatedTask(name string) *PlantBuilder {
	return b.addTask(name, nil, false)
}

// WithCompletedTask adds a completed task due n days from now.
func (b *PlantBuilder) WithCompletedTask(name string, dueInDays int) *PlantBuilder {
	return b.addTask(name, garden.TimePtr(b.now.AddDate(0, 0, dueInDays)), true)
}

// WithNoTasks marks tasks as loaded and empty.
func (b *PlantBuilder) WithNoTasks() *PlantBuilder {
	b.tasksLoaded = true
	return b
}

// WithNoLogs marks logs as loaded and empty.
func (b *PlantBuilder) WithNoLogs() *PlantBuilder {
	b.logsLoaded = true
	return b
}

func (b *PlantBuilder) addTask(name string, due *time.Time, done bool) *PlantBuilder {
	b.tasksLoaded = true
	b.tasks = append(b.tasks, garden.CareTask{
		ID:          int64(len(b.tasks) + 1),
		PlantID:     b.plant.ID,
		TaskName:    name,
		DueDate:     due,
		IsCompleted: done,
	})
	return b
}

// Build returns the plant. The builder can be reused.
func (b *PlantBuilder) Build() garden.Plant {
	p := b.plant
	if b.logsLoaded {
		p.WateringLogs = garden.Loaded(b.logs...)
	}
	if b.tasksLoaded {
		p.CareTasks = garden.Loaded(b.tasks...)
	}
	return p
}

func (b *PlantBuilder) daysAgo(n int) time.Time {
	return b.now.AddDate(0, 0, -n)
}
