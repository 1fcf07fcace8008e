package garden

import "time"

// Plant is a single tracked plant owned by one user.
type Plant struct {
	ID                    int64      `json:"id"`
	UserID                int64      `json:"userId"`
	Name                  string     `json:"name"`
	Type                  string     `json:"type"` // "Tomato", "Cucumber", "Pepper", "Olive Tree", ...
	Description           string     `json:"description,omitempty"`
	PlantedDate           time.Time  `json:"plantedDate"`
	WateringFrequencyDays int        `json:"wateringFrequencyDays"`
	LastWateredDate       *time.Time `json:"lastWateredDate,omitempty"`

	WateringLogs Collection[WateringLog] `json:"wateringLogs"`
	CareTasks    Collection[CareTask]    `json:"careTasks"`
}

// WateringLog records one watering event. Immutable once created.
type WateringLog struct {
	ID          int64     `json:"id"`
	PlantID     int64     `json:"plantId"`
	WateredDate time.Time `json:"wateredDate"`
	Notes       string    `json:"notes,omitempty"`
}

// CareTask is a to-do item attached to a plant.
type CareTask struct {
	ID          int64      `json:"id"`
	PlantID     int64      `json:"plantId"`
	TaskName    string     `json:"taskName"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	IsCompleted bool       `json:"isCompleted"`
}

// HasWateringHistory reports whether the plant has ever been watered.
func (p *Plant) HasWateringHistory() bool {
	return p.LastWateredDate != nil
}

// IsOpen reports whether the task still needs doing and has a due date.
func (t CareTask) IsOpen() bool {
	return !t.IsCompleted && t.DueDate != nil
}

// TimePtr returns a pointer to a copy of t.
func TimePtr(t time.Time) *time.Time {
	return &t
}
