package garden

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Document is a YAML description of a garden, used by the import command
// and by harness scenarios.
//
//	plants:
//	  - id: 1
//	    name: Roma
//	    type: Tomato
//	    planted: 2024-05-01
//	    watering_frequency_days: 3
//	    last_watered: 2024-06-01T08:00:00Z
//	    watering_logs:
//	      - date: 2024-06-01T08:00:00Z
//	    care_tasks:
//	      - name: Fertilize
//	        due: 2024-06-03
//
// Omitting watering_logs or care_tasks leaves the collection unloaded;
// an explicit [] loads it empty.
type Document struct {
	Plants []PlantRecord `yaml:"plants"`
}

// PlantRecord is the YAML form of a Plant.
type PlantRecord struct {
	ID                    int64         `yaml:"id,omitempty"`
	Name                  string        `yaml:"name"`
	Type                  string        `yaml:"type"`
	Description           string        `yaml:"description,omitempty"`
	Planted               time.Time     `yaml:"planted"`
	WateringFrequencyDays int           `yaml:"watering_frequency_days"`
	LastWatered           *time.Time    `yaml:"last_watered,omitempty"`
	WateringLogs          *[]LogRecord  `yaml:"watering_logs,omitempty"`
	CareTasks             *[]TaskRecord `yaml:"care_tasks,omitempty"`
}

// LogRecord is the YAML form of a WateringLog.
type LogRecord struct {
	Date  time.Time `yaml:"date"`
	Notes string    `yaml:"notes,omitempty"`
}

// TaskRecord is the YAML form of a CareTask.
type TaskRecord struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Due         *time.Time `yaml:"due,omitempty"`
	Completed   bool       `yaml:"completed,omitempty"`
}

// LoadDocument reads and parses a garden document from a YAML file.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read garden file: %w", err)
	}
	return ParseDocument(data)
}

// ParseDocument parses a garden document, rejecting unknown fields.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &doc, nil
}

// ToPlant converts the record to a Plant owned by userID.
// Dates are normalized to UTC. LastWateredDate is the later of last_watered
// and the newest watering log, so a record with logs is never unwatered.
func (r PlantRecord) ToPlant(userID int64) Plant {
	p := Plant{
		ID:                    r.ID,
		UserID:                userID,
		Name:                  r.Name,
		Type:                  r.Type,
		Description:           r.Description,
		PlantedDate:           r.Planted.UTC(),
		WateringFrequencyDays: r.WateringFrequencyDays,
	}
	if r.LastWatered != nil {
		p.LastWateredDate = TimePtr(r.LastWatered.UTC())
	}

	if r.WateringLogs != nil {
		logs := make([]WateringLog, len(*r.WateringLogs))
		for i, l := range *r.WateringLogs {
			logs[i] = WateringLog{PlantID: r.ID, WateredDate: l.Date.UTC(), Notes: l.Notes}
			if p.LastWateredDate == nil || logs[i].WateredDate.After(*p.LastWateredDate) {
				p.LastWateredDate = TimePtr(logs[i].WateredDate)
			}
		}
		p.WateringLogs = Loaded(logs...)
	}

	if r.CareTasks != nil {
		tasks := make([]CareTask, len(*r.CareTasks))
		for i, t := range *r.CareTasks {
			task := CareTask{
				PlantID:     r.ID,
				TaskName:    t.Name,
				Description: t.Description,
				IsCompleted: t.Completed,
			}
			if t.Due != nil {
				task.DueDate = TimePtr(t.Due.UTC())
			}
			tasks[i] = task
		}
		p.CareTasks = Loaded(tasks...)
	}

	return p
}

// ToPlants converts every record in the document.
func (d *Document) ToPlants(userID int64) []Plant {
	plants := make([]Plant, len(d.Plants))
	for i, r := range d.Plants {
		plants[i] = r.ToPlant(userID)
	}
	return plants
}
