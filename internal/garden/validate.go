package garden

import (
	"fmt"
	"strings"
	"time"
)

// Validation error codes (E200-E299)
const (
	ErrNameRequired         = "E201" // plant name is required
	ErrFrequencyNotPositive = "E202" // watering frequency must be > 0
	ErrLastWateredInFuture  = "E203" // last watered date after now
	ErrPlantedInFuture      = "E204" // planted date after now
	ErrLogInFuture          = "E205" // watering log date after now
	ErrTaskNameRequired     = "E206" // care task name is required
	ErrDuplicatePlantID     = "E207" // explicit plant id repeated in one batch
)

// ValidationError describes one problem with a plant record.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// ValidationErrors is a non-empty list of validation problems.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (errs ValidationErrors) Error() string {
	if len(errs) == 1 {
		return errs[0].Error()
	}
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return fmt.Sprintf("%d validation errors: %s", len(errs), strings.Join(parts, "; "))
}

// Validate checks a plant before it is written. Returns all problems found
// (does not fail-fast). Dates are compared against now; due dates may lie
// in the future, everything else may not.
func Validate(p Plant, now time.Time) []ValidationError {
	var errs []ValidationError

	// E201
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: "name is required and must be non-empty",
			Code:    ErrNameRequired,
		})
	}

	// E202
	if p.WateringFrequencyDays <= 0 {
		errs = append(errs, ValidationError{
			Field:   "watering_frequency_days",
			Message: fmt.Sprintf("must be positive, got %d", p.WateringFrequencyDays),
			Code:    ErrFrequencyNotPositive,
		})
	}

	// E203
	if p.LastWateredDate != nil && p.LastWateredDate.After(now) {
		errs = append(errs, ValidationError{
			Field:   "last_watered_date",
			Message: fmt.Sprintf("%s is in the future", p.LastWateredDate.UTC().Format(time.RFC3339)),
			Code:    ErrLastWateredInFuture,
		})
	}

	// E204
	if p.PlantedDate.After(now) {
		errs = append(errs, ValidationError{
			Field:   "planted_date",
			Message: fmt.Sprintf("%s is in the future", p.PlantedDate.UTC().Format(time.RFC3339)),
			Code:    ErrPlantedInFuture,
		})
	}

	for i, l := range p.WateringLogs.Items() {
		errs = append(errs, validateLog(i, l, now)...)
	}
	for i, t := range p.CareTasks.Items() {
		errs = append(errs, validateTask(i, t)...)
	}

	return errs
}

// ValidateAll validates a batch of plants written together, such as an
// imported document. Fields are prefixed with plants[i]. Besides the
// per-plant checks, an explicit (non-zero) id may appear only once.
func ValidateAll(plants []Plant, now time.Time) []ValidationError {
	var errs []ValidationError
	seen := make(map[int64]int, len(plants))
	for i, p := range plants {
		for _, e := range Validate(p, now) {
			e.Field = fmt.Sprintf("plants[%d].%s", i, e.Field)
			errs = append(errs, e)
		}
		if p.ID == 0 {
			continue
		}
		if first, dup := seen[p.ID]; dup {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("plants[%d].id", i),
				Message: fmt.Sprintf("id %d already used by plants[%d]", p.ID, first),
				Code:    ErrDuplicatePlantID,
			})
			continue
		}
		seen[p.ID] = i
	}
	return errs
}

// ValidateLog checks a single watering log before it is written.
func ValidateLog(l WateringLog, now time.Time) []ValidationError {
	return validateLog(-1, l, now)
}

// ValidateTask checks a single care task before it is written.
func ValidateTask(t CareTask) []ValidationError {
	return validateTask(-1, t)
}

func validateLog(index int, l WateringLog, now time.Time) []ValidationError {
	if !l.WateredDate.After(now) {
		return nil
	}
	return []ValidationError{{
		Field:   indexedField("watering_logs", index, "watered_date"),
		Message: fmt.Sprintf("%s is in the future", l.WateredDate.UTC().Format(time.RFC3339)),
		Code:    ErrLogInFuture,
	}}
}

func validateTask(index int, t CareTask) []ValidationError {
	if strings.TrimSpace(t.TaskName) != "" {
		return nil
	}
	return []ValidationError{{
		Field:   indexedField("care_tasks", index, "task_name"),
		Message: "task name is required and must be non-empty",
		Code:    ErrTaskNameRequired,
	}}
}

func indexedField(list string, index int, field string) string {
	if index < 0 {
		return field
	}
	return fmt.Sprintf("%s[%d].%s", list, index, field)
}
