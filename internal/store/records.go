package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Wassimkraiem/plant-tracker/internal/garden"
)

// AddWateringLog records a watering for a plant owned by userID and returns
// the log id. The plant's last watered date moves to the log's date when the
// log is newer; back-dated logs leave it unchanged.
func (s *Store) AddWateringLog(ctx context.Context, userID int64, l garden.WateringLog) (int64, error) {
	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := ownsPlant(ctx, tx, userID, l.PlantID); err != nil {
			return err
		}

		var err error
		if id, err = insertLog(ctx, tx, l); err != nil {
			return err
		}

		watered := formatTime(l.WateredDate)
		_, err = tx.ExecContext(ctx, `
			UPDATE plants
			SET last_watered_date = ?
			WHERE id = ? AND (last_watered_date IS NULL OR last_watered_date < ?)
		`, watered, l.PlantID, watered)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("add watering log: %w", err)
	}

	s.logger.Debug("watering logged", "plant_id", l.PlantID, "log_id", id)
	return id, nil
}

// AddCareTask attaches a task to a plant owned by userID and returns the
// task id.
func (s *Store) AddCareTask(ctx context.Context, userID int64, t garden.CareTask) (int64, error) {
	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := ownsPlant(ctx, tx, userID, t.PlantID); err != nil {
			return err
		}
		var err error
		id, err = insertTask(ctx, tx, t)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("add care task: %w", err)
	}

	s.logger.Debug("care task added", "plant_id", t.PlantID, "task_id", id)
	return id, nil
}

// SetTaskCompleted marks a task done or open again.
// Returns ErrNotFound if the task does not exist or its plant belongs to
// another user.
func (s *Store) SetTaskCompleted(ctx context.Context, userID, taskID int64, done bool) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE care_tasks
		SET is_completed = ?
		WHERE id = ? AND plant_id IN (SELECT id FROM plants WHERE user_id = ?)
	`, done, taskID, userID)
	if err != nil {
		return fmt.Errorf("set task %d completed: %w", taskID, err)
	}
	if err := expectOneRow(res); err != nil {
		return fmt.Errorf("task %d: %w", taskID, err)
	}

	s.logger.Debug("care task updated", "task_id", taskID, "completed", done)
	return nil
}

// ListWateringLogs returns the watering history of a plant owned by userID,
// newest first.
// Returns ErrNotFound if the plant does not exist or belongs to another
// user.
func (s *Store) ListWateringLogs(ctx context.Context, userID, plantID int64) ([]garden.WateringLog, error) {
	if err := ownsPlant(ctx, s.db, userID, plantID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, plant_id, watered_date, notes
		FROM watering_logs
		WHERE plant_id = ?
		ORDER BY watered_date DESC, id DESC
	`, plantID)
	if err != nil {
		return nil, fmt.Errorf("query watering logs: %w", err)
	}
	defer rows.Close()

	logs := []garden.WateringLog{}
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate watering logs: %w", err)
	}
	return logs, nil
}

// DeleteCareTask removes a task.
// Returns ErrNotFound if the task does not exist or its plant belongs to
// another user.
func (s *Store) DeleteCareTask(ctx context.Context, userID, taskID int64) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM care_tasks
		WHERE id = ? AND plant_id IN (SELECT id FROM plants WHERE user_id = ?)
	`, taskID, userID)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", taskID, err)
	}
	if err := expectOneRow(res); err != nil {
		return fmt.Errorf("task %d: %w", taskID, err)
	}

	s.logger.Debug("care task deleted", "task_id", taskID)
	return nil
}

func insertLog(ctx context.Context, q querier, l garden.WateringLog) (int64, error) {
	res, err := q.ExecContext(ctx, `
		INSERT INTO watering_logs (id, plant_id, watered_date, notes)
		VALUES (?, ?, ?, ?)
	`,
		nullableID(l.ID),
		l.PlantID,
		formatTime(l.WateredDate),
		l.Notes,
	)
	if err != nil {
		return 0, fmt.Errorf("insert watering log: %w", err)
	}
	return res.LastInsertId()
}

func insertTask(ctx context.Context, q querier, t garden.CareTask) (int64, error) {
	res, err := q.ExecContext(ctx, `
		INSERT INTO care_tasks (id, plant_id, task_name, description, due_date, is_completed)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		nullableID(t.ID),
		t.PlantID,
		t.TaskName,
		t.Description,
		formatNullTime(t.DueDate),
		t.IsCompleted,
	)
	if err != nil {
		return 0, fmt.Errorf("insert care task: %w", err)
	}
	return res.LastInsertId()
}

func scanLog(sc scanner) (garden.WateringLog, error) {
	var (
		l       garden.WateringLog
		watered string
	)
	if err := sc.Scan(&l.ID, &l.PlantID, &watered, &l.Notes); err != nil {
		return garden.WateringLog{}, fmt.Errorf("scan watering log: %w", err)
	}
	var err error
	if l.WateredDate, err = parseTime(watered); err != nil {
		return garden.WateringLog{}, fmt.Errorf("scan watering log %d: %w", l.ID, err)
	}
	return l, nil
}

func scanTask(sc scanner) (garden.CareTask, error) {
	var (
		t   garden.CareTask
		due sql.NullString
	)
	if err := sc.Scan(&t.ID, &t.PlantID, &t.TaskName, &t.Description, &due, &t.IsCompleted); err != nil {
		return garden.CareTask{}, fmt.Errorf("scan care task: %w", err)
	}
	var err error
	if t.DueDate, err = parseNullTime(due); err != nil {
		return garden.CareTask{}, fmt.Errorf("scan care task %d: %w", t.ID, err)
	}
	return t, nil
}
