package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Wassimkraiem/plant-tracker/internal/garden"
)

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const plantColumns = `id, user_id, name, type, description, planted_date,
	watering_frequency_days, last_watered_date`

// CreatePlant inserts p with any loaded watering logs and care tasks in one
// transaction and returns the plant id. A non-zero p.ID is used as given;
// zero lets SQLite assign one.
//
// Log and task ids are always assigned by SQLite. Logs are stored as given;
// they do not move LastWateredDate.
func (s *Store) CreatePlant(ctx context.Context, p garden.Plant) (int64, error) {
	ids, err := s.CreatePlants(ctx, []garden.Plant{p})
	if err != nil {
		return 0, err
	}
	return ids[0], nil
}

// CreatePlants inserts every plant like CreatePlant, all in one
// transaction: either every plant is stored or none is. Returns the ids in
// input order.
func (s *Store) CreatePlants(ctx context.Context, plants []garden.Plant) ([]int64, error) {
	ids := make([]int64, 0, len(plants))
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for i, p := range plants {
			id, err := s.insertPlant(ctx, tx, p)
			if err != nil {
				if len(plants) > 1 {
					return fmt.Errorf("plants[%d]: %w", i, err)
				}
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create plant: %w", err)
	}

	for i, p := range plants {
		s.logger.Debug("plant created", "plant_id", ids[i], "user_id", p.UserID, "type", p.Type)
	}
	return ids, nil
}

func (s *Store) insertPlant(ctx context.Context, tx *sql.Tx, p garden.Plant) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO plants
		(id, user_id, name, type, description, planted_date,
		 watering_frequency_days, last_watered_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		nullableID(p.ID),
		p.UserID,
		p.Name,
		p.Type,
		p.Description,
		formatTime(p.PlantedDate),
		p.WateringFrequencyDays,
		formatNullTime(p.LastWateredDate),
		formatTime(s.now()),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, l := range p.WateringLogs.Items() {
		l.ID, l.PlantID = 0, id
		if _, err := insertLog(ctx, tx, l); err != nil {
			return 0, err
		}
	}
	for _, t := range p.CareTasks.Items() {
		t.ID, t.PlantID = 0, id
		if _, err := insertTask(ctx, tx, t); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// UpdatePlant overwrites the plant's own fields (name, type, description,
// planted date, watering frequency, last watered date) with p's. Logs and
// tasks are left alone. Returns ErrNotFound if p.ID does not exist or
// belongs to a user other than p.UserID.
func (s *Store) UpdatePlant(ctx context.Context, p garden.Plant) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE plants
		SET name = ?, type = ?, description = ?, planted_date = ?,
		    watering_frequency_days = ?, last_watered_date = ?
		WHERE id = ? AND user_id = ?
	`,
		p.Name,
		p.Type,
		p.Description,
		formatTime(p.PlantedDate),
		p.WateringFrequencyDays,
		formatNullTime(p.LastWateredDate),
		p.ID,
		p.UserID,
	)
	if err != nil {
		return fmt.Errorf("update plant %d: %w", p.ID, err)
	}
	if err := expectOneRow(res); err != nil {
		return fmt.Errorf("plant %d: %w", p.ID, err)
	}

	s.logger.Debug("plant updated", "plant_id", p.ID, "user_id", p.UserID)
	return nil
}

// GetPlant returns one plant with its logs and tasks loaded.
// Returns ErrNotFound if the plant does not exist or belongs to another user.
func (s *Store) GetPlant(ctx context.Context, userID, plantID int64) (garden.Plant, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+plantColumns+`
		FROM plants
		WHERE id = ? AND user_id = ?
	`, plantID, userID)

	p, err := scanPlant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return garden.Plant{}, fmt.Errorf("plant %d: %w", plantID, ErrNotFound)
	}
	if err != nil {
		return garden.Plant{}, fmt.Errorf("get plant %d: %w", plantID, err)
	}

	plants := []garden.Plant{p}
	if err := s.attachRecords(ctx, plants); err != nil {
		return garden.Plant{}, fmt.Errorf("get plant %d: %w", plantID, err)
	}
	return plants[0], nil
}

// ListPlants returns every plant owned by userID in id order, with logs and
// tasks loaded. Returns an empty slice (not nil) when the user has none.
func (s *Store) ListPlants(ctx context.Context, userID int64) ([]garden.Plant, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+plantColumns+`
		FROM plants
		WHERE user_id = ?
		ORDER BY id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query plants: %w", err)
	}
	defer rows.Close()

	plants := []garden.Plant{}
	for rows.Next() {
		p, err := scanPlant(rows)
		if err != nil {
			return nil, err
		}
		plants = append(plants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plants: %w", err)
	}
	rows.Close()

	if err := s.attachRecords(ctx, plants); err != nil {
		return nil, fmt.Errorf("list plants: %w", err)
	}
	return plants, nil
}

// DeletePlant removes a plant and, by cascade, its logs and tasks.
// Returns ErrNotFound if the plant does not exist or belongs to another user.
func (s *Store) DeletePlant(ctx context.Context, userID, plantID int64) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM plants WHERE id = ? AND user_id = ?
	`, plantID, userID)
	if err != nil {
		return fmt.Errorf("delete plant %d: %w", plantID, err)
	}
	if err := expectOneRow(res); err != nil {
		return fmt.Errorf("plant %d: %w", plantID, err)
	}

	s.logger.Debug("plant deleted", "plant_id", plantID, "user_id", userID)
	return nil
}

// attachRecords loads logs and tasks for plants in two queries and sets
// both collections as loaded on every plant.
func (s *Store) attachRecords(ctx context.Context, plants []garden.Plant) error {
	if len(plants) == 0 {
		return nil
	}

	ids := make([]any, len(plants))
	index := make(map[int64]int, len(plants))
	for i, p := range plants {
		ids[i] = p.ID
		index[p.ID] = i
	}
	in := placeholders(len(ids))

	logs := make(map[int64][]garden.WateringLog, len(plants))
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, plant_id, watered_date, notes
		FROM watering_logs
		WHERE plant_id IN (`+in+`)
		ORDER BY watered_date ASC, id ASC
	`, ids...)
	if err != nil {
		return fmt.Errorf("query watering logs: %w", err)
	}
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			rows.Close()
			return err
		}
		logs[l.PlantID] = append(logs[l.PlantID], l)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterate watering logs: %w", err)
	}
	rows.Close()

	tasks := make(map[int64][]garden.CareTask, len(plants))
	rows, err = s.db.QueryContext(ctx, `
		SELECT id, plant_id, task_name, description, due_date, is_completed
		FROM care_tasks
		WHERE plant_id IN (`+in+`)
		ORDER BY id ASC
	`, ids...)
	if err != nil {
		return fmt.Errorf("query care tasks: %w", err)
	}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			rows.Close()
			return err
		}
		tasks[t.PlantID] = append(tasks[t.PlantID], t)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterate care tasks: %w", err)
	}
	rows.Close()

	for id, i := range index {
		plants[i].WateringLogs = garden.Loaded(logs[id]...)
		plants[i].CareTasks = garden.Loaded(tasks[id]...)
	}
	return nil
}

// ownsPlant returns ErrNotFound unless plantID exists and belongs to userID.
func ownsPlant(ctx context.Context, q querier, userID, plantID int64) error {
	var one int
	err := q.QueryRowContext(ctx, `
		SELECT 1 FROM plants WHERE id = ? AND user_id = ?
	`, plantID, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("plant %d: %w", plantID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("check plant owner: %w", err)
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPlant(sc scanner) (garden.Plant, error) {
	var (
		p           garden.Plant
		planted     string
		lastWatered sql.NullString
	)
	err := sc.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Type,
		&p.Description,
		&planted,
		&p.WateringFrequencyDays,
		&lastWatered,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return garden.Plant{}, err
		}
		return garden.Plant{}, fmt.Errorf("scan plant: %w", err)
	}

	if p.PlantedDate, err = parseTime(planted); err != nil {
		return garden.Plant{}, fmt.Errorf("scan plant %d: %w", p.ID, err)
	}
	if p.LastWateredDate, err = parseNullTime(lastWatered); err != nil {
		return garden.Plant{}, fmt.Errorf("scan plant %d: %w", p.ID, err)
	}
	return p, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
