package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/habitkeep/internal/apperr"
	"github.com/julianstephens/habitkeep/internal/models"
)

// schema is applied on every Init/Load; CREATE TABLE IF NOT EXISTS keeps it
// idempotent for already-initialized databases.
const schema = `
CREATE TABLE IF NOT EXISTS habits (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	enabled       INTEGER NOT NULL DEFAULT 1,
	created       TEXT NOT NULL,
	updated       TEXT NOT NULL,
	condition     TEXT NOT NULL DEFAULT '',
	quota         INTEGER NOT NULL DEFAULT 0,
	unit          TEXT NOT NULL DEFAULT '',
	weekday       INTEGER NOT NULL DEFAULT 0,
	latest_streak INTEGER NOT NULL DEFAULT 0,
	category_id   TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS events (
	id       TEXT PRIMARY KEY,
	habit_id TEXT NOT NULL REFERENCES habits(id),
	created  TEXT NOT NULL,
	solved   TEXT NOT NULL,
	weekday  INTEGER NOT NULL DEFAULT 0,
	status   INTEGER NOT NULL DEFAULT 0,
	quota    INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_events_habit_solved ON events(habit_id, solved);

CREATE TABLE IF NOT EXISTS categories (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);
`

const eventColumns = "id, habit_id, created, solved, weekday, status, quota"

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'habitkeep init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Older databases pick up new tables here
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) SaveHabit(habit models.Habit) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO habits (
			id, name, enabled, created, updated, condition, quota, unit,
			weekday, latest_streak, category_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		habit.ID, habit.Name, habit.Enabled, habit.Created, habit.Updated,
		string(habit.Condition), habit.Quota, habit.Unit, habit.Weekday,
		habit.LatestStreak, habit.CategoryID,
	)
	return err
}

func scanHabit(row interface{ Scan(...any) error }) (models.Habit, error) {
	var h models.Habit
	var condition string
	err := row.Scan(
		&h.ID, &h.Name, &h.Enabled, &h.Created, &h.Updated, &condition,
		&h.Quota, &h.Unit, &h.Weekday, &h.LatestStreak, &h.CategoryID,
	)
	if err != nil {
		return models.Habit{}, err
	}
	h.Condition = models.Condition(condition)
	return h, nil
}

func (s *SQLiteStore) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT id, name, enabled, created, updated, condition, quota, unit,
		       weekday, latest_streak, category_id
		FROM habits WHERE id = ?`, id)

	habit, err := scanHabit(row)
	if err == sql.ErrNoRows {
		return models.Habit{}, fmt.Errorf("habit %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return models.Habit{}, err
	}

	return habit, nil
}

func (s *SQLiteStore) GetAllHabits() ([]models.Habit, error) {
	rows, err := s.db.Query(`
		SELECT id, name, enabled, created, updated, condition, quota, unit,
		       weekday, latest_streak, category_id
		FROM habits ORDER BY created, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		habit, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, habit)
	}

	return habits, rows.Err()
}

// DeleteHabit removes a habit and all of its events in one transaction.
func (s *SQLiteStore) DeleteHabit(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM habits WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("habit %s: %w", id, apperr.ErrNotFound)
	}

	if _, err := tx.Exec("DELETE FROM events WHERE habit_id = ?", id); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) SaveEvent(event models.HabitEvent) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO events (`+eventColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.HabitID, event.Created, event.Solved, event.Weekday,
		int(event.Status), event.Quota,
	)
	return err
}

func scanEvent(row interface{ Scan(...any) error }) (models.HabitEvent, error) {
	var e models.HabitEvent
	var status int
	err := row.Scan(&e.ID, &e.HabitID, &e.Created, &e.Solved, &e.Weekday, &status, &e.Quota)
	if err != nil {
		return models.HabitEvent{}, err
	}
	e.Status = models.EventStatus(status)
	return e, nil
}

func (s *SQLiteStore) GetEvent(id string) (models.HabitEvent, error) {
	row := s.db.QueryRow("SELECT "+eventColumns+" FROM events WHERE id = ?", id)

	event, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return models.HabitEvent{}, fmt.Errorf("event %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return models.HabitEvent{}, err
	}

	return event, nil
}

func (s *SQLiteStore) queryEvents(query string, args ...any) ([]models.HabitEvent, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.HabitEvent
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

func (s *SQLiteStore) EventsForHabit(habitID string) ([]models.HabitEvent, error) {
	return s.queryEvents(
		"SELECT "+eventColumns+" FROM events WHERE habit_id = ? ORDER BY solved, id",
		habitID)
}

func (s *SQLiteStore) AllEvents() ([]models.HabitEvent, error) {
	return s.queryEvents("SELECT " + eventColumns + " FROM events ORDER BY solved, id")
}

func (s *SQLiteStore) EventOnDay(habitID, day string) (models.HabitEvent, error) {
	row := s.db.QueryRow(
		"SELECT "+eventColumns+" FROM events WHERE habit_id = ? AND solved = ? LIMIT 1",
		habitID, day)

	event, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return models.HabitEvent{}, fmt.Errorf("event for habit %s on %s: %w", habitID, day, apperr.ErrNotFound)
	}
	if err != nil {
		return models.HabitEvent{}, err
	}

	return event, nil
}

func (s *SQLiteStore) EventsInRange(habitID, from, to string) ([]models.HabitEvent, error) {
	return s.queryEvents(
		"SELECT "+eventColumns+" FROM events WHERE habit_id = ? AND solved >= ? AND solved <= ? ORDER BY solved, id",
		habitID, from, to)
}

func (s *SQLiteStore) PendingEvents(habitID string) ([]models.HabitEvent, error) {
	return s.queryEvents(
		"SELECT "+eventColumns+" FROM events WHERE habit_id = ? AND status = ? ORDER BY solved, id",
		habitID, int(models.StatusPending))
}

func (s *SQLiteStore) SaveCategory(cat models.Category) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO categories (id, name) VALUES (?, ?)",
		cat.ID, cat.Name,
	)
	return err
}

func (s *SQLiteStore) GetCategory(id string) (models.Category, error) {
	var cat models.Category
	err := s.db.QueryRow("SELECT id, name FROM categories WHERE id = ?", id).
		Scan(&cat.ID, &cat.Name)
	if err == sql.ErrNoRows {
		return models.Category{}, fmt.Errorf("category %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return models.Category{}, err
	}

	return cat, nil
}

func (s *SQLiteStore) GetAllCategories() ([]models.Category, error) {
	rows, err := s.db.Query("SELECT id, name FROM categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []models.Category
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name); err != nil {
			return nil, err
		}
		cats = append(cats, cat)
	}

	return cats, rows.Err()
}

func (s *SQLiteStore) DeleteCategory(id string) error {
	res, err := s.db.Exec("DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("category %s: %w", id, apperr.ErrNotFound)
	}

	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}
