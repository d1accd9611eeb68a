package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/julianstephens/habitkeep/internal/apperr"
	"github.com/julianstephens/habitkeep/internal/models"
)

type Store struct {
	Version    int                          `json:"version"`
	Habits     map[string]models.Habit      `json:"habits"`
	Events     map[string]models.HabitEvent `json:"events"`
	Categories map[string]models.Category   `json:"categories"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version:    1,
		Habits:     make(map[string]models.Habit),
		Events:     make(map[string]models.HabitEvent),
		Categories: make(map[string]models.Category),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'habitkeep init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure maps are initialized
	if s.store.Habits == nil {
		s.store.Habits = make(map[string]models.Habit)
	}
	if s.store.Events == nil {
		s.store.Events = make(map[string]models.HabitEvent)
	}
	if s.store.Categories == nil {
		s.store.Categories = make(map[string]models.Category)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) SaveHabit(habit models.Habit) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Habits[habit.ID] = habit
	return s.save()
}

func (s *JSONStore) GetHabit(id string) (models.Habit, error) {
	if s.store == nil {
		return models.Habit{}, fmt.Errorf("storage not loaded")
	}

	habit, ok := s.store.Habits[id]
	if !ok {
		return models.Habit{}, fmt.Errorf("habit %s: %w", id, apperr.ErrNotFound)
	}

	return habit, nil
}

func (s *JSONStore) GetAllHabits() ([]models.Habit, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	habits := make([]models.Habit, 0, len(s.store.Habits))
	for _, habit := range s.store.Habits {
		habits = append(habits, habit)
	}
	sort.Slice(habits, func(i, j int) bool {
		if habits[i].Created != habits[j].Created {
			return habits[i].Created < habits[j].Created
		}
		return habits[i].Name < habits[j].Name
	})

	return habits, nil
}

// DeleteHabit removes a habit and all of its events.
func (s *JSONStore) DeleteHabit(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Habits[id]; !ok {
		return fmt.Errorf("habit %s: %w", id, apperr.ErrNotFound)
	}

	delete(s.store.Habits, id)
	for eventID, event := range s.store.Events {
		if event.HabitID == id {
			delete(s.store.Events, eventID)
		}
	}

	return s.save()
}

func (s *JSONStore) SaveEvent(event models.HabitEvent) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Events[event.ID] = event
	return s.save()
}

func (s *JSONStore) GetEvent(id string) (models.HabitEvent, error) {
	if s.store == nil {
		return models.HabitEvent{}, fmt.Errorf("storage not loaded")
	}

	event, ok := s.store.Events[id]
	if !ok {
		return models.HabitEvent{}, fmt.Errorf("event %s: %w", id, apperr.ErrNotFound)
	}

	return event, nil
}

func (s *JSONStore) EventsForHabit(habitID string) ([]models.HabitEvent, error) {
	return s.filterEvents(func(e models.HabitEvent) bool {
		return e.HabitID == habitID
	})
}

func (s *JSONStore) AllEvents() ([]models.HabitEvent, error) {
	return s.filterEvents(func(models.HabitEvent) bool { return true })
}

func (s *JSONStore) EventOnDay(habitID, day string) (models.HabitEvent, error) {
	if s.store == nil {
		return models.HabitEvent{}, fmt.Errorf("storage not loaded")
	}

	for _, event := range s.store.Events {
		if event.HabitID == habitID && event.Solved == day {
			return event, nil
		}
	}

	return models.HabitEvent{}, fmt.Errorf("event for habit %s on %s: %w", habitID, day, apperr.ErrNotFound)
}

func (s *JSONStore) EventsInRange(habitID, from, to string) ([]models.HabitEvent, error) {
	return s.filterEvents(func(e models.HabitEvent) bool {
		return e.HabitID == habitID && e.Solved >= from && e.Solved <= to
	})
}

func (s *JSONStore) PendingEvents(habitID string) ([]models.HabitEvent, error) {
	return s.filterEvents(func(e models.HabitEvent) bool {
		return e.HabitID == habitID && e.Status == models.StatusPending
	})
}

// filterEvents returns matching events ordered by solved date. ISO dates sort
// correctly as strings, ties fall back to the event id for stable output.
func (s *JSONStore) filterEvents(keep func(models.HabitEvent) bool) ([]models.HabitEvent, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var events []models.HabitEvent
	for _, event := range s.store.Events {
		if keep(event) {
			events = append(events, event)
		}
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].Solved != events[j].Solved {
			return events[i].Solved < events[j].Solved
		}
		return events[i].ID < events[j].ID
	})

	return events, nil
}

func (s *JSONStore) SaveCategory(cat models.Category) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Categories[cat.ID] = cat
	return s.save()
}

func (s *JSONStore) GetCategory(id string) (models.Category, error) {
	if s.store == nil {
		return models.Category{}, fmt.Errorf("storage not loaded")
	}

	cat, ok := s.store.Categories[id]
	if !ok {
		return models.Category{}, fmt.Errorf("category %s: %w", id, apperr.ErrNotFound)
	}

	return cat, nil
}

func (s *JSONStore) GetAllCategories() ([]models.Category, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	cats := make([]models.Category, 0, len(s.store.Categories))
	for _, cat := range s.store.Categories {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].Name < cats[j].Name })

	return cats, nil
}

func (s *JSONStore) DeleteCategory(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Categories[id]; !ok {
		return fmt.Errorf("category %s: %w", id, apperr.ErrNotFound)
	}

	delete(s.store.Categories, id)
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
