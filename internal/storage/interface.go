package storage

import "github.com/julianstephens/habitkeep/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Habits
	SaveHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetAllHabits() ([]models.Habit, error)
	DeleteHabit(id string) error

	// Events, ordered by solved date where a sequence is returned
	SaveEvent(models.HabitEvent) error
	GetEvent(id string) (models.HabitEvent, error)
	EventsForHabit(habitID string) ([]models.HabitEvent, error)
	AllEvents() ([]models.HabitEvent, error)
	EventOnDay(habitID, day string) (models.HabitEvent, error)
	EventsInRange(habitID, from, to string) ([]models.HabitEvent, error)
	PendingEvents(habitID string) ([]models.HabitEvent, error)

	// Categories
	SaveCategory(models.Category) error
	GetCategory(id string) (models.Category, error)
	GetAllCategories() ([]models.Category, error)
	DeleteCategory(id string) error

	// Utils
	GetConfigPath() string
}
