package models

// EventStatus is the resolution state of a single habit occurrence.
type EventStatus int

const (
	StatusPending EventStatus = 0
	StatusDone    EventStatus = 1
	StatusFailed  EventStatus = 2
)

func (s EventStatus) String() string {
	switch s {
	case StatusDone:
		return "Done"
	case StatusFailed:
		return "Failed"
	}
	return "Pending"
}

// HabitEvent represents one dated occurrence record of a habit
type HabitEvent struct {
	ID      string      `json:"id"`
	HabitID string      `json:"habit_id"`
	Created string      `json:"created"` // YYYY-MM-DD format
	Solved  string      `json:"solved"`  // YYYY-MM-DD, the date this occurrence belongs to
	Weekday int         `json:"weekday"` // Monday-based weekday of Solved
	Status  EventStatus `json:"status"`
	Quota   int         `json:"quota"`
}

// Resolve records the outcome of this occurrence.
func (e *HabitEvent) Resolve(status EventStatus, quota int) {
	e.Status = status
	e.Quota = quota
}

// Reset returns the event to the pending state so it can be checked off again.
func (e *HabitEvent) Reset() {
	e.Status = StatusPending
	e.Quota = 0
}
