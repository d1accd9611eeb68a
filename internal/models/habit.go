package models

import (
	"fmt"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Condition is the success rule applied to a quantitative habit.
type Condition string

const (
	ConditionNone Condition = ""
	ConditionEq   Condition = "eq"
	ConditionLt   Condition = "lt"
	ConditionGt   Condition = "gt"
)

// WeeklySentinel marks a habit as weekly: due once per ISO week on any day.
// It occupies bit 7 of the weekday mask and is exclusive with the per-day bits.
const WeeklySentinel = 1 << 7

// Habit represents a recurring practice to track
type Habit struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Enabled      bool      `json:"enabled"`
	Created      string    `json:"created"` // YYYY-MM-DD format
	Updated      string    `json:"updated"` // YYYY-MM-DD, reconciliation checkpoint
	Condition    Condition `json:"condition,omitempty"`
	Quota        int       `json:"quota,omitempty"`
	Unit         string    `json:"unit,omitempty"`
	Weekday      int       `json:"weekday"` // bitmask, bit 0 = Monday .. bit 6 = Sunday
	LatestStreak int       `json:"latest_streak"`
	CategoryID   string    `json:"category_id,omitempty"`
}

func (h Habit) Validate() error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.Name, validation.Required, validation.Length(1, 256)),
		validation.Field(&h.Condition, validation.In(ConditionNone, ConditionEq, ConditionGt, ConditionLt)),
		validation.Field(&h.Quota, validation.Min(0)),
		validation.Field(&h.Weekday, validation.Min(0), validation.Max(WeeklySentinel)),
	)
}

// IsWeekly reports whether the habit is due once per week on any day.
func (h *Habit) IsWeekly() bool {
	return h.Weekday == WeeklySentinel
}

// DueOn reports whether the habit is due on the given Monday-based weekday.
// Weekly habits are due on every day of the week.
func (h *Habit) DueOn(weekday int) bool {
	if h.IsWeekly() {
		return true
	}
	return h.Weekday&(1<<weekday) != 0
}

// DueToday reports whether the habit is due on the current local weekday.
func (h *Habit) DueToday() bool {
	return h.DueOn(WeekdayOf(time.Now()))
}

// AddScheduledDay adds one weekday to the schedule. It accepts an index
// (0 = Monday .. 6 = Sunday), a numeric string, or a full English weekday
// name in any case. Anything unrecognized is ignored.
func (h *Habit) AddScheduledDay(day string) {
	if n, err := strconv.Atoi(day); err == nil {
		h.addScheduledIndex(n)
		return
	}
	if n, ok := WeekdayByName(day); ok {
		h.addScheduledIndex(n)
	}
}

func (h *Habit) addScheduledIndex(day int) {
	if day < 0 || day > 6 {
		return
	}
	h.Weekday |= 1 << day
}

// SetWeekly switches the habit to the weekly schedule, clearing any
// per-day bits.
func (h *Habit) SetWeekly() {
	h.Weekday = WeeklySentinel
}

// ResetSchedule clears the schedule entirely.
func (h *Habit) ResetSchedule() {
	h.Weekday = 0
}

// NeedsCondition reports whether check-offs are resolved against a quota
// instead of a plain yes/no.
func (h *Habit) NeedsCondition() bool {
	return h.Condition != ConditionNone
}

// Evaluate resolves an achieved value against the habit's condition.
// eq succeeds on exact match, lt on values up to the quota, gt on values
// from the quota up. Habits without a condition never call this.
func (h *Habit) Evaluate(value int) EventStatus {
	switch h.Condition {
	case ConditionEq:
		if value == h.Quota {
			return StatusDone
		}
	case ConditionLt:
		if value <= h.Quota {
			return StatusDone
		}
	case ConditionGt:
		if value >= h.Quota {
			return StatusDone
		}
	}
	return StatusFailed
}

// SatisfactionText describes the success condition in a sentence.
func (h *Habit) SatisfactionText() string {
	switch h.Condition {
	case ConditionEq:
		return fmt.Sprintf("You need exactly %d %s to succeed at %s.", h.Quota, h.Unit, h.Name)
	case ConditionLt:
		return fmt.Sprintf("You need at most %d %s to succeed at %s.", h.Quota, h.Unit, h.Name)
	case ConditionGt:
		return fmt.Sprintf("You need at least %d %s to succeed at %s.", h.Quota, h.Unit, h.Name)
	}
	return "Just doing it is enough to succeed."
}

// ScheduleText renders the schedule for display, e.g. "Weekly" or
// "Mon Wed Fri".
func (h *Habit) ScheduleText() string {
	if h.IsWeekly() {
		return "Weekly"
	}
	var out string
	for i := 0; i < 7; i++ {
		if h.Weekday&(1<<i) != 0 {
			if out != "" {
				out += " "
			}
			out += WeekdayAbbr(i)
		}
	}
	if out == "" {
		return "Unscheduled"
	}
	return out
}
