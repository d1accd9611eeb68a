package models

import (
	"testing"
	"time"
)

func TestSetWeekly(t *testing.T) {
	cases := []struct {
		name    string
		weekday int
	}{
		{"from empty schedule", 0},
		{"from single day", 1 << 2},
		{"from full week", 0b1111111},
		{"already weekly", WeeklySentinel},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := Habit{Weekday: tc.weekday}
			h.SetWeekly()
			if h.Weekday != WeeklySentinel {
				t.Errorf("SetWeekly left weekday %d, want %d", h.Weekday, WeeklySentinel)
			}
			if !h.IsWeekly() {
				t.Error("IsWeekly false after SetWeekly")
			}
		})
	}
}

func TestIsWeeklyOnlyForSentinel(t *testing.T) {
	for mask := 0; mask <= WeeklySentinel; mask++ {
		h := Habit{Weekday: mask}
		if h.IsWeekly() != (mask == WeeklySentinel) {
			t.Errorf("IsWeekly for mask %d = %v", mask, h.IsWeekly())
		}
	}
}

func TestDueOn(t *testing.T) {
	weekly := Habit{Weekday: WeeklySentinel}
	for w := 0; w < 7; w++ {
		if !weekly.DueOn(w) {
			t.Errorf("weekly habit not due on weekday %d", w)
		}
	}

	daily := Habit{Weekday: (1 << 2) | (1 << 5)} // Wednesday and Saturday
	for w := 0; w < 7; w++ {
		want := w == 2 || w == 5
		if daily.DueOn(w) != want {
			t.Errorf("DueOn(%d) = %v, want %v", w, daily.DueOn(w), want)
		}
	}

	none := Habit{Weekday: 0}
	for w := 0; w < 7; w++ {
		if none.DueOn(w) {
			t.Errorf("unscheduled habit due on weekday %d", w)
		}
	}
}

func TestAddScheduledDay(t *testing.T) {
	cases := []struct {
		name string
		days []string
		want int
	}{
		{"numeric strings", []string{"0", "3"}, (1 << 0) | (1 << 3)},
		{"full names", []string{"Monday", "sunday"}, (1 << 0) | (1 << 6)},
		{"mixed case name", []string{"WEDNESDAY"}, 1 << 2},
		{"unknown name ignored", []string{"Mittwoch", "someday"}, 0},
		{"out of range ignored", []string{"7", "-1"}, 0},
		{"duplicate day", []string{"4", "friday"}, 1 << 4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var h Habit
			for _, d := range tc.days {
				h.AddScheduledDay(d)
			}
			if h.Weekday != tc.want {
				t.Errorf("weekday mask = %d, want %d", h.Weekday, tc.want)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	cases := []struct {
		cond  Condition
		quota int
		value int
		want  EventStatus
	}{
		{ConditionEq, 10, 10, StatusDone},
		{ConditionEq, 10, 9, StatusFailed},
		{ConditionEq, 10, 11, StatusFailed},
		{ConditionLt, 10, 10, StatusDone},
		{ConditionLt, 10, 0, StatusDone},
		{ConditionLt, 10, 11, StatusFailed},
		{ConditionGt, 10, 10, StatusDone},
		{ConditionGt, 10, 500, StatusDone},
		{ConditionGt, 10, 9, StatusFailed},
	}

	for _, tc := range cases {
		h := Habit{Condition: tc.cond, Quota: tc.quota}
		if got := h.Evaluate(tc.value); got != tc.want {
			t.Errorf("Evaluate(%s, quota %d, value %d) = %v, want %v",
				tc.cond, tc.quota, tc.value, got, tc.want)
		}
	}
}

func TestWeekdayIndex(t *testing.T) {
	if WeekdayIndex(time.Monday) != 0 {
		t.Errorf("Monday index = %d, want 0", WeekdayIndex(time.Monday))
	}
	if WeekdayIndex(time.Sunday) != 6 {
		t.Errorf("Sunday index = %d, want 6", WeekdayIndex(time.Sunday))
	}
}

func TestHabitValidate(t *testing.T) {
	h := Habit{Name: "Jogging", Condition: ConditionGt, Quota: 5, Weekday: 1}
	if err := h.Validate(); err != nil {
		t.Errorf("valid habit rejected: %v", err)
	}

	if err := (Habit{}).Validate(); err == nil {
		t.Error("expected error for empty name")
	}

	bad := Habit{Name: "x", Condition: Condition("ne")}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unknown condition")
	}
}

func TestEventStatusString(t *testing.T) {
	if StatusPending.String() != "Pending" || StatusDone.String() != "Done" || StatusFailed.String() != "Failed" {
		t.Error("unexpected status display strings")
	}
}
