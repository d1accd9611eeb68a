package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitkeep/internal/apperr"
	"github.com/julianstephens/habitkeep/internal/models"
)

// promptErr maps huh's user-abort to the application's cancellation error.
func promptErr(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return apperr.ErrAborted
	}
	return err
}

func confirm(title string) (bool, error) {
	var yes bool
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Value(&yes),
	)).Run()
	if err != nil {
		return false, promptErr(err)
	}
	return yes, nil
}

func askInt(title, description string) (int, error) {
	var raw string
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			Description(description).
			Value(&raw).
			Validate(func(s string) error {
				n, err := strconv.Atoi(strings.TrimSpace(s))
				if err != nil || n < 0 {
					return fmt.Errorf("enter a whole number")
				}
				return nil
			}),
	)).Run()
	if err != nil {
		return 0, promptErr(err)
	}

	return strconv.Atoi(strings.TrimSpace(raw))
}

// parseScheduleList splits a comma-separated weekday list ("0,2,5" or
// "Monday, Wednesday") and reports the entries it could not resolve.
func parseScheduleList(input string) (days []string, bad []string) {
	for _, token := range strings.Split(input, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if n, err := strconv.Atoi(token); err == nil && n >= 0 && n <= 6 {
			days = append(days, token)
			continue
		}
		if _, ok := models.WeekdayByName(token); ok {
			days = append(days, token)
			continue
		}
		bad = append(bad, token)
	}
	return days, bad
}
