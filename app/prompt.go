package app

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/Make-USA-LLC/floortrack/internal/models"
	"github.com/Make-USA-LLC/floortrack/internal/timeutil"
)

var errRequired = errors.New("this field is required")

func validateRequired(s string) error {
	if s == "" {
		return errRequired
	}

	return nil
}

func validateNumber(max int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || n > max {
			return fmt.Errorf("enter a number between 0 and %d", max)
		}

		return nil
	}
}

// promptSession collects the job metadata and time budget for a new session.
func promptSession() (hours, minutes int, meta models.ProjectMeta, err error) {
	var hoursStr, minutesStr string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Company").
				Value(&meta.Company).
				Validate(validateRequired),
			huh.NewInput().
				Title("Project").
				Value(&meta.Project).
				Validate(validateRequired),
			huh.NewInput().
				Title("Line leader").
				Value(&meta.Leader).
				Validate(validateRequired),
			huh.NewInput().
				Title("Category").
				Value(&meta.Category),
			huh.NewInput().
				Title("Size").
				Value(&meta.Size),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Budget hours").
				Value(&hoursStr).
				Validate(validateNumber(99)),
			huh.NewInput().
				Title("Budget minutes").
				Value(&minutesStr).
				Validate(validateNumber(59)),
		),
	)

	err = form.Run()
	if err != nil {
		return 0, 0, models.ProjectMeta{}, err
	}

	hours, _ = strconv.Atoi(hoursStr)
	minutes, _ = strconv.Atoi(minutesStr)

	if hours == 0 && minutes == 0 {
		return 0, 0, models.ProjectMeta{}, errors.New("the budget must not be zero")
	}

	return hours, minutes, meta, nil
}

// promptLeader asks for the line leader taking over a claimed session.
func promptLeader() (string, error) {
	var leader string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Line leader for this session").
				Value(&leader).
				Validate(validateRequired),
		),
	)

	err := form.Run()
	if err != nil {
		return "", err
	}

	return leader, nil
}

// promptQueuePick lets the operator choose one of the queued sessions.
func promptQueuePick(items []models.QueueItem) (models.QueueItem, bool) {
	options := make([]huh.Option[int], 0, len(items))

	for i, item := range items {
		label := fmt.Sprintf(
			"%s / %s (%s remaining)",
			item.Meta.Company,
			item.Meta.Project,
			timeutil.FormatSigned(item.Seconds),
		)
		options = append(options, huh.NewOption(label, i))
	}

	var picked int

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Queued sessions").
				Options(options...).
				Value(&picked),
		),
	)

	err := form.Run()
	if err != nil {
		return models.QueueItem{}, false
	}

	return items[picked], true
}

// confirm asks a yes/no question, defaulting to no.
func confirm(title string) bool {
	var yes bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&yes),
		),
	)

	err := form.Run()
	if err != nil {
		return false
	}

	return yes
}
