package shopping

import (
	"errors"
	"time"

	"github.com/alchemorsel/planner/internal/domain/inventory"
	"github.com/alchemorsel/planner/internal/domain/mealplan"
)

// ErrUnknownWindow is returned for a window key other than tomorrow, week or month
var ErrUnknownWindow = errors.New("unknown shopping window")

// Window is a forward-looking date range relative to today
type Window string

const (
	Tomorrow Window = "tomorrow"
	Week     Window = "week"
	Month    Window = "month"
)

// Windows lists every window
var Windows = []Window{Tomorrow, Week, Month}

// ParseWindow validates a window key
func ParseWindow(s string) (Window, error) {
	for _, w := range Windows {
		if string(w) == s {
			return w, nil
		}
	}
	return "", ErrUnknownWindow
}

// Range returns the inclusive bounds of the window for the day containing now
func (w Window) Range(now time.Time) (start, end time.Time) {
	today := Midnight(now)
	switch w {
	case Tomorrow:
		day := today.AddDate(0, 0, 1)
		return day, day
	case Week:
		return today, today.AddDate(0, 0, 7)
	case Month:
		return today, today.AddDate(0, 1, 0)
	}
	return today, today
}

// Compute aggregates the plan over the window and builds the priced list
func Compute(plan mealplan.Plan, inv inventory.Inventory, w Window, now time.Time, g Grouping, opts Options) []Item {
	start, end := w.Range(now)
	return BuildList(Aggregate(plan, start, end, g), inv, opts)
}
