// Package shopping turns a meal plan and an inventory into priced shopping lists
package shopping

import (
	"time"

	"github.com/alchemorsel/planner/internal/domain/mealplan"
)

// Grouping selects how ingredient lines are merged
type Grouping int

const (
	// GroupByName merges lines by ingredient name and keeps the unit of the
	// first occurrence. Lines with different units are summed as is.
	GroupByName Grouping = iota
	// GroupByNameAndUnit keeps one entry per name and unit pair
	GroupByNameAndUnit
)

// Need is the total required quantity of one ingredient over a date window
type Need struct {
	Name         string
	Unit         string
	Needed       float64
	RecipeTitles []string

	// order of first occurrence within the window
	order int
}

// Aggregated maps a grouping key to its need
type Aggregated map[string]*Need

func groupKey(name, unit string, g Grouping) string {
	if g == GroupByNameAndUnit {
		return name + "\x00" + unit
	}
	return name
}

// Midnight truncates t to the start of its day in t's location
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Aggregate sums the ingredient amounts of every recipe planned between
// start and end inclusive. Days are visited in date order and the slots of
// a day in breakfast, lunch, dinner, extra, additional order. Recipes whose
// ingredients are not loaded are skipped.
func Aggregate(plan mealplan.Plan, start, end time.Time, g Grouping) Aggregated {
	from := mealplan.DateKey(Midnight(start))
	to := mealplan.DateKey(Midnight(end))

	out := make(Aggregated)
	for _, date := range plan.Dates() {
		if _, err := mealplan.ParseDateKey(date); err != nil {
			continue
		}
		if date < from || date > to {
			continue
		}
		for _, r := range plan[date].Recipes() {
			list, ok := r.LoadedIngredients()
			if !ok {
				continue
			}
			for _, ing := range list {
				key := groupKey(ing.Name, ing.Unit, g)
				need, ok := out[key]
				if !ok {
					need = &Need{Name: ing.Name, Unit: ing.Unit, order: len(out)}
					out[key] = need
				}
				need.Needed += ing.Required()
				need.addTitle(r.Title)
			}
		}
	}
	return out
}

func (n *Need) addTitle(title string) {
	for _, t := range n.RecipeTitles {
		if t == title {
			return
		}
	}
	n.RecipeTitles = append(n.RecipeTitles, title)
}
