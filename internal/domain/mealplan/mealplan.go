// Package mealplan models recipes scheduled on calendar days
package mealplan

import (
	"errors"
	"sort"
	"time"

	"github.com/alchemorsel/planner/internal/domain/recipe"
	"github.com/google/uuid"
)

// DateLayout is the format of plan date keys
const DateLayout = "2006-01-02"

var (
	ErrInvalidSlot          = errors.New("unknown meal slot")
	ErrInvalidDate          = errors.New("date must be formatted as YYYY-MM-DD")
	ErrAdditionalOutOfRange = errors.New("additional item index out of range")
)

// Slot is one of the four named meals of a day
type Slot string

const (
	Breakfast Slot = "breakfast"
	Lunch     Slot = "lunch"
	Dinner    Slot = "dinner"
	Extra     Slot = "extra"
)

// Slots lists the named slots in visiting order
var Slots = []Slot{Breakfast, Lunch, Dinner, Extra}

// ParseSlot validates a slot name
func ParseSlot(s string) (Slot, error) {
	for _, slot := range Slots {
		if string(slot) == s {
			return slot, nil
		}
	}
	return "", ErrInvalidSlot
}

// DateKey formats t as a plan key in t's location
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDateKey parses a plan key as local midnight
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, key, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// Day holds the recipes planned for one date
type Day struct {
	Date       string
	Breakfast  *recipe.Recipe
	Lunch      *recipe.Recipe
	Dinner     *recipe.Recipe
	Extra      *recipe.Recipe
	Additional []recipe.Recipe
}

// Get returns the recipe in slot
func (d *Day) Get(slot Slot) *recipe.Recipe {
	switch slot {
	case Breakfast:
		return d.Breakfast
	case Lunch:
		return d.Lunch
	case Dinner:
		return d.Dinner
	case Extra:
		return d.Extra
	}
	return nil
}

func (d *Day) set(slot Slot, r *recipe.Recipe) {
	switch slot {
	case Breakfast:
		d.Breakfast = r
	case Lunch:
		d.Lunch = r
	case Dinner:
		d.Dinner = r
	case Extra:
		d.Extra = r
	}
}

// IsEmpty reports whether no slot is filled and no additional item exists
func (d *Day) IsEmpty() bool {
	for _, slot := range Slots {
		if d.Get(slot) != nil {
			return false
		}
	}
	return len(d.Additional) == 0
}

// Recipes flattens the day in breakfast, lunch, dinner, extra, additional order
func (d *Day) Recipes() []recipe.Recipe {
	var out []recipe.Recipe
	for _, slot := range Slots {
		if r := d.Get(slot); r != nil {
			out = append(out, *r)
		}
	}
	return append(out, d.Additional...)
}

// Plan maps date keys to days. Empty days are never kept.
type Plan map[string]*Day

// New creates an empty plan
func New() Plan {
	return make(Plan)
}

func (p Plan) day(date string) (*Day, error) {
	if _, err := ParseDateKey(date); err != nil {
		return nil, err
	}
	d, ok := p[date]
	if !ok {
		d = &Day{Date: date}
		p[date] = d
	}
	return d, nil
}

// Assign places r in slot on date, replacing what was there
func (p Plan) Assign(date string, slot Slot, r recipe.Recipe) error {
	if _, err := ParseSlot(string(slot)); err != nil {
		return err
	}
	d, err := p.day(date)
	if err != nil {
		return err
	}
	d.set(slot, &r)
	return nil
}

// Clear empties slot on date and prunes the day when nothing is left
func (p Plan) Clear(date string, slot Slot) error {
	if _, err := ParseSlot(string(slot)); err != nil {
		return err
	}
	d, ok := p[date]
	if !ok {
		return nil
	}
	d.set(slot, nil)
	p.pruneDay(date)
	return nil
}

// AddAdditional appends r to the additional items of date
func (p Plan) AddAdditional(date string, r recipe.Recipe) error {
	d, err := p.day(date)
	if err != nil {
		return err
	}
	d.Additional = append(d.Additional, r)
	return nil
}

// RemoveAdditional drops the additional item at index and prunes the day
func (p Plan) RemoveAdditional(date string, index int) error {
	d, ok := p[date]
	if !ok || index < 0 || index >= len(d.Additional) {
		return ErrAdditionalOutOfRange
	}
	d.Additional = append(d.Additional[:index:index], d.Additional[index+1:]...)
	p.pruneDay(date)
	return nil
}

// Delete removes date entirely
func (p Plan) Delete(date string) {
	delete(p, date)
}

// Prune removes every empty day
func (p Plan) Prune() {
	for date := range p {
		p.pruneDay(date)
	}
}

func (p Plan) pruneDay(date string) {
	if d, ok := p[date]; ok && d.IsEmpty() {
		delete(p, date)
	}
}

// Dates returns the plan keys in ascending order
func (p Plan) Dates() []string {
	dates := make([]string, 0, len(p))
	for k := range p {
		dates = append(dates, k)
	}
	sort.Strings(dates)
	return dates
}

// RecipeIDs returns the distinct recipe IDs referenced by the plan
func (p Plan) RecipeIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, date := range p.Dates() {
		for _, r := range p[date].Recipes() {
			if _, ok := seen[r.ID]; ok {
				continue
			}
			seen[r.ID] = struct{}{}
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// Map returns a copy of the plan with fn applied to every scheduled recipe
func (p Plan) Map(fn func(recipe.Recipe) recipe.Recipe) Plan {
	out := make(Plan, len(p))
	for date, d := range p {
		cp := &Day{Date: d.Date}
		for _, slot := range Slots {
			if r := d.Get(slot); r != nil {
				mapped := fn(*r)
				cp.set(slot, &mapped)
			}
		}
		for _, r := range d.Additional {
			cp.Additional = append(cp.Additional, fn(r))
		}
		out[date] = cp
	}
	return out
}
