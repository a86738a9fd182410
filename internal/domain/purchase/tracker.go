// Package purchase tracks which shopping list items were bought, per window
package purchase

import (
	"sort"

	"github.com/alchemorsel/planner/internal/domain/shopping"
)

// Key builds the composite key of an item within a window
func Key(w shopping.Window, item string) string {
	return string(w) + "-" + item
}

// Tracker is the set of purchased composite keys. A key in one window says
// nothing about the same item in another window.
type Tracker struct {
	purchased map[string]struct{}
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{purchased: make(map[string]struct{})}
}

// IsPurchased reports whether item is marked in window
func (t *Tracker) IsPurchased(w shopping.Window, item string) bool {
	_, ok := t.purchased[Key(w, item)]
	return ok
}

// Set marks or unmarks item in window
func (t *Tracker) Set(w shopping.Window, item string, purchased bool) {
	k := Key(w, item)
	if purchased {
		t.purchased[k] = struct{}{}
		return
	}
	delete(t.purchased, k)
}

// Toggle flips item in window immediately and returns the command that
// recorded the change
func (t *Tracker) Toggle(w shopping.Window, item string) *ToggleCommand {
	cmd := &ToggleCommand{Window: w, Item: item, Prior: t.IsPurchased(w, item)}
	t.Set(w, item, !cmd.Prior)
	return cmd
}

// Keys returns the purchased keys in order
func (t *Tracker) Keys() []string {
	keys := make([]string, 0, len(t.purchased))
	for k := range t.purchased {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ToggleCommand is an applied toggle that can be compensated
type ToggleCommand struct {
	Window shopping.Window
	Item   string
	Prior  bool
}

// Purchased is the state the command applied
func (c *ToggleCommand) Purchased() bool {
	return !c.Prior
}

// Undo restores the state captured before the toggle
func (c *ToggleCommand) Undo(t *Tracker) {
	t.Set(c.Window, c.Item, c.Prior)
}

// Summary is the running total of a window's list
type Summary struct {
	Total            float64 `json:"total"`
	UnpurchasedCount int     `json:"unpurchased_count"`
}

// Summarize totals the cost of the items of window that are not purchased
func (t *Tracker) Summarize(w shopping.Window, items []shopping.Item) Summary {
	var s Summary
	for _, it := range items {
		if t.IsPurchased(w, it.Name) {
			continue
		}
		s.Total += it.TotalCost
		s.UnpurchasedCount++
	}
	return s
}
