// Package inventory models the user's on-hand ingredients
package inventory

import (
	"errors"
	"sort"

	"github.com/alchemorsel/planner/internal/domain/recipe"
)

var (
	ErrNameRequired     = errors.New("ingredient name is required")
	ErrNegativeQuantity = errors.New("quantity cannot be negative")
	ErrNegativePrice    = errors.New("price cannot be negative")
)

// Defaults applied when an ingredient is toggled on without explicit values
const (
	DefaultPieceQuantity = 1
	DefaultBulkQuantity  = 100
	DefaultUnitPrice     = 50
	PieceUnit            = "шт"
)

// Entry is the on-hand state of one ingredient
type Entry struct {
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Inventory maps an exact, case-sensitive ingredient name to its entry.
// A name with zero quantity is never stored.
type Inventory map[string]Entry

// New creates an empty inventory
func New() Inventory {
	return make(Inventory)
}

// Get returns the entry for name
func (inv Inventory) Get(name string) (Entry, bool) {
	e, ok := inv[name]
	return e, ok
}

// Quantity returns the on-hand quantity, 0 when absent
func (inv Inventory) Quantity(name string) float64 {
	return inv[name].Quantity
}

// Upsert sets the entry for name. A zero quantity removes the entry and
// reports false.
func (inv Inventory) Upsert(name string, quantity, unitPrice float64) (bool, error) {
	if name == "" {
		return false, ErrNameRequired
	}
	if quantity < 0 {
		return false, ErrNegativeQuantity
	}
	if unitPrice < 0 {
		return false, ErrNegativePrice
	}
	if quantity == 0 {
		delete(inv, name)
		return false, nil
	}
	inv[name] = Entry{Quantity: quantity, UnitPrice: unitPrice}
	return true, nil
}

// Remove deletes the entry for name
func (inv Inventory) Remove(name string) {
	delete(inv, name)
}

// Adjust adds delta to the quantity of an existing entry, clamping at 0.
// Reaching 0 removes the entry. Adjusting an absent name is a no-op.
func (inv Inventory) Adjust(name string, delta float64) (Entry, bool) {
	e, ok := inv[name]
	if !ok {
		return Entry{}, false
	}
	e.Quantity += delta
	if e.Quantity <= 0 {
		delete(inv, name)
		return Entry{}, false
	}
	inv[name] = e
	return e, true
}

// SetPrice updates the unit price of an existing entry, clamping at 0
func (inv Inventory) SetPrice(name string, price float64) (Entry, bool) {
	e, ok := inv[name]
	if !ok {
		return Entry{}, false
	}
	if price < 0 {
		price = 0
	}
	e.UnitPrice = price
	inv[name] = e
	return e, true
}

// Toggle removes name when present, otherwise adds it with a default
// quantity for unit and the default price. It reports whether the
// ingredient is present afterwards.
func (inv Inventory) Toggle(name, unit string) (Entry, bool, error) {
	if name == "" {
		return Entry{}, false, ErrNameRequired
	}
	if _, ok := inv[name]; ok {
		delete(inv, name)
		return Entry{}, false, nil
	}
	e := Entry{Quantity: DefaultQuantity(unit), UnitPrice: DefaultUnitPrice}
	inv[name] = e
	return e, true, nil
}

// DefaultQuantity is the quantity an ingredient starts with when toggled on
func DefaultQuantity(unit string) float64 {
	if unit == PieceUnit {
		return DefaultPieceQuantity
	}
	return DefaultBulkQuantity
}

// Clone returns an independent copy
func (inv Inventory) Clone() Inventory {
	out := make(Inventory, len(inv))
	for k, v := range inv {
		out[k] = v
	}
	return out
}

// Names returns the ingredient names in byte order
func (inv Inventory) Names() []string {
	names := make([]string, 0, len(inv))
	for k := range inv {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// CatalogEntry is one distinct ingredient known from recipes
type CatalogEntry struct {
	Name string `json:"name"`
	Unit string `json:"unit"`
}

// Catalog lists the distinct ingredient names of the loaded recipes with the
// unit of their first occurrence, sorted by name. Recipes without loaded
// ingredients contribute nothing.
func Catalog(recipes []recipe.Recipe) []CatalogEntry {
	seen := make(map[string]struct{})
	var out []CatalogEntry
	for _, r := range recipes {
		list, ok := r.LoadedIngredients()
		if !ok {
			continue
		}
		for _, ing := range list {
			if ing.Name == "" {
				continue
			}
			if _, dup := seen[ing.Name]; dup {
				continue
			}
			seen[ing.Name] = struct{}{}
			out = append(out, CatalogEntry{Name: ing.Name, Unit: ing.Unit})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
