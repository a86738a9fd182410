package shopping

import (
	"math"
	"sort"

	"github.com/alchemorsel/planner/internal/domain/inventory"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultUnitPrice is charged for ingredients the user never priced
const DefaultUnitPrice = 50

// Item is one line of a shopping list
type Item struct {
	Name                     string   `json:"name"`
	NeededQuantity           float64  `json:"needed_quantity"`
	Unit                     string   `json:"unit"`
	UnitPrice                float64  `json:"unit_price"`
	TotalCost                float64  `json:"total_cost"`
	ContributingRecipeTitles []string `json:"contributing_recipe_titles"`
}

// Options controls pricing and ordering of a list
type Options struct {
	DefaultPrice float64
	Locale       language.Tag
}

// DefaultOptions prices unknown ingredients at DefaultUnitPrice and sorts
// names with Russian collation
func DefaultOptions() Options {
	return Options{DefaultPrice: DefaultUnitPrice, Locale: language.Russian}
}

// BuildList subtracts on-hand stock from the aggregated needs and prices the
// shortfall. Stock of one name is consumed once, starting with the bucket
// that occurred first in the window, so unit buckets never share it.
// Ingredients fully covered by stock are left out. Items are sorted by name
// using the collation of opts.Locale, then by unit.
func BuildList(agg Aggregated, inv inventory.Inventory, opts Options) []Item {
	needs := make([]*Need, 0, len(agg))
	for _, need := range agg {
		needs = append(needs, need)
	}
	sort.SliceStable(needs, func(i, j int) bool {
		if needs[i].order != needs[j].order {
			return needs[i].order < needs[j].order
		}
		if needs[i].Name != needs[j].Name {
			return needs[i].Name < needs[j].Name
		}
		return needs[i].Unit < needs[j].Unit
	})

	remaining := make(map[string]float64)
	items := make([]Item, 0, len(needs))
	for _, need := range needs {
		entry, stocked := inv.Get(need.Name)

		onHand, seen := remaining[need.Name]
		if !seen {
			onHand = entry.Quantity
		}
		used := math.Min(math.Max(onHand, 0), need.Needed)
		remaining[need.Name] = onHand - used

		shortfall := need.Needed - used
		if shortfall <= 0 {
			continue
		}

		price := opts.DefaultPrice
		if stocked {
			price = entry.UnitPrice
		}

		titles := make([]string, len(need.RecipeTitles))
		copy(titles, need.RecipeTitles)

		items = append(items, Item{
			Name:                     need.Name,
			NeededQuantity:           shortfall,
			Unit:                     need.Unit,
			UnitPrice:                price,
			TotalCost:                shortfall * price,
			ContributingRecipeTitles: titles,
		})
	}

	c := collate.New(opts.Locale)
	sort.SliceStable(items, func(i, j int) bool {
		if cmp := c.CompareString(items[i].Name, items[j].Name); cmp != 0 {
			return cmp < 0
		}
		return items[i].Unit < items[j].Unit
	})
	return items
}

// Total sums the cost of items
func Total(items []Item) float64 {
	var total float64
	for _, it := range items {
		total += it.TotalCost
	}
	return total
}
