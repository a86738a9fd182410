// Package match scores recipes against the on-hand inventory
package match

import (
	"math"
	"sort"

	"github.com/alchemorsel/planner/internal/domain/inventory"
	"github.com/alchemorsel/planner/internal/domain/recipe"
)

// Result is the coverage of one recipe by the inventory
type Result struct {
	MatchPercent  int      `json:"match_percent"`
	MatchingCount int      `json:"matching_count"`
	TotalCount    int      `json:"total_count"`
	Missing       []string `json:"missing"`
}

// Recommendation pairs a recipe with its match result
type Recommendation struct {
	Recipe recipe.Recipe
	Result Result
}

// MatchRecipe counts the ingredients whose on-hand quantity meets the
// required amount. A recipe whose ingredients are not loaded, or that has
// none, scores 0.
func MatchRecipe(r recipe.Recipe, inv inventory.Inventory) Result {
	list, ok := r.LoadedIngredients()
	if !ok {
		return Result{Missing: []string{}}
	}

	res := Result{TotalCount: len(list), Missing: []string{}}
	for _, ing := range list {
		entry, present := inv.Get(ing.Name)
		if present && entry.Quantity > 0 && entry.Quantity >= ing.Required() {
			res.MatchingCount++
			continue
		}
		res.Missing = append(res.Missing, ing.Name)
	}

	if res.TotalCount > 0 {
		res.MatchPercent = int(math.Round(float64(res.MatchingCount) / float64(res.TotalCount) * 100))
	}
	return res
}

// Recommend scores every recipe, drops those at 0% and orders the rest by
// match percent, highest first. Equal scores keep their input order.
func Recommend(recipes []recipe.Recipe, inv inventory.Inventory) []Recommendation {
	out := make([]Recommendation, 0, len(recipes))
	for _, r := range recipes {
		res := MatchRecipe(r, inv)
		if res.MatchPercent == 0 {
			continue
		}
		out = append(out, Recommendation{Recipe: r, Result: res})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Result.MatchPercent > out[j].Result.MatchPercent
	})
	return out
}
