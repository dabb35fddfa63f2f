package catalog

import (
	"fmt"
	"slices"
	"time"
)

// catalog holds the immutable challenge list with a lookup index.
type catalog struct {
	challenges []Challenge
	byID       map[string]*Challenge
	byCategory map[Category][]Challenge
}

// c is the package-level catalog singleton, set by init() in seed.go.
var c *catalog

func buildCatalog(challenges []Challenge) *catalog {
	cat := &catalog{
		challenges: challenges,
		byID:       make(map[string]*Challenge, len(challenges)),
		byCategory: make(map[Category][]Challenge),
	}
	for i := range cat.challenges {
		ch := &cat.challenges[i]
		cat.byID[ch.ID] = ch
		cat.byCategory[ch.Category] = append(cat.byCategory[ch.Category], *ch)
	}
	return cat
}

// All returns every challenge in seed order.
func All() []Challenge {
	return slices.Clone(c.challenges)
}

// Get returns a challenge by ID, or error if not found.
func Get(id string) (Challenge, error) {
	ch, ok := c.byID[id]
	if !ok {
		return Challenge{}, fmt.Errorf("challenge not found: %q", id)
	}
	return *ch, nil
}

// Lookup returns a challenge by ID and whether it exists.
func Lookup(id string) (Challenge, bool) {
	ch, ok := c.byID[id]
	if !ok {
		return Challenge{}, false
	}
	return *ch, true
}

// ByCategory returns all challenges in a category, in seed order.
func ByCategory(cat Category) []Challenge {
	return slices.Clone(c.byCategory[cat])
}

// Resolve maps ids to catalog entries, dropping ids the catalog does not know.
func Resolve(ids []string) []Challenge {
	out := make([]Challenge, 0, len(ids))
	for _, id := range ids {
		if ch, ok := Lookup(id); ok {
			out = append(out, ch)
		}
	}
	return out
}

// Filter returns the challenges whose category is in interests. An empty
// interest set matches everything.
func Filter(interests []Category) []Challenge {
	if len(interests) == 0 {
		return All()
	}
	want := make(map[Category]bool, len(interests))
	for _, cat := range interests {
		want[cat] = true
	}
	var out []Challenge
	for _, ch := range c.challenges {
		if want[ch.Category] {
			out = append(out, ch)
		}
	}
	return out
}

// ForDay selects the challenge for the calendar day of now. The catalog is
// filtered by interests and indexed by day-of-year; when nothing matches the
// unfiltered catalog is used instead.
func ForDay(interests []Category, now time.Time) Challenge {
	candidates := Filter(interests)
	if len(candidates) == 0 {
		candidates = c.challenges
	}
	return candidates[now.YearDay()%len(candidates)]
}
