// Package analytics projects the stored profile into dashboard figures.
package analytics

import (
	"context"
	"slices"
	"time"

	"github.com/challengely/challengely/internal/catalog"
	"github.com/challengely/challengely/internal/profile"
)

// Days is the length of the streak history window.
const Days = 7

// CategoryCount is one row of the category breakdown.
type CategoryCount struct {
	Category catalog.Category
	Count    int
}

// Summary is the analytics dashboard model.
type Summary struct {
	// Completed are the catalog entries behind the completion history.
	// Ids missing from the catalog are dropped.
	Completed []catalog.Challenge

	// StreakHistory runs from six days ago (index 0) to today (index 6).
	// It is reconstructed from the current streak, not from stored history.
	StreakHistory [Days]int

	// DayLabels holds weekday abbreviations aligned with StreakHistory.
	DayLabels [Days]string

	// Breakdown counts completions per category, most frequent first.
	Breakdown []CategoryCount

	Total  int
	Streak int
}

// Compute builds the summary for p as of now.
func Compute(p profile.UserProfile, now time.Time) Summary {
	s := Summary{
		Completed:     catalog.Resolve(p.CompletedChallenges),
		StreakHistory: StreakHistory(p.StreakCount),
		Streak:        p.StreakCount,
	}
	s.Total = len(s.Completed)
	s.Breakdown = Breakdown(s.Completed)
	for i := range Days {
		s.DayLabels[i] = now.AddDate(0, 0, i-(Days-1)).Format("Mon")
	}
	return s
}

// StreakHistory spreads the current streak backwards over the window:
// today holds the streak, each earlier day inside the streak one less, and
// days before it started zero.
func StreakHistory(streak int) [Days]int {
	var h [Days]int
	for i := range Days {
		dist := Days - 1 - i
		switch {
		case dist == 0:
			h[i] = streak
		case dist <= streak:
			h[i] = streak - dist
		}
	}
	return h
}

// Breakdown groups challenges by category, sorted by descending count with
// ties in catalog category order.
func Breakdown(challenges []catalog.Challenge) []CategoryCount {
	counts := make(map[catalog.Category]int)
	for _, c := range challenges {
		counts[c.Category]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for _, cat := range catalog.AllCategories() {
		if n := counts[cat]; n > 0 {
			out = append(out, CategoryCount{Category: cat, Count: n})
		}
	}
	slices.SortStableFunc(out, func(a, b CategoryCount) int {
		return b.Count - a.Count
	})
	return out
}

// Loader is the storage Load needs.
type Loader interface {
	LoadProfile(ctx context.Context) (*profile.UserProfile, error)
}

// Load reads the stored profile and computes its summary. An absent
// profile yields the summary of a fresh one.
func Load(ctx context.Context, l Loader, now time.Time) (Summary, error) {
	p, err := l.LoadProfile(ctx)
	if err != nil {
		return Compute(profile.New(), now), err
	}
	if p == nil {
		return Compute(profile.New(), now), nil
	}
	return Compute(*p, now), nil
}
