package profile

import (
	"slices"
	"time"

	"github.com/challengely/challengely/internal/catalog"
)

// UserProfile holds the learner's preferences and completion history.
// There is exactly one per installation.
type UserProfile struct {
	Interests           []catalog.Category `json:"interests"`
	Difficulty          catalog.Difficulty `json:"difficulty"`
	StreakCount         int                `json:"streakCount"`
	CompletedChallenges []string           `json:"completedChallenges"`
	LastCompletionDate  *time.Time         `json:"lastCompletionDate,omitempty"`
}

// New returns a profile with first-run defaults.
func New() UserProfile {
	return UserProfile{
		Interests:           []catalog.Category{},
		Difficulty:          catalog.DifficultyMedium,
		CompletedChallenges: []string{},
	}
}

// SetInterests replaces the interest set. Duplicates are dropped and the
// result is kept in catalog display order so equal sets compare equal.
func (p *UserProfile) SetInterests(cats []catalog.Category) {
	p.Interests = NormalizeInterests(cats)
}

// NormalizeInterests dedupes cats and sorts them in display order.
// Unknown categories are dropped.
func NormalizeInterests(cats []catalog.Category) []catalog.Category {
	out := []catalog.Category{}
	for _, cat := range catalog.AllCategories() {
		if slices.Contains(cats, cat) {
			out = append(out, cat)
		}
	}
	return out
}

// Clone returns a deep copy of p.
func (p UserProfile) Clone() UserProfile {
	out := p
	out.Interests = slices.Clone(p.Interests)
	out.CompletedChallenges = slices.Clone(p.CompletedChallenges)
	if p.LastCompletionDate != nil {
		t := *p.LastCompletionDate
		out.LastCompletionDate = &t
	}
	return out
}
