package catalog

import "time"

// Category groups challenges by the kind of habit they build.
type Category string

const (
	CategoryFitness     Category = "fitness"
	CategoryCreativity  Category = "creativity"
	CategoryMindfulness Category = "mindfulness"
	CategoryLearning    Category = "learning"
	CategorySocial      Category = "social"
)

// AllCategories returns all categories in display order.
func AllCategories() []Category {
	return []Category{
		CategoryFitness,
		CategoryCreativity,
		CategoryMindfulness,
		CategoryLearning,
		CategorySocial,
	}
}

// ParseCategory returns the category named by s.
func ParseCategory(s string) (Category, bool) {
	for _, c := range AllCategories() {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// DisplayName returns a human-readable label for the category.
func (c Category) DisplayName() string {
	switch c {
	case CategoryFitness:
		return "Fitness"
	case CategoryCreativity:
		return "Creativity"
	case CategoryMindfulness:
		return "Mindfulness"
	case CategoryLearning:
		return "Learning"
	case CategorySocial:
		return "Social"
	default:
		return string(c)
	}
}

// Emoji returns the display icon for the category.
func (c Category) Emoji() string {
	switch c {
	case CategoryFitness:
		return "💪"
	case CategoryCreativity:
		return "🎨"
	case CategoryMindfulness:
		return "🧘"
	case CategoryLearning:
		return "📚"
	case CategorySocial:
		return "👥"
	default:
		return "✦"
	}
}

// Order returns the position of the category in display order, or -1.
func (c Category) Order() int {
	for i, cat := range AllCategories() {
		if cat == c {
			return i
		}
	}
	return -1
}

// Difficulty is the effort level of a challenge.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// AllDifficulties returns all difficulties from easiest to hardest.
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// ParseDifficulty returns the difficulty named by s.
func ParseDifficulty(s string) (Difficulty, bool) {
	for _, d := range AllDifficulties() {
		if string(d) == s {
			return d, true
		}
	}
	return "", false
}

// DisplayName returns a human-readable label for the difficulty.
func (d Difficulty) DisplayName() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	default:
		return string(d)
	}
}

// Summary describes the effort a difficulty asks for.
func (d Difficulty) Summary() string {
	switch d {
	case DifficultyEasy:
		return "Light activities, 5-15 minutes"
	case DifficultyMedium:
		return "Moderate challenges, 15-30 minutes"
	case DifficultyHard:
		return "Intensive tasks, 30+ minutes"
	default:
		return ""
	}
}

// DefaultEstimatedTime is used when a challenge carries no duration.
const DefaultEstimatedTime = 600 * time.Second

// Challenge is a single predefined entry of the catalog.
type Challenge struct {
	ID            string
	Title         string
	Description   string
	Category      Category
	Difficulty    Difficulty
	EstimatedTime time.Duration
}

// Duration returns the estimated time, falling back to DefaultEstimatedTime.
func (c Challenge) Duration() time.Duration {
	if c.EstimatedTime <= 0 {
		return DefaultEstimatedTime
	}
	return c.EstimatedTime
}
