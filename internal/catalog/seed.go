package catalog

import (
	"fmt"
	"time"

	"github.com/gosimple/slug"
)

func init() {
	challenges := seedChallenges()
	if err := validateChallenges(challenges); err != nil {
		panic(fmt.Sprintf("catalog: invalid seed: %v", err))
	}
	c = buildCatalog(challenges)
}

// newChallenge builds a seed entry whose ID is the slug of its title, so
// completion history stays valid across restarts.
func newChallenge(title, description string, cat Category, diff Difficulty, est time.Duration) Challenge {
	return Challenge{
		ID:            slug.Make(title),
		Title:         title,
		Description:   description,
		Category:      cat,
		Difficulty:    diff,
		EstimatedTime: est,
	}
}

func seedChallenges() []Challenge {
	return []Challenge{
		newChallenge(
			"Morning Meditation",
			"Start your day with a 10-minute mindfulness session to center yourself and set positive intentions.",
			CategoryMindfulness, DifficultyEasy, 10*time.Minute,
		),
		newChallenge(
			"Creative Writing Sprint",
			"Write continuously for 15 minutes about anything that comes to mind. Let your creativity flow without judgment.",
			CategoryCreativity, DifficultyMedium, 15*time.Minute,
		),
		newChallenge(
			"HIIT Workout",
			"Complete a 20-minute high-intensity interval training session to boost your energy and strengthen your body.",
			CategoryFitness, DifficultyHard, 20*time.Minute,
		),
		newChallenge(
			"Learn Something New",
			"Spend 25 minutes learning about a topic that interests you through videos, articles, or podcasts.",
			CategoryLearning, DifficultyMedium, 25*time.Minute,
		),
		newChallenge(
			"Connect with Someone",
			"Reach out to a friend or family member you haven't spoken to in a while. Have a meaningful conversation.",
			CategorySocial, DifficultyEasy, 15*time.Minute,
		),
		newChallenge(
			"Digital Art Creation",
			"Create a digital artwork or design using your favorite app. Express yourself through colors and shapes.",
			CategoryCreativity, DifficultyHard, 30*time.Minute,
		),
	}
}
