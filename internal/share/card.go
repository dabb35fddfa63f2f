// Package share renders achievement cards for completed challenges.
package share

import (
	"fmt"
	"time"

	"github.com/gosimple/slug"

	"github.com/challengely/challengely/internal/catalog"
)

// Card is the content of a share card.
type Card struct {
	Title       string
	Description string
	Category    catalog.Category
	Streak      int
	Date        time.Time
}

// Headline returns the streak banner, e.g. "🔥 Day 3 Streak!".
func (c Card) Headline() string {
	return fmt.Sprintf("🔥 Day %d Streak!", c.Streak)
}

// Text renders the card as a plain-text share message.
func (c Card) Text() string {
	return fmt.Sprintf("%s\n\n%s %s\n%s\n\nChallengely", c.Headline(), c.Category.Emoji(), c.Title, c.Description)
}

// FileName is the PNG name the card is saved under.
func (c Card) FileName() string {
	return fmt.Sprintf("challengely-%s-%s.png", c.Date.Format("2006-01-02"), slug.Make(c.Title))
}
