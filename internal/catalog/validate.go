package catalog

import (
	"fmt"
	"strings"
)

// validateChallenges performs structural checks on the seed list.
// Returns a combined error describing all problems found, or nil if valid.
func validateChallenges(challenges []Challenge) error {
	if len(challenges) == 0 {
		return fmt.Errorf("catalog is empty")
	}

	var errs []string
	ids := make(map[string]bool, len(challenges))
	for _, ch := range challenges {
		if ch.ID == "" {
			errs = append(errs, fmt.Sprintf("challenge %q has empty ID", ch.Title))
		}
		if ids[ch.ID] {
			errs = append(errs, fmt.Sprintf("duplicate challenge ID: %q", ch.ID))
		}
		ids[ch.ID] = true

		if ch.Category.Order() < 0 {
			errs = append(errs, fmt.Sprintf("challenge %q has unknown category %q", ch.ID, ch.Category))
		}
		if _, ok := ParseDifficulty(string(ch.Difficulty)); !ok {
			errs = append(errs, fmt.Sprintf("challenge %q has unknown difficulty %q", ch.ID, ch.Difficulty))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}
