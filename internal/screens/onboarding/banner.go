package onboarding

import (
	"charm.land/lipgloss/v2"

	"github.com/challengely/challengely/internal/ui/theme"
)

const bannerArt = `
  ___ _         _ _                   _
 / __| |_  __ _| | |___ _ _  __ _ ___| |_  _
| (__| ' \/ _` + "`" + ` | | / -_) ' \/ _` + "`" + ` / -_) | || |
 \___|_||_\__,_|_|_\___|_||_\__, \___|_|\_, |
                            |___/       |__/`

const bannerCompact = "C H A L L E N G E L Y"

// RenderBanner returns the wordmark styled in the primary color.
// Uses a compact fallback for terminals narrower than 50 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 50 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
