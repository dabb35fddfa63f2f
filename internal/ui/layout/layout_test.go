package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{60, 20, false},
		{59, 20, true},
		{60, 19, true},
		{120, 40, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsTooSmall(tt.w, tt.h), "%dx%d", tt.w, tt.h)
	}
}

func TestContentHeightFloorsAtZero(t *testing.T) {
	header := "a\nb\nc"
	footer := "d\ne\nf"
	assert.Equal(t, 0, ContentHeight(4, header, footer))
	assert.Equal(t, 18, ContentHeight(24, header, footer))
}

func TestRenderHeaderShowsStreak(t *testing.T) {
	h := RenderHeader("Challenge", 4, 100)
	assert.Contains(t, h, "Challengely")
	assert.Contains(t, h, "Challenge")
	assert.Contains(t, h, "4 day")

	h = RenderHeader("Chat", 0, 100)
	assert.NotContains(t, h, "day")
}

func TestRenderTabBar(t *testing.T) {
	bar := RenderTabBar([]string{"Challenge", "Chat", "Profile", "Analytics"}, 1, 100)
	for _, want := range []string{"1 Challenge", "2 Chat", "3 Profile", "4 Analytics"} {
		assert.True(t, strings.Contains(bar, want), "missing %q", want)
	}
}

func TestRenderToast(t *testing.T) {
	assert.Contains(t, RenderToast("Time for your challenge", 60), "Time for your challenge")
}
