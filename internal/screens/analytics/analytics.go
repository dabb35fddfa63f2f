package analytics

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/jonboulle/clockwork"

	engine "github.com/challengely/challengely/internal/analytics"
	"github.com/challengely/challengely/internal/logger"
	"github.com/challengely/challengely/internal/screen"
	"github.com/challengely/challengely/internal/ui/components"
	"github.com/challengely/challengely/internal/ui/layout"
	"github.com/challengely/challengely/internal/ui/theme"
)

// chartHeight is the tallest bar of the streak chart in rows.
const chartHeight = 6

// AnalyticsScreen is the progress dashboard.
type AnalyticsScreen struct {
	ctx     context.Context
	loader  engine.Loader
	clock   clockwork.Clock
	log     *logger.Logger
	summary engine.Summary
}

var (
	_ screen.Screen          = (*AnalyticsScreen)(nil)
	_ screen.KeyHintProvider = (*AnalyticsScreen)(nil)
	_ screen.Activator       = (*AnalyticsScreen)(nil)
)

// New creates the analytics tab.
func New(ctx context.Context, loader engine.Loader, clock clockwork.Clock, log *logger.Logger) *AnalyticsScreen {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AnalyticsScreen{ctx: ctx, loader: loader, clock: clock, log: log.With("component", "analytics")}
}

func (s *AnalyticsScreen) Init() tea.Cmd {
	return s.Activate()
}

// Activate recomputes the summary from storage.
func (s *AnalyticsScreen) Activate() tea.Cmd {
	sum, err := engine.Load(s.ctx, s.loader, s.clock.Now())
	if err != nil {
		s.log.Error("load analytics", "error", err)
	}
	s.summary = sum
	return nil
}

func (s *AnalyticsScreen) Title() string {
	return "Analytics"
}

// Summary returns the last computed summary.
func (s *AnalyticsScreen) Summary() engine.Summary {
	return s.summary
}

func (s *AnalyticsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R", Description: "Refresh"},
		{Key: "Tab", Description: "Next tab"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *AnalyticsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && k.String() == "r" {
		return s, s.Activate()
	}
	return s, nil
}

func (s *AnalyticsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	sum := s.summary

	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		stat("Current Streak", fmt.Sprintf("%d 🔥", sum.Streak), cw/2),
		stat("Completed", fmt.Sprintf("%d", sum.Total), cw/2),
	)

	sections := []string{
		stats,
		"",
		theme.Title.Render("7-Day Streak Progress"),
		renderChart(sum),
		"",
		theme.Title.Render("Challenge Categories"),
		renderBreakdown(sum.Breakdown, cw),
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return components.Frame(content, width, height)
}

func stat(label, value string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(
			lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(value) + "\n" +
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(label),
		)
}

// renderChart draws the streak history as vertical bars scaled to the
// largest day.
func renderChart(sum engine.Summary) string {
	peak := 0
	for _, v := range sum.StreakHistory {
		peak = max(peak, v)
	}

	bar := lipgloss.NewStyle().Foreground(theme.Primary)
	cols := make([]string, 0, engine.Days)
	for i, v := range sum.StreakHistory {
		h := 0
		if peak > 0 {
			h = (v*chartHeight + peak - 1) / peak
		}
		var rows []string
		rows = append(rows, lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%3d", v)))
		for r := chartHeight; r > 0; r-- {
			if r <= h {
				rows = append(rows, bar.Render(" ██"))
			} else {
				rows = append(rows, "   ")
			}
		}
		rows = append(rows, lipgloss.NewStyle().Foreground(theme.Text).Render(fmt.Sprintf("%3s", sum.DayLabels[i])))
		cols = append(cols, strings.Join(rows, "\n"))
		cols = append(cols, "  ")
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, cols...)
}

func renderBreakdown(rows []engine.CategoryCount, cw int) string {
	if len(rows) == 0 {
		return theme.Hint.Render("Complete a challenge to see your categories")
	}
	top := rows[0].Count
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		bar := components.ProgressBar{
			Label:   fmt.Sprintf("%-16s", r.Category.Emoji()+" "+r.Category.DisplayName()),
			Percent: float64(r.Count) / float64(top),
			Width:   cw,
			Suffix:  fmt.Sprintf("%d", r.Count),
		}
		lines = append(lines, bar.View())
	}
	return strings.Join(lines, "\n")
}
