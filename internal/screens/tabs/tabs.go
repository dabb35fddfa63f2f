package tabs

import (
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/challengely/challengely/internal/screen"
	"github.com/challengely/challengely/internal/ui/layout"
)

// Tab is a labelled child screen.
type Tab struct {
	Label  string
	Screen screen.Screen
}

// TabsScreen is the main view: a tab bar over the active child. Key presses
// go to the active tab only; every other message reaches all tabs so
// background timers keep running.
type TabsScreen struct {
	tabs   []Tab
	active int
}

var (
	_ screen.Screen          = (*TabsScreen)(nil)
	_ screen.KeyHintProvider = (*TabsScreen)(nil)
	_ screen.StreakProvider  = (*TabsScreen)(nil)
)

// New creates the tab view with the first tab active.
func New(tabs ...Tab) *TabsScreen {
	return &TabsScreen{tabs: tabs}
}

func (t *TabsScreen) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(t.tabs))
	for _, tab := range t.tabs {
		cmds = append(cmds, tab.Screen.Init())
	}
	return tea.Batch(cmds...)
}

func (t *TabsScreen) Title() string {
	if len(t.tabs) == 0 {
		return ""
	}
	return t.tabs[t.active].Screen.Title()
}

// Active returns the index of the visible tab.
func (t *TabsScreen) Active() int {
	return t.active
}

// Streak reports the streak known to the active tab, falling back to the
// first tab that knows one.
func (t *TabsScreen) Streak() int {
	if len(t.tabs) == 0 {
		return 0
	}
	if sp, ok := t.tabs[t.active].Screen.(screen.StreakProvider); ok {
		return sp.Streak()
	}
	for _, tab := range t.tabs {
		if sp, ok := tab.Screen.(screen.StreakProvider); ok {
			return sp.Streak()
		}
	}
	return 0
}

func (t *TabsScreen) KeyHints() []layout.KeyHint {
	if len(t.tabs) == 0 {
		return nil
	}
	if kp, ok := t.tabs[t.active].Screen.(screen.KeyHintProvider); ok {
		return kp.KeyHints()
	}
	return []layout.KeyHint{{Key: "Tab", Description: "Next tab"}}
}

// Select switches to tab i and activates it.
func (t *TabsScreen) Select(i int) tea.Cmd {
	if i < 0 || i >= len(t.tabs) {
		return nil
	}
	t.active = i
	if a, ok := t.tabs[i].Screen.(screen.Activator); ok {
		return a.Activate()
	}
	return nil
}

func (t *TabsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if len(t.tabs) == 0 {
		return t, nil
	}

	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch k := kmsg.String(); k {
		case "tab":
			return t, t.Select((t.active + 1) % len(t.tabs))
		case "shift+tab":
			return t, t.Select((t.active - 1 + len(t.tabs)) % len(t.tabs))
		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			if !t.capturing() {
				n, _ := strconv.Atoi(k)
				return t, t.Select(n - 1)
			}
		}
		updated, cmd := t.tabs[t.active].Screen.Update(msg)
		t.tabs[t.active].Screen = updated
		return t, cmd
	}

	cmds := make([]tea.Cmd, 0, len(t.tabs))
	for i := range t.tabs {
		updated, cmd := t.tabs[i].Screen.Update(msg)
		t.tabs[i].Screen = updated
		cmds = append(cmds, cmd)
	}
	return t, tea.Batch(cmds...)
}

func (t *TabsScreen) capturing() bool {
	ic, ok := t.tabs[t.active].Screen.(screen.InputCapturer)
	return ok && ic.CapturingInput()
}

func (t *TabsScreen) View(width, height int) string {
	if len(t.tabs) == 0 {
		return ""
	}
	labels := make([]string, len(t.tabs))
	for i, tab := range t.tabs {
		labels[i] = tab.Label
	}
	bar := layout.RenderTabBar(labels, t.active, width)
	body := t.tabs[t.active].Screen.View(width, max(height-lipgloss.Height(bar)-1, 0))
	return bar + "\n\n" + body
}
