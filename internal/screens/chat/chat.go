package chat

import (
	"context"

	tea "charm.land/bubbletea/v2"

	engine "github.com/challengely/challengely/internal/chat"
	"github.com/challengely/challengely/internal/screen"
	"github.com/challengely/challengely/internal/ui/components"
	"github.com/challengely/challengely/internal/ui/layout"
)

type focus int

const (
	focusInput focus = iota
	focusReplies
)

// ChatScreen is the assistant conversation tab.
type ChatScreen struct {
	ctx   context.Context
	eng   *engine.Engine
	input components.TextInput

	focus   focus
	replyAt int
}

var (
	_ screen.Screen          = (*ChatScreen)(nil)
	_ screen.KeyHintProvider = (*ChatScreen)(nil)
	_ screen.Activator       = (*ChatScreen)(nil)
	_ screen.InputCapturer   = (*ChatScreen)(nil)
)

// New creates the chat tab.
func New(ctx context.Context, eng *engine.Engine) *ChatScreen {
	input := components.NewTextInput("Ask me anything...", engine.MaxChars)
	// The field counts runes; the engine truncates by grapheme in forward.
	input.Model.CharLimit = 0
	return &ChatScreen{
		ctx:   ctx,
		eng:   eng,
		input: input,
	}
}

func (s *ChatScreen) Init() tea.Cmd {
	return tea.Batch(s.Activate(), s.input.Init())
}

// Activate loads the conversation.
func (s *ChatScreen) Activate() tea.Cmd {
	s.eng.Activate(s.ctx)
	return nil
}

func (s *ChatScreen) Title() string {
	return "Assistant"
}

// CapturingInput is true while the text field has focus.
func (s *ChatScreen) CapturingInput() bool {
	return s.focus == focusInput
}

// State exposes the engine state for rendering and tests.
func (s *ChatScreen) State() engine.State {
	return s.eng.State
}

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	if s.focus == focusReplies {
		return []layout.KeyHint{
			{Key: "←→", Description: "Pick"},
			{Key: "Enter", Description: "Send"},
			{Key: "↑", Description: "Type"},
			{Key: "Tab", Description: "Next tab"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "↓", Description: "Quick replies"},
	}
	if s.eng.State.Typing {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Stop"})
	}
	return append(hints, layout.KeyHint{Key: "Tab", Description: "Next tab"})
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case engine.ReplyMsg:
		return s, s.eng.Update(s.ctx, msg)

	case tea.KeyPressMsg:
		if msg.String() == "esc" && s.eng.State.Typing {
			s.eng.StopTyping()
			return s, nil
		}
		if s.focus == focusReplies {
			return s, s.updateReplies(msg)
		}
		return s, s.updateInput(msg)
	}

	return s, s.forward(msg)
}

func (s *ChatScreen) updateInput(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		if !s.eng.CanSend() {
			return nil
		}
		cmd := s.eng.Send(s.ctx)
		s.input.Reset()
		return cmd
	case "down":
		s.focus = focusReplies
		s.input.Model.Blur()
		return nil
	}

	return s.forward(msg)
}

// forward passes msg to the text field and mirrors its value into the
// engine, which enforces the length limit.
func (s *ChatScreen) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	s.eng.InputChanged(s.input.Value())
	if s.input.Value() != s.eng.State.Input {
		s.input.SetValue(s.eng.State.Input)
	}
	return cmd
}

func (s *ChatScreen) updateReplies(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "left", "h":
		if s.replyAt > 0 {
			s.replyAt--
		}
	case "right", "l":
		if s.replyAt < len(engine.QuickReplies)-1 {
			s.replyAt++
		}
	case "up", "k":
		s.focus = focusInput
		return s.input.Model.Focus()
	case "enter", "space":
		return s.eng.QuickReply(s.ctx, engine.QuickReplies[s.replyAt])
	}
	return nil
}
