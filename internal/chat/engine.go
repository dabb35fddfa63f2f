// Package chat is the canned-response assistant: a persisted message log
// and delayed keyword replies.
package chat

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rivo/uniseg"

	"github.com/challengely/challengely/internal/haptic"
	"github.com/challengely/challengely/internal/logger"
	"github.com/challengely/challengely/internal/store"
)

// MaxChars is the input limit in characters.
const MaxChars = 500

const (
	DefaultMinDelay = 1500 * time.Millisecond
	DefaultMaxDelay = 3 * time.Second
)

// Store is the persistence the engine needs.
type Store interface {
	LoadMessages(ctx context.Context) ([]store.Message, error)
	SaveMessages(ctx context.Context, msgs []store.Message) error
}

// ReplyMsg delivers an assistant reply for typing sequence Gen.
type ReplyMsg struct {
	Gen  int
	Text string
}

// Band grades the character counter.
type Band int

const (
	BandOK Band = iota
	BandWarning
	BandError
)

// Deps are the engine's collaborators. Zero delays use the defaults.
type Deps struct {
	Store    Store
	Feedback haptic.Feedback
	Clock    clockwork.Clock
	Logger   *logger.Logger
	Rand     *rand.Rand
	MinDelay time.Duration
	MaxDelay time.Duration
}

// State is the chat screen state.
type State struct {
	Messages  []store.Message
	Input     string
	CharCount int
	Typing    bool
}

// Engine owns the conversation. Replies are serialized: one is pending at a
// time and messages sent meanwhile wait their turn.
type Engine struct {
	State State

	store    Store
	feedback haptic.Feedback
	clock    clockwork.Clock
	log      *logger.Logger
	rng      *rand.Rand
	minDelay time.Duration
	maxDelay time.Duration

	// queue holds user texts still waiting for a reply.
	queue []string
	// gen identifies the current typing sequence.
	gen int
}

// New creates an engine. Call Activate before use.
func New(d Deps) *Engine {
	if d.Feedback == nil {
		d.Feedback = haptic.Nop{}
	}
	if d.Clock == nil {
		d.Clock = clockwork.NewRealClock()
	}
	if d.Logger == nil {
		d.Logger = logger.Nop()
	}
	if d.Rand == nil {
		d.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15))
	}
	if d.MinDelay <= 0 {
		d.MinDelay = DefaultMinDelay
	}
	if d.MaxDelay < d.MinDelay {
		d.MaxDelay = max(DefaultMaxDelay, d.MinDelay)
	}
	return &Engine{
		store:    d.Store,
		feedback: d.Feedback,
		clock:    d.Clock,
		log:      d.Logger.With("component", "chat"),
		rng:      d.Rand,
		minDelay: d.MinDelay,
		maxDelay: d.MaxDelay,
	}
}

// Activate loads the log, seeding the greeting when it is empty.
func (e *Engine) Activate(ctx context.Context) {
	msgs, err := e.store.LoadMessages(ctx)
	if err != nil {
		e.log.Error("load messages", "error", err)
	}
	if len(msgs) == 0 {
		msgs = []store.Message{e.newMessage(Greeting, false)}
	}
	e.State.Messages = msgs
}

// InputChanged stores text truncated to MaxChars characters. A character is
// a grapheme cluster, so "👍🏽" counts once.
func (e *Engine) InputChanged(text string) {
	e.State.Input, e.State.CharCount = truncateGraphemes(text, MaxChars)
}

// truncateGraphemes cuts s after n grapheme clusters and returns the kept
// prefix with its cluster count.
func truncateGraphemes(s string, n int) (string, int) {
	rest, state, count := s, -1, 0
	for rest != "" {
		if count == n {
			return s[:len(s)-len(rest)], count
		}
		_, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		count++
	}
	return s, count
}

// CanSend reports whether the current input may be sent.
func (e *Engine) CanSend() bool {
	return strings.TrimSpace(e.State.Input) != "" &&
		e.State.CharCount <= MaxChars &&
		!e.State.Typing
}

// CounterBand grades CharCount against MaxChars.
func (e *Engine) CounterBand() Band {
	ratio := float64(e.State.CharCount) / MaxChars
	switch {
	case ratio < 0.7:
		return BandOK
	case ratio < 0.9:
		return BandWarning
	default:
		return BandError
	}
}

// Send sends the current input.
func (e *Engine) Send(ctx context.Context) tea.Cmd {
	return e.QuickReply(ctx, e.State.Input)
}

// QuickReply sends text as a user message. Blank text is ignored. The
// returned command delivers the assistant reply after the typing delay.
func (e *Engine) QuickReply(ctx context.Context, text string) tea.Cmd {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	e.feedback.Impact(haptic.Light)
	e.State.Messages = append(e.State.Messages, e.newMessage(text, true))
	e.State.Input = ""
	e.State.CharCount = 0
	e.persist(ctx)

	if e.State.Typing {
		e.queue = append(e.queue, text)
		return nil
	}
	return e.startTyping(text)
}

func (e *Engine) startTyping(text string) tea.Cmd {
	e.State.Typing = true
	gen := e.gen
	reply := Respond(text, e.rng)
	return tea.Tick(e.delay(), func(time.Time) tea.Msg {
		return ReplyMsg{Gen: gen, Text: reply}
	})
}

func (e *Engine) delay() time.Duration {
	span := e.maxDelay - e.minDelay
	if span <= 0 {
		return e.minDelay
	}
	return e.minDelay + time.Duration(e.rng.Int64N(int64(span)))
}

// Update handles reply delivery and returns the next reply command, if any.
func (e *Engine) Update(ctx context.Context, msg tea.Msg) tea.Cmd {
	reply, ok := msg.(ReplyMsg)
	if !ok || reply.Gen != e.gen || !e.State.Typing {
		return nil
	}

	e.State.Messages = append(e.State.Messages, e.newMessage(reply.Text, false))
	e.persist(ctx)

	if len(e.queue) > 0 {
		next := e.queue[0]
		e.queue = e.queue[1:]
		return e.startTyping(next)
	}
	e.State.Typing = false
	return nil
}

// StopTyping clears the typing flag and drops every pending reply.
func (e *Engine) StopTyping() {
	e.State.Typing = false
	e.queue = nil
	e.gen++
}

// Pending is the number of user messages still awaiting a reply.
func (e *Engine) Pending() int {
	n := len(e.queue)
	if e.State.Typing {
		n++
	}
	return n
}

func (e *Engine) newMessage(text string, fromUser bool) store.Message {
	return store.Message{
		ID:        uuid.NewString(),
		Text:      text,
		FromUser:  fromUser,
		Timestamp: e.clock.Now(),
	}
}

func (e *Engine) persist(ctx context.Context) {
	if err := e.store.SaveMessages(ctx, e.State.Messages); err != nil {
		e.log.Error("save messages", "error", err)
	}
}
