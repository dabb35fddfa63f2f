// Package haptic provides fire-and-forget user feedback. On a terminal the
// closest thing to a vibration motor is the bell.
package haptic

import (
	"io"
	"sync"
)

// Intensity is the strength of an impact.
type Intensity int

const (
	Light Intensity = iota
	Medium
	Heavy
)

func (i Intensity) String() string {
	switch i {
	case Medium:
		return "medium"
	case Heavy:
		return "heavy"
	default:
		return "light"
	}
}

// Outcome is the kind of notification feedback.
type Outcome int

const (
	Success Outcome = iota
	Warning
	Error
)

func (o Outcome) String() string {
	switch o {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "success"
	}
}

// Feedback emits user feedback. Implementations must not block.
type Feedback interface {
	Impact(Intensity)
	Notify(Outcome)
}

// Nop discards all feedback.
type Nop struct{}

func (Nop) Impact(Intensity) {}
func (Nop) Notify(Outcome)   {}

// Terminal rings the bell on w for notify outcomes. Impacts are too frequent
// to be audible and are ignored.
type Terminal struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTerminal returns a Terminal writing to w. A nil writer yields a Nop.
func NewTerminal(w io.Writer) Feedback {
	if w == nil {
		return Nop{}
	}
	return &Terminal{w: w}
}

func (t *Terminal) Impact(Intensity) {}

func (t *Terminal) Notify(o Outcome) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 1
	if o == Error {
		n = 2
	}
	for range n {
		_, _ = t.w.Write([]byte{'\a'})
	}
}
