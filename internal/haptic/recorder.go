package haptic

import "sync"

// Recorder captures feedback for assertions in tests.
type Recorder struct {
	mu       sync.Mutex
	impacts  []Intensity
	outcomes []Outcome
}

func (r *Recorder) Impact(i Intensity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.impacts = append(r.impacts, i)
}

func (r *Recorder) Notify(o Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
}

// Impacts returns the recorded impacts in call order.
func (r *Recorder) Impacts() []Intensity {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Intensity(nil), r.impacts...)
}

// Outcomes returns the recorded notify outcomes in call order.
func (r *Recorder) Outcomes() []Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Outcome(nil), r.outcomes...)
}

// Reset clears everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.impacts = nil
	r.outcomes = nil
}
