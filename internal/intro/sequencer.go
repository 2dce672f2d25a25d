// Package intro implements the intro portal: a linear state machine over an
// ordered slide deck where each slide carries a display duration. Progression
// is driven by elapsed time fed in from the caller's timer; manual navigation
// clamps at the deck bounds and the mute toggle is orthogonal to progression.
package intro

import (
	"time"

	"github.com/academia-crecer/academia-api/internal/models"
)

// State identifies the sequencer phase.
type State int

const (
	StateNotStarted State = iota
	StatePlaying
	StateCompleted
)

// String returns the lowercase label used in API payloads.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateCompleted:
		return "completed"
	default:
		return "not_started"
	}
}

// Sequencer advances through an immutable slide deck.
type Sequencer struct {
	slides  []models.IntroSlide
	state   State
	index   int
	elapsed time.Duration
	muted   bool
}

// New builds a sequencer over the given deck. An empty deck completes
// immediately on Start.
func New(slides []models.IntroSlide) *Sequencer {
	deck := make([]models.IntroSlide, len(slides))
	copy(deck, slides)
	return &Sequencer{slides: deck}
}

// Start transitions from NotStarted to Playing at the first slide.
func (s *Sequencer) Start() {
	if s.state != StateNotStarted {
		return
	}
	if len(s.slides) == 0 {
		s.state = StateCompleted
		return
	}
	s.state = StatePlaying
	s.index = 0
	s.elapsed = 0
}

// Advance feeds elapsed wall time into the sequencer. When the accumulated
// time reaches the current slide's duration the deck moves forward, carrying
// any remainder; past the last slide the sequencer completes.
func (s *Sequencer) Advance(delta time.Duration) {
	if s.state != StatePlaying || delta <= 0 {
		return
	}

	s.elapsed += delta
	for s.state == StatePlaying {
		duration := s.currentDuration()
		if s.elapsed < duration {
			return
		}
		remainder := s.elapsed - duration
		s.stepForward()
		s.elapsed = remainder
	}
}

// Next manually moves one slide forward, clamped at the last slide. Only
// elapsed time completes the deck.
func (s *Sequencer) Next() {
	if s.state != StatePlaying {
		return
	}
	if s.index+1 < len(s.slides) {
		s.index++
	}
	s.elapsed = 0
}

// Prev manually moves one slide back, clamped at the first slide.
func (s *Sequencer) Prev() {
	if s.state != StatePlaying {
		return
	}
	if s.index > 0 {
		s.index--
	}
	s.elapsed = 0
}

// ToggleMute flips the mute flag without affecting progression.
func (s *Sequencer) ToggleMute() {
	s.muted = !s.muted
}

// Muted reports the current mute flag.
func (s *Sequencer) Muted() bool {
	return s.muted
}

// State reports the current phase.
func (s *Sequencer) State() State {
	return s.state
}

// Current returns the active slide while playing.
func (s *Sequencer) Current() (models.IntroSlide, bool) {
	if s.state != StatePlaying {
		return models.IntroSlide{}, false
	}
	return s.slides[s.index], true
}

// Index returns the zero-based position of the active slide.
func (s *Sequencer) Index() int {
	return s.index
}

// Reset returns the sequencer to NotStarted, preserving the mute flag.
func (s *Sequencer) Reset() {
	s.state = StateNotStarted
	s.index = 0
	s.elapsed = 0
}

func (s *Sequencer) stepForward() {
	if s.index+1 >= len(s.slides) {
		s.state = StateCompleted
		s.elapsed = 0
		return
	}
	s.index++
	s.elapsed = 0
}

func (s *Sequencer) currentDuration() time.Duration {
	duration := time.Duration(s.slides[s.index].DurationMS) * time.Millisecond
	if duration <= 0 {
		// Zero-duration slides would spin the advance loop forever.
		duration = time.Second
	}
	return duration
}
