// Package countdown renders the time left in an auction window and
// signals, exactly once, when the window closes.
package countdown

import (
	"context"
	"fmt"
	"sync"
	"time"

	"k8s.io/utils/clock"
)

// DefaultPeriod is the tick interval of Run
const DefaultPeriod = time.Second

// EndedLabel is rendered once the window has closed
const EndedLabel = "ENDED"

// Phase is the position of now relative to the auction window
type Phase int

const (
	PhaseUpcoming Phase = iota
	PhaseLive
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseUpcoming:
		return "upcoming"
	case PhaseLive:
		return "live"
	default:
		return "ended"
	}
}

// MarshalText renders the phase by name
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// State is one rendered frame
type State struct {
	Phase     Phase         `json:"phase"`
	Remaining time.Duration `json:"remaining_ns"`
	Label     string        `json:"label"`
}

// Format renders d as "Hh Mm Ss", floored to whole seconds. Hours are not
// wrapped at a day. Negative durations render as zero.
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%dh %dm %ds", secs/3600, (secs%3600)/60, secs%60)
}

// Presenter tracks one auction window. It only moves forward through
// UPCOMING, LIVE and ENDED; ENDED is terminal.
type Presenter struct {
	start   *time.Time
	end     time.Time
	clock   clock.WithTicker
	period  time.Duration
	onEnded func()

	mu    sync.Mutex
	phase Phase
}

// Option customises a Presenter
type Option func(*Presenter)

// WithPeriod overrides the tick period
func WithPeriod(d time.Duration) Option {
	return func(p *Presenter) {
		if d > 0 {
			p.period = d
		}
	}
}

// WithStart sets the window opening; without it the window is live until end
func WithStart(start *time.Time) Option {
	return func(p *Presenter) { p.start = start }
}

// AlreadyEnded starts the presenter in the terminal state without firing
// onEnded. Use it when the server already reports the auction as ended.
func AlreadyEnded() Option {
	return func(p *Presenter) { p.phase = PhaseEnded }
}

// New creates a Presenter for a window closing at end. onEnded may be nil.
func New(end time.Time, clk clock.WithTicker, onEnded func(), opts ...Option) *Presenter {
	if clk == nil {
		clk = clock.RealClock{}
	}
	p := &Presenter{
		end:     end,
		clock:   clk,
		period:  DefaultPeriod,
		onEnded: onEnded,
		phase:   PhaseUpcoming,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Tick computes the frame for now. The transition into ENDED calls
// onEnded exactly once; later ticks return the terminal frame unchanged.
func (p *Presenter) Tick(now time.Time) State {
	p.mu.Lock()
	if p.phase == PhaseEnded {
		p.mu.Unlock()
		return State{Phase: PhaseEnded, Label: EndedLabel}
	}

	remaining := p.end.Sub(now)
	if remaining <= 0 {
		p.phase = PhaseEnded
		p.mu.Unlock()
		if p.onEnded != nil {
			p.onEnded()
		}
		return State{Phase: PhaseEnded, Label: EndedLabel}
	}

	phase := PhaseLive
	if p.start != nil && now.Before(*p.start) {
		phase = PhaseUpcoming
		remaining = p.start.Sub(now)
	}
	if phase < p.phase {
		phase = p.phase
		remaining = p.end.Sub(now)
	}
	p.phase = phase
	p.mu.Unlock()

	return State{Phase: phase, Remaining: remaining, Label: Format(remaining)}
}

// Ended reports whether the terminal state has been reached
func (p *Presenter) Ended() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.phase == PhaseEnded
}

// Run emits a frame immediately and then once per period until the
// window ends or ctx is cancelled. The ticker is stopped on return.
func (p *Presenter) Run(ctx context.Context, emit func(State)) {
	st := p.Tick(p.clock.Now())
	emit(st)
	if st.Phase == PhaseEnded {
		return
	}

	ticker := p.clock.NewTicker(p.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C():
			st := p.Tick(now)
			emit(st)
			if st.Phase == PhaseEnded {
				return
			}
		}
	}
}
