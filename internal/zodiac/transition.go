package zodiac

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTransitionDuration is how long a convention change animates.
const DefaultTransitionDuration = time.Second

// Transition is one animated change from a snapshot table to a canonical
// table. It is a plain value: Step computes the frame for an instant without
// mutating anything.
type Transition struct {
	Run      uuid.UUID
	Target   Convention
	From     Table
	To       Table
	Started  time.Time
	Duration time.Duration
	Active   bool
}

// Progress returns linear progress in [0, 1] at now.
func (tr Transition) Progress(now time.Time) float64 {
	if tr.Duration <= 0 {
		return 1
	}
	elapsed := now.Sub(tr.Started)
	if elapsed <= 0 {
		return 0
	}
	p := float64(elapsed) / float64(tr.Duration)
	if p > 1 {
		return 1
	}
	return p
}

// Step returns the table for now and whether the transition has finished.
// The finished frame is exactly To.
func (tr Transition) Step(now time.Time) (Table, bool) {
	linear := tr.Progress(now)
	if linear >= 1 {
		return tr.To, true
	}
	return Interpolate(tr.From, tr.To, EaseInOut(linear)), false
}

// Animator drives at most one Transition at a time. It is owned by a single
// goroutine (the UI update loop) and is not safe for concurrent use.
type Animator struct {
	duration time.Duration
	current  Transition
	onUpdate func(table Table, done bool)
}

// NewAnimator creates an idle animator. onUpdate, if non-nil, receives every
// frame produced by Tick; the final frame of a run has done set.
func NewAnimator(duration time.Duration, onUpdate func(table Table, done bool)) *Animator {
	return &Animator{
		duration: duration,
		onUpdate: onUpdate,
	}
}

// SetDuration changes the duration used by subsequent runs.
func (a *Animator) SetDuration(d time.Duration) {
	a.duration = d
}

// Duration returns the duration used for new runs.
func (a *Animator) Duration() time.Duration {
	return a.duration
}

// Start begins a transition from current to the target convention's table.
// Any in-flight run is discarded without completing; its id is returned as
// discarded (uuid.Nil when the animator was idle).
func (a *Animator) Start(target Convention, current Table, now time.Time) (run, discarded uuid.UUID) {
	if a.current.Active {
		discarded = a.current.Run
	}
	a.current = Transition{
		Run:      uuid.New(),
		Target:   target,
		From:     current,
		To:       target.Table(),
		Started:  now,
		Duration: a.duration,
		Active:   true,
	}
	return a.current.Run, discarded
}

// Tick advances the active run to now. It reports false when there is no
// active run. After the frame that reaches To the animator is idle.
func (a *Animator) Tick(now time.Time) (Table, bool) {
	if !a.current.Active {
		return Table{}, false
	}

	table, done := a.current.Step(now)
	if done {
		a.current.Active = false
	}
	if a.onUpdate != nil {
		a.onUpdate(table, done)
	}
	return table, true
}

// Cancel stops the active run. No further frames are produced for it.
func (a *Animator) Cancel() {
	a.current.Active = false
}

// Active reports whether a run is in progress.
func (a *Animator) Active() bool {
	return a.current.Active
}

// Run returns the id of the active run, or uuid.Nil when idle.
func (a *Animator) Run() uuid.UUID {
	if !a.current.Active {
		return uuid.Nil
	}
	return a.current.Run
}

// Current returns a copy of the most recent transition.
func (a *Animator) Current() Transition {
	return a.current
}
