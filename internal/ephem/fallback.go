package ephem

import (
	"errors"
	"sync"
	"time"

	"github.com/litescript/ls-zodiac/internal/logging"
)

// Fallback answers from Primary and substitutes Secondary when Primary
// reports ErrPositionUnavailable. Substituted positions are marked
// Approximate. Any other error, including ErrUnknownBody, is returned
// unchanged.
type Fallback struct {
	primary   Oracle
	secondary Oracle
	log       *logging.Logger

	mu     sync.Mutex
	warned map[Body]bool
}

// NewFallback composes two oracles.
func NewFallback(primary, secondary Oracle, log *logging.Logger) *Fallback {
	if log == nil {
		log = logging.Discard()
	}
	return &Fallback{
		primary:   primary,
		secondary: secondary,
		log:       log,
		warned:    make(map[Body]bool),
	}
}

// Name implements Oracle.
func (f *Fallback) Name() string {
	return f.primary.Name() + "+" + f.secondary.Name()
}

// Position implements Oracle.
func (f *Fallback) Position(body Body, t time.Time) (Position, error) {
	pos, err := f.primary.Position(body, t)
	if err == nil || !errors.Is(err, ErrPositionUnavailable) {
		return pos, err
	}

	f.noteFallback(body, err)

	pos, err2 := f.secondary.Position(body, t)
	if err2 != nil {
		return pos, errors.Join(err, err2)
	}
	pos.Approximate = true
	return pos, nil
}

// noteFallback warns once per body and logs repeats at debug level.
func (f *Fallback) noteFallback(body Body, err error) {
	f.mu.Lock()
	first := !f.warned[body]
	f.warned[body] = true
	f.mu.Unlock()

	if first {
		f.log.Warn("%s: %s unavailable, using %s: %v", body, f.primary.Name(), f.secondary.Name(), err)
		return
	}
	f.log.Debug("%s: falling back to %s", body, f.secondary.Name())
}

// Options configure NewOracle.
type Options struct {
	VSOP87Dir string
	Logger    *logging.Logger
}

// NewOracle builds the oracle for a mode.
func NewOracle(mode Mode, opts Options) Oracle {
	switch mode {
	case ModePrecise:
		return NewMeeusOracle(opts.VSOP87Dir)
	case ModeApproximate:
		return NewElementsOracle()
	default:
		return NewFallback(NewMeeusOracle(opts.VSOP87Dir), NewElementsOracle(), opts.Logger)
	}
}
