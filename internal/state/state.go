// Package state holds the chart's shared context: the active zodiac table,
// the sampled body positions and the chart derived from them.
package state

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/litescript/ls-zodiac/internal/astro"
	"github.com/litescript/ls-zodiac/internal/chart"
	"github.com/litescript/ls-zodiac/internal/ephem"
	"github.com/litescript/ls-zodiac/internal/logging"
	"github.com/litescript/ls-zodiac/internal/zodiac"
)

// EventType represents the type of state change event.
type EventType string

const (
	EventTransitionStarted   EventType = "TRANSITION_STARTED"
	EventTransitionDiscarded EventType = "TRANSITION_DISCARDED"
	EventTransitionFinished  EventType = "TRANSITION_FINISHED"
	EventConventionSet       EventType = "CONVENTION_SET"
	EventOracleFallback      EventType = "ORACLE_FALLBACK"
	EventClassificationAmbig EventType = "CLASSIFICATION_AMBIGUOUS"
)

// Event represents a notable change of the chart context.
type Event struct {
	Type       EventType `json:"type"`
	Timestamp  time.Time `json:"timestamp"`
	Run        uuid.UUID `json:"run,omitempty"`
	Convention string    `json:"convention,omitempty"`
	Bodies     []string  `json:"bodies,omitempty"`
}

// Manager is the context object for one chart session. The active table has
// a single writer (the transition animator or an explicit convention change)
// and any number of readers; all access is guarded.
type Manager struct {
	mu sync.RWMutex

	// Active table
	table      zodiac.Table
	convention zodiac.Convention
	animating  bool
	run        uuid.UUID

	// Sampled positions
	reference  time.Time
	positions  []ephem.Position
	sampled    bool
	oracleName string
	lastUpdate time.Time
	lastError  error
	stars      []astro.Star

	// Derived
	chart     chart.Chart
	ambiguous int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	log *logging.Logger
	now func() time.Time
}

// Config holds configuration for the state manager.
type Config struct {
	Convention zodiac.Convention
	Stars      []astro.Star
	MaxEvents  int
	Logger     *logging.Logger
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Convention: zodiac.ConventionTrue,
		MaxEvents:  50, // Last 50 events
	}
}

// NewManager creates a manager whose active table is cfg.Convention's.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Discard()
	}
	m := &Manager{
		table:      cfg.Convention.Table(),
		convention: cfg.Convention,
		stars:      append([]astro.Star(nil), cfg.Stars...),
		maxEvents:  maxEvents,
		events:     make([]Event, 0, maxEvents),
		log:        log,
		now:        time.Now,
	}
	m.rebuild()
	return m
}

// Table returns the active table.
func (m *Manager) Table() zodiac.Table {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.table
}

// Convention returns the convention the active table is, or is animating
// toward.
func (m *Manager) Convention() zodiac.Convention {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.convention
}

// Animating reports whether a transition is in flight.
func (m *Manager) Animating() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.animating
}

// SetConvention replaces the active table with c's canonical table
// immediately, abandoning any transition bookkeeping.
func (m *Manager) SetConvention(c zodiac.Convention) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.table = c.Table()
	m.convention = c
	m.animating = false
	m.run = uuid.Nil
	m.addEvent(Event{Type: EventConventionSet, Convention: c.String()})
	m.log.Info("convention set to %s", c)
	m.rebuild()
}

// BeginTransition records that run has started animating toward target.
// A non-nil discarded is the run it replaced.
func (m *Manager) BeginTransition(run, discarded uuid.UUID, target zodiac.Convention) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if discarded != uuid.Nil {
		m.addEvent(Event{Type: EventTransitionDiscarded, Run: discarded})
		m.log.Debug("transition %s discarded", shortRun(discarded))
	}
	m.convention = target
	m.animating = true
	m.run = run
	m.addEvent(Event{Type: EventTransitionStarted, Run: run, Convention: target.String()})
	m.log.Info("transition %s toward %s started", shortRun(run), target)
}

// CancelTransition stops tracking the in-flight run, leaving the active
// table where the last frame put it.
func (m *Manager) CancelTransition() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.animating {
		return
	}
	m.addEvent(Event{Type: EventTransitionDiscarded, Run: m.run})
	m.animating = false
	m.run = uuid.Nil
}

// SetTable publishes an animation frame as the active table. It has the
// signature of the animator's update callback.
func (m *Manager) SetTable(table zodiac.Table, done bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.table = table
	if done && m.animating {
		m.addEvent(Event{Type: EventTransitionFinished, Run: m.run, Convention: m.convention.String()})
		m.log.Info("transition %s finished", shortRun(m.run))
		m.animating = false
		m.run = uuid.Nil
	}
	m.rebuild()
}

// SetPositions stores a new sample taken at reference by the named oracle.
// err, if set, is the reason the sample could not be taken; the previous
// positions are kept in that case.
func (m *Manager) SetPositions(reference time.Time, oracleName string, positions []ephem.Position, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastUpdate = m.now()
	m.lastError = err
	if err != nil {
		m.log.Error("sampling positions for %s: %v", reference.Format(time.RFC3339), err)
		return
	}

	m.reference = reference
	m.oracleName = oracleName
	m.positions = append([]ephem.Position(nil), positions...)
	m.sampled = true

	// Approximate answers from a composed oracle mean the precise one failed.
	var fellBack []string
	for _, p := range m.positions {
		if p.Valid && p.Approximate && p.Source != oracleName {
			fellBack = append(fellBack, p.Body.String())
		}
	}
	if len(fellBack) > 0 {
		m.addEvent(Event{Type: EventOracleFallback, Bodies: fellBack})
	}

	m.rebuild()
}

// SetStars replaces the fixed stars drawn on the chart.
func (m *Manager) SetStars(stars []astro.Star) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stars = append([]astro.Star(nil), stars...)
	m.rebuild()
}

// Reference returns the instant the current positions were sampled for.
func (m *Manager) Reference() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reference
}

// HasData returns true once positions have been sampled.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sampled
}

// AmbiguousCount returns how many degraded classifications have been seen.
func (m *Manager) AmbiguousCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ambiguous
}

// rebuild reclassifies positions against the active table. Callers hold mu.
func (m *Manager) rebuild() {
	m.chart = chart.Build(m.reference, m.table, m.positions, m.stars)
	if m.chart.Degraded == 0 {
		return
	}

	m.ambiguous += m.chart.Degraded
	var names []string
	for _, p := range m.chart.Placements {
		if p.Degraded {
			names = append(names, p.Info.Name)
			m.log.Warn("%s at %.6f° matched no sign, using %s: %v",
				p.Info.Name, p.Position.LongitudeDeg, p.Sign.Name, zodiac.ErrClassificationAmbiguous)
		}
	}
	m.addEvent(Event{Type: EventClassificationAmbig, Run: m.run, Bodies: names})
}

// addEvent adds an event to the ring buffer. Callers hold mu.
func (m *Manager) addEvent(e Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = m.now()
	}
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Table      zodiac.Table
	Convention zodiac.Convention
	Animating  bool
	Run        uuid.UUID

	Reference  time.Time
	Positions  []ephem.Position
	OracleName string
	LastUpdate time.Time
	LastError  error

	Chart     chart.Chart
	Ambiguous int
	Events    []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	positions := make([]ephem.Position, len(m.positions))
	copy(positions, m.positions)

	c := m.chart
	c.Placements = append([]chart.Placement(nil), m.chart.Placements...)
	c.Stars = append([]chart.StarPlacement(nil), m.chart.Stars...)

	return Snapshot{
		Table:      m.table,
		Convention: m.convention,
		Animating:  m.animating,
		Run:        m.run,
		Reference:  m.reference,
		Positions:  positions,
		OracleName: m.oracleName,
		LastUpdate: m.lastUpdate,
		LastError:  m.lastError,
		Chart:      c,
		Ambiguous:  m.ambiguous,
		Events:     m.getEventsOrdered(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// Describe renders an event as a one-line status message.
func (e Event) Describe() string {
	switch e.Type {
	case EventTransitionStarted:
		return "→ " + e.Convention
	case EventTransitionFinished:
		return "✓ " + e.Convention
	case EventTransitionDiscarded:
		return "transition interrupted"
	case EventConventionSet:
		return "convention " + e.Convention
	case EventOracleFallback:
		return "approximate: " + strings.Join(e.Bodies, ", ")
	case EventClassificationAmbig:
		return "ambiguous: " + strings.Join(e.Bodies, ", ")
	default:
		return string(e.Type)
	}
}

func shortRun(id uuid.UUID) string {
	return id.String()[:8]
}
