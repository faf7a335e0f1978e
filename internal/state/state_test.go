package state

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/litescript/ls-zodiac/internal/astro"
	"github.com/litescript/ls-zodiac/internal/ephem"
	"github.com/litescript/ls-zodiac/internal/zodiac"
)

var ref = time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)

func samplePositions() []ephem.Position {
	return []ephem.Position{
		{Body: ephem.BodySun, Time: ref, LongitudeDeg: 90.3, Source: "meeus", Valid: true},
		{Body: ephem.BodyMoon, Time: ref, LongitudeDeg: 245, Source: "meeus", Valid: true},
		{Body: ephem.BodyMars, Time: ref, LongitudeDeg: 29.5, Source: "elements", Approximate: true, Valid: true},
	}
}

func TestNewManager(t *testing.T) {
	cfg := DefaultConfig()
	m := NewManager(cfg)

	if m == nil {
		t.Fatal("NewManager returned nil")
	}
	if m.Table() != zodiac.TrueTable() {
		t.Error("initial table should be the true table")
	}
	if m.Convention() != zodiac.ConventionTrue {
		t.Errorf("Convention = %v, want true", m.Convention())
	}
	if m.HasData() {
		t.Error("HasData should be false initially")
	}
	if m.Animating() {
		t.Error("Animating should be false initially")
	}
}

func TestManager_SetPositions(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.SetPositions(ref, "meeus+elements", samplePositions(), nil)

	if !m.HasData() {
		t.Error("HasData should be true after SetPositions")
	}
	if !m.Reference().Equal(ref) {
		t.Errorf("Reference = %v, want %v", m.Reference(), ref)
	}

	snap := m.Snapshot()
	if len(snap.Chart.Placements) != 3 {
		t.Fatalf("placements = %d, want 3", len(snap.Chart.Placements))
	}
	if snap.OracleName != "meeus+elements" {
		t.Errorf("OracleName = %q", snap.OracleName)
	}
	if snap.Chart.Placements[0].Sign.Name != "Taurus" {
		t.Errorf("Sun at 90.3 (true) = %s, want Taurus", snap.Chart.Placements[0].Sign.Name)
	}
	if snap.Chart.Approximate != 1 {
		t.Errorf("Approximate = %d, want 1", snap.Chart.Approximate)
	}

	events := m.RecentEvents(10)
	if len(events) != 1 || events[0].Type != EventOracleFallback {
		t.Fatalf("events = %+v, want one ORACLE_FALLBACK", events)
	}
	if len(events[0].Bodies) != 1 || events[0].Bodies[0] != "Mars" {
		t.Errorf("fallback bodies = %v, want [Mars]", events[0].Bodies)
	}
}

func TestManager_SetPositionsApproximateOracle(t *testing.T) {
	m := NewManager(DefaultConfig())
	positions := []ephem.Position{
		{Body: ephem.BodySun, LongitudeDeg: 10, Source: "elements", Approximate: true, Valid: true},
	}
	m.SetPositions(ref, "elements", positions, nil)

	if events := m.RecentEvents(10); len(events) != 0 {
		t.Errorf("approximate oracle should not report fallbacks, got %+v", events)
	}
}

func TestManager_SetPositionsError(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.SetPositions(ref, "meeus", samplePositions(), nil)

	sampleErr := errors.New("sample failed")
	m.SetPositions(ref.Add(24*time.Hour), "meeus", nil, sampleErr)

	snap := m.Snapshot()
	if snap.LastError != sampleErr {
		t.Errorf("LastError = %v, want %v", snap.LastError, sampleErr)
	}
	if len(snap.Positions) != 3 || !snap.Reference.Equal(ref) {
		t.Error("failed sample should keep previous positions")
	}
}

func TestManager_SetConvention(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.SetPositions(ref, "meeus", samplePositions(), nil)

	m.SetConvention(zodiac.ConventionTraditional)

	if m.Table() != zodiac.TraditionalTable() {
		t.Error("table should be traditional after SetConvention")
	}
	snap := m.Snapshot()
	if got := snap.Chart.Placements[0].Sign.Name; got != "Cancer" {
		t.Errorf("Sun at 90.3 (traditional) = %s, want Cancer", got)
	}
	events := m.RecentEvents(1)
	if events[0].Type != EventConventionSet || events[0].Convention != "traditional" {
		t.Errorf("last event = %+v", events[0])
	}
}

func TestManager_TransitionLifecycle(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.SetPositions(ref, "meeus", samplePositions(), nil)

	anim := zodiac.NewAnimator(time.Second, m.SetTable)
	start := time.Now()

	run, discarded := anim.Start(zodiac.ConventionTraditional, m.Table(), start)
	m.BeginTransition(run, discarded, zodiac.ConventionTraditional)

	if !m.Animating() {
		t.Fatal("Animating should be true after BeginTransition")
	}
	if m.Convention() != zodiac.ConventionTraditional {
		t.Error("Convention should report the target while animating")
	}

	anim.Tick(start.Add(500 * time.Millisecond))
	mid := m.Table()
	if mid == zodiac.TrueTable() || mid == zodiac.TraditionalTable() {
		t.Error("mid-transition table should be interpolated")
	}
	if m.Snapshot().Run != run {
		t.Error("snapshot should carry the active run")
	}

	anim.Tick(start.Add(time.Second))
	if m.Animating() {
		t.Error("Animating should be false after the final frame")
	}
	if m.Table() != zodiac.TraditionalTable() {
		t.Error("final table should be exactly traditional")
	}

	var types []EventType
	for _, e := range m.RecentEvents(10) {
		if e.Type == EventOracleFallback {
			continue
		}
		types = append(types, e.Type)
	}
	want := []EventType{EventTransitionStarted, EventTransitionFinished}
	if len(types) != len(want) || types[0] != want[0] || types[1] != want[1] {
		t.Errorf("events = %v, want %v", types, want)
	}
}

func TestManager_TransitionRestart(t *testing.T) {
	m := NewManager(DefaultConfig())
	anim := zodiac.NewAnimator(time.Second, m.SetTable)
	start := time.Now()

	run1, _ := anim.Start(zodiac.ConventionTraditional, m.Table(), start)
	m.BeginTransition(run1, uuid.Nil, zodiac.ConventionTraditional)
	anim.Tick(start.Add(300 * time.Millisecond))

	run2, discarded := anim.Start(zodiac.ConventionTrue, m.Table(), start.Add(300*time.Millisecond))
	m.BeginTransition(run2, discarded, zodiac.ConventionTrue)

	if discarded != run1 {
		t.Errorf("discarded = %v, want %v", discarded, run1)
	}

	events := m.RecentEvents(10)
	if len(events) != 3 {
		t.Fatalf("events = %d, want 3", len(events))
	}
	if events[1].Type != EventTransitionDiscarded || events[1].Run != run1 {
		t.Errorf("second event = %+v, want discard of first run", events[1])
	}
	if events[2].Type != EventTransitionStarted || events[2].Run != run2 {
		t.Errorf("third event = %+v, want start of second run", events[2])
	}
}

func TestManager_CancelTransition(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.CancelTransition()
	if len(m.RecentEvents(10)) != 0 {
		t.Error("cancel while idle should not log")
	}

	run := uuid.New()
	m.BeginTransition(run, uuid.Nil, zodiac.ConventionTraditional)
	m.CancelTransition()

	if m.Animating() {
		t.Error("Animating should be false after cancel")
	}
	events := m.RecentEvents(1)
	if events[0].Type != EventTransitionDiscarded || events[0].Run != run {
		t.Errorf("last event = %+v", events[0])
	}
}

func TestManager_AmbiguousClassification(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.SetPositions(ref, "meeus", samplePositions(), nil)

	// A table with a gap between Aries and Taurus.
	gappy := zodiac.TraditionalTable()
	gappy[0].End = 29

	m.SetTable(gappy, false)

	if m.AmbiguousCount() != 1 {
		t.Errorf("AmbiguousCount = %d, want 1", m.AmbiguousCount())
	}
	snap := m.Snapshot()
	if snap.Chart.Degraded != 1 {
		t.Errorf("Chart.Degraded = %d, want 1", snap.Chart.Degraded)
	}
	mars, ok := snap.Chart.Placement(ephem.BodyMars)
	if !ok || !mars.Degraded || mars.Sign.Name != "Aries" {
		t.Errorf("Mars = %+v, want degraded Aries", mars)
	}

	events := m.RecentEvents(1)
	if events[0].Type != EventClassificationAmbig || events[0].Bodies[0] != "Mars" {
		t.Errorf("last event = %+v", events[0])
	}
}

func TestManager_SetStars(t *testing.T) {
	m := NewManager(DefaultConfig())
	stars, err := astro.DefaultStarCatalog().Select([]string{"Spica"})
	if err != nil {
		t.Fatal(err)
	}
	m.SetStars(stars)

	snap := m.Snapshot()
	if len(snap.Chart.Stars) != 1 || snap.Chart.Stars[0].Sign.Name != "Virgo" {
		t.Errorf("stars = %+v, want Spica in Virgo", snap.Chart.Stars)
	}
}

func TestManager_Snapshot_IsCopy(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.SetPositions(ref, "meeus", samplePositions(), nil)

	snap := m.Snapshot()
	snap.Positions[0].LongitudeDeg = 999
	snap.Chart.Placements[0].Sign.Name = "Ophiuchus"

	snap2 := m.Snapshot()
	if snap2.Positions[0].LongitudeDeg == 999 {
		t.Error("Snapshot position modification affected manager state")
	}
	if snap2.Chart.Placements[0].Sign.Name == "Ophiuchus" {
		t.Error("Snapshot placement modification affected manager state")
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	m := NewManager(DefaultConfig())

	var wg sync.WaitGroup
	iterations := 100

	// Writer goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()
		tables := []zodiac.Table{zodiac.TrueTable(), zodiac.TraditionalTable()}
		for i := 0; i < iterations; i++ {
			m.SetTable(tables[i%2], false)
			m.SetPositions(ref.Add(time.Duration(i)*time.Hour), "meeus", samplePositions(), nil)
		}
	}()

	// Reader goroutines
	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				_ = m.Snapshot()
				_ = m.Table()
				_ = m.HasData()
				_ = m.RecentEvents(5)
			}
		}()
	}

	wg.Wait()
}

func TestManager_EventRingBuffer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxEvents = 5
	m := NewManager(cfg)

	clock := ref
	m.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	// Generate more events than buffer size
	conv := zodiac.ConventionTrue
	for i := 0; i < 10; i++ {
		conv = conv.Toggle()
		m.SetConvention(conv)
	}

	events := m.RecentEvents(100)
	if len(events) != 5 {
		t.Errorf("events count = %d, want 5 (max)", len(events))
	}

	// Verify events are ordered chronologically
	for i := 1; i < len(events); i++ {
		if events[i].Timestamp.Before(events[i-1].Timestamp) {
			t.Errorf("events not in chronological order at index %d", i)
		}
	}

	if got := m.RecentEvents(2); len(got) != 2 || got[1].Convention != "true" {
		t.Errorf("RecentEvents(2) = %+v", got)
	}
}

func TestEventDescribe(t *testing.T) {
	tests := []struct {
		e    Event
		want string
	}{
		{Event{Type: EventTransitionStarted, Convention: "traditional"}, "→ traditional"},
		{Event{Type: EventTransitionFinished, Convention: "true"}, "✓ true"},
		{Event{Type: EventOracleFallback, Bodies: []string{"Mars", "Venus"}}, "approximate: Mars, Venus"},
		{Event{Type: EventType("OTHER")}, "OTHER"},
	}
	for _, tt := range tests {
		if got := tt.e.Describe(); got != tt.want {
			t.Errorf("Describe() = %q, want %q", got, tt.want)
		}
	}
}
