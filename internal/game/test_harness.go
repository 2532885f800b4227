package game

import (
	"fmt"
	"math/rand"
	"time"
)

// FakeHost is a scriptable Host for headless runs. Tests and the headless
// report flip its fields to simulate the page changing.
type FakeHost struct {
	Width, Height int
	Panorama      string
	Label         string
	LabelVisible  bool
	Cards         []*SettingsContainer
	CardsVisible  bool
	Results       []PlayerResult
	Move          MovementSettings
}

func (h *FakeHost) Size() (int, int) { return h.Width, h.Height }

func (h *FakeHost) PanoramaID() string { return h.Panorama }

func (h *FakeHost) TimeLabel() (string, bool) { return h.Label, h.LabelVisible }

func (h *FakeHost) SettingsContainers() []*SettingsContainer {
	if !h.CardsVisible {
		return nil
	}
	return h.Cards
}

func (h *FakeHost) PlayerResults() []PlayerResult { return h.Results }

func (h *FakeHost) Movement() MovementSettings { return h.Move }

// TestSession is a headless session harness: a virtual clock, an in-memory
// store, a fake host and a Session wired together with deterministic seeding.
type TestSession struct {
	Clock   *Clock
	Store   *MemStore
	Log     *EventLog
	Host    *FakeHost
	Session *Session
	Round   int

	width, height int
	seed          int64
	verbose       bool
}

// SessionOption configures a TestSession before the Session is built.
type SessionOption func(*TestSession)

// WithSeed sets the RNG seed that orders cell removal.
func WithSeed(seed int64) SessionOption {
	return func(ts *TestSession) { ts.seed = seed }
}

// WithContainerSize sets the panorama size used when a round starts.
func WithContainerSize(w, h int) SessionOption {
	return func(ts *TestSession) {
		ts.width = w
		ts.height = h
	}
}

// WithSquares stores a square count flag.
func WithSquares(n int) SessionOption {
	return func(ts *TestSession) { ts.Store.Set(KeySquareCount, fmt.Sprint(n)) }
}

// WithTimeLabel shows the given label on the time slider.
func WithTimeLabel(label string) SessionOption {
	return func(ts *TestSession) {
		ts.Host.Label = label
		ts.Host.LabelVisible = true
	}
}

// WithStoredTimeLabel writes the round time flag directly.
func WithStoredTimeLabel(label string) SessionOption {
	return func(ts *TestSession) { ts.Store.Set(KeyRoundDurationLabel, label) }
}

// WithDartsTarget stores a darts target score.
func WithDartsTarget(n int) SessionOption {
	return func(ts *TestSession) { ts.Store.Set(KeyDartsTarget, fmt.Sprint(n)) }
}

// WithSettingsCards makes local and/or online settings cards visible.
func WithSettingsCards(kinds ...SettingsKind) SessionOption {
	return func(ts *TestSession) {
		for _, k := range kinds {
			ts.Host.Cards = append(ts.Host.Cards, NewSettingsContainer(k))
		}
		ts.Host.CardsVisible = true
	}
}

// WithVerboseLog records per-poll entries too.
func WithVerboseLog(v bool) SessionOption {
	return func(ts *TestSession) { ts.verbose = v }
}

// NewTestSession builds a harness. The session is not started.
func NewTestSession(opts ...SessionOption) *TestSession {
	ts := &TestSession{
		Clock:  NewClock(),
		Store:  NewMemStore(),
		Host:   &FakeHost{},
		width:  1280,
		height: 720,
		seed:   1,
	}
	for _, o := range opts {
		o(ts)
	}
	ts.Log = NewEventLog(ts.Clock, ts.verbose)
	rng := rand.New(rand.NewSource(ts.seed)) // #nosec G404 -- test harness
	ts.Session = NewSession(ts.Host, ts.Clock, ts.Store, ts.Log, rng)
	return ts
}

// Manager returns the session's Grid Overlay Manager.
func (ts *TestSession) Manager() *Manager { return ts.Session.Overlay }

// ShowRound makes a fresh panorama visible, as when a round's imagery loads.
func (ts *TestSession) ShowRound() {
	ts.Round++
	ts.Log.SetRound(ts.Round)
	ts.Host.Width = ts.width
	ts.Host.Height = ts.height
	ts.Host.Panorama = fmt.Sprintf("pano-%d", ts.Round)
	ts.Host.CardsVisible = false
	ts.Host.LabelVisible = false
}

// HideRound hides the panorama, as on the round result screen.
func (ts *TestSession) HideRound() {
	ts.Host.Width = 0
	ts.Host.Height = 0
	ts.Host.Panorama = ""
}

// RunFor advances the clock by d.
func (ts *TestSession) RunFor(d time.Duration) {
	ts.Clock.Advance(d)
}

// RunUntil advances the clock in steps until predicate holds or max elapses.
// It returns the elapsed time, or -1 if the predicate never held.
func (ts *TestSession) RunUntil(predicate func(*TestSession) bool, step, max time.Duration) time.Duration {
	start := ts.Clock.Now()
	for ts.Clock.Now()-start < max {
		if predicate(ts) {
			return ts.Clock.Now() - start
		}
		ts.Clock.Advance(step)
	}
	if predicate(ts) {
		return ts.Clock.Now() - start
	}
	return -1
}
