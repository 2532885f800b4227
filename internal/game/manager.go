package game

import (
	"math/rand"
	"time"
)

// OverlayState is the lifecycle state of the Grid Overlay Manager.
type OverlayState int

const (
	StateAbsent   OverlayState = iota // no overlay, or a drained one still mounted
	StateActive                       // overlay mounted, no removal running
	StateDraining                     // removal timer is taking cells away
	StateEnded                        // torn down at game end
)

func (s OverlayState) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StateActive:
		return "active"
	case StateDraining:
		return "draining"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Manager owns the current grid overlay and its removal timer. Create, Reset
// and Teardown are the only operations that replace either of them, and at
// most one of each exists at a time.
type Manager struct {
	sched Scheduler
	store Store
	log   *EventLog
	rng   *rand.Rand

	overlay *GridOverlay
	removal *Timer
	state   OverlayState
	nextID  int

	// TimersArmed counts removal timers armed over the manager's lifetime.
	TimersArmed int
}

// NewManager creates a manager in the Absent state. rng drives the removal
// order; pass a seeded source for reproducible runs.
func NewManager(sched Scheduler, store Store, log *EventLog, rng *rand.Rand) *Manager {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- cosmetic ordering
	}
	return &Manager{
		sched: sched,
		store: store,
		log:   log,
		rng:   rng,
	}
}

// State returns the current lifecycle state.
func (m *Manager) State() OverlayState { return m.state }

// Overlay returns the current overlay, or nil.
func (m *Manager) Overlay() *GridOverlay { return m.overlay }

// RemovalTimer returns the armed removal timer, or nil.
func (m *Manager) RemovalTimer() *Timer { return m.removal }

// Create builds an overlay over c. It does nothing if an overlay is already
// mounted (returning that overlay and false) or if c is not visible.
// Square counts outside [1,100] fall back to the 3×3 default.
func (m *Manager) Create(c Container, cfg OverlayConfig) (*GridOverlay, bool) {
	if m.overlay != nil && m.overlay.mounted {
		return m.overlay, false
	}
	if c == nil {
		m.log.Add("overlay", "skip", "no container")
		return nil, false
	}
	w, h := c.Size()
	if w <= 0 || h <= 0 {
		m.log.Addf("overlay", "skip", "container not visible (%dx%d)", w, h)
		return nil, false
	}
	squares := cfg.SquareCount
	if !ValidSquareCount(squares) {
		m.log.Addf("overlay", "default_squares", "%d invalid, using %d", squares, DefaultSquareCount)
		squares = DefaultSquareCount
	}
	dim := GridDimension(squares)
	m.nextID++
	o := newGridOverlay(m.nextID, dim, float64(w), float64(h))
	o.mounted = true
	m.overlay = o
	m.state = StateActive
	m.log.Addf("overlay", "create", "id=%d cells=%d (%dx%d) over %dx%d", o.id, o.total, dim, dim, w, h)
	return o, true
}

// ScheduleRandomRemoval arms a timer removing one random cell every
// durationSeconds/cellCount, so the overlay is empty when the round ends.
// It reports whether a timer was armed.
func (m *Manager) ScheduleRandomRemoval(o *GridOverlay, durationSeconds int) bool {
	if o == nil {
		m.log.Add("removal", "skip", "no overlay")
		return false
	}
	if o != m.overlay || !o.mounted {
		m.log.Addf("removal", "skip", "overlay %d is not current", o.id)
		return false
	}
	count := o.Remaining()
	if count == 0 {
		m.log.Add("removal", "skip", "no grid cells found in overlay")
		return false
	}
	if durationSeconds <= 0 {
		m.log.Addf("removal", "skip", "invalid round time %ds", durationSeconds)
		return false
	}
	m.cancelRemoval("rearm")

	period := time.Duration(durationSeconds) * time.Second / time.Duration(count)
	var t *Timer
	t = m.sched.Every(period, func() { m.removeRandomCell(o, t) })
	m.removal = t
	m.state = StateDraining
	m.TimersArmed++
	m.log.Addf("removal", "schedule", "round=%ds cells=%d interval=%s", durationSeconds, count, period)
	return true
}

// removeRandomCell is one removal tick. The timer stops itself in the tick
// that takes the last cell.
func (m *Manager) removeRandomCell(o *GridOverlay, t *Timer) {
	if m.removal != t || m.overlay != o {
		t.Stop()
		m.log.Addf("removal", "stale", "timer for overlay %d stopped", o.id)
		return
	}
	if o.Remaining() == 0 {
		m.finishDrain(o, t)
		return
	}
	i := m.rng.Intn(o.Remaining())
	cell := o.removeAt(i)
	m.log.Addf("removal", "tick", "index=%d cell=r%dc%d remaining=%d", i, cell.Row, cell.Col, o.Remaining())
	if o.Remaining() == 0 {
		m.finishDrain(o, t)
	}
}

func (m *Manager) finishDrain(o *GridOverlay, t *Timer) {
	t.Stop()
	m.removal = nil
	m.state = StateAbsent
	m.log.Addf("removal", "drained", "overlay %d empty after %d ticks", o.id, t.Fired())
}

// Reset replaces the current overlay with a fresh one for the next round.
// The old removal timer is stopped before the new one is armed.
func (m *Manager) Reset(c Container, cfg OverlayConfig) (*GridOverlay, bool) {
	m.cancelRemoval("reset")
	m.unmount("reset")
	o, ok := m.Create(c, cfg)
	if !ok {
		return nil, false
	}
	m.ScheduleRandomRemoval(o, cfg.RoundDurationSeconds)
	return o, true
}

// Teardown ends the session: removal stops, the overlay is unmounted and the
// persisted grid flags are cleared. A later Create starts a fresh lifecycle.
func (m *Manager) Teardown() {
	m.cancelRemoval("teardown")
	m.unmount("teardown")
	m.store.Remove(KeySquareCount)
	m.store.Remove(KeyRoundDurationLabel)
	m.state = StateEnded
	m.log.Add("overlay", "teardown", "grid mode ended")
}

func (m *Manager) cancelRemoval(reason string) {
	if m.removal == nil {
		return
	}
	if m.removal.Stop() {
		m.log.Addf("removal", "cancel", "%s after %d ticks", reason, m.removal.Fired())
	}
	m.removal = nil
}

func (m *Manager) unmount(reason string) {
	if m.overlay == nil {
		return
	}
	m.overlay.mounted = false
	m.log.Addf("overlay", "remove", "id=%d (%s)", m.overlay.id, reason)
	m.overlay = nil
	if m.state != StateEnded {
		m.state = StateAbsent
	}
}
