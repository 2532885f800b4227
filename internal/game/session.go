package game

import "math/rand"

// Host is the game page the session observes. Every lookup is optional: a
// zero size, empty id or false flag means the element is not there yet.
type Host interface {
	Container
	PanoramaID() string
	TimeLabel() (string, bool)
	SettingsContainers() []*SettingsContainer
	PlayerResults() []PlayerResult
	Movement() MovementSettings
}

// Session wires host signals to the Grid Overlay Manager and runs the
// background pollers of the companion modes.
type Session struct {
	host  Host
	sched Scheduler
	store Store
	log   *EventLog

	Overlay  *Manager
	Settings *SettingsInjector
	Darts    *DartsTracker
	Flip     *PanoramaFlip

	reinject      *Timer
	timeSync      *Timer
	dartsDisplay  *Timer
	dartsScore    *Timer
	flipMonitor   *Timer
	initialWait   *Poller
	panoramaWait  *Poller
	containerWait *Poller

	running bool
	// Resets counts overlay resets triggered by round transitions.
	Resets int
}

// NewSession builds a session; nothing runs until Start.
func NewSession(host Host, sched Scheduler, store Store, log *EventLog, rng *rand.Rand) *Session {
	return &Session{
		host:     host,
		sched:    sched,
		store:    store,
		log:      log,
		Overlay:  NewManager(sched, store, log, rng),
		Settings: NewSettingsInjector(store, log, GridModeUI, DartsModeUI),
		Darts:    NewDartsTracker(store, log),
		Flip:     NewPanoramaFlip(log),
	}
}

// Running reports whether the session's pollers are armed.
func (s *Session) Running() bool { return s.running }

// Start injects the settings UI, arms the pollers and waits for the first
// panorama to lay the initial overlay. Starting a running session is a no-op.
func (s *Session) Start() {
	if s.running {
		return
	}
	s.running = true
	s.log.Add("session", "start", "grid mode active")

	s.Settings.InjectAll(s.host.SettingsContainers())
	s.reinject = s.sched.Every(reinjectPollInterval, func() {
		if n := s.Settings.InjectAll(s.host.SettingsContainers()); n > 0 {
			s.log.Addf("poll", "reinject", "%d group(s) were missing", n)
		}
	})
	s.timeSync = s.sched.Every(timeLabelPollInterval, s.syncTimeLabel)
	s.Darts.RefreshTarget()
	s.dartsDisplay = s.sched.Every(dartsDisplayInterval, func() { s.Darts.RefreshTarget() })
	s.dartsScore = s.sched.Every(dartsScoreInterval, func() { s.Darts.Check(s.host.PlayerResults()) })
	s.flipMonitor = s.sched.Every(flipPollInterval, func() { s.Flip.Observe(s.host.PanoramaID() != "") })

	s.initialWait = Poll(s.sched, elementPollInterval, s.containerVisible, s.createInitial)
}

// PanoramaShown lays the initial overlay straight away when the host reports
// the first panorama, instead of waiting for the next container poll.
func (s *Session) PanoramaShown() {
	if !s.running || !s.containerVisible() {
		return
	}
	s.initialWait.Cancel()
	s.createInitial()
}

func (s *Session) createInitial() {
	if s.Overlay.Overlay() != nil {
		return
	}
	cfg := LoadOverlayConfig(s.store, s.log)
	if o, ok := s.Overlay.Create(s.host, cfg); ok {
		s.Overlay.ScheduleRandomRemoval(o, cfg.RoundDurationSeconds)
	}
}

func (s *Session) containerVisible() bool {
	w, h := s.host.Size()
	return w > 0 && h > 0
}

// syncTimeLabel copies the time slider label into the store when it changed.
func (s *Session) syncTimeLabel() {
	label, ok := s.host.TimeLabel()
	if !ok {
		return
	}
	if stored, _ := s.store.Get(KeyRoundDurationLabel); stored == label {
		return
	}
	s.store.Set(KeyRoundDurationLabel, label)
	s.log.Addf("poll", "round_time", "updated round time to %s", label)
}

// NextRound handles the local lobby's Next Round button: the overlay is
// rebuilt straight away if the panorama is visible.
func (s *Session) NextRound() {
	if !s.running {
		return
	}
	s.log.Add("session", "signal", "next round")
	s.syncTimeLabel()
	if !s.containerVisible() {
		s.log.Add("overlay", "skip", "street view not visible on next round")
		return
	}
	s.reset()
}

// Continue handles the online Continue button.
func (s *Session) Continue() { s.resetForNewPanorama("continue") }

// PlayAgain handles the online Play again button.
func (s *Session) PlayAgain() { s.resetForNewPanorama("play again") }

// StartOnlineGame handles the online Start Online Game button.
func (s *Session) StartOnlineGame() { s.resetForNewPanorama("start online game") }

// resetForNewPanorama waits for the panorama to change before rebuilding the
// overlay, so the new grid never covers the previous round's imagery.
func (s *Session) resetForNewPanorama(trigger string) {
	if !s.running {
		return
	}
	s.log.Addf("session", "signal", "%s", trigger)
	s.syncTimeLabel()
	last := s.host.PanoramaID()
	s.panoramaWait.Cancel()
	s.containerWait.Cancel()
	s.panoramaWait = Poll(s.sched, elementPollInterval, func() bool {
		id := s.host.PanoramaID()
		return id != "" && id != last
	}, func() {
		s.log.Addf("poll", "panorama", "new panorama %s", s.host.PanoramaID())
		s.containerWait = Poll(s.sched, elementPollInterval, s.containerVisible, s.reset)
	})
}

func (s *Session) reset() {
	cfg := LoadOverlayConfig(s.store, s.log)
	if _, ok := s.Overlay.Reset(s.host, cfg); ok {
		s.Resets++
		s.log.Add("session", "reset", "grid reset")
	}
}

// BackToLobby ends grid mode: every poller and timer stops, the overlay and
// injected Grid Mode UI are removed and the grid flags are cleared.
func (s *Session) BackToLobby() {
	if !s.running {
		return
	}
	s.log.Add("session", "signal", "back to lobby")
	for _, t := range []*Timer{s.reinject, s.timeSync, s.dartsDisplay, s.dartsScore, s.flipMonitor} {
		t.Stop()
	}
	s.initialWait.Cancel()
	s.panoramaWait.Cancel()
	s.containerWait.Cancel()
	s.Overlay.Teardown()
	s.Settings.Remove(s.host.SettingsContainers(), GridModeUI.GroupID)
	s.Flip.Observe(false)
	s.running = false
	s.log.Add("session", "end", "grid mode script ended")
}
