package game

import "time"

// Default poll intervals for host lookups.
const (
	elementPollInterval   = 500 * time.Millisecond
	reinjectPollInterval  = 2 * time.Second
	timeLabelPollInterval = time.Second
	dartsDisplayInterval  = time.Second
	dartsScoreInterval    = 2 * time.Second
	flipPollInterval      = 500 * time.Millisecond
)

// Poller repeatedly checks a condition until it holds, then runs its
// continuation exactly once.
type Poller struct {
	sched     Scheduler
	cond      func() bool
	then      func()
	timer     *Timer
	started   time.Duration
	maxWait   time.Duration
	onTimeout func()
	attempts  int
	done      bool
	cancelled bool
	timedOut  bool
}

// PollOption configures a Poller.
type PollOption func(*Poller)

// WithMaxWait gives up after d, calling onTimeout (which may be nil).
func WithMaxWait(d time.Duration, onTimeout func()) PollOption {
	return func(p *Poller) {
		p.maxWait = d
		p.onTimeout = onTimeout
	}
}

// Poll checks cond now and then every interval until it returns true, at
// which point then is called. If cond already holds, then runs before Poll
// returns and no timer is armed.
func Poll(sched Scheduler, interval time.Duration, cond func() bool, then func(), opts ...PollOption) *Poller {
	p := &Poller{
		sched:   sched,
		cond:    cond,
		then:    then,
		started: sched.Now(),
	}
	for _, o := range opts {
		o(p)
	}
	p.attempts++
	if cond() {
		p.finish()
		return p
	}
	p.timer = sched.Every(interval, p.check)
	return p
}

func (p *Poller) check() {
	if p.cancelled || p.done {
		p.timer.Stop()
		return
	}
	p.attempts++
	if p.cond() {
		p.timer.Stop()
		p.finish()
		return
	}
	if p.maxWait > 0 && p.sched.Now()-p.started >= p.maxWait {
		p.timer.Stop()
		p.timedOut = true
		if p.onTimeout != nil {
			p.onTimeout()
		}
	}
}

func (p *Poller) finish() {
	p.done = true
	if p.then != nil {
		p.then()
	}
}

// Cancel stops the poller without running its continuation.
func (p *Poller) Cancel() {
	if p == nil || p.done {
		return
	}
	p.cancelled = true
	p.timer.Stop()
}

// Pending reports whether the poller is still waiting.
func (p *Poller) Pending() bool {
	return p != nil && !p.done && !p.cancelled && !p.timedOut
}

// Done reports whether the condition was met and the continuation ran.
func (p *Poller) Done() bool { return p != nil && p.done }

// TimedOut reports whether the max wait elapsed first.
func (p *Poller) TimedOut() bool { return p != nil && p.timedOut }

// Attempts returns how many times the condition has been evaluated.
func (p *Poller) Attempts() int {
	if p == nil {
		return 0
	}
	return p.attempts
}
