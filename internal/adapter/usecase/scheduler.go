package usecase

import (
	"sync"
	"time"

	"arena-notices/internal/core/domain"
	"arena-notices/internal/core/port"
)

// SchedulerState enumerates the display lifecycle of one notice
// instance. Closed is terminal; the engine opens a fresh scheduler for
// the next candidate.
type SchedulerState int

const (
	StateIdle SchedulerState = iota
	StateWaiting
	StateVisible
	StateClosing
	StateClosed
)

func (s SchedulerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWaiting:
		return "waiting"
	case StateVisible:
		return "visible"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// CloseReason records which trigger moved the scheduler into Closing.
type CloseReason string

const (
	CloseDismissed CloseReason = "dismissed"
	CloseAutoClose CloseReason = "auto_close"
	CloseClicked   CloseReason = "clicked"
	CloseCancelled CloseReason = "cancelled"
)

// SchedulerHooks observe the state machine. OnVisible runs exactly once
// when the notice is shown, before any timers that depend on it start
// ticking. OnClosed runs exactly once no matter how many close triggers
// race. OnCountdownTick is display-only. Hooks must not call back into
// the scheduler.
type SchedulerHooks struct {
	OnVisible       func(notice domain.Notice)
	OnClosed        func(notice domain.Notice, reason CloseReason)
	OnCountdownTick func(remaining int)
}

const progressTick = 100 * time.Millisecond

// DisplayScheduler is the timer-driven state machine behind a single
// display session. All timers are owned by the instance and cancelled on
// any transition out of Visible, so a stale timer can never fire against
// a reused state.
type DisplayScheduler struct {
	notice domain.Notice
	clk    Clock
	hooks  SchedulerHooks

	mu             sync.Mutex
	state          SchedulerState
	closed         bool // single-entry guard for Closing
	delayTimer     Timer
	progressTimer  Timer
	countdownTimer Timer
	progress       float64 // 0..100 while auto-close runs
	countdownLeft  int     // seconds, display only
}

// NewDisplayScheduler builds a scheduler in Idle for one notice
// instance.
func NewDisplayScheduler(n domain.Notice, clk Clock, hooks SchedulerHooks) *DisplayScheduler {
	return &DisplayScheduler{notice: n, clk: clk, hooks: hooks, state: StateIdle}
}

// Start arms the display delay. It is a no-op outside Idle.
func (s *DisplayScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return
	}
	s.state = StateWaiting
	delay := time.Duration(s.notice.DisplayDelay) * time.Second
	s.delayTimer = s.clk.AfterFunc(delay, s.show)
}

func (s *DisplayScheduler) show() {
	s.mu.Lock()
	if s.state != StateWaiting {
		s.mu.Unlock()
		return
	}
	s.state = StateVisible
	s.countdownLeft = domain.ParseCountdown(s.notice.CountdownSpec)
	if s.countdownLeft > 0 {
		s.countdownTimer = s.clk.AfterFunc(time.Second, s.countdownStep)
	}
	if s.notice.AutoClose > 0 && s.notice.ShowProgress {
		s.progressTimer = s.clk.AfterFunc(progressTick, s.progressStep)
	}
	s.mu.Unlock()

	if s.hooks.OnVisible != nil {
		s.hooks.OnVisible(s.notice)
	}
}

// countdownStep decrements the 1-second display clock. Reaching zero
// only stops the ticker; the countdown never closes the notice itself.
func (s *DisplayScheduler) countdownStep() {
	s.mu.Lock()
	if s.state != StateVisible || s.countdownLeft <= 0 {
		s.mu.Unlock()
		return
	}
	s.countdownLeft--
	remaining := s.countdownLeft
	if remaining > 0 {
		s.countdownTimer = s.clk.AfterFunc(time.Second, s.countdownStep)
	}
	s.mu.Unlock()

	if s.hooks.OnCountdownTick != nil {
		s.hooks.OnCountdownTick(remaining)
	}
}

// progressStep advances the auto-close progress linearly from 0 to 100
// over AutoClose seconds, closing the notice on completion.
func (s *DisplayScheduler) progressStep() {
	s.mu.Lock()
	if s.state != StateVisible {
		s.mu.Unlock()
		return
	}
	total := time.Duration(s.notice.AutoClose) * time.Second
	s.progress += float64(progressTick) / float64(total) * 100
	if s.progress < 100 {
		s.progressTimer = s.clk.AfterFunc(progressTick, s.progressStep)
		s.mu.Unlock()
		return
	}
	s.progress = 100
	s.mu.Unlock()

	s.close(CloseAutoClose)
}

// Dismiss closes the notice at the viewer's request. Definitions without
// a close control reject the dismissal. Dismissing an already closed
// session is a no-op.
func (s *DisplayScheduler) Dismiss() error {
	if !s.notice.ShowClose {
		return port.ErrDismissNotAllowed
	}
	s.close(CloseDismissed)
	return nil
}

// CloseForClick closes the notice after a call-to-action activation. The
// caller fires the click hook before invoking this.
func (s *DisplayScheduler) CloseForClick() {
	s.close(CloseClicked)
}

// Cancel tears the session down regardless of state, used when the
// engine shuts down while sessions are live.
func (s *DisplayScheduler) Cancel() {
	s.close(CloseCancelled)
}

// close is the single entry into Closing. Entering twice, for example
// when a dismissal races the auto-close timer, is a no-op the second
// time: exactly one Closed transition and one set of timer
// cancellations happen.
func (s *DisplayScheduler) close(reason CloseReason) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.state = StateClosing
	for _, t := range []Timer{s.delayTimer, s.progressTimer, s.countdownTimer} {
		if t != nil {
			t.Stop()
		}
	}
	s.delayTimer, s.progressTimer, s.countdownTimer = nil, nil, nil
	s.progress = 0
	s.countdownLeft = 0
	s.state = StateClosed
	s.mu.Unlock()

	if s.hooks.OnClosed != nil {
		s.hooks.OnClosed(s.notice, reason)
	}
}

// State returns the current machine state.
func (s *DisplayScheduler) State() SchedulerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Progress returns the auto-close progress in [0,100].
func (s *DisplayScheduler) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

// CountdownLeft returns the remaining display-countdown seconds.
func (s *DisplayScheduler) CountdownLeft() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countdownLeft
}
