package vesync

import (
	"sync"
	"time"
)

// TimerStatus is the lifecycle state of a device timer.
type TimerStatus string

// Timer states.
const (
	TimerActive TimerStatus = "active"
	TimerPaused TimerStatus = "paused"
	TimerDone   TimerStatus = "done"
)

// Timer mirrors a countdown timer running on a device. The remaining time
// is computed locally from the moment the timer was fetched, so reading it
// does not hit the API.
type Timer struct {
	// ID is the timer identifier assigned by the device.
	ID int
	// Action is what happens when the timer fires, usually "on" or "off".
	Action string

	mu        sync.Mutex
	duration  time.Duration
	started   time.Time
	remaining time.Duration
	status    TimerStatus
}

// newTimer captures a running timer with the given seconds left.
func newTimer(id int, remainingSeconds int, action string) *Timer {
	return &Timer{
		ID:       id,
		Action:   action,
		duration: time.Duration(remainingSeconds) * time.Second,
		started:  time.Now(),
		status:   TimerActive,
	}
}

// Status returns the timer's lifecycle state, transitioning to done once
// the countdown reaches zero.
func (t *Timer) Status() TimerStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tick()
	return t.status
}

// Remaining returns the time left on the countdown.
func (t *Timer) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tick()
	switch t.status {
	case TimerPaused:
		return t.remaining
	case TimerDone:
		return 0
	default:
		return t.duration - time.Since(t.started)
	}
}

// Pause freezes the countdown. Pausing a finished timer has no effect.
func (t *Timer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tick()
	if t.status != TimerActive {
		return
	}
	t.remaining = t.duration - time.Since(t.started)
	t.status = TimerPaused
}

// Resume restarts a paused countdown from where it stopped.
func (t *Timer) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status != TimerPaused {
		return
	}
	t.duration = t.remaining
	t.started = time.Now()
	t.status = TimerActive
}

// End marks the timer finished.
func (t *Timer) End() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = TimerDone
}

// tick retires an active timer whose countdown has elapsed.
// Callers must hold t.mu.
func (t *Timer) tick() {
	if t.status == TimerActive && time.Since(t.started) >= t.duration {
		t.status = TimerDone
	}
}
