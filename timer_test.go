package vesync

import (
	"testing"
	"time"
)

func TestTimerCountdown(t *testing.T) {
	tm := newTimer(1, 3600, "off")
	if tm.Status() != TimerActive {
		t.Fatalf("status = %q, want active", tm.Status())
	}
	if r := tm.Remaining(); r <= 0 || r > time.Hour {
		t.Errorf("remaining = %v, want (0, 1h]", r)
	}
}

func TestTimerExpiry(t *testing.T) {
	tm := newTimer(1, 0, "off")
	if tm.Status() != TimerDone {
		t.Fatalf("status = %q, want done", tm.Status())
	}
	if r := tm.Remaining(); r != 0 {
		t.Errorf("remaining = %v, want 0", r)
	}
}

func TestTimerPauseResume(t *testing.T) {
	tm := newTimer(1, 3600, "off")

	tm.Pause()
	if tm.Status() != TimerPaused {
		t.Fatalf("status = %q, want paused", tm.Status())
	}
	frozen := tm.Remaining()
	time.Sleep(10 * time.Millisecond)
	if tm.Remaining() != frozen {
		t.Error("remaining should not move while paused")
	}

	tm.Resume()
	if tm.Status() != TimerActive {
		t.Fatalf("status = %q, want active", tm.Status())
	}
	if r := tm.Remaining(); r > frozen {
		t.Errorf("remaining = %v, want at most %v", r, frozen)
	}

	// Resume on an active timer is a no-op.
	tm.Resume()
	if tm.Status() != TimerActive {
		t.Errorf("status = %q, want active", tm.Status())
	}
}

func TestTimerEnd(t *testing.T) {
	tm := newTimer(1, 3600, "on")
	tm.End()
	if tm.Status() != TimerDone {
		t.Fatalf("status = %q, want done", tm.Status())
	}
	tm.Pause()
	if tm.Status() != TimerDone {
		t.Error("pause should not revive a finished timer")
	}
}
