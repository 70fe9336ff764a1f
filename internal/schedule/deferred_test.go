package schedule

import (
	"testing"
	"time"
)

func TestAfterFuncFires(t *testing.T) {
	r := NewTimerRunner()
	defer r.Stop()

	done := make(chan struct{})
	r.AfterFunc(10*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("deferred action never ran")
	}
}

func TestStopCancelsPending(t *testing.T) {
	r := NewTimerRunner()

	fired := make(chan struct{}, 1)
	r.AfterFunc(30*time.Millisecond, func() { fired <- struct{}{} })
	r.Stop()

	select {
	case <-fired:
		t.Fatal("action ran after Stop")
	case <-time.After(80 * time.Millisecond):
	}
}

func TestAfterFuncAfterStopIsNoOp(t *testing.T) {
	r := NewTimerRunner()
	r.Stop()

	fired := make(chan struct{}, 1)
	r.AfterFunc(time.Millisecond, func() { fired <- struct{}{} })

	select {
	case <-fired:
		t.Fatal("stopped runner must not schedule new actions")
	case <-time.After(50 * time.Millisecond):
	}
}
