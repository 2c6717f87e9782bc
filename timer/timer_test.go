package timer

import (
	"testing"
	"time"
)

func TestIntervalArmsOnFirstCall(t *testing.T) {
	now := time.Unix(0, 0)
	iv := NewInterval(time.Second)
	iv.now = func() time.Time { return now }

	if iv.Elapsed() {
		t.Fatal("first call reported elapsed")
	}
	now = now.Add(500 * time.Millisecond)
	if iv.Elapsed() {
		t.Fatal("elapsed before the interval passed")
	}
	now = now.Add(500 * time.Millisecond)
	if !iv.Elapsed() {
		t.Fatal("not elapsed after a full interval")
	}
	// Rearmed: the next call starts a new interval.
	if iv.Elapsed() {
		t.Fatal("elapsed immediately after rearm")
	}
	now = now.Add(time.Second)
	if !iv.Elapsed() {
		t.Fatal("not elapsed after the second interval")
	}
}

func TestSchedulerAfter(t *testing.T) {
	out := make(chan func(), 1)
	s := NewScheduler(out)

	fired := false
	s.After(5*time.Millisecond, func() { fired = true })

	select {
	case job := <-out:
		job()
	case <-time.After(2 * time.Second):
		t.Fatal("no job delivered")
	}
	if !fired {
		t.Fatal("job did not run")
	}
}

func TestSchedulerAfterCancel(t *testing.T) {
	out := make(chan func(), 1)
	s := NewScheduler(out)

	cancel := s.After(50*time.Millisecond, func() {})
	cancel()

	select {
	case <-out:
		t.Fatal("cancelled job delivered")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestSchedulerStopAbandonsPending(t *testing.T) {
	out := make(chan func()) // unbuffered: delivery blocks until a receive
	s := NewScheduler(out)

	s.After(time.Millisecond, func() {})
	time.Sleep(50 * time.Millisecond) // timer has fired, send is parked
	s.Stop()

	select {
	case <-out:
		t.Fatal("job delivered after Stop")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSchedulerStopEndsEvery(t *testing.T) {
	out := make(chan func())
	s := NewScheduler(out)
	s.Every(5*time.Millisecond, func() {})
	s.Stop()

	select {
	case <-out:
		t.Fatal("tick delivered after Stop")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSchedulerEvery(t *testing.T) {
	out := make(chan func(), 8)
	s := NewScheduler(out)

	count := 0
	cancel := s.Every(5*time.Millisecond, func() { count++ })

	for i := 0; i < 3; i++ {
		select {
		case job := <-out:
			job()
		case <-time.After(2 * time.Second):
			t.Fatalf("tick %d never arrived", i)
		}
	}
	cancel()
	cancel() // safe to call twice

	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}
}
