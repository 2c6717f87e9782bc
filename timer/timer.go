// Package timer provides scheduling helpers for console hosts: a channel
// based scheduler for delayed jobs and a polling interval check for hosts
// that run their own loop.
package timer

import (
	"sync"
	"time"
)

// Scheduler manages delayed tasks by translating time into channel events.
// The receiver of the channel is responsible for executing the callback
// safely on its own goroutine. Stop abandons undelivered jobs, so a
// scheduler never outlives its consumer.
type Scheduler struct {
	out  chan<- func()
	done chan struct{}
	once sync.Once
}

// NewScheduler creates a Scheduler that sends callbacks to the given channel.
func NewScheduler(out chan<- func()) *Scheduler {
	return &Scheduler{out: out, done: make(chan struct{})}
}

// Stop discards jobs still waiting for delivery and releases their
// goroutines. Cancel functions returned earlier remain safe to call.
func (s *Scheduler) Stop() {
	s.once.Do(func() { close(s.done) })
}

// send delivers job unless the scheduler has stopped.
func (s *Scheduler) send(job func()) {
	select {
	case s.out <- job:
	case <-s.done:
	}
}

// After asks to run job once d has passed. It returns a cancel function.
func (s *Scheduler) After(d time.Duration, job func()) (cancel func()) {
	t := time.AfterFunc(d, func() { s.send(job) })
	return func() { t.Stop() }
}

// Every asks to run job repeatedly every d. It returns a cancel function,
// safe to call more than once.
func (s *Scheduler) Every(d time.Duration, job func()) (cancel func()) {
	stop := make(chan struct{})
	var once sync.Once
	go func() {
		tick := time.NewTicker(d)
		defer tick.Stop()
		for {
			select {
			case <-stop:
				return
			case <-s.done:
				return
			case <-tick.C:
				s.send(job)
			}
		}
	}()
	return func() { once.Do(func() { close(stop) }) }
}

// Interval is the polling analog of the scheduler: hosts call Elapsed from
// their loop and act on true returns. The first call arms the interval.
type Interval struct {
	d    time.Duration
	last time.Time
	now  func() time.Time
}

// NewInterval creates an interval of duration d.
func NewInterval(d time.Duration) *Interval {
	return &Interval{d: d, now: time.Now}
}

// Elapsed reports whether d has passed since the previous true return,
// rearming the interval when it has.
func (iv *Interval) Elapsed() bool {
	now := iv.now()
	if iv.last.IsZero() {
		iv.last = now
		return false
	}
	if now.Sub(iv.last) >= iv.d {
		iv.last = now
		return true
	}
	return false
}
