package poller

import "time"

// Timer is a scheduled callback that has not necessarily fired yet.
type Timer interface {
	// Stop prevents the callback from firing. It reports false when the
	// callback already ran or was already stopped.
	Stop() bool
}

// Scheduler runs a function once after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealScheduler is backed by the runtime timers.
var RealScheduler Scheduler = realScheduler{}
