package helpers

import "time"

func IntSecondDefault(x int, def time.Duration) time.Duration {
	if x <= 0 {
		return def
	}
	return time.Duration(x) * time.Second
}

func IntMillisecondDefault(x int, def time.Duration) time.Duration {
	if x <= 0 {
		return def
	}
	return time.Duration(x) * time.Millisecond
}

type Stopper interface {
	Stop() bool
}

// AfterFunc schedules f once after d, same contract as time.AfterFunc.
type AfterFunc func(d time.Duration, f func()) Stopper

func TimeAfterFunc(d time.Duration, f func()) Stopper { return time.AfterFunc(d, f) }
