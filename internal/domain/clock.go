package domain

import "github.com/jonboulle/clockwork"

// timeSource stamps ProcessedAt and GeneratedAt. Tests freeze it via
// SetClock so output files are deterministic.
var timeSource clockwork.Clock = clockwork.NewRealClock()

// SetClock swaps the time source for assembly timestamps. Pass nil to reset
// to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		timeSource = clockwork.NewRealClock()
		return
	}
	timeSource = c
}
