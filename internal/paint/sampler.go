package paint

import (
	"errors"
	"fmt"
)

// ErrInvalidInterval is returned for a sample interval that is not strictly
// positive.
var ErrInvalidInterval = errors.New("paint: sample interval must be positive")

// Sampler is a countdown gate limiting how often points are appended.
// A single Sampler is shared by every pointer of a tracker.
type Sampler struct {
	interval float64
	timer    float64
}

// NewSampler returns a sampler admitting at most one sample per interval
// seconds. The first sample is admitted after one full interval.
func NewSampler(interval float64) (*Sampler, error) {
	if !(interval > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, interval)
	}
	return &Sampler{interval: interval, timer: interval}, nil
}

// Interval returns the configured interval in seconds.
func (s *Sampler) Interval() float64 { return s.interval }

// Tick advances the countdown by dt seconds and admits the sample once it
// reaches zero, rearming the countdown with a full interval. Overshoot is
// not carried over.
func (s *Sampler) Tick(dt float64) bool {
	if !s.Advance(dt) {
		return false
	}
	s.Rearm()
	return true
}

// Advance counts dt seconds down and reports whether a sample is due. It
// does not rearm; the countdown keeps running until Rearm.
func (s *Sampler) Advance(dt float64) bool {
	s.timer -= dt
	return s.timer <= 0
}

// Rearm restarts the countdown after a sample was taken.
func (s *Sampler) Rearm() {
	s.timer = s.interval
}

// Reset restarts the countdown.
func (s *Sampler) Reset() { s.Rearm() }
