package data

import "time"

// TimeProvider supplies the clock repositories stamp rows with.
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider implements TimeProvider using real system time.
type RealTimeProvider struct{}

// Now returns the current system time.
func (RealTimeProvider) Now() time.Time { return time.Now() }

// FixedTimeProvider returns a settable instant. Used by tests.
type FixedTimeProvider struct {
	fixedTime time.Time
}

// NewFixedTimeProvider creates a new FixedTimeProvider with the given time.
func NewFixedTimeProvider(t time.Time) *FixedTimeProvider {
	return &FixedTimeProvider{fixedTime: t}
}

// Now returns the fixed time.
func (f *FixedTimeProvider) Now() time.Time { return f.fixedTime }

// AddTime advances the fixed time by d.
func (f *FixedTimeProvider) AddTime(d time.Duration) { f.fixedTime = f.fixedTime.Add(d) }
