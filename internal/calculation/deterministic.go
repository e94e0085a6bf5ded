package calculation

import "time"

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the default time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

// defaultClock defers to nowFunc at call time so SetNowFunc also reaches
// calculators constructed earlier.
func defaultClock() time.Time { return nowFunc() }
