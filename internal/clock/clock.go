package clock

import "time"

// NowFunc returns current time. Override in tests for determinism; the run
// timestamp interpolated into prompts comes through here.
var NowFunc = time.Now

// Now is a thin wrapper around NowFunc.
func Now() time.Time { return NowFunc() }

// Date returns the current date formatted the way prompt templates expect.
func Date() string { return Now().Format("2006-01-02") }
