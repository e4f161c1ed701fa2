// Package monitoring holds the diagnostic logger shared by library packages.
package monitoring

import "log"

// Logf is the package-level diagnostic logger. Library code logs synthesis
// and persistence progress through it with a bracketed component prefix,
// e.g. "[TurbulentGrid] ...". It defaults to log.Printf.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Mute silences Logf and returns a function that restores the previous
// logger. Used by tests and by turbgen -quiet.
func Mute() (restore func()) {
	prev := Logf
	SetLogger(nil)
	return func() { Logf = prev }
}
