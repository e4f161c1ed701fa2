// Package testutil provides shared test helpers for grid packages.
package testutil

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertVecInDelta fails the test if any component of got differs from want
// by more than delta.
func AssertVecInDelta(t testing.TB, want, got r3.Vec, delta float64) {
	t.Helper()
	if math.Abs(want.X-got.X) > delta || math.Abs(want.Y-got.Y) > delta || math.Abs(want.Z-got.Z) > delta {
		t.Errorf("vector = %v, want %v (delta %g)", got, want, delta)
	}
}

// WriteFile writes body to name inside a fresh temp dir and returns the path.
func WriteFile(t testing.TB, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// TempDBPath returns a sqlite path inside a fresh temp dir.
func TempDBPath(t testing.TB) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test.db")
}
