// Package sqlite contains SQLite repository implementations for turbulent
// grid snapshots.
//
// All database reads and writes for grids belong here rather than in the
// turbulence package, which only sees the turbulence.SnapshotStore
// interface.
package sqlite
