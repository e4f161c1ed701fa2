// Package turbulence synthesises divergence-free random vector fields with a
// prescribed power-law spectrum on a cubic grid.
//
// Responsibilities: deterministic random sampling of Fourier modes inside a
// turbulence band, the inverse 3D transform to real space, normalisation to a
// target RMS strength, and snapshot serialisation of the resulting cells.
// Key types: Grid, Params, Geometry, Snapshot.
//
// Dependency rule: this package may depend on internal/magfield and
// internal/monitoring, never on storage packages. No SQL is allowed here;
// persistence goes through the SnapshotStore interface.
//
// Reproducibility: for a given seed and sampling mode the synthesised field is
// a pure function of Params and Geometry. In sequential mode wavevectors are
// visited in row-major order (ix, then iy, then iz over the half-grid) and
// every in-band wavevector consumes exactly three draws: polarisation angle,
// amplitude, phase. Changing that order changes the field.
package turbulence
