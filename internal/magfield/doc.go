// Package magfield holds regular cubic grids of 3-vectors and the field
// lookup used by particle propagation.
//
// A VectorGrid is periodic: the cell at index i sits at origin + i*spacing
// along each axis and lookups wrap modulo the edge length. Turbulent grids
// built by a discrete Fourier transform are periodic by construction, so
// wrapping introduces no seams.
package magfield
