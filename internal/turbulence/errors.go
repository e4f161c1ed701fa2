package turbulence

import "errors"

var (
	// ErrInvalidGeometry indicates a non-positive sample count or spacing.
	ErrInvalidGeometry = errors.New("turbulence: invalid grid geometry")
	// ErrInvalidParams indicates lMin >= lMax or a non-positive length scale or Brms.
	ErrInvalidParams = errors.New("turbulence: invalid turbulence parameters")
	// ErrEmptyBand indicates no discrete wavevector of the grid falls inside [kMin, kMax].
	ErrEmptyBand = errors.New("turbulence: turbulence band contains no grid wavevector")
	// ErrZeroField indicates the transformed field has zero mean-square magnitude.
	ErrZeroField = errors.New("turbulence: synthesised field is identically zero")
	// ErrCorrelationSingular indicates the spectral index hits a removable
	// singularity of the closed-form correlation length.
	ErrCorrelationSingular = errors.New("turbulence: correlation length singular for spectral index")
	// ErrSnapshotMismatch indicates a snapshot whose cell count does not match its geometry.
	ErrSnapshotMismatch = errors.New("turbulence: snapshot does not match grid geometry")
)

// IsConfigError reports whether err is a caller-facing configuration error.
// These are recoverable by changing parameters; retrying with the same inputs
// fails identically.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidGeometry) ||
		errors.Is(err, ErrInvalidParams) ||
		errors.Is(err, ErrEmptyBand)
}
