package magfield

import "gonum.org/v1/gonum/spatial/r3"

// MagneticField is implemented by anything that returns a field vector at a
// position. Propagation modules depend on this interface only.
type MagneticField interface {
	Field(pos r3.Vec) r3.Vec
}

// UniformField is a constant field.
type UniformField struct {
	B r3.Vec
}

// Field returns the constant value regardless of position.
func (u UniformField) Field(r3.Vec) r3.Vec {
	return u.B
}
