package layout

import "math"

// Vec3f is a three component vector.
type Vec3f struct {
	X, Y, Z float32
}

// Vec4f is a four component vector, used as a matrix column.
type Vec4f struct {
	X, Y, Z, W float32
}

// Quatf is a rotation quaternion stored imaginary part first.
type Quatf struct {
	X, Y, Z, W float32
}

// Transformf is a rigid transform: rotation followed by translation.
// Layout: q (16) + p (12) = 28 bytes
type Transformf struct {
	Q Quatf
	P Vec3f
}

// Mat44f is a column-major 4x4 matrix.
// Layout: 4 columns x 16 bytes = 64 bytes
type Mat44f struct {
	Col0 Vec4f
	Col1 Vec4f
	Col2 Vec4f
	Col3 Vec4f
}

// Planef is the plane n.x + d = 0.
// Layout: n (12) + d (4) = 16 bytes
type Planef struct {
	N Vec3f
	D float32
}

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quatf {
	return Quatf{W: 1}
}

// TransformIdentity returns the identity transform.
func TransformIdentity() Transformf {
	return Transformf{Q: QuatIdentity()}
}

// TransformAt returns a transform with identity rotation translated to p.
func TransformAt(p Vec3f) Transformf {
	return Transformf{Q: QuatIdentity(), P: p}
}

// Finite reports whether every component is a finite number.
func (v Vec3f) Finite() bool {
	return finite(v.X) && finite(v.Y) && finite(v.Z)
}

// Finite reports whether every component is a finite number.
func (q Quatf) Finite() bool {
	return finite(q.X) && finite(q.Y) && finite(q.Z) && finite(q.W)
}

// Finite reports whether rotation and translation are finite.
func (t Transformf) Finite() bool {
	return t.Q.Finite() && t.P.Finite()
}

// Finite reports whether normal and distance are finite.
func (p Planef) Finite() bool {
	return p.N.Finite() && finite(p.D)
}

// ValidRotation reports whether q is a unit quaternion within tolerance.
func (q Quatf) ValidRotation() bool {
	if !q.Finite() {
		return false
	}
	m := float64(q.X)*float64(q.X) + float64(q.Y)*float64(q.Y) +
		float64(q.Z)*float64(q.Z) + float64(q.W)*float64(q.W)
	return math.Abs(m-1) < 1e-3
}

func finite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}
