package layout

import "github.com/go-gl/mathgl/mgl32"

// Vec3FromMgl copies an mgl32 vector.
func Vec3FromMgl(v mgl32.Vec3) Vec3f {
	return Vec3f{X: v[0], Y: v[1], Z: v[2]}
}

// Mgl returns v as an mgl32 vector.
func (v Vec3f) Mgl() mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

// QuatFromMgl reorders an mgl32 quaternion (W, V) into record order (x, y, z, w).
func QuatFromMgl(q mgl32.Quat) Quatf {
	return Quatf{X: q.V[0], Y: q.V[1], Z: q.V[2], W: q.W}
}

// Mgl returns q as an mgl32 quaternion.
func (q Quatf) Mgl() mgl32.Quat {
	return mgl32.Quat{W: q.W, V: mgl32.Vec3{q.X, q.Y, q.Z}}
}

// Mat44FromMgl copies a column-major mgl32 matrix column by column.
func Mat44FromMgl(m mgl32.Mat4) Mat44f {
	return Mat44f{
		Col0: Vec4f{m[0], m[1], m[2], m[3]},
		Col1: Vec4f{m[4], m[5], m[6], m[7]},
		Col2: Vec4f{m[8], m[9], m[10], m[11]},
		Col3: Vec4f{m[12], m[13], m[14], m[15]},
	}
}

// Mgl returns m as an mgl32 matrix.
func (m Mat44f) Mgl() mgl32.Mat4 {
	return mgl32.Mat4{
		m.Col0.X, m.Col0.Y, m.Col0.Z, m.Col0.W,
		m.Col1.X, m.Col1.Y, m.Col1.Z, m.Col1.W,
		m.Col2.X, m.Col2.Y, m.Col2.Z, m.Col2.W,
		m.Col3.X, m.Col3.Y, m.Col3.Z, m.Col3.W,
	}
}

// Mat44 expands t into a homogeneous matrix, the same construction the
// engine performs for a 4x4 pose.
func (t Transformf) Mat44() Mat44f {
	m := t.Q.Mgl().Mat4()
	m[12], m[13], m[14] = t.P.X, t.P.Y, t.P.Z
	return Mat44FromMgl(m)
}
