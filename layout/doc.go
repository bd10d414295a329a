// Package layout defines the plain-old-data records exchanged at the binding
// boundary and the conversions between them and the engine-side math types.
//
// Every record uses 32-bit floating point fields in a fixed order so that a
// value has exactly one byte representation:
//
//	Vec3f       x, y, z                         12 bytes, align 4
//	Vec4f       x, y, z, w                      16 bytes, align 4
//	Quatf       x, y, z, w                      16 bytes, align 4
//	Transformf  q (Quatf), p (Vec3f)            28 bytes, align 4
//	Mat44f      column0..column3 (Vec4f)        64 bytes, align 4
//	Planef      n (Vec3f), d                    16 bytes, align 4
//
// Sizes, alignments and field offsets are asserted at compile time in
// assert.go. Conversions are explicit field-by-field copies; nothing in this
// package reinterprets memory.
//
// Note the quaternion field order: records store (x, y, z, w) while mgl32
// stores (W, V). QuatFromMgl and Quatf.Mgl perform the reordering.
package layout
