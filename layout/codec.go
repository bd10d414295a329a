package layout

import (
	"encoding/binary"
	"math"
)

// The codec writes records in the boundary byte order (little-endian, the
// order of every supported target and of WebAssembly linear memory).
// Callers must size buffers with the *Size constants; short buffers panic
// like any out-of-range slice access.

func putF32(b []byte, f float32) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(f))
}

func getF32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

// Put encodes v into b[:Vec3Size].
func (v Vec3f) Put(b []byte) {
	_ = b[Vec3Size-1]
	putF32(b[0:], v.X)
	putF32(b[4:], v.Y)
	putF32(b[8:], v.Z)
}

// DecodeVec3f decodes b[:Vec3Size].
func DecodeVec3f(b []byte) Vec3f {
	_ = b[Vec3Size-1]
	return Vec3f{X: getF32(b[0:]), Y: getF32(b[4:]), Z: getF32(b[8:])}
}

// Put encodes v into b[:Vec4Size].
func (v Vec4f) Put(b []byte) {
	_ = b[Vec4Size-1]
	putF32(b[0:], v.X)
	putF32(b[4:], v.Y)
	putF32(b[8:], v.Z)
	putF32(b[12:], v.W)
}

// DecodeVec4f decodes b[:Vec4Size].
func DecodeVec4f(b []byte) Vec4f {
	_ = b[Vec4Size-1]
	return Vec4f{X: getF32(b[0:]), Y: getF32(b[4:]), Z: getF32(b[8:]), W: getF32(b[12:])}
}

// Put encodes q into b[:QuatSize].
func (q Quatf) Put(b []byte) {
	_ = b[QuatSize-1]
	putF32(b[0:], q.X)
	putF32(b[4:], q.Y)
	putF32(b[8:], q.Z)
	putF32(b[12:], q.W)
}

// DecodeQuatf decodes b[:QuatSize].
func DecodeQuatf(b []byte) Quatf {
	_ = b[QuatSize-1]
	return Quatf{X: getF32(b[0:]), Y: getF32(b[4:]), Z: getF32(b[8:]), W: getF32(b[12:])}
}

// Put encodes t into b[:TransformSize].
func (t Transformf) Put(b []byte) {
	_ = b[TransformSize-1]
	t.Q.Put(b[0:])
	t.P.Put(b[16:])
}

// DecodeTransformf decodes b[:TransformSize].
func DecodeTransformf(b []byte) Transformf {
	_ = b[TransformSize-1]
	return Transformf{Q: DecodeQuatf(b[0:]), P: DecodeVec3f(b[16:])}
}

// Put encodes m into b[:Mat44Size].
func (m Mat44f) Put(b []byte) {
	_ = b[Mat44Size-1]
	m.Col0.Put(b[0:])
	m.Col1.Put(b[16:])
	m.Col2.Put(b[32:])
	m.Col3.Put(b[48:])
}

// DecodeMat44f decodes b[:Mat44Size].
func DecodeMat44f(b []byte) Mat44f {
	_ = b[Mat44Size-1]
	return Mat44f{
		Col0: DecodeVec4f(b[0:]),
		Col1: DecodeVec4f(b[16:]),
		Col2: DecodeVec4f(b[32:]),
		Col3: DecodeVec4f(b[48:]),
	}
}

// Put encodes p into b[:PlaneSize].
func (p Planef) Put(b []byte) {
	_ = b[PlaneSize-1]
	p.N.Put(b[0:])
	putF32(b[12:], p.D)
}

// DecodePlanef decodes b[:PlaneSize].
func DecodePlanef(b []byte) Planef {
	_ = b[PlaneSize-1]
	return Planef{N: DecodeVec3f(b[0:]), D: getF32(b[12:])}
}
