package layout

import "unsafe"

// Compile-time layout checks. Each line fails to compile if the Go record
// drifts from the boundary layout documented in doc.go.
var (
	_ [12]byte = [unsafe.Sizeof(Vec3f{})]byte{}
	_ [16]byte = [unsafe.Sizeof(Vec4f{})]byte{}
	_ [16]byte = [unsafe.Sizeof(Quatf{})]byte{}
	_ [28]byte = [unsafe.Sizeof(Transformf{})]byte{}
	_ [64]byte = [unsafe.Sizeof(Mat44f{})]byte{}
	_ [16]byte = [unsafe.Sizeof(Planef{})]byte{}

	_ [4]byte = [unsafe.Alignof(Vec3f{})]byte{}
	_ [4]byte = [unsafe.Alignof(Transformf{})]byte{}
	_ [4]byte = [unsafe.Alignof(Mat44f{})]byte{}
	_ [4]byte = [unsafe.Alignof(Planef{})]byte{}

	_ [0]byte  = [unsafe.Offsetof(Quatf{}.X)]byte{}
	_ [12]byte = [unsafe.Offsetof(Quatf{}.W)]byte{}
	_ [0]byte  = [unsafe.Offsetof(Transformf{}.Q)]byte{}
	_ [16]byte = [unsafe.Offsetof(Transformf{}.P)]byte{}
	_ [16]byte = [unsafe.Offsetof(Mat44f{}.Col1)]byte{}
	_ [32]byte = [unsafe.Offsetof(Mat44f{}.Col2)]byte{}
	_ [48]byte = [unsafe.Offsetof(Mat44f{}.Col3)]byte{}
	_ [12]byte = [unsafe.Offsetof(Planef{}.D)]byte{}
)
