package abi

import (
	pxbind "github.com/wippyai/physx-binding"
	"github.com/wippyai/physx-binding/abi/internal/memory"
	"github.com/wippyai/physx-binding/layout"
)

// readRecord decodes one record of kind r from guest memory at ptr.
func readRecord[T any](mem *memory.Wrapper, ptr uint32, r layout.Record, decode func([]byte) T) (T, error) {
	var zero T
	b, err := mem.Read(ptr, layout.Of(r).Size)
	if err != nil {
		return zero, err
	}
	return decode(b), nil
}

// writeRecord encodes rec as a record of kind r into guest memory at ptr.
func writeRecord(mem *memory.Wrapper, ptr uint32, r layout.Record, rec interface{ Put([]byte) }) error {
	b := make([]byte, layout.Of(r).Size)
	rec.Put(b)
	return mem.Write(ptr, b)
}

func readVec3(mem *memory.Wrapper, ptr uint32) (layout.Vec3f, error) {
	return readRecord(mem, ptr, layout.RecordVec3, layout.DecodeVec3f)
}

func readTransform(mem *memory.Wrapper, ptr uint32) (layout.Transformf, error) {
	return readRecord(mem, ptr, layout.RecordTransform, layout.DecodeTransformf)
}

func readPlane(mem *memory.Wrapper, ptr uint32) (layout.Planef, error) {
	return readRecord(mem, ptr, layout.RecordPlane, layout.DecodePlanef)
}

func writeVec3(mem *memory.Wrapper, ptr uint32, v layout.Vec3f) error {
	return writeRecord(mem, ptr, layout.RecordVec3, v)
}

func writeTransform(mem *memory.Wrapper, ptr uint32, t layout.Transformf) error {
	return writeRecord(mem, ptr, layout.RecordTransform, t)
}

func writeMat44(mem *memory.Wrapper, ptr uint32, m layout.Mat44f) error {
	return writeRecord(mem, ptr, layout.RecordMat44, m)
}

// handleSpan validates a guest handle buffer of capacity elements.
func handleSpan(op string, mem *memory.Wrapper, ptr, capacity uint32) (pxbind.Span, error) {
	s := pxbind.Span{Ptr: ptr, Cap: capacity, Stride: 4}
	return s, mem.CheckSpan(op, s)
}

func writeHandles[H interface{ Raw() uint32 }](mem *memory.Wrapper, s pxbind.Span, hs []H) error {
	for i, h := range hs {
		if err := mem.WriteU32(s.Ptr+uint32(i)*s.Stride, h.Raw()); err != nil {
			return err
		}
	}
	return nil
}
