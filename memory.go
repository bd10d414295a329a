package pxbind

// Memory is caller-owned boundary memory, typically a guest's linear memory.
// Enumeration buffers and layout records are read from and written to it
// at explicit offsets.
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
	ReadU32(offset uint32) (uint32, error)
	WriteU32(offset uint32, value uint32) error
	ReadF32(offset uint32) (float32, error)
	WriteF32(offset uint32, value float32) error
}

// MemorySizer provides the current size of boundary memory in bytes.
type MemorySizer interface {
	Size() uint32
}

// Span is a caller-supplied buffer: Cap elements of Stride bytes starting at Ptr.
type Span struct {
	Ptr    uint32
	Cap    uint32
	Stride uint32
}

// Bytes returns the total byte length of the span.
func (s Span) Bytes() uint64 {
	return uint64(s.Cap) * uint64(s.Stride)
}

// Fits reports whether the whole span lies within a memory of size bytes.
func (s Span) Fits(size uint32) bool {
	return uint64(s.Ptr)+s.Bytes() <= uint64(size)
}
