package memory

import (
	"math"

	"github.com/tetratelabs/wazero/api"

	pxbind "github.com/wippyai/physx-binding"
	"github.com/wippyai/physx-binding/errors"
)

var (
	_ pxbind.Memory      = (*Wrapper)(nil)
	_ pxbind.MemorySizer = (*Wrapper)(nil)
)

// Wrap wraps a wazero api.Memory. It returns nil for a nil memory.
func Wrap(mem api.Memory) *Wrapper {
	if mem == nil {
		return nil
	}
	return &Wrapper{Mem: mem}
}

// Wrapper adapts wazero api.Memory to pxbind.Memory.
type Wrapper struct {
	Mem api.Memory
}

func (m *Wrapper) size() uint32 {
	if m == nil || m.Mem == nil {
		return 0
	}
	return m.Mem.Size()
}

func (m *Wrapper) oob(op string, offset uint32, length uint64) error {
	return errors.OutOfBounds(errors.PhaseABI, op, uint64(offset), length, uint64(m.size()))
}

// Size returns the current guest memory size in bytes.
func (m *Wrapper) Size() uint32 { return m.size() }

// Read returns length bytes at offset. The slice aliases guest memory.
func (m *Wrapper) Read(offset uint32, length uint32) ([]byte, error) {
	if m.size() == 0 {
		return nil, m.oob("read", offset, uint64(length))
	}
	data, ok := m.Mem.Read(offset, length)
	if !ok {
		return nil, m.oob("read", offset, uint64(length))
	}
	return data, nil
}

// Write copies data to offset.
func (m *Wrapper) Write(offset uint32, data []byte) error {
	if m.size() == 0 || !m.Mem.Write(offset, data) {
		return m.oob("write", offset, uint64(len(data)))
	}
	return nil
}

// ReadU32 reads an unsigned 32-bit little-endian value.
func (m *Wrapper) ReadU32(offset uint32) (uint32, error) {
	if m.size() == 0 {
		return 0, m.oob("read", offset, 4)
	}
	v, ok := m.Mem.ReadUint32Le(offset)
	if !ok {
		return 0, m.oob("read", offset, 4)
	}
	return v, nil
}

// WriteU32 writes an unsigned 32-bit little-endian value.
func (m *Wrapper) WriteU32(offset uint32, value uint32) error {
	if m.size() == 0 || !m.Mem.WriteUint32Le(offset, value) {
		return m.oob("write", offset, 4)
	}
	return nil
}

// ReadF32 reads a little-endian IEEE 754 float.
func (m *Wrapper) ReadF32(offset uint32) (float32, error) {
	v, err := m.ReadU32(offset)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// WriteF32 writes a little-endian IEEE 754 float.
func (m *Wrapper) WriteF32(offset uint32, value float32) error {
	return m.WriteU32(offset, math.Float32bits(value))
}

// CheckSpan fails unless the whole span lies within guest memory.
func (m *Wrapper) CheckSpan(op string, s pxbind.Span) error {
	if !s.Fits(m.size()) {
		return errors.OutOfBounds(errors.PhaseABI, op, uint64(s.Ptr), s.Bytes(), uint64(m.size()))
	}
	return nil
}
