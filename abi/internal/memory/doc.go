// Package memory provides guest memory access for the pxabi host module.
//
// The wrapper adapts wazero's api.Memory to pxbind.Memory so layout records
// and enumeration buffers can be read and written at guest offsets:
//
//	mem := memory.Wrap(mod.Memory())
//	b, err := mem.Read(ptr, layout.TransformSize)
//
// Every access is bounds checked and fails with an out_of_bounds error
// instead of trapping. A nil wrapper (a guest without memory) fails every
// access the same way.
//
// This package is internal to abi and should not be used directly.
package memory
