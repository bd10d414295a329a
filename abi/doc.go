// Package abi exports the binding to WebAssembly guests as the host module
// "pxabi".
//
// The surface is flat and procedural: handles are i32, scalars are f32,
// booleans are i32 0/1, and every record (Vec3f, Transformf, Mat44f,
// Planef) travels through guest linear memory at a caller-supplied
// pointer, encoded bit-exact with the layout package.
//
//	rt := wazero.NewRuntime(ctx)
//	host := abi.New(binding)
//	if _, err := host.Instantiate(ctx, rt); err != nil { ... }
//	guest, err := rt.Instantiate(ctx, wasmBytes)
//
// # Errors
//
// Failing calls return 0 (or -1 for pxGeometryGetType) and record the
// failure in a last-error slot. pxGetLastError returns its Code and
// pxGetLastErrorMessage copies its text into a guest buffer. Every other
// call clears the slot on entry, so a 0 result with code CodeOK means the
// engine declined the operation.
//
// # Buffers
//
// Enumeration calls take (ptr, cap) and write at most cap u32 handles.
// The whole range ptr + cap*4 is validated against guest memory before
// anything is written.
package abi
