// Package pxbind is a procedural binding layer over a 3D rigid-body physics
// engine. Native engine objects are surfaced as opaque handles, native math
// types as bit-exact plain records, polymorphic geometry as a checked sum
// type, and bulk queries as paginated fetches into caller-owned buffers.
//
// # Architecture Overview
//
//	pxbind/              Root package with the boundary Memory interface
//	├── px/              The binding: bootstrap, factories, step protocol, enumeration
//	├── handle/          Generation-checked handle table
//	├── layout/          Transform, matrix, plane and vector records
//	├── native/          Engine collaborator interfaces
//	│   ├── reference/   Deterministic in-process engine
//	│   └── physx/       cgo backend over the C wrapper (-tags physx)
//	├── abi/             WebAssembly host module exporting the flat C-style surface
//	├── script/          Lua front end
//	├── errors/          Structured error types
//	└── cmd/pxsim/       Free-fall demo, script runner and interactive viewer
//
// # Quick Start
//
//	b, err := px.New(reference.New(reference.Options{}), px.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer b.Close()
//
//	f, _ := b.CreateFoundation()
//	e, _ := b.CreatePhysics(f, px.NullDebugConnector)
//	s, _ := b.CreateDefaultScene(e)
//
//	m, _ := b.CreateMaterial(e, 0.5, 0.5, 0.6)
//	ground, _ := b.CreatePlane(e, layout.Planef{N: layout.Vec3f{Y: 1}}, m)
//	b.AddActor(s, ground)
//
//	step, _ := b.Simulate(s, 1.0/60)
//	step.Wait()
//
// # Step Protocol
//
// Simulate schedules exactly one step and returns a Step. Until the step is
// fetched through Step.Wait, Step.Poll or FetchResults, the scene rejects a
// second Simulate and any scene mutation with a step_in_flight error.
//
// # Lifetime
//
// Every handle can be released explicitly with Release. Close releases every
// live handle in dependency order.
package pxbind
