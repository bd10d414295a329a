// Package native declares the narrow call surface the binding needs from an
// external rigid-body engine.
//
// The engine owns collision detection, solving and integration. Everything
// here is a collaborator contract: factories return an error when the engine
// could not create an object, and boolean operations report whether a
// recoverable precondition held. Nothing in this package validates handles;
// the px package does that before any call reaches a backend.
//
// Two backends exist:
//
//	native/reference   deterministic in-process engine
//	native/physx       cgo binding over the C wrapper library (-tags physx)
package native
