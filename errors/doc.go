// Package errors provides structured error types for the physics binding.
//
// Errors are categorized by Phase (which part of the binding raised them) and
// Kind (what went wrong). Kinds fall into three families:
//
//   - construction failure: a factory could not produce a handle
//   - operation failure: a recoverable precondition was not met
//   - contract violation: a null, stale or wrong-kind handle, a step
//     re-entered before its results were fetched, an out-of-range buffer
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseStep, errors.KindStepInFlight).
//		Op("Simulate").
//		Handle(uint32(scene), "scene").
//		Detail("previous step has not been fetched").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.StaleHandle(errors.PhaseQuery, "ActorGlobalPose", h, "actor")
//	err := errors.WrongKind(errors.PhaseAttach, "AttachShape", h, "shape", "material")
//
// All errors implement the standard error interface and support errors.Is/As.
// A target with an empty Phase matches any error of the same Kind.
package errors
