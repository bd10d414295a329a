// Package px is the procedural binding over a native rigid-body engine.
//
// A Binding owns a handle table and a native.Backend. Every engine object
// is reached through a typed handle (FoundationHandle, SceneHandle,
// ActorHandle, ...), and every call checks the handle for null, staleness
// and kind before anything reaches the engine.
//
// # Bootstrap
//
// Construction is strictly ordered:
//
//	Uninitialized → FoundationReady → (DebugReady) → EngineReady → SceneReady
//
// Each scene gets its own worker dispatcher sized by SceneConfig.Workers.
// Gravity and worker count are explicit configuration; DefaultConfig
// carries (0, -9.81, 0) and 2 workers.
//
// # Results
//
// Factories return a handle or an error. Operations that the engine may
// refuse for a recoverable reason (AttachShape, FetchResults, Step.Poll)
// return (bool, error): false with a nil error is the refusal, a non-nil
// error is a contract violation such as a stale handle.
//
// # Geometry
//
// Geometry is a closed sum type. Classify returns a SphereGeometry,
// PlaneGeometry, CapsuleGeometry, BoxGeometry or OtherGeometry; the
// per-kind accessors reject handles of another kind with a
// geometry_mismatch error.
//
// # Step protocol
//
// Simulate returns a *Step. The scene accepts no second Simulate and no
// mutation until the step is completed by Step.Wait, Step.Poll or
// FetchResults.
//
// # Enumeration
//
// SceneActors and ActorShapes write at most len(buf) handles starting at a
// given index and return the number written. Paging with start indices 0,
// K, 2K, ... visits every element once.
//
// A Binding is not safe for concurrent use.
package px
