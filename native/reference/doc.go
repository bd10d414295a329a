// Package reference is a deterministic in-process engine implementing the
// native collaborator interfaces.
//
// It exists so the binding can be exercised end to end without the C
// wrapper library. Its physics are deliberately small: dynamic bodies are
// integrated under gravity with semi-implicit Euler and collide only with
// static plane shapes. There are no angular dynamics and no dynamic-dynamic
// contacts.
//
// Each scene owns a dispatcher sized at creation. Simulate snapshots the
// dynamic bodies and integrates them on the dispatcher in the background;
// FetchResults commits the snapshot back to the actors. Poses read while a
// step is running are the poses from before the step.
package reference
