package px

import (
	"math"

	"go.uber.org/zap"

	"github.com/wippyai/physx-binding/errors"
)

// Step is one scheduled simulation tick. It is completed exactly once, by
// Wait, by a successful Poll, or by FetchResults on its scene.
type Step struct {
	b     *Binding
	scene SceneHandle
	dt    float32
	done  bool
}

// Scene returns the scene the step runs in.
func (st *Step) Scene() SceneHandle { return st.scene }

// Dt returns the step length in seconds.
func (st *Step) Dt() float32 { return st.dt }

// Done reports whether the step's results have been fetched.
func (st *Step) Done() bool { return st.done }

// Wait blocks until the step finishes and commits its results.
func (st *Step) Wait() error {
	if st.done {
		return nil
	}
	_, err := st.b.fetch("Step.Wait", st.scene, st, true)
	return err
}

// Poll commits the step's results if it has finished and reports whether
// it has. Poll never blocks.
func (st *Step) Poll() (bool, error) {
	if st.done {
		return true, nil
	}
	return st.b.fetch("Step.Poll", st.scene, st, false)
}

// Simulate schedules one step of dt seconds on the scene's dispatcher and
// returns immediately.
func (b *Binding) Simulate(s SceneHandle, dt float32) (*Step, error) {
	const op = "Simulate"
	se, err := lookup[*sceneEntry](b, errors.PhaseStep, op, s)
	if err != nil {
		return nil, err
	}
	if se.step != nil {
		return nil, errors.StepInFlight(op, s.Raw())
	}
	if !(dt > 0) || math.IsInf(float64(dt), 0) {
		return nil, errors.InvalidInput(errors.PhaseStep, op, "dt must be positive and finite")
	}
	if !se.native.Simulate(dt) {
		return nil, errors.OperationFailed(errors.PhaseStep, op, "engine refused to schedule the step")
	}
	st := &Step{b: b, scene: s, dt: dt}
	se.step = st
	b.log.Debug("step scheduled", zap.Uint32("scene", s.Raw()), zap.Float32("dt", dt))
	return st, nil
}

// FetchResults completes the scene's pending step. With block false it
// returns false while the step is still running.
func (b *Binding) FetchResults(s SceneHandle, block bool) (bool, error) {
	return b.fetch("FetchResults", s, nil, block)
}

func (b *Binding) fetch(op string, s SceneHandle, want *Step, block bool) (bool, error) {
	se, err := lookup[*sceneEntry](b, errors.PhaseStep, op, s)
	if err != nil {
		return false, err
	}
	if se.step == nil || (want != nil && se.step != want) {
		return false, errors.NoStepInFlight(op, s.Raw())
	}
	if !se.native.FetchResults(block) {
		if block {
			return false, errors.OperationFailed(errors.PhaseStep, op, "engine did not complete the step")
		}
		return false, nil
	}
	se.step.done = true
	se.step = nil
	return true, nil
}

// Advance simulates one step and waits for it.
func (b *Binding) Advance(s SceneHandle, dt float32) error {
	st, err := b.Simulate(s, dt)
	if err != nil {
		return err
	}
	return st.Wait()
}

// InFlight reports whether s has a step awaiting its fetch.
func (b *Binding) InFlight(s SceneHandle) (bool, error) {
	se, err := lookup[*sceneEntry](b, errors.PhaseStep, "InFlight", s)
	if err != nil {
		return false, err
	}
	return se.step != nil, nil
}
