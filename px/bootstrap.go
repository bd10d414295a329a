package px

import (
	"go.uber.org/zap"

	"github.com/wippyai/physx-binding/errors"
	"github.com/wippyai/physx-binding/handle"
	"github.com/wippyai/physx-binding/layout"
	"github.com/wippyai/physx-binding/native"
)

// CreateFoundation creates the root object. Only one foundation may be live.
func (b *Binding) CreateFoundation() (FoundationHandle, error) {
	const op = "CreateFoundation"
	if b.closed {
		return 0, errors.Closed(errors.PhaseBootstrap, op)
	}
	if live := b.table.Live(handle.KindFoundation); len(live) > 0 {
		return 0, errors.InvalidState(errors.PhaseBootstrap, op, "a foundation already exists")
	}

	f, err := b.backend.CreateFoundation()
	if err != nil || f == nil {
		return 0, errors.ConstructionFailed(errors.PhaseBootstrap, op, "foundation", err)
	}
	h, err := b.insert(errors.PhaseBootstrap, op, handle.KindFoundation, &foundationEntry{native: f})
	if err != nil {
		f.Release()
		return 0, err
	}
	b.log.Debug("foundation created", zap.Uint32("foundation", uint32(h)))
	return FoundationHandle(h), nil
}

// CreateDebugConnector creates a debugger connector bound to f. It does not
// connect; see ConnectDebugger.
func (b *Binding) CreateDebugConnector(f FoundationHandle, cfg DebugConfig) (DebugConnectorHandle, error) {
	const op = "CreateDebugConnector"
	fe, err := lookup[*foundationEntry](b, errors.PhaseBootstrap, op, f)
	if err != nil {
		return 0, err
	}
	if err := cfg.Validate(); err != nil {
		return 0, errors.New(errors.PhaseBootstrap, errors.KindInvalidInput).Op(op).Cause(err).Build()
	}

	d, err := fe.native.CreateDebugConnector()
	if err != nil || d == nil {
		return 0, errors.ConstructionFailed(errors.PhaseBootstrap, op, "debug connector", err)
	}
	h, err := b.insert(errors.PhaseBootstrap, op, handle.KindDebugConnector,
		&debugEntry{native: d, endpoint: cfg, foundation: f})
	if err != nil {
		d.Release()
		return 0, err
	}
	fe.refs++
	return DebugConnectorHandle(h), nil
}

// CreateDefaultDebugConnector creates a connector for Config.Debug, or the
// default endpoint when none is configured.
func (b *Binding) CreateDefaultDebugConnector(f FoundationHandle) (DebugConnectorHandle, error) {
	cfg := DefaultDebugConfig()
	if b.cfg.Debug != nil {
		cfg = *b.cfg.Debug
	}
	return b.CreateDebugConnector(f, cfg)
}

// ConnectDebugger connects d to its endpoint. It returns false when the
// debugger could not be reached.
func (b *Binding) ConnectDebugger(d DebugConnectorHandle) (bool, error) {
	de, err := lookup[*debugEntry](b, errors.PhaseBootstrap, "ConnectDebugger", d)
	if err != nil {
		return false, err
	}
	ok := de.native.Connect(de.endpoint.endpoint())
	b.log.Debug("debugger connect",
		zap.String("host", de.endpoint.Host),
		zap.Int("port", de.endpoint.Port),
		zap.Bool("connected", ok))
	return ok, nil
}

// DebuggerConnected reports whether d has a live debugger connection.
func (b *Binding) DebuggerConnected(d DebugConnectorHandle) (bool, error) {
	de, err := lookup[*debugEntry](b, errors.PhaseQuery, "DebuggerConnected", d)
	if err != nil {
		return false, err
	}
	return de.native.IsConnected(), nil
}

// CreatePhysics creates an engine instance. d may be NullDebugConnector.
func (b *Binding) CreatePhysics(f FoundationHandle, d DebugConnectorHandle) (EngineHandle, error) {
	const op = "CreatePhysics"
	fe, err := lookup[*foundationEntry](b, errors.PhaseBootstrap, op, f)
	if err != nil {
		return 0, err
	}

	var dbg native.DebugConnector
	var de *debugEntry
	if d != NullDebugConnector {
		de, err = lookup[*debugEntry](b, errors.PhaseBootstrap, op, d)
		if err != nil {
			return 0, err
		}
		if de.foundation != f {
			return 0, errors.InvalidInput(errors.PhaseBootstrap, op, "debug connector belongs to another foundation")
		}
		dbg = de.native
	}

	p, err := fe.native.CreatePhysics(b.cfg.Scale, dbg)
	if err != nil || p == nil {
		return 0, errors.ConstructionFailed(errors.PhaseBootstrap, op, "physics", err)
	}
	h, err := b.insert(errors.PhaseBootstrap, op, handle.KindEngine,
		&engineEntry{native: p, foundation: f, debug: d})
	if err != nil {
		p.Release()
		return 0, err
	}
	fe.refs++
	if de != nil {
		de.refs++
	}
	b.log.Debug("physics created", zap.Uint32("engine", uint32(h)), zap.Bool("debugger", de != nil))
	return EngineHandle(h), nil
}

// CreateScene creates a scene with its own dispatcher of cfg.Workers workers.
func (b *Binding) CreateScene(e EngineHandle, cfg SceneConfig) (SceneHandle, error) {
	const op = "CreateScene"
	ee, err := lookup[*engineEntry](b, errors.PhaseBootstrap, op, e)
	if err != nil {
		return 0, err
	}
	if err := cfg.Validate(); err != nil {
		return 0, errors.New(errors.PhaseBootstrap, errors.KindInvalidInput).Op(op).Cause(err).Build()
	}

	s, err := ee.native.CreateScene(native.SceneDesc{
		Gravity: cfg.Gravity,
		Workers: cfg.Workers,
		Scale:   ee.native.TolerancesScale(),
	})
	if err != nil || s == nil {
		return 0, errors.ConstructionFailed(errors.PhaseBootstrap, op, "scene", err)
	}
	h, err := b.insert(errors.PhaseBootstrap, op, handle.KindScene, &sceneEntry{native: s, cfg: cfg, engine: e})
	if err != nil {
		s.Release()
		return 0, err
	}
	ee.refs++
	b.log.Debug("scene created",
		zap.Uint32("scene", uint32(h)),
		zap.Int("workers", cfg.Workers))
	return SceneHandle(h), nil
}

// CreateDefaultScene creates a scene from Config.Scene.
func (b *Binding) CreateDefaultScene(e EngineHandle) (SceneHandle, error) {
	return b.CreateScene(e, b.cfg.Scene)
}

// SceneWorkers returns the dispatcher size fixed at scene creation.
func (b *Binding) SceneWorkers(s SceneHandle) (int, error) {
	se, err := lookup[*sceneEntry](b, errors.PhaseQuery, "SceneWorkers", s)
	if err != nil {
		return 0, err
	}
	return se.native.Workers(), nil
}

// SceneGravity returns the scene's gravity.
func (b *Binding) SceneGravity(s SceneHandle) (layout.Vec3f, error) {
	se, err := lookup[*sceneEntry](b, errors.PhaseQuery, "SceneGravity", s)
	if err != nil {
		return layout.Vec3f{}, err
	}
	return se.native.Gravity(), nil
}

// SetSceneGravity replaces the scene's gravity.
func (b *Binding) SetSceneGravity(s SceneHandle, g layout.Vec3f) error {
	const op = "SetSceneGravity"
	se, err := lookup[*sceneEntry](b, errors.PhaseQuery, op, s)
	if err != nil {
		return err
	}
	if se.step != nil {
		return errors.StepInFlight(op, s.Raw())
	}
	if !g.Finite() {
		return errors.InvalidInput(errors.PhaseQuery, op, "gravity must be finite")
	}
	se.native.SetGravity(g)
	se.cfg.Gravity = g
	return nil
}
