package px

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/physx-binding/errors"
	"github.com/wippyai/physx-binding/handle"
)

// teardownOrder releases dependents before the objects they depend on.
var teardownOrder = [...]handle.Kind{
	handle.KindActor,
	handle.KindShape,
	handle.KindGeometry,
	handle.KindMaterial,
	handle.KindScene,
	handle.KindEngine,
	handle.KindDebugConnector,
	handle.KindFoundation,
}

// Release destroys the object behind h and invalidates h. It fails with
// in_use while other live objects depend on it:
//
//   - a foundation, while debug connectors or engines exist
//   - a debug connector, while an engine uses it
//   - an engine, while its scenes, materials, actors or shapes exist
//   - a material, while shapes reference it
//   - a shape, while it is attached to an actor
//
// Releasing a scene removes its actors from it. Releasing an actor
// detaches its shapes and releases the shapes the engine created with it.
func (b *Binding) Release(h Handle) error {
	const op = "Release"
	raw := handle.Handle(h.Raw())
	kind, err := b.table.KindOf(raw)
	if err != nil {
		return annotate(err, errors.PhaseRelease, op)
	}
	if kind != h.kind() {
		return errors.WrongKind(errors.PhaseRelease, op, h.Raw(), h.kind().String(), kind.String())
	}
	return b.release(op, raw, kind)
}

// ReleaseRaw releases a handle of any kind.
func (b *Binding) ReleaseRaw(h uint32) error {
	const op = "Release"
	kind, err := b.table.KindOf(handle.Handle(h))
	if err != nil {
		return annotate(err, errors.PhaseRelease, op)
	}
	return b.release(op, handle.Handle(h), kind)
}

func (b *Binding) release(op string, h handle.Handle, kind handle.Kind) error {
	v, err := b.table.Get(h, kind)
	if err != nil {
		return annotate(err, errors.PhaseRelease, op)
	}

	var owned []ShapeHandle
	switch e := v.(type) {
	case *foundationEntry:
		if e.refs > 0 {
			return errors.InUse(op, uint32(h), kind.String(), e.refs)
		}

	case *debugEntry:
		if e.refs > 0 {
			return errors.InUse(op, uint32(h), kind.String(), e.refs)
		}
		b.unref(e.foundation)

	case *engineEntry:
		if e.refs > 0 {
			return errors.InUse(op, uint32(h), kind.String(), e.refs)
		}
		b.unref(e.foundation)
		if e.debug != NullDebugConnector {
			b.unref(e.debug)
		}

	case *sceneEntry:
		if e.step != nil {
			return errors.StepInFlight(op, uint32(h))
		}
		for _, ah := range b.table.Live(handle.KindActor) {
			if ae, err := handle.Get[*actorEntry](b.table, ah, handle.KindActor); err == nil && ae.scene == SceneHandle(h) {
				ae.scene = 0
			}
		}
		b.unref(e.engine)

	case *materialEntry:
		if e.refs > 0 {
			return errors.InUse(op, uint32(h), kind.String(), e.refs)
		}
		b.unref(e.engine)

	case *actorEntry:
		if err := b.guardActor(op, e); err != nil {
			return err
		}
		for _, sh := range e.shapes {
			se, err := handle.Get[*shapeEntry](b.table, handle.Handle(sh), handle.KindShape)
			if err != nil {
				continue
			}
			se.actors, _ = removeHandle(se.actors, ActorHandle(h))
			if se.owner == ActorHandle(h) {
				owned = append(owned, sh)
			}
		}
		delete(b.actors, e.native)
		b.unref(e.engine)

	case *shapeEntry:
		if n := len(e.actors); n > 0 {
			return errors.InUse(op, uint32(h), kind.String(), n)
		}
		delete(b.shapes, e.native)
		b.unref(e.material)
		b.unref(e.engine)
	}

	if _, err := b.table.Remove(h); err != nil {
		return annotate(err, errors.PhaseRelease, op)
	}
	for _, sh := range owned {
		if err := b.release(op, handle.Handle(sh), handle.KindShape); err != nil {
			return err
		}
	}
	b.log.Debug("released", zap.Stringer("kind", kind), zap.Uint32("handle", uint32(h)))
	return nil
}

// unref drops one dependency count from a parent object.
func (b *Binding) unref(h Handle) {
	v, err := b.table.Get(handle.Handle(h.Raw()), h.kind())
	if err != nil {
		return
	}
	switch e := v.(type) {
	case *foundationEntry:
		e.refs--
	case *debugEntry:
		e.refs--
	case *engineEntry:
		e.refs--
	case *materialEntry:
		e.refs--
	}
}

// Close completes any in-flight steps and releases every live handle in
// dependency order. The binding cannot be used afterwards. Close is
// idempotent.
func (b *Binding) Close() error {
	if b.closed {
		return nil
	}

	for _, sh := range b.table.Live(handle.KindScene) {
		se, err := handle.Get[*sceneEntry](b.table, sh, handle.KindScene)
		if err != nil || se.step == nil {
			continue
		}
		se.native.FetchResults(true)
		se.step.done = true
		se.step = nil
	}

	var errs error
	for _, kind := range teardownOrder {
		for _, h := range b.table.Live(kind) {
			if !b.table.Valid(h) {
				continue
			}
			if err := b.release("Close", h, kind); err != nil {
				errs = multierr.Append(errs, err)
			}
		}
	}

	b.closed = true
	return multierr.Append(errs, b.table.Close())
}
