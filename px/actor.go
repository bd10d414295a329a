package px

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/physx-binding/errors"
	"github.com/wippyai/physx-binding/handle"
	"github.com/wippyai/physx-binding/layout"
	"github.com/wippyai/physx-binding/native"
)

// MaterialParams is a material's friction/restitution triple.
type MaterialParams struct {
	StaticFriction  float32
	DynamicFriction float32
	Restitution     float32
}

// CreateMaterial creates a material owned by e.
func (b *Binding) CreateMaterial(e EngineHandle, staticFriction, dynamicFriction, restitution float32) (MaterialHandle, error) {
	const op = "CreateMaterial"
	ee, err := lookup[*engineEntry](b, errors.PhaseFactory, op, e)
	if err != nil {
		return 0, err
	}
	for _, v := range [...]float32{staticFriction, dynamicFriction, restitution} {
		if !(v >= 0) || v > maxExtent {
			return 0, errors.InvalidInput(errors.PhaseFactory, op,
				fmt.Sprintf("material coefficients must be non-negative and finite, got (%g, %g, %g)",
					staticFriction, dynamicFriction, restitution))
		}
	}

	m, err := ee.native.CreateMaterial(staticFriction, dynamicFriction, restitution)
	if err != nil || m == nil {
		return 0, errors.ConstructionFailed(errors.PhaseFactory, op, "material", err)
	}
	h, err := b.insert(errors.PhaseFactory, op, handle.KindMaterial, &materialEntry{native: m, engine: e})
	if err != nil {
		m.Release()
		return 0, err
	}
	ee.refs++
	return MaterialHandle(h), nil
}

// MaterialParams returns the coefficients of m.
func (b *Binding) MaterialParams(m MaterialHandle) (MaterialParams, error) {
	me, err := lookup[*materialEntry](b, errors.PhaseQuery, "MaterialParams", m)
	if err != nil {
		return MaterialParams{}, err
	}
	return MaterialParams{
		StaticFriction:  me.native.StaticFriction(),
		DynamicFriction: me.native.DynamicFriction(),
		Restitution:     me.native.Restitution(),
	}, nil
}

func validPose(pose layout.Transformf) error {
	if !pose.Finite() {
		return fmt.Errorf("pose is not finite")
	}
	if !pose.Q.ValidRotation() {
		return fmt.Errorf("pose rotation is not a unit quaternion")
	}
	return nil
}

func (b *Binding) trackActor(op string, e EngineHandle, ee *engineEntry, a native.RigidActor) (ActorHandle, *actorEntry, error) {
	ae := &actorEntry{native: a, engine: e}
	h, err := b.insert(errors.PhaseFactory, op, handle.KindActor, ae)
	if err != nil {
		a.Release()
		return 0, nil, err
	}
	ee.refs++
	b.actors[a] = ActorHandle(h)
	return ActorHandle(h), ae, nil
}

// CreateRigidStatic creates a scene-less static actor at pose.
func (b *Binding) CreateRigidStatic(e EngineHandle, pose layout.Transformf) (ActorHandle, error) {
	const op = "CreateRigidStatic"
	ee, err := lookup[*engineEntry](b, errors.PhaseFactory, op, e)
	if err != nil {
		return 0, err
	}
	if err := validPose(pose); err != nil {
		return 0, errors.New(errors.PhaseFactory, errors.KindInvalidInput).Op(op).Cause(err).Build()
	}
	a, err := ee.native.CreateRigidStatic(pose)
	if err != nil || a == nil {
		return 0, errors.ConstructionFailed(errors.PhaseFactory, op, "rigid static", err)
	}
	ah, _, err := b.trackActor(op, e, ee, a)
	return ah, err
}

// CreateRigidDynamic creates a scene-less dynamic actor at pose.
func (b *Binding) CreateRigidDynamic(e EngineHandle, pose layout.Transformf) (ActorHandle, error) {
	const op = "CreateRigidDynamic"
	ee, err := lookup[*engineEntry](b, errors.PhaseFactory, op, e)
	if err != nil {
		return 0, err
	}
	if err := validPose(pose); err != nil {
		return 0, errors.New(errors.PhaseFactory, errors.KindInvalidInput).Op(op).Cause(err).Build()
	}
	a, err := ee.native.CreateRigidDynamic(pose)
	if err != nil || a == nil {
		return 0, errors.ConstructionFailed(errors.PhaseFactory, op, "rigid dynamic", err)
	}
	ah, _, err := b.trackActor(op, e, ee, a)
	return ah, err
}

// CreatePlane creates a static actor carrying a plane shape posed from the
// plane equation n.x + d = 0. The shape is released with the actor.
func (b *Binding) CreatePlane(e EngineHandle, plane layout.Planef, m MaterialHandle) (ActorHandle, error) {
	const op = "CreatePlane"
	ee, err := lookup[*engineEntry](b, errors.PhaseFactory, op, e)
	if err != nil {
		return 0, err
	}
	me, err := lookup[*materialEntry](b, errors.PhaseFactory, op, m)
	if err != nil {
		return 0, err
	}
	if me.engine != e {
		return 0, errors.InvalidInput(errors.PhaseFactory, op, "material belongs to another engine")
	}
	if !plane.Finite() || plane.N == (layout.Vec3f{}) {
		return 0, errors.InvalidInput(errors.PhaseFactory, op, "plane normal must be finite and non-zero")
	}

	a, err := ee.native.CreatePlane(plane, me.native)
	if err != nil || a == nil {
		return 0, errors.ConstructionFailed(errors.PhaseFactory, op, "plane", err)
	}
	ah, ae, err := b.trackActor(op, e, ee, a)
	if err != nil {
		return 0, err
	}

	buf := make([]native.Shape, a.NbShapes())
	n := a.Shapes(buf, 0)
	for _, s := range buf[:n] {
		sh, err := b.insert(errors.PhaseFactory, op, handle.KindShape, &shapeEntry{
			native:   s,
			actors:   []ActorHandle{ah},
			engine:   e,
			material: m,
			owner:    ah,
		})
		if err != nil {
			b.discardActor(op, ah)
			return 0, err
		}
		ee.refs++
		me.refs++
		b.shapes[s] = ShapeHandle(sh)
		ae.shapes = append(ae.shapes, ShapeHandle(sh))
	}
	return ah, nil
}

// discardActor rolls back a partially built actor and the engine shapes
// already tracked for it.
func (b *Binding) discardActor(op string, ah ActorHandle) {
	if err := b.release(op, handle.Handle(ah), handle.KindActor); err != nil {
		b.log.Debug("discard actor", zap.Uint32("actor", ah.Raw()), zap.Error(err))
	}
}

// ActorType returns ActorRigidStatic or ActorRigidDynamic.
func (b *Binding) ActorType(a ActorHandle) (native.ActorTypeFlags, error) {
	ae, err := lookup[*actorEntry](b, errors.PhaseQuery, "ActorType", a)
	if err != nil {
		return 0, err
	}
	return ae.native.Type(), nil
}

// IsRigidStatic reports whether a is a static actor.
func (b *Binding) IsRigidStatic(a ActorHandle) (bool, error) {
	t, err := b.ActorType(a)
	return t == native.ActorRigidStatic, err
}

// ActorGlobalPose returns the actor's world pose.
func (b *Binding) ActorGlobalPose(a ActorHandle) (layout.Transformf, error) {
	ae, err := lookup[*actorEntry](b, errors.PhaseQuery, "ActorGlobalPose", a)
	if err != nil {
		return layout.Transformf{}, err
	}
	return ae.native.GlobalPose(), nil
}

// SetActorGlobalPose teleports the actor.
func (b *Binding) SetActorGlobalPose(a ActorHandle, pose layout.Transformf) error {
	const op = "SetActorGlobalPose"
	ae, err := lookup[*actorEntry](b, errors.PhaseQuery, op, a)
	if err != nil {
		return err
	}
	if err := b.guardActor(op, ae); err != nil {
		return err
	}
	if err := validPose(pose); err != nil {
		return errors.New(errors.PhaseQuery, errors.KindInvalidInput).Op(op).Cause(err).Build()
	}
	ae.native.SetGlobalPose(pose)
	return nil
}

func (b *Binding) dynamicActor(op string, a ActorHandle) (native.RigidDynamic, *actorEntry, error) {
	ae, err := lookup[*actorEntry](b, errors.PhaseQuery, op, a)
	if err != nil {
		return nil, nil, err
	}
	d, ok := ae.native.(native.RigidDynamic)
	if !ok || ae.native.Type() != native.ActorRigidDynamic {
		return nil, nil, errors.WrongKind(errors.PhaseQuery, op, a.Raw(), "rigid dynamic", ae.native.Type().String())
	}
	return d, ae, nil
}

// LinearVelocity returns a dynamic actor's linear velocity.
func (b *Binding) LinearVelocity(a ActorHandle) (layout.Vec3f, error) {
	d, _, err := b.dynamicActor("LinearVelocity", a)
	if err != nil {
		return layout.Vec3f{}, err
	}
	return d.LinearVelocity(), nil
}

// SetLinearVelocity sets a dynamic actor's linear velocity.
func (b *Binding) SetLinearVelocity(a ActorHandle, v layout.Vec3f) error {
	const op = "SetLinearVelocity"
	d, ae, err := b.dynamicActor(op, a)
	if err != nil {
		return err
	}
	if err := b.guardActor(op, ae); err != nil {
		return err
	}
	if !v.Finite() {
		return errors.InvalidInput(errors.PhaseQuery, op, "velocity must be finite")
	}
	d.SetLinearVelocity(v)
	return nil
}

// CreateShape creates an unattached shape. An exclusive shape can be
// attached to at most one actor at a time.
func (b *Binding) CreateShape(e EngineHandle, g GeometryHandle, m MaterialHandle, exclusive bool) (ShapeHandle, error) {
	const op = "CreateShape"
	ee, err := lookup[*engineEntry](b, errors.PhaseFactory, op, e)
	if err != nil {
		return 0, err
	}
	ge, err := lookup[*geometryEntry](b, errors.PhaseFactory, op, g)
	if err != nil {
		return 0, err
	}
	me, err := lookup[*materialEntry](b, errors.PhaseFactory, op, m)
	if err != nil {
		return 0, err
	}
	if me.engine != e {
		return 0, errors.InvalidInput(errors.PhaseFactory, op, "material belongs to another engine")
	}

	s, err := ee.native.CreateShape(ge.geometry.toNative(), me.native, exclusive)
	if err != nil || s == nil {
		return 0, errors.ConstructionFailed(errors.PhaseFactory, op, "shape", err)
	}
	h, err := b.insert(errors.PhaseFactory, op, handle.KindShape, &shapeEntry{native: s, engine: e, material: m})
	if err != nil {
		s.Release()
		return 0, err
	}
	ee.refs++
	me.refs++
	b.shapes[s] = ShapeHandle(h)
	return ShapeHandle(h), nil
}

// AttachShape attaches s to a. It returns false when the engine refuses,
// for example when s is exclusive and already attached elsewhere.
func (b *Binding) AttachShape(a ActorHandle, s ShapeHandle) (bool, error) {
	const op = "AttachShape"
	ae, err := lookup[*actorEntry](b, errors.PhaseAttach, op, a)
	if err != nil {
		return false, err
	}
	se, err := lookup[*shapeEntry](b, errors.PhaseAttach, op, s)
	if err != nil {
		return false, err
	}
	if err := b.guardActor(op, ae); err != nil {
		return false, err
	}
	if ae.engine != se.engine {
		return false, errors.InvalidInput(errors.PhaseAttach, op, "actor and shape belong to different engines")
	}

	if !ae.native.AttachShape(se.native) {
		b.log.Debug("attach refused",
			zap.Uint32("actor", a.Raw()),
			zap.Uint32("shape", s.Raw()),
			zap.Bool("exclusive", se.native.IsExclusive()))
		return false, nil
	}
	ae.shapes = append(ae.shapes, s)
	se.actors = append(se.actors, a)
	return true, nil
}

// DetachShape detaches s from a. It returns false when s is not attached
// to a.
func (b *Binding) DetachShape(a ActorHandle, s ShapeHandle) (bool, error) {
	const op = "DetachShape"
	ae, err := lookup[*actorEntry](b, errors.PhaseAttach, op, a)
	if err != nil {
		return false, err
	}
	se, err := lookup[*shapeEntry](b, errors.PhaseAttach, op, s)
	if err != nil {
		return false, err
	}
	if err := b.guardActor(op, ae); err != nil {
		return false, err
	}

	shapes, ok := removeHandle(ae.shapes, s)
	if !ok {
		return false, nil
	}
	if !ae.native.DetachShape(se.native) {
		return false, nil
	}
	ae.shapes = shapes
	se.actors, _ = removeHandle(se.actors, a)
	if se.owner == a {
		se.owner = 0
	}
	return true, nil
}

// ShapeAttachCount returns the number of actors s is attached to.
func (b *Binding) ShapeAttachCount(s ShapeHandle) (uint32, error) {
	se, err := lookup[*shapeEntry](b, errors.PhaseQuery, "ShapeAttachCount", s)
	if err != nil {
		return 0, err
	}
	return se.native.AttachCount(), nil
}

// ShapeIsExclusive reports whether s was created exclusive.
func (b *Binding) ShapeIsExclusive(s ShapeHandle) (bool, error) {
	se, err := lookup[*shapeEntry](b, errors.PhaseQuery, "ShapeIsExclusive", s)
	if err != nil {
		return false, err
	}
	return se.native.IsExclusive(), nil
}

// ShapeMaterial returns the material s was created with.
func (b *Binding) ShapeMaterial(s ShapeHandle) (MaterialHandle, error) {
	se, err := lookup[*shapeEntry](b, errors.PhaseQuery, "ShapeMaterial", s)
	if err != nil {
		return 0, err
	}
	return se.material, nil
}

// ShapeLocalPose returns the shape's pose relative to its actor.
func (b *Binding) ShapeLocalPose(s ShapeHandle) (layout.Transformf, error) {
	se, err := lookup[*shapeEntry](b, errors.PhaseQuery, "ShapeLocalPose", s)
	if err != nil {
		return layout.Transformf{}, err
	}
	return se.native.LocalPose(), nil
}

// SetShapeLocalPose sets the shape's pose relative to its actor.
func (b *Binding) SetShapeLocalPose(s ShapeHandle, pose layout.Transformf) error {
	const op = "SetShapeLocalPose"
	se, err := lookup[*shapeEntry](b, errors.PhaseQuery, op, s)
	if err != nil {
		return err
	}
	if err := b.guardShape(op, se); err != nil {
		return err
	}
	if err := validPose(pose); err != nil {
		return errors.New(errors.PhaseQuery, errors.KindInvalidInput).Op(op).Cause(err).Build()
	}
	se.native.SetLocalPose(pose)
	return nil
}

func (b *Binding) attachedPair(op string, s ShapeHandle, a ActorHandle) (*shapeEntry, *actorEntry, error) {
	se, err := lookup[*shapeEntry](b, errors.PhaseQuery, op, s)
	if err != nil {
		return nil, nil, err
	}
	ae, err := lookup[*actorEntry](b, errors.PhaseQuery, op, a)
	if err != nil {
		return nil, nil, err
	}
	for _, h := range se.actors {
		if h == a {
			return se, ae, nil
		}
	}
	return nil, nil, errors.InvalidInput(errors.PhaseQuery, op, "shape is not attached to actor")
}

// ShapeGlobalPose returns the engine's world pose of s on a.
func (b *Binding) ShapeGlobalPose(s ShapeHandle, a ActorHandle) (layout.Transformf, error) {
	se, ae, err := b.attachedPair("ShapeGlobalPose", s, a)
	if err != nil {
		return layout.Transformf{}, err
	}
	return se.native.GlobalPose(ae.native), nil
}

// ShapeGlobalPoseMatrix returns the engine's world pose of s on a as a
// 4x4 matrix.
func (b *Binding) ShapeGlobalPoseMatrix(s ShapeHandle, a ActorHandle) (layout.Mat44f, error) {
	se, ae, err := b.attachedPair("ShapeGlobalPoseMatrix", s, a)
	if err != nil {
		return layout.Mat44f{}, err
	}
	return se.native.GlobalPoseMatrix(ae.native), nil
}

// AddActor adds a to scene s. An actor can be in at most one scene.
func (b *Binding) AddActor(s SceneHandle, a ActorHandle) error {
	const op = "AddActor"
	se, err := lookup[*sceneEntry](b, errors.PhaseAttach, op, s)
	if err != nil {
		return err
	}
	ae, err := lookup[*actorEntry](b, errors.PhaseAttach, op, a)
	if err != nil {
		return err
	}
	if se.step != nil {
		return errors.StepInFlight(op, s.Raw())
	}
	if ae.scene != 0 {
		return errors.InvalidState(errors.PhaseAttach, op, "actor is already in a scene")
	}
	if ae.engine != se.engine {
		return errors.InvalidInput(errors.PhaseAttach, op, "actor and scene belong to different engines")
	}
	if !se.native.AddActor(ae.native) {
		return errors.OperationFailed(errors.PhaseAttach, op, "engine refused the actor")
	}
	ae.scene = s
	return nil
}

// RemoveActor removes a from scene s.
func (b *Binding) RemoveActor(s SceneHandle, a ActorHandle) error {
	const op = "RemoveActor"
	se, err := lookup[*sceneEntry](b, errors.PhaseAttach, op, s)
	if err != nil {
		return err
	}
	ae, err := lookup[*actorEntry](b, errors.PhaseAttach, op, a)
	if err != nil {
		return err
	}
	if se.step != nil {
		return errors.StepInFlight(op, s.Raw())
	}
	if ae.scene != s {
		return errors.InvalidState(errors.PhaseAttach, op, "actor is not in this scene")
	}
	if !se.native.RemoveActor(ae.native) {
		return errors.OperationFailed(errors.PhaseAttach, op, "engine refused the removal")
	}
	ae.scene = 0
	return nil
}

// ActorScene returns the scene a is in, or 0.
func (b *Binding) ActorScene(a ActorHandle) (SceneHandle, error) {
	ae, err := lookup[*actorEntry](b, errors.PhaseQuery, "ActorScene", a)
	if err != nil {
		return 0, err
	}
	return ae.scene, nil
}
