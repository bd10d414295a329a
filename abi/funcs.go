package abi

import (
	"context"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/physx-binding/abi/internal/memory"
	"github.com/wippyai/physx-binding/layout"
	"github.com/wippyai/physx-binding/native"
	"github.com/wippyai/physx-binding/px"
)

func params(t ...api.ValueType) []api.ValueType { return t }

var one = params(i32)

func (h *Host) funcs() []funcDef {
	return []funcDef{
		// bootstrap
		{name: "pxCreateFoundation", results: one, fn: h.createFoundation},
		{name: "pxCreatePvd", params: params(i32), results: one, fn: h.createPvd},
		{name: "pxPvdConnect", params: params(i32), results: one, fn: h.pvdConnect},
		{name: "pxCreatePhysics", params: params(i32, i32), results: one, fn: h.createPhysics},
		{name: "pxPhysicsCreateScene", params: params(i32), results: one, fn: h.createScene},
		{name: "pxPhysicsCreateSceneEx", params: params(i32, i32, i32), results: one, fn: h.createSceneEx},
		{name: "pxPhysicsCreateMaterial", params: params(i32, f32, f32, f32), results: one, fn: h.createMaterial},

		// actors
		{name: "pxCreatePlane", params: params(i32, i32, i32), results: one, fn: h.createPlane},
		{name: "pxCreateRigidStatic", params: params(i32, i32), results: one, fn: h.createRigidStatic},
		{name: "pxCreateRigidDynamic", params: params(i32, i32), results: one, fn: h.createRigidDynamic},
		{name: "pxActorIsRigidStatic", params: params(i32), results: one, fn: h.actorIsRigidStatic},
		{name: "pxActorIsRigid", params: params(i32), results: one, fn: h.actorIsRigidStatic},
		{name: "pxRigidActorGetGlobalPose", params: params(i32, i32), results: one, fn: h.actorGetGlobalPose},
		{name: "pxRigidActorSetGlobalPose", params: params(i32, i32), results: one, fn: h.actorSetGlobalPose},
		{name: "pxRigidDynamicGetLinearVelocity", params: params(i32, i32), results: one, fn: h.getLinearVelocity},
		{name: "pxRigidDynamicSetLinearVelocity", params: params(i32, i32), results: one, fn: h.setLinearVelocity},

		// geometry
		{name: "pxCreateSphereGeometry", params: params(f32), results: one, fn: h.createSphereGeometry},
		{name: "pxCreatePlaneGeometry", results: one, fn: h.createPlaneGeometry},
		{name: "pxCreateCapsuleGeometry", params: params(f32, f32), results: one, fn: h.createCapsuleGeometry},
		{name: "pxCreateBoxGeometry", params: params(f32, f32, f32), results: one, fn: h.createBoxGeometry},
		{name: "pxGeometryGetType", params: params(i32), results: one, fn: h.geometryGetType, fail: api.EncodeI32(-1)},
		{name: "pxGeometryGetSphereRadius", params: params(i32, i32), results: one, fn: h.geometrySphereRadius},
		{name: "pxGeometryGetBoxHalfExtents", params: params(i32, i32), results: one, fn: h.geometryBoxHalfExtents},
		{name: "pxGeometryGetCapsule", params: params(i32, i32, i32), results: one, fn: h.geometryCapsule},
		{name: "pxGeometryGetSphere", params: params(i32, i32), results: one, fn: h.geometrySphereRadius},
		{name: "pxGeometryGetBox", params: params(i32, i32), results: one, fn: h.geometryBoxHalfExtents},

		// shapes
		{name: "pxCreateShape", params: params(i32, i32, i32, i32), results: one, fn: h.createShape},
		{name: "pxPhysicsCreateShape", params: params(i32, i32, i32, i32), results: one, fn: h.createShape},
		{name: "pxShapeGetGeometry", params: params(i32), results: one, fn: h.shapeGetGeometry},
		{name: "pxRigidActorAttachShape", params: params(i32, i32), results: one, fn: h.attachShape},
		{name: "pxRigidActorDetachShape", params: params(i32, i32), results: one, fn: h.detachShape},
		{name: "pxShapeGetAttachCount", params: params(i32), results: one, fn: h.shapeAttachCount},
		{name: "pxShapeGetGlobalPose", params: params(i32, i32, i32), results: one, fn: h.shapeGlobalPose},
		{name: "pxShapeGetGlobalTransform", params: params(i32, i32, i32), results: one, fn: h.shapeGlobalTransform},

		// scene
		{name: "pxSceneAddActor", params: params(i32, i32), results: one, fn: h.sceneAddActor},
		{name: "pxSceneRemoveActor", params: params(i32, i32), results: one, fn: h.sceneRemoveActor},
		{name: "pxSceneSimulate", params: params(i32, f32), results: one, fn: h.sceneSimulate},
		{name: "pxSceneFetchResults", params: params(i32, i32), results: one, fn: h.sceneFetchResults},
		{name: "pxSceneGetNbActors", params: params(i32, i32), results: one, fn: h.sceneNbActors},
		{name: "pxSceneGetActors", params: params(i32, i32, i32, i32, i32), results: one, fn: h.sceneActors},
		{name: "pxRigidActorGetNbShapes", params: params(i32), results: one, fn: h.actorNbShapes},
		{name: "pxRigidActorGetShapes", params: params(i32, i32, i32, i32), results: one, fn: h.actorShapes},

		// lifetime and errors
		{name: "pxRelease", params: params(i32), results: one, fn: h.release},
		{name: "pxGetLastError", results: one, fn: h.getLastError, keep: true},
		{name: "pxGetLastErrorMessage", params: params(i32, i32), results: one, fn: h.getLastErrorMessage, keep: true},
	}
}

func u32(v uint64) uint32 { return api.DecodeU32(v) }

func f32At(stack []uint64, i int) float32 { return api.DecodeF32(stack[i]) }

func boolean(ok bool) uint64 {
	if ok {
		return 1
	}
	return 0
}

// ret stores a handle result.
func ret[H interface{ Raw() uint32 }](stack []uint64, h H, err error) error {
	if err != nil {
		return err
	}
	stack[0] = api.EncodeU32(h.Raw())
	return nil
}

// retBool stores a (bool, error) result.
func retBool(stack []uint64, ok bool, err error) error {
	if err != nil {
		return err
	}
	stack[0] = boolean(ok)
	return nil
}

// retDone stores 1 for a successful error-only call.
func retDone(stack []uint64, err error) error {
	return retBool(stack, true, err)
}

// window is the number of elements a fetch from start can return.
func window(total, start, capacity uint32) uint32 {
	if start >= total {
		return 0
	}
	return min(total-start, capacity)
}

func (h *Host) createFoundation(_ context.Context, _ *memory.Wrapper, stack []uint64) error {
	f, err := h.b.CreateFoundation()
	return ret(stack, f, err)
}

func (h *Host) createPvd(_ context.Context, _ *memory.Wrapper, stack []uint64) error {
	d, err := h.b.CreateDefaultDebugConnector(px.FoundationHandle(u32(stack[0])))
	return ret(stack, d, err)
}

func (h *Host) pvdConnect(_ context.Context, _ *memory.Wrapper, stack []uint64) error {
	ok, err := h.b.ConnectDebugger(px.DebugConnectorHandle(u32(stack[0])))
	return retBool(stack, ok, err)
}

func (h *Host) createPhysics(_ context.Context, _ *memory.Wrapper, stack []uint64) error {
	e, err := h.b.CreatePhysics(px.FoundationHandle(u32(stack[0])), px.DebugConnectorHandle(u32(stack[1])))
	return ret(stack, e, err)
}

func (h *Host) createScene(_ context.Context, _ *memory.Wrapper, stack []uint64) error {
	s, err := h.b.CreateDefaultScene(px.EngineHandle(u32(stack[0])))
	return ret(stack, s, err)
}

func (h *Host) createSceneEx(_ context.Context, mem *memory.Wrapper, stack []uint64) error {
	g, err := readVec3(mem, u32(stack[1]))
	if err != nil {
		return err
	}
	cfg := px.SceneConfig{Gravity: g, Workers: int(api.DecodeI32(stack[2]))}
	s, err := h.b.CreateScene(px.EngineHandle(u32(stack[0])), cfg)
	return ret(stack, s, err)
}

func (h *Host) createMaterial(_ context.Context, _ *memory.Wrapper, stack []uint64) error {
	m, err := h.b.CreateMaterial(px.EngineHandle(u32(stack[0])), f32At(stack, 1), f32At(stack, 2), f32At(stack, 3))
	return ret(stack, m, err)
}

func (h *Host) createPlane(_ context.Context, mem *memory.Wrapper, stack []uint64) error {
	p, err := readPlane(mem, u32(stack[1]))
	if err != nil {
		return err
	}
	a, err := h.b.CreatePlane(px.EngineHandle(u32(stack[0])), p, px.MaterialHandle(u32(stack[2])))
	return ret(stack, a, err)
}

func (h *Host) createRigidStatic(_ context.Context, mem *memory.Wrapper, stack []uint64) error {
	pose, err := readTransform(mem, u32(stack[1]))
	if err != nil {
		return err
	}
	a, err := h.b.CreateRigidStatic(px.EngineHandle(u32(stack[0])), pose)
	return ret(stack, a, err)
}

func (h *Host) createRigidDynamic(_ context.Context, mem *memory.Wrapper, stack []uint64) error {
	pose, err := readTransform(mem, u32(stack[1]))
	if err != nil {
		return err
	}
	a, err := h.b.CreateRigidDynamic(px.EngineHandle(u32(stack[0])), pose)
	return ret(stack, a, err)
}

func (h *Host) actorIsRigidStatic(_ context.Context, _ *memory.Wrapper, stack []uint64) error {
	ok, err := h.b.IsRigidStatic(px.ActorHandle(u32(stack[0])))
	return retBool(stack, ok, err)
}

func (h *Host) actorGetGlobalPose(_ context.Context, mem *memory.Wrapper, stack []uint64) error {
	pose, err := h.b.ActorGlobalPose(px.ActorHandle(u32(stack[0])))
	if err != nil {
		return err
	}
	return retDone(stack, writeTransform(mem, u32(stack[1]), pose))
}

func (h *Host) actorSetGlobalPose(_ context.Context, mem *memory.Wrapper, stack []uint64) error {
	pose, err := readTransform(mem, u32(stack[1]))
	if err != nil {
		return err
	}
	return retDone(stack, h.b.SetActorGlobalPose(px.ActorHandle(u32(stack[0])), pose))
}

func (h *Host) getLinearVelocity(_ context.Context, mem *memory.Wrapper, stack []uint64) error {
	v, err := h.b.LinearVelocity(px.ActorHandle(u32(stack[0])))
	if err != nil {
		return err
	}
	return retDone(stack, writeVec3(mem, u32(stack[1]), v))
}

func (h *Host) setLinearVelocity(_ context.Context, mem *memory.Wrapper, stack []uint64) error {
	v, err := readVec3(mem, u32(stack[1]))
	if err != nil {
		return err
	}
	return retDone(stack, h.b.SetLinearVelocity(px.ActorHandle(u32(stack[0])), v))
}

func (h *Host) createSphereGeometry(_ context.Context, _ *memory.Wrapper, stack []uint64) error {
	g, err := h.b.CreateSphereGeometry(f32At(stack, 0))
	return ret(stack, g, err)
}

func (h *Host) createPlaneGeometry(_ context.Context, _ *memory.Wrapper, stack []uint64) error {
	g, err := h.b.CreatePlaneGeometry()
	return ret(stack, g, err)
}

func (h *Host) createCapsuleGeometry(_ context.Context, _ *memory.Wrapper, stack []uint64) error {
	g, err := h.b.CreateCapsuleGeometry(f32At(stack, 0), f32At(stack, 1))
	return ret(stack, g, err)
}

func (h *Host) createBoxGeometry(_ context.Context, _ *memory.Wrapper, stack []uint64) error {
	g, err := h.b.CreateBoxGeometry(layout.Vec3f{X: f32At(stack, 0), Y: f32At(stack, 1), Z: f32At(stack, 2)})
	return ret(stack, g, err)
}

func (h *Host) geometryGetType(_ context.Context, _ *memory.Wrapper, stack []uint64) error {
	t, err := h.b.GeometryType(px.GeometryHandle(u32(stack[0])))
	if err != nil {
		return err
	}
	stack[0] = api.EncodeI32(int32(t))
	return nil
}

func (h *Host) geometrySphereRadius(_ context.Context, mem *memory.Wrapper, stack []uint64) error {
	r, err := h.b.SphereRadius(px.GeometryHandle(u32(stack[0])))
	if err != nil {
		return err
	}
	return retDone(stack, mem.WriteF32(u32(stack[1]), r))
}

func (h *Host) geometryBoxHalfExtents(_ context.Context, mem *memory.Wrapper, stack []uint64) error {
	he, err := h.b.BoxHalfExtents(px.GeometryHandle(u32(stack[0])))
	if err != nil {
		return err
	}
	return retDone(stack, writeVec3(mem, u32(stack[1]), he))
}

func (h *Host) geometryCapsule(_ context.Context, mem *memory.Wrapper, stack []uint64) error {
	r, hh, err := h.b.CapsuleParams(px.GeometryHandle(u32(stack[0])))
	if err != nil {
		return err
	}
	if err := mem.WriteF32(u32(stack[1]), r); err != nil {
		return err
	}
	return retDone(stack, mem.WriteF32(u32(stack[2]), hh))
}

func (h *Host) createShape(_ context.Context, _ *memory.Wrapper, stack []uint64) error {
	s, err := h.b.CreateShape(px.EngineHandle(u32(stack[0])), px.GeometryHandle(u32(stack[1])),
		px.MaterialHandle(u32(stack[2])), u32(stack[3]) != 0)
	return ret(stack, s, err)
}

func (h *Host) attachShape(_ context.Context, _ *memory.Wrapper, stack []uint64) error {
	ok, err := h.b.AttachShape(px.ActorHandle(u32(stack[0])), px.ShapeHandle(u32(stack[1])))
	return retBool(stack, ok, err)
}

func (h *Host) detachShape(_ context.Context, _ *memory.Wrapper, stack []uint64) error {
	ok, err := h.b.DetachShape(px.ActorHandle(u32(stack[0])), px.ShapeHandle(u32(stack[1])))
	return retBool(stack, ok, err)
}

func (h *Host) shapeAttachCount(_ context.Context, _ *memory.Wrapper, stack []uint64) error {
	n, err := h.b.ShapeAttachCount(px.ShapeHandle(u32(stack[0])))
	if err != nil {
		return err
	}
	stack[0] = api.EncodeU32(n)
	return nil
}

func (h *Host) shapeGetGeometry(_ context.Context, _ *memory.Wrapper, stack []uint64) error {
	g, err := h.b.ShapeGeometryHandle(px.ShapeHandle(u32(stack[0])))
	return ret(stack, g, err)
}

func (h *Host) shapeGlobalPose(_ context.Context, mem *memory.Wrapper, stack []uint64) error {
	m, err := h.b.ShapeGlobalPoseMatrix(px.ShapeHandle(u32(stack[0])), px.ActorHandle(u32(stack[1])))
	if err != nil {
		return err
	}
	return retDone(stack, writeMat44(mem, u32(stack[2]), m))
}

func (h *Host) shapeGlobalTransform(_ context.Context, mem *memory.Wrapper, stack []uint64) error {
	t, err := h.b.ShapeGlobalPose(px.ShapeHandle(u32(stack[0])), px.ActorHandle(u32(stack[1])))
	if err != nil {
		return err
	}
	return retDone(stack, writeTransform(mem, u32(stack[2]), t))
}

func (h *Host) sceneAddActor(_ context.Context, _ *memory.Wrapper, stack []uint64) error {
	return retDone(stack, h.b.AddActor(px.SceneHandle(u32(stack[0])), px.ActorHandle(u32(stack[1]))))
}

func (h *Host) sceneRemoveActor(_ context.Context, _ *memory.Wrapper, stack []uint64) error {
	return retDone(stack, h.b.RemoveActor(px.SceneHandle(u32(stack[0])), px.ActorHandle(u32(stack[1]))))
}

func (h *Host) sceneSimulate(_ context.Context, _ *memory.Wrapper, stack []uint64) error {
	_, err := h.b.Simulate(px.SceneHandle(u32(stack[0])), f32At(stack, 1))
	return retDone(stack, err)
}

func (h *Host) sceneFetchResults(_ context.Context, _ *memory.Wrapper, stack []uint64) error {
	ok, err := h.b.FetchResults(px.SceneHandle(u32(stack[0])), u32(stack[1]) != 0)
	return retBool(stack, ok, err)
}

func (h *Host) sceneNbActors(_ context.Context, _ *memory.Wrapper, stack []uint64) error {
	n, err := h.b.SceneActorCount(px.SceneHandle(u32(stack[0])), native.ActorTypeFlags(u32(stack[1])))
	if err != nil {
		return err
	}
	stack[0] = api.EncodeU32(n)
	return nil
}

func (h *Host) sceneActors(_ context.Context, mem *memory.Wrapper, stack []uint64) error {
	const op = "pxSceneGetActors"
	s := px.SceneHandle(u32(stack[0]))
	flags := native.ActorTypeFlags(u32(stack[1]))
	span, err := handleSpan(op, mem, u32(stack[2]), u32(stack[3]))
	if err != nil {
		return err
	}
	start := u32(stack[4])

	total, err := h.b.SceneActorCount(s, flags)
	if err != nil {
		return err
	}
	buf := make([]px.ActorHandle, window(total, start, span.Cap))
	n, err := h.b.SceneActors(s, flags, buf, start)
	if err != nil {
		return err
	}
	if err := writeHandles(mem, span, buf[:n]); err != nil {
		return err
	}
	stack[0] = api.EncodeU32(n)
	return nil
}

func (h *Host) actorNbShapes(_ context.Context, _ *memory.Wrapper, stack []uint64) error {
	n, err := h.b.ActorShapeCount(px.ActorHandle(u32(stack[0])))
	if err != nil {
		return err
	}
	stack[0] = api.EncodeU32(n)
	return nil
}

func (h *Host) actorShapes(_ context.Context, mem *memory.Wrapper, stack []uint64) error {
	const op = "pxRigidActorGetShapes"
	a := px.ActorHandle(u32(stack[0]))
	span, err := handleSpan(op, mem, u32(stack[1]), u32(stack[2]))
	if err != nil {
		return err
	}
	start := u32(stack[3])

	total, err := h.b.ActorShapeCount(a)
	if err != nil {
		return err
	}
	buf := make([]px.ShapeHandle, window(total, start, span.Cap))
	n, err := h.b.ActorShapes(a, buf, start)
	if err != nil {
		return err
	}
	if err := writeHandles(mem, span, buf[:n]); err != nil {
		return err
	}
	stack[0] = api.EncodeU32(n)
	return nil
}

func (h *Host) release(_ context.Context, _ *memory.Wrapper, stack []uint64) error {
	return retDone(stack, h.b.ReleaseRaw(u32(stack[0])))
}

func (h *Host) getLastError(_ context.Context, _ *memory.Wrapper, stack []uint64) error {
	stack[0] = api.EncodeU32(uint32(CodeOf(h.last)))
	return nil
}

// getLastErrorMessage copies at most cap bytes of the message and returns
// its full length.
func (h *Host) getLastErrorMessage(_ context.Context, mem *memory.Wrapper, stack []uint64) error {
	msg := errorMessage(h.last)
	n := min(uint32(len(msg)), u32(stack[1]))
	if n > 0 {
		if err := mem.Write(u32(stack[0]), []byte(msg[:n])); err != nil {
			return err
		}
	}
	stack[0] = api.EncodeU32(uint32(len(msg)))
	return nil
}
