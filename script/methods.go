package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/wippyai/physx-binding/native"
	"github.com/wippyai/physx-binding/px"
)

func (r *Runtime) debugMethods() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"connect": func(L *lua.LState) int {
			ok, err := r.b.ConnectDebugger(checkHandle[px.DebugConnectorHandle](L, 1, "debug connector"))
			r.check(L, err)
			L.Push(lua.LBool(ok))
			return 1
		},
		"connected": func(L *lua.LState) int {
			ok, err := r.b.DebuggerConnected(checkHandle[px.DebugConnectorHandle](L, 1, "debug connector"))
			r.check(L, err)
			L.Push(lua.LBool(ok))
			return 1
		},
	}
}

func (r *Runtime) filter(L *lua.LState, n int) native.ActorTypeFlags {
	return native.ActorTypeFlags(L.OptInt(n, int(native.ActorAll)))
}

func (r *Runtime) sceneMethods() map[string]lua.LGFunction {
	scene := func(L *lua.LState) px.SceneHandle { return checkHandle[px.SceneHandle](L, 1, "scene") }
	return map[string]lua.LGFunction{
		"add_actor": func(L *lua.LState) int {
			r.check(L, r.b.AddActor(scene(L), checkHandle[px.ActorHandle](L, 2, "actor")))
			return 0
		},
		"remove_actor": func(L *lua.LState) int {
			r.check(L, r.b.RemoveActor(scene(L), checkHandle[px.ActorHandle](L, 2, "actor")))
			return 0
		},
		"simulate": func(L *lua.LState) int {
			st, err := r.b.Simulate(scene(L), float32(L.CheckNumber(2)))
			r.check(L, err)
			ud := L.NewUserData()
			ud.Value = st
			L.SetMetatable(ud, L.GetTypeMetatable(stepType))
			L.Push(ud)
			return 1
		},
		"fetch_results": func(L *lua.LState) int {
			ok, err := r.b.FetchResults(scene(L), L.OptBool(2, true))
			r.check(L, err)
			L.Push(lua.LBool(ok))
			return 1
		},
		"advance": func(L *lua.LState) int {
			s := scene(L)
			dt := float32(L.CheckNumber(2))
			for i := L.OptInt(3, 1); i > 0; i-- {
				r.check(L, r.b.Advance(s, dt))
			}
			return 0
		},
		"in_flight": func(L *lua.LState) int {
			ok, err := r.b.InFlight(scene(L))
			r.check(L, err)
			L.Push(lua.LBool(ok))
			return 1
		},
		"actor_count": func(L *lua.LState) int {
			n, err := r.b.SceneActorCount(scene(L), r.filter(L, 2))
			r.check(L, err)
			L.Push(lua.LNumber(n))
			return 1
		},
		"actors": func(L *lua.LState) int {
			as, err := r.b.CollectSceneActors(scene(L), r.filter(L, 2), r.opts.PageSize)
			r.check(L, err)
			t := L.CreateTable(len(as), 0)
			for _, a := range as {
				pushHandle(L, a)
				t.Append(L.Get(-1))
				L.Pop(1)
			}
			L.Push(t)
			return 1
		},
		"gravity": func(L *lua.LState) int {
			g, err := r.b.SceneGravity(scene(L))
			r.check(L, err)
			L.Push(vec3Table(L, g))
			return 1
		},
		"set_gravity": func(L *lua.LState) int {
			r.check(L, r.b.SetSceneGravity(scene(L), r.checkVec3(L, 2)))
			return 0
		},
		"workers": func(L *lua.LState) int {
			n, err := r.b.SceneWorkers(scene(L))
			r.check(L, err)
			L.Push(lua.LNumber(n))
			return 1
		},
	}
}

func checkStep(L *lua.LState) *px.Step {
	ud := L.CheckUserData(1)
	st, ok := ud.Value.(*px.Step)
	if !ok {
		L.ArgError(1, "step expected")
	}
	return st
}

func (r *Runtime) stepMethods() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"wait": func(L *lua.LState) int {
			r.check(L, checkStep(L).Wait())
			return 0
		},
		"poll": func(L *lua.LState) int {
			ok, err := checkStep(L).Poll()
			r.check(L, err)
			L.Push(lua.LBool(ok))
			return 1
		},
		"done": func(L *lua.LState) int {
			L.Push(lua.LBool(checkStep(L).Done()))
			return 1
		},
		"dt": func(L *lua.LState) int {
			L.Push(lua.LNumber(checkStep(L).Dt()))
			return 1
		},
	}
}

func (r *Runtime) materialMethods() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"params": func(L *lua.LState) int {
			p, err := r.b.MaterialParams(checkHandle[px.MaterialHandle](L, 1, "material"))
			r.check(L, err)
			L.Push(lua.LNumber(p.StaticFriction))
			L.Push(lua.LNumber(p.DynamicFriction))
			L.Push(lua.LNumber(p.Restitution))
			return 3
		},
	}
}

func (r *Runtime) actorMethods() map[string]lua.LGFunction {
	actor := func(L *lua.LState) px.ActorHandle { return checkHandle[px.ActorHandle](L, 1, "actor") }
	return map[string]lua.LGFunction{
		"type": func(L *lua.LState) int {
			t, err := r.b.ActorType(actor(L))
			r.check(L, err)
			L.Push(lua.LNumber(t))
			return 1
		},
		"is_static": func(L *lua.LState) int {
			ok, err := r.b.IsRigidStatic(actor(L))
			r.check(L, err)
			L.Push(lua.LBool(ok))
			return 1
		},
		"pose": func(L *lua.LState) int {
			p, err := r.b.ActorGlobalPose(actor(L))
			r.check(L, err)
			L.Push(poseTable(L, p))
			return 1
		},
		"set_pose": func(L *lua.LState) int {
			r.check(L, r.b.SetActorGlobalPose(actor(L), r.checkPose(L, 2)))
			return 0
		},
		"velocity": func(L *lua.LState) int {
			v, err := r.b.LinearVelocity(actor(L))
			r.check(L, err)
			L.Push(vec3Table(L, v))
			return 1
		},
		"set_velocity": func(L *lua.LState) int {
			r.check(L, r.b.SetLinearVelocity(actor(L), r.checkVec3(L, 2)))
			return 0
		},
		"attach": func(L *lua.LState) int {
			ok, err := r.b.AttachShape(actor(L), checkHandle[px.ShapeHandle](L, 2, "shape"))
			r.check(L, err)
			L.Push(lua.LBool(ok))
			return 1
		},
		"detach": func(L *lua.LState) int {
			ok, err := r.b.DetachShape(actor(L), checkHandle[px.ShapeHandle](L, 2, "shape"))
			r.check(L, err)
			L.Push(lua.LBool(ok))
			return 1
		},
		"shape_count": func(L *lua.LState) int {
			n, err := r.b.ActorShapeCount(actor(L))
			r.check(L, err)
			L.Push(lua.LNumber(n))
			return 1
		},
		"shapes": func(L *lua.LState) int {
			ss, err := r.b.CollectActorShapes(actor(L), r.opts.PageSize)
			r.check(L, err)
			t := L.CreateTable(len(ss), 0)
			for _, s := range ss {
				pushHandle(L, s)
				t.Append(L.Get(-1))
				L.Pop(1)
			}
			L.Push(t)
			return 1
		},
		"scene": func(L *lua.LState) int {
			s, err := r.b.ActorScene(actor(L))
			r.check(L, err)
			pushOptional(L, s)
			return 1
		},
	}
}

func (r *Runtime) shapeMethods() map[string]lua.LGFunction {
	shape := func(L *lua.LState) px.ShapeHandle { return checkHandle[px.ShapeHandle](L, 1, "shape") }
	return map[string]lua.LGFunction{
		"attach_count": func(L *lua.LState) int {
			n, err := r.b.ShapeAttachCount(shape(L))
			r.check(L, err)
			L.Push(lua.LNumber(n))
			return 1
		},
		"is_exclusive": func(L *lua.LState) int {
			ok, err := r.b.ShapeIsExclusive(shape(L))
			r.check(L, err)
			L.Push(lua.LBool(ok))
			return 1
		},
		"material": func(L *lua.LState) int {
			m, err := r.b.ShapeMaterial(shape(L))
			r.check(L, err)
			pushHandle(L, m)
			return 1
		},
		"local_pose": func(L *lua.LState) int {
			p, err := r.b.ShapeLocalPose(shape(L))
			r.check(L, err)
			L.Push(poseTable(L, p))
			return 1
		},
		"set_local_pose": func(L *lua.LState) int {
			r.check(L, r.b.SetShapeLocalPose(shape(L), r.checkPose(L, 2)))
			return 0
		},
		"global_pose": func(L *lua.LState) int {
			p, err := r.b.ShapeGlobalPose(shape(L), checkHandle[px.ActorHandle](L, 2, "actor"))
			r.check(L, err)
			L.Push(poseTable(L, p))
			return 1
		},
		"global_matrix": func(L *lua.LState) int {
			m, err := r.b.ShapeGlobalPoseMatrix(shape(L), checkHandle[px.ActorHandle](L, 2, "actor"))
			r.check(L, err)
			L.Push(mat44Table(L, m))
			return 1
		},
		"geometry": func(L *lua.LState) int {
			g, err := r.b.ShapeGeometry(shape(L))
			r.check(L, err)
			L.Push(geometryTable(L, g))
			return 1
		},
	}
}

func (r *Runtime) geometryMethods() map[string]lua.LGFunction {
	geometry := func(L *lua.LState) px.GeometryHandle { return checkHandle[px.GeometryHandle](L, 1, "geometry") }
	return map[string]lua.LGFunction{
		"type": func(L *lua.LState) int {
			t, err := r.b.GeometryType(geometry(L))
			r.check(L, err)
			L.Push(lua.LNumber(t))
			return 1
		},
		"radius": func(L *lua.LState) int {
			v, err := r.b.SphereRadius(geometry(L))
			r.check(L, err)
			L.Push(lua.LNumber(v))
			return 1
		},
		"half_extents": func(L *lua.LState) int {
			v, err := r.b.BoxHalfExtents(geometry(L))
			r.check(L, err)
			L.Push(vec3Table(L, v))
			return 1
		},
		"capsule": func(L *lua.LState) int {
			radius, halfHeight, err := r.b.CapsuleParams(geometry(L))
			r.check(L, err)
			L.Push(lua.LNumber(radius))
			L.Push(lua.LNumber(halfHeight))
			return 2
		},
		"describe": func(L *lua.LState) int {
			g, err := r.b.Classify(geometry(L))
			r.check(L, err)
			L.Push(geometryTable(L, g))
			return 1
		},
	}
}

// geometryTable describes g as { type = code, ... } with the variant's
// parameters.
func geometryTable(L *lua.LState, g px.Geometry) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("type", lua.LNumber(g.Type()))
	t.RawSetString("name", lua.LString(g.Type().String()))
	switch g := g.(type) {
	case px.SphereGeometry:
		t.RawSetString("radius", lua.LNumber(g.Radius))
	case px.CapsuleGeometry:
		t.RawSetString("radius", lua.LNumber(g.Radius))
		t.RawSetString("half_height", lua.LNumber(g.HalfHeight))
	case px.BoxGeometry:
		t.RawSetString("half_extents", vec3Table(L, g.HalfExtents))
	}
	return t
}
