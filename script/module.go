package script

import (
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/wippyai/physx-binding/layout"
	"github.com/wippyai/physx-binding/native"
	"github.com/wippyai/physx-binding/px"
)

var constants = map[string]int{
	"DYNAMIC": int(native.ActorRigidDynamic),
	"STATIC":  int(native.ActorRigidStatic),
	"ALL":     int(native.ActorAll),

	"SPHERE":           int(native.GeometrySphere),
	"PLANE":            int(native.GeometryPlane),
	"CAPSULE":          int(native.GeometryCapsule),
	"BOX":              int(native.GeometryBox),
	"CONVEX_MESH":      int(native.GeometryConvexMesh),
	"PARTICLE_SYSTEM":  int(native.GeometryParticleSystem),
	"TETRAHEDRON_MESH": int(native.GeometryTetrahedronMesh),
	"TRIANGLE_MESH":    int(native.GeometryTriangleMesh),
	"HEIGHTFIELD":      int(native.GeometryHeightField),
	"HAIR_SYSTEM":      int(native.GeometryHairSystem),
	"CUSTOM":           int(native.GeometryCustom),
}

func (r *Runtime) module(L *lua.LState) *lua.LTable {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"create_foundation":      r.createFoundation,
		"create_debug_connector": r.createDebugConnector,
		"create_physics":         r.createPhysics,
		"create_scene":           r.createScene,
		"create_material":        r.createMaterial,
		"create_rigid_static":    r.createRigidStatic,
		"create_rigid_dynamic":   r.createRigidDynamic,
		"create_plane":           r.createPlane,
		"create_shape":           r.createShape,
		"sphere":                 r.sphere,
		"plane_geometry":         r.planeGeometry,
		"capsule":                r.capsule,
		"box":                    r.box,
		"release":                r.handleRelease,
		"state":                  r.state,
		"backend":                r.backend,
		"live":                   r.live,
		"log":                    r.logf,
	})
	for name, v := range constants {
		mod.RawSetString(name, lua.LNumber(v))
	}
	return mod
}

func (r *Runtime) createFoundation(L *lua.LState) int {
	f, err := r.b.CreateFoundation()
	r.check(L, err)
	pushHandle(L, f)
	return 1
}

// createDebugConnector takes an optional { host, port, timeout_ms } table.
func (r *Runtime) createDebugConnector(L *lua.LState) int {
	f := checkHandle[px.FoundationHandle](L, 1, "foundation")
	cfg := px.DefaultDebugConfig()
	if t := L.OptTable(2, nil); t != nil {
		if h, ok := t.RawGetString("host").(lua.LString); ok {
			cfg.Host = string(h)
		}
		if p, ok := t.RawGetString("port").(lua.LNumber); ok {
			cfg.Port = int(p)
		}
		if ms, ok := t.RawGetString("timeout_ms").(lua.LNumber); ok {
			cfg.Timeout = time.Duration(float64(ms) * float64(time.Millisecond))
		}
	}
	d, err := r.b.CreateDebugConnector(f, cfg)
	r.check(L, err)
	pushHandle(L, d)
	return 1
}

func (r *Runtime) createPhysics(L *lua.LState) int {
	f := checkHandle[px.FoundationHandle](L, 1, "foundation")
	d := px.NullDebugConnector
	if L.Get(2) != lua.LNil {
		d = checkHandle[px.DebugConnectorHandle](L, 2, "debug connector")
	}
	e, err := r.b.CreatePhysics(f, d)
	r.check(L, err)
	pushHandle(L, e)
	return 1
}

// createScene takes an optional { gravity = vec3, workers = n } table;
// omitted fields come from the binding's scene defaults.
func (r *Runtime) createScene(L *lua.LState) int {
	e := checkHandle[px.EngineHandle](L, 1, "engine")
	cfg := r.b.Config().Scene
	if t := L.OptTable(2, nil); t != nil {
		if g, ok := t.RawGetString("gravity").(*lua.LTable); ok {
			cfg.Gravity = r.toVec3(L, g)
		}
		if w, ok := t.RawGetString("workers").(lua.LNumber); ok {
			cfg.Workers = int(w)
		}
	}
	s, err := r.b.CreateScene(e, cfg)
	r.check(L, err)
	pushHandle(L, s)
	return 1
}

func (r *Runtime) createMaterial(L *lua.LState) int {
	e := checkHandle[px.EngineHandle](L, 1, "engine")
	m, err := r.b.CreateMaterial(e,
		float32(L.CheckNumber(2)), float32(L.CheckNumber(3)), float32(L.CheckNumber(4)))
	r.check(L, err)
	pushHandle(L, m)
	return 1
}

func (r *Runtime) createRigidStatic(L *lua.LState) int {
	e := checkHandle[px.EngineHandle](L, 1, "engine")
	a, err := r.b.CreateRigidStatic(e, r.checkPose(L, 2))
	r.check(L, err)
	pushHandle(L, a)
	return 1
}

func (r *Runtime) createRigidDynamic(L *lua.LState) int {
	e := checkHandle[px.EngineHandle](L, 1, "engine")
	a, err := r.b.CreateRigidDynamic(e, r.checkPose(L, 2))
	r.check(L, err)
	pushHandle(L, a)
	return 1
}

func (r *Runtime) createPlane(L *lua.LState) int {
	e := checkHandle[px.EngineHandle](L, 1, "engine")
	plane := r.checkPlane(L, 2)
	m := checkHandle[px.MaterialHandle](L, 3, "material")
	a, err := r.b.CreatePlane(e, plane, m)
	r.check(L, err)
	pushHandle(L, a)
	return 1
}

// createShape defaults to an exclusive shape.
func (r *Runtime) createShape(L *lua.LState) int {
	e := checkHandle[px.EngineHandle](L, 1, "engine")
	g := checkHandle[px.GeometryHandle](L, 2, "geometry")
	m := checkHandle[px.MaterialHandle](L, 3, "material")
	s, err := r.b.CreateShape(e, g, m, L.OptBool(4, true))
	r.check(L, err)
	pushHandle(L, s)
	return 1
}

func (r *Runtime) sphere(L *lua.LState) int {
	g, err := r.b.CreateSphereGeometry(float32(L.CheckNumber(1)))
	r.check(L, err)
	pushHandle(L, g)
	return 1
}

func (r *Runtime) planeGeometry(L *lua.LState) int {
	g, err := r.b.CreatePlaneGeometry()
	r.check(L, err)
	pushHandle(L, g)
	return 1
}

func (r *Runtime) capsule(L *lua.LState) int {
	g, err := r.b.CreateCapsuleGeometry(float32(L.CheckNumber(1)), float32(L.CheckNumber(2)))
	r.check(L, err)
	pushHandle(L, g)
	return 1
}

// box takes either a half-extents table or three numbers.
func (r *Runtime) box(L *lua.LState) int {
	var he layout.Vec3f
	if L.Get(1).Type() == lua.LTTable {
		he = r.checkVec3(L, 1)
	} else {
		he = layout.Vec3f{X: float32(L.CheckNumber(1)), Y: float32(L.CheckNumber(2)), Z: float32(L.CheckNumber(3))}
	}
	g, err := r.b.CreateBoxGeometry(he)
	r.check(L, err)
	pushHandle(L, g)
	return 1
}

func (r *Runtime) state(L *lua.LState) int {
	L.Push(lua.LString(r.b.State().String()))
	return 1
}

func (r *Runtime) backend(L *lua.LState) int {
	L.Push(lua.LString(r.b.Backend()))
	return 1
}

func (r *Runtime) live(L *lua.LState) int {
	L.Push(lua.LNumber(r.b.Live()))
	return 1
}

func (r *Runtime) logf(L *lua.LState) int {
	r.log.Info(L.CheckString(1))
	return 0
}
