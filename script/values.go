package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/wippyai/physx-binding/errors"
	"github.com/wippyai/physx-binding/layout"
)

// Tables accepted for records. Named fields win over positional ones:
//
//	vec3   { x = 1, y = 2, z = 3 } or { 1, 2, 3 }
//	quat   { x = 0, y = 0, z = 0, w = 1 } or { 0, 0, 0, 1 }
//	pose   { p = vec3, q = quat } with either part optional, or a bare vec3
//	plane  { n = vec3, d = 0 } or { 0, 1, 0, 0 }

func (r *Runtime) invalid(L *lua.LState, op, format string, args ...any) {
	r.raise(L, errors.New(errors.PhaseScript, errors.KindInvalidInput).Op(op).Detail(format, args...).Build())
}

func (r *Runtime) field(L *lua.LState, t *lua.LTable, key string, idx int) float32 {
	v := t.RawGetString(key)
	if v == lua.LNil {
		v = t.RawGetInt(idx)
	}
	n, ok := v.(lua.LNumber)
	if !ok {
		r.invalid(L, "convert", "field %q must be a number, got %s", key, v.Type())
	}
	return float32(n)
}

func (r *Runtime) toVec3(L *lua.LState, t *lua.LTable) layout.Vec3f {
	return layout.Vec3f{
		X: r.field(L, t, "x", 1),
		Y: r.field(L, t, "y", 2),
		Z: r.field(L, t, "z", 3),
	}
}

func (r *Runtime) toQuat(L *lua.LState, t *lua.LTable) layout.Quatf {
	return layout.Quatf{
		X: r.field(L, t, "x", 1),
		Y: r.field(L, t, "y", 2),
		Z: r.field(L, t, "z", 3),
		W: r.field(L, t, "w", 4),
	}
}

func (r *Runtime) checkVec3(L *lua.LState, n int) layout.Vec3f {
	return r.toVec3(L, L.CheckTable(n))
}

func (r *Runtime) checkPose(L *lua.LState, n int) layout.Transformf {
	t := L.CheckTable(n)
	pose := layout.TransformIdentity()

	p, hasP := t.RawGetString("p").(*lua.LTable)
	q, hasQ := t.RawGetString("q").(*lua.LTable)
	switch {
	case hasP || hasQ:
		if hasP {
			pose.P = r.toVec3(L, p)
		}
		if hasQ {
			pose.Q = r.toQuat(L, q)
		}
	default:
		pose.P = r.toVec3(L, t)
	}
	return pose
}

func (r *Runtime) checkPlane(L *lua.LState, n int) layout.Planef {
	t := L.CheckTable(n)
	if nt, ok := t.RawGetString("n").(*lua.LTable); ok {
		return layout.Planef{N: r.toVec3(L, nt), D: r.field(L, t, "d", 4)}
	}
	return layout.Planef{
		N: layout.Vec3f{X: r.field(L, t, "x", 1), Y: r.field(L, t, "y", 2), Z: r.field(L, t, "z", 3)},
		D: r.field(L, t, "d", 4),
	}
}

func vec3Table(L *lua.LState, v layout.Vec3f) *lua.LTable {
	t := L.CreateTable(0, 3)
	t.RawSetString("x", lua.LNumber(v.X))
	t.RawSetString("y", lua.LNumber(v.Y))
	t.RawSetString("z", lua.LNumber(v.Z))
	return t
}

func quatTable(L *lua.LState, q layout.Quatf) *lua.LTable {
	t := L.CreateTable(0, 4)
	t.RawSetString("x", lua.LNumber(q.X))
	t.RawSetString("y", lua.LNumber(q.Y))
	t.RawSetString("z", lua.LNumber(q.Z))
	t.RawSetString("w", lua.LNumber(q.W))
	return t
}

func poseTable(L *lua.LState, tr layout.Transformf) *lua.LTable {
	t := L.CreateTable(0, 2)
	t.RawSetString("p", vec3Table(L, tr.P))
	t.RawSetString("q", quatTable(L, tr.Q))
	return t
}

// mat44Table returns the 16 matrix elements in column-major order.
func mat44Table(L *lua.LState, m layout.Mat44f) *lua.LTable {
	t := L.CreateTable(16, 0)
	for _, c := range [...]layout.Vec4f{m.Col0, m.Col1, m.Col2, m.Col3} {
		t.Append(lua.LNumber(c.X))
		t.Append(lua.LNumber(c.Y))
		t.Append(lua.LNumber(c.Z))
		t.Append(lua.LNumber(c.W))
	}
	return t
}
