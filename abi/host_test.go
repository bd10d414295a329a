package abi

import (
	"context"
	"math"
	"testing"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/physx-binding/abi/internal/memory"
	"github.com/wippyai/physx-binding/layout"
	"github.com/wippyai/physx-binding/native"
	"github.com/wippyai/physx-binding/native/reference"
	"github.com/wippyai/physx-binding/px"
)

// memoryWASM is a minimal WASM module with 1 page of memory exported as "memory"
var memoryWASM = []byte{
	0x00, 0x61, 0x73, 0x6d, // magic
	0x01, 0x00, 0x00, 0x00, // version
	0x05, 0x03, 0x01, 0x00, 0x01, // memory section: 1 page, no max
	0x07, 0x0a, 0x01, // export section: 10 bytes, 1 export
	0x06, 0x6d, 0x65, 0x6d, 0x6f, 0x72, 0x79, // name: "memory" (6 bytes + string)
	0x02, 0x00, // kind: memory, index 0
}

func newHost(t *testing.T) *Host {
	t.Helper()
	b, err := px.New(reference.New(reference.Options{}), px.DefaultConfig())
	if err != nil {
		t.Fatalf("px.New: %v", err)
	}
	t.Cleanup(func() { _ = b.Close() })
	return New(b)
}

func newGuestMemory(t *testing.T) *memory.Wrapper {
	t.Helper()
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	t.Cleanup(func() { rt.Close(ctx) })

	mod, err := rt.Instantiate(ctx, memoryWASM)
	if err != nil {
		t.Fatalf("failed to instantiate: %v", err)
	}
	return memory.Wrap(mod.ExportedMemory("memory"))
}

// call runs one host function against mem and returns its result.
func call(t *testing.T, h *Host, mem *memory.Wrapper, name string, args ...uint64) uint64 {
	t.Helper()
	d, ok := h.defs[name]
	if !ok {
		t.Fatalf("no host function %s", name)
	}
	if len(args) != len(d.params) {
		t.Fatalf("%s takes %d params, got %d", name, len(d.params), len(args))
	}
	stack := make([]uint64, max(len(d.params), len(d.results)))
	copy(stack, args)
	h.dispatch(context.Background(), d, mem, stack)
	if len(d.results) == 0 {
		return 0
	}
	return stack[0]
}

func lastCode(t *testing.T, h *Host) Code {
	t.Helper()
	return Code(call(t, h, nil, "pxGetLastError"))
}

func f(v float32) uint64 { return api.EncodeF32(v) }

func put(t *testing.T, mem *memory.Wrapper, ptr uint32, size int, rec interface{ Put([]byte) }) uint64 {
	t.Helper()
	b := make([]byte, size)
	rec.Put(b)
	if err := mem.Write(ptr, b); err != nil {
		t.Fatalf("write record: %v", err)
	}
	return uint64(ptr)
}

type abiWorld struct {
	h        *Host
	mem      *memory.Wrapper
	engine   uint64
	scene    uint64
	material uint64
}

func newABIWorld(t *testing.T) *abiWorld {
	t.Helper()
	h := newHost(t)
	mem := newGuestMemory(t)

	fd := call(t, h, mem, "pxCreateFoundation")
	e := call(t, h, mem, "pxCreatePhysics", fd, 0)
	s := call(t, h, mem, "pxPhysicsCreateScene", e)
	m := call(t, h, mem, "pxPhysicsCreateMaterial", e, f(0.5), f(0.5), f(0))
	if fd == 0 || e == 0 || s == 0 || m == 0 {
		t.Fatalf("bootstrap failed: %v", h.LastError())
	}
	return &abiWorld{h: h, mem: mem, engine: e, scene: s, material: m}
}

func (w *abiWorld) sphere(t *testing.T, pos layout.Vec3f, r float32) (actor, shape uint64) {
	t.Helper()
	a := call(t, w.h, w.mem, "pxCreateRigidDynamic", w.engine, put(t, w.mem, 0, layout.TransformSize, layout.TransformAt(pos)))
	g := call(t, w.h, w.mem, "pxCreateSphereGeometry", f(r))
	s := call(t, w.h, w.mem, "pxPhysicsCreateShape", w.engine, g, w.material, 1)
	if a == 0 || g == 0 || s == 0 {
		t.Fatalf("sphere: %v", w.h.LastError())
	}
	if call(t, w.h, w.mem, "pxRigidActorAttachShape", a, s) != 1 {
		t.Fatalf("attach: %v", w.h.LastError())
	}
	return a, s
}

func (w *abiWorld) pose(t *testing.T, actor uint64) layout.Transformf {
	t.Helper()
	const ptr = 512
	if call(t, w.h, w.mem, "pxRigidActorGetGlobalPose", actor, ptr) != 1 {
		t.Fatalf("pose: %v", w.h.LastError())
	}
	b, _ := w.mem.Read(ptr, layout.TransformSize)
	return layout.DecodeTransformf(b)
}

func TestHost_Exports(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	h := newHost(t)
	mod, err := h.Instantiate(ctx, rt)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	if mod.Name() != ModuleName {
		t.Errorf("module name = %q", mod.Name())
	}

	defs := mod.ExportedFunctionDefinitions()
	names := h.Functions()
	if len(defs) != len(names) {
		t.Fatalf("exported %d functions, defined %d", len(defs), len(names))
	}
	for _, name := range names {
		def, ok := defs[name]
		if !ok {
			t.Errorf("%s not exported", name)
			continue
		}
		if want := h.defs[name]; len(def.ParamTypes()) != len(want.params) || len(def.ResultTypes()) != len(want.results) {
			t.Errorf("%s signature %v -> %v", name, def.ParamTypes(), def.ResultTypes())
		}
	}

	for _, name := range []string{
		"pxCreateFoundation", "pxCreatePvd", "pxPvdConnect", "pxCreatePhysics",
		"pxPhysicsCreateScene", "pxPhysicsCreateSceneEx", "pxPhysicsCreateMaterial", "pxCreatePlane",
		"pxSceneAddActor", "pxSceneSimulate", "pxSceneFetchResults", "pxSceneGetNbActors",
		"pxSceneGetActors", "pxRelease", "pxGetLastError", "pxGetLastErrorMessage",
	} {
		if _, ok := defs[name]; !ok {
			t.Errorf("%s missing", name)
		}
	}

	// record-free calls go through the same dispatch path the exports use
	mem := newGuestMemory(t)
	g := call(t, h, mem, "pxCreatePlaneGeometry")
	if g == 0 {
		t.Fatalf("pxCreatePlaneGeometry: %v", h.LastError())
	}
	if typ := call(t, h, mem, "pxGeometryGetType", g); native.GeometryType(api.DecodeI32(typ)) != native.GeometryPlane {
		t.Fatalf("pxGeometryGetType = %d", typ)
	}
}

// cphysxNames are the functions of the C wrapper library guests link against.
var cphysxNames = []string{
	"pxCreateFoundation", "pxCreatePvd", "pxCreatePhysics", "pxPhysicsCreateScene",
	"pxPhysicsCreateMaterial", "pxCreatePlane", "pxCreateRigidStatic", "pxCreateRigidDynamic",
	"pxCreateShape", "pxCreatePlaneGeometry", "pxCreateBoxGeometry", "pxCreateSphereGeometry",
	"pxSceneAddActor", "pxSceneSimulate", "pxSceneFetchResults", "pxSceneGetNbActors",
	"pxSceneGetActors", "pxActorIsRigid", "pxActorIsRigidStatic", "pxRigidActorAttachShape",
	"pxRigidActorGetNbShapes", "pxRigidActorGetShapes", "pxShapeGetGlobalPose", "pxShapeGetGeometry",
	"pxGeometryGetType", "pxGeometryGetBox", "pxGeometryGetSphere",
}

func TestHost_ExportsWrapperNames(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	mod, err := newHost(t).Instantiate(ctx, rt)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	defs := mod.ExportedFunctionDefinitions()
	for _, name := range cphysxNames {
		if _, ok := defs[name]; !ok {
			t.Errorf("%s not exported", name)
		}
	}
}

func TestHost_ShapeGetGeometry(t *testing.T) {
	w := newABIWorld(t)
	_, s := w.sphere(t, layout.Vec3f{Y: 1}, 0.4)

	g := call(t, w.h, w.mem, "pxShapeGetGeometry", s)
	if g == 0 {
		t.Fatalf("pxShapeGetGeometry: %v", w.h.LastError())
	}
	if typ := call(t, w.h, w.mem, "pxGeometryGetType", g); native.GeometryType(api.DecodeI32(typ)) != native.GeometrySphere {
		t.Fatalf("type = %d", typ)
	}
	if call(t, w.h, w.mem, "pxGeometryGetSphere", g, 8) != 1 {
		t.Fatalf("pxGeometryGetSphere: %v", w.h.LastError())
	}
	if r, _ := w.mem.ReadF32(8); r != 0.4 {
		t.Fatalf("radius = %v", r)
	}
	if call(t, w.h, w.mem, "pxGeometryGetBox", g, 8) != 0 || lastCode(t, w.h) != CodeGeometryMismatch {
		t.Fatalf("box accessor on sphere: %v", lastCode(t, w.h))
	}
	if call(t, w.h, w.mem, "pxActorIsRigid", s) != 0 || lastCode(t, w.h) != CodeWrongKind {
		t.Fatalf("pxActorIsRigid on a shape: %v", lastCode(t, w.h))
	}

	box := call(t, w.h, w.mem, "pxCreateBoxGeometry", f(1), f(1), f(1))
	sh := call(t, w.h, w.mem, "pxCreateShape", w.engine, box, w.material, 0)
	if sh == 0 {
		t.Fatalf("pxCreateShape: %v", w.h.LastError())
	}
	if call(t, w.h, w.mem, "pxShapeGetGeometry", 0) != 0 || lastCode(t, w.h) != CodeNullHandle {
		t.Fatalf("null shape: %v", lastCode(t, w.h))
	}
}

// guest module builder helpers

func uleb(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}

func cat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func vec(items ...[]byte) []byte {
	return cat(uleb(uint32(len(items))), cat(items...))
}

func name(s string) []byte { return cat(uleb(uint32(len(s))), []byte(s)) }

func section(id byte, body []byte) []byte {
	return cat([]byte{id}, uleb(uint32(len(body))), body)
}

// sphereGuest imports two pxabi functions and exports run() which creates
// a sphere of radius 2.5, writes its radius to offset 16 and returns the
// geometry handle.
func sphereGuest() []byte {
	const (
		i32 = 0x7f
		f32 = 0x7d
	)
	body := cat(
		[]byte{0x01, 0x01, i32},             // one i32 local
		[]byte{0x43, 0x00, 0x00, 0x20, 0x40}, // f32.const 2.5
		[]byte{0x10, 0x00},                   // call pxCreateSphereGeometry
		[]byte{0x22, 0x00},                   // local.tee 0
		[]byte{0x41, 0x10},                   // i32.const 16
		[]byte{0x10, 0x01},                   // call pxGeometryGetSphereRadius
		[]byte{0x1a},                         // drop
		[]byte{0x20, 0x00},                   // local.get 0
		[]byte{0x0b},                         // end
	)
	return cat(
		[]byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00},
		section(1, vec(
			[]byte{0x60, 0x01, f32, 0x01, i32},
			[]byte{0x60, 0x02, i32, i32, 0x01, i32},
			[]byte{0x60, 0x00, 0x01, i32},
		)),
		section(2, vec(
			cat(name(ModuleName), name("pxCreateSphereGeometry"), []byte{0x00, 0x00}),
			cat(name(ModuleName), name("pxGeometryGetSphereRadius"), []byte{0x00, 0x01}),
		)),
		section(3, vec([]byte{0x02})),
		section(5, vec([]byte{0x00, 0x01})),
		section(7, vec(
			cat(name("memory"), []byte{0x02, 0x00}),
			cat(name("run"), []byte{0x00, 0x02}),
		)),
		section(10, vec(cat(uleb(uint32(len(body))), body))),
	)
}

func TestHost_GuestRoundTrip(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	h := newHost(t)
	if _, err := h.Instantiate(ctx, rt); err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	guest, err := rt.Instantiate(ctx, sphereGuest())
	if err != nil {
		t.Fatalf("guest: %v", err)
	}

	res, err := guest.ExportedFunction("run").Call(ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res[0] == 0 {
		t.Fatalf("run returned null handle: %v", h.LastError())
	}
	r, ok := guest.Memory().ReadFloat32Le(16)
	if !ok || r != 2.5 {
		t.Fatalf("radius in guest memory = %v, %v", r, ok)
	}
	if got, _ := h.Binding().SphereRadius(px.GeometryHandle(uint32(res[0]))); got != 2.5 {
		t.Fatalf("binding radius = %v", got)
	}
}

func TestHost_FreeFall(t *testing.T) {
	w := newABIWorld(t)

	plane := call(t, w.h, w.mem, "pxCreatePlane", w.engine,
		put(t, w.mem, 64, layout.PlaneSize, layout.Planef{N: layout.Vec3f{Y: 1}}), w.material)
	if plane == 0 {
		t.Fatalf("pxCreatePlane: %v", w.h.LastError())
	}
	ball, shape := w.sphere(t, layout.Vec3f{Y: 5}, 0.5)
	for _, a := range []uint64{plane, ball} {
		if call(t, w.h, w.mem, "pxSceneAddActor", w.scene, a) != 1 {
			t.Fatalf("add actor: %v", w.h.LastError())
		}
	}

	prev := w.pose(t, ball).P.Y
	for i := 0; i < 240; i++ {
		if call(t, w.h, w.mem, "pxSceneSimulate", w.scene, f(1.0/60)) != 1 {
			t.Fatalf("step %d simulate: %v", i, w.h.LastError())
		}
		if call(t, w.h, w.mem, "pxSceneFetchResults", w.scene, 1) != 1 {
			t.Fatalf("step %d fetch: %v", i, w.h.LastError())
		}
		y := w.pose(t, ball).P.Y
		if y > prev+1e-4 {
			t.Fatalf("step %d: height rose from %v to %v", i, prev, y)
		}
		prev = y
	}
	if math.Abs(float64(prev-0.5)) > 0.05 {
		t.Fatalf("rest height = %v, want about 0.5", prev)
	}

	const mptr = 1024
	if call(t, w.h, w.mem, "pxShapeGetGlobalPose", shape, ball, mptr) != 1 {
		t.Fatalf("pxShapeGetGlobalPose: %v", w.h.LastError())
	}
	b, _ := w.mem.Read(mptr, layout.Mat44Size)
	m := layout.DecodeMat44f(b)
	if m.Col3.W != 1 || math.Abs(float64(m.Col3.Y-prev)) > 1e-5 {
		t.Fatalf("matrix translation = %+v, want y=%v", m.Col3, prev)
	}

	const tptr = 2048
	if call(t, w.h, w.mem, "pxShapeGetGlobalTransform", shape, ball, tptr) != 1 {
		t.Fatalf("pxShapeGetGlobalTransform: %v", w.h.LastError())
	}
	b, _ = w.mem.Read(tptr, layout.TransformSize)
	if tr := layout.DecodeTransformf(b); tr.P.Y != m.Col3.Y {
		t.Fatalf("transform y %v != matrix y %v", tr.P.Y, m.Col3.Y)
	}
}

func TestHost_Enumeration(t *testing.T) {
	w := newABIWorld(t)

	var want []uint32
	for i := 0; i < 5; i++ {
		a, _ := w.sphere(t, layout.Vec3f{X: float32(i)}, 0.1)
		call(t, w.h, w.mem, "pxSceneAddActor", w.scene, a)
		want = append(want, uint32(a))
	}
	static := call(t, w.h, w.mem, "pxCreateRigidStatic", w.engine, put(t, w.mem, 0, layout.TransformSize, layout.TransformIdentity()))
	call(t, w.h, w.mem, "pxSceneAddActor", w.scene, static)

	counts := []struct {
		flags native.ActorTypeFlags
		want  uint64
	}{
		{native.ActorRigidDynamic, 5},
		{native.ActorRigidStatic, 1},
		{native.ActorAll, 6},
	}
	for _, c := range counts {
		if n := call(t, w.h, w.mem, "pxSceneGetNbActors", w.scene, uint64(c.flags)); n != c.want {
			t.Errorf("count(%v) = %d, want %d", c.flags, n, c.want)
		}
	}

	const buf, capacity = 4096, 2
	var got []uint32
	for start := uint32(0); ; start += capacity {
		n := call(t, w.h, w.mem, "pxSceneGetActors", w.scene, uint64(native.ActorRigidDynamic), buf, capacity, uint64(start))
		if lastCode(t, w.h) != CodeOK {
			t.Fatalf("page at %d: %v", start, w.h.LastError())
		}
		for i := uint32(0); i < uint32(n); i++ {
			v, _ := w.mem.ReadU32(buf + 4*i)
			got = append(got, v)
		}
		if n < capacity {
			break
		}
	}
	if len(got) != len(want) {
		t.Fatalf("enumerated %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("actor %d = %#x, want %#x", i, got[i], want[i])
		}
	}

	shapes := call(t, w.h, w.mem, "pxRigidActorGetShapes", uint64(want[0]), buf, 8, 0)
	if shapes != 1 || call(t, w.h, w.mem, "pxRigidActorGetNbShapes", uint64(want[0])) != 1 {
		t.Errorf("shapes = %d", shapes)
	}

	if call(t, w.h, w.mem, "pxSceneGetNbActors", w.scene, 4) != 0 || lastCode(t, w.h) != CodeInvalidInput {
		t.Errorf("invalid filter code = %v", lastCode(t, w.h))
	}
}

func TestHost_BufferBounds(t *testing.T) {
	w := newABIWorld(t)
	a, _ := w.sphere(t, layout.Vec3f{}, 0.1)
	call(t, w.h, w.mem, "pxSceneAddActor", w.scene, a)

	const end = 65536
	sentinel := []byte{0xaa, 0xbb, 0xcc, 0xdd}
	if err := w.mem.Write(end-4, sentinel); err != nil {
		t.Fatal(err)
	}

	// capacity 2 at end-4 needs 8 bytes: rejected before anything is written
	n := call(t, w.h, w.mem, "pxSceneGetActors", w.scene, uint64(native.ActorAll), end-4, 2, 0)
	if n != 0 || lastCode(t, w.h) != CodeOutOfBounds {
		t.Fatalf("n = %d, code = %v", n, lastCode(t, w.h))
	}
	b, _ := w.mem.Read(end-4, 4)
	for i := range sentinel {
		if b[i] != sentinel[i] {
			t.Fatalf("guest memory modified: %x", b)
		}
	}

	if n := call(t, w.h, w.mem, "pxSceneGetActors", w.scene, uint64(native.ActorAll), end-4, 1, 0); n != 1 {
		t.Fatalf("exact fit wrote %d: %v", n, w.h.LastError())
	}

	if call(t, w.h, w.mem, "pxRigidActorGetGlobalPose", a, end-8) != 0 || lastCode(t, w.h) != CodeOutOfBounds {
		t.Fatalf("pose write past end: %v", lastCode(t, w.h))
	}
	if call(t, w.h, w.mem, "pxCreateRigidStatic", w.engine, end-8) != 0 || lastCode(t, w.h) != CodeOutOfBounds {
		t.Fatalf("pose read past end: %v", lastCode(t, w.h))
	}
}

func TestHost_LastError(t *testing.T) {
	w := newABIWorld(t)

	if r := call(t, w.h, w.mem, "pxGeometryGetType", 0); api.DecodeI32(r) != -1 {
		t.Fatalf("null geometry type = %d", api.DecodeI32(r))
	}
	if c := lastCode(t, w.h); c != CodeNullHandle {
		t.Fatalf("code = %v", c)
	}
	if c := lastCode(t, w.h); c != CodeNullHandle {
		t.Fatal("reading the code cleared it")
	}

	full := call(t, w.h, w.mem, "pxGetLastErrorMessage", 256, 0)
	if full == 0 {
		t.Fatal("empty message")
	}
	if n := call(t, w.h, w.mem, "pxGetLastErrorMessage", 256, 5); n != full {
		t.Fatalf("message length %d, want %d", n, full)
	}
	msg, _ := w.mem.Read(256, 5)
	if want := w.h.LastError().Error()[:5]; string(msg) != want {
		t.Fatalf("truncated message %q, want %q", msg, want)
	}

	g := call(t, w.h, w.mem, "pxCreateSphereGeometry", f(1))
	if g == 0 || lastCode(t, w.h) != CodeOK {
		t.Fatal("successful call did not clear the last error")
	}

	tests := []struct {
		name string
		fn   string
		args []uint64
		want Code
	}{
		{"stale", "pxRelease", []uint64{g}, CodeOK},
		{"released", "pxGeometryGetType", []uint64{g}, CodeStaleHandle},
		{"wrong kind", "pxGeometryGetSphereRadius", []uint64{w.material, 0}, CodeWrongKind},
		{"negative radius", "pxCreateSphereGeometry", []uint64{f(-1)}, CodeInvalidInput},
		{"in use", "pxRelease", []uint64{w.engine}, CodeInUse},
		{"no step", "pxSceneFetchResults", []uint64{w.scene, 1}, CodeNoStepInFlight},
		{"bad dt", "pxSceneSimulate", []uint64{w.scene, f(0)}, CodeInvalidInput},
		{"workers", "pxPhysicsCreateSceneEx", []uint64{w.engine, put(t, w.mem, 0, layout.Vec3Size, layout.Vec3f{Y: -1}), api.EncodeI32(0)}, CodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call(t, w.h, w.mem, tt.fn, tt.args...)
			if c := lastCode(t, w.h); c != tt.want {
				t.Fatalf("code = %v, want %v (%v)", c, tt.want, w.h.LastError())
			}
		})
	}
}

func TestHost_Geometry(t *testing.T) {
	w := newABIWorld(t)

	box := call(t, w.h, w.mem, "pxCreateBoxGeometry", f(1), f(2), f(3))
	if call(t, w.h, w.mem, "pxGeometryGetBoxHalfExtents", box, 0) != 1 {
		t.Fatalf("half extents: %v", w.h.LastError())
	}
	b, _ := w.mem.Read(0, layout.Vec3Size)
	if he := layout.DecodeVec3f(b); he != (layout.Vec3f{X: 1, Y: 2, Z: 3}) {
		t.Fatalf("half extents = %+v", he)
	}
	if call(t, w.h, w.mem, "pxGeometryGetSphereRadius", box, 0) != 0 || lastCode(t, w.h) != CodeGeometryMismatch {
		t.Fatalf("sphere accessor on box: %v", lastCode(t, w.h))
	}

	capsule := call(t, w.h, w.mem, "pxCreateCapsuleGeometry", f(0.25), f(1.5))
	if call(t, w.h, w.mem, "pxGeometryGetCapsule", capsule, 16, 20) != 1 {
		t.Fatalf("capsule: %v", w.h.LastError())
	}
	r, _ := w.mem.ReadF32(16)
	hh, _ := w.mem.ReadF32(20)
	if r != 0.25 || hh != 1.5 {
		t.Fatalf("capsule = %v, %v", r, hh)
	}
	if typ := call(t, w.h, w.mem, "pxGeometryGetType", capsule); native.GeometryType(api.DecodeI32(typ)) != native.GeometryCapsule {
		t.Fatalf("capsule type = %d", typ)
	}
}

func TestHost_ActorState(t *testing.T) {
	w := newABIWorld(t)
	a, s := w.sphere(t, layout.Vec3f{Y: 1}, 0.2)

	if call(t, w.h, w.mem, "pxActorIsRigidStatic", a) != 0 || lastCode(t, w.h) != CodeOK {
		t.Fatal("dynamic actor reported static")
	}
	if call(t, w.h, w.mem, "pxShapeGetAttachCount", s) != 1 {
		t.Fatal("attach count")
	}

	v := layout.Vec3f{X: 1, Y: 2, Z: 3}
	if call(t, w.h, w.mem, "pxRigidDynamicSetLinearVelocity", a, put(t, w.mem, 0, layout.Vec3Size, v)) != 1 {
		t.Fatalf("set velocity: %v", w.h.LastError())
	}
	if call(t, w.h, w.mem, "pxRigidDynamicGetLinearVelocity", a, 32) != 1 {
		t.Fatalf("get velocity: %v", w.h.LastError())
	}
	b, _ := w.mem.Read(32, layout.Vec3Size)
	if got := layout.DecodeVec3f(b); got != v {
		t.Fatalf("velocity = %+v", got)
	}

	pose := layout.TransformAt(layout.Vec3f{X: 4, Y: 5, Z: 6})
	if call(t, w.h, w.mem, "pxRigidActorSetGlobalPose", a, put(t, w.mem, 64, layout.TransformSize, pose)) != 1 {
		t.Fatalf("set pose: %v", w.h.LastError())
	}
	if got := w.pose(t, a); got != pose {
		t.Fatalf("pose = %+v", got)
	}

	if call(t, w.h, w.mem, "pxRigidActorDetachShape", a, s) != 1 || call(t, w.h, w.mem, "pxShapeGetAttachCount", s) != 0 {
		t.Fatal("detach")
	}
	if call(t, w.h, w.mem, "pxRelease", s) != 1 {
		t.Fatalf("release detached shape: %v", w.h.LastError())
	}
}
