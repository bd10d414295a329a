package reference

import (
	"math"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/wippyai/physx-binding/layout"
	"github.com/wippyai/physx-binding/native"
)

func near(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

func newPhysics(t *testing.T) native.Physics {
	t.Helper()
	f, err := New(Options{}).CreateFoundation()
	if err != nil {
		t.Fatalf("CreateFoundation: %v", err)
	}
	p, err := f.CreatePhysics(native.DefaultTolerancesScale(), nil)
	if err != nil {
		t.Fatalf("CreatePhysics: %v", err)
	}
	return p
}

func newScene(t *testing.T, p native.Physics) native.Scene {
	t.Helper()
	s, err := p.CreateScene(native.SceneDesc{
		Gravity: layout.Vec3f{Y: -9.81},
		Workers: 2,
		Scale:   p.TolerancesScale(),
	})
	if err != nil {
		t.Fatalf("CreateScene: %v", err)
	}
	return s
}

func TestBackend_SingleFoundation(t *testing.T) {
	b := New(Options{})
	f, err := b.CreateFoundation()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.CreateFoundation(); err == nil {
		t.Fatal("second foundation should fail")
	}
	f.Release()
	if _, err := b.CreateFoundation(); err != nil {
		t.Fatalf("foundation after release: %v", err)
	}
}

func TestCreateScene_Validation(t *testing.T) {
	p := newPhysics(t)
	if _, err := p.CreateScene(native.SceneDesc{Workers: 0}); err == nil {
		t.Error("zero workers should fail")
	}
	nan := float32(math.NaN())
	if _, err := p.CreateScene(native.SceneDesc{Workers: 1, Gravity: layout.Vec3f{Y: nan}}); err == nil {
		t.Error("NaN gravity should fail")
	}
	s := newScene(t, p)
	if s.Workers() != 2 {
		t.Errorf("Workers = %d, want 2", s.Workers())
	}
}

func TestPlanePose(t *testing.T) {
	tests := []struct {
		name  string
		plane layout.Planef
		want  layout.Vec3f
	}{
		{"ground", layout.Planef{N: layout.Vec3f{Y: 1}}, layout.Vec3f{}},
		{"raised", layout.Planef{N: layout.Vec3f{Y: 1}, D: -2}, layout.Vec3f{Y: 2}},
		{"unnormalized", layout.Planef{N: layout.Vec3f{Y: 2}, D: -4}, layout.Vec3f{Y: 2}},
		{"wall", layout.Planef{N: layout.Vec3f{X: -1}, D: 3}, layout.Vec3f{X: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pose, err := planePose(tt.plane)
			if err != nil {
				t.Fatal(err)
			}
			if !near(pose.P.X, tt.want.X, 1e-5) || !near(pose.P.Y, tt.want.Y, 1e-5) || !near(pose.P.Z, tt.want.Z, 1e-5) {
				t.Errorf("P = %+v, want %+v", pose.P, tt.want)
			}
			n := pose.Q.Mgl().Rotate(axisX)
			wantN := tt.plane.N.Mgl().Normalize()
			if n.Sub(wantN).Len() > 1e-4 {
				t.Errorf("rotated +X = %v, want %v", n, wantN)
			}
		})
	}

	if _, err := planePose(layout.Planef{}); err == nil {
		t.Error("zero normal should fail")
	}
}

func TestAttach_Exclusive(t *testing.T) {
	p := newPhysics(t)
	m, _ := p.CreateMaterial(0.5, 0.5, 0.1)
	sh, _ := p.CreateShape(native.SphereGeometry(1), m, true)
	a1, _ := p.CreateRigidDynamic(layout.TransformIdentity())
	a2, _ := p.CreateRigidStatic(layout.TransformIdentity())

	if !a1.AttachShape(sh) {
		t.Fatal("first attach should succeed")
	}
	if a2.AttachShape(sh) {
		t.Fatal("exclusive shape attached twice")
	}
	if a1.AttachShape(sh) {
		t.Fatal("same actor attach twice should fail")
	}
	if sh.AttachCount() != 1 {
		t.Fatalf("AttachCount = %d, want 1", sh.AttachCount())
	}

	shared, _ := p.CreateShape(native.BoxGeometry(layout.Vec3f{X: 1, Y: 1, Z: 1}), m, false)
	if !a1.AttachShape(shared) || !a2.AttachShape(shared) {
		t.Fatal("shared shape should attach to both actors")
	}
	if shared.AttachCount() != 2 {
		t.Fatalf("shared AttachCount = %d, want 2", shared.AttachCount())
	}

	if !a1.DetachShape(sh) || sh.AttachCount() != 0 {
		t.Fatal("detach failed")
	}
	if !a2.AttachShape(sh) {
		t.Fatal("detached exclusive shape should attach elsewhere")
	}
}

func TestCreateShape_Validation(t *testing.T) {
	p := newPhysics(t)
	m, _ := p.CreateMaterial(0.5, 0.5, 0.1)
	tests := []struct {
		name string
		g    native.Geometry
		ok   bool
	}{
		{"sphere", native.SphereGeometry(1), true},
		{"zero sphere", native.SphereGeometry(0), false},
		{"plane", native.PlaneGeometry(), true},
		{"capsule", native.CapsuleGeometry(0.5, 1), true},
		{"flat box", native.BoxGeometry(layout.Vec3f{X: 1, Y: 0, Z: 1}), false},
		{"convex", native.Geometry{Type: native.GeometryConvexMesh}, false},
	}
	for _, tt := range tests {
		_, err := p.CreateShape(tt.g, m, true)
		if (err == nil) != tt.ok {
			t.Errorf("%s: err = %v, want ok=%v", tt.name, err, tt.ok)
		}
	}
}

func TestScene_Enumeration(t *testing.T) {
	p := newPhysics(t)
	s := newScene(t, p)

	var dynamics, statics []native.RigidActor
	for i := 0; i < 3; i++ {
		d, _ := p.CreateRigidDynamic(layout.TransformIdentity())
		s.AddActor(d)
		dynamics = append(dynamics, d)
		if i < 2 {
			st, _ := p.CreateRigidStatic(layout.TransformIdentity())
			s.AddActor(st)
			statics = append(statics, st)
		}
	}

	if n := s.NbActors(native.ActorRigidStatic); n != 2 {
		t.Errorf("static count = %d", n)
	}
	if n := s.NbActors(native.ActorRigidDynamic); n != 3 {
		t.Errorf("dynamic count = %d", n)
	}
	if n := s.NbActors(native.ActorAll); n != 5 {
		t.Errorf("all count = %d", n)
	}

	buf := make([]native.RigidActor, 2)
	var got []native.RigidActor
	for start := uint32(0); ; start += uint32(len(buf)) {
		n := s.Actors(native.ActorRigidDynamic, buf, start)
		got = append(got, buf[:n]...)
		if n < uint32(len(buf)) {
			break
		}
	}
	if len(got) != 3 {
		t.Fatalf("paginated %d dynamics, want 3", len(got))
	}
	for i := range got {
		if got[i] != dynamics[i] {
			t.Errorf("actor %d out of order", i)
		}
	}

	if n := s.Actors(native.ActorAll, buf, 99); n != 0 {
		t.Errorf("start past end wrote %d", n)
	}
	if n := s.Actors(native.ActorAll, buf[:0], 0); n != 0 {
		t.Errorf("zero capacity wrote %d", n)
	}

	if s.AddActor(statics[0]) {
		t.Error("actor added twice")
	}
	if !s.RemoveActor(statics[0]) || s.NbActors(native.ActorAll) != 4 {
		t.Error("RemoveActor failed")
	}
}

func TestScene_StepProtocol(t *testing.T) {
	p := newPhysics(t)
	s := newScene(t, p)

	if s.FetchResults(true) {
		t.Fatal("fetch without simulate should fail")
	}
	if s.Simulate(0) {
		t.Fatal("zero dt should not schedule")
	}
	if !s.Simulate(1.0 / 60) {
		t.Fatal("simulate failed")
	}
	if s.Simulate(1.0 / 60) {
		t.Fatal("second simulate before fetch should fail")
	}
	if !s.FetchResults(true) {
		t.Fatal("blocking fetch should succeed")
	}
	if !s.Simulate(1.0 / 60) {
		t.Fatal("simulate after fetch failed")
	}
	deadline := time.Now().Add(5 * time.Second)
	for !s.FetchResults(false) {
		if time.Now().After(deadline) {
			t.Fatal("non-blocking fetch never completed")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestScene_FreeFall(t *testing.T) {
	const radius = 0.5

	p := newPhysics(t)
	s := newScene(t, p)
	ground, _ := p.CreateMaterial(0.5, 0.5, 0)
	ball, _ := p.CreateMaterial(0.5, 0.5, 0)

	plane, err := p.CreatePlane(layout.Planef{N: layout.Vec3f{Y: 1}}, ground)
	if err != nil {
		t.Fatal(err)
	}
	s.AddActor(plane)

	a, _ := p.CreateRigidDynamic(layout.TransformAt(layout.Vec3f{Y: 10}))
	sh, _ := p.CreateShape(native.SphereGeometry(radius), ball, true)
	a.AttachShape(sh)
	s.AddActor(a)

	prev := a.GlobalPose().P.Y
	contact := false
	for i := 0; i < 300; i++ {
		if !s.Simulate(1.0/60) || !s.FetchResults(true) {
			t.Fatalf("step %d failed", i)
		}
		y := a.GlobalPose().P.Y
		if !contact {
			if y >= prev {
				t.Fatalf("step %d: height %f did not decrease from %f", i, y, prev)
			}
			if y <= radius+1e-4 {
				contact = true
			}
		} else if !near(y, radius, 1e-3) {
			t.Fatalf("step %d: height %f drifted from rest", i, y)
		}
		prev = y
	}
	if !contact {
		t.Fatal("sphere never reached the plane")
	}
}

func TestScene_Bounce(t *testing.T) {
	const radius = 0.5

	p := newPhysics(t)
	s := newScene(t, p)
	m, _ := p.CreateMaterial(0.5, 0.5, 0.5)
	plane, _ := p.CreatePlane(layout.Planef{N: layout.Vec3f{Y: 1}}, m)
	s.AddActor(plane)

	a, _ := p.CreateRigidDynamic(layout.TransformAt(layout.Vec3f{Y: 10}))
	sh, _ := p.CreateShape(native.SphereGeometry(radius), m, true)
	a.AttachShape(sh)
	s.AddActor(a)

	for i := 0; i < 600; i++ {
		s.Simulate(1.0 / 60)
		s.FetchResults(true)
		y := a.GlobalPose().P.Y
		if y < radius-1e-3 || y > 10 {
			t.Fatalf("step %d: height %f out of bounds", i, y)
		}
	}
	if y := a.GlobalPose().P.Y; !near(y, radius, 1e-3) {
		t.Fatalf("sphere did not come to rest: %f", y)
	}
}

func TestShape_GlobalPose(t *testing.T) {
	p := newPhysics(t)
	m, _ := p.CreateMaterial(0.5, 0.5, 0)
	a, _ := p.CreateRigidStatic(layout.TransformAt(layout.Vec3f{X: 1, Y: 2, Z: 3}))
	sh, _ := p.CreateShape(native.SphereGeometry(1), m, true)
	sh.SetLocalPose(layout.TransformAt(layout.Vec3f{Y: 1}))
	a.AttachShape(sh)

	g := sh.GlobalPose(a)
	if g.P != (layout.Vec3f{X: 1, Y: 3, Z: 3}) {
		t.Errorf("global P = %+v", g.P)
	}
	mat := sh.GlobalPoseMatrix(a)
	if mat.Col3.X != 1 || mat.Col3.Y != 3 || mat.Col3.Z != 3 || mat.Col3.W != 1 {
		t.Errorf("matrix translation = %+v", mat.Col3)
	}
}

func TestDispatcher_Run(t *testing.T) {
	for _, workers := range []int{1, 2, 7} {
		d := newDispatcher(workers)
		var hits [100]int32
		d.run(len(hits), func(lo, hi int) {
			for i := lo; i < hi; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})
		for i, h := range hits {
			if h != 1 {
				t.Fatalf("workers=%d: item %d visited %d times", workers, i, h)
			}
		}
	}
}

func TestDebugConnector(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("listen: %v", err)
	}
	defer ln.Close()
	go func() {
		if c, err := ln.Accept(); err == nil {
			defer c.Close()
			time.Sleep(100 * time.Millisecond)
		}
	}()

	f, _ := New(Options{}).CreateFoundation()
	d, err := f.CreateDebugConnector()
	if err != nil {
		t.Fatal(err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	if !d.Connect(native.DebugEndpoint{Host: "127.0.0.1", Port: port, Timeout: time.Second}) {
		t.Fatal("connect failed")
	}
	if !d.IsConnected() {
		t.Fatal("not connected")
	}
	d.Release()
	if d.IsConnected() {
		t.Fatal("still connected after release")
	}
}
