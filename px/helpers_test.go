package px

import (
	"math"
	"testing"

	"github.com/wippyai/physx-binding/layout"
	"github.com/wippyai/physx-binding/native/reference"
)

type world struct {
	b          *Binding
	foundation FoundationHandle
	engine     EngineHandle
	scene      SceneHandle
	material   MaterialHandle
}

func newBinding(t *testing.T) *Binding {
	t.Helper()
	b, err := New(reference.New(reference.Options{}), DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func newWorld(t *testing.T) *world {
	t.Helper()
	b := newBinding(t)
	f, err := b.CreateFoundation()
	if err != nil {
		t.Fatalf("CreateFoundation: %v", err)
	}
	e, err := b.CreatePhysics(f, NullDebugConnector)
	if err != nil {
		t.Fatalf("CreatePhysics: %v", err)
	}
	s, err := b.CreateDefaultScene(e)
	if err != nil {
		t.Fatalf("CreateDefaultScene: %v", err)
	}
	m, err := b.CreateMaterial(e, 0.5, 0.5, 0)
	if err != nil {
		t.Fatalf("CreateMaterial: %v", err)
	}
	return &world{b: b, foundation: f, engine: e, scene: s, material: m}
}

func (w *world) sphereActor(t *testing.T, pos layout.Vec3f, radius float32) (ActorHandle, ShapeHandle) {
	t.Helper()
	a, err := w.b.CreateRigidDynamic(w.engine, layout.TransformAt(pos))
	if err != nil {
		t.Fatalf("CreateRigidDynamic: %v", err)
	}
	g, err := w.b.CreateSphereGeometry(radius)
	if err != nil {
		t.Fatalf("CreateSphereGeometry: %v", err)
	}
	s, err := w.b.CreateShape(w.engine, g, w.material, true)
	if err != nil {
		t.Fatalf("CreateShape: %v", err)
	}
	if ok, err := w.b.AttachShape(a, s); !ok || err != nil {
		t.Fatalf("AttachShape = %v, %v", ok, err)
	}
	return a, s
}

func near(a, b, eps float32) bool {
	return math.Abs(float64(a-b)) <= float64(eps)
}

func nearTransform(a, b layout.Transformf, eps float32) bool {
	return near(a.Q.X, b.Q.X, eps) && near(a.Q.Y, b.Q.Y, eps) && near(a.Q.Z, b.Q.Z, eps) && near(a.Q.W, b.Q.W, eps) &&
		near(a.P.X, b.P.X, eps) && near(a.P.Y, b.P.Y, eps) && near(a.P.Z, b.P.Z, eps)
}
