package px

import (
	"math"
	"testing"

	"github.com/wippyai/physx-binding/errors"
	"github.com/wippyai/physx-binding/layout"
	"github.com/wippyai/physx-binding/native"
)

func TestGeometry_TagMatchesFactory(t *testing.T) {
	b := newBinding(t)

	tests := []struct {
		name   string
		create func() (GeometryHandle, error)
		want   native.GeometryType
	}{
		{"sphere", func() (GeometryHandle, error) { return b.CreateSphereGeometry(1) }, native.GeometrySphere},
		{"plane", b.CreatePlaneGeometry, native.GeometryPlane},
		{"capsule", func() (GeometryHandle, error) { return b.CreateCapsuleGeometry(0.5, 1) }, native.GeometryCapsule},
		{"box", func() (GeometryHandle, error) { return b.CreateBoxGeometry(layout.Vec3f{X: 1, Y: 2, Z: 3}) }, native.GeometryBox},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := tt.create()
			if err != nil {
				t.Fatal(err)
			}
			got, err := b.GeometryType(g)
			if err != nil || got != tt.want {
				t.Fatalf("GeometryType = %v, %v; want %v", got, err, tt.want)
			}
			c, err := b.Classify(g)
			if err != nil || c.Type() != tt.want {
				t.Fatalf("Classify = %v, %v", c, err)
			}
		})
	}
}

func TestGeometry_CheckedDowncast(t *testing.T) {
	b := newBinding(t)
	sphere, _ := b.CreateSphereGeometry(2)
	box, _ := b.CreateBoxGeometry(layout.Vec3f{X: 1, Y: 2, Z: 3})
	capsule, _ := b.CreateCapsuleGeometry(0.25, 0.75)
	plane, _ := b.CreatePlaneGeometry()

	if r, err := b.SphereRadius(sphere); err != nil || r != 2 {
		t.Errorf("SphereRadius = %v, %v", r, err)
	}
	if h, err := b.BoxHalfExtents(box); err != nil || h != (layout.Vec3f{X: 1, Y: 2, Z: 3}) {
		t.Errorf("BoxHalfExtents = %v, %v", h, err)
	}
	if r, hh, err := b.CapsuleParams(capsule); err != nil || r != 0.25 || hh != 0.75 {
		t.Errorf("CapsuleParams = %v, %v, %v", r, hh, err)
	}

	mismatches := []struct {
		name string
		call func() error
	}{
		{"radius of box", func() error { _, err := b.SphereRadius(box); return err }},
		{"radius of plane", func() error { _, err := b.SphereRadius(plane); return err }},
		{"extents of sphere", func() error { _, err := b.BoxHalfExtents(sphere); return err }},
		{"capsule of box", func() error { _, _, err := b.CapsuleParams(box); return err }},
	}
	for _, tt := range mismatches {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.IsKind(err, errors.KindGeometryMismatch) {
				t.Fatalf("expected geometry_mismatch, got %v", err)
			}
		})
	}

	if _, err := b.SphereRadius(GeometryHandle(0)); !errors.IsKind(err, errors.KindNullHandle) {
		t.Errorf("null geometry: %v", err)
	}
}

func TestGeometry_ClassifySwitch(t *testing.T) {
	b := newBinding(t)
	g, _ := b.CreateBoxGeometry(layout.Vec3f{X: 1, Y: 1, Z: 1})

	c, err := b.Classify(g)
	if err != nil {
		t.Fatal(err)
	}
	switch v := c.(type) {
	case BoxGeometry:
		if v.HalfExtents.X != 1 {
			t.Errorf("half extents = %+v", v.HalfExtents)
		}
	default:
		t.Fatalf("Classify returned %T", c)
	}
}

func TestGeometry_InvalidInput(t *testing.T) {
	b := newBinding(t)
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	tests := []struct {
		name string
		call func() error
	}{
		{"zero radius", func() error { _, err := b.CreateSphereGeometry(0); return err }},
		{"negative radius", func() error { _, err := b.CreateSphereGeometry(-1); return err }},
		{"nan radius", func() error { _, err := b.CreateSphereGeometry(nan); return err }},
		{"inf radius", func() error { _, err := b.CreateSphereGeometry(inf); return err }},
		{"negative half height", func() error { _, err := b.CreateCapsuleGeometry(1, -1); return err }},
		{"flat box", func() error { _, err := b.CreateBoxGeometry(layout.Vec3f{X: 1, Y: 0, Z: 1}); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.IsKind(err, errors.KindInvalidInput) {
				t.Fatalf("expected invalid_input, got %v", err)
			}
		})
	}
}

func TestShapeGeometry(t *testing.T) {
	w := newWorld(t)
	_, s := w.sphereActor(t, layout.Vec3f{}, 0.75)

	g, err := w.b.ShapeGeometry(s)
	if err != nil {
		t.Fatal(err)
	}
	sphere, ok := g.(SphereGeometry)
	if !ok || sphere.Radius != 0.75 {
		t.Fatalf("ShapeGeometry = %#v", g)
	}
}

func TestGeometryFromNative_Other(t *testing.T) {
	g := geometryFromNative(native.Geometry{Type: native.GeometryTriangleMesh})
	o, ok := g.(OtherGeometry)
	if !ok || o.Type() != native.GeometryTriangleMesh {
		t.Fatalf("geometryFromNative = %#v", g)
	}
}

func TestShapeGeometryHandle(t *testing.T) {
	w := newWorld(t)
	_, s := w.sphereActor(t, layout.Vec3f{}, 0.75)

	g, err := w.b.ShapeGeometryHandle(s)
	if err != nil {
		t.Fatalf("ShapeGeometryHandle: %v", err)
	}
	if r, err := w.b.SphereRadius(g); err != nil || r != 0.75 {
		t.Fatalf("SphereRadius = %v, %v", r, err)
	}
	if _, err := w.b.BoxHalfExtents(g); err == nil {
		t.Fatal("box accessor accepted a sphere")
	}

	if err := w.b.Release(g); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if !w.b.Valid(s) {
		t.Fatal("releasing the geometry handle invalidated the shape")
	}
	if _, err := w.b.ShapeGeometryHandle(ShapeHandle(0)); err == nil {
		t.Fatal("null shape accepted")
	}
}
