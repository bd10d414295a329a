package native

import (
	"testing"

	"github.com/wippyai/physx-binding/layout"
)

func TestGeometryType_Codes(t *testing.T) {
	tests := []struct {
		typ  GeometryType
		code int32
		name string
	}{
		{GeometrySphere, 0, "sphere"},
		{GeometryPlane, 1, "plane"},
		{GeometryCapsule, 2, "capsule"},
		{GeometryBox, 3, "box"},
		{GeometryConvexMesh, 4, "convex mesh"},
		{GeometryParticleSystem, 5, "particle system"},
		{GeometryTetrahedronMesh, 6, "tetrahedron mesh"},
		{GeometryTriangleMesh, 7, "triangle mesh"},
		{GeometryHeightField, 8, "heightfield"},
		{GeometryHairSystem, 9, "hair system"},
		{GeometryCustom, 10, "custom"},
	}
	for _, tt := range tests {
		if int32(tt.typ) != tt.code {
			t.Errorf("%s = %d, want %d", tt.name, int32(tt.typ), tt.code)
		}
		if tt.typ.String() != tt.name {
			t.Errorf("String() = %q, want %q", tt.typ.String(), tt.name)
		}
		if !tt.typ.Valid() {
			t.Errorf("%s should be valid", tt.name)
		}
	}

	for _, bad := range []GeometryType{-1, 11} {
		if bad.Valid() {
			t.Errorf("GeometryType(%d) should be invalid", bad)
		}
		if bad.String() == "" {
			t.Errorf("GeometryType(%d) has empty name", bad)
		}
	}
}

func TestActorTypeFlags(t *testing.T) {
	if ActorRigidDynamic != 1 || ActorRigidStatic != 2 || ActorAll != 3 {
		t.Fatalf("flag bits changed: dynamic=%d static=%d all=%d", ActorRigidDynamic, ActorRigidStatic, ActorAll)
	}

	tests := []struct {
		flags ActorTypeFlags
		valid bool
	}{
		{0, false},
		{ActorRigidDynamic, true},
		{ActorRigidStatic, true},
		{ActorAll, true},
		{4, false},
		{ActorAll | 8, false},
	}
	for _, tt := range tests {
		if got := tt.flags.Valid(); got != tt.valid {
			t.Errorf("ActorTypeFlags(%d).Valid() = %v, want %v", tt.flags, got, tt.valid)
		}
	}
}

func TestGeometryConstructors(t *testing.T) {
	if g := SphereGeometry(2); g.Type != GeometrySphere || g.Radius != 2 {
		t.Errorf("SphereGeometry = %+v", g)
	}
	if g := PlaneGeometry(); g.Type != GeometryPlane {
		t.Errorf("PlaneGeometry = %+v", g)
	}
	if g := CapsuleGeometry(0.5, 1); g.Type != GeometryCapsule || g.Radius != 0.5 || g.HalfHeight != 1 {
		t.Errorf("CapsuleGeometry = %+v", g)
	}
	g := BoxGeometry(layout.Vec3f{X: 1, Y: 2, Z: 3})
	if g.Type != GeometryBox || g.HalfExtents.Y != 2 {
		t.Errorf("BoxGeometry = %+v", g)
	}
}
