package native

import (
	"fmt"
	"time"

	"github.com/wippyai/physx-binding/layout"
)

// GeometryType is the engine's geometry tag. Values are part of the
// boundary contract and must not change.
type GeometryType int32

const (
	GeometrySphere          GeometryType = 0
	GeometryPlane           GeometryType = 1
	GeometryCapsule         GeometryType = 2
	GeometryBox             GeometryType = 3
	GeometryConvexMesh      GeometryType = 4
	GeometryParticleSystem  GeometryType = 5
	GeometryTetrahedronMesh GeometryType = 6
	GeometryTriangleMesh    GeometryType = 7
	GeometryHeightField     GeometryType = 8
	GeometryHairSystem      GeometryType = 9
	GeometryCustom          GeometryType = 10
)

var geometryNames = [...]string{
	GeometrySphere:          "sphere",
	GeometryPlane:           "plane",
	GeometryCapsule:         "capsule",
	GeometryBox:             "box",
	GeometryConvexMesh:      "convex mesh",
	GeometryParticleSystem:  "particle system",
	GeometryTetrahedronMesh: "tetrahedron mesh",
	GeometryTriangleMesh:    "triangle mesh",
	GeometryHeightField:     "heightfield",
	GeometryHairSystem:      "hair system",
	GeometryCustom:          "custom",
}

func (t GeometryType) String() string {
	if t.Valid() {
		return geometryNames[t]
	}
	return fmt.Sprintf("geometry(%d)", int32(t))
}

// Valid reports whether t is a known tag.
func (t GeometryType) Valid() bool {
	return t >= GeometrySphere && t <= GeometryCustom
}

// ActorTypeFlags selects actor kinds in scene queries.
type ActorTypeFlags uint32

const (
	ActorRigidDynamic ActorTypeFlags = 1 << 0
	ActorRigidStatic  ActorTypeFlags = 1 << 1
	ActorAll                         = ActorRigidDynamic | ActorRigidStatic
)

// Valid reports whether f is a non-empty subset of the known bits.
func (f ActorTypeFlags) Valid() bool {
	return f != 0 && f&^ActorAll == 0
}

func (f ActorTypeFlags) String() string {
	switch f {
	case ActorRigidDynamic:
		return "rigid dynamic"
	case ActorRigidStatic:
		return "rigid static"
	case ActorAll:
		return "all"
	}
	return fmt.Sprintf("actor flags(%#x)", uint32(f))
}

// Geometry is a geometry value as the engine stores it. Only the fields
// belonging to Type are meaningful.
type Geometry struct {
	HalfExtents layout.Vec3f // box
	Type        GeometryType
	Radius      float32 // sphere, capsule
	HalfHeight  float32 // capsule
}

// SphereGeometry returns a sphere of radius r.
func SphereGeometry(r float32) Geometry {
	return Geometry{Type: GeometrySphere, Radius: r}
}

// PlaneGeometry returns the half-space x <= 0 in shape space.
func PlaneGeometry() Geometry {
	return Geometry{Type: GeometryPlane}
}

// CapsuleGeometry returns a capsule along the shape's x axis.
func CapsuleGeometry(radius, halfHeight float32) Geometry {
	return Geometry{Type: GeometryCapsule, Radius: radius, HalfHeight: halfHeight}
}

// BoxGeometry returns a box with the given half extents.
func BoxGeometry(halfExtents layout.Vec3f) Geometry {
	return Geometry{Type: GeometryBox, HalfExtents: halfExtents}
}

// TolerancesScale carries the engine's global length and speed scales.
type TolerancesScale struct {
	Length float32
	Speed  float32
}

// DefaultTolerancesScale returns the engine defaults (1 m, 10 m/s).
func DefaultTolerancesScale() TolerancesScale {
	return TolerancesScale{Length: 1, Speed: 10}
}

// SceneDesc describes a scene to create.
type SceneDesc struct {
	Gravity layout.Vec3f
	Scale   TolerancesScale
	Workers int
}

// DebugEndpoint is the address of a remote visual debugger.
type DebugEndpoint struct {
	Host    string
	Port    int
	Timeout time.Duration
}
