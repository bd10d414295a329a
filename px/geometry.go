package px

import (
	"fmt"

	"github.com/wippyai/physx-binding/errors"
	"github.com/wippyai/physx-binding/handle"
	"github.com/wippyai/physx-binding/layout"
	"github.com/wippyai/physx-binding/native"
)

// Geometry is the closed set of geometry variants. Use a type switch on
// the result of Classify to reach per-kind fields.
type Geometry interface {
	Type() native.GeometryType
	toNative() native.Geometry
}

// SphereGeometry is a sphere centred on the shape origin.
type SphereGeometry struct {
	Radius float32
}

// PlaneGeometry is the half-space x <= 0 in shape space.
type PlaneGeometry struct{}

// CapsuleGeometry is a capsule along the shape's x axis.
type CapsuleGeometry struct {
	Radius     float32
	HalfHeight float32
}

// BoxGeometry is a box centred on the shape origin.
type BoxGeometry struct {
	HalfExtents layout.Vec3f
}

// OtherGeometry carries a tag the binding has no accessors for.
type OtherGeometry struct {
	Tag native.GeometryType
}

func (SphereGeometry) Type() native.GeometryType  { return native.GeometrySphere }
func (PlaneGeometry) Type() native.GeometryType   { return native.GeometryPlane }
func (CapsuleGeometry) Type() native.GeometryType { return native.GeometryCapsule }
func (BoxGeometry) Type() native.GeometryType     { return native.GeometryBox }
func (g OtherGeometry) Type() native.GeometryType { return g.Tag }

func (g SphereGeometry) toNative() native.Geometry  { return native.SphereGeometry(g.Radius) }
func (PlaneGeometry) toNative() native.Geometry     { return native.PlaneGeometry() }
func (g CapsuleGeometry) toNative() native.Geometry { return native.CapsuleGeometry(g.Radius, g.HalfHeight) }
func (g BoxGeometry) toNative() native.Geometry     { return native.BoxGeometry(g.HalfExtents) }
func (g OtherGeometry) toNative() native.Geometry   { return native.Geometry{Type: g.Tag} }

func geometryFromNative(g native.Geometry) Geometry {
	switch g.Type {
	case native.GeometrySphere:
		return SphereGeometry{Radius: g.Radius}
	case native.GeometryPlane:
		return PlaneGeometry{}
	case native.GeometryCapsule:
		return CapsuleGeometry{Radius: g.Radius, HalfHeight: g.HalfHeight}
	case native.GeometryBox:
		return BoxGeometry{HalfExtents: g.HalfExtents}
	}
	return OtherGeometry{Tag: g.Type}
}

func validateGeometry(g Geometry) error {
	positive := func(name string, v float32) error {
		if !(v > 0) || v > maxExtent {
			return fmt.Errorf("%s must be positive and finite, got %g", name, v)
		}
		return nil
	}
	switch g := g.(type) {
	case SphereGeometry:
		return positive("radius", g.Radius)
	case PlaneGeometry:
		return nil
	case CapsuleGeometry:
		if err := positive("radius", g.Radius); err != nil {
			return err
		}
		if !(g.HalfHeight >= 0) || g.HalfHeight > maxExtent {
			return fmt.Errorf("half height must be non-negative and finite, got %g", g.HalfHeight)
		}
		return nil
	case BoxGeometry:
		for _, v := range [...]float32{g.HalfExtents.X, g.HalfExtents.Y, g.HalfExtents.Z} {
			if err := positive("half extent", v); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("%s geometry cannot be constructed", g.Type())
}

const maxExtent = 3.4e38

func (b *Binding) createGeometry(op string, g Geometry) (GeometryHandle, error) {
	if err := validateGeometry(g); err != nil {
		return 0, errors.New(errors.PhaseGeometry, errors.KindInvalidInput).Op(op).Cause(err).Build()
	}
	h, err := b.insert(errors.PhaseGeometry, op, handle.KindGeometry, &geometryEntry{geometry: g})
	if err != nil {
		return 0, err
	}
	return GeometryHandle(h), nil
}

// CreateSphereGeometry creates a sphere geometry.
func (b *Binding) CreateSphereGeometry(radius float32) (GeometryHandle, error) {
	return b.createGeometry("CreateSphereGeometry", SphereGeometry{Radius: radius})
}

// CreatePlaneGeometry creates a plane geometry.
func (b *Binding) CreatePlaneGeometry() (GeometryHandle, error) {
	return b.createGeometry("CreatePlaneGeometry", PlaneGeometry{})
}

// CreateCapsuleGeometry creates a capsule geometry.
func (b *Binding) CreateCapsuleGeometry(radius, halfHeight float32) (GeometryHandle, error) {
	return b.createGeometry("CreateCapsuleGeometry", CapsuleGeometry{Radius: radius, HalfHeight: halfHeight})
}

// CreateBoxGeometry creates a box geometry.
func (b *Binding) CreateBoxGeometry(halfExtents layout.Vec3f) (GeometryHandle, error) {
	return b.createGeometry("CreateBoxGeometry", BoxGeometry{HalfExtents: halfExtents})
}

// GeometryType returns the tag of g.
func (b *Binding) GeometryType(g GeometryHandle) (native.GeometryType, error) {
	ge, err := lookup[*geometryEntry](b, errors.PhaseGeometry, "GeometryType", g)
	if err != nil {
		return 0, err
	}
	return ge.geometry.Type(), nil
}

// Classify returns the geometry variant behind g.
func (b *Binding) Classify(g GeometryHandle) (Geometry, error) {
	ge, err := lookup[*geometryEntry](b, errors.PhaseGeometry, "Classify", g)
	if err != nil {
		return nil, err
	}
	return ge.geometry, nil
}

func classifyAs[T Geometry](b *Binding, op string, g GeometryHandle) (T, error) {
	var zero T
	ge, err := lookup[*geometryEntry](b, errors.PhaseGeometry, op, g)
	if err != nil {
		return zero, err
	}
	v, ok := ge.geometry.(T)
	if !ok {
		return zero, errors.GeometryMismatch(op, g.Raw(), zero.Type().String(), ge.geometry.Type().String())
	}
	return v, nil
}

// SphereRadius returns the radius of a sphere geometry.
func (b *Binding) SphereRadius(g GeometryHandle) (float32, error) {
	s, err := classifyAs[SphereGeometry](b, "SphereRadius", g)
	return s.Radius, err
}

// BoxHalfExtents returns the half extents of a box geometry.
func (b *Binding) BoxHalfExtents(g GeometryHandle) (layout.Vec3f, error) {
	box, err := classifyAs[BoxGeometry](b, "BoxHalfExtents", g)
	return box.HalfExtents, err
}

// CapsuleParams returns the radius and half height of a capsule geometry.
func (b *Binding) CapsuleParams(g GeometryHandle) (radius, halfHeight float32, err error) {
	c, err := classifyAs[CapsuleGeometry](b, "CapsuleParams", g)
	return c.Radius, c.HalfHeight, err
}

// ShapeGeometry returns the geometry the engine holds for s.
func (b *Binding) ShapeGeometry(s ShapeHandle) (Geometry, error) {
	se, err := lookup[*shapeEntry](b, errors.PhaseGeometry, "ShapeGeometry", s)
	if err != nil {
		return nil, err
	}
	return geometryFromNative(se.native.Geometry()), nil
}

// ShapeGeometryHandle returns a new geometry handle holding the geometry
// the engine holds for s. The handle is independent of s and is released
// by the caller.
func (b *Binding) ShapeGeometryHandle(s ShapeHandle) (GeometryHandle, error) {
	const op = "ShapeGeometryHandle"
	se, err := lookup[*shapeEntry](b, errors.PhaseGeometry, op, s)
	if err != nil {
		return 0, err
	}
	g := geometryFromNative(se.native.Geometry())
	h, err := b.insert(errors.PhaseGeometry, op, handle.KindGeometry, &geometryEntry{geometry: g})
	if err != nil {
		return 0, err
	}
	return GeometryHandle(h), nil
}
