//go:build physx

// Package physx binds the native collaborator interfaces to the PhysX SDK
// through the C wrapper in cphysx.cpp, which cgo compiles with the package.
//
// The PhysX SDK headers and static libraries are located through
// CGO_CXXFLAGS and CGO_LDFLAGS, for example:
//
//	CGO_CXXFLAGS="-I$PHYSX/include" CGO_LDFLAGS="-L$PHYSX/bin/linux.clang/release" \
//	    go build -tags=physx
package physx

/*
#cgo CXXFLAGS: -std=c++14 -DNDEBUG
#cgo LDFLAGS: -lPhysXExtensions_static_64 -lPhysXPvdSDK_static_64 -lPhysX_static_64 -lPhysXCommon_static_64 -lPhysXFoundation_static_64
#cgo linux LDFLAGS: -lstdc++ -lm -lpthread -ldl

#include <stdlib.h>
#include "cphysx.h"
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/wippyai/physx-binding/layout"
	"github.com/wippyai/physx-binding/native"
)

// The C records must match the Go records byte for byte.
var (
	_ [layout.Vec3Size]byte      = [unsafe.Sizeof(C.PxVec3f{})]byte{}
	_ [layout.QuatSize]byte      = [unsafe.Sizeof(C.PxQuatf{})]byte{}
	_ [layout.TransformSize]byte = [unsafe.Sizeof(C.PxTransformf{})]byte{}
	_ [layout.Mat44Size]byte     = [unsafe.Sizeof(C.PxMat44f{})]byte{}
	_ [layout.PlaneSize]byte     = [unsafe.Sizeof(C.PxPlanef{})]byte{}
	_ [16]byte                   = [unsafe.Offsetof(C.PxTransformf{}.p)]byte{}
	_ [12]byte                   = [unsafe.Offsetof(C.PxPlanef{}.distance)]byte{}
)

var (
	_ native.Backend      = (*Backend)(nil)
	_ native.RigidDynamic = (*rigidActor)(nil)
	_ native.Shape        = (*shape)(nil)
)

// Backend creates PhysX foundations.
type Backend struct {
	registry *registry
}

// New returns the PhysX backend.
func New() (native.Backend, error) {
	return &Backend{registry: newRegistry()}, nil
}

// Name implements native.Backend.
func (b *Backend) Name() string { return "physx" }

// CreateFoundation implements native.Backend.
func (b *Backend) CreateFoundation() (native.Foundation, error) {
	ref := C.pxCreateFoundation()
	if ref == nil {
		return nil, fmt.Errorf("PxCreateFoundation returned null")
	}
	return &foundation{ref: ref, reg: b.registry}, nil
}

// registry maps native pointers back to their Go wrappers so enumeration
// returns the same objects the factories did.
type registry struct {
	actors    map[unsafe.Pointer]*rigidActor
	shapes    map[unsafe.Pointer]*shape
	materials map[unsafe.Pointer]*material
}

func newRegistry() *registry {
	return &registry{
		actors:    make(map[unsafe.Pointer]*rigidActor),
		shapes:    make(map[unsafe.Pointer]*shape),
		materials: make(map[unsafe.Pointer]*material),
	}
}

func (r *registry) actor(ref C.PxRigidActorRef) *rigidActor {
	return r.actors[unsafe.Pointer(ref)]
}

func (r *registry) shape(ref C.PxShapeRef) *shape {
	return r.shapes[unsafe.Pointer(ref)]
}

type foundation struct {
	ref C.PxFoundationRef
	reg *registry
}

func (f *foundation) Release() {
	if f.ref != nil {
		C.pxFoundationRelease(f.ref)
		f.ref = nil
	}
}

func (f *foundation) CreateDebugConnector() (native.DebugConnector, error) {
	ref := C.pxCreatePvd(f.ref)
	if ref == nil {
		return nil, fmt.Errorf("PxCreatePvd returned null")
	}
	return &debugConnector{ref: ref}, nil
}

func (f *foundation) CreatePhysics(scale native.TolerancesScale, dbg native.DebugConnector) (native.Physics, error) {
	var pvd C.PxPvdRef
	if d, ok := dbg.(*debugConnector); ok && d != nil {
		pvd = d.ref
	}
	cs := C.C_PxTolerancesScale{length: C.float(scale.Length), speed: C.float(scale.Speed)}
	ref := C.pxCreatePhysicsEx(f.ref, pvd, cs)
	if ref == nil {
		return nil, fmt.Errorf("PxCreatePhysics returned null")
	}
	return &physics{ref: ref, reg: f.reg}, nil
}

type debugConnector struct {
	ref C.PxPvdRef
}

func (d *debugConnector) Connect(ep native.DebugEndpoint) bool {
	host := C.CString(ep.Host)
	defer C.free(unsafe.Pointer(host))
	return bool(C.pxPvdConnect(d.ref, host, C.int(ep.Port), C.C_PxU32(ep.Timeout.Milliseconds())))
}

func (d *debugConnector) IsConnected() bool { return bool(C.pxPvdIsConnected(d.ref)) }

func (d *debugConnector) Disconnect() { C.pxPvdDisconnect(d.ref) }

func (d *debugConnector) Release() {
	if d.ref != nil {
		C.pxPvdRelease(d.ref)
		d.ref = nil
	}
}

type physics struct {
	ref C.PxPhysicsRef
	reg *registry
}

func (p *physics) Release() {
	if p.ref != nil {
		C.pxPhysicsRelease(p.ref)
		p.ref = nil
	}
}

func (p *physics) TolerancesScale() native.TolerancesScale {
	s := C.pxPhysicsGetTolerancesScale(p.ref)
	return native.TolerancesScale{Length: float32(s.length), Speed: float32(s.speed)}
}

func (p *physics) CreateScene(desc native.SceneDesc) (native.Scene, error) {
	if desc.Workers < 1 {
		return nil, fmt.Errorf("scene needs at least one worker, got %d", desc.Workers)
	}
	ref := C.pxPhysicsCreateSceneEx(p.ref, vec3ToC(desc.Gravity), C.C_PxU32(desc.Workers))
	if ref == nil {
		return nil, fmt.Errorf("PxPhysics::createScene returned null")
	}
	return &scene{ref: ref, reg: p.reg, workers: desc.Workers}, nil
}

func (p *physics) CreateMaterial(staticFriction, dynamicFriction, restitution float32) (native.Material, error) {
	ref := C.pxPhysicsCreateMaterial(p.ref, C.float(staticFriction), C.float(dynamicFriction), C.float(restitution))
	if ref == nil {
		return nil, fmt.Errorf("PxPhysics::createMaterial returned null")
	}
	m := &material{ref: ref, reg: p.reg}
	p.reg.materials[unsafe.Pointer(ref)] = m
	return m, nil
}

func (p *physics) CreateRigidStatic(pose layout.Transformf) (native.RigidActor, error) {
	ref := C.pxCreateRigidStatic(p.ref, transformToC(pose))
	if ref == nil {
		return nil, fmt.Errorf("PxPhysics::createRigidStatic returned null")
	}
	return p.track(ref, native.ActorRigidStatic), nil
}

func (p *physics) CreateRigidDynamic(pose layout.Transformf) (native.RigidDynamic, error) {
	ref := C.pxCreateRigidDynamic(p.ref, transformToC(pose))
	if ref == nil {
		return nil, fmt.Errorf("PxPhysics::createRigidDynamic returned null")
	}
	return p.track(C.PxRigidActorRef(unsafe.Pointer(ref)), native.ActorRigidDynamic), nil
}

func (p *physics) CreatePlane(plane layout.Planef, m native.Material) (native.RigidActor, error) {
	mat, ok := m.(*material)
	if !ok {
		return nil, fmt.Errorf("material does not belong to this engine")
	}
	ref := C.pxCreatePlane(p.ref, planeToC(plane), mat.ref)
	if ref == nil {
		return nil, fmt.Errorf("PxCreatePlane returned null")
	}
	a := p.track(ref, native.ActorRigidStatic)

	var sref C.PxShapeRef
	if C.pxRigidActorGetShapes(ref, &sref, 1, 0) == 1 {
		s := &shape{ref: sref, reg: p.reg, owners: 1, implicit: true}
		p.reg.shapes[unsafe.Pointer(sref)] = s
	}
	return a, nil
}

func (p *physics) track(ref C.PxRigidActorRef, kind native.ActorTypeFlags) *rigidActor {
	a := &rigidActor{ref: ref, reg: p.reg, kind: kind}
	p.reg.actors[unsafe.Pointer(ref)] = a
	return a
}

func (p *physics) CreateShape(g native.Geometry, m native.Material, exclusive bool) (native.Shape, error) {
	mat, ok := m.(*material)
	if !ok {
		return nil, fmt.Errorf("material does not belong to this engine")
	}
	gref := geometryToC(g)
	if gref == nil {
		return nil, fmt.Errorf("%s geometry is not supported", g.Type)
	}
	defer releaseGeometry(gref)

	ref := C.pxCreateShape(p.ref, gref, mat.ref, C.bool(exclusive))
	if ref == nil {
		return nil, fmt.Errorf("PxPhysics::createShape returned null")
	}
	s := &shape{ref: ref, reg: p.reg}
	p.reg.shapes[unsafe.Pointer(ref)] = s
	return s, nil
}

type scene struct {
	ref     C.PxSceneRef
	reg     *registry
	workers int
}

func (s *scene) Release() {
	if s.ref != nil {
		C.pxSceneRelease(s.ref)
		s.ref = nil
	}
}

func (s *scene) AddActor(na native.RigidActor) bool {
	a, ok := na.(*rigidActor)
	if !ok || a.inScene {
		return false
	}
	C.pxSceneAddActor(s.ref, C.PxActorRef(unsafe.Pointer(a.ref)))
	a.inScene = true
	return true
}

func (s *scene) RemoveActor(na native.RigidActor) bool {
	a, ok := na.(*rigidActor)
	if !ok || !a.inScene {
		return false
	}
	C.pxSceneRemoveActor(s.ref, C.PxActorRef(unsafe.Pointer(a.ref)))
	a.inScene = false
	return true
}

func (s *scene) Gravity() layout.Vec3f { return vec3FromC(C.pxSceneGetGravity(s.ref)) }

func (s *scene) SetGravity(g layout.Vec3f) { C.pxSceneSetGravity(s.ref, vec3ToC(g)) }

func (s *scene) Workers() int { return s.workers }

func (s *scene) Simulate(dt float32) bool { return bool(C.pxSceneSimulate(s.ref, C.float(dt))) }

func (s *scene) FetchResults(block bool) bool {
	return bool(C.pxSceneFetchResults(s.ref, C.bool(block)))
}

func (s *scene) NbActors(flags native.ActorTypeFlags) uint32 {
	return uint32(C.pxSceneGetNbActors(s.ref, C.C_PxActorTypeFlag(flags)))
}

func (s *scene) Actors(flags native.ActorTypeFlags, buf []native.RigidActor, start uint32) uint32 {
	if len(buf) == 0 {
		return 0
	}
	refs := make([]C.PxActorRef, len(buf))
	n := uint32(C.pxSceneGetActors(s.ref, C.C_PxActorTypeFlag(flags), &refs[0], C.C_PxU32(len(refs)), C.C_PxU32(start)))
	for i := uint32(0); i < n; i++ {
		buf[i] = s.reg.actor(C.PxRigidActorRef(unsafe.Pointer(refs[i])))
	}
	return n
}

type material struct {
	ref C.PxMaterialRef
	reg *registry
}

func (m *material) Release() {
	if m.ref != nil {
		delete(m.reg.materials, unsafe.Pointer(m.ref))
		C.pxMaterialRelease(m.ref)
		m.ref = nil
	}
}

func (m *material) StaticFriction() float32 { return float32(C.pxMaterialGetStaticFriction(m.ref)) }

func (m *material) DynamicFriction() float32 { return float32(C.pxMaterialGetDynamicFriction(m.ref)) }

func (m *material) Restitution() float32 { return float32(C.pxMaterialGetRestitution(m.ref)) }

type rigidActor struct {
	ref     C.PxRigidActorRef
	reg     *registry
	kind    native.ActorTypeFlags
	inScene bool
}

func (a *rigidActor) Release() {
	if a.ref != nil {
		delete(a.reg.actors, unsafe.Pointer(a.ref))
		// An implicit shape still attached dies with its actor.
		var sref C.PxShapeRef
		for i := C.C_PxU32(0); C.pxRigidActorGetShapes(a.ref, &sref, 1, i) == 1; i++ {
			if s := a.reg.shape(sref); s != nil && s.implicit {
				delete(a.reg.shapes, unsafe.Pointer(sref))
				s.ref = nil
			}
		}
		C.pxActorRelease(C.PxActorRef(unsafe.Pointer(a.ref)))
		a.ref = nil
	}
}

func (a *rigidActor) Type() native.ActorTypeFlags {
	if C.pxActorIsRigidStatic(C.PxActorRef(unsafe.Pointer(a.ref))) {
		return native.ActorRigidStatic
	}
	return native.ActorRigidDynamic
}

func (a *rigidActor) GlobalPose() layout.Transformf {
	return transformFromC(C.pxRigidActorGetGlobalPose(a.ref))
}

func (a *rigidActor) SetGlobalPose(pose layout.Transformf) {
	C.pxRigidActorSetGlobalPose(a.ref, transformToC(pose))
}

func (a *rigidActor) LinearVelocity() layout.Vec3f {
	if a.kind != native.ActorRigidDynamic {
		return layout.Vec3f{}
	}
	return vec3FromC(C.pxRigidDynamicGetLinearVelocity(C.PxRigidDynamicRef(unsafe.Pointer(a.ref))))
}

func (a *rigidActor) SetLinearVelocity(v layout.Vec3f) {
	if a.kind == native.ActorRigidDynamic {
		C.pxRigidDynamicSetLinearVelocity(C.PxRigidDynamicRef(unsafe.Pointer(a.ref)), vec3ToC(v))
	}
}

func (a *rigidActor) AttachShape(ns native.Shape) bool {
	s, ok := ns.(*shape)
	if !ok {
		return false
	}
	if !C.pxRigidActorAttachShape(a.ref, s.ref) {
		return false
	}
	s.owners++
	return true
}

func (a *rigidActor) DetachShape(ns native.Shape) bool {
	s, ok := ns.(*shape)
	if !ok || s.owners == 0 {
		return false
	}
	if s.implicit {
		// Detaching drops the actor's reference, which is the only one.
		C.pxShapeAcquireReference(s.ref)
		s.implicit = false
	}
	C.pxRigidActorDetachShape(a.ref, s.ref)
	s.owners--
	return true
}

func (a *rigidActor) NbShapes() uint32 { return uint32(C.pxRigidActorGetNbShapes(a.ref)) }

func (a *rigidActor) Shapes(buf []native.Shape, start uint32) uint32 {
	if len(buf) == 0 {
		return 0
	}
	refs := make([]C.PxShapeRef, len(buf))
	n := uint32(C.pxRigidActorGetShapes(a.ref, &refs[0], C.C_PxU32(len(refs)), C.C_PxU32(start)))
	for i := uint32(0); i < n; i++ {
		buf[i] = a.reg.shape(refs[i])
	}
	return n
}

type shape struct {
	ref    C.PxShapeRef
	reg    *registry
	owners uint32
	// implicit marks a shape created inside PxCreatePlane; the caller holds
	// no reference to it until it is detached.
	implicit bool
}

func (s *shape) Release() {
	if s.ref != nil {
		delete(s.reg.shapes, unsafe.Pointer(s.ref))
		C.pxShapeRelease(s.ref)
		s.ref = nil
	}
}

func (s *shape) Geometry() native.Geometry {
	return geometryFromC(C.pxShapeGetGeometry(s.ref))
}

func (s *shape) Material() native.Material {
	return s.reg.materials[unsafe.Pointer(C.pxShapeGetMaterial(s.ref))]
}

func (s *shape) IsExclusive() bool { return bool(C.pxShapeIsExclusive(s.ref)) }

func (s *shape) AttachCount() uint32 { return s.owners }

func (s *shape) LocalPose() layout.Transformf { return transformFromC(C.pxShapeGetLocalPose(s.ref)) }

func (s *shape) SetLocalPose(pose layout.Transformf) {
	C.pxShapeSetLocalPose(s.ref, transformToC(pose))
}

func (s *shape) GlobalPose(na native.RigidActor) layout.Transformf {
	a, ok := na.(*rigidActor)
	if !ok {
		return layout.Transformf{}
	}
	return transformFromC(C.pxShapeGetGlobalPose(s.ref, a.ref))
}

func (s *shape) GlobalPoseMatrix(na native.RigidActor) layout.Mat44f {
	a, ok := na.(*rigidActor)
	if !ok {
		return layout.Mat44f{}
	}
	return mat44FromC(C.pxShapeGetGlobalPoseMatrix(s.ref, a.ref))
}

func vec3ToC(v layout.Vec3f) C.PxVec3f {
	return C.PxVec3f{x: C.float(v.X), y: C.float(v.Y), z: C.float(v.Z)}
}

func vec3FromC(v C.PxVec3f) layout.Vec3f {
	return layout.Vec3f{X: float32(v.x), Y: float32(v.y), Z: float32(v.z)}
}

func vec4FromC(v C.PxVec4f) layout.Vec4f {
	return layout.Vec4f{X: float32(v.x), Y: float32(v.y), Z: float32(v.z), W: float32(v.w)}
}

func transformToC(t layout.Transformf) C.PxTransformf {
	return C.PxTransformf{
		q: C.PxQuatf{x: C.float(t.Q.X), y: C.float(t.Q.Y), z: C.float(t.Q.Z), w: C.float(t.Q.W)},
		p: vec3ToC(t.P),
	}
}

func transformFromC(t C.PxTransformf) layout.Transformf {
	return layout.Transformf{
		Q: layout.Quatf{X: float32(t.q.x), Y: float32(t.q.y), Z: float32(t.q.z), W: float32(t.q.w)},
		P: vec3FromC(t.p),
	}
}

func mat44FromC(m C.PxMat44f) layout.Mat44f {
	return layout.Mat44f{
		Col0: vec4FromC(m.column0),
		Col1: vec4FromC(m.column1),
		Col2: vec4FromC(m.column2),
		Col3: vec4FromC(m.column3),
	}
}

func planeToC(p layout.Planef) C.PxPlanef {
	return C.PxPlanef{normal: vec3ToC(p.N), distance: C.float(p.D)}
}

func geometryToC(g native.Geometry) C.PxGeometryRef {
	switch g.Type {
	case native.GeometrySphere:
		return C.pxCreateSphereGeometry(C.C_PxReal(g.Radius))
	case native.GeometryPlane:
		return C.pxCreatePlaneGeometry()
	case native.GeometryCapsule:
		return C.pxCreateCapsuleGeometry(C.C_PxReal(g.Radius), C.C_PxReal(g.HalfHeight))
	case native.GeometryBox:
		return C.pxCreateBoxGeometry(vec3ToC(g.HalfExtents))
	}
	return nil
}

func geometryFromC(ref C.PxGeometryRef) native.Geometry {
	g := native.Geometry{Type: native.GeometryType(C.pxGeometryGetType(ref))}
	switch g.Type {
	case native.GeometrySphere:
		g.Radius = float32(C.pxGeometryGetSphere(ref).radius)
	case native.GeometryCapsule:
		c := C.pxGeometryGetCapsule(ref)
		g.Radius, g.HalfHeight = float32(c.radius), float32(c.halfHeight)
	case native.GeometryBox:
		g.HalfExtents = vec3FromC(C.pxGeometryGetBox(ref).halfExtents)
	}
	return g
}

func releaseGeometry(ref C.PxGeometryRef) {
	C.pxGeometryRelease(ref)
}
