package reference

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/wippyai/physx-binding/layout"
	"github.com/wippyai/physx-binding/native"
)

type actor struct {
	scene    *scene
	shapes   []*shape
	pose     layout.Transformf
	velocity layout.Vec3f
	kind     native.ActorTypeFlags
	released bool
}

var (
	_ native.RigidDynamic = (*actor)(nil)
	_ native.Shape        = (*shape)(nil)
)

func newActor(kind native.ActorTypeFlags, pose layout.Transformf) *actor {
	return &actor{kind: kind, pose: pose}
}

func (a *actor) Release() {
	if a.released {
		return
	}
	if a.scene != nil {
		a.scene.RemoveActor(a)
	}
	for _, s := range a.shapes {
		s.removeOwner(a)
	}
	a.shapes = nil
	a.released = true
}

func (a *actor) Type() native.ActorTypeFlags { return a.kind }

func (a *actor) GlobalPose() layout.Transformf { return a.pose }

func (a *actor) SetGlobalPose(pose layout.Transformf) { a.pose = pose }

func (a *actor) LinearVelocity() layout.Vec3f { return a.velocity }

func (a *actor) SetLinearVelocity(v layout.Vec3f) {
	if a.kind == native.ActorRigidDynamic {
		a.velocity = v
	}
}

func (a *actor) AttachShape(ns native.Shape) bool {
	s, ok := ns.(*shape)
	if !ok || s == nil || a.released || s.released {
		return false
	}
	for _, owner := range s.owners {
		if owner == a {
			return false
		}
	}
	if s.exclusive && len(s.owners) > 0 {
		return false
	}
	s.owners = append(s.owners, a)
	a.shapes = append(a.shapes, s)
	return true
}

func (a *actor) DetachShape(ns native.Shape) bool {
	s, ok := ns.(*shape)
	if !ok || s == nil {
		return false
	}
	for i, own := range a.shapes {
		if own == s {
			a.shapes = append(a.shapes[:i], a.shapes[i+1:]...)
			s.removeOwner(a)
			return true
		}
	}
	return false
}

func (a *actor) NbShapes() uint32 { return uint32(len(a.shapes)) }

func (a *actor) Shapes(buf []native.Shape, start uint32) uint32 {
	if int(start) >= len(a.shapes) {
		return 0
	}
	n := copyShapes(buf, a.shapes[start:])
	return uint32(n)
}

func copyShapes(dst []native.Shape, src []*shape) int {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i] = src[i]
	}
	return n
}

type shape struct {
	material  *material
	owners    []*actor
	local     layout.Transformf
	geometry  native.Geometry
	exclusive bool
	released  bool
}

func (s *shape) Release() { s.released = true }

func (s *shape) removeOwner(a *actor) {
	for i, o := range s.owners {
		if o == a {
			s.owners = append(s.owners[:i], s.owners[i+1:]...)
			return
		}
	}
}

func (s *shape) Geometry() native.Geometry    { return s.geometry }
func (s *shape) Material() native.Material    { return s.material }
func (s *shape) IsExclusive() bool            { return s.exclusive }
func (s *shape) AttachCount() uint32          { return uint32(len(s.owners)) }
func (s *shape) LocalPose() layout.Transformf { return s.local }

func (s *shape) SetLocalPose(pose layout.Transformf) { s.local = pose }

func (s *shape) GlobalPose(na native.RigidActor) layout.Transformf {
	return compose(na.GlobalPose(), s.local)
}

func (s *shape) GlobalPoseMatrix(na native.RigidActor) layout.Mat44f {
	return s.GlobalPose(na).Mat44()
}

// compose returns parent * child.
func compose(parent, child layout.Transformf) layout.Transformf {
	pq := parent.Q.Mgl()
	p := parent.P.Mgl().Add(pq.Rotate(child.P.Mgl()))
	q := pq.Mul(child.Q.Mgl())
	return layout.Transformf{Q: layout.QuatFromMgl(q), P: layout.Vec3FromMgl(p)}
}

var (
	axisX = mgl32.Vec3{1, 0, 0}
	axisY = mgl32.Vec3{0, 1, 0}
	axisZ = mgl32.Vec3{0, 0, 1}
)
