package reference

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/wippyai/physx-binding/layout"
	"github.com/wippyai/physx-binding/native"
)

type body struct {
	actor     *actor
	colliders []collider
	pos       mgl32.Vec3
	vel       mgl32.Vec3
	rot       mgl32.Quat
}

type collider struct {
	material material
	local    layout.Transformf
	geometry native.Geometry
}

// plane is the half-space normal.x + d <= 0.
type plane struct {
	material material
	normal   mgl32.Vec3
	d        float32
}

type solverContext struct {
	planes          []plane
	gravity         mgl32.Vec3
	dt              float32
	bounceThreshold float32
}

// integrate advances b by one step and resolves plane contacts.
func (c *solverContext) integrate(b *body) {
	b.vel = b.vel.Add(c.gravity.Mul(c.dt))
	b.pos = b.pos.Add(b.vel.Mul(c.dt))

	for _, pl := range c.planes {
		for _, col := range b.colliders {
			sep, ok := separation(col, b.pos, b.rot, pl)
			if !ok || sep >= 0 {
				continue
			}
			b.pos = b.pos.Add(pl.normal.Mul(-sep))
			c.resolve(b, col.material, pl)
		}
	}
}

// resolve applies a restitution impulse and kinetic friction along the
// contact normal. Material values are combined by averaging.
func (c *solverContext) resolve(b *body, m material, pl plane) {
	n := pl.normal
	vn := b.vel.Dot(n)
	if vn >= 0 {
		return
	}

	e := (m.restitution + pl.material.restitution) / 2
	if -vn < c.bounceThreshold {
		e = 0
	}
	mu := (m.dynamic + pl.material.dynamic) / 2

	vt := b.vel.Sub(n.Mul(vn))
	impulse := -(1 + e) * vn
	if l := vt.Len(); l > 0 {
		drop := mu * impulse
		if drop >= l {
			vt = mgl32.Vec3{}
		} else {
			vt = vt.Mul((l - drop) / l)
		}
	}
	b.vel = vt.Add(n.Mul(-e * vn))
}

// separation returns the signed distance between a collider and a plane.
// Negative values are penetration depth. ok is false for geometry that
// does not collide with planes.
func separation(col collider, pos mgl32.Vec3, rot mgl32.Quat, pl plane) (float32, bool) {
	center := pos.Add(rot.Rotate(col.local.P.Mgl()))
	q := rot.Mul(col.local.Q.Mgl())
	n := pl.normal
	base := n.Dot(center) + pl.d

	g := col.geometry
	switch g.Type {
	case native.GeometrySphere:
		return base - g.Radius, true
	case native.GeometryCapsule:
		axis := q.Rotate(axisX)
		return base - mgl32.Abs(n.Dot(axis))*g.HalfHeight - g.Radius, true
	case native.GeometryBox:
		h := g.HalfExtents
		ext := mgl32.Abs(n.Dot(q.Rotate(axisX)))*h.X +
			mgl32.Abs(n.Dot(q.Rotate(axisY)))*h.Y +
			mgl32.Abs(n.Dot(q.Rotate(axisZ)))*h.Z
		return base - ext, true
	}
	return 0, false
}
