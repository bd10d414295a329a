package reference

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/wippyai/physx-binding/layout"
	"github.com/wippyai/physx-binding/native"
)

type scene struct {
	pending         *step
	dispatcher      *dispatcher
	actors          []*actor
	gravity         mgl32.Vec3
	bounceThreshold float32
	mu              sync.Mutex
	released        bool
}

// step is one scheduled tick. bodies are owned by the dispatcher until
// done is closed.
type step struct {
	done   chan struct{}
	bodies []body
}

var _ native.Scene = (*scene)(nil)

func (s *scene) Release() {
	if s.released {
		return
	}
	s.FetchResults(true)
	for _, a := range s.actors {
		a.scene = nil
	}
	s.actors = nil
	s.released = true
}

func (s *scene) AddActor(na native.RigidActor) bool {
	a, ok := na.(*actor)
	if !ok || a == nil || a.released || a.scene != nil || s.released {
		return false
	}
	a.scene = s
	s.actors = append(s.actors, a)
	return true
}

func (s *scene) RemoveActor(na native.RigidActor) bool {
	a, ok := na.(*actor)
	if !ok || a == nil || a.scene != s {
		return false
	}
	for i, own := range s.actors {
		if own == a {
			s.actors = append(s.actors[:i], s.actors[i+1:]...)
			break
		}
	}
	a.scene = nil
	return true
}

func (s *scene) Gravity() layout.Vec3f { return layout.Vec3FromMgl(s.gravity) }

func (s *scene) SetGravity(g layout.Vec3f) { s.gravity = g.Mgl() }

func (s *scene) Workers() int { return s.dispatcher.workers }

func (s *scene) NbActors(flags native.ActorTypeFlags) uint32 {
	var n uint32
	for _, a := range s.actors {
		if a.kind&flags != 0 {
			n++
		}
	}
	return n
}

func (s *scene) Actors(flags native.ActorTypeFlags, buf []native.RigidActor, start uint32) uint32 {
	var index, written uint32
	for _, a := range s.actors {
		if int(written) == len(buf) {
			break
		}
		if a.kind&flags == 0 {
			continue
		}
		if index >= start {
			buf[written] = a
			written++
		}
		index++
	}
	return written
}

// Simulate snapshots dynamic bodies and static planes, then integrates the
// snapshot on the dispatcher. It refuses while a step is pending.
func (s *scene) Simulate(dt float32) bool {
	if !(dt > 0) || s.released {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		return false
	}

	bodies, planes := s.snapshot()
	st := &step{done: make(chan struct{}), bodies: bodies}
	s.pending = st

	ctx := solverContext{
		dt:              dt,
		gravity:         s.gravity,
		planes:          planes,
		bounceThreshold: s.bounceThreshold,
	}
	go func() {
		s.dispatcher.run(len(st.bodies), func(lo, hi int) {
			for i := lo; i < hi; i++ {
				ctx.integrate(&st.bodies[i])
			}
		})
		close(st.done)
	}()
	return true
}

// FetchResults commits the pending step.
func (s *scene) FetchResults(block bool) bool {
	s.mu.Lock()
	st := s.pending
	s.mu.Unlock()
	if st == nil {
		return false
	}

	if block {
		<-st.done
	} else {
		select {
		case <-st.done:
		default:
			return false
		}
	}

	for i := range st.bodies {
		b := &st.bodies[i]
		b.actor.pose = layout.Transformf{Q: b.actor.pose.Q, P: layout.Vec3FromMgl(b.pos)}
		b.actor.velocity = layout.Vec3FromMgl(b.vel)
	}

	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()
	return true
}

func (s *scene) snapshot() ([]body, []plane) {
	var bodies []body
	var planes []plane
	for _, a := range s.actors {
		switch a.kind {
		case native.ActorRigidDynamic:
			b := body{
				actor: a,
				pos:   a.pose.P.Mgl(),
				rot:   a.pose.Q.Mgl(),
				vel:   a.velocity.Mgl(),
			}
			for _, sh := range a.shapes {
				b.colliders = append(b.colliders, collider{
					geometry: sh.geometry,
					local:    sh.local,
					material: *sh.material,
				})
			}
			bodies = append(bodies, b)
		case native.ActorRigidStatic:
			for _, sh := range a.shapes {
				if sh.geometry.Type != native.GeometryPlane {
					continue
				}
				pose := compose(a.pose, sh.local)
				n := pose.Q.Mgl().Rotate(axisX)
				planes = append(planes, plane{
					normal:   n,
					d:        -n.Dot(pose.P.Mgl()),
					material: *sh.material,
				})
			}
		}
	}
	return bodies, planes
}
