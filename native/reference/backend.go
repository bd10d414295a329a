package reference

import (
	"fmt"
	"net"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/wippyai/physx-binding/layout"
	"github.com/wippyai/physx-binding/native"
)

// Options tunes the reference engine.
type Options struct {
	// BounceThreshold is the normal speed below which contacts do not
	// bounce. Zero selects 0.2 times the engine speed scale.
	BounceThreshold float32
}

// Backend is the reference engine entry point.
type Backend struct {
	live *foundation
	opts Options
}

var _ native.Backend = (*Backend)(nil)

// New creates a reference backend.
func New(opts Options) *Backend {
	return &Backend{opts: opts}
}

// Name implements native.Backend.
func (b *Backend) Name() string { return "reference" }

// CreateFoundation implements native.Backend. Only one foundation may be
// live at a time.
func (b *Backend) CreateFoundation() (native.Foundation, error) {
	if b.live != nil {
		return nil, fmt.Errorf("a foundation already exists")
	}
	b.live = &foundation{backend: b}
	return b.live, nil
}

type foundation struct {
	backend  *Backend
	released bool
}

func (f *foundation) Release() {
	if f.released {
		return
	}
	f.released = true
	if f.backend.live == f {
		f.backend.live = nil
	}
}

func (f *foundation) CreateDebugConnector() (native.DebugConnector, error) {
	if f.released {
		return nil, fmt.Errorf("foundation released")
	}
	return &debugConnector{}, nil
}

func (f *foundation) CreatePhysics(scale native.TolerancesScale, dbg native.DebugConnector) (native.Physics, error) {
	if f.released {
		return nil, fmt.Errorf("foundation released")
	}
	if scale.Length <= 0 || scale.Speed <= 0 {
		return nil, fmt.Errorf("invalid tolerances scale %+v", scale)
	}
	threshold := f.backend.opts.BounceThreshold
	if threshold <= 0 {
		threshold = 0.2 * scale.Speed
	}
	return &physics{scale: scale, bounceThreshold: threshold}, nil
}

// debugConnector holds a plain TCP connection to a debugger endpoint.
type debugConnector struct {
	conn net.Conn
}

func (d *debugConnector) Connect(ep native.DebugEndpoint) bool {
	if d.conn != nil {
		return true
	}
	dialer := net.Dialer{Timeout: ep.Timeout}
	conn, err := dialer.Dial("tcp", net.JoinHostPort(ep.Host, strconv.Itoa(ep.Port)))
	if err != nil {
		Logger().Debug("debugger connect failed",
			zap.String("host", ep.Host),
			zap.Int("port", ep.Port),
			zap.Error(err))
		return false
	}
	d.conn = conn
	return true
}

func (d *debugConnector) IsConnected() bool { return d.conn != nil }

func (d *debugConnector) Disconnect() {
	if d.conn != nil {
		_ = d.conn.Close()
		d.conn = nil
	}
}

func (d *debugConnector) Release() { d.Disconnect() }

type physics struct {
	scale           native.TolerancesScale
	bounceThreshold float32
}

func (p *physics) Release() {}

func (p *physics) TolerancesScale() native.TolerancesScale { return p.scale }

func (p *physics) CreateScene(desc native.SceneDesc) (native.Scene, error) {
	if desc.Workers < 1 {
		return nil, fmt.Errorf("scene needs at least one worker, got %d", desc.Workers)
	}
	if !desc.Gravity.Finite() {
		return nil, fmt.Errorf("gravity is not finite")
	}
	s := &scene{
		gravity:         desc.Gravity.Mgl(),
		dispatcher:      newDispatcher(desc.Workers),
		bounceThreshold: p.bounceThreshold,
	}
	Logger().Debug("scene created",
		zap.Int("workers", desc.Workers),
		zap.Float32("gravity_y", desc.Gravity.Y))
	return s, nil
}

func (p *physics) CreateMaterial(staticFriction, dynamicFriction, restitution float32) (native.Material, error) {
	if staticFriction < 0 || dynamicFriction < 0 || restitution < 0 || restitution > 1 {
		return nil, fmt.Errorf("invalid material (%g, %g, %g)", staticFriction, dynamicFriction, restitution)
	}
	return &material{static: staticFriction, dynamic: dynamicFriction, restitution: restitution}, nil
}

func (p *physics) CreateRigidStatic(pose layout.Transformf) (native.RigidActor, error) {
	if !pose.Finite() || !pose.Q.ValidRotation() {
		return nil, fmt.Errorf("invalid pose")
	}
	return newActor(native.ActorRigidStatic, pose), nil
}

func (p *physics) CreateRigidDynamic(pose layout.Transformf) (native.RigidDynamic, error) {
	if !pose.Finite() || !pose.Q.ValidRotation() {
		return nil, fmt.Errorf("invalid pose")
	}
	return newActor(native.ActorRigidDynamic, pose), nil
}

// CreatePlane poses a plane shape so that its +X axis is the plane normal
// and its origin is the plane point closest to the world origin.
func (p *physics) CreatePlane(plane layout.Planef, m native.Material) (native.RigidActor, error) {
	mat, ok := m.(*material)
	if !ok || mat == nil {
		return nil, fmt.Errorf("material does not belong to this engine")
	}
	pose, err := planePose(plane)
	if err != nil {
		return nil, err
	}
	a := newActor(native.ActorRigidStatic, pose)
	s := &shape{geometry: native.PlaneGeometry(), material: mat, exclusive: true, local: layout.TransformIdentity()}
	a.AttachShape(s)
	return a, nil
}

func planePose(plane layout.Planef) (layout.Transformf, error) {
	if !plane.Finite() {
		return layout.Transformf{}, fmt.Errorf("plane is not finite")
	}
	n := plane.N.Mgl()
	l := n.Len()
	if l < 1e-6 {
		return layout.Transformf{}, fmt.Errorf("plane normal is zero")
	}
	n = n.Mul(1 / l)
	d := plane.D / l
	q := mgl32.QuatBetweenVectors(mgl32.Vec3{1, 0, 0}, n).Normalize()
	return layout.Transformf{
		Q: layout.QuatFromMgl(q),
		P: layout.Vec3FromMgl(n.Mul(-d)),
	}, nil
}

func (p *physics) CreateShape(g native.Geometry, m native.Material, exclusive bool) (native.Shape, error) {
	mat, ok := m.(*material)
	if !ok || mat == nil {
		return nil, fmt.Errorf("material does not belong to this engine")
	}
	if err := validateGeometry(g); err != nil {
		return nil, err
	}
	return &shape{geometry: g, material: mat, exclusive: exclusive, local: layout.TransformIdentity()}, nil
}

func validateGeometry(g native.Geometry) error {
	switch g.Type {
	case native.GeometrySphere:
		if !(g.Radius > 0) {
			return fmt.Errorf("sphere radius must be positive")
		}
	case native.GeometryCapsule:
		if !(g.Radius > 0) || g.HalfHeight < 0 {
			return fmt.Errorf("invalid capsule (%g, %g)", g.Radius, g.HalfHeight)
		}
	case native.GeometryBox:
		h := g.HalfExtents
		if !(h.X > 0 && h.Y > 0 && h.Z > 0) {
			return fmt.Errorf("box half extents must be positive")
		}
	case native.GeometryPlane:
	default:
		return fmt.Errorf("%s geometry is not supported", g.Type)
	}
	return nil
}

type material struct {
	static, dynamic, restitution float32
}

func (m *material) Release()                 {}
func (m *material) StaticFriction() float32  { return m.static }
func (m *material) DynamicFriction() float32 { return m.dynamic }
func (m *material) Restitution() float32     { return m.restitution }
