package native

import "github.com/wippyai/physx-binding/layout"

// Releaser is implemented by every engine object.
type Releaser interface {
	Release()
}

// Backend creates the root engine object.
type Backend interface {
	Name() string
	CreateFoundation() (Foundation, error)
}

// Foundation is the process-scoped root object.
type Foundation interface {
	Releaser
	CreateDebugConnector() (DebugConnector, error)
	// CreatePhysics creates an engine instance. dbg may be nil.
	CreatePhysics(scale TolerancesScale, dbg DebugConnector) (Physics, error)
}

// DebugConnector is an optional telemetry link to a visual debugger.
type DebugConnector interface {
	Releaser
	Connect(ep DebugEndpoint) bool
	IsConnected() bool
	Disconnect()
}

// Physics is an engine instance and the factory for everything below it.
type Physics interface {
	Releaser
	TolerancesScale() TolerancesScale
	CreateScene(desc SceneDesc) (Scene, error)
	CreateMaterial(staticFriction, dynamicFriction, restitution float32) (Material, error)
	CreateRigidStatic(pose layout.Transformf) (RigidActor, error)
	CreateRigidDynamic(pose layout.Transformf) (RigidDynamic, error)
	// CreatePlane creates a static actor with a plane shape posed from the
	// plane equation.
	CreatePlane(plane layout.Planef, material Material) (RigidActor, error)
	CreateShape(geometry Geometry, material Material, exclusive bool) (Shape, error)
}

// Scene is a simulated world.
type Scene interface {
	Releaser
	AddActor(actor RigidActor) bool
	RemoveActor(actor RigidActor) bool
	Gravity() layout.Vec3f
	SetGravity(g layout.Vec3f)
	Workers() int
	// Simulate schedules one step and returns immediately.
	Simulate(dt float32) bool
	// FetchResults completes the scheduled step. With block false it
	// returns false while the step is still running.
	FetchResults(block bool) bool
	NbActors(flags ActorTypeFlags) uint32
	// Actors writes at most len(buf) matching actors starting at start and
	// returns the number written.
	Actors(flags ActorTypeFlags, buf []RigidActor, start uint32) uint32
}

// Material is a friction/restitution triple.
type Material interface {
	Releaser
	StaticFriction() float32
	DynamicFriction() float32
	Restitution() float32
}

// RigidActor is a static or dynamic rigid body.
type RigidActor interface {
	Releaser
	Type() ActorTypeFlags
	GlobalPose() layout.Transformf
	SetGlobalPose(pose layout.Transformf)
	AttachShape(shape Shape) bool
	DetachShape(shape Shape) bool
	NbShapes() uint32
	Shapes(buf []Shape, start uint32) uint32
}

// RigidDynamic is a rigid body moved by the simulation.
type RigidDynamic interface {
	RigidActor
	LinearVelocity() layout.Vec3f
	SetLinearVelocity(v layout.Vec3f)
}

// Shape is a geometry instance with a material and a local pose.
type Shape interface {
	Releaser
	Geometry() Geometry
	Material() Material
	IsExclusive() bool
	AttachCount() uint32
	LocalPose() layout.Transformf
	SetLocalPose(pose layout.Transformf)
	// GlobalPose composes actor's pose with the shape's local pose.
	GlobalPose(actor RigidActor) layout.Transformf
	GlobalPoseMatrix(actor RigidActor) layout.Mat44f
}
