package px

import "github.com/wippyai/physx-binding/handle"

// Handle is implemented by every typed handle.
type Handle interface {
	Raw() uint32
	kind() handle.Kind
}

type (
	FoundationHandle     handle.Handle
	DebugConnectorHandle handle.Handle
	EngineHandle         handle.Handle
	SceneHandle          handle.Handle
	MaterialHandle       handle.Handle
	ActorHandle          handle.Handle
	ShapeHandle          handle.Handle
	GeometryHandle       handle.Handle
)

// NullDebugConnector is passed to CreatePhysics when no debugger is used.
const NullDebugConnector DebugConnectorHandle = 0

func (h FoundationHandle) Raw() uint32     { return uint32(h) }
func (h DebugConnectorHandle) Raw() uint32 { return uint32(h) }
func (h EngineHandle) Raw() uint32         { return uint32(h) }
func (h SceneHandle) Raw() uint32          { return uint32(h) }
func (h MaterialHandle) Raw() uint32       { return uint32(h) }
func (h ActorHandle) Raw() uint32          { return uint32(h) }
func (h ShapeHandle) Raw() uint32          { return uint32(h) }
func (h GeometryHandle) Raw() uint32       { return uint32(h) }

func (FoundationHandle) kind() handle.Kind     { return handle.KindFoundation }
func (DebugConnectorHandle) kind() handle.Kind { return handle.KindDebugConnector }
func (EngineHandle) kind() handle.Kind         { return handle.KindEngine }
func (SceneHandle) kind() handle.Kind          { return handle.KindScene }
func (MaterialHandle) kind() handle.Kind       { return handle.KindMaterial }
func (ActorHandle) kind() handle.Kind          { return handle.KindActor }
func (ShapeHandle) kind() handle.Kind          { return handle.KindShape }
func (GeometryHandle) kind() handle.Kind       { return handle.KindGeometry }

// State is a bootstrap stage.
type State uint8

const (
	StateUninitialized State = iota
	StateFoundationReady
	StateDebugReady
	StateEngineReady
	StateSceneReady
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateFoundationReady:
		return "foundation ready"
	case StateDebugReady:
		return "debug ready"
	case StateEngineReady:
		return "engine ready"
	case StateSceneReady:
		return "scene ready"
	}
	return "unknown"
}
