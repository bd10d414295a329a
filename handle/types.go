package handle

// Handle is an opaque reference to an object in a Table.
// Handle 0 is reserved and always invalid.
type Handle uint32

const (
	indexBits = 24
	indexMask = 1<<indexBits - 1
	maxGen    = 0xff
)

func makeHandle(index uint32, gen uint8) Handle {
	return Handle(uint32(gen)<<indexBits | index&indexMask)
}

func (h Handle) index() uint32 { return uint32(h) & indexMask }
func (h Handle) gen() uint8    { return uint8(uint32(h) >> indexBits) }

// IsNull reports whether h is the null handle.
func (h Handle) IsNull() bool { return h == 0 }

// Kind identifies what a handle refers to.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindFoundation
	KindDebugConnector
	KindEngine
	KindScene
	KindMaterial
	KindActor
	KindShape
	KindGeometry
)

var kindNames = [...]string{
	KindInvalid:        "invalid",
	KindFoundation:     "foundation",
	KindDebugConnector: "debug connector",
	KindEngine:         "engine",
	KindScene:          "scene",
	KindMaterial:       "material",
	KindActor:          "actor",
	KindShape:          "shape",
	KindGeometry:       "geometry",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// EventType identifies a handle lifecycle notification.
type EventType uint8

const (
	EventCreated EventType = iota
	EventReleased
)

func (e EventType) String() string {
	if e == EventCreated {
		return "created"
	}
	return "released"
}

// Event represents a handle lifecycle event.
type Event struct {
	Value  any
	Handle Handle
	Kind   Kind
	Type   EventType
}

// Observer receives notifications about handle lifecycle events.
type Observer interface {
	OnHandleEvent(Event)
}

// Dropper is optionally implemented by values that release resources when
// their handle is removed.
type Dropper interface {
	Drop()
}
