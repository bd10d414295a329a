package px

import (
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/wippyai/physx-binding/errors"
	"github.com/wippyai/physx-binding/handle"
	"github.com/wippyai/physx-binding/native"
)

// Binding is the context every operation runs in. It owns the handle table
// and the native backend; there is no process-wide state.
type Binding struct {
	backend native.Backend
	table   *handle.Table
	actors  map[native.RigidActor]ActorHandle
	shapes  map[native.Shape]ShapeHandle
	log     *zap.Logger
	cfg     Config
	closed  bool
}

// New creates a binding over backend.
func New(backend native.Backend, cfg Config) (*Binding, error) {
	if backend == nil {
		return nil, errors.InvalidInput(errors.PhaseBootstrap, "New", "backend is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.New(errors.PhaseBootstrap, errors.KindInvalidInput).
			Op("New").
			Cause(err).
			Build()
	}

	b := &Binding{
		backend: backend,
		table:   handle.NewTable(),
		actors:  make(map[native.RigidActor]ActorHandle),
		shapes:  make(map[native.Shape]ShapeHandle),
		log:     Logger().With(zap.String("backend", backend.Name())),
		cfg:     cfg,
	}
	b.table.Subscribe(&logObserver{log: b.log})
	return b, nil
}

// Config returns the configuration the binding was created with.
func (b *Binding) Config() Config { return b.cfg }

// Backend returns the name of the native backend.
func (b *Binding) Backend() string { return b.backend.Name() }

// State reports the furthest bootstrap stage reached by live handles.
func (b *Binding) State() State {
	var st State
	b.table.Each(func(_ handle.Handle, k handle.Kind, _ any) bool {
		var s State
		switch k {
		case handle.KindFoundation:
			s = StateFoundationReady
		case handle.KindDebugConnector:
			s = StateDebugReady
		case handle.KindEngine:
			s = StateEngineReady
		case handle.KindScene:
			s = StateSceneReady
		}
		if s > st {
			st = s
		}
		return true
	})
	return st
}

// Live returns the number of live handles.
func (b *Binding) Live() int { return b.table.Len() }

// Valid reports whether h refers to a live object of h's kind.
func (b *Binding) Valid(h Handle) bool {
	_, err := b.table.Get(handle.Handle(h.Raw()), h.kind())
	return err == nil
}

func (b *Binding) insert(phase errors.Phase, op string, kind handle.Kind, v any) (handle.Handle, error) {
	if b.closed {
		return 0, errors.Closed(phase, op)
	}
	h, err := b.table.Insert(kind, v)
	if err != nil {
		return 0, annotate(err, phase, op)
	}
	return h, nil
}

// annotate stamps a handle table error with the caller's phase and op.
func annotate(err error, phase errors.Phase, op string) error {
	var e *errors.Error
	if stderrors.As(err, &e) {
		c := *e
		c.Phase = phase
		c.Op = op
		return &c
	}
	return err
}

func lookup[T any](b *Binding, phase errors.Phase, op string, h Handle) (T, error) {
	v, err := handle.Get[T](b.table, handle.Handle(h.Raw()), h.kind())
	if err != nil {
		return v, annotate(err, phase, op)
	}
	return v, nil
}

type foundationEntry struct {
	native native.Foundation
	refs   int
}

func (e *foundationEntry) Drop() { e.native.Release() }

type debugEntry struct {
	native     native.DebugConnector
	endpoint   DebugConfig
	foundation FoundationHandle
	refs       int
}

func (e *debugEntry) Drop() { e.native.Release() }

type engineEntry struct {
	native     native.Physics
	foundation FoundationHandle
	debug      DebugConnectorHandle
	refs       int
}

func (e *engineEntry) Drop() { e.native.Release() }

type sceneEntry struct {
	native native.Scene
	step   *Step
	cfg    SceneConfig
	engine EngineHandle
}

func (e *sceneEntry) Drop() { e.native.Release() }

type materialEntry struct {
	native native.Material
	engine EngineHandle
	refs   int
}

func (e *materialEntry) Drop() { e.native.Release() }

type actorEntry struct {
	native native.RigidActor
	shapes []ShapeHandle
	engine EngineHandle
	scene  SceneHandle
}

func (e *actorEntry) Drop() { e.native.Release() }

type shapeEntry struct {
	native   native.Shape
	actors   []ActorHandle
	engine   EngineHandle
	material MaterialHandle
	// owner is the actor the engine created the shape with, or 0. While
	// attached to its owner the shape is released with it.
	owner ActorHandle
}

func (e *shapeEntry) Drop() {
	if e.owner == 0 {
		e.native.Release()
	}
}

type geometryEntry struct {
	geometry Geometry
}

// sceneOf returns the scene entry an actor is in, or nil.
func (b *Binding) sceneOf(a *actorEntry) *sceneEntry {
	if a.scene == 0 {
		return nil
	}
	s, err := lookup[*sceneEntry](b, errors.PhaseQuery, "", a.scene)
	if err != nil {
		return nil
	}
	return s
}

// guardActor rejects mutation of an actor whose scene has a step in flight.
func (b *Binding) guardActor(op string, a *actorEntry) error {
	if s := b.sceneOf(a); s != nil && s.step != nil {
		return errors.StepInFlight(op, a.scene.Raw())
	}
	return nil
}

// guardShape rejects mutation of a shape attached to an actor whose scene
// has a step in flight.
func (b *Binding) guardShape(op string, s *shapeEntry) error {
	for _, ah := range s.actors {
		a, err := lookup[*actorEntry](b, errors.PhaseQuery, op, ah)
		if err != nil {
			continue
		}
		if err := b.guardActor(op, a); err != nil {
			return err
		}
	}
	return nil
}

func removeHandle[H comparable](list []H, h H) ([]H, bool) {
	for i, x := range list {
		if x == h {
			return append(list[:i], list[i+1:]...), true
		}
	}
	return list, false
}
