package px

import (
	"fmt"

	"github.com/wippyai/physx-binding/errors"
	"github.com/wippyai/physx-binding/native"
)

func checkFilter(op string, flags native.ActorTypeFlags) error {
	if !flags.Valid() {
		return errors.InvalidInput(errors.PhaseQuery, op,
			fmt.Sprintf("actor filter %#x is not a non-empty subset of dynamic|static", uint32(flags)))
	}
	return nil
}

// SceneActorCount returns the number of actors in s matching flags.
func (b *Binding) SceneActorCount(s SceneHandle, flags native.ActorTypeFlags) (uint32, error) {
	const op = "SceneActorCount"
	se, err := lookup[*sceneEntry](b, errors.PhaseQuery, op, s)
	if err != nil {
		return 0, err
	}
	if err := checkFilter(op, flags); err != nil {
		return 0, err
	}
	return se.native.NbActors(flags), nil
}

// SceneActors writes at most len(buf) actors of s matching flags, starting
// at index start, and returns the number written.
func (b *Binding) SceneActors(s SceneHandle, flags native.ActorTypeFlags, buf []ActorHandle, start uint32) (uint32, error) {
	const op = "SceneActors"
	se, err := lookup[*sceneEntry](b, errors.PhaseQuery, op, s)
	if err != nil {
		return 0, err
	}
	if err := checkFilter(op, flags); err != nil {
		return 0, err
	}
	if len(buf) == 0 {
		return 0, nil
	}

	tmp := make([]native.RigidActor, len(buf))
	n := min(int(se.native.Actors(flags, tmp, start)), len(buf))
	for i := 0; i < n; i++ {
		h, ok := b.actors[tmp[i]]
		if !ok {
			return uint32(i), errors.OperationFailed(errors.PhaseQuery, op, "engine returned an actor without a handle")
		}
		buf[i] = h
	}
	return uint32(n), nil
}

// ActorShapeCount returns the number of shapes attached to a.
func (b *Binding) ActorShapeCount(a ActorHandle) (uint32, error) {
	ae, err := lookup[*actorEntry](b, errors.PhaseQuery, "ActorShapeCount", a)
	if err != nil {
		return 0, err
	}
	return ae.native.NbShapes(), nil
}

// ActorShapes writes at most len(buf) shapes of a, starting at index
// start, and returns the number written.
func (b *Binding) ActorShapes(a ActorHandle, buf []ShapeHandle, start uint32) (uint32, error) {
	const op = "ActorShapes"
	ae, err := lookup[*actorEntry](b, errors.PhaseQuery, op, a)
	if err != nil {
		return 0, err
	}
	if len(buf) == 0 {
		return 0, nil
	}

	tmp := make([]native.Shape, len(buf))
	n := min(int(ae.native.Shapes(tmp, start)), len(buf))
	for i := 0; i < n; i++ {
		h, ok := b.shapes[tmp[i]]
		if !ok {
			return uint32(i), errors.OperationFailed(errors.PhaseQuery, op, "engine returned a shape without a handle")
		}
		buf[i] = h
	}
	return uint32(n), nil
}

// paginate drains a count/fetch pair in pages of pageSize.
func paginate[H any](total uint32, pageSize int, fetch func(buf []H, start uint32) (uint32, error)) ([]H, error) {
	if pageSize < 1 {
		pageSize = 1
	}
	out := make([]H, 0, total)
	page := make([]H, pageSize)
	for start := uint32(0); start < total; {
		n, err := fetch(page, start)
		if err != nil {
			return out, err
		}
		if n == 0 {
			break
		}
		out = append(out, page[:n]...)
		start += n
	}
	return out, nil
}

// CollectSceneActors returns every actor in s matching flags, fetched in
// pages of pageSize.
func (b *Binding) CollectSceneActors(s SceneHandle, flags native.ActorTypeFlags, pageSize int) ([]ActorHandle, error) {
	total, err := b.SceneActorCount(s, flags)
	if err != nil {
		return nil, err
	}
	return paginate(total, pageSize, func(buf []ActorHandle, start uint32) (uint32, error) {
		return b.SceneActors(s, flags, buf, start)
	})
}

// CollectActorShapes returns every shape attached to a, fetched in pages
// of pageSize.
func (b *Binding) CollectActorShapes(a ActorHandle, pageSize int) ([]ShapeHandle, error) {
	total, err := b.ActorShapeCount(a)
	if err != nil {
		return nil, err
	}
	return paginate(total, pageSize, func(buf []ShapeHandle, start uint32) (uint32, error) {
		return b.ActorShapes(a, buf, start)
	})
}
