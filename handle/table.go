package handle

import (
	"sort"
	"sync"

	"github.com/wippyai/physx-binding/errors"
)

// Table maps handles to values with kind and generation checks.
type Table struct {
	slots     []slot
	free      []uint32
	observers []Observer
	seq       uint64
	live      int
	mu        sync.RWMutex
	obsMu     sync.RWMutex
	closed    bool
}

type slot struct {
	value any
	seq   uint64
	kind  Kind
	gen   uint8
	live  bool
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		slots: make([]slot, 0, 64),
		free:  make([]uint32, 0, 16),
	}
}

// Insert stores value under kind and returns a new handle.
func (t *Table) Insert(kind Kind, value any) (Handle, error) {
	if kind == KindInvalid || int(kind) >= len(kindNames) {
		return 0, errors.InvalidInput(errors.PhaseHandle, "Insert", "invalid handle kind")
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return 0, errors.Closed(errors.PhaseHandle, "Insert")
	}

	t.seq++
	var h Handle
	if n := len(t.free); n > 0 {
		idx := t.free[n-1]
		t.free = t.free[:n-1]
		s := &t.slots[idx-1]
		s.value, s.seq, s.kind, s.live = value, t.seq, kind, true
		h = makeHandle(idx, s.gen)
	} else {
		if len(t.slots) >= indexMask {
			t.mu.Unlock()
			return 0, errors.New(errors.PhaseHandle, errors.KindConstruction).
				Op("Insert").
				Detail("handle table exhausted").
				Build()
		}
		t.slots = append(t.slots, slot{value: value, seq: t.seq, kind: kind, live: true})
		h = makeHandle(uint32(len(t.slots)), 0)
	}
	t.live++
	t.mu.Unlock()

	t.notify(Event{Type: EventCreated, Handle: h, Kind: kind, Value: value})
	return h, nil
}

// lookup returns the live slot for h. Callers hold t.mu.
func (t *Table) lookup(h Handle) (*slot, *errors.Error) {
	if h == 0 {
		return nil, errors.NullHandle(errors.PhaseHandle, "", "")
	}
	idx := h.index()
	if idx == 0 || int(idx) > len(t.slots) {
		return nil, errors.StaleHandle(errors.PhaseHandle, "", uint32(h), "")
	}
	s := &t.slots[idx-1]
	if !s.live || s.gen != h.gen() {
		return nil, errors.StaleHandle(errors.PhaseHandle, "", uint32(h), "")
	}
	return s, nil
}

// KindOf returns the kind of a live handle.
func (t *Table) KindOf(h Handle) (Kind, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s, err := t.lookup(h)
	if err != nil {
		return KindInvalid, err
	}
	return s.kind, nil
}

// Get returns the value of h if it is live and of the expected kind.
func (t *Table) Get(h Handle, kind Kind) (any, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s, err := t.lookup(h)
	if err != nil {
		err.HandleKind = kind.String()
		return nil, err
	}
	if s.kind != kind {
		return nil, errors.WrongKind(errors.PhaseHandle, "", uint32(h), kind.String(), s.kind.String())
	}
	return s.value, nil
}

// Get is the typed form of Table.Get.
func Get[T any](t *Table, h Handle, kind Kind) (T, error) {
	var zero T
	v, err := t.Get(h, kind)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, errors.New(errors.PhaseHandle, errors.KindWrongKind).
			Handle(uint32(h), kind.String()).
			Detail("stored value has unexpected type %T", v).
			Build()
	}
	return typed, nil
}

// Valid reports whether h refers to a live object.
func (t *Table) Valid(h Handle) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, err := t.lookup(h)
	return err == nil
}

// Remove invalidates h, drops its value and returns it.
func (t *Table) Remove(h Handle) (any, error) {
	t.mu.Lock()
	s, err := t.lookup(h)
	if err != nil {
		t.mu.Unlock()
		return nil, err
	}
	value, kind := s.value, s.kind
	t.release(h.index(), s)
	t.mu.Unlock()

	if d, ok := value.(Dropper); ok {
		d.Drop()
	}
	t.notify(Event{Type: EventReleased, Handle: h, Kind: kind, Value: value})
	return value, nil
}

// release retires or recycles a slot. Callers hold t.mu.
func (t *Table) release(idx uint32, s *slot) {
	s.value = nil
	s.live = false
	t.live--
	if s.gen == maxGen {
		return
	}
	s.gen++
	t.free = append(t.free, idx)
}

// Len returns the number of live handles.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.live
}

type liveEntry struct {
	value  any
	seq    uint64
	handle Handle
	kind   Kind
}

func (t *Table) snapshot() []liveEntry {
	t.mu.RLock()
	entries := make([]liveEntry, 0, t.live)
	for i := range t.slots {
		s := &t.slots[i]
		if s.live {
			entries = append(entries, liveEntry{
				value:  s.value,
				seq:    s.seq,
				handle: makeHandle(uint32(i+1), s.gen),
				kind:   s.kind,
			})
		}
	}
	t.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	return entries
}

// Each calls fn for every live handle in creation order until fn returns false.
func (t *Table) Each(fn func(Handle, Kind, any) bool) {
	for _, e := range t.snapshot() {
		if !fn(e.handle, e.kind, e.value) {
			return
		}
	}
}

// Live returns the live handles of kind in creation order.
func (t *Table) Live(kind Kind) []Handle {
	var out []Handle
	for _, e := range t.snapshot() {
		if e.kind == kind {
			out = append(out, e.handle)
		}
	}
	return out
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *Table) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Close drops every live value in reverse creation order and rejects
// further inserts. Close is idempotent.
func (t *Table) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	t.mu.Unlock()

	entries := t.snapshot()
	for i := len(entries) - 1; i >= 0; i-- {
		_, _ = t.Remove(entries[i].handle)
	}
	return nil
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnHandleEvent(e)
	}
}
