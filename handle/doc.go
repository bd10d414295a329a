// Package handle implements the opaque handle table that stands between
// callers of the binding and the engine objects they refer to.
//
// A Handle is a 32-bit token with no introspectable fields. Handle 0 is the
// null handle. The low 24 bits select a slot and the high 8 bits carry the
// slot's generation, which advances every time the slot is released:
//
//	table := handle.NewTable()
//	h, _ := table.Insert(handle.KindScene, scene)
//
//	v, err := table.Get(h, handle.KindScene)    // ok
//	v, err = table.Get(h, handle.KindActor)     // wrong_kind
//
//	table.Remove(h)
//	v, err = table.Get(h, handle.KindScene)     // stale_handle
//
// A released slot is reused only under a new generation, so a stale handle
// never aliases a newer object. Slots whose generation would wrap are retired.
//
// # Lifetime
//
// Values implementing Dropper are dropped when removed and when the table is
// closed. Close drops live values in reverse creation order.
//
// # Observers
//
// Subscribe an Observer to receive EventCreated and EventReleased
// notifications for every handle.
package handle
