package registry

import (
	"reflect"

	"github.com/wippyai/opaque/errors"
	"github.com/wippyai/opaque/proj"
)

// Table maps handles to erased values.
type Table struct {
	store     store
	observers []Observer
	closed    bool
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{store: newStore()}
}

// Insert adds a value and returns its handle.
func (t *Table) Insert(value proj.Erased) (Handle, error) {
	if t.closed {
		return 0, errors.New(errors.PhaseRegistry, errors.KindClosed).Detail("table closed").Build()
	}
	if value.IsZero() {
		return 0, errors.New(errors.PhaseRegistry, errors.KindUnsupported).Detail("zero erased value").Build()
	}

	handle := t.store.create(value)
	t.notify(Event{Type: EventCreated, Handle: handle, Value: value})
	return handle, nil
}

// Put erases v and inserts it.
func Put[T any](t *Table, v T) (Handle, error) {
	return t.Insert(proj.Erase(v))
}

// Get retrieves a value by handle.
func (t *Table) Get(handle Handle) (proj.Erased, bool) {
	e := t.store.lookup(handle)
	if e == nil {
		return proj.Erased{}, false
	}
	return e.value, true
}

// Lookup returns the value at handle viewed as T. It fails with
// errors.KindNotFound for unknown handles and *proj.MismatchError when the
// value is not a T. The view shares the stored value.
func Lookup[T any](t *Table, handle Handle) (*proj.Typed[T], error) {
	e, ok := t.Get(handle)
	if !ok {
		return nil, errors.NotFound(errors.PhaseRegistry, "handle", handle)
	}
	return proj.TryAs[T](&e)
}

// Remove takes a value out of the table and runs its Drop method.
func (t *Table) Remove(handle Handle) (proj.Erased, bool) {
	value, ok := t.store.drop(handle)
	if !ok {
		return proj.Erased{}, false
	}

	t.notify(Event{Type: EventDropped, Handle: handle, Value: value})
	dropValue(value)
	return value, true
}

// dropValue calls Drop through a pointer to the boxed value, so both value
// and pointer receivers are found.
func dropValue(value proj.Erased) {
	rt := value.Type().Type()
	if rt == nil {
		return
	}
	if d, ok := reflect.NewAt(rt, value.Pointer()).Interface().(Dropper); ok {
		d.Drop()
	}
}

// Each calls fn for every value in handle order until fn returns false.
func (t *Table) Each(fn func(Handle, proj.Erased) bool) {
	t.store.each(fn)
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer. Observers are matched with ==; one whose
// dynamic value is not comparable (a struct holding a slice, say) never
// matches, so subscribe such observers by pointer.
func (t *Table) Unsubscribe(o Observer) {
	if !reflect.ValueOf(o).Comparable() {
		return
	}
	for i, obs := range t.observers {
		if reflect.TypeOf(obs) == reflect.TypeOf(o) && obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Len returns the number of stored values.
func (t *Table) Len() int {
	return t.store.len()
}

// Clear removes every value.
func (t *Table) Clear() {
	var handles []Handle
	t.store.each(func(h Handle, _ proj.Erased) bool {
		handles = append(handles, h)
		return true
	})
	for _, h := range handles {
		t.Remove(h)
	}
}

// Close removes every value and rejects further inserts.
func (t *Table) Close() error {
	if t.closed {
		return nil
	}
	t.Clear()
	t.closed = true
	return nil
}

func (t *Table) notify(e Event) {
	for _, o := range t.observers {
		o.OnRegistryEvent(e)
	}
}
