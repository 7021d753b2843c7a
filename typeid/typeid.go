package typeid

import "reflect"

// ID identifies a concrete static type.
type ID struct {
	rt reflect.Type
}

// Of returns the ID of T.
func Of[T any]() ID {
	return ID{rt: reflect.TypeFor[T]()}
}

// OfValue returns the ID of the dynamic type of v, or the zero ID for nil.
func OfValue(v any) ID {
	if v == nil {
		return ID{}
	}
	return ID{rt: reflect.TypeOf(v)}
}

// Type returns the reflected type, or nil for the zero ID.
func (id ID) Type() reflect.Type {
	return id.rt
}

// IsZero reports whether id identifies no type.
func (id ID) IsZero() bool {
	return id.rt == nil
}

// Name returns the package-qualified type name, e.g. "alloc.Global".
func (id ID) Name() string {
	if id.rt == nil {
		return "<none>"
	}
	return id.rt.String()
}

// String implements fmt.Stringer.
func (id ID) String() string {
	return id.Name()
}

// Size returns the size in bytes of a value of the type.
func (id ID) Size() uintptr {
	if id.rt == nil {
		return 0
	}
	return id.rt.Size()
}
