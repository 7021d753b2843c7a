// Package typeid provides runtime identities for static Go types.
//
// An ID is captured with Of[T] at the call site that names T and is compared
// with ==. IDs are generated per instantiation from the runtime type
// descriptor, so two distinct types never share an ID, including named types
// with the same underlying type and different instantiations of one generic
// type:
//
//	type Meters int
//
//	typeid.Of[int]() == typeid.Of[int]()    // true
//	typeid.Of[int]() == typeid.Of[Meters]() // false
//
// The zero ID identifies no type.
package typeid
