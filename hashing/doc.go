// Package hashing provides hasher builders that can be erased and projected
// back like allocators.
//
// A Builder creates fresh hash.Hash states. FNV is the zero-size default;
// Murmur3 and XXHash are fast 64-bit alternatives and Blake3 is optionally
// keyed. ByName selects an unkeyed builder from a configuration string.
// Handles box a builder and remember its identity:
//
//	e := hashing.Erase(hashing.FNV{})
//	sum := e.Sum64(data)
//	f := hashing.Project[hashing.FNV](e)
package hashing
