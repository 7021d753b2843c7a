package hashing

import "github.com/wippyai/opaque/errors"

// Builder names accepted by ByName.
const (
	NameFNV     = "fnv"
	NameMurmur3 = "murmur64"
	NameXXHash  = "xxhash"
	NameBlake3  = "blake3"
)

// ByName returns an erased unkeyed builder for name. The empty name selects
// FNV.
func ByName(name string) (Erased, error) {
	switch name {
	case "", NameFNV:
		return Erase(FNV{}), nil
	case NameMurmur3:
		return Erase(Murmur3{}), nil
	case NameXXHash:
		return Erase(XXHash{}), nil
	case NameBlake3:
		return Erase(Blake3{}), nil
	default:
		return Erased{}, errors.NotFound(errors.PhaseProject, "hash builder", name)
	}
}
