package hashing

import (
	"encoding/binary"
	"hash"
	"hash/fnv"

	"github.com/TykTechnologies/murmur3"
	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/blake3"

	"github.com/wippyai/opaque/errors"
)

// Builder creates hasher states.
type Builder interface {
	NewHasher() hash.Hash
}

// FNV builds 64-bit FNV-1a hashers.
type FNV struct{}

func (FNV) NewHasher() hash.Hash {
	return fnv.New64a()
}

// Murmur3 builds 64-bit MurmurHash3 hashers.
type Murmur3 struct{}

func (Murmur3) NewHasher() hash.Hash {
	return murmur3.New64()
}

// XXHash builds 64-bit xxHash hashers.
type XXHash struct{}

func (XXHash) NewHasher() hash.Hash {
	return xxhash.New()
}

// Blake3 builds BLAKE3 hashers, keyed when created with NewKeyedBlake3.
type Blake3 struct {
	key []byte
}

// NewKeyedBlake3 returns a builder for the keyed BLAKE3 mode. The key must be
// 32 bytes and is copied.
func NewKeyedBlake3(key []byte) (Blake3, error) {
	if len(key) != 32 {
		return Blake3{}, errors.New(errors.PhaseProject, errors.KindUnsupported).
			Detail("blake3 key is %d bytes, want 32", len(key)).
			Build()
	}
	return Blake3{key: append([]byte(nil), key...)}, nil
}

// Keyed reports whether b uses a key.
func (b Blake3) Keyed() bool {
	return b.key != nil
}

func (b Blake3) NewHasher() hash.Hash {
	if b.key == nil {
		return blake3.New()
	}
	h, err := blake3.NewKeyed(b.key)
	if err != nil {
		// Key length was checked by NewKeyedBlake3.
		panic(err)
	}
	return h
}

// Sum64 hashes data with a fresh hasher from b. Hashers that do not produce
// 64-bit sums are truncated to the first 8 bytes of their digest.
func Sum64(b Builder, data []byte) uint64 {
	h := b.NewHasher()
	h.Write(data)
	if h64, ok := h.(hash.Hash64); ok {
		return h64.Sum64()
	}
	return binary.LittleEndian.Uint64(h.Sum(nil))
}
