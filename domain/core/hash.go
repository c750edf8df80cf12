package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// SolveFingerprint identifies a solve by its inputs and configuration.
// Two solves over identical data and identical configuration share a
// fingerprint, which is what makes replays auditable.
type SolveFingerprint Hash

// String returns the string representation
func (f SolveFingerprint) String() string { return Hash(f).String() }

// FingerprintBuilder accumulates input data and configuration into a
// deterministic fingerprint. NaN cells hash to a fixed bit pattern so that
// masked gridpoints do not destabilize the digest.
type FingerprintBuilder struct {
	h []byte
}

// NewFingerprintBuilder creates an empty builder
func NewFingerprintBuilder() *FingerprintBuilder {
	return &FingerprintBuilder{h: make([]byte, 0, 1024)}
}

// WriteString adds a labeled string component
func (b *FingerprintBuilder) WriteString(s string) *FingerprintBuilder {
	b.h = append(b.h, []byte(s)...)
	b.h = append(b.h, 0)
	return b
}

// WriteInt adds an integer component
func (b *FingerprintBuilder) WriteInt(v int) *FingerprintBuilder {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	b.h = append(b.h, buf[:]...)
	return b
}

// WriteBool adds a boolean component
func (b *FingerprintBuilder) WriteBool(v bool) *FingerprintBuilder {
	if v {
		b.h = append(b.h, 1)
	} else {
		b.h = append(b.h, 0)
	}
	return b
}

// WriteFloats adds a float slice component, length-prefixed so adjacent
// slices of different lengths cannot collide.
func (b *FingerprintBuilder) WriteFloats(vs []float64) *FingerprintBuilder {
	b.WriteInt(len(vs))
	var buf [8]byte
	for _, v := range vs {
		bits := math.Float64bits(v)
		if math.IsNaN(v) {
			// Canonical NaN so equal masks hash equally
			bits = math.Float64bits(math.NaN())
		}
		binary.LittleEndian.PutUint64(buf[:], bits)
		b.h = append(b.h, buf[:]...)
	}
	return b
}

// Fingerprint finalizes the digest
func (b *FingerprintBuilder) Fingerprint() SolveFingerprint {
	return SolveFingerprint(NewHash(b.h))
}
