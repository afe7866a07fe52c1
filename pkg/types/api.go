package types

import (
	"fmt"
	"math/big"
)

// Geometry fixes the chunk width of a chunked integer and carries the
// derived radix constants. A chunked integer with geometry W is a sequence
// of chunks c[0..size), each in [0, 256^W), stored little-endian in W bytes
// at byte offset i*W of its backing store, representing Σ c[i]·(256^W)^i.
//
// The width must be a power of two: the Fermat fold identity is only exact
// when the chunk bit width divides 2^n (see fermat.NewModulus).
type Geometry struct {
	width    int
	base     *big.Int
	minusOne *big.Int
}

// NewGeometry validates width (bytes per chunk) and precomputes the radix.
func NewGeometry(width int) (Geometry, error) {
	if width < 1 {
		return Geometry{}, ConfigError(fmt.Sprintf("chunk width %d: must be at least 1 byte", width))
	}
	if width&(width-1) != 0 {
		return Geometry{}, ConfigError(fmt.Sprintf("chunk width %d: must be a power of two", width))
	}
	base := new(big.Int).Lsh(big.NewInt(1), uint(width)*8)
	return Geometry{
		width:    width,
		base:     base,
		minusOne: new(big.Int).Sub(base, big.NewInt(1)),
	}, nil
}

// Width returns the chunk width in bytes.
func (g Geometry) Width() int { return g.width }

// Base returns the radix B = 256^W. Callers must not mutate the result.
func (g Geometry) Base() *big.Int { return g.base }

// MinusOne returns B−1, the chunk written when a subtraction borrows
// through a zero chunk. Callers must not mutate the result.
func (g Geometry) MinusOne() *big.Int { return g.minusOne }

// Valid reports whether g was produced by NewGeometry.
func (g Geometry) Valid() bool { return g.width > 0 && g.base != nil }

// Reader is the read side of a chunk store. A read past the end of the
// backing storage yields a zero chunk, never an error: the store behaves
// as an infinite zero-extended array of W-byte digits.
type Reader interface {
	// ReadChunk returns the chunk at index. The result is owned by the
	// caller; implementations must not retain or alias it.
	ReadChunk(index int) (*big.Int, error)
	// Geometry returns the store's chunk geometry.
	Geometry() Geometry
}

// Store is a mutable chunk store.
type Store interface {
	Reader
	// WriteChunk stores v at index, padded to exactly W bytes. v must be
	// in [0, B). Slots between the previous end and index read as zero.
	WriteChunk(index int, v *big.Int) error
	// Clear resets the store to an all-zero (empty) state.
	Clear() error
}
