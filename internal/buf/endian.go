// Package buf contains helpers for endian-safe chunk encoding routines.
package buf

import (
	"encoding/binary"
	"math/big"
)

// BigLE decodes b as a little-endian unsigned integer. An empty or all-zero
// slice decodes to zero.
func BigLE(b []byte) *big.Int {
	be := make([]byte, len(b))
	for i, v := range b {
		be[len(b)-1-i] = v
	}
	return new(big.Int).SetBytes(be)
}

// PutBigLE encodes v little-endian into b, zero-padding the high bytes.
// Returns false when v is negative or does not fit in len(b) bytes.
func PutBigLE(b []byte, v *big.Int) bool {
	if v.Sign() < 0 || (v.BitLen()+7)/8 > len(b) {
		return false
	}
	be := make([]byte, len(b))
	v.FillBytes(be)
	for i, x := range be {
		b[len(b)-1-i] = x
	}
	return true
}

// U64LE reads a little-endian uint64 from b. Returns 0 when b is too short.
func U64LE(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// PutU64LE writes v little-endian into the first 8 bytes of b.
// Returns false when b is too short.
func PutU64LE(b []byte, v uint64) bool {
	if len(b) < 8 {
		return false
	}
	binary.LittleEndian.PutUint64(b, v)
	return true
}
