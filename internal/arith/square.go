package arith

import (
	"fmt"
	"math/big"

	"github.com/pepinlabs/fermatkit/pkg/types"
)

// Square writes the square of the size-chunk integer starting at start in
// src into dst, returning the chunk count of the result.
//
// Schoolbook cross multiplication over unordered chunk pairs (i, j): each
// double-width product lands at k = i+j−start, doubled when i ≠ j because
// cross terms appear twice in the expansion of a square. Destination
// chunks must be read back before every write since many pairs land on the
// same k. The carry is an explicit big.Int threaded through the loops; it
// is not assumed to fit a single chunk, so the per-i residue is flushed as
// two chunks.
//
// Any I/O failure aborts the whole operation with no partial-result
// recovery; dst contents are undefined after an error.
func Square(src types.Reader, start, size int, dst types.Store) (int, error) {
	if start < 0 || size < 0 {
		return 0, types.ConfigError(fmt.Sprintf("square: bad window start=%d size=%d", start, size))
	}
	if err := dst.Clear(); err != nil {
		return 0, err
	}
	base := src.Geometry().Base()
	end := start + size
	maxIndex := 0
	carry := new(big.Int)

	for i := start; i < end; i++ {
		ci, err := src.ReadChunk(i)
		if err != nil {
			return 0, err
		}
		for j := i; j < end; j++ {
			cj := ci
			if j != i {
				if cj, err = src.ReadChunk(j); err != nil {
					return 0, err
				}
			}
			k := i + j - start
			sum := new(big.Int).Mul(ci, cj)
			if i != j {
				sum.Lsh(sum, 1)
			}
			prev, err := dst.ReadChunk(k)
			if err != nil {
				return 0, err
			}
			sum.Add(sum, prev)
			sum.Add(sum, carry)

			lo := new(big.Int)
			carry.DivMod(sum, base, lo)
			if err := dst.WriteChunk(k, lo); err != nil {
				return 0, err
			}
			if k > maxIndex {
				maxIndex = k
			}
		}
		// Flush the residual carry above the last pair of this row. Earlier
		// rows may already have flushed into these chunks, so the writes
		// read-modify-write like the pair loop does.
		for k := i + end - start; carry.Sign() != 0; k++ {
			prev, err := dst.ReadChunk(k)
			if err != nil {
				return 0, err
			}
			lo := new(big.Int)
			carry.DivMod(carry.Add(carry, prev), base, lo)
			if err := dst.WriteChunk(k, lo); err != nil {
				return 0, err
			}
			if k > maxIndex {
				maxIndex = k
			}
		}
	}
	return maxIndex + 1, nil
}
