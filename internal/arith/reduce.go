package arith

import (
	"fmt"
	"math/big"

	"github.com/pepinlabs/fermatkit/pkg/types"
)

// Reducer folds a chunked integer in place modulo B^window + 1, where
// window is the fold window size in chunks and B the chunk radix. When the
// geometry satisfies 8·W·window = 2^n this modulus is exactly the Fermat
// number F_n = 2^(2^n) + 1; fermat.NewModulus enforces that.
//
// The core identity is B^window ≡ −1: a contribution m·B^p with p ≥ window
// is congruent to −m·B^(p−window), so the most significant chunk can be
// folded back by subtraction instead of division.
type Reducer struct {
	window int
	geom   types.Geometry
	one    *big.Int
}

// NewReducer validates the fold window and geometry.
func NewReducer(geom types.Geometry, window int) (*Reducer, error) {
	if !geom.Valid() {
		return nil, types.ConfigError("chunk geometry is not initialized")
	}
	if window < 1 {
		return nil, types.ConfigError(fmt.Sprintf("fold window %d: must be at least 1 chunk", window))
	}
	return &Reducer{window: window, geom: geom, one: big.NewInt(1)}, nil
}

// Window returns the fold window size in chunks. Reduced values occupy at
// most Window()+1 chunks (the extra chunk holds the terminal −1 form).
func (r *Reducer) Window() int { return r.window }

// mscCase names the branches of the reduction state machine, keyed on the
// most significant chunk of the current value.
type mscCase int

const (
	mscZero        mscCase = iota // top chunk is zero: drop it
	mscOneBoundary                // top chunk is 1, exactly one chunk above the window
	mscOneGeneral                 // top chunk is 1, at least two chunks above the window start
	mscLarge                      // top chunk is ≥ 2
)

func (r *Reducer) classify(msc *big.Int, size int) mscCase {
	switch {
	case msc.Sign() == 0:
		return mscZero
	case msc.Cmp(r.one) != 0:
		return mscLarge
	case size == r.window+1:
		return mscOneBoundary
	default:
		return mscOneGeneral
	}
}

// Reduce folds st in place until the value fits the window, returning the
// new chunk count (at most Window()+1; equal to Window()+1 only for the
// terminal −1 representation). Reducing an already-reduced value is a
// no-op. Any I/O failure aborts with no partial-state recovery.
func (r *Reducer) Reduce(st types.Store, size int) (int, error) {
	if size < 0 {
		return 0, types.ConfigError(fmt.Sprintf("reduce: negative size %d", size))
	}
	for size > r.window {
		msc, err := st.ReadChunk(size - 1)
		if err != nil {
			return 0, err
		}
		switch r.classify(msc, size) {
		case mscZero:
			size--
		case mscOneBoundary:
			var done bool
			size, done, err = r.foldOneBoundary(st, size)
			if err != nil {
				return 0, err
			}
			if done {
				return size, nil
			}
		case mscOneGeneral:
			size, err = r.foldOneGeneral(st, size)
			if err != nil {
				return 0, err
			}
		case mscLarge:
			size, err = r.foldLarge(st, size, msc)
			if err != nil {
				return 0, err
			}
		}
	}
	return size, nil
}

// foldOneBoundary handles msc == 1 when the value is exactly one chunk
// wider than the window: v = B^window + low, so v ≡ low − 1. When low is
// all zero the subtraction has nothing to borrow from and v ≡ −1 already;
// the value is kept as the terminal window+1-chunk representation of −1.
// Otherwise 1 is subtracted starting at chunk 0 with the borrow
// propagating toward higher indices, and the top chunk is cleared.
func (r *Reducer) foldOneBoundary(st types.Store, size int) (int, bool, error) {
	allZero := true
	for i := 0; i < r.window; i++ {
		x, err := st.ReadChunk(i)
		if err != nil {
			return 0, false, err
		}
		if x.Sign() != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return size, true, nil
	}
	if err := r.subAt(st, 0, r.window-1, r.one); err != nil {
		return 0, false, err
	}
	if err := st.WriteChunk(size-1, new(big.Int)); err != nil {
		return 0, false, err
	}
	return size - 1, false, nil
}

// foldOneGeneral handles msc == 1 with the top chunk at least two above
// the window start. The top two chunks fold together in one fused step:
// with s = size−2−window, clearing the MSC, rewriting c[size−2] to B−1 and
// subtracting (c[size−2]+1)·B^s changes the value by an exact multiple of
// B^window+1 while keeping every chunk non-negative. The planted B−1
// bounds the borrow.
func (r *Reducer) foldOneGeneral(st types.Store, size int) (int, error) {
	second, err := st.ReadChunk(size - 2)
	if err != nil {
		return 0, err
	}
	val := second.Add(second, r.one) // in [1, B]
	if err := st.WriteChunk(size-2, r.geom.MinusOne()); err != nil {
		return 0, err
	}
	if err := st.WriteChunk(size-1, new(big.Int)); err != nil {
		return 0, err
	}
	if err := r.subAt(st, size-2-r.window, size-2, val); err != nil {
		return 0, err
	}
	return size - 1, nil
}

// foldLarge handles msc ≥ 2: the MSC is rewritten to 1 and msc−1 is
// subtracted at the fold target size−1−window, changing the value by
// −(msc−1)·B^(size−1−window)·(B^window+1). The rewritten 1 bounds the
// borrow; when the borrow consumes it the next pass sees a zero MSC and
// drops it, otherwise the next pass takes one of the msc-one folds.
func (r *Reducer) foldLarge(st types.Store, size int, msc *big.Int) (int, error) {
	if err := st.WriteChunk(size-1, r.one); err != nil {
		return 0, err
	}
	d := msc.Sub(msc, r.one)
	if err := r.subAt(st, size-1-r.window, size-1, d); err != nil {
		return 0, err
	}
	return size, nil
}

// subAt subtracts d (0 < d ≤ B) from the chunk at index start, propagating
// the borrow toward higher indices: borrowing through a zero chunk writes
// B−1 and continues, a nonzero chunk is decremented and the borrow stops.
// Callers guarantee a chunk at or below top absorbs the borrow; walking
// past top means an arithmetic invariant was violated.
func (r *Reducer) subAt(st types.Store, start, top int, d *big.Int) error {
	x, err := st.ReadChunk(start)
	if err != nil {
		return err
	}
	borrow := false
	if x.Cmp(d) >= 0 {
		x.Sub(x, d)
	} else {
		x.Add(x, r.geom.Base())
		x.Sub(x, d)
		borrow = true
	}
	if err := st.WriteChunk(start, x); err != nil {
		return err
	}
	for i := start + 1; borrow; i++ {
		if i > top {
			return &types.Error{Kind: types.ErrKindCorrupt, Msg: fmt.Sprintf("borrow escaped fold window at chunk %d", i)}
		}
		x, err := st.ReadChunk(i)
		if err != nil {
			return err
		}
		if x.Sign() == 0 {
			if err := st.WriteChunk(i, r.geom.MinusOne()); err != nil {
				return err
			}
			continue
		}
		x.Sub(x, r.one)
		if err := st.WriteChunk(i, x); err != nil {
			return err
		}
		borrow = false
	}
	return nil
}
