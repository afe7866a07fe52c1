package fermat

import (
	"fmt"
	"math/big"

	"github.com/pepinlabs/fermatkit/internal/arith"
	"github.com/pepinlabs/fermatkit/pkg/types"
)

// MaxExponent bounds the Fermat exponent so iteration counts and bit
// lengths stay within int range.
const MaxExponent = 62

// Modulus binds a Fermat-form modulus F_n = 2^(2^n) + 1 to a chunk
// geometry and selects the reduction regime the geometry permits:
//
//   - Fold regime (2^n ≥ chunk bits): max_size = 2^n / (8W) chunks hold
//     F_n − 1 exactly, B^max_size ≡ −1, and reduction folds the most
//     significant chunk back by subtraction.
//   - Scalar regime (2^n < chunk bits): F_n fits inside a single chunk, so
//     the fold identity does not exist at chunk granularity; reduction is
//     a direct modular reduction of the (at most a few chunks wide) value.
//
// Because chunk widths are powers of two, every n ≥ 0 lands in exactly one
// of the regimes; there is no geometry where max_size would be 0.
type Modulus struct {
	n       uint
	geom    types.Geometry
	maxSize int
	reducer *arith.Reducer // fold regime only
	scalar  *big.Int       // F_n, scalar regime only
}

// NewModulus validates n against the geometry and derives the reduction
// parameters.
func NewModulus(n uint, geom types.Geometry) (*Modulus, error) {
	if !geom.Valid() {
		return nil, types.ConfigError("chunk geometry is not initialized")
	}
	if n > MaxExponent {
		return nil, types.ConfigError(fmt.Sprintf("fermat exponent %d exceeds maximum %d", n, MaxExponent))
	}
	modBits := 1 << n // bit length of F_n − 1
	chunkBits := geom.Width() * 8
	m := &Modulus{n: n, geom: geom}

	if modBits < chunkBits {
		m.maxSize = 1
		m.scalar = new(big.Int).Lsh(big.NewInt(1), uint(modBits))
		m.scalar.Add(m.scalar, big.NewInt(1))
		return m, nil
	}
	if modBits%chunkBits != 0 {
		// Unreachable for power-of-two widths; kept as a guard.
		return nil, types.ConfigError(fmt.Sprintf("chunk width %d bits does not divide 2^%d", chunkBits, n))
	}
	m.maxSize = modBits / chunkBits
	r, err := arith.NewReducer(geom, m.maxSize)
	if err != nil {
		return nil, err
	}
	m.reducer = r
	return m, nil
}

// N returns the Fermat exponent.
func (m *Modulus) N() uint { return m.n }

// Geometry returns the bound chunk geometry.
func (m *Modulus) Geometry() types.Geometry { return m.geom }

// MaxSize returns the minimal chunk count holding F_n − 1. Reduced values
// occupy at most MaxSize()+1 chunks.
func (m *Modulus) MaxSize() int { return m.maxSize }

// Folded reports whether the chunk-level fold identity applies (fold
// regime) rather than direct scalar reduction.
func (m *Modulus) Folded() bool { return m.scalar == nil }

// BitLen returns the bit length of F_n.
func (m *Modulus) BitLen() int { return (1 << m.n) + 1 }

// Value materializes F_n. Beware: in the fold regime this allocates 2^n
// bits; it exists for verification and small-exponent reporting.
func (m *Modulus) Value() *big.Int {
	if m.scalar != nil {
		return new(big.Int).Set(m.scalar)
	}
	v := new(big.Int).Lsh(big.NewInt(1), 1<<m.n)
	return v.Add(v, big.NewInt(1))
}

// Reduce reduces the size-chunk value in st in place modulo F_n, returning
// the new chunk count. Reducing an already-reduced value is a no-op.
func (m *Modulus) Reduce(st types.Store, size int) (int, error) {
	if m.scalar == nil {
		return m.reducer.Reduce(st, size)
	}
	return m.reduceScalar(st, size)
}

// reduceScalar reduces directly: the value is at most a few chunks wide
// (one reduced chunk squared spans two), so assembling it in memory is
// cheap. The stale tail is rewritten to zero so the file matches the
// returned size.
func (m *Modulus) reduceScalar(st types.Store, size int) (int, error) {
	v, err := ReadNumber(st, 0, size)
	if err != nil {
		return 0, err
	}
	v.Mod(v, m.scalar)
	if err := st.WriteChunk(0, v); err != nil {
		return 0, err
	}
	zero := new(big.Int)
	for i := 1; i < size; i++ {
		if err := st.WriteChunk(i, zero); err != nil {
			return 0, err
		}
	}
	return 1, nil
}
