package fermat

import (
	"math/big"

	"github.com/pepinlabs/fermatkit/internal/buf"
	"github.com/pepinlabs/fermatkit/pkg/types"
)

// WriteNumber writes v as consecutive chunks of st starting at start,
// returning the number of chunks written (at least 1, so zero still
// occupies a slot).
func WriteNumber(st types.Store, start int, v *big.Int) (int, error) {
	if v.Sign() < 0 {
		return 0, types.ConfigError("chunked integers are non-negative")
	}
	w := st.Geometry().Width()
	chunks := ((v.BitLen()+7)/8 + w - 1) / w
	if chunks == 0 {
		chunks = 1
	}
	raw := make([]byte, chunks*w)
	buf.PutBigLE(raw, v)
	for i := 0; i < chunks; i++ {
		if err := st.WriteChunk(start+i, buf.BigLE(raw[i*w:(i+1)*w])); err != nil {
			return 0, err
		}
	}
	return chunks, nil
}

// ReadNumber reads size chunks of st starting at start and assembles them
// into a single integer. Chunks beyond the store's written end contribute
// zero.
func ReadNumber(st types.Reader, start, size int) (*big.Int, error) {
	shift := uint(st.Geometry().Width()) * 8
	acc := new(big.Int)
	for i := start + size - 1; i >= start; i-- {
		c, err := st.ReadChunk(i)
		if err != nil {
			return nil, err
		}
		acc.Lsh(acc, shift)
		acc.Add(acc, c)
	}
	return acc, nil
}
