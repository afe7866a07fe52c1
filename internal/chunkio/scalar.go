package chunkio

import (
	"io"
	"math/big"
	"os"

	"github.com/pepinlabs/fermatkit/internal/buf"
	"github.com/pepinlabs/fermatkit/pkg/types"
)

// ScalarFileSize is the fixed size of a scalar fixture file: a single
// 128-bit little-endian unsigned integer.
const ScalarFileSize = 16

// WriteScalarFile writes v as exactly 16 little-endian bytes.
func WriteScalarFile(path string, v *big.Int) error {
	raw := make([]byte, ScalarFileSize)
	if !buf.PutBigLE(raw, v) {
		return types.ConfigError("scalar value does not fit in 128 bits")
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return types.IOError("write scalar file "+path, err)
	}
	return nil
}

// ReadScalarFile reads a 128-bit little-endian value. Shorter files
// zero-extend; bytes past the sixteenth are ignored.
func ReadScalarFile(path string) (*big.Int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, types.IOError("open scalar file "+path, err)
	}
	defer f.Close()

	raw := make([]byte, ScalarFileSize)
	if _, err := io.ReadFull(f, raw); err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, types.IOError("read scalar file "+path, err)
	}
	return buf.BigLE(raw), nil
}
