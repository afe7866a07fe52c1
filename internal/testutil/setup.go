// Package testutil provides shared setup helpers for fermatkit tests.
package testutil

import (
	"math/big"
	"path/filepath"
	"testing"

	"github.com/pepinlabs/fermatkit/internal/buf"
	"github.com/pepinlabs/fermatkit/internal/chunkio"
	"github.com/pepinlabs/fermatkit/pkg/types"
)

// Geom returns a validated geometry or fails the test.
func Geom(t *testing.T, width int) types.Geometry {
	t.Helper()
	g, err := types.NewGeometry(width)
	if err != nil {
		t.Fatalf("NewGeometry(%d): %v", width, err)
	}
	return g
}

// TempFileStore opens a chunk file named name in a per-test temp directory
// and closes it when the test finishes.
func TempFileStore(t *testing.T, geom types.Geometry, name string) *chunkio.FileStore {
	t.Helper()
	st, err := chunkio.OpenFile(filepath.Join(t.TempDir(), name), geom)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// PutNumber writes v across consecutive chunks of st starting at 0 and
// returns the chunk count used (at least 1).
func PutNumber(t *testing.T, st types.Store, v *big.Int) int {
	t.Helper()
	w := st.Geometry().Width()
	chunks := (len(v.Bytes()) + w - 1) / w
	if chunks == 0 {
		chunks = 1
	}
	raw := make([]byte, chunks*w)
	if !buf.PutBigLE(raw, v) {
		t.Fatalf("PutNumber: value does not fit %d chunks", chunks)
	}
	for i := 0; i < chunks; i++ {
		if err := st.WriteChunk(i, buf.BigLE(raw[i*w:(i+1)*w])); err != nil {
			t.Fatalf("WriteChunk(%d): %v", i, err)
		}
	}
	return chunks
}

// GetNumber reads size chunks of st starting at 0 back as one integer.
func GetNumber(t *testing.T, st types.Reader, size int) *big.Int {
	t.Helper()
	shift := uint(st.Geometry().Width()) * 8
	acc := new(big.Int)
	for i := size - 1; i >= 0; i-- {
		c, err := st.ReadChunk(i)
		if err != nil {
			t.Fatalf("ReadChunk(%d): %v", i, err)
		}
		acc.Lsh(acc, shift)
		acc.Add(acc, c)
	}
	return acc
}
