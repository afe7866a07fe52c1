package chunkio

import (
	"fmt"
	"math/big"

	"github.com/pepinlabs/fermatkit/internal/buf"
	"github.com/pepinlabs/fermatkit/pkg/types"
)

// MemStore is an in-memory chunk store with the same zero-extension
// semantics as FileStore. It exists for tests and keeps the encoded W-byte
// form of every chunk so codec round-trips are exercised on every access.
type MemStore struct {
	geom   types.Geometry
	chunks [][]byte
}

// NewMem returns an empty in-memory store.
func NewMem(geom types.Geometry) *MemStore {
	return &MemStore{geom: geom}
}

// Geometry returns the store's chunk geometry.
func (s *MemStore) Geometry() types.Geometry { return s.geom }

// Len returns the number of chunk slots allocated so far.
func (s *MemStore) Len() int { return len(s.chunks) }

// ReadChunk returns the chunk at index; slots never written read as zero.
func (s *MemStore) ReadChunk(index int) (*big.Int, error) {
	if index < 0 {
		return nil, &types.Error{Kind: types.ErrKindCorrupt, Msg: fmt.Sprintf("negative chunk index %d", index)}
	}
	if index >= len(s.chunks) || s.chunks[index] == nil {
		return new(big.Int), nil
	}
	return buf.BigLE(s.chunks[index]), nil
}

// WriteChunk stores v at index, growing the slot table as needed.
func (s *MemStore) WriteChunk(index int, v *big.Int) error {
	if index < 0 {
		return &types.Error{Kind: types.ErrKindCorrupt, Msg: fmt.Sprintf("negative chunk index %d", index)}
	}
	raw := make([]byte, s.geom.Width())
	if !buf.PutBigLE(raw, v) {
		return &types.Error{Kind: types.ErrKindCorrupt, Msg: fmt.Sprintf("chunk value does not fit %d bytes", s.geom.Width())}
	}
	for index >= len(s.chunks) {
		s.chunks = append(s.chunks, nil)
	}
	s.chunks[index] = raw
	return nil
}

// Clear drops all chunks.
func (s *MemStore) Clear() error {
	s.chunks = nil
	return nil
}
