package chunkio

import (
	"fmt"
	"math/big"

	"github.com/pepinlabs/fermatkit/internal/buf"
	"github.com/pepinlabs/fermatkit/internal/mmfile"
	"github.com/pepinlabs/fermatkit/pkg/types"
)

// MappedStore is a read-only chunk store over a memory mapping of a file.
// The squaring pass reads every source chunk O(size) times, so mapping the
// source once beats issuing pread calls per chunk pair. It implements only
// types.Reader: the mapping is immutable.
type MappedStore struct {
	data  []byte
	unmap func() error
	geom  types.Geometry
}

// OpenMapped maps the chunk file at path read-only. The file may be shorter
// than the logical chunk count; the missing tail reads as zero.
func OpenMapped(path string, geom types.Geometry) (*MappedStore, error) {
	if !geom.Valid() {
		return nil, types.ConfigError("chunk geometry is not initialized")
	}
	data, unmap, err := mmfile.Map(path)
	if err != nil {
		return nil, types.IOError("map chunk file "+path, err)
	}
	return &MappedStore{data: data, unmap: unmap, geom: geom}, nil
}

// Geometry returns the store's chunk geometry.
func (s *MappedStore) Geometry() types.Geometry { return s.geom }

// ReadChunk decodes the chunk at index straight out of the mapping.
func (s *MappedStore) ReadChunk(index int) (*big.Int, error) {
	if index < 0 {
		return nil, &types.Error{Kind: types.ErrKindCorrupt, Msg: fmt.Sprintf("negative chunk index %d", index)}
	}
	w := s.geom.Width()
	off := index * w
	if off >= len(s.data) {
		return new(big.Int), nil
	}
	end := off + w
	if end > len(s.data) {
		end = len(s.data)
	}
	return buf.BigLE(s.data[off:end]), nil
}

// Close releases the mapping. Safe to call twice.
func (s *MappedStore) Close() error {
	if s.unmap == nil {
		return nil
	}
	err := s.unmap()
	s.unmap = nil
	s.data = nil
	return err
}
