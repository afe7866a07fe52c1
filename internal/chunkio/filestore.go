package chunkio

import (
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/pepinlabs/fermatkit/internal/buf"
	"github.com/pepinlabs/fermatkit/pkg/types"
)

// FileStore is a chunk store backed by a single read-write file handle.
// The handle is opened once and reused across chunk operations; reads use
// ReadAt and writes use WriteAt, so no seek state is shared.
type FileStore struct {
	f    *os.File
	path string
	geom types.Geometry
}

// OpenFile opens (creating if absent) the chunk file at path.
func OpenFile(path string, geom types.Geometry) (*FileStore, error) {
	if !geom.Valid() {
		return nil, types.ConfigError("chunk geometry is not initialized")
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, types.IOError("open chunk file "+path, err)
	}
	return &FileStore{f: f, path: path, geom: geom}, nil
}

// Geometry returns the store's chunk geometry.
func (s *FileStore) Geometry() types.Geometry { return s.geom }

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// ReadChunk reads the chunk at index. Bytes past the end of the file are
// treated as zero, so a short or empty read is not an error.
func (s *FileStore) ReadChunk(index int) (*big.Int, error) {
	if s.f == nil {
		return nil, types.ErrClosed
	}
	if index < 0 {
		return nil, &types.Error{Kind: types.ErrKindCorrupt, Msg: fmt.Sprintf("negative chunk index %d", index)}
	}
	w := s.geom.Width()
	raw := make([]byte, w)
	_, err := s.f.ReadAt(raw, int64(index)*int64(w))
	if err != nil && err != io.EOF {
		return nil, types.IOError(fmt.Sprintf("read chunk %d of %s", index, s.path), err)
	}
	// raw[n:] keeps its zero fill on a short read.
	return buf.BigLE(raw), nil
}

// WriteChunk writes v at index as exactly W little-endian bytes. Writing
// past the current end of file leaves an implicit-zero gap behind it.
func (s *FileStore) WriteChunk(index int, v *big.Int) error {
	if s.f == nil {
		return types.ErrClosed
	}
	if index < 0 {
		return &types.Error{Kind: types.ErrKindCorrupt, Msg: fmt.Sprintf("negative chunk index %d", index)}
	}
	w := s.geom.Width()
	raw := make([]byte, w)
	if !buf.PutBigLE(raw, v) {
		return &types.Error{Kind: types.ErrKindCorrupt, Msg: fmt.Sprintf("chunk value does not fit %d bytes", w)}
	}
	if _, err := s.f.WriteAt(raw, int64(index)*int64(w)); err != nil {
		return types.IOError(fmt.Sprintf("write chunk %d of %s", index, s.path), err)
	}
	return nil
}

// Clear truncates the backing file to zero length.
func (s *FileStore) Clear() error {
	if s.f == nil {
		return types.ErrClosed
	}
	if err := s.f.Truncate(0); err != nil {
		return types.IOError("truncate "+s.path, err)
	}
	return nil
}

// Sync flushes written chunks to stable storage. Uses fdatasync where the
// platform has it (see sync_*.go).
func (s *FileStore) Sync() error {
	if s.f == nil {
		return types.ErrClosed
	}
	if err := fdatasync(s.f); err != nil {
		return types.IOError("sync "+s.path, err)
	}
	return nil
}

// Close releases the file handle. Safe to call twice.
func (s *FileStore) Close() error {
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	if err != nil {
		return types.IOError("close "+s.path, err)
	}
	return nil
}
