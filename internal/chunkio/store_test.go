package chunkio

import (
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pepinlabs/fermatkit/pkg/types"
)

func testGeom(t *testing.T, width int) types.Geometry {
	t.Helper()
	g, err := types.NewGeometry(width)
	require.NoError(t, err)
	return g
}

func TestFileStoreReadWrite(t *testing.T) {
	geom := testGeom(t, 4)
	st, err := OpenFile(filepath.Join(t.TempDir(), "test.chunks"), geom)
	require.NoError(t, err)
	defer st.Close()

	// Writing chunk 3 leaves an implicit-zero gap below it.
	require.NoError(t, st.WriteChunk(3, big.NewInt(0xCAFE)))

	for i := 0; i < 3; i++ {
		v, err := st.ReadChunk(i)
		require.NoError(t, err)
		assert.Zero(t, v.Sign(), "chunk %d should be zero", i)
	}
	v, err := st.ReadChunk(3)
	require.NoError(t, err)
	assert.Equal(t, int64(0xCAFE), v.Int64())

	// Reads past the end of file are zero chunks, not errors.
	v, err = st.ReadChunk(100)
	require.NoError(t, err)
	assert.Zero(t, v.Sign())
}

func TestFileStoreClear(t *testing.T) {
	geom := testGeom(t, 2)
	st, err := OpenFile(filepath.Join(t.TempDir(), "test.chunks"), geom)
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.WriteChunk(0, big.NewInt(12345)))
	require.NoError(t, st.Clear())

	v, err := st.ReadChunk(0)
	require.NoError(t, err)
	assert.Zero(t, v.Sign())
}

func TestFileStoreValueTooWide(t *testing.T) {
	geom := testGeom(t, 1)
	st, err := OpenFile(filepath.Join(t.TempDir(), "test.chunks"), geom)
	require.NoError(t, err)
	defer st.Close()

	err = st.WriteChunk(0, big.NewInt(256))
	require.Error(t, err)
	var te *types.Error
	require.True(t, errors.As(err, &te))
	assert.Equal(t, types.ErrKindCorrupt, te.Kind)
}

func TestFileStoreClosed(t *testing.T) {
	geom := testGeom(t, 1)
	st, err := OpenFile(filepath.Join(t.TempDir(), "test.chunks"), geom)
	require.NoError(t, err)
	require.NoError(t, st.Close())
	require.NoError(t, st.Close(), "double close is a no-op")

	_, err = st.ReadChunk(0)
	assert.ErrorIs(t, err, types.ErrClosed)
	assert.ErrorIs(t, st.WriteChunk(0, big.NewInt(1)), types.ErrClosed)
	assert.ErrorIs(t, st.Clear(), types.ErrClosed)
}

func TestFileStoreNegativeIndex(t *testing.T) {
	geom := testGeom(t, 1)
	st, err := OpenFile(filepath.Join(t.TempDir(), "test.chunks"), geom)
	require.NoError(t, err)
	defer st.Close()

	_, err = st.ReadChunk(-1)
	require.Error(t, err)
	assert.Error(t, st.WriteChunk(-1, big.NewInt(0)))
}

func TestMemStoreMatchesFileStore(t *testing.T) {
	geom := testGeom(t, 2)
	fs, err := OpenFile(filepath.Join(t.TempDir(), "test.chunks"), geom)
	require.NoError(t, err)
	defer fs.Close()
	ms := NewMem(geom)

	writes := map[int]int64{0: 1, 5: 0xFFFF, 2: 300, 9: 0}
	for idx, val := range writes {
		require.NoError(t, fs.WriteChunk(idx, big.NewInt(val)))
		require.NoError(t, ms.WriteChunk(idx, big.NewInt(val)))
	}
	for i := 0; i < 12; i++ {
		fv, err := fs.ReadChunk(i)
		require.NoError(t, err)
		mv, err := ms.ReadChunk(i)
		require.NoError(t, err)
		assert.Zero(t, fv.Cmp(mv), "chunk %d: file=%s mem=%s", i, fv, mv)
	}
}

func TestMappedStore(t *testing.T) {
	geom := testGeom(t, 4)
	path := filepath.Join(t.TempDir(), "test.chunks")
	fs, err := OpenFile(path, geom)
	require.NoError(t, err)
	defer fs.Close()

	require.NoError(t, fs.WriteChunk(0, big.NewInt(7)))
	require.NoError(t, fs.WriteChunk(2, big.NewInt(0xDEADBEEF)))
	require.NoError(t, fs.Sync())

	mapped, err := OpenMapped(path, geom)
	require.NoError(t, err)
	defer mapped.Close()

	for i := 0; i < 5; i++ {
		fv, err := fs.ReadChunk(i)
		require.NoError(t, err)
		mv, err := mapped.ReadChunk(i)
		require.NoError(t, err)
		assert.Zero(t, fv.Cmp(mv), "chunk %d", i)
	}
	require.NoError(t, mapped.Close())
	require.NoError(t, mapped.Close(), "double close is a no-op")
}

func TestMappedStoreEmptyFile(t *testing.T) {
	geom := testGeom(t, 4)
	path := filepath.Join(t.TempDir(), "empty.chunks")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	mapped, err := OpenMapped(path, geom)
	require.NoError(t, err)
	defer mapped.Close()

	v, err := mapped.ReadChunk(0)
	require.NoError(t, err)
	assert.Zero(t, v.Sign())
}

func TestRename(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.chunks")
	dst := filepath.Join(dir, "b.chunks")
	require.NoError(t, os.WriteFile(src, []byte{1, 2, 3}, 0o644))

	require.NoError(t, Rename(src, dst))
	_, err := os.Stat(src)
	assert.True(t, os.IsNotExist(err))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)
}

func TestRemoveMissing(t *testing.T) {
	assert.NoError(t, Remove(filepath.Join(t.TempDir(), "nope.chunks")))
}
