package fermat_test

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pepinlabs/fermatkit/fermat"
	"github.com/pepinlabs/fermatkit/internal/chunkio"
	"github.com/pepinlabs/fermatkit/internal/testutil"
	"github.com/pepinlabs/fermatkit/pkg/types"
)

func TestNewModulusRegimeSelection(t *testing.T) {
	cases := []struct {
		n       uint
		width   int
		folded  bool
		maxSize int
		value   int64
	}{
		{n: 0, width: 1, folded: false, maxSize: 1, value: 3},
		{n: 2, width: 1, folded: false, maxSize: 1, value: 17},
		{n: 3, width: 1, folded: true, maxSize: 1, value: 257},
		{n: 4, width: 1, folded: true, maxSize: 2, value: 65537},
		{n: 3, width: 2, folded: false, maxSize: 1, value: 257},
		{n: 4, width: 2, folded: true, maxSize: 1, value: 65537},
		{n: 5, width: 4, folded: true, maxSize: 1, value: 4294967297},
	}
	for _, c := range cases {
		geom := testutil.Geom(t, c.width)
		m, err := fermat.NewModulus(c.n, geom)
		require.NoError(t, err, "n=%d width=%d", c.n, c.width)
		assert.Equal(t, c.n, m.N())
		assert.Equal(t, c.folded, m.Folded(), "n=%d width=%d", c.n, c.width)
		assert.Equal(t, c.maxSize, m.MaxSize(), "n=%d width=%d", c.n, c.width)
		assert.Equal(t, c.value, m.Value().Int64(), "n=%d width=%d", c.n, c.width)
		assert.Equal(t, (1<<c.n)+1, m.BitLen())
	}
}

func TestNewModulusRejectsHugeExponent(t *testing.T) {
	geom := testutil.Geom(t, 1)
	_, err := fermat.NewModulus(fermat.MaxExponent+1, geom)
	assert.Error(t, err)
}

func TestNewModulusRejectsBadGeometry(t *testing.T) {
	_, err := fermat.NewModulus(3, types.Geometry{})
	assert.Error(t, err)
}

func TestModulusReduceScalarRegime(t *testing.T) {
	geom := testutil.Geom(t, 2)
	m, err := fermat.NewModulus(3, geom) // F_3 = 257 inside one 16-bit chunk
	require.NoError(t, err)
	require.False(t, m.Folded())

	rng := rand.New(rand.NewSource(11))
	values := []*big.Int{
		big.NewInt(0),
		big.NewInt(256),
		big.NewInt(257),
		big.NewInt(258),
		new(big.Int).Mul(big.NewInt(257), big.NewInt(1000003)),
	}
	for i := 0; i < 25; i++ {
		values = append(values, new(big.Int).Rand(rng, new(big.Int).Lsh(big.NewInt(1), 64)))
	}

	mod := m.Value()
	for _, v := range values {
		st := chunkio.NewMem(geom)
		size := testutil.PutNumber(t, st, v)

		outSize, err := m.Reduce(st, size)
		require.NoError(t, err)
		require.Equal(t, 1, outSize)

		want := new(big.Int).Mod(v, mod)
		got := testutil.GetNumber(t, st, outSize)
		assert.Zero(t, got.Cmp(want), "v=%s", v)

		// The stale tail above the reduced value must read back zero.
		tail, err := fermat.ReadNumber(st, 1, size)
		require.NoError(t, err)
		assert.Zero(t, tail.Sign(), "v=%s", v)
	}
}

func TestModulusReduceFoldRegime(t *testing.T) {
	geom := testutil.Geom(t, 1)
	m, err := fermat.NewModulus(4, geom) // F_4 = 65537, window 2 at W=1
	require.NoError(t, err)
	require.True(t, m.Folded())
	require.Equal(t, 2, m.MaxSize())

	rng := rand.New(rand.NewSource(23))
	mod := m.Value()
	for trial := 0; trial < 40; trial++ {
		v := new(big.Int).Rand(rng, new(big.Int).Lsh(big.NewInt(1), 40))
		st := chunkio.NewMem(geom)
		size := testutil.PutNumber(t, st, v)

		outSize, err := m.Reduce(st, size)
		require.NoError(t, err)
		require.LessOrEqual(t, outSize, m.MaxSize()+1)

		got := testutil.GetNumber(t, st, outSize)
		diff := new(big.Int).Sub(got, v)
		require.Zero(t, new(big.Int).Mod(diff, mod).Sign(), "v=%s got=%s", v, got)
	}
}
