package buf

import (
	"bytes"
	"math/big"
	"testing"
)

func TestBigLERoundTrip(t *testing.T) {
	cases := []struct {
		width int
		value string
	}{
		{1, "0"},
		{1, "1"},
		{1, "255"},
		{2, "256"},
		{2, "65535"},
		{4, "305419896"}, // 0x12345678
		{8, "18446744073709551615"},
		{16, "340282366920938463463374607431768211455"},
	}
	for _, tc := range cases {
		v, ok := new(big.Int).SetString(tc.value, 10)
		if !ok {
			t.Fatalf("bad test value %q", tc.value)
		}
		raw := make([]byte, tc.width)
		if !PutBigLE(raw, v) {
			t.Fatalf("PutBigLE(%s) into %d bytes failed", tc.value, tc.width)
		}
		got := BigLE(raw)
		if got.Cmp(v) != 0 {
			t.Fatalf("round trip %s: got %s", tc.value, got)
		}
	}
}

func TestBigLEByteOrder(t *testing.T) {
	raw := make([]byte, 4)
	if !PutBigLE(raw, big.NewInt(0x12345678)) {
		t.Fatalf("PutBigLE failed")
	}
	if !bytes.Equal(raw, []byte{0x78, 0x56, 0x34, 0x12}) {
		t.Fatalf("unexpected encoding: %x", raw)
	}
}

func TestPutBigLEDoesNotFit(t *testing.T) {
	raw := make([]byte, 1)
	if PutBigLE(raw, big.NewInt(256)) {
		t.Fatalf("256 should not fit one byte")
	}
	if PutBigLE(raw, big.NewInt(-1)) {
		t.Fatalf("negative values should be rejected")
	}
	if !PutBigLE(raw, big.NewInt(255)) {
		t.Fatalf("255 should fit one byte")
	}
}

func TestBigLEEmpty(t *testing.T) {
	if BigLE(nil).Sign() != 0 {
		t.Fatalf("empty slice should decode to zero")
	}
}

func TestU64LE(t *testing.T) {
	data := []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}
	if got := U64LE(data); got != 0xefcdab8967452301 {
		t.Fatalf("U64LE = 0x%x, want 0xefcdab8967452301", got)
	}
	if U64LE(data[:7]) != 0 {
		t.Fatalf("short read should return 0")
	}
	out := make([]byte, 8)
	if !PutU64LE(out, 0xefcdab8967452301) {
		t.Fatalf("PutU64LE failed")
	}
	if !bytes.Equal(out, data) {
		t.Fatalf("unexpected encoding: %x", out)
	}
	if PutU64LE(out[:7], 1) {
		t.Fatalf("short buffer should be rejected")
	}
}
