package arith

import (
	"io"

	"github.com/pepinlabs/fermatkit/pkg/types"
)

// DefaultBlockSize is the streaming buffer size used by Add when callers
// pass a non-positive block size.
const DefaultBlockSize = 1 << 20

// Add streams two little-endian unsigned operands and writes their
// byte-wise ripple-carry sum to out. Operand lengths are independent; the
// shorter operand is zero-extended and a final carry-out byte is appended
// when the sum grows. Returns the number of bytes written.
func Add(a, b io.Reader, out io.Writer, blockSize int) (int64, error) {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	blockA := make([]byte, blockSize)
	blockB := make([]byte, blockSize)
	sum := make([]byte, blockSize)

	var written int64
	carry := uint16(0)
	for {
		na, err := readBlock(a, blockA)
		if err != nil {
			return written, types.IOError("read first addend", err)
		}
		nb, err := readBlock(b, blockB)
		if err != nil {
			return written, types.IOError("read second addend", err)
		}
		if na == 0 && nb == 0 {
			break
		}
		n := na
		if nb > n {
			n = nb
		}
		for i := 0; i < n; i++ {
			var x, y uint16
			if i < na {
				x = uint16(blockA[i])
			}
			if i < nb {
				y = uint16(blockB[i])
			}
			s := x + y + carry
			sum[i] = byte(s)
			carry = s >> 8
		}
		if _, err := out.Write(sum[:n]); err != nil {
			return written, types.IOError("write sum block", err)
		}
		written += int64(n)
	}
	if carry > 0 {
		if _, err := out.Write([]byte{byte(carry)}); err != nil {
			return written, types.IOError("write carry-out", err)
		}
		written++
	}
	return written, nil
}

// readBlock fills block as far as the reader allows, treating end of input
// as a short (possibly empty) block.
func readBlock(r io.Reader, block []byte) (int, error) {
	n, err := io.ReadFull(r, block)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return n, nil
	}
	return n, err
}
