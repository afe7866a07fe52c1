//go:build darwin

package chunkio

import (
	"os"

	"golang.org/x/sys/unix"
)

// fdatasync performs file descriptor sync.
//
// macOS has no fdatasync; F_FULLFSYNC ensures data reaches the physical
// disk rather than just the drive cache.
func fdatasync(f *os.File) error {
	_, err := unix.FcntlInt(f.Fd(), unix.F_FULLFSYNC, 0)
	return err
}
