package chunkio

import (
	"os"

	"github.com/pepinlabs/fermatkit/pkg/types"
)

// Rename atomically relabels a chunk file. Ownership of "which file holds
// the live value" transfers by rename, never by content copy.
func Rename(oldPath, newPath string) error {
	if err := os.Rename(oldPath, newPath); err != nil {
		return types.IOError("rename "+oldPath+" to "+newPath, err)
	}
	return nil
}

// Remove deletes a chunk file. A missing file is not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return types.IOError("remove "+path, err)
	}
	return nil
}
