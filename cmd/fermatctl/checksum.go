package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/zeebo/blake3"
)

func init() {
	rootCmd.AddCommand(newChecksumCmd())
}

func newChecksumCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checksum <file>...",
		Short: "Print BLAKE3 digests of chunk files",
		Long: `The checksum command hashes chunk files with BLAKE3. Useful for
comparing residue files between runs or after moving them between hosts,
since multi-gigabyte operands are impractical to diff directly.

Example:
  fermatctl checksum residue.chunks backup/residue.chunks`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChecksum(args)
		},
	}
}

func runChecksum(args []string) error {
	sums := make(map[string]string, len(args))
	for _, path := range args {
		sum, err := hashFile(path)
		if err != nil {
			return err
		}
		sums[path] = sum
		if !jsonOut {
			printInfo("%s  %s\n", sum, path)
		}
	}
	if jsonOut {
		return printJSON(sums)
	}
	return nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := blake3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
