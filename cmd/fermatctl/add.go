package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pepinlabs/fermatkit/internal/arith"
)

var addBlockSize int

func init() {
	cmd := newAddCmd()
	cmd.Flags().IntVar(&addBlockSize, "block-size", arith.DefaultBlockSize, "Streaming buffer size in bytes")
	rootCmd.AddCommand(cmd)
}

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <a> <b> <out>",
		Short: "Add two little-endian number files",
		Long: `The add command streams two raw little-endian unsigned number
files through a byte-wise ripple-carry adder and writes the sum. Operand
lengths are independent; a final carry-out byte is appended when the sum
grows.

Example:
  fermatctl add residue1.chunks residue2.chunks sum.bin`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(args)
		},
	}
}

func runAdd(args []string) error {
	a, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open first addend: %w", err)
	}
	defer a.Close()

	b, err := os.Open(args[1])
	if err != nil {
		return fmt.Errorf("open second addend: %w", err)
	}
	defer b.Close()

	out, err := os.Create(args[2])
	if err != nil {
		return fmt.Errorf("create sum file: %w", err)
	}
	defer out.Close()

	n, err := arith.Add(a, b, out, addBlockSize)
	if err != nil {
		return err
	}
	if err := out.Sync(); err != nil {
		return fmt.Errorf("sync sum file: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"a":     args[0],
			"b":     args[1],
			"out":   args[2],
			"bytes": n,
		})
	}
	printInfo("Wrote %d bytes to %s\n", n, args[2])
	return nil
}
