package main

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var exportLevel int

func init() {
	cmd := newExportCmd()
	cmd.Flags().IntVar(&exportLevel, "level", int(zstd.SpeedDefault), "zstd compression level (1-4, fastest to best)")
	rootCmd.AddCommand(cmd)
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file> <out.zst>",
		Short: "Write a zstd-compressed snapshot of a chunk file",
		Long: `The export command compresses a residue or chunk file with zstd.
Chunk files of partially reduced values are mostly low-entropy padding and
compress well, which makes snapshots practical to archive or ship.

Example:
  fermatctl export residue.chunks residue.chunks.zst`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args)
		},
	}
}

func runExport(args []string) error {
	src, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open %s: %w", args[0], err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", args[0], err)
	}

	out, err := os.Create(args[1])
	if err != nil {
		return fmt.Errorf("create %s: %w", args[1], err)
	}
	defer out.Close()

	enc, err := zstd.NewWriter(out, zstd.WithEncoderLevel(zstd.EncoderLevel(exportLevel)))
	if err != nil {
		return fmt.Errorf("zstd writer: %w", err)
	}
	if _, err := io.Copy(enc, src); err != nil {
		_ = enc.Close()
		return fmt.Errorf("compress %s: %w", args[0], err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flush %s: %w", args[1], err)
	}

	outInfo, err := out.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", args[1], err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"src":              args[0],
			"out":              args[1],
			"bytes":            info.Size(),
			"compressed_bytes": outInfo.Size(),
		})
	}
	p := message.NewPrinter(language.English)
	printInfo("%s: %s bytes -> %s bytes\n", args[1],
		p.Sprintf("%d", info.Size()), p.Sprintf("%d", outInfo.Size()))
	return nil
}
