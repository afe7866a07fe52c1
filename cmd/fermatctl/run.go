package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/cheggaaa/pb"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pepinlabs/fermatkit/fermat"
	"github.com/pepinlabs/fermatkit/internal/chunkio"
)

var (
	runExponent   uint
	runChunkSize  int
	runBase       uint64
	runWorkdir    string
	runOut        string
	runConfigPath string
	runNoProgress bool
)

func init() {
	cmd := newRunCmd()
	cmd.Flags().UintVarP(&runExponent, "exponent", "n", 3, "Fermat exponent n; the run squares 2^n times")
	cmd.Flags().IntVar(&runChunkSize, "chunk-size", 1<<20, "Chunk width in bytes (power of two)")
	cmd.Flags().Uint64Var(&runBase, "base", fermat.DefaultBase, "Base value of the iteration")
	cmd.Flags().StringVar(&runWorkdir, "workdir", ".", "Directory for the backing chunk files")
	cmd.Flags().StringVar(&runOut, "out", "", "Rename the final residue file to this path")
	cmd.Flags().StringVar(&runConfigPath, "config", "", "YAML run configuration file")
	cmd.Flags().BoolVar(&runNoProgress, "no-progress", false, "Disable the progress bar")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the square-and-reduce loop for F_n",
		Long: `The run command iterates base^2 mod F_n exactly 2^n times over
file-backed chunk stores and reports the final residue.

Example:
  fermatctl run -n 14 --chunk-size 1048576 --workdir /scratch
  fermatctl run --config pepin.yaml --out residue.chunks`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun()
		},
	}
}

func runRun() error {
	if runConfigPath != "" {
		if err := applyRunConfig(runConfigPath); err != nil {
			return err
		}
	}

	opts := fermat.Options{
		Exponent:   runExponent,
		ChunkWidth: runChunkSize,
		Base:       runBase,
		WorkDir:    runWorkdir,
	}
	if verbose {
		opts.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	var bar *pb.ProgressBar
	if !quiet && !runNoProgress {
		bar = pb.StartNew(1 << runExponent)
		opts.Progress = func(iteration, size int) {
			bar.Increment()
		}
	}

	runner, err := fermat.New(opts)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Run()
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	p := message.NewPrinter(language.English)
	printVerbose("Iterations: %s\n", p.Sprintf("%d", res.Iterations))
	residue := ""
	if res.Residue != nil {
		residue = res.Residue.String()
		printInfo("Residue: %s (size %d)\n", residue, res.Size)
	} else {
		printInfo("Residue: too large to display (%s chunks)\n", p.Sprintf("%d", res.Size))
	}

	livePath := runner.LivePath()
	scratchPath := runner.ScratchPath()
	if err := runner.Close(); err != nil {
		return err
	}
	if runOut != "" {
		if err := chunkio.Rename(livePath, runOut); err != nil {
			return err
		}
		if err := chunkio.Remove(scratchPath); err != nil {
			return err
		}
		printVerbose("Residue file: %s\n", runOut)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"exponent":   runExponent,
			"iterations": res.Iterations,
			"size":       res.Size,
			"residue":    residue,
			"out":        runOut,
		})
	}
	return nil
}
