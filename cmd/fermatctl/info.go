package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pepinlabs/fermatkit/fermat"
	"github.com/pepinlabs/fermatkit/pkg/types"
)

var (
	infoExponent  uint
	infoChunkSize int
)

func init() {
	cmd := newInfoCmd()
	cmd.Flags().UintVarP(&infoExponent, "exponent", "n", 3, "Fermat exponent n")
	cmd.Flags().IntVar(&infoChunkSize, "chunk-size", 1<<20, "Chunk width in bytes (power of two)")
	rootCmd.AddCommand(cmd)
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Report the geometry a run would use",
		Long: `The info command derives the modulus parameters for a given
exponent and chunk width without touching any files: F_n's bit length,
the fold window (max_size), the reduction regime and the expected peak
file sizes.

Example:
  fermatctl info -n 20 --chunk-size 1048576`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo()
		},
	}
}

func runInfo() error {
	geom, err := types.NewGeometry(infoChunkSize)
	if err != nil {
		return err
	}
	mod, err := fermat.NewModulus(infoExponent, geom)
	if err != nil {
		return err
	}

	regime := "fold"
	if !mod.Folded() {
		regime = "scalar"
	}
	// The destination of a squaring pass can reach twice the reduced size.
	peak := int64(2) * int64(mod.MaxSize()+1) * int64(geom.Width())

	if jsonOut {
		return printJSON(map[string]interface{}{
			"exponent":        infoExponent,
			"chunk_width":     geom.Width(),
			"modulus_bits":    mod.BitLen(),
			"max_size":        mod.MaxSize(),
			"regime":          regime,
			"iterations":      int64(1) << infoExponent,
			"peak_file_bytes": peak,
		})
	}

	p := message.NewPrinter(language.English)
	printInfo("F_%d: %s bits\n", infoExponent, p.Sprintf("%d", mod.BitLen()))
	printInfo("Chunk width: %s bytes\n", p.Sprintf("%d", geom.Width()))
	printInfo("Fold window (max_size): %s chunks (%s regime)\n", p.Sprintf("%d", mod.MaxSize()), regime)
	printInfo("Iterations: %s\n", p.Sprintf("%d", int64(1)<<infoExponent))
	printInfo("Peak squaring file size: %s bytes\n", p.Sprintf("%d", peak))
	return nil
}
