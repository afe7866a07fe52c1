package fermat

import (
	"io"
	"log/slog"
	"math/big"
	"path/filepath"

	"github.com/pepinlabs/fermatkit/internal/arith"
	"github.com/pepinlabs/fermatkit/internal/chunkio"
	"github.com/pepinlabs/fermatkit/pkg/types"
)

// DefaultBase is the base value of the iteration when Options.Base is zero.
const DefaultBase = 3

// Names of the two backing chunk files created under Options.WorkDir.
const (
	fileA = "fermat-a.chunks"
	fileB = "fermat-b.chunks"
)

// Options configures a Runner.
type Options struct {
	// Exponent is the Fermat exponent n; the run performs exactly 2^n
	// square-and-reduce iterations.
	Exponent uint
	// ChunkWidth is the chunk width W in bytes; must be a power of two.
	ChunkWidth int
	// Base is the starting value; DefaultBase when zero.
	Base uint64
	// WorkDir holds the two backing chunk files; "." when empty.
	WorkDir string
	// Logger receives per-iteration debug records; discarded when nil.
	Logger *slog.Logger
	// Progress, when set, is called after every iteration with the
	// 1-based iteration number and the reduced chunk count.
	Progress func(iteration, size int)
}

// maxResidueBytes caps the width at which a multi-chunk final value is
// still materialized for reporting. A single-chunk final value is always
// read back regardless of chunk width: one chunk is routinely held in
// memory during squaring anyway.
const maxResidueBytes = 32

// Result reports the outcome of a run.
type Result struct {
	Iterations int
	// Size is the chunk count of the final reduced value.
	Size int
	// Residue is the final value, materialized when it fits a single chunk
	// or spans at most maxResidueBytes. A wider final value is reported as
	// nil: too large to display, not an error.
	Residue *big.Int
}

// Runner drives the square-and-reduce loop over two file-backed chunk
// stores. The stores trade the live-value and scratch roles by index after
// every squaring pass; no content is ever copied between them.
type Runner struct {
	opts Options
	geom types.Geometry
	mod  *Modulus
	st   [2]*chunkio.FileStore
	live int // index into st of the store holding the live value
	log  *slog.Logger
}

// New validates opts, opens the two backing stores and prepares a run.
func New(opts Options) (*Runner, error) {
	geom, err := types.NewGeometry(opts.ChunkWidth)
	if err != nil {
		return nil, err
	}
	mod, err := NewModulus(opts.Exponent, geom)
	if err != nil {
		return nil, err
	}
	if opts.Base == 0 {
		opts.Base = DefaultBase
	}
	dir := opts.WorkDir
	if dir == "" {
		dir = "."
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	a, err := chunkio.OpenFile(filepath.Join(dir, fileA), geom)
	if err != nil {
		return nil, err
	}
	b, err := chunkio.OpenFile(filepath.Join(dir, fileB), geom)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	return &Runner{opts: opts, geom: geom, mod: mod, st: [2]*chunkio.FileStore{a, b}, log: log}, nil
}

// Modulus returns the modulus descriptor of the run.
func (r *Runner) Modulus() *Modulus { return r.mod }

// LivePath returns the path of the file currently holding the live value.
// Callers may rename it into place after Close.
func (r *Runner) LivePath() string { return r.st[r.live].Path() }

// ScratchPath returns the path of the current scratch file.
func (r *Runner) ScratchPath() string { return r.st[r.live^1].Path() }

// Close releases both backing stores.
func (r *Runner) Close() error {
	err := r.st[0].Close()
	if e := r.st[1].Close(); err == nil {
		err = e
	}
	return err
}

// Run executes 2^n iterations of square, role swap, reduce. Any I/O
// failure aborts the run; there is no partial checkpoint to resume from.
func (r *Runner) Run() (*Result, error) {
	for _, st := range r.st {
		if err := st.Clear(); err != nil {
			return nil, err
		}
	}
	size, err := WriteNumber(r.st[r.live], 0, new(big.Int).SetUint64(r.opts.Base))
	if err != nil {
		return nil, err
	}
	iters := 1 << r.opts.Exponent
	r.log.Info("starting run",
		"exponent", r.opts.Exponent,
		"chunk_width", r.geom.Width(),
		"max_size", r.mod.MaxSize(),
		"fold", r.mod.Folded(),
		"iterations", iters)

	for it := 1; it <= iters; it++ {
		if size, err = r.squareStep(size); err != nil {
			return nil, err
		}
		// The squared value becomes the live value; the old live store
		// is the next scratch and starts empty.
		r.live ^= 1
		if err := r.st[r.live^1].Clear(); err != nil {
			return nil, err
		}
		if size, err = r.mod.Reduce(r.st[r.live], size); err != nil {
			return nil, err
		}
		r.log.Debug("iteration complete", "iteration", it, "size", size)
		if r.opts.Progress != nil {
			r.opts.Progress(it, size)
		}
	}

	res := &Result{Iterations: iters, Size: size}
	if size == 1 || size*r.geom.Width() <= maxResidueBytes {
		if res.Residue, err = ReadNumber(r.st[r.live], 0, size); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// squareStep squares the live value into the scratch store. The source is
// read through a memory mapping when one can be established, since the
// schoolbook pass reads every source chunk size times; otherwise it falls
// back to positional reads on the live handle.
func (r *Runner) squareStep(size int) (int, error) {
	live, scratch := r.st[r.live], r.st[r.live^1]
	if err := live.Sync(); err != nil {
		return 0, err
	}
	if mapped, err := chunkio.OpenMapped(live.Path(), r.geom); err == nil {
		defer mapped.Close()
		return arith.Square(mapped, 0, size, scratch)
	}
	r.log.Warn("mmap unavailable, using positional reads", "path", live.Path())
	return arith.Square(live, 0, size, scratch)
}
