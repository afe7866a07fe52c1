package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func resetRunFlags() {
	runExponent = 3
	runChunkSize = 1 << 20
	runBase = 3
	runWorkdir = "."
	runOut = ""
}

func TestApplyRunConfigOverlaysAllFields(t *testing.T) {
	resetRunFlags()
	path := writeConfig(t, `
exponent: 14
chunk_size: 4096
base: 5
workdir: /scratch
out: residue.chunks
`)
	require.NoError(t, applyRunConfig(path))
	assert.Equal(t, uint(14), runExponent)
	assert.Equal(t, 4096, runChunkSize)
	assert.Equal(t, uint64(5), runBase)
	assert.Equal(t, "/scratch", runWorkdir)
	assert.Equal(t, "residue.chunks", runOut)
}

func TestApplyRunConfigKeepsUnsetFlags(t *testing.T) {
	resetRunFlags()
	path := writeConfig(t, "exponent: 7\n")
	require.NoError(t, applyRunConfig(path))
	assert.Equal(t, uint(7), runExponent)
	assert.Equal(t, 1<<20, runChunkSize)
	assert.Equal(t, uint64(3), runBase)
	assert.Equal(t, ".", runWorkdir)
	assert.Empty(t, runOut)
}

func TestApplyRunConfigZeroValuesStillWin(t *testing.T) {
	// An explicit value in the file overrides the flag even when it equals
	// the Go zero value; only absent keys fall through.
	resetRunFlags()
	path := writeConfig(t, "out: \"\"\nworkdir: \"\"\n")
	runOut = "preset.chunks"
	runWorkdir = "/preset"
	require.NoError(t, applyRunConfig(path))
	assert.Empty(t, runOut)
	assert.Empty(t, runWorkdir)
}

func TestApplyRunConfigErrors(t *testing.T) {
	resetRunFlags()
	assert.Error(t, applyRunConfig(filepath.Join(t.TempDir(), "missing.yaml")))

	bad := writeConfig(t, "exponent: [not, a, number]\n")
	assert.Error(t, applyRunConfig(bad))
}
