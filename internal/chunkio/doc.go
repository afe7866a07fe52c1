// Package chunkio implements the chunk store contract from pkg/types over
// three substrates: a file opened for random access (FileStore), a
// read-only memory mapping of a file (MappedStore), and an in-memory byte
// matrix used by tests (MemStore).
//
// All stores share the same on-disk shape: chunk i occupies bytes
// [i·W, i·W+W) as a little-endian unsigned integer, files are never
// pre-extended, and any region beyond the written end reads as zero.
package chunkio
