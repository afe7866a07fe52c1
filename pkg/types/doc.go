// Package types defines the public vocabulary of fermatkit: the chunk
// geometry, the store interfaces every arithmetic routine operates
// through, and the typed error categories callers can branch on.
package types
