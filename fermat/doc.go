// Package fermat is the public facade of fermatkit: it binds a Fermat-form
// modulus F_n = 2^(2^n) + 1 to a chunk geometry, selects the reduction
// regime the geometry permits, and drives the repeated square-and-reduce
// loop over file-backed chunk stores.
//
// A value being tested never exists in memory as a whole; it lives in a
// flat chunk file and every arithmetic pass touches a bounded number of
// chunks at a time.
package fermat
