// Package arith implements the chunk-level arithmetic kernel: schoolbook
// squaring with explicit carry threading, the Fermat fold-back reducer as
// a state machine over named MSC cases, and a streaming byte-wise
// ripple-carry adder.
//
// Every routine works through the store interfaces in pkg/types and never
// materializes more than a handful of chunks at a time; the operands live
// on whatever substrate the store provides.
package arith
