package types

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindIO      ErrKind = iota // open/seek/read/write failure on a chunk file
	ErrKindConfig                 // invalid geometry or modulus parameters
	ErrKindState                  // invalid operation for the store's state (e.g. read-only)
	ErrKindCorrupt                // arithmetic invariant violated (e.g. borrow escaped its window)
)

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// IOError wraps err as an I/O failure during op. All I/O errors are fatal
// to the current run; there is no retry or partial checkpoint.
func IOError(op string, err error) *Error {
	return &Error{Kind: ErrKindIO, Msg: op, Err: err}
}

// ConfigError reports an invalid configuration value.
func ConfigError(msg string) *Error {
	return &Error{Kind: ErrKindConfig, Msg: msg}
}

// Sentinels commonly returned by implementations.
var (
	// ErrReadonly indicates a mutation was attempted on a read-only store.
	ErrReadonly = &Error{Kind: ErrKindState, Msg: "store is read-only"}
	// ErrClosed indicates an operation on a closed store.
	ErrClosed = &Error{Kind: ErrKindState, Msg: "store is closed"}
	// ErrCorrupt indicates an arithmetic invariant did not hold.
	ErrCorrupt = &Error{Kind: ErrKindCorrupt, Msg: "chunk arithmetic invariant violated"}
)
