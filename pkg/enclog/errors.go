package enclog

import "errors"

// Sentinel errors.
var (
	// ErrVersionMismatch is returned under WithStrictVersion when BEGIN_LOG
	// carries an unsupported log format version. Positional field offsets
	// are tied to the format version; processing a mismatched file silently
	// risks corrupt output.
	ErrVersionMismatch = errors.New("unsupported encounter log version")

	// ErrSessionClosed is returned when feeding lines after Close.
	ErrSessionClosed = errors.New("session closed")

	// ErrNoLogFile is returned by Watch when no encounter log exists yet.
	ErrNoLogFile = errors.New("no encounter log file found")
)
