package access

import "errors"

var (
	// ErrCapacityExceeded reports a full scratch region, descriptor array or
	// pin table. The event must be dropped.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrArithmeticOverflow reports an overflowing buffer position or size.
	ErrArithmeticOverflow = errors.New("arithmetic overflow")

	// ErrInvalidState reports an operation called from a state that does not
	// allow it.
	ErrInvalidState = errors.New("invalid collector state")

	// ErrInvalidArgument reports a malformed call: a declared size beyond the
	// payload, a negative count or a bookmark that is not the innermost one.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEventAborted is returned by every write after the first failure of
	// the current event.
	ErrEventAborted = errors.New("event aborted")

	// ErrShortRecord is returned by SeqReader when a field runs past the record.
	ErrShortRecord = errors.New("short record")
)
