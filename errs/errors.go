// Package errs defines the four error classes every storage component
// reports against: IO, OOM, usage, and corruption. Components wrap one
// of these sentinels with github.com/pkg/errors so a caller can recover
// the class with errors.Is while still getting a useful message and
// stack via errors.Wrap.
package errs

import "github.com/pkg/errors"

var (
	// ErrIO covers short reads/writes, failed seeks, and failed fsyncs.
	// Dirty state is preserved by the caller so a retry is possible.
	ErrIO = errors.New("storage: io error")

	// ErrOOM covers allocation failure, e.g. the WAL replay buffer.
	ErrOOM = errors.New("storage: out of memory")

	// ErrUsage covers local-contract violations: insufficient page free
	// space, an out-of-range slot, deleting a missing hash key, nil
	// arguments to a row-level op. The operation is a no-op.
	ErrUsage = errors.New("storage: usage error")

	// ErrCorruption covers on-disk checksum failures.
	ErrCorruption = errors.New("storage: corruption detected")
)

// Wrap attaches msg to err while keeping errors.Is(err, sentinel) working
// for any of the sentinels above.
func Wrap(err error, msg string) error {
	return errors.Wrap(err, msg)
}

// Wrapf is Wrap with fmt-style formatting.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}
