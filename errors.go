package galois

import "github.com/pkg/errors"

// ErrAbort is returned (or wrapped) by an operator to request that its
// own task be aborted and retried. It is never surfaced to the caller
// of for_each_ordered_spec; the executor converts it into a rollback.
var ErrAbort = errors.New("galois: operator requested abort")

// IsAbort reports whether err is, or wraps, ErrAbort.
func IsAbort(err error) bool {
	return errors.Is(err, ErrAbort)
}

// invariantViolation builds the diagnostic message for a fatal
// invariant failure (§7): removing a non-tail sharer on abort or a
// non-head sharer on commit.
func invariantViolation(format string, args ...interface{}) error {
	return errors.Errorf("galois: invariant violation: "+format, args...)
}
