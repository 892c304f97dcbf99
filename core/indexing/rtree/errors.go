package rtree

import "errors"

// Sentinel errors returned by this package. Callers should match with
// errors.Is, since operation-specific detail is added by wrapping these
// with fmt.Errorf("...: %w", ErrX).
var (
	// ErrInvalidArgument is returned for bad construction parameters or
	// malformed queries.
	ErrInvalidArgument = errors.New("rtree: invalid argument")

	// ErrLockTimeout is returned when a reader or writer could not
	// acquire the index lock within its configured deadline.
	ErrLockTimeout = errors.New("rtree: lock acquisition timed out")

	// ErrNotFound is returned by Delete when the given payload is not
	// currently indexed.
	ErrNotFound = errors.New("rtree: payload not found")

	// ErrDuplicatePayload is returned by Add when the given payload is
	// already indexed.
	ErrDuplicatePayload = errors.New("rtree: payload already indexed")

	// ErrInconsistentTree signals a violated internal invariant (e.g. a
	// node id with no entry in the node table). It indicates a bug in
	// this package rather than caller error, but is returned rather than
	// panicked so a library caller is not forced to crash the host
	// process over it.
	ErrInconsistentTree = errors.New("rtree: internal tree invariant violated")
)
