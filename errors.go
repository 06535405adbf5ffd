package ordcache

import "errors"

var (
	// ErrCorrupted is returned when the order side of the index references a
	// key the direct side does not contain, or holds an empty bucket. This
	// cannot happen under single-writer use of the documented operations; it
	// indicates the two indexes have diverged (typically unsynchronized
	// concurrent mutation, or external writes to a persistent backend).
	ErrCorrupted = errors.New("ordcache: index corrupted")
)
