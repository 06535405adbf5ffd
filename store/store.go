// Package store provides the ordered backends behind an ordcache index.
//
// A Store maps an order value (timestamp, sequence number, priority) to the
// bucket of cache keys that currently share it. It is a pure ordered
// associative container: it never merges buckets on insert and has no
// knowledge of the hash index layered on top of it.
//
// # Backends
//
// Memory keeps buckets in an in-memory B-tree and never fails. Bolt keeps
// buckets in a bbolt database, encoding order values with an order-preserving
// KeyEncoding and bucket contents with a codec so that the byte-sorted
// database iterates in order-value order.
//
// # Errors
//
// Unlike a lossy cache, backend failures are surfaced: a bucket that cannot
// be read or decoded yields a non-nil error, never a silent "absent".
package store

import "cmp"

// Store maps an order value to the non-empty bucket of cache keys sharing
// that order. Implementations must keep buckets sorted by order value so Min
// and Max are exact.
//
// Insert performs a raw replace, never a merge: callers fold in any existing
// bucket before writing. Buckets returned by Get, Min, Max and Remove are
// owned by the caller; implementations must not retain or alias them.
// Conversely, Insert takes ownership of the slice it is given.
//
// Primitive operations are individually safe for concurrent use where the
// backing storage supports it, but multi-step sequences are not atomic.
type Store[O cmp.Ordered, K comparable] interface {
	// Len reports the number of distinct order values (not total cache keys).
	Len() (int, error)

	// Min returns the smallest order value and its bucket.
	// ok is false when the store is empty.
	Min() (order O, keys []K, ok bool, err error)

	// Max returns the largest order value and its bucket.
	Max() (order O, keys []K, ok bool, err error)

	// Get returns the bucket stored under order.
	Get(order O) (keys []K, ok bool, err error)

	// Insert replaces the bucket under order, returning the previous bucket
	// if one existed.
	Insert(order O, keys []K) (prev []K, ok bool, err error)

	// Remove deletes the bucket under order, returning it if present.
	Remove(order O) (keys []K, ok bool, err error)

	// Clear drops every bucket.
	Clear() error
}
