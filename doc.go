// Package ordcache provides an ordered cache index: O(1) lookup of a value
// by key combined with cheap access to the entry whose order value (a
// timestamp, sequence number or priority chosen independently of the key) is
// smallest or largest. It is the building block for cache eviction policies
// such as oldest-first or least-recently-used.
//
// # Structure
//
// An OrderedIndex keeps two collections in lockstep: a direct map from key to
// (order, value), and an ordered store from order value to the bucket of keys
// currently sharing that order. Every mutation maintains the bijection
// between the two, so First and Last never scan.
//
//	idx := ordcache.New[string, int64, []byte](store.NewMemory[int64, string]())
//	idx.Insert("a", data, time.Now().UnixNano())
//	ent, ok, err := idx.RemoveFirst() // evict the oldest entry
//
// # Backends
//
// The order side is pluggable through the store package: store.Memory keeps
// buckets in an in-memory B-tree, store.Bolt persists them in a bbolt
// database with codec-encoded values. The index owns its backend exclusively.
//
// # Concurrency
//
// The index performs no internal locking. Its invariant spans two
// collections, so callers must serialize mutating operations (one writer at a
// time); read-only Get/First/Last may run under a shared lock consistent with
// the backend's own guarantees.
package ordcache
