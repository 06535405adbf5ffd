package ordcache

import (
	"cmp"
	"fmt"
	"iter"
	"log/slog"
	"maps"
	"slices"
	"sync/atomic"

	"github.com/hupe1980/ordcache/store"
)

// indexed is the direct-side record for one key.
type indexed[O cmp.Ordered, V any] struct {
	order O
	value V
}

// OrderedIndex combines a direct map over keys with an ordered store over
// order values. The direct map is the source of truth for which keys exist;
// the store answers "which key has the smallest/largest order" without
// scanning. Keys sharing one order value live in a bucket, ordered by when
// they were added to that bucket.
//
// Mutations touch both collections and are not atomic across them: callers
// must serialize mutating calls, and on a persistent backend a mutation that
// returns a backend error may leave the order side stale relative to the
// direct side. Treat backend errors as fatal for the index.
type OrderedIndex[K comparable, O cmp.Ordered, V any] struct {
	entries map[K]indexed[O, V]
	order   store.Store[O, K]
	logger  *slog.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

// New creates an index over the given order store. The index takes exclusive
// ownership of the store; mutating it from elsewhere corrupts the index.
//
// The direct side always starts empty. A persistent store carrying buckets
// from an earlier process must be re-populated through Insert (or emptied
// with Clear) before reads, otherwise its buckets reference keys the direct
// side does not know and operations report ErrCorrupted.
func New[K comparable, O cmp.Ordered, V any](order store.Store[O, K], optFns ...Option) *OrderedIndex[K, O, V] {
	opts := applyOptions(optFns)

	return &OrderedIndex[K, O, V]{
		entries: make(map[K]indexed[O, V]),
		order:   order,
		logger:  opts.logger,
	}
}

// Len returns the number of live entries (distinct keys), not the number of
// order buckets.
func (x *OrderedIndex[K, O, V]) Len() int {
	return len(x.entries)
}

// Get returns the order and value stored under key. It reads only the direct
// map and never touches the backend.
func (x *OrderedIndex[K, O, V]) Get(key K) (O, V, bool) {
	e, ok := x.entries[key]
	if ok {
		x.hits.Add(1)
	} else {
		x.misses.Add(1)
	}
	return e.order, e.value, ok
}

// First returns the entry with the smallest order value. Among keys sharing
// that order, the one added to the bucket earliest wins.
func (x *OrderedIndex[K, O, V]) First() (Entry[K, O, V], bool, error) {
	return x.extreme(x.order.Min)
}

// Last returns the entry with the largest order value.
func (x *OrderedIndex[K, O, V]) Last() (Entry[K, O, V], bool, error) {
	return x.extreme(x.order.Max)
}

func (x *OrderedIndex[K, O, V]) extreme(sel func() (O, []K, bool, error)) (Entry[K, O, V], bool, error) {
	var zero Entry[K, O, V]

	order, keys, ok, err := sel()
	if err != nil || !ok {
		return zero, false, err
	}
	if len(keys) == 0 {
		return zero, false, fmt.Errorf("%w: empty bucket for order %v", ErrCorrupted, order)
	}

	key := keys[0]
	e, ok := x.entries[key]
	if !ok {
		x.logger.Error("order bucket references unknown key", "order", order)
		return zero, false, fmt.Errorf("%w: bucket for order %v references unknown key", ErrCorrupted, order)
	}
	return Entry[K, O, V]{Key: key, Order: e.order, Value: e.value}, true, nil
}

// Insert adds or replaces the entry under key, placing it at the back of the
// bucket for order. If the key existed, it is removed from its old bucket
// first (even when the order is unchanged) and its previous value is
// returned.
func (x *OrderedIndex[K, O, V]) Insert(key K, value V, order O) (V, bool, error) {
	var zero V

	prev, prevOK := zero, false
	if e, ok := x.entries[key]; ok {
		prev, prevOK = e.value, true
		if err := x.dropFromBucket(key, e.order); err != nil {
			return zero, false, err
		}
	}

	keys, _, err := x.order.Remove(order)
	if err != nil {
		return zero, false, err
	}
	keys = append(keys, key)
	if _, _, err := x.order.Insert(order, keys); err != nil {
		return zero, false, err
	}

	x.entries[key] = indexed[O, V]{order: order, value: value}
	return prev, prevOK, nil
}

// Remove deletes the entry under key, returning its order and value.
func (x *OrderedIndex[K, O, V]) Remove(key K) (O, V, bool, error) {
	e, ok := x.entries[key]
	if !ok {
		var (
			zo O
			zv V
		)
		return zo, zv, false, nil
	}

	delete(x.entries, key)
	if err := x.dropFromBucket(key, e.order); err != nil {
		return e.order, e.value, true, err
	}
	return e.order, e.value, true, nil
}

// RemoveFirst deletes and returns the entry with the smallest order value.
func (x *OrderedIndex[K, O, V]) RemoveFirst() (Entry[K, O, V], bool, error) {
	return x.removeExtreme(x.order.Min)
}

// RemoveLast deletes and returns the entry with the largest order value.
func (x *OrderedIndex[K, O, V]) RemoveLast() (Entry[K, O, V], bool, error) {
	return x.removeExtreme(x.order.Max)
}

func (x *OrderedIndex[K, O, V]) removeExtreme(sel func() (O, []K, bool, error)) (Entry[K, O, V], bool, error) {
	ent, ok, err := x.extreme(sel)
	if err != nil || !ok {
		return ent, false, err
	}
	if _, _, _, err := x.Remove(ent.Key); err != nil {
		return ent, true, err
	}
	return ent, true, nil
}

// ReOrder moves key to newOrder, keeping its value. The key goes to the back
// of the new bucket. Unknown keys are a no-op.
func (x *OrderedIndex[K, O, V]) ReOrder(key K, newOrder O) error {
	_, value, ok, err := x.Remove(key)
	if err != nil || !ok {
		return err
	}
	_, _, err = x.Insert(key, value, newOrder)
	return err
}

// Clear drops every entry from both sides of the index.
func (x *OrderedIndex[K, O, V]) Clear() error {
	if err := x.order.Clear(); err != nil {
		return err
	}
	clear(x.entries)
	return nil
}

// Keys iterates over all live keys in unspecified order.
func (x *OrderedIndex[K, O, V]) Keys() iter.Seq[K] {
	return maps.Keys(x.entries)
}

// Entries returns a snapshot of all live entries in unspecified order.
// Intended for diagnostics, not for ordered traversal.
func (x *OrderedIndex[K, O, V]) Entries() []Entry[K, O, V] {
	out := make([]Entry[K, O, V], 0, len(x.entries))
	for k, e := range x.entries {
		out = append(out, Entry[K, O, V]{Key: k, Order: e.order, Value: e.value})
	}
	return out
}

// Stats reports Get hits and misses since creation.
func (x *OrderedIndex[K, O, V]) Stats() (hits, misses int64) {
	return x.hits.Load(), x.misses.Load()
}

// dropFromBucket removes key from the bucket stored under order, deleting the
// bucket when key was its last member.
func (x *OrderedIndex[K, O, V]) dropFromBucket(key K, order O) error {
	keys, ok, err := x.order.Remove(order)
	if err != nil || !ok {
		return err
	}
	keys = slices.DeleteFunc(keys, func(k K) bool { return k == key })
	if len(keys) == 0 {
		return nil
	}
	_, _, err = x.order.Insert(order, keys)
	return err
}
