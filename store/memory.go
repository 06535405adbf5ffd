package store

import (
	"cmp"
	"slices"

	"github.com/tidwall/btree"
)

// bucketItem pairs an order value with its bucket inside the B-tree.
type bucketItem[O cmp.Ordered, K comparable] struct {
	order O
	keys  []K
}

// Memory is the volatile Store backend: buckets live in an in-memory B-tree
// and are lost when the process exits. Operations never fail; the error
// results exist only to satisfy the Store contract.
type Memory[O cmp.Ordered, K comparable] struct {
	tr *btree.BTreeG[bucketItem[O, K]]
}

var _ Store[uint64, string] = (*Memory[uint64, string])(nil)

// NewMemory creates an empty in-memory store.
func NewMemory[O cmp.Ordered, K comparable]() *Memory[O, K] {
	return &Memory[O, K]{
		tr: btree.NewBTreeG(func(a, b bucketItem[O, K]) bool {
			return a.order < b.order
		}),
	}
}

// Len reports the number of distinct order values.
func (m *Memory[O, K]) Len() (int, error) { return m.tr.Len(), nil }

// Min returns the smallest order value and a copy of its bucket.
func (m *Memory[O, K]) Min() (O, []K, bool, error) {
	item, ok := m.tr.Min()
	if !ok {
		var zero O
		return zero, nil, false, nil
	}
	return item.order, slices.Clone(item.keys), true, nil
}

// Max returns the largest order value and a copy of its bucket.
func (m *Memory[O, K]) Max() (O, []K, bool, error) {
	item, ok := m.tr.Max()
	if !ok {
		var zero O
		return zero, nil, false, nil
	}
	return item.order, slices.Clone(item.keys), true, nil
}

// Get returns a copy of the bucket stored under order.
func (m *Memory[O, K]) Get(order O) ([]K, bool, error) {
	item, ok := m.tr.Get(bucketItem[O, K]{order: order})
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(item.keys), true, nil
}

// Insert replaces the bucket under order, returning the previous bucket.
func (m *Memory[O, K]) Insert(order O, keys []K) ([]K, bool, error) {
	prev, ok := m.tr.Set(bucketItem[O, K]{order: order, keys: keys})
	if !ok {
		return nil, false, nil
	}
	return prev.keys, true, nil
}

// Remove deletes the bucket under order, returning it if present.
func (m *Memory[O, K]) Remove(order O) ([]K, bool, error) {
	item, ok := m.tr.Delete(bucketItem[O, K]{order: order})
	if !ok {
		return nil, false, nil
	}
	return item.keys, true, nil
}

// Clear drops every bucket.
func (m *Memory[O, K]) Clear() error {
	m.tr.Clear()
	return nil
}
