package ordcache

import "cmp"

// Entry is one tracked (key, order, value) triple.
type Entry[K comparable, O cmp.Ordered, V any] struct {
	Key   K
	Order O
	Value V
}
