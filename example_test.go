package ordcache_test

import (
	"fmt"

	"github.com/hupe1980/ordcache"
	"github.com/hupe1980/ordcache/store"
)

func ExampleOrderedIndex() {
	// Track values by key, ordered by an insertion sequence number.
	idx := ordcache.New[string, uint64, string](store.NewMemory[uint64, string]())

	idx.Insert("alpha", "first value", 3)
	idx.Insert("bravo", "second value", 1)
	idx.Insert("charlie", "third value", 2)

	// Evict oldest-first until one entry remains.
	for idx.Len() > 1 {
		ent, _, _ := idx.RemoveFirst()
		fmt.Println(ent.Key, ent.Order)
	}

	ent, _, _ := idx.First()
	fmt.Println("remaining:", ent.Key)
	// Output:
	// bravo 1
	// charlie 2
	// remaining: alpha
}

func ExampleOrderedIndex_reOrder() {
	// LRU-style touch: move a key to the newest position on access.
	idx := ordcache.New[string, uint64, int](store.NewMemory[uint64, string]())

	idx.Insert("a", 1, 100)
	idx.Insert("b", 2, 200)

	_ = idx.ReOrder("a", 300) // "a" was just used

	ent, _, _ := idx.First()
	fmt.Println("evict next:", ent.Key)
	// Output:
	// evict next: b
}
