/*
Package longmap provides a hash table keyed by int64 built on its own slot array.

Map is an open-addressing hash table: every entry lives directly in a slot of a
single contiguous array, and collisions are resolved by linear probing. It does
not use Go's built-in map type anywhere.

Basic usage:

	import "github.com/theflywheel/longmap"

	// Create a table with the default capacity (16) and load factor (0.75)
	m, err := longmap.New[string]()
	if err != nil {
		log.Fatal(err)
	}

	// Insert data
	m.Put(12345, "a")
	old, replaced := m.Put(12345, "b") // old == "a", replaced == true

	// Retrieve data
	if v, ok := m.Get(12345); ok {
		fmt.Println("Value:", v)
	}

	// Remove data
	m.Remove(12345)

Features:

  - Fixed int64 keys, values of any comparable type
  - Open addressing with linear probing for collision resolution
  - Automatic doubling when the number of entries exceeds capacity*loadFactor
  - Backward-shift deletion, so removal never leaves tombstones behind
  - Keys and Values return independent snapshots

Implementation Details:

A slot is either empty or holds one key/value pair. The home slot of a key is
|key mod capacity| (or, with WithXXHash, the xxhash of the key reduced modulo
capacity). Put, Get and Remove all probe forward from the home slot, wrapping at
the end of the array, and stop at the first empty slot.

Removing a key opens a hole that could cut the probe chain of keys stored after
it. Remove therefore walks forward from the hole and pulls back every entry
whose home slot lies at or before the hole, until it reaches an empty slot.
Every occupied slot stays reachable from its home slot without crossing an
empty one.

The table never shrinks. It is not safe for concurrent use; callers sharing a
Map between goroutines must serialize access themselves.
*/
package longmap
