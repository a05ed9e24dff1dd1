package longmap

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// indexFunc maps a key to its home slot in a table of the given capacity.
// The result must be in [0, capacity).
type indexFunc func(key int64, capacity int) int

// remainderIndex returns |key mod capacity|. The remainder is always smaller
// than capacity in magnitude, so negating it cannot overflow, MinInt64 included.
func remainderIndex(key int64, capacity int) int {
	i := key % int64(capacity)
	if i < 0 {
		i = -i
	}
	return int(i)
}

func xxhashIndex(key int64, capacity int) int {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(key))
	return int(xxhash.Sum64(buf[:]) % uint64(capacity))
}
