package longmap

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	// ErrInvalidCapacity is returned by New when the initial capacity is not positive.
	ErrInvalidCapacity = errors.New("capacity must be positive")
	// ErrInvalidLoadFactor is returned by New when the load factor is outside (0, 1].
	ErrInvalidLoadFactor = errors.New("load factor must be in (0, 1]")
)

type slot[V comparable] struct {
	key   int64
	value V
	used  bool
}

// Map is an open-addressing hash table from int64 keys to values of type V.
// The zero value is not usable; create tables with New.
type Map[V comparable] struct {
	slots      []slot[V]
	size       int
	loadFactor float64
	index      indexFunc
	logger     *zap.Logger
}

// New creates an empty table. Without options it has DefaultCapacity slots
// and grows once more than DefaultLoadFactor of them are occupied.
func New[V comparable](opts ...Option) (*Map[V], error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.capacity <= 0 {
		return nil, errors.Wrapf(ErrInvalidCapacity, "capacity %d", cfg.capacity)
	}
	// Written so that NaN fails too.
	if !(cfg.loadFactor > 0 && cfg.loadFactor <= 1) {
		return nil, errors.Wrapf(ErrInvalidLoadFactor, "load factor %v", cfg.loadFactor)
	}

	return &Map[V]{
		slots:      make([]slot[V], cfg.capacity),
		loadFactor: cfg.loadFactor,
		index:      cfg.index,
		logger:     cfg.logger,
	}, nil
}

// probe walks forward from the home slot of key. It returns the slot holding
// key and true, or the first empty slot on the way and false. It returns -1
// only if the table has no empty slot, which growth never allows.
func (m *Map[V]) probe(key int64) (int, bool) {
	n := len(m.slots)
	idx := m.index(key, n)

	for i := 0; i < n; i++ {
		cur := (idx + i) % n
		s := &m.slots[cur]
		if !s.used {
			return cur, false
		}
		if s.key == key {
			return cur, true
		}
	}
	return -1, false
}

// Put associates value with key. If key was already present its value is
// replaced and the previous value is returned with true; otherwise the zero
// value and false are returned.
func (m *Map[V]) Put(key int64, value V) (V, bool) {
	var zero V

	pos, found := m.probe(key)
	if found {
		old := m.slots[pos].value
		m.slots[pos].value = value
		return old, true
	}
	if pos < 0 {
		panic("longmap: no empty slot left")
	}

	m.slots[pos] = slot[V]{key: key, value: value, used: true}
	m.size++

	for m.overloaded() {
		m.resize()
	}
	return zero, false
}

// Get returns the value stored under key and whether it was present.
func (m *Map[V]) Get(key int64) (V, bool) {
	pos, found := m.probe(key)
	if !found {
		var zero V
		return zero, false
	}
	return m.slots[pos].value, true
}

// Remove deletes key and returns its value with true. Removing a key that
// is not present changes nothing and returns the zero value and false.
func (m *Map[V]) Remove(key int64) (V, bool) {
	var zero V

	pos, found := m.probe(key)
	if !found {
		return zero, false
	}

	value := m.slots[pos].value
	m.slots[pos] = slot[V]{}
	m.size--
	m.shiftBack(pos)
	return value, true
}

// shiftBack closes the hole at index hole. Every entry in the run after the
// hole whose home slot is cyclically at or before the hole moves into it,
// and its old slot becomes the next hole.
func (m *Map[V]) shiftBack(hole int) {
	n := len(m.slots)

	for j := (hole + 1) % n; m.slots[j].used; j = (j + 1) % n {
		home := m.index(m.slots[j].key, n)
		// Distance travelled from home to j versus from hole to j.
		if (j-home+n)%n >= (j-hole+n)%n {
			m.slots[hole] = m.slots[j]
			m.slots[j] = slot[V]{}
			hole = j
		}
	}
}

func (m *Map[V]) overloaded() bool {
	n := len(m.slots)
	return m.size >= n || float64(m.size) > float64(n)*m.loadFactor
}

// resize doubles the slot array and reinserts every entry against the new
// capacity.
func (m *Map[V]) resize() {
	old := m.slots
	m.slots = make([]slot[V], 2*len(old))
	m.size = 0

	for i := range old {
		if !old[i].used {
			continue
		}
		pos, _ := m.probe(old[i].key)
		m.slots[pos] = old[i]
		m.size++
	}

	m.logger.Debug("resized table",
		zap.Int("old_capacity", len(old)),
		zap.Int("new_capacity", len(m.slots)),
		zap.Int("size", m.size))
}

// ContainsKey reports whether key is present.
func (m *Map[V]) ContainsKey(key int64) bool {
	_, found := m.probe(key)
	return found
}

// ContainsValue reports whether any entry holds a value equal to value.
func (m *Map[V]) ContainsValue(value V) bool {
	return m.ContainsValueFunc(func(v V) bool { return v == value })
}

// ContainsValueFunc reports whether match returns true for any stored value.
func (m *Map[V]) ContainsValueFunc(match func(V) bool) bool {
	for i := range m.slots {
		if m.slots[i].used && match(m.slots[i].value) {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the table holds no entries.
func (m *Map[V]) IsEmpty() bool {
	return m.size == 0
}

// Size returns the number of entries.
func (m *Map[V]) Size() int64 {
	return int64(m.size)
}

// Capacity returns the current number of slots.
func (m *Map[V]) Capacity() int {
	return len(m.slots)
}

// LoadFactor returns the occupancy fraction above which the table grows.
func (m *Map[V]) LoadFactor() float64 {
	return m.loadFactor
}

// Clear removes every entry. The capacity is kept.
func (m *Map[V]) Clear() {
	clear(m.slots)
	m.size = 0
}

// Keys returns a copy of all keys in slot order, or nil if the table is empty.
// The i-th key belongs to the i-th element of Values as long as the table is
// not modified in between.
func (m *Map[V]) Keys() []int64 {
	if m.size == 0 {
		return nil
	}
	keys := make([]int64, 0, m.size)
	for i := range m.slots {
		if m.slots[i].used {
			keys = append(keys, m.slots[i].key)
		}
	}
	return keys
}

// Values returns a copy of all values in slot order, or nil if the table is
// empty.
func (m *Map[V]) Values() []V {
	if m.size == 0 {
		return nil
	}
	values := make([]V, 0, m.size)
	for i := range m.slots {
		if m.slots[i].used {
			values = append(values, m.slots[i].value)
		}
	}
	return values
}

// Range calls fn for every entry in slot order until fn returns false.
// fn must not modify the table.
func (m *Map[V]) Range(fn func(key int64, value V) bool) {
	for i := range m.slots {
		if m.slots[i].used && !fn(m.slots[i].key, m.slots[i].value) {
			return
		}
	}
}

func (m *Map[V]) String() string {
	return fmt.Sprintf("longmap.Map{size: %d, capacity: %d}", m.size, len(m.slots))
}
