package hashmap

import "sync/atomic"

// uncountedStore is a Store without a Len, plus the atomic primitives MapCounter needs.
type uncountedStore[V comparable] interface {
	Store(key string, value V)
	Load(key string) (V, bool)
	LoadAndDelete(key string) (V, bool)
	LoadOrStore(key string, value V) (V, bool)
	Swap(key string, value V) (V, bool)
	Range(cb func(key string, value V) bool)
	Keys() []string
}

// MapCounter adds an O(1) Len to a store that cannot count its entries.
type MapCounter[V comparable] struct {
	uncountedStore[V]
	size int64
}

func NewMapCounter[V comparable](backend uncountedStore[V]) *MapCounter[V] {
	return &MapCounter[V]{uncountedStore: backend}
}

func (m *MapCounter[V]) Delete(key string) bool {
	_, exists := m.LoadAndDelete(key)
	return exists
}

func (m *MapCounter[V]) LoadAndDelete(key string) (retVal V, retExists bool) {
	retVal, retExists = m.uncountedStore.LoadAndDelete(key)
	if retExists {
		atomic.AddInt64(&m.size, -1)
	}
	return
}

func (m *MapCounter[V]) LoadOrStore(key string, value V) (val V, loaded bool) {
	val, loaded = m.uncountedStore.LoadOrStore(key, value)
	if !loaded {
		atomic.AddInt64(&m.size, 1)
	}
	return val, loaded
}

func (m *MapCounter[V]) Store(key string, val V) {
	if _, loaded := m.uncountedStore.Swap(key, val); !loaded {
		atomic.AddInt64(&m.size, 1)
	}
}

func (m *MapCounter[V]) Len() int {
	return int(atomic.LoadInt64(&m.size))
}

// Clear deletes every key through LoadAndDelete so that the count follows the contents
// even while other goroutines store.
func (m *MapCounter[V]) Clear() {
	for _, key := range m.uncountedStore.Keys() {
		m.LoadAndDelete(key)
	}
}
