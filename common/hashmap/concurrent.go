package hashmap

import (
	cmap "github.com/orcaman/concurrent-map/v2"
)

// ConcurrentMap is a Store backed by a sharded concurrent map.
type ConcurrentMap[V comparable] struct {
	backend cmap.ConcurrentMap[string, V]
}

// NewConcurrentMap creates a map with concurrent-map's default shard count.
func NewConcurrentMap[V comparable]() *ConcurrentMap[V] {
	return &ConcurrentMap[V]{
		backend: cmap.New[V](),
	}
}

func (m *ConcurrentMap[V]) Delete(key string) bool {
	_, exists := m.LoadAndDelete(key)
	return exists
}

func (m *ConcurrentMap[V]) Load(key string) (V, bool) {
	return m.backend.Get(key)
}

func (m *ConcurrentMap[V]) LoadAndDelete(key string) (retVal V, retExists bool) {
	m.backend.RemoveCb(key, func(key string, val V, exists bool) bool {
		retVal = val
		retExists = exists
		return true
	})
	return
}

func (m *ConcurrentMap[V]) Range(cb func(string, V) bool) {
	next := true
	for item := range m.backend.IterBuffered() {
		if next {
			next = cb(item.Key, item.Val)
		}
		// iterate over all items to drain the channel
	}
}

func (m *ConcurrentMap[V]) Store(key string, val V) {
	m.backend.Set(key, val)
}

func (m *ConcurrentMap[V]) Len() int {
	return m.backend.Count()
}

func (m *ConcurrentMap[V]) Keys() []string {
	return m.backend.Keys()
}

func (m *ConcurrentMap[V]) Clear() {
	m.backend.Clear()
}
