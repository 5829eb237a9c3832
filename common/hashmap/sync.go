package hashmap

import (
	"sync"
)

// SyncMap adapts sync.Map. It does not track its size; wrap it in a MapCounter.
type SyncMap[V comparable] struct {
	backend *sync.Map
}

func NewSyncMap[V comparable]() *SyncMap[V] {
	return &SyncMap[V]{backend: &sync.Map{}}
}

func (m *SyncMap[V]) Load(key string) (ret V, ok bool) {
	v, ok := m.backend.Load(key)
	ret, _ = v.(V)
	return
}

func (m *SyncMap[V]) LoadAndDelete(key string) (value V, loaded bool) {
	v, loaded := m.backend.LoadAndDelete(key)
	if loaded {
		value, _ = v.(V)
	}
	return
}

func (m *SyncMap[V]) LoadOrStore(key string, value V) (actual V, loaded bool) {
	v, loaded := m.backend.LoadOrStore(key, value)
	actual, _ = v.(V)
	return
}

func (m *SyncMap[V]) Range(cb func(string, V) bool) {
	m.backend.Range(func(key any, value any) bool {
		v, _ := value.(V)
		return cb(key.(string), v)
	})
}

func (m *SyncMap[V]) Swap(key string, value V) (previous V, loaded bool) {
	v, loaded := m.backend.Swap(key, value)
	if loaded {
		previous, _ = v.(V)
	}
	return
}

func (m *SyncMap[V]) Store(key string, val V) {
	m.backend.Store(key, val)
}

func (m *SyncMap[V]) Keys() []string {
	keys := make([]string, 0)
	m.Range(func(key string, _ V) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}
