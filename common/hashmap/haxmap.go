package hashmap

import (
	"github.com/alphadose/haxmap"
)

// HaxMap is a Store backed by a lock-free Harris list hash map.
type HaxMap[V comparable] struct {
	backend *haxmap.Map[string, V]
}

func NewHaxMap[V comparable](size int) *HaxMap[V] {
	return &HaxMap[V]{
		backend: haxmap.New[string, V](uintptr(size)),
	}
}

func (m *HaxMap[V]) Delete(key string) bool {
	if _, ok := m.backend.Get(key); !ok {
		return false
	}

	m.backend.Del(key)
	return true
}

func (m *HaxMap[V]) Load(key string) (V, bool) {
	return m.backend.Get(key)
}

func (m *HaxMap[V]) Range(cb func(string, V) bool) {
	m.backend.ForEach(cb)
}

func (m *HaxMap[V]) Store(key string, val V) {
	m.backend.Set(key, val)
}

func (m *HaxMap[V]) Len() int {
	return int(m.backend.Len())
}

func (m *HaxMap[V]) Keys() []string {
	keys := make([]string, 0, m.Len())
	m.backend.ForEach(func(key string, _ V) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Clear deletes every key in place. Keys stored concurrently may survive.
func (m *HaxMap[V]) Clear() {
	if keys := m.Keys(); len(keys) > 0 {
		m.backend.Del(keys...)
	}
}
