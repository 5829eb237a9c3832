package hashmap

import (
	"fmt"
	"log"

	"github.com/zhangjyr/hashmap"
)

var (
	deleted = &struct{}{}
)

// CornelkMap is a Store backed by a lock-free hash map.
type CornelkMap[V comparable] struct {
	hashmap *hashmap.HashMap
}

func NewCornelkMap[V comparable](size int) *CornelkMap[V] {
	return &CornelkMap[V]{
		hashmap: hashmap.New((uintptr)(size)),
	}
}

func (m *CornelkMap[V]) Delete(key string) bool {
	_, exists := m.LoadAndDelete(key)
	return exists
}

func (m *CornelkMap[V]) Load(key string) (ret V, ok bool) {
	v, ok := m.hashmap.GetStringKey(key)
	if !ok || v == deleted {
		return ret, false
	}

	if v != nil {
		ret, ok = v.(V)
		if !ok {
			log.Panicf("CornelkMap.Load: type mismatch %v\n", v)
			panic(fmt.Sprintf("CornelkMap.Load: type mismatch %v\n", v))
		}
	}
	return ret, ok
}

func (m *CornelkMap[V]) LoadAndDelete(key string) (ret V, retExists bool) {
	v, retExists := m.hashmap.GetStringKey(key)
	if !retExists {
		return ret, retExists
	} else if v == deleted {
		return ret, false
	}

	for !m.hashmap.Cas(key, v, deleted) {
		v, retExists = m.hashmap.GetStringKey(key)
		if !retExists {
			return ret, retExists
		} else if v == deleted {
			return ret, false
		}
	}

	if v != nil {
		ret = v.(V)
	}
	m.hashmap.Del(key)
	return ret, retExists
}

func (m *CornelkMap[V]) Range(cb func(string, V) bool) {
	next := true
	for item := range m.hashmap.Iter() {
		if next && item.Value != deleted {
			v, _ := item.Value.(V)
			next = cb(item.Key.(string), v)
		}
		// iterate over all items to drain the channel
	}
}

func (m *CornelkMap[V]) Store(key string, val V) {
	m.hashmap.Set(key, val)
}

func (m *CornelkMap[V]) Len() int {
	return m.hashmap.Len()
}

func (m *CornelkMap[V]) Keys() []string {
	keys := make([]string, 0, m.hashmap.Len())
	m.Range(func(key string, _ V) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Clear deletes every key in place. Keys stored concurrently may survive.
func (m *CornelkMap[V]) Clear() {
	for item := range m.hashmap.Iter() {
		m.hashmap.Del(item.Key)
	}
}
