package hashmap

import (
	"io"
	"sync"
)

// LockedMap guards a ChainedMap with a single lock so that it can be shared between goroutines.
//
// Expand replaces the whole bucket array, so the lock covers the map rather than individual
// buckets.
type LockedMap[V comparable] struct {
	m  *ChainedMap[V]
	mu sync.RWMutex
}

func NewLockedMap[V comparable](m *ChainedMap[V]) *LockedMap[V] {
	return &LockedMap[V]{m: m}
}

func (l *LockedMap[V]) Store(key string, value V) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.m.Set(key, value)
}

func (l *LockedMap[V]) Load(key string) (value V, loaded bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	match, found := l.m.Get(key)
	if !found {
		return value, false
	}
	return match.Node.Value(), true
}

func (l *LockedMap[V]) Has(key string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.m.Has(key)
}

func (l *LockedMap[V]) Delete(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.m.Remove(key)
}

func (l *LockedMap[V]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.m.Length()
}

// Range iterates over a snapshot, so cb may call back into the map.
func (l *LockedMap[V]) Range(cb func(key string, value V) bool) {
	l.mu.RLock()
	entries := l.m.Entries()
	l.mu.RUnlock()

	for _, entry := range entries {
		value, _ := entry[1].(V)
		if !cb(entry[0].(string), value) {
			return
		}
	}
}

func (l *LockedMap[V]) Keys() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.m.Keys()
}

func (l *LockedMap[V]) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.m.Clear()
}

func (l *LockedMap[V]) SetObserver(o Observer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.m.SetObserver(o)
}

func (l *LockedMap[V]) Capacity() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.m.Capacity()
}

func (l *LockedMap[V]) Expand() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.m.Expand()
}

func (l *LockedMap[V]) Reverse() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.m.Reverse()
}

func (l *LockedMap[V]) PrintMap(w io.Writer) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.m.PrintMap(w)
}

func (l *LockedMap[V]) PrintMapStyled(w io.Writer) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.m.PrintMapStyled(w)
}

func (l *LockedMap[V]) MarshalJSON() ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.m.MarshalJSON()
}
