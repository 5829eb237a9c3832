package hashmap

import (
	"time"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/Scusemua/go-utils/config"
	"github.com/Scusemua/go-utils/logger"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/scusemua/chained-hashmap/common/chain"
	"github.com/scusemua/chained-hashmap/common/configuration"
)

const (
	InitialSize       = configuration.DefaultInitialSize
	DefaultLoadFactor = configuration.DefaultLoadFactor
	GrowthFactor      = configuration.DefaultGrowthFactor

	hashPrime = 31
)

// ChainedMap is a string-keyed hash map that resolves collisions by separate chaining.
//
// Each bucket is a chain.Chain. The bucket for a key is derived from a polynomial hash taken
// modulo the current number of buckets, so every resize relocates every entry.
//
// ChainedMap is not safe for concurrent use; see LockedMap.
type ChainedMap[V comparable] struct {
	log logger.Logger

	buckets      []*chain.Chain[V]
	currentSize  int
	loadFactor   decimal.Decimal
	growthFactor int

	observer Observer
}

// New creates a ChainedMap with 16 empty buckets.
func New[V comparable]() *ChainedMap[V] {
	m, err := NewChainedMap[V](configuration.DefaultMapOptions())
	if err != nil {
		panic(err)
	}

	return m
}

// NewChainedMap creates a ChainedMap from the given options. A nil opts uses the defaults.
func NewChainedMap[V comparable](opts *configuration.MapOptions) (*ChainedMap[V], error) {
	if opts == nil {
		opts = configuration.DefaultMapOptions()
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	m := &ChainedMap[V]{
		buckets:      newBuckets[V](opts.InitialSize),
		currentSize:  opts.InitialSize,
		loadFactor:   decimal.NewFromFloat(opts.LoadFactor),
		growthFactor: opts.GrowthFactor,
	}
	config.InitLogger(&m.log, m)

	return m, nil
}

func newBuckets[V comparable](size int) []*chain.Chain[V] {
	buckets := make([]*chain.Chain[V], size)
	for i := range buckets {
		buckets[i] = chain.NewChain[V]()
	}
	return buckets
}

// Hash returns the index of the bucket that key belongs to under the current capacity.
func (m *ChainedMap[V]) Hash(key string) (int, error) {
	return hashKey(key, m.currentSize)
}

// hashKey accumulates (31*h + c) mod size over the UTF-16 code units of key.
func hashKey(key string, size int) (int, error) {
	hashCode := 0
	for _, r := range key {
		if r1, r2 := utf16.EncodeRune(r); r1 != utf8.RuneError {
			hashCode = (hashPrime*hashCode + int(r1)) % size
			hashCode = (hashPrime*hashCode + int(r2)) % size
			continue
		}

		hashCode = (hashPrime*hashCode + int(r)) % size
	}

	// Unreachable while the modulo above holds.
	if hashCode < 0 || hashCode >= size {
		return 0, errors.Wrapf(ErrIndexOutOfRange, "hash of \"%s\" is %d with %d buckets", key, hashCode, size)
	}

	return hashCode, nil
}

// bucketFor returns the chain that key hashes to. A failing hash is a programming error.
func (m *ChainedMap[V]) bucketFor(key string) *chain.Chain[V] {
	index, err := m.Hash(key)
	if err != nil {
		m.log.Error("Failed to hash key \"%s\": %v", key, err)
		panic(err)
	}

	return m.buckets[index]
}

// Set stores value under key and returns the node holding it.
//
// The load factor is only checked when key's bucket is empty. If storing one more entry would
// bring the load to the threshold, the map expands before the entry is placed.
func (m *ChainedMap[V]) Set(key string, value V) *chain.Node[V] {
	bucket := m.bucketFor(key)

	if bucket.Size() == 0 {
		if m.reachesLoadFactor(m.Length() + 1) {
			m.Expand()
		}

		bucket = m.bucketFor(key)
	}

	entry := chain.Entry[V]{Key: key, Value: value}
	if match, found := bucket.FindByKey(key); found {
		node, err := bucket.UpdateAt(match.Index, entry)
		if err != nil {
			panic(err)
		}

		m.observe(OpUpdate)
		return node
	}

	node := bucket.Append(entry)
	m.observe(OpInsert)
	return node
}

// reachesLoadFactor reports whether numEntries / currentSize >= loadFactor.
func (m *ChainedMap[V]) reachesLoadFactor(numEntries int) bool {
	threshold := m.loadFactor.Mul(decimal.NewFromInt(int64(m.currentSize)))
	return decimal.NewFromInt(int64(numEntries)).GreaterThanOrEqual(threshold)
}

// Get returns the node holding key and its position within its bucket.
func (m *ChainedMap[V]) Get(key string) (chain.Match[V], bool) {
	return m.bucketFor(key).FindByKey(key)
}

// Has reports whether key is present.
func (m *ChainedMap[V]) Has(key string) bool {
	return m.bucketFor(key).ContainsKey(key)
}

// Remove deletes key and reports whether it was present. The bucket array never shrinks.
func (m *ChainedMap[V]) Remove(key string) bool {
	match, found := m.Get(key)
	if !found {
		return false
	}

	if err := m.bucketFor(key).RemoveAt(match.Index); err != nil {
		panic(err)
	}

	m.observe(OpRemove)
	return true
}

// Expand multiplies the number of buckets by the growth factor and rehashes every entry.
//
// The new bucket array is fully populated before it replaces the old one.
func (m *ChainedMap[V]) Expand() {
	start := time.Now()
	oldSize := m.currentSize
	newSize := m.currentSize * m.growthFactor
	buckets := newBuckets[V](newSize)

	moved := 0
	for _, bucket := range m.buckets {
		for _, entry := range bucket.GetAll() {
			index, err := hashKey(entry.Key, newSize)
			if err != nil {
				m.log.Error("Failed to rehash key \"%s\" while expanding to %d buckets: %v", entry.Key, newSize, err)
				panic(err)
			}

			buckets[index].Append(entry)
			moved++
		}
	}

	m.log.Debug("Expanded from %d to %d buckets. Rehashed %d entries.", m.currentSize, newSize, moved)

	m.buckets = buckets
	m.currentSize = newSize

	if m.observer != nil {
		m.observer.ObserveExpand(oldSize, newSize, time.Since(start))
	}
	m.observe(OpExpand)
}

// Length returns the number of stored entries. It visits every bucket.
func (m *ChainedMap[V]) Length() int {
	count := 0
	for _, bucket := range m.buckets {
		count += bucket.Size()
	}
	return count
}

// Capacity returns the current number of buckets.
func (m *ChainedMap[V]) Capacity() int {
	return m.currentSize
}

// Clear drops every entry. The number of buckets is unchanged.
func (m *ChainedMap[V]) Clear() {
	for i := range m.buckets {
		m.buckets[i] = chain.NewChain[V]()
	}

	m.observe(OpClear)
}

// Keys returns every key in bucket order, then chain order.
func (m *ChainedMap[V]) Keys() []string {
	keys := make([]string, 0)
	for _, bucket := range m.buckets {
		for _, entry := range bucket.GetAll() {
			keys = append(keys, entry.Key)
		}
	}
	return keys
}

// Values returns every value in the same order as Keys.
func (m *ChainedMap[V]) Values() []V {
	values := make([]V, 0)
	for _, bucket := range m.buckets {
		for _, entry := range bucket.GetAll() {
			values = append(values, entry.Value)
		}
	}
	return values
}

// Entries returns every [key, value] pair in the same order as Keys.
func (m *ChainedMap[V]) Entries() [][2]any {
	entries := make([][2]any, 0)
	for _, bucket := range m.buckets {
		for _, entry := range bucket.GetAll() {
			entries = append(entries, [2]any{entry.Key, entry.Value})
		}
	}
	return entries
}

// Range calls cb for each entry in the same order as Keys until cb returns false.
// cb must not modify the map.
func (m *ChainedMap[V]) Range(cb func(key string, value V) (contd bool)) {
	for _, bucket := range m.buckets {
		for node := bucket.Head(); node != nil; node = node.Next() {
			entry, ok := node.Entry()
			if !ok {
				continue
			}

			if !cb(entry.Key, entry.Value) {
				return
			}
		}
	}
}

// Reverse reverses the chain of every bucket. Buckets keep their positions.
func (m *ChainedMap[V]) Reverse() {
	for _, bucket := range m.buckets {
		bucket.Reverse()
	}
}
