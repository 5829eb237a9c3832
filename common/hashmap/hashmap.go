package hashmap

import (
	"io"

	"github.com/pkg/errors"

	"github.com/scusemua/chained-hashmap/common/chain"
	"github.com/scusemua/chained-hashmap/common/configuration"
)

const (
	BackendChained    = "chained"
	BackendLocked     = "locked"
	BackendConcurrent = "concurrent"
	BackendCornelk    = "cornelk"
	BackendHaxmap     = "haxmap"
	BackendSync       = "sync"
)

var (
	ErrIndexOutOfRange = chain.ErrIndexOutOfRange
	ErrUnknownBackend  = errors.New("unknown map backend")
	ErrUnsupported     = errors.New("operation not supported by this map backend")

	// Backends lists every name accepted by NewStore.
	Backends = []string{BackendChained, BackendLocked, BackendConcurrent, BackendCornelk, BackendHaxmap, BackendSync}
)

// Store is the common surface of every string-keyed map in this package.
type Store[V comparable] interface {
	Store(key string, value V)
	Load(key string) (value V, loaded bool)

	// Delete removes the key and reports whether it was present.
	Delete(key string) bool
	Len() int

	// Range calls cb for each key/value pair until cb returns false.
	Range(cb func(key string, value V) (contd bool))
	Keys() []string
	Clear()
}

// Bucketed is implemented by stores built on a ChainedMap and exposes its bucket layout.
type Bucketed interface {
	Capacity() int
	Expand()
	Reverse()
	PrintMap(w io.Writer) error
	PrintMapStyled(w io.Writer) error
	MarshalJSON() ([]byte, error)
}

// NewStore creates the named backend. A nil opts uses configuration.DefaultMapOptions.
func NewStore[V comparable](backend string, opts *configuration.MapOptions) (Store[V], error) {
	if opts == nil {
		opts = configuration.DefaultMapOptions()
	}

	switch backend {
	case BackendChained:
		m, err := NewChainedMap[V](opts)
		if err != nil {
			return nil, err
		}
		return &chainedStore[V]{ChainedMap: m}, nil
	case BackendLocked:
		m, err := NewChainedMap[V](opts)
		if err != nil {
			return nil, err
		}
		return NewLockedMap[V](m), nil
	case BackendConcurrent:
		return NewConcurrentMap[V](), nil
	case BackendCornelk:
		return NewCornelkMap[V](opts.InitialSize), nil
	case BackendHaxmap:
		return NewHaxMap[V](opts.InitialSize), nil
	case BackendSync:
		return NewMapCounter[V](NewSyncMap[V]()), nil
	default:
		return nil, errors.Wrapf(ErrUnknownBackend, "\"%s\"", backend)
	}
}

// chainedStore exposes a ChainedMap through the Store interface.
type chainedStore[V comparable] struct {
	*ChainedMap[V]
}

func (s *chainedStore[V]) Store(key string, value V) {
	s.Set(key, value)
}

func (s *chainedStore[V]) Load(key string) (value V, loaded bool) {
	match, found := s.Get(key)
	if !found {
		return value, false
	}

	return match.Node.Value(), true
}

func (s *chainedStore[V]) Delete(key string) bool {
	return s.Remove(key)
}

func (s *chainedStore[V]) Len() int {
	return s.Length()
}
