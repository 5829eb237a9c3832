package hashmap

import "time"

const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpRemove = "remove"
	OpClear  = "clear"
	OpExpand = "expand"
)

// Observer is notified of every change a ChainedMap makes to its contents or bucket array.
//
// Callbacks run synchronously on the goroutine that modified the map and must not call back into it.
type Observer interface {
	// ObserveOperation is called once per mutating operation, with one of the Op constants.
	ObserveOperation(op string)

	// ObserveSize reports the number of entries and buckets after a change.
	ObserveSize(length int, capacity int)

	// ObserveExpand reports a completed expansion from one bucket count to another.
	ObserveExpand(from int, to int, latency time.Duration)
}

// Observable is implemented by stores that accept an Observer.
type Observable interface {
	SetObserver(o Observer)
}

// SetObserver attaches o to the map and immediately reports the current size. A nil o detaches.
func (m *ChainedMap[V]) SetObserver(o Observer) {
	m.observer = o
	m.observeSize()
}

func (m *ChainedMap[V]) observe(op string) {
	if m.observer == nil {
		return
	}

	m.observer.ObserveOperation(op)
	m.observeSize()
}

func (m *ChainedMap[V]) observeSize() {
	if m.observer == nil {
		return
	}

	m.observer.ObserveSize(m.Length(), m.currentSize)
}
