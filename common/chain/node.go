package chain

import "fmt"

// Entry is a single key/value pair stored in a Chain.
type Entry[V comparable] struct {
	Key   string
	Value V
}

// Node is one link of a Chain.
//
// A Node with a nil entry is a placeholder. Placeholders never match a key or a value.
type Node[V comparable] struct {
	data *Entry[V]
	next *Node[V]
}

func newNode[V comparable](entry Entry[V]) *Node[V] {
	return &Node[V]{data: &entry}
}

// Entry returns a copy of the node's entry. The second return value is false for a placeholder.
func (n *Node[V]) Entry() (Entry[V], bool) {
	if n.data == nil {
		return Entry[V]{}, false
	}

	return *n.data, true
}

// Key returns the key of the node's entry, or the empty string for a placeholder.
func (n *Node[V]) Key() string {
	if n.data == nil {
		return ""
	}

	return n.data.Key
}

// Value returns the value of the node's entry, or the zero value for a placeholder.
func (n *Node[V]) Value() (value V) {
	if n.data == nil {
		return
	}

	return n.data.Value
}

// Next returns the following node, or nil if n is the tail.
func (n *Node[V]) Next() *Node[V] {
	return n.next
}

func (n *Node[V]) hasKey(key string) bool {
	return n.data != nil && n.data.Key == key
}

func (n *Node[V]) hasValue(value V) bool {
	return n.data != nil && n.data.Value == value
}

func (n *Node[V]) String() string {
	if n.data == nil {
		return "null"
	}

	return fmt.Sprintf("%v", n.data.Value)
}
