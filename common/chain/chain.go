package chain

import (
	"strings"
)

// Match is the result of a successful search: the matching node and its 0-based position.
type Match[V comparable] struct {
	Index int
	Node  *Node[V]
}

// Chain is a singly linked list of key/value entries.
//
// The Chain owns every node reachable from its head and keeps a reference to the last node so
// that Append is O(1). All positional operations are 0-based and walk the list from the head.
//
// Chain is not safe for concurrent use.
type Chain[V comparable] struct {
	head *Node[V]
	tail *Node[V]
	size int
}

// NewChain creates an empty Chain.
func NewChain[V comparable]() *Chain[V] {
	return &Chain[V]{}
}

// Append adds the entry at the end of the chain and returns the new node.
func (c *Chain[V]) Append(entry Entry[V]) *Node[V] {
	node := newNode(entry)

	if c.head == nil {
		c.head = node
		c.tail = node
	} else {
		c.tail.next = node
		c.tail = node
	}

	c.size++
	return node
}

// Prepend adds the entry at the front of the chain.
func (c *Chain[V]) Prepend(entry Entry[V]) {
	node := newNode(entry)
	node.next = c.head
	c.head = node

	if c.tail == nil {
		c.tail = node
	}

	c.size++
}

// Size returns the number of nodes in the chain.
func (c *Chain[V]) Size() int {
	return c.size
}

// Head returns the first node, or nil if the chain is empty.
func (c *Chain[V]) Head() *Node[V] {
	return c.head
}

// Tail returns the last node, or nil if the chain is empty.
func (c *Chain[V]) Tail() *Node[V] {
	return c.tail
}

// At returns the node at the given index.
func (c *Chain[V]) At(index int) (*Node[V], error) {
	if index < 0 || index >= c.size {
		return nil, indexOutOfRange(index, c.size)
	}

	return c.nodeAt(index), nil
}

// nodeAt walks to the node at index, which the caller has already validated.
func (c *Chain[V]) nodeAt(index int) *Node[V] {
	node := c.head
	for i := 0; i < index; i++ {
		node = node.next
	}

	return node
}

// FindByKey returns the first node whose entry has the given key.
func (c *Chain[V]) FindByKey(key string) (Match[V], bool) {
	return c.find(func(n *Node[V]) bool { return n.hasKey(key) })
}

// FindByValue returns the first node whose entry has the given value.
func (c *Chain[V]) FindByValue(value V) (Match[V], bool) {
	return c.find(func(n *Node[V]) bool { return n.hasValue(value) })
}

func (c *Chain[V]) find(matches func(*Node[V]) bool) (Match[V], bool) {
	index := 0
	for node := c.head; node != nil; node = node.next {
		if matches(node) {
			return Match[V]{Index: index, Node: node}, true
		}
		index++
	}

	return Match[V]{}, false
}

// ContainsKey reports whether any entry in the chain has the given key.
func (c *Chain[V]) ContainsKey(key string) bool {
	_, found := c.FindByKey(key)
	return found
}

// ContainsValue reports whether any entry in the chain has the given value.
func (c *Chain[V]) ContainsValue(value V) bool {
	_, found := c.FindByValue(value)
	return found
}

// GetAll returns a snapshot of the chain's entries from head to tail. Placeholders are skipped.
func (c *Chain[V]) GetAll() []Entry[V] {
	entries := make([]Entry[V], 0, c.size)
	for node := c.head; node != nil; node = node.next {
		if node.data != nil {
			entries = append(entries, *node.data)
		}
	}

	return entries
}

// UpdateAt replaces the entry held by the node at index and returns that node.
func (c *Chain[V]) UpdateAt(index int, entry Entry[V]) (*Node[V], error) {
	node, err := c.At(index)
	if err != nil {
		return nil, err
	}

	node.data = &entry
	return node, nil
}

// InsertAt inserts the entry so that it ends up at position index.
//
// An index at or past the end appends; index 0 prepends.
func (c *Chain[V]) InsertAt(entry Entry[V], index int) error {
	if index < 0 {
		return indexOutOfRange(index, c.size)
	}

	if index >= c.size {
		c.Append(entry)
		return nil
	}

	if index == 0 {
		c.Prepend(entry)
		return nil
	}

	prior := c.nodeAt(index - 1)
	node := newNode(entry)
	node.next = prior.next
	prior.next = node

	c.size++
	return nil
}

// RemoveAt unlinks the node at index.
func (c *Chain[V]) RemoveAt(index int) error {
	if index < 0 || index >= c.size {
		return indexOutOfRange(index, c.size)
	}

	if index == 0 {
		c.head = c.head.next
		if c.head == nil {
			c.tail = nil
		}

		c.size--
		return nil
	}

	prior := c.nodeAt(index - 1)
	removed := prior.next
	prior.next = removed.next
	if removed == c.tail {
		c.tail = prior
	}

	c.size--
	return nil
}

// Pop removes the last node. The new tail is found by walking from the head.
func (c *Chain[V]) Pop() error {
	if c.size == 0 {
		return ErrEmptyChain
	}

	if c.size == 1 {
		c.head = nil
		c.tail = nil
		c.size = 0
		return nil
	}

	c.size--
	c.tail = c.nodeAt(c.size - 1)
	c.tail.next = nil
	return nil
}

// Reverse reverses the order of the chain in place.
func (c *Chain[V]) Reverse() {
	var prev *Node[V]
	current := c.head

	for current != nil {
		next := current.next
		current.next = prev
		prev = current
		current = next
	}

	c.tail = c.head
	c.head = prev
}

// String renders the chain's values in order, e.g. "1 -> 2 -> null".
func (c *Chain[V]) String() string {
	var sb strings.Builder
	for node := c.head; node != nil; node = node.next {
		sb.WriteString(node.String())
		sb.WriteString(" -> ")
	}

	sb.WriteString("null")
	return sb.String()
}
