package chain_test

import (
	"fmt"

	"github.com/pkg/errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/scusemua/chained-hashmap/common/chain"
)

func entry(key string, value int) chain.Entry[int] {
	return chain.Entry[int]{Key: key, Value: value}
}

func fill(c *chain.Chain[int], n int) []chain.Entry[int] {
	entries := make([]chain.Entry[int], 0, n)
	for i := 0; i < n; i++ {
		e := entry(fmt.Sprintf("k%d", i), i)
		c.Append(e)
		entries = append(entries, e)
	}
	return entries
}

// expectConsistent checks that size, head and tail agree with what is reachable from the head.
func expectConsistent(c *chain.Chain[int]) {
	count := 0
	var last *chain.Node[int]
	for node := c.Head(); node != nil; node = node.Next() {
		count++
		last = node
		Expect(count).To(BeNumerically("<=", c.Size()), "chain contains a cycle or size is too small")
	}

	Expect(count).To(Equal(c.Size()))
	Expect(c.Tail()).To(BeIdenticalTo(last))
	if c.Size() == 0 {
		Expect(c.Head()).To(BeNil())
		Expect(c.Tail()).To(BeNil())
	}
}

var _ = Describe("Chain", func() {
	var c *chain.Chain[int]

	BeforeEach(func() {
		c = chain.NewChain[int]()
	})

	It("should be created empty", func() {
		Expect(c.Size()).To(Equal(0))
		Expect(c.GetAll()).To(BeEmpty())
		Expect(c.String()).To(Equal("null"))
		expectConsistent(c)
	})

	Describe("Append", func() {
		It("should add entries at the tail and return the new node", func() {
			node := c.Append(entry("a", 1))
			Expect(node).ToNot(BeNil())
			Expect(node.Key()).To(Equal("a"))
			Expect(c.Head()).To(BeIdenticalTo(node))
			Expect(c.Tail()).To(BeIdenticalTo(node))

			second := c.Append(entry("b", 2))
			Expect(c.Head()).To(BeIdenticalTo(node))
			Expect(c.Tail()).To(BeIdenticalTo(second))
			Expect(c.Size()).To(Equal(2))
			expectConsistent(c)
		})

		It("should preserve insertion order in GetAll", func() {
			entries := fill(c, 5)
			Expect(c.GetAll()).To(Equal(entries))
		})
	})

	Describe("Prepend", func() {
		It("should add entries at the head", func() {
			c.Prepend(entry("b", 2))
			Expect(c.Tail().Key()).To(Equal("b"))

			c.Prepend(entry("a", 1))
			Expect(c.Head().Key()).To(Equal("a"))
			Expect(c.Tail().Key()).To(Equal("b"))
			Expect(c.GetAll()).To(Equal([]chain.Entry[int]{entry("a", 1), entry("b", 2)}))
			expectConsistent(c)
		})

		It("should leave a usable tail for a later append", func() {
			c.Prepend(entry("a", 1))
			c.Append(entry("b", 2))
			Expect(c.GetAll()).To(Equal([]chain.Entry[int]{entry("a", 1), entry("b", 2)}))
			expectConsistent(c)
		})
	})

	Describe("At", func() {
		It("should return the node at the given index", func() {
			fill(c, 4)
			for i := 0; i < 4; i++ {
				node, err := c.At(i)
				Expect(err).ToNot(HaveOccurred())
				Expect(node.Value()).To(Equal(i))
			}
		})

		It("should fail on an empty chain", func() {
			node, err := c.At(0)
			Expect(node).To(BeNil())
			Expect(errors.Is(err, chain.ErrIndexOutOfRange)).To(BeTrue())
		})

		It("should fail past the end and below zero", func() {
			fill(c, 2)

			_, err := c.At(2)
			Expect(errors.Is(err, chain.ErrIndexOutOfRange)).To(BeTrue())

			_, err = c.At(-1)
			Expect(errors.Is(err, chain.ErrIndexOutOfRange)).To(BeTrue())
		})
	})

	Describe("FindByKey and FindByValue", func() {
		BeforeEach(func() {
			c.Append(entry("a", 1))
			c.Append(entry("b", 0))
			c.Append(entry("a", 3))
		})

		It("should return the first matching node and its index", func() {
			match, found := c.FindByKey("a")
			Expect(found).To(BeTrue())
			Expect(match.Index).To(Equal(0))
			Expect(match.Node.Value()).To(Equal(1))

			match, found = c.FindByValue(3)
			Expect(found).To(BeTrue())
			Expect(match.Index).To(Equal(2))
		})

		It("should distinguish a zero value from a miss", func() {
			match, found := c.FindByValue(0)
			Expect(found).To(BeTrue())
			Expect(match.Index).To(Equal(1))
			Expect(match.Node.Key()).To(Equal("b"))

			_, found = c.FindByKey("z")
			Expect(found).To(BeFalse())
			_, found = c.FindByValue(42)
			Expect(found).To(BeFalse())
		})

		It("should back ContainsKey and ContainsValue", func() {
			Expect(c.ContainsKey("b")).To(BeTrue())
			Expect(c.ContainsKey("c")).To(BeFalse())
			Expect(c.ContainsValue(0)).To(BeTrue())
			Expect(c.ContainsValue(2)).To(BeFalse())
		})
	})

	Describe("UpdateAt", func() {
		It("should replace the entry in place", func() {
			fill(c, 3)
			head, tail := c.Head(), c.Tail()

			node, err := c.UpdateAt(1, entry("k1", 100))
			Expect(err).ToNot(HaveOccurred())
			Expect(node.Value()).To(Equal(100))
			Expect(c.Head()).To(BeIdenticalTo(head))
			Expect(c.Tail()).To(BeIdenticalTo(tail))
			Expect(c.Size()).To(Equal(3))
		})

		It("should fail on an invalid index", func() {
			_, err := c.UpdateAt(0, entry("a", 1))
			Expect(errors.Is(err, chain.ErrIndexOutOfRange)).To(BeTrue())
		})
	})

	Describe("InsertAt", func() {
		BeforeEach(func() {
			c.Append(entry("a", 1))
			c.Append(entry("c", 3))
		})

		It("should splice into the middle", func() {
			Expect(c.InsertAt(entry("b", 2), 1)).To(Succeed())
			Expect(c.String()).To(Equal("1 -> 2 -> 3 -> null"))
			expectConsistent(c)
		})

		It("should prepend at index zero", func() {
			Expect(c.InsertAt(entry("z", 0), 0)).To(Succeed())
			Expect(c.Head().Key()).To(Equal("z"))
			expectConsistent(c)
		})

		It("should append at or past the end", func() {
			Expect(c.InsertAt(entry("d", 4), 2)).To(Succeed())
			Expect(c.InsertAt(entry("e", 5), 99)).To(Succeed())
			Expect(c.Tail().Key()).To(Equal("e"))
			Expect(c.String()).To(Equal("1 -> 3 -> 4 -> 5 -> null"))
			expectConsistent(c)
		})

		It("should reject a negative index", func() {
			err := c.InsertAt(entry("x", 9), -1)
			Expect(errors.Is(err, chain.ErrIndexOutOfRange)).To(BeTrue())
			Expect(c.Size()).To(Equal(2))
		})
	})

	Describe("RemoveAt", func() {
		It("should remove the head", func() {
			fill(c, 3)
			Expect(c.RemoveAt(0)).To(Succeed())
			Expect(c.Head().Key()).To(Equal("k1"))
			expectConsistent(c)
		})

		It("should remove the tail and move the tail back", func() {
			fill(c, 3)
			Expect(c.RemoveAt(2)).To(Succeed())
			Expect(c.Tail().Key()).To(Equal("k1"))
			c.Append(entry("k9", 9))
			Expect(c.String()).To(Equal("0 -> 1 -> 9 -> null"))
			expectConsistent(c)
		})

		It("should remove from the middle", func() {
			fill(c, 3)
			Expect(c.RemoveAt(1)).To(Succeed())
			Expect(c.String()).To(Equal("0 -> 2 -> null"))
			expectConsistent(c)
		})

		It("should leave an empty chain after removing the only node", func() {
			c.Append(entry("a", 1))
			Expect(c.RemoveAt(0)).To(Succeed())
			Expect(c.Size()).To(Equal(0))
			Expect(c.Head()).To(BeNil())
			Expect(c.Tail()).To(BeNil())

			c.Append(entry("b", 2))
			Expect(c.GetAll()).To(Equal([]chain.Entry[int]{entry("b", 2)}))
			expectConsistent(c)
		})

		It("should fail on an invalid index", func() {
			fill(c, 1)
			Expect(errors.Is(c.RemoveAt(1), chain.ErrIndexOutOfRange)).To(BeTrue())
			Expect(errors.Is(c.RemoveAt(-1), chain.ErrIndexOutOfRange)).To(BeTrue())
			Expect(c.Size()).To(Equal(1))
		})
	})

	Describe("Pop", func() {
		It("should remove the last node", func() {
			fill(c, 3)
			Expect(c.Pop()).To(Succeed())
			Expect(c.Size()).To(Equal(2))
			Expect(c.Tail().Key()).To(Equal("k1"))
			expectConsistent(c)
		})

		It("should reset a single-node chain", func() {
			fill(c, 1)
			Expect(c.Pop()).To(Succeed())
			expectConsistent(c)
		})

		It("should fail on an empty chain", func() {
			Expect(c.Pop()).To(MatchError(chain.ErrEmptyChain))
		})
	})

	Describe("Reverse", func() {
		It("should reverse the order and swap head and tail", func() {
			entries := fill(c, 5)
			head, tail := c.Head(), c.Tail()

			c.Reverse()
			Expect(c.Head()).To(BeIdenticalTo(tail))
			Expect(c.Tail()).To(BeIdenticalTo(head))

			reversed := make([]chain.Entry[int], 0, len(entries))
			for i := len(entries) - 1; i >= 0; i-- {
				reversed = append(reversed, entries[i])
			}
			Expect(c.GetAll()).To(Equal(reversed))
			expectConsistent(c)
		})

		It("should be a no-op on empty and single-node chains", func() {
			c.Reverse()
			expectConsistent(c)

			c.Append(entry("a", 1))
			c.Reverse()
			Expect(c.String()).To(Equal("1 -> null"))
			expectConsistent(c)
		})
	})

	It("should render values in order with a null sentinel", func() {
		strs := chain.NewChain[string]()
		strs.Append(chain.Entry[string]{Key: "x", Value: "v1"})
		strs.Append(chain.Entry[string]{Key: "y", Value: "v2"})
		Expect(strs.String()).To(Equal("v1 -> v2 -> null"))
	})
})
