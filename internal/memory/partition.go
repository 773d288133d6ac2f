// internal/memory/partition.go

package memory

import (
	"errors"
	"fmt"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/sirupsen/logrus"
)

// ErrMemoryExhausted is returned when no free partition can hold a request.
var ErrMemoryExhausted = errors.New("memory exhausted")

// Unallocated marks a process that holds no partition.
const Unallocated = -1

// DefaultLayout is the fixed partition layout in MB, partition 1 first.
var DefaultLayout = []int{40, 25, 15, 10, 8, 2}

// Process is anything that can own a partition.
type Process interface {
	ID() int
	Footprint() int
	PartitionNumber() int
	SetPartitionNumber(n int)
}

// Partition is one fixed-size slot of user memory.
type Partition struct {
	Number   int // 1-based
	Capacity int // MB
	Owner    int // pid, or Unallocated when free
}

// Free reports whether nobody occupies the partition.
func (p Partition) Free() bool { return p.Owner == Unallocated }

// PartitionTable is a fixed set of partitions with best-fit allocation.
// Partitions are never split or merged.
type PartitionTable struct {
	parts []Partition
	free  *redblacktree.Tree // free partitions ordered by capacity, then number
}

// NewPartitionTable builds a table from capacities in MB. Partition numbers
// follow the order given, starting at 1.
func NewPartitionTable(capacities []int) (*PartitionTable, error) {
	if len(capacities) == 0 {
		return nil, fmt.Errorf("partition table needs at least one partition")
	}
	t := &PartitionTable{
		parts: make([]Partition, len(capacities)),
		free:  redblacktree.NewWith(cmp),
	}
	for i, c := range capacities {
		if c <= 0 {
			return nil, fmt.Errorf("partition %d: capacity must be positive, got %d", i+1, c)
		}
		t.parts[i] = Partition{Number: i + 1, Capacity: c, Owner: Unallocated}
		t.free.Put(slotKey{c, i + 1}, i)
	}
	return t, nil
}

// Allocate assigns the smallest free partition that fits p. The table is left
// untouched when nothing fits.
func (t *PartitionTable) Allocate(p Process) error {
	if p.PartitionNumber() != Unallocated {
		return fmt.Errorf("pid %d already holds partition %d", p.ID(), p.PartitionNumber())
	}
	// number 0 sorts before every real partition of the same capacity
	node, found := t.free.Ceiling(slotKey{capacity: p.Footprint(), number: 0})
	if !found {
		logrus.Warnf("memory: no partition fits pid %d (%d MB)", p.ID(), p.Footprint())
		return fmt.Errorf("pid %d needs %d MB: %w", p.ID(), p.Footprint(), ErrMemoryExhausted)
	}
	key := node.Key.(slotKey)
	idx := node.Value.(int)
	t.free.Remove(key)
	t.parts[idx].Owner = p.ID()
	p.SetPartitionNumber(key.number)
	logrus.Debugf("memory: pid %d -> partition %d (%d MB)", p.ID(), key.number, key.capacity)
	return nil
}

// Free releases the partition held by p. No-op when p holds none.
func (t *PartitionTable) Free(p Process) {
	n := p.PartitionNumber()
	if n == Unallocated {
		return
	}
	if n >= 1 && n <= len(t.parts) {
		part := &t.parts[n-1]
		if !part.Free() {
			part.Owner = Unallocated
			t.free.Put(slotKey{part.Capacity, part.Number}, n-1)
		}
	}
	p.SetPartitionNumber(Unallocated)
}

// Partitions returns a copy of the partitions in table order.
func (t *PartitionTable) Partitions() []Partition {
	out := make([]Partition, len(t.parts))
	copy(out, t.parts)
	return out
}

// Len returns the number of partitions.
func (t *PartitionTable) Len() int { return len(t.parts) }

// FreeCount returns how many partitions are unoccupied.
func (t *PartitionTable) FreeCount() int { return t.free.Size() }

// Clone returns an independent copy of the table.
func (t *PartitionTable) Clone() *PartitionTable {
	c := &PartitionTable{
		parts: t.Partitions(),
		free:  redblacktree.NewWith(cmp),
	}
	for i, p := range c.parts {
		if p.Free() {
			c.free.Put(slotKey{p.Capacity, p.Number}, i)
		}
	}
	return c
}

// slotKey orders free partitions for best-fit lookup.
type slotKey struct {
	capacity int
	number   int
}

func cmp(a, b any) int {
	ka, kb := a.(slotKey), b.(slotKey)
	switch {
	case ka.capacity < kb.capacity:
		return -1
	case ka.capacity > kb.capacity:
		return 1
	case ka.number < kb.number:
		return -1
	case ka.number > kb.number:
		return 1
	default:
		return 0
	}
}
