// internal/kernel/pcb.go

package kernel

import (
	"github.com/emirpasic/gods/lists/arraylist"

	"intrsim/internal/memory"
)

// PCB is the kernel's record of one simulated process.
type PCB struct {
	PID       int
	ParentPID int    // -1 for the initial process
	Program   string // current image
	Size      int    // MB
	Partition int    // 1-based partition number, -1 when unallocated
}

// NewInitPCB returns the initial process: pid 0, no parent, 1 MB "init".
func NewInitPCB() PCB {
	return PCB{
		PID:       0,
		ParentPID: -1,
		Program:   "init",
		Size:      1,
		Partition: memory.Unallocated,
	}
}

// Fork returns an unallocated clone of p running as pid.
func (p PCB) Fork(pid int) PCB {
	return PCB{
		PID:       pid,
		ParentPID: p.PID,
		Program:   p.Program,
		Size:      p.Size,
		Partition: memory.Unallocated,
	}
}

// memory.Process implementation

func (p *PCB) ID() int                  { return p.PID }
func (p *PCB) Footprint() int           { return p.Size }
func (p *PCB) PartitionNumber() int     { return p.Partition }
func (p *PCB) SetPartitionNumber(n int) { p.Partition = n }

// PIDAllocator hands out process ids. It is owned by one run and passed down
// the call tree by pointer.
type PIDAllocator struct {
	next int
}

// NewPIDAllocator returns an allocator whose first id is 1.
func NewPIDAllocator() *PIDAllocator {
	return &PIDAllocator{next: 1}
}

// Next returns a fresh pid.
func (a *PIDAllocator) Next() int {
	pid := a.next
	a.next++
	return pid
}

// AncestryQueue holds parents suspended on a forked subtree, oldest first.
// It is persistent: Push and Pop return new queues and never touch the
// receiver, so sibling branches can hold their own copies.
type AncestryQueue struct {
	list *arraylist.List
}

// NewAncestryQueue returns a queue holding pcbs, oldest first.
func NewAncestryQueue(pcbs ...PCB) AncestryQueue {
	l := arraylist.New()
	for _, p := range pcbs {
		l.Add(p)
	}
	return AncestryQueue{list: l}
}

// Push returns a copy of q with p suspended on top.
func (q AncestryQueue) Push(p PCB) AncestryQueue {
	c := q.clone()
	c.list.Add(p)
	return c
}

// Pop returns the most recently suspended PCB and a copy of q without it.
// ok is false when q is empty.
func (q AncestryQueue) Pop() (top PCB, rest AncestryQueue, ok bool) {
	if q.Len() == 0 {
		return PCB{}, q, false
	}
	c := q.clone()
	last := c.list.Size() - 1
	v, _ := c.list.Get(last)
	c.list.Remove(last)
	return v.(PCB), c, true
}

// Len returns the number of suspended PCBs.
func (q AncestryQueue) Len() int {
	if q.list == nil {
		return 0
	}
	return q.list.Size()
}

// PCBs returns the suspended PCBs, oldest first.
func (q AncestryQueue) PCBs() []PCB {
	out := make([]PCB, 0, q.Len())
	if q.list == nil {
		return out
	}
	it := q.list.Iterator()
	for it.Next() {
		out = append(out, it.Value().(PCB))
	}
	return out
}

func (q AncestryQueue) clone() AncestryQueue {
	if q.list == nil {
		return NewAncestryQueue()
	}
	return AncestryQueue{list: arraylist.New(q.list.Values()...)}
}
