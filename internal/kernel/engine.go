// internal/kernel/engine.go

package kernel

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"intrsim/internal/memory"
)

// MaxDepth bounds FORK/EXEC nesting so a program that EXECs itself fails
// instead of overflowing the stack.
const MaxDepth = 512

// ErrRecursionLimit is returned when FORK/EXEC nesting exceeds MaxDepth.
var ErrRecursionLimit = errors.New("fork/exec nesting too deep")

// Catalog is the set of external programs EXEC can load.
type Catalog interface {
	// Size returns the memory footprint of program in MB.
	Size(program string) (int, bool)
	// Trace returns the raw trace lines of program.
	Trace(program string) ([]string, error)
}

// Result is what every engine invocation returns to its caller.
type Result struct {
	Timeline  []Event
	Snapshots []Snapshot
	End       int // simulated time when the invocation finished
}

// ExecutionText renders the timeline, one "<time>, <duration>, <label>" per line.
func (r Result) ExecutionText() string {
	var b strings.Builder
	for _, ev := range r.Timeline {
		b.WriteString(ev.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// StatusText renders every snapshot in emission order.
func (r Result) StatusText() string {
	var b strings.Builder
	for _, s := range r.Snapshots {
		b.WriteString(s.String())
	}
	return b.String()
}

// Machine is the state threaded forward through the recursion in execution
// order: the partition table and the pid counter. Nothing else is shared
// between invocations.
type Machine struct {
	Memory *memory.PartitionTable
	PIDs   *PIDAllocator

	depth int
}

// NewMachine wraps a partition table with a fresh pid allocator.
func NewMachine(mem *memory.PartitionTable) *Machine {
	return &Machine{Memory: mem, PIDs: NewPIDAllocator()}
}

// Engine replays traces. It holds only read-only collaborators and the
// delay source.
type Engine struct {
	cfg     Config
	vectors VectorTable
	devices DeviceTable
	catalog Catalog
	delays  DelaySource
}

// NewEngine creates an engine.
func NewEngine(cfg Config, vectors VectorTable, devices DeviceTable, catalog Catalog, delays DelaySource) *Engine {
	return &Engine{
		cfg:     cfg,
		vectors: vectors,
		devices: devices,
		catalog: catalog,
		delays:  delays,
	}
}

// Run simulates a whole trace from time 0. It creates and allocates the init
// process, then hands the parsed trace to Simulate.
func (e *Engine) Run(lines []string, m *Machine) (Result, error) {
	trace, err := ParseTrace(lines)
	if err != nil {
		return Result{}, err
	}
	root := NewInitPCB()
	if err := m.Memory.Allocate(&root); err != nil {
		return Result{}, fmt.Errorf("init: %w", err)
	}
	logrus.Debugf("engine: init in partition %d, %d directives", root.Partition, len(trace))
	return e.Simulate(trace, 0, root, NewAncestryQueue(), m)
}

// Simulate walks trace starting at start with current as the running process.
//
// FORK and EXEC hand the rest of the work to recursive invocations and end
// this pass. Any directives they do not pass on are dropped.
func (e *Engine) Simulate(trace []Directive, start int, current PCB, queue AncestryQueue, m *Machine) (Result, error) {
	f := &frame{clock: NewClock(start)}

	for i, d := range trace {
		switch d.Kind {
		case KindCPU:
			f.clock.Emit(d.Operand, EventCPUBurst, "CPU Burst")
		case KindSyscall:
			if err := e.serviceDevice(f.clock, d, EventSyscallISR, "SYSCALL ISR"); err != nil {
				return Result{}, err
			}
		case KindEndIO:
			if err := e.serviceDevice(f.clock, d, EventEndIOISR, "ENDIO ISR"); err != nil {
				return Result{}, err
			}
		case KindFork:
			return e.fork(f, d, trace[i+1:], current, queue, m)
		case KindExec:
			return e.exec(f, d, current, queue, m)
		case KindIfChild, KindIfParent, KindEndIf:
			return Result{}, fmt.Errorf("%w: %s outside a FORK bracket", ErrMalformedDirective, d)
		default:
			return Result{}, fmt.Errorf("%w: unknown kind %d", ErrMalformedDirective, int(d.Kind))
		}
	}
	return f.result(), nil
}

// serviceDevice emits the interrupt entry, the device service time and IRET.
func (e *Engine) serviceDevice(c *Clock, d Directive, kind EventKind, label string) error {
	delay, err := e.devices.Delay(d.Operand)
	if err != nil {
		return fmt.Errorf("%s: %w", d, err)
	}
	if err := e.enterISR(c, d.Operand); err != nil {
		return fmt.Errorf("%s: %w", d, err)
	}
	c.Emit(delay, kind, label)
	c.Emit(1, EventIRET, "IRET")
	return nil
}

func (e *Engine) enterISR(c *Clock, interrupt int) error {
	events, end, err := Boilerplate(c.Now(), interrupt, e.cfg.Timing(), e.vectors)
	if err != nil {
		return err
	}
	c.Splice(Result{Timeline: events, End: end})
	return nil
}

func (e *Engine) fork(f *frame, d Directive, rest []Directive, parent PCB, queue AncestryQueue, m *Machine) (Result, error) {
	childTrace, parentTrace, err := SplitFork(rest)
	if err != nil {
		return Result{}, err
	}
	if err := e.enterISR(f.clock, e.cfg.ForkVector); err != nil {
		return Result{}, fmt.Errorf("%s: %w", d, err)
	}
	f.clock.Emit(d.Operand, EventClonePCB, "cloning the PCB")

	child := parent.Fork(m.PIDs.Next())
	if err := m.Memory.Allocate(&child); err != nil {
		return Result{}, fmt.Errorf("%s: child of pid %d: %w", d, parent.PID, err)
	}
	f.clock.Emit(0, EventScheduler, "scheduler called")
	f.clock.Emit(1, EventIRET, "IRET")

	withParent := queue.Push(parent)
	f.snapshot(d, child, withParent)
	logrus.Debugf("engine: t=%d pid %d forked pid %d (partition %d)", f.clock.Now(), parent.PID, child.PID, child.Partition)

	if err := m.enter(); err != nil {
		return Result{}, err
	}
	defer m.leave()

	childRes, err := e.Simulate(childTrace, f.clock.Now(), child, withParent, m)
	if err != nil {
		return Result{}, err
	}
	f.splice(childRes)

	resumed, parentQueue, _ := withParent.Pop()
	logrus.Debugf("engine: t=%d pid %d resumes", f.clock.Now(), resumed.PID)
	parentRes, err := e.Simulate(parentTrace, f.clock.Now(), resumed, parentQueue, m)
	if err != nil {
		return Result{}, err
	}
	f.splice(parentRes)

	return f.result(), nil
}

func (e *Engine) exec(f *frame, d Directive, current PCB, queue AncestryQueue, m *Machine) (Result, error) {
	if err := e.enterISR(f.clock, e.cfg.ExecVector); err != nil {
		return Result{}, fmt.Errorf("%s: %w", d, err)
	}
	size, ok := e.catalog.Size(d.Program)
	if !ok {
		return Result{}, fmt.Errorf("%s: %w: %q", d, ErrProgramNotFound, d.Program)
	}
	f.clock.Emit(d.Operand, EventProgramSize, fmt.Sprintf("Program is %d Mb large", size))
	f.clock.Emit(size*e.cfg.LoadMSPerMB, EventLoadProgram, "loading program into memory")

	m.Memory.Free(&current)
	current.Program = d.Program
	current.Size = size
	if err := m.Memory.Allocate(&current); err != nil {
		return Result{}, fmt.Errorf("%s: pid %d: %w", d, current.PID, err)
	}

	f.clock.Emit(e.delays.Between(e.cfg.RandomMinMS, e.cfg.RandomMaxMS), EventMarkPartition, "marking partition as occupied")
	f.clock.Emit(e.delays.Between(e.cfg.RandomMinMS, e.cfg.RandomMaxMS), EventUpdatePCB, "updating PCB")
	f.clock.Emit(0, EventScheduler, "scheduler called")
	f.clock.Emit(1, EventIRET, "IRET")
	f.snapshot(d, current, queue)
	logrus.Debugf("engine: t=%d pid %d now runs %s (partition %d)", f.clock.Now(), current.PID, current.Program, current.Partition)

	lines, err := e.catalog.Trace(d.Program)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", d, err)
	}
	trace, err := ParseTrace(lines)
	if err != nil {
		return Result{}, fmt.Errorf("program %s: %w", d.Program, err)
	}

	if err := m.enter(); err != nil {
		return Result{}, err
	}
	defer m.leave()

	res, err := e.Simulate(trace, f.clock.Now(), current, queue, m)
	if err != nil {
		return Result{}, err
	}
	f.splice(res)
	return f.result(), nil
}

// SplitFork divides the directives that follow a FORK into the child's and
// the parent's sub-traces. Directives under IF_CHILD go to the child, those
// under IF_PARENT to the parent, and everything after the matching ENDIF to
// both. Directives before the first branch marker go to neither. Brackets of
// nested FORKs inside a branch are copied through untouched.
func SplitFork(rest []Directive) (child, parent []Directive, err error) {
	const (
		none = iota
		inChild
		inParent
	)
	branch := none
	depth := 0
	for j, d := range rest {
		if depth == 0 {
			switch d.Kind {
			case KindIfChild:
				branch = inChild
				continue
			case KindIfParent:
				branch = inParent
				continue
			case KindEndIf:
				tail := rest[j+1:]
				child = append(child, tail...)
				parent = append(parent, tail...)
				return child, parent, nil
			}
		}
		switch d.Kind {
		case KindFork:
			depth++
		case KindEndIf:
			depth--
		}
		switch branch {
		case inChild:
			child = append(child, d)
		case inParent:
			parent = append(parent, d)
		}
	}
	return nil, nil, fmt.Errorf("%w: no ENDIF after FORK", ErrUnbalancedForkBracket)
}

// frame is the output of one Simulate invocation while it is being built.
type frame struct {
	clock     *Clock
	snapshots []Snapshot
}

func (f *frame) snapshot(trigger Directive, running PCB, q AncestryQueue) {
	f.snapshots = append(f.snapshots, newSnapshot(f.clock.Now(), trigger, running, q))
}

func (f *frame) splice(r Result) {
	f.clock.Splice(r)
	f.snapshots = append(f.snapshots, r.Snapshots...)
}

func (f *frame) result() Result {
	return Result{
		Timeline:  f.clock.Events(),
		Snapshots: f.snapshots,
		End:       f.clock.Now(),
	}
}

func (m *Machine) enter() error {
	if m.depth >= MaxDepth {
		return fmt.Errorf("%w (limit %d)", ErrRecursionLimit, MaxDepth)
	}
	m.depth++
	return nil
}

func (m *Machine) leave() { m.depth-- }

