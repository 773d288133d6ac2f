// internal/kernel/event.go

package kernel

import "fmt"

// EventKind is the type of one timeline entry.
type EventKind int

const (
	EventKernelMode EventKind = iota
	EventContextSave
	EventVectorLookup
	EventLoadPC
	EventCPUBurst
	EventSyscallISR
	EventEndIOISR
	EventIRET
	EventClonePCB
	EventScheduler
	EventProgramSize
	EventLoadProgram
	EventMarkPartition
	EventUpdatePCB
)

func (ek EventKind) String() string {
	switch ek {
	case EventKernelMode:
		return "KernelMode"
	case EventContextSave:
		return "ContextSave"
	case EventVectorLookup:
		return "VectorLookup"
	case EventLoadPC:
		return "LoadPC"
	case EventCPUBurst:
		return "CPUBurst"
	case EventSyscallISR:
		return "SyscallISR"
	case EventEndIOISR:
		return "EndIOISR"
	case EventIRET:
		return "IRET"
	case EventClonePCB:
		return "ClonePCB"
	case EventScheduler:
		return "Scheduler"
	case EventProgramSize:
		return "ProgramSize"
	case EventLoadProgram:
		return "LoadProgram"
	case EventMarkPartition:
		return "MarkPartition"
	case EventUpdatePCB:
		return "UpdatePCB"
	default:
		return "Unknown"
	}
}

// Event is one line of the execution timeline.
type Event struct {
	Time     int // ms since the start of the run
	Duration int // ms
	Kind     EventKind
	Label    string
}

// String renders the event as "<time>, <duration>, <label>".
func (e Event) String() string {
	return fmt.Sprintf("%d, %d, %s", e.Time, e.Duration, e.Label)
}
