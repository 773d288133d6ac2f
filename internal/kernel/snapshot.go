// internal/kernel/snapshot.go

package kernel

import (
	"fmt"
	"strings"
)

// Snapshot is the PCB state recorded after a FORK or EXEC.
type Snapshot struct {
	Time    int
	Trigger Directive
	Running PCB
	Waiting []PCB // oldest suspended first
}

func newSnapshot(now int, trigger Directive, running PCB, q AncestryQueue) Snapshot {
	return Snapshot{
		Time:    now,
		Trigger: trigger,
		Running: running,
		Waiting: q.PCBs(),
	}
}

var snapshotRule = "+" + strings.Repeat("-", 56) + "+\n"

// String renders the snapshot header followed by a PCB table: the running
// process first, then every waiting one, oldest first.
func (s Snapshot) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "time: %d; current trace: %s\n", s.Time, s.Trigger)
	b.WriteString(snapshotRule)
	fmt.Fprintf(&b, "| %3s | %12s | %16s | %4s | %7s |\n", "PID", "program name", "partition number", "size", "state")
	b.WriteString(snapshotRule)
	writeRow(&b, s.Running, "running")
	for _, p := range s.Waiting {
		writeRow(&b, p, "waiting")
	}
	b.WriteString(snapshotRule)
	return b.String()
}

func writeRow(b *strings.Builder, p PCB, state string) {
	fmt.Fprintf(b, "| %3d | %12s | %16d | %4d | %7s |\n", p.PID, p.Program, p.Partition, p.Size, state)
}
