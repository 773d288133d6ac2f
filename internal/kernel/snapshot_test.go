package kernel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshot_String(t *testing.T) {
	// GIVEN a child running with two suspended ancestors
	s := Snapshot{
		Time:    24,
		Trigger: Directive{Kind: KindFork, Operand: 10},
		Running: PCB{PID: 2, ParentPID: 1, Program: "init", Size: 1, Partition: 4},
		Waiting: []PCB{
			{PID: 0, ParentPID: -1, Program: "init", Size: 1, Partition: 6},
			{PID: 1, ParentPID: 0, Program: "init", Size: 1, Partition: 5},
		},
	}

	// WHEN rendered
	out := s.String()

	// THEN the header names the time and trigger, and rows go running first, oldest waiting next
	rows := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Equal(t, "time: 24; current trace: FORK, 10", rows[0])
	assert.Len(t, rows, 8)
	assert.Equal(t, "|   2 |         init |                4 |    1 | running |", rows[4])
	assert.Equal(t, "|   0 |         init |                6 |    1 | waiting |", rows[5])
	assert.Equal(t, "|   1 |         init |                5 |    1 | waiting |", rows[6])

	// AND every table line has the same width
	for _, r := range rows[1:] {
		assert.Len(t, r, len(rows[1]), r)
	}
}

func TestSnapshot_ExecTrigger(t *testing.T) {
	s := Snapshot{
		Time:    195,
		Trigger: Directive{Kind: KindExec, Operand: 50, Program: "program1"},
		Running: PCB{PID: 0, ParentPID: -1, Program: "program1", Size: 10, Partition: 4},
	}
	assert.True(t, strings.HasPrefix(s.String(), "time: 195; current trace: EXEC program1, 50\n"))
	assert.Equal(t, 1, strings.Count(s.String(), "running"))
	assert.NotContains(t, s.String(), "waiting")
}

func TestResult_StatusTextConcatenatesSnapshots(t *testing.T) {
	a := Snapshot{Time: 1, Trigger: Directive{Kind: KindFork, Operand: 1}, Running: NewInitPCB()}
	b := Snapshot{Time: 2, Trigger: Directive{Kind: KindFork, Operand: 2}, Running: NewInitPCB()}
	r := Result{Snapshots: []Snapshot{a, b}}
	assert.Equal(t, a.String()+b.String(), r.StatusText())
}
