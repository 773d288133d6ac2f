package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirective(t *testing.T) {
	tests := []struct {
		line string
		want Directive
	}{
		{"CPU, 50", Directive{Kind: KindCPU, Operand: 50}},
		{"SYSCALL, 4", Directive{Kind: KindSyscall, Operand: 4}},
		{"END_IO, 4", Directive{Kind: KindEndIO, Operand: 4}},
		{"FORK, 10", Directive{Kind: KindFork, Operand: 10}},
		{"IF_CHILD, 0", Directive{Kind: KindIfChild}},
		{"IF_PARENT, 0", Directive{Kind: KindIfParent}},
		{"ENDIF, 0", Directive{Kind: KindEndIf}},
		{"EXEC program1, 50", Directive{Kind: KindExec, Operand: 50, Program: "program1"}},
		{"  CPU ,7  ", Directive{Kind: KindCPU, Operand: 7}},
		{"CPU, 5\r", Directive{Kind: KindCPU, Operand: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseDirective(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDirective_Malformed(t *testing.T) {
	for _, line := range []string{
		"CPU",
		"CPU, ",
		"CPU, ten",
		"CPU, -3",
		"JUMP, 4",
		", 4",
		"EXEC, 10",
		"EXEC a b, 10",
		"CPU extra, 10",
	} {
		t.Run(line, func(t *testing.T) {
			_, err := ParseDirective(line)
			assert.ErrorIs(t, err, ErrMalformedDirective)
		})
	}
}

func TestDirective_StringRoundTrip(t *testing.T) {
	for _, line := range []string{"CPU, 50", "EXEC program1, 50", "ENDIF, 0"} {
		d, err := ParseDirective(line)
		require.NoError(t, err)
		assert.Equal(t, line, d.String())
	}
}

func TestParseTrace_SkipsBlankLinesAndReportsLineNumber(t *testing.T) {
	got, err := ParseTrace([]string{"CPU, 1", "", "   ", "CPU, 2"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = ParseTrace([]string{"CPU, 1", "BOGUS, 2"})
	require.ErrorIs(t, err, ErrMalformedDirective)
	assert.Contains(t, err.Error(), "line 2")
}

func TestKind_String(t *testing.T) {
	for name, k := range kindNames {
		assert.Equal(t, name, k.String())
	}
	assert.Equal(t, "UNKNOWN", Kind(99).String())
}
