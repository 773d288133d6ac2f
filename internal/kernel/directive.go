// internal/kernel/directive.go

package kernel

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the activity named by one trace line.
type Kind int

const (
	KindCPU Kind = iota
	KindSyscall
	KindEndIO
	KindFork
	KindExec
	KindIfChild
	KindIfParent
	KindEndIf
)

var kindNames = map[string]Kind{
	"CPU":       KindCPU,
	"SYSCALL":   KindSyscall,
	"END_IO":    KindEndIO,
	"FORK":      KindFork,
	"EXEC":      KindExec,
	"IF_CHILD":  KindIfChild,
	"IF_PARENT": KindIfParent,
	"ENDIF":     KindEndIf,
}

func (k Kind) String() string {
	switch k {
	case KindCPU:
		return "CPU"
	case KindSyscall:
		return "SYSCALL"
	case KindEndIO:
		return "END_IO"
	case KindFork:
		return "FORK"
	case KindExec:
		return "EXEC"
	case KindIfChild:
		return "IF_CHILD"
	case KindIfParent:
		return "IF_PARENT"
	case KindEndIf:
		return "ENDIF"
	default:
		return "UNKNOWN"
	}
}

// Directive is one parsed trace line.
//
// Operand is a burst length for CPU, a device number for SYSCALL and END_IO,
// and a step duration for FORK and EXEC.
type Directive struct {
	Kind    Kind
	Operand int
	Program string // EXEC only
}

// String renders the directive back in trace syntax.
func (d Directive) String() string {
	if d.Kind == KindExec {
		return fmt.Sprintf("EXEC %s, %d", d.Program, d.Operand)
	}
	return fmt.Sprintf("%s, %d", d.Kind, d.Operand)
}

// ParseDirective parses "<ACTIVITY>, <operand>" or "EXEC <program>, <operand>".
func ParseDirective(line string) (Directive, error) {
	activity, operand, ok := strings.Cut(line, ",")
	if !ok {
		return Directive{}, fmt.Errorf("%w: %q: missing operand", ErrMalformedDirective, line)
	}
	activity = strings.TrimSpace(activity)
	operand = strings.TrimSpace(operand)

	n, err := strconv.Atoi(operand)
	if err != nil {
		return Directive{}, fmt.Errorf("%w: %q: operand %q is not a number", ErrMalformedDirective, line, operand)
	}
	if n < 0 {
		return Directive{}, fmt.Errorf("%w: %q: negative operand", ErrMalformedDirective, line)
	}

	fields := strings.Fields(activity)
	if len(fields) == 0 {
		return Directive{}, fmt.Errorf("%w: %q: missing activity", ErrMalformedDirective, line)
	}
	kind, known := kindNames[fields[0]]
	if !known {
		return Directive{}, fmt.Errorf("%w: %q: unknown activity %q", ErrMalformedDirective, line, fields[0])
	}

	d := Directive{Kind: kind, Operand: n}
	switch {
	case kind == KindExec:
		if len(fields) != 2 {
			return Directive{}, fmt.Errorf("%w: %q: EXEC takes exactly one program name", ErrMalformedDirective, line)
		}
		d.Program = fields[1]
	case len(fields) != 1:
		return Directive{}, fmt.Errorf("%w: %q: unexpected text after %s", ErrMalformedDirective, line, kind)
	}
	return d, nil
}

// ParseTrace parses every line of a trace, skipping blank ones.
func ParseTrace(lines []string) ([]Directive, error) {
	out := make([]Directive, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		d, err := ParseDirective(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		out = append(out, d)
	}
	return out, nil
}
