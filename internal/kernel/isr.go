// internal/kernel/isr.go

package kernel

import "fmt"

// VectorTable maps an interrupt number (the index) to its ISR address.
type VectorTable []string

// Lookup returns the ISR address for interrupt n.
func (v VectorTable) Lookup(n int) (string, error) {
	if n < 0 || n >= len(v) {
		return "", fmt.Errorf("%w: %d (table has %d entries)", ErrInvalidInterruptNumber, n, len(v))
	}
	return v[n], nil
}

// DeviceTable maps a device number (the index) to its service delay in ms.
type DeviceTable []int

// Delay returns the service delay of device n.
func (d DeviceTable) Delay(n int) (int, error) {
	if n < 0 || n >= len(d) {
		return 0, fmt.Errorf("%w: %d (table has %d entries)", ErrInvalidDeviceNumber, n, len(d))
	}
	return d[n], nil
}

// ISRTiming holds the fixed costs of entering an interrupt service routine.
type ISRTiming struct {
	ContextSave int // ms spent saving the context
	VectorBase  int // memory address of vector 0
	VectorSize  int // bytes per vector entry
}

// Boilerplate produces the kernel-entry fragment for an interrupt starting at
// now: switch to kernel mode, save the context, find the vector and load the
// ISR address into the PC. It returns the events and the time after them.
func Boilerplate(now, interrupt int, timing ISRTiming, vectors VectorTable) ([]Event, int, error) {
	addr, err := vectors.Lookup(interrupt)
	if err != nil {
		return nil, now, err
	}
	c := NewClock(now)
	c.Emit(1, EventKernelMode, "switch to kernel mode")
	c.Emit(timing.ContextSave, EventContextSave, "context saved")
	c.Emit(1, EventVectorLookup, fmt.Sprintf("find vector %d in memory position 0x%04X",
		interrupt, timing.VectorBase+interrupt*timing.VectorSize))
	c.Emit(1, EventLoadPC, fmt.Sprintf("load address %s into the PC", addr))
	return c.Events(), c.Now(), nil
}
