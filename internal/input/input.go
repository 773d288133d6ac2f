// Package input loads the files a simulation reads: the trace, the interrupt
// vector table, the device delay table and the external program catalog.
package input

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"intrsim/internal/kernel"
)

// ReadLines returns the lines of a text file without line terminators.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lines, nil
}

// LoadVectorTable reads one ISR address per line; line i is vector i.
func LoadVectorTable(path string) (kernel.VectorTable, error) {
	lines, err := ReadLines(path)
	if err != nil {
		return nil, err
	}
	var v kernel.VectorTable
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		v = append(v, l)
	}
	logrus.Debugf("input: %d vectors from %s", len(v), path)
	return v, nil
}

// LoadDeviceTable reads one delay in ms per line; line i is device i.
func LoadDeviceTable(path string) (kernel.DeviceTable, error) {
	lines, err := ReadLines(path)
	if err != nil {
		return nil, err
	}
	var d kernel.DeviceTable
	for i, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%s line %d: bad delay %q", path, i+1, l)
		}
		d = append(d, n)
	}
	logrus.Debugf("input: %d devices from %s", len(d), path)
	return d, nil
}

// Catalog is the external program list plus the directory holding each
// program's trace as <name>.txt.
type Catalog struct {
	dir   string
	sizes map[string]int
}

// LoadCatalog reads "<program>, <size MB>" lines from path. Program traces
// are looked up in dir.
func LoadCatalog(path, dir string) (*Catalog, error) {
	lines, err := ReadLines(path)
	if err != nil {
		return nil, err
	}
	c := &Catalog{dir: dir, sizes: make(map[string]int)}
	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		name, size, ok := strings.Cut(l, ",")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%s line %d: want \"<program>, <size>\", got %q", path, i+1, l)
		}
		n, err := strconv.Atoi(strings.TrimSpace(size))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%s line %d: bad size %q", path, i+1, strings.TrimSpace(size))
		}
		c.sizes[name] = n
	}
	return c, nil
}

// NewCatalog builds a catalog from a size map.
func NewCatalog(dir string, sizes map[string]int) *Catalog {
	c := &Catalog{dir: dir, sizes: make(map[string]int, len(sizes))}
	for k, v := range sizes {
		c.sizes[k] = v
	}
	return c
}

func (c *Catalog) Size(program string) (int, bool) {
	n, ok := c.sizes[program]
	return n, ok
}

func (c *Catalog) Trace(program string) ([]string, error) {
	return ReadLines(c.TracePath(program))
}

// TracePath is where the trace of program is expected.
func (c *Catalog) TracePath(program string) string {
	return filepath.Join(c.dir, program+".txt")
}

// Programs lists the catalog in name order.
func (c *Catalog) Programs() []string {
	names := make([]string, 0, len(c.sizes))
	for n := range c.sizes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
