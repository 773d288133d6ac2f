package input

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intrsim/internal/kernel"
)

func write(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestReadLines_StripsCarriageReturns(t *testing.T) {
	path := write(t, t.TempDir(), "trace.txt", "CPU, 1\r\nCPU, 2\r\n")
	got, err := ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"CPU, 1", "CPU, 2"}, got)
}

func TestReadLines_Missing(t *testing.T) {
	_, err := ReadLines(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadVectorTable(t *testing.T) {
	path := write(t, t.TempDir(), "vector_table.txt", "0X01E3\n0X029C\n\n0X0695\n")
	v, err := LoadVectorTable(path)
	require.NoError(t, err)
	assert.Equal(t, kernel.VectorTable{"0X01E3", "0X029C", "0X0695"}, v)
}

func TestLoadDeviceTable(t *testing.T) {
	dir := t.TempDir()
	d, err := LoadDeviceTable(write(t, dir, "device_table.txt", "110\n150\n 15 \n"))
	require.NoError(t, err)
	assert.Equal(t, kernel.DeviceTable{110, 150, 15}, d)

	_, err = LoadDeviceTable(write(t, dir, "bad.txt", "110\nfast\n"))
	assert.ErrorContains(t, err, "line 2")
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "external_files.txt", "program1, 10\nprogram2, 15\n\n")
	write(t, dir, "program1.txt", "CPU, 100\n")

	c, err := LoadCatalog(path, dir)
	require.NoError(t, err)

	size, ok := c.Size("program2")
	assert.True(t, ok)
	assert.Equal(t, 15, size)
	_, ok = c.Size("program3")
	assert.False(t, ok)
	assert.Equal(t, []string{"program1", "program2"}, c.Programs())

	lines, err := c.Trace("program1")
	require.NoError(t, err)
	assert.Equal(t, []string{"CPU, 100"}, lines)

	_, err = c.Trace("program2")
	assert.Error(t, err, "program2.txt does not exist")
}

func TestLoadCatalog_Malformed(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"nocomma.txt":  "program1 10\n",
		"noname.txt":   ", 10\n",
		"badsize.txt":  "program1, big\n",
		"zerosize.txt": "program1, 0\n",
	} {
		_, err := LoadCatalog(write(t, dir, name, body), dir)
		assert.Error(t, err, name)
	}
}

func TestCatalog_SatisfiesKernelCatalog(t *testing.T) {
	var _ kernel.Catalog = NewCatalog(".", map[string]int{"a": 1})
}
