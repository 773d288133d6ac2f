// internal/output/output.go

package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"intrsim/internal/kernel"
)

// Artifacts names the two files a run produces.
type Artifacts struct {
	Execution string
	Status    string
}

// ArtifactPaths derives "execution_<base>.txt" and "system_status_<base>.txt"
// in dir from the trace file name.
func ArtifactPaths(dir, tracePath string) Artifacts {
	base := strings.TrimSuffix(filepath.Base(tracePath), filepath.Ext(tracePath))
	return Artifacts{
		Execution: filepath.Join(dir, "execution_"+base+".txt"),
		Status:    filepath.Join(dir, "system_status_"+base+".txt"),
	}
}

// WriteArtifacts writes both texts or neither. Each text goes to a temp file
// next to its target; targets are replaced only after both temps are complete.
func WriteArtifacts(a Artifacts, res kernel.Result) error {
	files := []struct {
		path string
		body string
	}{
		{a.Execution, res.ExecutionText()},
		{a.Status, res.StatusText()},
	}

	temps := make([]string, 0, len(files))
	cleanup := func() {
		for _, t := range temps {
			os.Remove(t)
		}
	}
	for _, f := range files {
		tmp, err := writeTemp(f.path, f.body)
		if err != nil {
			cleanup()
			return err
		}
		temps = append(temps, tmp)
	}
	for i, f := range files {
		if err := os.Rename(temps[i], f.path); err != nil {
			cleanup()
			return fmt.Errorf("output: %w", err)
		}
		logrus.Infof("output: wrote %s", f.path)
	}
	return nil
}

func writeTemp(target, body string) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*")
	if err != nil {
		return "", fmt.Errorf("output: %w", err)
	}
	if _, err := io.WriteString(f, body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("output: %s: %w", target, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("output: %s: %w", target, err)
	}
	return f.Name(), nil
}

// WriteTimelineCSV writes one CSV record per timeline event, with a header.
func WriteTimelineCSV(w io.Writer, timeline []kernel.Event) error {
	cw := csv.NewWriter(w)

	// write header
	if err := cw.Write([]string{"time", "duration", "event", "label"}); err != nil {
		return err
	}
	for _, ev := range timeline {
		rec := []string{
			strconv.Itoa(ev.Time),
			strconv.Itoa(ev.Duration),
			ev.Kind.String(),
			ev.Label,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveTimelineCSV writes the timeline CSV to path.
func SaveTimelineCSV(path string, timeline []kernel.Event) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteTimelineCSV(f, timeline); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logrus.Infof("output: wrote %s", path)
	return nil
}
