package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/howeyc/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "watch <trace>",
		Short: "Re-run the simulation whenever the trace, tables or program traces change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return opts.watch(ctx, cmd, args[0])
		},
	}
	opts.bind(cmd)
	return cmd
}

func (o *runOptions) watch(ctx context.Context, cmd *cobra.Command, tracePath string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, dir := range o.watchDirs(tracePath) {
		if err := watcher.Watch(dir); err != nil {
			return err
		}
		logrus.Infof("watch: watching %s", dir)
	}

	run := time.After(1 * time.Millisecond)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-run:
			run = nil
			if err := o.runOnce(cmd, tracePath); err != nil {
				logrus.Errorf("watch: %v", err)
			}
		case ev := <-watcher.Event:
			if !ev.IsAttrib() && o.isInput(ev.Name) {
				logrus.Debugf("watch: %s changed", ev.Name)
				run = time.After(100 * time.Millisecond)
			}
		case err := <-watcher.Error:
			logrus.Warnf("watch: watcher: %v", err)
		}
	}
}

// watchDirs returns the distinct directories holding the inputs.
func (o *runOptions) watchDirs(tracePath string) []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, p := range []string{tracePath, o.vectorsPath, o.devicesPath, o.programsPath, o.configPath} {
		if p == "" {
			continue
		}
		d := filepath.Clean(filepath.Dir(p))
		if !seen[d] {
			seen[d] = true
			dirs = append(dirs, d)
		}
	}
	if o.programDir != "" {
		if d := filepath.Clean(o.programDir); !seen[d] {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// isInput reports whether a change to name should trigger a re-run. Our own
// artifacts and temp files are ignored so a run cannot retrigger itself.
func (o *runOptions) isInput(name string) bool {
	base := filepath.Base(name)
	switch {
	case strings.HasPrefix(base, "."),
		strings.HasPrefix(base, "execution_"),
		strings.HasPrefix(base, "system_status_"):
		return false
	case o.csvPath != "" && filepath.Clean(name) == filepath.Clean(o.csvPath):
		return false
	}
	switch filepath.Ext(base) {
	case ".txt", ".yml", ".yaml":
		return true
	}
	return false
}
