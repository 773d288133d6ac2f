package main

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"intrsim/internal/input"
	"intrsim/internal/kernel"
	"intrsim/internal/memory"
)

// runOptions are the flags shared by run, watch and view.
type runOptions struct {
	configPath   string // YAML config
	vectorsPath  string // interrupt vector table
	devicesPath  string // device delay table
	programsPath string // external program catalog
	programDir   string // where <program>.txt traces live; defaults to the trace's directory
	outDir       string // where artifacts are written
	csvPath      string // optional timeline CSV
	seed         int64  // overrides the config seed when set
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "intrsim",
		Short:         "Trace-driven simulator of interrupts, FORK and EXEC",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level: %s", logLevel)
			}
			logrus.SetLevel(level)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	root.AddCommand(newRunCmd(), newWatchCmd(), newViewCmd())
	return root
}

func (o *runOptions) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.configPath, "config", "", "YAML config file (defaults are used when empty)")
	f.StringVar(&o.vectorsPath, "vectors", "vector_table.txt", "Interrupt vector table")
	f.StringVar(&o.devicesPath, "devices", "device_table.txt", "Device delay table")
	f.StringVar(&o.programsPath, "programs", "external_files.txt", "External program catalog")
	f.StringVar(&o.programDir, "program-dir", "", "Directory holding <program>.txt traces (default: the trace's directory)")
	f.StringVar(&o.outDir, "out", ".", "Output directory")
	f.StringVar(&o.csvPath, "csv", "", "Also write the timeline as CSV to this path")
	f.Int64Var(&o.seed, "seed", 0, "Seed for the EXEC bookkeeping delays (0 = wall clock)")
}

// simulate loads every input and runs the trace once.
func (o *runOptions) simulate(cmd *cobra.Command, tracePath string) (kernel.Result, error) {
	cfg, err := kernel.Load(o.configPath)
	if err != nil {
		return kernel.Result{}, err
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = o.seed
	}

	vectors, err := input.LoadVectorTable(o.vectorsPath)
	if err != nil {
		return kernel.Result{}, err
	}
	devices, err := input.LoadDeviceTable(o.devicesPath)
	if err != nil {
		return kernel.Result{}, err
	}
	dir := o.programDir
	if dir == "" {
		dir = filepath.Dir(tracePath)
	}
	catalog, err := input.LoadCatalog(o.programsPath, dir)
	if err != nil {
		return kernel.Result{}, err
	}
	for _, name := range catalog.Programs() {
		size, _ := catalog.Size(name)
		logrus.Debugf("catalog: %s, %d MB", name, size)
	}

	mem, err := memory.NewPartitionTable(cfg.Partitions)
	if err != nil {
		return kernel.Result{}, err
	}
	lines, err := input.ReadLines(tracePath)
	if err != nil {
		return kernel.Result{}, err
	}

	delays := kernel.NewSeededDelays(cfg.Seed)
	logrus.Infof("Starting simulation of %s with seed=%d, %d partitions", tracePath, delays.Seed(), mem.Len())

	engine := kernel.NewEngine(cfg, vectors, devices, catalog, delays)
	res, err := engine.Run(lines, kernel.NewMachine(mem))
	if err != nil {
		return kernel.Result{}, fmt.Errorf("%s: %w", tracePath, err)
	}

	for _, p := range mem.Partitions() {
		owner := "free"
		if !p.Free() {
			owner = fmt.Sprintf("pid %d", p.Owner)
		}
		logrus.Infof("memory: partition %d (%d MB): %s", p.Number, p.Capacity, owner)
	}
	logrus.Infof("Simulation complete at t=%d ms: %d events, %d snapshots", res.End, len(res.Timeline), len(res.Snapshots))
	return res, nil
}
