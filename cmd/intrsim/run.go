package main

import (
	"github.com/spf13/cobra"

	"intrsim/internal/output"
)

func newRunCmd() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run <trace>",
		Short: "Simulate a trace and write its execution and system status files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runOnce(cmd, args[0])
		},
	}
	opts.bind(cmd)
	return cmd
}

// runOnce simulates tracePath and persists the artifacts. Nothing is written
// when the simulation fails.
func (o *runOptions) runOnce(cmd *cobra.Command, tracePath string) error {
	res, err := o.simulate(cmd, tracePath)
	if err != nil {
		return err
	}
	if err := output.WriteArtifacts(output.ArtifactPaths(o.outDir, tracePath), res); err != nil {
		return err
	}
	if o.csvPath != "" {
		return output.SaveTimelineCSV(o.csvPath, res.Timeline)
	}
	return nil
}
