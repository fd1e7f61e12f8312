package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gowaypoint/pkg/analysis"
	"github.com/philipparndt/gowaypoint/pkg/csvfile"
	"github.com/philipparndt/gowaypoint/pkg/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Reload a trajectory whenever it changes and print its statistics",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	filename := args[0]
	out := cmd.OutOrStdout()

	report := func(r watcher.Reload) {
		if r.Err != nil {
			logger.Warn("reload failed", "file", r.Path, "err", r.Err)
			fmt.Fprintf(out, "%s: %v\n", r.Path, r.Err)
			return
		}
		result := analysis.AnalyzeTrajectory(r.Trajectory)
		fmt.Fprintf(out, "%s: %d waypoints, %s\n", r.Path, result.WaypointCount,
			analysis.FormatMeasurement(result.TotalLength, "m"))
	}

	// Initial state, so the first print does not wait for a change
	traj, doc, err := csvfile.Load(filename)
	report(watcher.Reload{Path: filename, Trajectory: traj, Document: doc, Err: err})

	fw, err := watcher.NewFileWatcher(cfg.Watch.Debounce, func(err error) {
		logger.Error("watcher", "err", err)
	})
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.WatchTrajectory(filename, report); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	fw.Start(ctx)
	logger.Info("watching", "file", filename, "debounce", cfg.Watch.Debounce)

	<-ctx.Done()
	return nil
}

