package main

import (
	"github.com/spf13/cobra"

	"github.com/philipparndt/gowaypoint/pkg/csvfile"
	"github.com/philipparndt/gowaypoint/pkg/geo"
	"github.com/philipparndt/gowaypoint/pkg/laneformat"
	"github.com/philipparndt/gowaypoint/pkg/trajectory"
)

var (
	laneOutput string
	laneZone   string
)

var toLaneCmd = &cobra.Command{
	Use:   "to-lane [file]",
	Short: "Convert a waypoint table to a lane table",
	Args:  cobra.ExactArgs(1),
	RunE:  runToLane,
}

var fromLaneCmd = &cobra.Command{
	Use:   "from-lane [file]",
	Short: "Convert a lane table to a waypoint table",
	Args:  cobra.ExactArgs(1),
	RunE:  runFromLane,
}

func init() {
	rootCmd.AddCommand(toLaneCmd)
	toLaneCmd.Flags().StringVarP(&laneOutput, "output", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(fromLaneCmd)
	fromLaneCmd.Flags().StringVarP(&laneOutput, "output", "o", "", "output file (default stdout)")
	fromLaneCmd.Flags().StringVar(&laneZone, "zone", laneformat.DefaultZone.String(), "UTM zone written to every row")
}

func runToLane(cmd *cobra.Command, args []string) error {
	traj, _, err := csvfile.Load(args[0])
	if err != nil {
		return err
	}
	lane, err := laneformat.ToLane(traj)
	if err != nil {
		return err
	}
	return writeTable(cmd.OutOrStdout(), laneOutput, lane, nil)
}

func runFromLane(cmd *cobra.Command, args []string) error {
	zone, err := geo.ParseZone(laneZone)
	if err != nil {
		return err
	}
	doc, err := csvfile.ReadFile(args[0])
	if err != nil {
		return err
	}
	tbl, err := laneformat.FromLane(doc.Table, zone)
	if err != nil {
		return err
	}

	// Validate and re-derive UTM from the geodetic columns
	traj, err := trajectory.Load(tbl)
	if err != nil {
		return err
	}
	return writeTable(cmd.OutOrStdout(), laneOutput, traj.Table(), nil)
}
