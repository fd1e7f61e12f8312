package main

import (
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gowaypoint/pkg/analysis"
	"github.com/philipparndt/gowaypoint/pkg/csvfile"
)

var (
	infoGaps      int
	infoShortest  int
	infoMinLength float64
	infoMaxLength float64
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about a trajectory",
	Long:  "Show waypoint count, path length, bounds and segment spacing statistics.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().IntVar(&infoGaps, "gaps", 3, "number of largest gaps to list")
	infoCmd.Flags().IntVar(&infoShortest, "shortest", 0, "number of shortest segments to list")
	infoCmd.Flags().Float64Var(&infoMinLength, "min-length", 0, "list segments at least this long (metres)")
	infoCmd.Flags().Float64Var(&infoMaxLength, "max-length", math.MaxFloat64, "list segments at most this long (metres)")
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	traj, _, err := csvfile.Load(filename)
	if err != nil {
		return err
	}
	result := analysis.AnalyzeTrajectory(traj)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Trajectory Information")
	fmt.Fprintln(out, "======================")
	fmt.Fprintf(out, "File: %s\n\n", filename)

	fmt.Fprintf(out, "Waypoints: %d\n", result.WaypointCount)
	if result.UTMZone != 0 {
		fmt.Fprintf(out, "UTM zone: %d\n", result.UTMZone)
	}
	if result.WaypointCount == 0 {
		return nil
	}
	fmt.Fprintf(out, "Bounds: %s\n", analysis.FormatBound(result.Bounds))
	fmt.Fprintf(out, "Length: %s\n\n", analysis.FormatMeasurement(result.TotalLength, "m"))

	if result.SegmentCount == 0 {
		return nil
	}
	fmt.Fprintln(out, "Segment Spacing:")
	fmt.Fprintf(out, "  Minimum: %s\n", analysis.FormatMeasurement(result.MinSegmentLength, "m"))
	fmt.Fprintf(out, "  Maximum: %s\n", analysis.FormatMeasurement(result.MaxSegmentLength, "m"))
	fmt.Fprintf(out, "  Average: %s\n", analysis.FormatMeasurement(result.AvgSegmentLength, "m"))

	if infoGaps > 0 {
		fmt.Fprintln(out, "\nLargest Gaps:")
		for _, s := range analysis.FindLongestSegments(result, infoGaps) {
			printSegment(out, s)
		}
	}
	if infoShortest > 0 {
		fmt.Fprintln(out, "\nShortest Segments:")
		for _, s := range analysis.FindShortestSegments(result, infoShortest) {
			printSegment(out, s)
		}
	}
	if cmd.Flags().Changed("min-length") || cmd.Flags().Changed("max-length") {
		segments := analysis.FindSegmentsByLength(result, infoMinLength, infoMaxLength)
		fmt.Fprintf(out, "\nSegments in [%s, %s]: %d\n",
			analysis.FormatMeasurement(infoMinLength, "m"), analysis.FormatMeasurement(infoMaxLength, "m"), len(segments))
		for _, s := range segments {
			printSegment(out, s)
		}
	}
	return nil
}

func printSegment(out io.Writer, s analysis.SegmentInfo) {
	fmt.Fprintf(out, "  %d -> %d: %s\n", s.Index, s.Index+1, analysis.FormatMeasurement(s.Length, "m"))
}
