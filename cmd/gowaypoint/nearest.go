package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gowaypoint/pkg/geo"
)

var nearestLat, nearestLon float64

var nearestCmd = &cobra.Command{
	Use:   "nearest [file]",
	Short: "Find the waypoint nearest a position",
	Args:  cobra.ExactArgs(1),
	RunE:  runNearest,
}

func init() {
	rootCmd.AddCommand(nearestCmd)
	nearestCmd.Flags().Float64Var(&nearestLat, "lat", 0, "latitude")
	nearestCmd.Flags().Float64Var(&nearestLon, "lon", 0, "longitude")
	nearestCmd.MarkFlagsRequiredTogether("lat", "lon")
	_ = nearestCmd.MarkFlagRequired("lat")
}

func runNearest(cmd *cobra.Command, args []string) error {
	session, _, err := openSession(args[0])
	if err != nil {
		return err
	}
	p, err := geo.NewLatLon(nearestLat, nearestLon)
	if err != nil {
		return err
	}
	n, err := session.NearestLatLon(p)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Index: %d\n", n.Index)
	fmt.Fprintf(out, "Waypoint: %v\n", n.Waypoint.Geodetic)
	fmt.Fprintf(out, "Projected distance: %.3f m\n", n.Distance)
	fmt.Fprintf(out, "Ground distance: %.3f m\n", geo.Distance(p, n.Waypoint.Geodetic))
	return nil
}
