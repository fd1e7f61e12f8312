package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gowaypoint/pkg/csvfile"
	"github.com/philipparndt/gowaypoint/pkg/geo"
	"github.com/philipparndt/gowaypoint/pkg/laneformat"
)

var (
	utmZone   int
	utmOutput string

	latlonZone   string
	latlonOutput string
)

var utmCmd = &cobra.Command{
	Use:   "utm [file]",
	Short: "Add or refresh UTM columns",
	Long: `Derive utm_easting, utm_northing and utm_zone from latitude and longitude.
All waypoints are projected into one zone: --zone, or the first waypoint's zone.`,
	Args: cobra.ExactArgs(1),
	RunE: runUTM,
}

var latlonCmd = &cobra.Command{
	Use:   "latlon [file]",
	Short: "Derive latitude and longitude from UTM columns",
	Args:  cobra.ExactArgs(1),
	RunE:  runLatLon,
}

func init() {
	rootCmd.AddCommand(utmCmd)
	utmCmd.Flags().IntVar(&utmZone, "zone", 0, "UTM zone number (default: zone of the first waypoint)")
	utmCmd.Flags().StringVarP(&utmOutput, "output", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(latlonCmd)
	latlonCmd.Flags().StringVar(&latlonZone, "zone", laneformat.DefaultZone.String(), "UTM zone with band letter")
	latlonCmd.Flags().StringVarP(&latlonOutput, "output", "o", "", "output file (default stdout)")
}

func runUTM(cmd *cobra.Command, args []string) error {
	session, doc, err := openSession(args[0])
	if err != nil {
		return err
	}
	if err := session.EnableUTM(utmZone); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "zone %d\n", session.Trajectory().ZoneNumber())
	return writeTable(cmd.OutOrStdout(), utmOutput, session.Table(), doc)
}

func runLatLon(cmd *cobra.Command, args []string) error {
	zone, err := geo.ParseZone(latlonZone)
	if err != nil {
		return err
	}
	doc, err := csvfile.ReadFile(args[0])
	if err != nil {
		return err
	}
	tbl, err := laneformat.AddLatLonFromUTM(doc.Table, zone)
	if err != nil {
		return err
	}
	return writeTable(cmd.OutOrStdout(), latlonOutput, tbl, doc)
}
