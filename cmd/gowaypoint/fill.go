package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gowaypoint/pkg/geo"
)

var (
	fillLat1, fillLon1 float64
	fillLat2, fillLon2 float64
	fillSpacing        float64
	fillOutput         string
)

var fillCmd = &cobra.Command{
	Use:   "fill [file]",
	Short: "Append evenly spaced waypoints between two positions",
	Long: `Interpolate waypoints strictly between two positions at a fixed spacing
and append them to the trajectory. The spacing defaults to edit.fill_spacing.`,
	Args: cobra.ExactArgs(1),
	RunE: runFill,
}

func init() {
	rootCmd.AddCommand(fillCmd)
	fillCmd.Flags().Float64Var(&fillLat1, "lat1", 0, "latitude of the first position")
	fillCmd.Flags().Float64Var(&fillLon1, "lon1", 0, "longitude of the first position")
	fillCmd.Flags().Float64Var(&fillLat2, "lat2", 0, "latitude of the second position")
	fillCmd.Flags().Float64Var(&fillLon2, "lon2", 0, "longitude of the second position")
	fillCmd.Flags().Float64Var(&fillSpacing, "spacing", 0, "metres between generated waypoints")
	fillCmd.Flags().StringVarP(&fillOutput, "output", "o", "", "output file (default stdout)")
	fillCmd.MarkFlagsRequiredTogether("lat1", "lon1", "lat2", "lon2")
	_ = fillCmd.MarkFlagRequired("lat1")
}

func runFill(cmd *cobra.Command, args []string) error {
	session, doc, err := openSession(args[0])
	if err != nil {
		return err
	}

	if err := session.EnterFillMode(fillSpacing); err != nil {
		return err
	}
	if _, err := session.ClickLatLon(geo.LatLon{Lat: fillLat1, Lon: fillLon1}); err != nil {
		return err
	}
	res, err := session.ClickLatLon(geo.LatLon{Lat: fillLat2, Lon: fillLon2})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "added %d waypoints at %d\n", res.Count, res.First)
	if res.Capped {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: capped at %d points\n", session.Options().MaxPoints)
	}
	return writeTable(cmd.OutOrStdout(), fillOutput, session.Table(), doc)
}
