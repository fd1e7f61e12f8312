package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gowaypoint/pkg/csvfile"
	"github.com/philipparndt/gowaypoint/pkg/export"
	"github.com/philipparndt/gowaypoint/pkg/trajectory"
)

var (
	exportFormat string
	exportName   string
	exportOutput string

	importOutput string
	importUTM    bool
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export a trajectory as KML, GPX, GeoJSON or an encoded polyline",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var importGPXCmd = &cobra.Command{
	Use:   "import-gpx [file.gpx|-]",
	Short: "Convert GPX tracks, routes or waypoints to a waypoint table",
	Long:  "Convert GPX tracks, routes or waypoints to a waypoint table. Use - to read stdin.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportGPX,
}

var importPolylineCmd = &cobra.Command{
	Use:   "import-polyline [file|-]",
	Short: "Convert an encoded polyline to a waypoint table",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportPolyline,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", string(export.FormatKML), "kml, gpx, geojson or polyline")
	exportCmd.Flags().StringVar(&exportName, "name", "", "track name (default file name)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(importGPXCmd)
	importGPXCmd.Flags().StringVarP(&importOutput, "output", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(importPolylineCmd)
	importPolylineCmd.Flags().StringVarP(&importOutput, "output", "o", "", "output file (default stdout)")
	importPolylineCmd.Flags().BoolVar(&importUTM, "utm", false, "add UTM columns")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	traj, _, err := csvfile.Load(args[0])
	if err != nil {
		return err
	}

	name := exportName
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportOutput != "" && exportOutput != "-" {
		file, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create file: %w", err)
		}
		defer file.Close()
		w = file
	}

	if err := export.Write(w, format, traj, name); err != nil {
		return err
	}
	logger.Info("exported", "format", string(format), "waypoints", traj.Len())
	return nil
}

// readInput reads a named file, or stdin for "-"
func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(name)
}

func runImportGPX(cmd *cobra.Command, args []string) error {
	var tbl trajectory.Table
	var err error
	if args[0] == "-" {
		data, readErr := readInput(cmd, args[0])
		if readErr != nil {
			return readErr
		}
		tbl, err = export.ReadGPX(data)
	} else {
		tbl, err = export.ImportGPX(args[0])
	}
	if err != nil {
		return err
	}
	traj, err := trajectory.Load(tbl)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "imported %d waypoints\n", traj.Len())
	return writeTable(cmd.OutOrStdout(), importOutput, traj.Table(), nil)
}

func runImportPolyline(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	points, err := export.DecodePolyline(data)
	if err != nil {
		return err
	}
	traj := trajectory.New(importUTM)
	if _, err := traj.AppendAll(points); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "imported %d waypoints\n", traj.Len())
	return writeTable(cmd.OutOrStdout(), importOutput, traj.Table(), nil)
}
