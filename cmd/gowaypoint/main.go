package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gowaypoint/internal/config"
	"github.com/philipparndt/gowaypoint/internal/editor"
	"github.com/philipparndt/gowaypoint/internal/logging"
	"github.com/philipparndt/gowaypoint/pkg/csvfile"
	"github.com/philipparndt/gowaypoint/pkg/trajectory"
	"github.com/philipparndt/gowaypoint/version"
)

var (
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gowaypoint",
	Short: "Edit and convert waypoint trajectories",
	Long: `gowaypoint edits ordered waypoint trajectories stored as CSV tables.
It keeps latitude/longitude, Web-Mercator and UTM coordinates consistent while
adding, deleting, interpolating and translating waypoints, and converts
between waypoint tables, lane tables, KML, GPX, GeoJSON and encoded polylines.`,
	Version:       version.GetFullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}
		logger = logging.New(cfg.Log, cmd.ErrOrStderr())
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Close()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openSession loads a trajectory file into an edit session
func openSession(filename string) (*editor.Session, *csvfile.Document, error) {
	traj, doc, err := csvfile.Load(filename)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("loaded", "file", filename, "waypoints", traj.Len())
	return editor.NewSession(traj, editor.OptionsFromConfig(cfg.Edit), logger.Logger), doc, nil
}

// writeTable writes a table to path, or to w when path is empty or "-"
func writeTable(w io.Writer, path string, tbl trajectory.Table, doc *csvfile.Document) error {
	if path == "" || path == "-" {
		return csvfile.Write(w, tbl, doc)
	}
	if err := csvfile.WriteFile(path, tbl, doc); err != nil {
		return err
	}
	logger.Info("wrote", "file", path, "rows", len(tbl.Rows))
	return nil
}
