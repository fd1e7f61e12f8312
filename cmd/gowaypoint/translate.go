package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gowaypoint/internal/editor"
	"github.com/philipparndt/gowaypoint/pkg/geo"
)

var (
	translateDX     float64
	translateDY     float64
	translateDir    string
	translateCM     float64
	translateSelect []int
	translateGround bool
	translateOutput string

	rebaseLat, rebaseLon float64
	rebaseOutput         string
)

var translateCmd = &cobra.Command{
	Use:   "translate [file]",
	Short: "Translate waypoints by a metric offset",
	Long: `Shift the selected waypoints (--select, repeatable) or all waypoints by
--dx metres east and --dy metres north, or by --cm centimetres in a --dir
direction. Offsets apply in the Web-Mercator plane unless --ground is set, in
which case they are ground metres.`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

var rebaseCmd = &cobra.Command{
	Use:   "rebase [file]",
	Short: "Shift a trajectory so its first waypoint lands on a position",
	Args:  cobra.ExactArgs(1),
	RunE:  runRebase,
}

func init() {
	rootCmd.AddCommand(translateCmd)
	translateCmd.Flags().Float64Var(&translateDX, "dx", 0, "metres east")
	translateCmd.Flags().Float64Var(&translateDY, "dy", 0, "metres north")
	translateCmd.Flags().StringVar(&translateDir, "dir", "", "direction for --cm (east, west, north, south)")
	translateCmd.Flags().Float64Var(&translateCM, "cm", 0, "centimetres to move in --dir")
	translateCmd.Flags().IntSliceVar(&translateSelect, "select", nil, "waypoint index to move (default all)")
	translateCmd.Flags().BoolVar(&translateGround, "ground", false, "interpret offsets as ground metres")
	translateCmd.Flags().StringVarP(&translateOutput, "output", "o", "", "output file (default stdout)")
	translateCmd.MarkFlagsRequiredTogether("dir", "cm")
	translateCmd.MarkFlagsMutuallyExclusive("dx", "dir")
	translateCmd.MarkFlagsMutuallyExclusive("dy", "dir")

	rootCmd.AddCommand(rebaseCmd)
	rebaseCmd.Flags().Float64Var(&rebaseLat, "lat", 0, "latitude for the first waypoint")
	rebaseCmd.Flags().Float64Var(&rebaseLon, "lon", 0, "longitude for the first waypoint")
	rebaseCmd.Flags().StringVarP(&rebaseOutput, "output", "o", "", "output file (default stdout)")
	rebaseCmd.MarkFlagsRequiredTogether("lat", "lon")
	_ = rebaseCmd.MarkFlagRequired("lat")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("ground") {
		cfg.Edit.GroundOffsets = translateGround
	}
	session, doc, err := openSession(args[0])
	if err != nil {
		return err
	}
	if err := session.SetSelection(translateSelect); err != nil {
		return err
	}

	if translateDir != "" {
		d, err := editor.ParseDirection(translateDir)
		if err != nil {
			return err
		}
		if err := session.Move(d, translateCM); err != nil {
			return err
		}
	} else if err := session.Translate(translateDX, translateDY); err != nil {
		return err
	}

	moved := len(session.Selection())
	if moved == 0 {
		moved = session.Len()
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "translated %d waypoints\n", moved)
	return writeTable(cmd.OutOrStdout(), translateOutput, session.Table(), doc)
}

func runRebase(cmd *cobra.Command, args []string) error {
	session, doc, err := openSession(args[0])
	if err != nil {
		return err
	}
	ref, err := geo.NewLatLon(rebaseLat, rebaseLon)
	if err != nil {
		return err
	}
	if err := session.Rebase(ref); err != nil {
		return err
	}
	return writeTable(cmd.OutOrStdout(), rebaseOutput, session.Table(), doc)
}
