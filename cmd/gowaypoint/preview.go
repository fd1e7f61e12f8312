package main

import (
	"github.com/spf13/cobra"

	"github.com/philipparndt/gowaypoint/pkg/csvfile"
	"github.com/philipparndt/gowaypoint/pkg/preview"
)

var (
	previewOutput string
	previewWidth  int
	previewHeight int
	previewSelect []int
)

var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "Render a trajectory to a PNG image",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
	defaults := preview.DefaultOptions()
	previewCmd.Flags().StringVarP(&previewOutput, "output", "o", "", "PNG file to write")
	previewCmd.Flags().IntVar(&previewWidth, "width", defaults.Width, "image width in pixels")
	previewCmd.Flags().IntVar(&previewHeight, "height", defaults.Height, "image height in pixels")
	previewCmd.Flags().IntSliceVar(&previewSelect, "select", nil, "waypoints to highlight")
	_ = previewCmd.MarkFlagRequired("output")
}

func runPreview(cmd *cobra.Command, args []string) error {
	traj, _, err := csvfile.Load(args[0])
	if err != nil {
		return err
	}

	opts := preview.DefaultOptions()
	opts.Width = previewWidth
	opts.Height = previewHeight
	opts.Selected = previewSelect

	if err := preview.WritePNGFile(previewOutput, traj, opts); err != nil {
		return err
	}
	logger.Info("preview written", "file", previewOutput, "waypoints", traj.Len())
	return nil
}
