package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	deleteIndices []int
	deleteFrom    int
	deleteTo      int
	deleteBetween bool
	deleteOutput  string
)

var deleteCmd = &cobra.Command{
	Use:   "delete [file]",
	Short: "Delete waypoints by index or range",
	Long: `Delete waypoints by index (--index, repeatable), by half-open range
(--from/--to), or strictly between two indices (--index A --index B --between).`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().IntSliceVar(&deleteIndices, "index", nil, "waypoint index to delete")
	deleteCmd.Flags().IntVar(&deleteFrom, "from", 0, "first index of the range")
	deleteCmd.Flags().IntVar(&deleteTo, "to", 0, "index after the last of the range")
	deleteCmd.Flags().BoolVar(&deleteBetween, "between", false, "delete waypoints strictly between the two given indices")
	deleteCmd.Flags().StringVarP(&deleteOutput, "output", "o", "", "output file (default stdout)")
	deleteCmd.MarkFlagsRequiredTogether("from", "to")
	deleteCmd.MarkFlagsMutuallyExclusive("index", "from")
}

func runDelete(cmd *cobra.Command, args []string) error {
	session, doc, err := openSession(args[0])
	if err != nil {
		return err
	}

	var removed int
	switch {
	case cmd.Flags().Changed("from"):
		if err := session.DeleteRange(deleteFrom, deleteTo); err != nil {
			return err
		}
		removed = deleteTo - deleteFrom
	case len(deleteIndices) > 0:
		if err := session.SetSelection(deleteIndices); err != nil {
			return err
		}
		if deleteBetween {
			removed, err = session.DeleteBetweenSelected()
		} else {
			removed, err = session.DeleteSelected()
		}
		if err != nil {
			return err
		}
	default:
		return errors.New("nothing to delete: use --index or --from/--to")
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "deleted %d waypoints, %d remaining\n", removed, session.Len())
	return writeTable(cmd.OutOrStdout(), deleteOutput, session.Table(), doc)
}
