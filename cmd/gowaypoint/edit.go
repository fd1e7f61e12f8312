package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gowaypoint/internal/editor"
	"github.com/philipparndt/gowaypoint/pkg/csvfile"
)

var (
	editOutput string
	editScript string
)

var editCmd = &cobra.Command{
	Use:   "edit [file]",
	Short: "Edit a trajectory interactively or from a script",
	Long: `Open a trajectory in an edit session driven by line commands read from
stdin or --script. Type "help" for the command list. "save" writes to --output,
or back to the input file when no output was given.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVarP(&editOutput, "output", "o", "", "file written by save (default the input file)")
	editCmd.Flags().StringVar(&editScript, "script", "", "read commands from a file instead of stdin")
}

func runEdit(cmd *cobra.Command, args []string) error {
	filename := args[0]
	session, doc, err := openSession(filename)
	if err != nil {
		return err
	}

	save := func(s *editor.Session, path string) error {
		switch {
		case path != "":
		case editOutput != "":
			path = editOutput
		default:
			path = filename
		}
		return writeTable(cmd.OutOrStdout(), path, s.Table(), doc)
	}

	var in io.Reader = cmd.InOrStdin()
	if editScript != "" {
		file, err := os.Open(editScript)
		if err != nil {
			return err
		}
		defer file.Close()
		in = file
	}

	shell := editor.NewShell(session, cmd.OutOrStdout(), save)
	return shell.Run(cmd.Context(), in)
}
