// Package main implements chonk-note, a terminal editor for spatially
// laid-out text. Documents extracted from PDFs keep their two-dimensional
// arrangement on an unbounded grid, and free-form notes can be typed
// anywhere on the same grid.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode     bool
	configPath    string
	fps           int
	themeName     string
	hideStatusBar bool
	undoDepth     int
	layoutRows    int
	layoutCols    int
)

func main() {
	var noteID, feedPath string

	rootCmd := &cobra.Command{
		Use:   "chonk-note",
		Short: "Spatial grid editor for extracted documents and notes",
		Long: `chonk-note - spatial text editing on an unbounded grid

Text extracted from PDF documents keeps its spatial arrangement: columns
stay columns, headings keep their size class, and the cursor can go
anywhere. Free-form notes use the same grid, with autosave to a local
notes database.`,
		Example: `  # Start with an empty note
  chonk-note

  # Open a saved note
  chonk-note --note 4f8d2c1a

  # Load a document extraction feed
  chonk-note --feed page1.jsonl

  # List saved notes
  chonk-note notes list`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(noteID, feedPath)
		},
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVar(&noteID, "note", "", "Open the note with this ID")
	rootCmd.Flags().StringVar(&feedPath, "feed", "", "Populate the grid from a document feed file")

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Use this config file instead of the default")
	rootCmd.PersistentFlags().IntVar(&fps, "fps", 0, "Override the render frame rate")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme name")
	rootCmd.PersistentFlags().BoolVar(&hideStatusBar, "no-status-bar", false, "Hide the status bar")
	rootCmd.PersistentFlags().IntVar(&undoDepth, "undo-depth", 0, "Override the undo history depth")
	rootCmd.PersistentFlags().IntVar(&layoutRows, "rows", 0, "Grid rows for document layout")
	rootCmd.PersistentFlags().IntVar(&layoutCols, "cols", 0, "Grid columns for document layout")

	rootCmd.AddCommand(notesCmd(), configCmd(), keybindsCmd())

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}
