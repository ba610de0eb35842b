package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/jackgrauer/chonk-note/internal/config"
	"github.com/jackgrauer/chonk-note/internal/notes"
	"github.com/jackgrauer/chonk-note/internal/theme"
)

func notesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Manage saved notes",
		Long:  `List, search, show, and delete notes in the local database`,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all notes, most recently updated first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close() //nolint:errcheck
			found, err := store.List()
			if err != nil {
				return err
			}
			printNotesTable(found)
			return nil
		},
	}

	newCmd := &cobra.Command{
		Use:   "new <title>",
		Short: "Create an empty note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close() //nolint:errcheck
			n := notes.Note{Title: args[0]}
			if err := store.Save(&n); err != nil {
				return err
			}
			fmt.Printf("Created note %s\n", n.ID)
			return nil
		},
	}

	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search notes by title, content, or tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close() //nolint:errcheck
			found, err := store.Search(args[0])
			if err != nil {
				return err
			}
			printNotesTable(found)
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a note's content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close() //nolint:errcheck
			n, err := store.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Println(n.Content)
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close() //nolint:errcheck
			if err := store.Delete(args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted note %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(listCmd, newCmd, searchCmd, showCmd, deleteCmd)
	return cmd
}

// printNotesTable renders notes as a bordered table. Content is summarized
// to its first line.
func printNotesTable(found []notes.Note) {
	if len(found) == 0 {
		fmt.Println(lipgloss.NewStyle().
			Foreground(theme.CLITableDim()).
			Render("No notes found."))
		return
	}

	rows := make([][]string, 0, len(found))
	for _, n := range found {
		title := n.Title
		if title == "" {
			title = firstLine(n.Content)
		}
		rows = append(rows, []string{
			n.ID,
			title,
			strings.Join(n.Tags, ", "),
			n.UpdatedAt.Local().Format("2006-01-02 15:04"),
		})
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.CLITableHeader()).
		Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.CLITableBorder())).
		Headers("ID", "Title", "Tags", "Updated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return cellStyle
		})

	fmt.Println(t.Render())
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return runewidth.Truncate(s, 60, "...")
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `Manage the chonk-note configuration file`,
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return fmt.Errorf("could not determine config path: %w", err)
			}
			fmt.Println(path)
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.WriteDefaultConfig()
			if err != nil {
				return err
			}
			fmt.Printf("Wrote default configuration to %s\n", path)
			return nil
		},
	}

	editCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		RunE: func(cmd *cobra.Command, args []string) error {
			return editConfigFile()
		},
	}

	cmd.AddCommand(pathCmd, initCmd, editCmd)
	return cmd
}

// editConfigFile opens the config file in the user's editor, creating the
// default file first if none exists.
func editConfigFile() error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if _, err := config.WriteDefaultConfig(); err != nil {
			return fmt.Errorf("could not create config file: %w", err)
		}
		fmt.Printf("Created default config at: %s\n", configPath)
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"vim", "vi", "nano", "emacs"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Please set $EDITOR environment variable")
	}

	c := exec.Command(editor, configPath)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func keybindsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys"},
		Short:   "Show keybindings",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all keybindings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listKeybindings()
		},
	}

	cmd.AddCommand(listCmd)
	return cmd
}

// listKeybindings prints every binding section as a table, resolved from
// the user's config so remaps show up.
func listKeybindings() error {
	userConfig, err := loadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	registry := config.NewKeybindRegistry(userConfig)

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.CLITableHeader()).
		Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableKey())

	for _, section := range config.GetKeybindings(registry) {
		rows := make([][]string, 0, len(section.Bindings))
		for _, binding := range section.Bindings {
			rows = append(rows, []string{binding.Key, binding.Description})
		}
		if len(rows) == 0 {
			continue
		}

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(theme.CLITableBorder())).
			Headers("Keys", "Action").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == -1 {
					return headerStyle
				}
				return cellStyle
			})

		fmt.Println(titleStyle.Render(section.Title))
		fmt.Println(t.Render())
		fmt.Println()
	}
	return nil
}
