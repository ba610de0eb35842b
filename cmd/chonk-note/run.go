package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "charm.land/bubbletea/v2"
	charmlog "github.com/charmbracelet/log"

	"github.com/jackgrauer/chonk-note/internal/app"
	"github.com/jackgrauer/chonk-note/internal/config"
	"github.com/jackgrauer/chonk-note/internal/layout"
	"github.com/jackgrauer/chonk-note/internal/notes"
	"github.com/jackgrauer/chonk-note/internal/theme"
)

// filterMouseMotion drops mouse motion events unless a selection drag is in
// progress. All-motion tracking floods the update loop otherwise.
func filterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}
	if m, ok := model.(*app.Model); ok && !m.Dragging() {
		return nil
	}
	return msg
}

// loadConfig honors the --config flag; without it the xdg path is used and
// load failures fall back to defaults with a warning.
func loadConfig() (*config.UserConfig, error) {
	if configPath != "" {
		return config.LoadUserConfigFrom(configPath)
	}
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		log.Printf("Warning: Failed to load config, using defaults: %v", err)
		userConfig = config.DefaultConfig()
	}
	return userConfig, nil
}

func runEditor(noteID, feedPath string) error {
	if debugMode {
		charmlog.SetLevel(charmlog.DebugLevel)
	}

	userConfig, err := loadConfig()
	if err != nil {
		return err
	}
	if debugMode {
		path, _ := config.GetConfigPath()
		log.Printf("Configuration: %s", path)
	}

	config.ApplyOverrides(config.Overrides{
		ThemeName:     themeName,
		HideStatusBar: hideStatusBar,
		UndoDepth:     undoDepth,
		LayoutRows:    layoutRows,
		LayoutCols:    layoutCols,
	}, userConfig)

	if err := theme.Initialize(config.ThemeName); err != nil {
		log.Printf("Warning: %v", err)
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck // flushed below

	var note *notes.Note
	if noteID != "" {
		n, err := store.Get(noteID)
		if err != nil {
			return fmt.Errorf("could not open note %q: %w", noteID, err)
		}
		note = &n
	}

	autosaver := notes.NewAutosaver(store,
		time.Duration(userConfig.Editor.AutosaveDelaySec)*time.Second)

	layoutOpts := layout.DefaultOptions()
	layoutOpts.Rows = userConfig.Layout.Rows
	layoutOpts.Cols = userConfig.Layout.Cols
	layoutOpts.WordGap = userConfig.Layout.WordGap
	layoutOpts.ColumnGap = userConfig.Layout.ColumnGap
	layoutOpts.LineGap = userConfig.Layout.LineGap

	model := app.New(app.Options{
		KeybindRegistry: config.NewKeybindRegistry(userConfig),
		Store:           store,
		Autosaver:       autosaver,
		Note:            note,
		FeedPath:        feedPath,
		LayoutOptions:   layoutOpts,
		UndoDepth:       userConfig.Editor.UndoDepth,
	})

	frameRate := config.NormalFPS
	if fps > 0 {
		frameRate = fps
	}
	p := tea.NewProgram(
		model,
		tea.WithFPS(frameRate),
		tea.WithoutSignalHandler(),
		tea.WithFilter(filterMouseMotion),
	)

	// Live-reload keybindings and appearance on config file edits.
	stopWatch, watchErr := config.Watch(func(cfg *config.UserConfig) {
		p.Send(app.ConfigReloadedMsg{Config: cfg})
	})
	if watchErr == nil {
		defer stopWatch()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Send(tea.QuitMsg{})
	}()

	_, err = p.Run()

	if flushErr := autosaver.Close(); flushErr != nil {
		log.Printf("Warning: final autosave failed: %v", flushErr)
	}

	if err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

func openStore() (*notes.Store, error) {
	path, err := notes.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("could not determine notes database path: %w", err)
	}
	store, err := notes.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open notes database: %w", err)
	}
	return store, nil
}
