// Package config handles user configuration: the TOML config file under the
// XDG config dir, keybinding resolution, and runtime overrides from CLI
// flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/adrg/xdg"
	"github.com/fsnotify/fsnotify"
	toml "github.com/pelletier/go-toml/v2"
)

// Rendering rate for the bubbletea program.
const (
	NormalFPS = 60
	LowFPS    = 30
)

// Runtime settings mutated once at startup from config/flags.
var (
	// ThemeName selects the bubbletint theme.
	ThemeName = "tokyo-night"

	// ShowStatusBar controls the bottom status line.
	ShowStatusBar = true
)

// UserConfig is the on-disk configuration.
type UserConfig struct {
	Keybindings KeybindingsConfig `toml:"keybindings"`
	Appearance  AppearanceConfig  `toml:"appearance"`
	Editor      EditorConfig      `toml:"editor"`
	Layout      LayoutConfig      `toml:"layout"`
}

// KeybindingsConfig maps action names to the keys bound to them, grouped the
// way the help overlay groups them.
type KeybindingsConfig struct {
	Navigation  map[string][]string `toml:"navigation"`
	Editing     map[string][]string `toml:"editing"`
	Selection   map[string][]string `toml:"selection"`
	Application map[string][]string `toml:"application"`
}

// AppearanceConfig holds display options.
type AppearanceConfig struct {
	Theme         string `toml:"theme"`
	ShowStatusBar bool   `toml:"show_status_bar"`
}

// EditorConfig holds editing behavior options.
type EditorConfig struct {
	UndoDepth        int `toml:"undo_depth"`
	ScrollStep       int `toml:"scroll_step"`
	AutosaveDelaySec int `toml:"autosave_delay_seconds"`
}

// LayoutConfig tunes the document layout mapper.
type LayoutConfig struct {
	Rows      int     `toml:"rows"`
	Cols      int     `toml:"cols"`
	WordGap   float64 `toml:"word_gap"`
	ColumnGap float64 `toml:"column_gap"`
	LineGap   float64 `toml:"line_gap"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Keybindings: KeybindingsConfig{
			Navigation: map[string][]string{
				"move_up":     {"up"},
				"move_down":   {"down"},
				"move_left":   {"left"},
				"move_right":  {"right"},
				"scroll_up":   {"pgup"},
				"scroll_down": {"pgdown"},
				"line_start":  {"home"},
				"line_end":    {"end"},
			},
			Editing: map[string][]string{
				"delete_back":      {"backspace"},
				"delete_forward":   {"delete"},
				"newline":          {"enter"},
				"undo":             {"ctrl+z"},
				"redo":             {"ctrl+y", "ctrl+shift+z"},
				"toggle_overwrite": {"insert"},
			},
			Selection: map[string][]string{
				"select_up":       {"shift+up"},
				"select_down":     {"shift+down"},
				"select_left":     {"shift+left"},
				"select_right":    {"shift+right"},
				"clear_selection": {"esc"},
				"cut":             {"ctrl+x"},
				"copy":            {"ctrl+c"},
				"paste":           {"ctrl+v"},
			},
			Application: map[string][]string{
				"save":        {"ctrl+s"},
				"toggle_help": {"ctrl+g"},
				"quit":        {"ctrl+q"},
			},
		},
		Appearance: AppearanceConfig{
			Theme:         "tokyo-night",
			ShowStatusBar: true,
		},
		Editor: EditorConfig{
			UndoDepth:        1000,
			ScrollStep:       3,
			AutosaveDelaySec: 2,
		},
		Layout: LayoutConfig{
			Rows:      100,
			Cols:      200,
			WordGap:   0.3,
			ColumnGap: 1.5,
			LineGap:   0.5,
		},
	}
}

// GetConfigPath returns the config file location, creating parent
// directories as needed.
func GetConfigPath() (string, error) {
	return xdg.ConfigFile("chonk-note/config.toml")
}

// LoadUserConfig reads the user's config file, layered over the defaults so
// a partial file only overrides what it names. A missing file is not an
// error; the defaults are returned.
func LoadUserConfig() (*UserConfig, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	return loadConfigFile(path)
}

// LoadUserConfigFrom reads a config file at an explicit path, for the
// --config flag. Unlike LoadUserConfig, a missing file here is an error:
// the user named it.
func LoadUserConfigFrom(path string) (*UserConfig, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return loadConfigFile(path)
}

func loadConfigFile(path string) (*UserConfig, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// WriteDefaultConfig writes the default configuration to the config path,
// refusing to clobber an existing file.
func WriteDefaultConfig() (string, error) {
	path, err := GetConfigPath()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config path: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config already exists at %s", path)
	}
	data, err := toml.Marshal(DefaultConfig())
	if err != nil {
		return "", fmt.Errorf("failed to encode defaults: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}
	return path, nil
}

// Overrides are CLI flag values that win over the config file. Zero values
// mean "not set".
type Overrides struct {
	ThemeName     string
	HideStatusBar bool
	UndoDepth     int
	LayoutRows    int
	LayoutCols    int
}

// ApplyOverrides copies flag overrides into the config and the runtime
// globals.
func ApplyOverrides(o Overrides, cfg *UserConfig) {
	if cfg != nil {
		if o.ThemeName != "" {
			cfg.Appearance.Theme = o.ThemeName
		}
		if o.HideStatusBar {
			cfg.Appearance.ShowStatusBar = false
		}
		if o.UndoDepth > 0 {
			cfg.Editor.UndoDepth = o.UndoDepth
		}
		if o.LayoutRows > 0 {
			cfg.Layout.Rows = o.LayoutRows
		}
		if o.LayoutCols > 0 {
			cfg.Layout.Cols = o.LayoutCols
		}
		ThemeName = cfg.Appearance.Theme
		ShowStatusBar = cfg.Appearance.ShowStatusBar
	} else if o.ThemeName != "" {
		ThemeName = o.ThemeName
	}
}

// Watch reloads the config file whenever it changes on disk and delivers the
// result on the returned channel. Close the watcher by canceling via the
// returned stop func.
func Watch(onChange func(*UserConfig)) (stop func(), err error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}
	if err := w.Add(path); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}
	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				cfg, err := loadConfigFile(path)
				if err != nil {
					continue
				}
				onChange(cfg)
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return func() { w.Close() }, nil
}

// allBindings flattens the grouped keybinding maps.
func (k KeybindingsConfig) allBindings() map[string][]string {
	out := make(map[string][]string)
	for _, group := range []map[string][]string{
		k.Navigation, k.Editing, k.Selection, k.Application,
	} {
		for action, keys := range group {
			out[action] = append(out[action], keys...)
		}
	}
	return out
}

// ActionDescriptions maps action names to human-readable help text.
var ActionDescriptions = map[string]string{
	"move_up":          "Move cursor up",
	"move_down":        "Move cursor down",
	"move_left":        "Move cursor left",
	"move_right":       "Move cursor right",
	"scroll_up":        "Scroll up a page",
	"scroll_down":      "Scroll down a page",
	"line_start":       "Jump to start of line",
	"line_end":         "Jump to end of line",
	"delete_back":      "Delete character before cursor",
	"delete_forward":   "Delete character under cursor",
	"newline":          "Split line at cursor",
	"undo":             "Undo last edit",
	"redo":             "Redo undone edit",
	"toggle_overwrite": "Toggle insert/overwrite",
	"select_up":        "Extend selection up",
	"select_down":      "Extend selection down",
	"select_left":      "Extend selection left",
	"select_right":     "Extend selection right",
	"clear_selection":  "Clear selection",
	"cut":              "Cut selection",
	"copy":             "Copy selection",
	"paste":            "Paste clipboard",
	"save":             "Save note",
	"toggle_help":      "Toggle help overlay",
	"quit":             "Quit",
}

// KeybindRegistry resolves keys to actions and back. Lookup tables are built
// once so per-keystroke resolution is a map hit.
type KeybindRegistry struct {
	actionToKeys map[string][]string
	keyToAction  map[string]string
}

// NewKeybindRegistry builds a registry from the config's keybindings.
func NewKeybindRegistry(cfg *UserConfig) *KeybindRegistry {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	r := &KeybindRegistry{
		actionToKeys: make(map[string][]string),
		keyToAction:  make(map[string]string),
	}
	norm := NewKeyNormalizer()
	for action, keys := range cfg.Keybindings.allBindings() {
		for _, key := range keys {
			for _, k := range norm.NormalizeKey(key) {
				r.keyToAction[k] = action
			}
		}
		r.actionToKeys[action] = append(r.actionToKeys[action], keys...)
	}
	return r
}

// GetKeys returns the keys bound to action, or nil.
func (r *KeybindRegistry) GetKeys(action string) []string {
	return r.actionToKeys[action]
}

// GetAction returns the action bound to key, or "".
func (r *KeybindRegistry) GetAction(key string) string {
	norm := NewKeyNormalizer()
	for _, k := range norm.NormalizeKey(key) {
		if action, ok := r.keyToAction[k]; ok {
			return action
		}
	}
	return ""
}

// GetKeysForDisplay returns the bound keys joined for the help overlay.
func (r *KeybindRegistry) GetKeysForDisplay(action string) string {
	return strings.Join(r.actionToKeys[action], ", ")
}

// keyAliases maps between the names different terminals and users use for
// the same key.
var keyAliases = map[string][]string{
	"enter":  {"enter", "return"},
	"return": {"return", "enter"},
	"esc":    {"esc", "escape"},
	"escape": {"escape", "esc"},
	"pgup":   {"pgup", "pageup"},
	"pgdown": {"pgdown", "pagedown", "pgdn"},
}

// KeyNormalizer canonicalizes key strings from config files.
type KeyNormalizer struct{}

// NewKeyNormalizer returns a normalizer.
func NewKeyNormalizer() *KeyNormalizer {
	return &KeyNormalizer{}
}

// NormalizeKey lowercases the key and expands aliases, returning every
// spelling the key may arrive under.
func (n *KeyNormalizer) NormalizeKey(key string) []string {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return nil
	}
	if alts, ok := keyAliases[key]; ok {
		return alts
	}
	return []string{key}
}

// ValidateKey reports whether the key string is usable in a binding, with a
// reason when it is not.
func (n *KeyNormalizer) ValidateKey(key string) (bool, string) {
	key = strings.TrimSpace(key)
	if key == "" {
		return false, "empty key"
	}
	if strings.HasSuffix(key, "+") {
		return false, "trailing modifier separator"
	}
	return true, ""
}
