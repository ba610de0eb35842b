package config

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title    string
	Bindings []Keybinding
}

// GetKeybindings returns all keybinding sections for the help overlay.
// If registry is provided, it generates bindings dynamically from user config.
// If registry is nil, it falls back to hard-coded defaults.
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	if registry == nil {
		registry = NewKeybindRegistry(DefaultConfig())
	}

	sections := []KeybindingSection{}

	navigation := KeybindingSection{Title: "NAVIGATION"}
	addBinding(&navigation, registry, "move_up", "Move cursor up")
	addBinding(&navigation, registry, "move_down", "Move cursor down")
	addBinding(&navigation, registry, "move_left", "Move cursor left")
	addBinding(&navigation, registry, "move_right", "Move cursor right")
	addBinding(&navigation, registry, "scroll_up", "Scroll up a page")
	addBinding(&navigation, registry, "scroll_down", "Scroll down a page")
	addBinding(&navigation, registry, "line_start", "Start of line")
	addBinding(&navigation, registry, "line_end", "End of line")
	if len(navigation.Bindings) > 0 {
		sections = append(sections, navigation)
	}

	editing := KeybindingSection{Title: "EDITING"}
	addBinding(&editing, registry, "newline", "Split line")
	addBinding(&editing, registry, "delete_back", "Delete backwards")
	addBinding(&editing, registry, "delete_forward", "Delete forwards")
	addBinding(&editing, registry, "toggle_overwrite", "Insert/overwrite")
	addBinding(&editing, registry, "undo", "Undo")
	addBinding(&editing, registry, "redo", "Redo")
	if len(editing.Bindings) > 0 {
		sections = append(sections, editing)
	}

	selection := KeybindingSection{Title: "SELECTION & CLIPBOARD"}
	addBinding(&selection, registry, "select_up", "Extend selection up")
	addBinding(&selection, registry, "select_down", "Extend selection down")
	addBinding(&selection, registry, "select_left", "Extend selection left")
	addBinding(&selection, registry, "select_right", "Extend selection right")
	addBinding(&selection, registry, "clear_selection", "Clear selection")
	addBinding(&selection, registry, "cut", "Cut")
	addBinding(&selection, registry, "copy", "Copy")
	addBinding(&selection, registry, "paste", "Paste")
	if len(selection.Bindings) > 0 {
		sections = append(sections, selection)
	}

	app := KeybindingSection{Title: "APPLICATION"}
	addBinding(&app, registry, "save", "Save note")
	addBinding(&app, registry, "toggle_help", "Toggle help")
	addBinding(&app, registry, "quit", "Quit")
	if len(app.Bindings) > 0 {
		sections = append(sections, app)
	}

	sections = append(sections, getStaticHelpSections()...)
	return sections
}

// addBinding adds a keybinding to a section if the action has keys configured
func addBinding(section *KeybindingSection, registry *KeybindRegistry, action, description string) {
	keys := registry.GetKeysForDisplay(action)
	if keys != "" {
		section.Bindings = append(section.Bindings, Keybinding{
			Key:         keys,
			Description: description,
		})
	}
}

// getStaticHelpSections returns help sections that don't need dynamic
// binding info (mouse actions).
func getStaticHelpSections() []KeybindingSection {
	return []KeybindingSection{
		{
			Title: "MOUSE",
			Bindings: []Keybinding{
				{"Click", "Place cursor"},
				{"Drag", "Block selection"},
				{"Shift+Click", "Extend selection"},
				{"Wheel", "Scroll"},
			},
		},
	}
}
