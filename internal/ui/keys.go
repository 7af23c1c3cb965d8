package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit         key.Binding
	Help         key.Binding
	CycleTheme   key.Binding
	Refresh      key.Binding
	DismissError key.Binding
	Activity     key.Binding
	Back         key.Binding
	Tab          key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Open   key.Binding

	// Lists
	New           key.Binding
	Rename        key.Binding
	Describe      key.Binding
	Delete        key.Binding
	ToggleDefault key.Binding
	Share         key.Binding

	// Items
	Toggle        key.Binding
	HideCompleted key.Binding

	// Prompts
	Confirm key.Binding
	Cancel  key.Binding
	Yes     key.Binding
	No      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r", "ctrl+r"),
			key.WithHelp("r", "Refresh"),
		),
		DismissError: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Dismiss error"),
		),
		Activity: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Activity log"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace", "h", "left"),
			key.WithHelp("esc", "Back to lists"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "Items/shares"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", "l", "right"),
			key.WithHelp("enter", "Open list"),
		),

		New: key.NewBinding(
			key.WithKeys("n", "a"),
			key.WithHelp("n", "New"),
		),
		Rename: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Rename"),
		),
		Describe: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "Edit description"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "Delete"),
		),
		ToggleDefault: key.NewBinding(
			key.WithKeys("*"),
			key.WithHelp("*", "Toggle default"),
		),
		Share: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Share list"),
		),

		Toggle: key.NewBinding(
			key.WithKeys(" ", "c"),
			key.WithHelp("space", "Check/uncheck"),
		),
		HideCompleted: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "Hide completed"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "Yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "No"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.New, k.Toggle, k.Refresh, k.Help, k.Quit}
}

// FullHelp returns key bindings grouped for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.Open, k.Back, k.Tab},
		{k.New, k.Rename, k.Describe, k.Delete, k.ToggleDefault, k.Share},
		{k.Toggle, k.HideCompleted},
		{k.Refresh, k.DismissError, k.Activity, k.CycleTheme, k.Help, k.Quit},
	}
}

// listsHelp is the footer for the lists overview.
func (k keyMap) listsHelp() []key.Binding {
	return []key.Binding{k.Open, k.New, k.Rename, k.Delete, k.ToggleDefault, k.Share, k.Help, k.Quit}
}

// itemsHelp is the footer for a single list.
func (k keyMap) itemsHelp(sharesFocused bool) []key.Binding {
	if sharesFocused {
		return []key.Binding{k.Tab, k.Delete, k.Share, k.Back, k.Help}
	}
	return []key.Binding{k.Toggle, k.New, k.Rename, k.Delete, k.HideCompleted, k.Tab, k.Back, k.Help}
}
