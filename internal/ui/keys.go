package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Escape     key.Binding

	// Claims actions
	Filters    key.Binding
	Columns    key.Binding
	ToggleMode key.Binding
	NewClaim   key.Binding
	EditClaim  key.Binding
	Customers  key.Binding
	Refresh    key.Binding
	SignOut    key.Binding

	// Column picker
	WidenCol    key.Binding
	NarrowCol   key.Binding
	CycleSortBy key.Binding
	MoveColDown key.Binding
	MoveColUp   key.Binding
	ResetLayout key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Forms
	Confirm key.Binding
	Space   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "e"),
			key.WithHelp("e", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next field"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous field"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back / cancel"),
		),

		Filters: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Filters"),
		),
		Columns: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Columns"),
		),
		ToggleMode: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "List/grid view"),
		),
		NewClaim: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add claim"),
		),
		EditClaim: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Edit claim"),
		),
		Customers: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Customers"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh"),
		),
		SignOut: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Sign out"),
		),

		WidenCol: key.NewBinding(
			key.WithKeys(">", "+"),
			key.WithHelp(">", "Widen column"),
		),
		NarrowCol: key.NewBinding(
			key.WithKeys("<", "-"),
			key.WithHelp("<", "Narrow column"),
		),
		CycleSortBy: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Cycle sort"),
		),
		MoveColDown: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "Move column down"),
		),
		MoveColUp: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "Move column up"),
		),
		ResetLayout: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Reset layout"),
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

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		Space: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "Toggle"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Filters, k.Columns, k.ToggleMode, k.NewClaim, k.EditClaim, k.Customers, k.Refresh},
		{k.CycleTheme, k.Help, k.SignOut, k.Quit},
	}
}
