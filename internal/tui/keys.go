package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Mode           key.Binding
	Edit           key.Binding
	ScaleUp        key.Binding
	ScaleDown      key.Binding
	ThresholdUp    key.Binding
	ThresholdDown  key.Binding
	Invert         key.Binding
	Theme          key.Binding
	Copy           key.Binding
	Save           key.Binding
	Help           key.Binding
	Quit           key.Binding
	ForceQuit      key.Binding
	controlsActive bool
}

func newKeyMap() keyMap {
	return keyMap{
		Mode: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "image/text"),
		),
		Edit: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "edit/controls"),
		),
		ScaleUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+/-", "scale"),
		),
		ScaleDown: key.NewBinding(
			key.WithKeys("-", "_"),
		),
		ThresholdUp: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("[/]", "threshold"),
		),
		ThresholdDown: key.NewBinding(
			key.WithKeys("["),
		),
		Invert: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "invert"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	if !k.controlsActive {
		return []key.Binding{k.Mode, k.Edit}
	}
	return []key.Binding{k.Mode, k.ScaleUp, k.ThresholdUp, k.Invert, k.Copy, k.Save, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Mode, k.Edit},
		{k.ScaleUp, k.ThresholdUp, k.Invert},
		{k.Theme, k.Copy, k.Save},
		{k.Help, k.Quit},
	}
}
