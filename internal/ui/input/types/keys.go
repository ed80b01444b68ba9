package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the normal-mode bindings
type KeyMap struct {
	Present    key.Binding
	Medium     key.Binding
	Large      key.Binding
	Constant   key.Binding
	MediumNow  key.Binding
	LargeNow   key.Binding
	Prompt     key.Binding
	Dismiss    key.Binding
	TapOutside key.Binding
	Down       key.Binding
	Up         key.Binding
	Release    key.Binding
	FlickDown  key.Binding
	FlickUp    key.Binding
	ModalLock  key.Binding
	Veto       key.Binding
	Grabber    key.Binding
	Undimmed   key.Binding
	Journal    key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Present:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "present")),
		Medium:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "medium")),
		Large:      key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "large")),
		Constant:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "constant")),
		MediumNow:  key.NewBinding(key.WithKeys("M"), key.WithHelp("M", "medium, no animation")),
		LargeNow:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "large, no animation")),
		Prompt:     key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "type a detent")),
		Dismiss:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dismiss")),
		TapOutside: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "tap outside")),
		Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "drag down")),
		Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "drag up")),
		Release:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "release")),
		FlickDown:  key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "flick down")),
		FlickUp:    key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "flick up")),
		ModalLock:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "modal lock")),
		Veto:       key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "confirm before dismiss")),
		Grabber:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "grabber")),
		Undimmed:   key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undim medium")),
		Journal:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "event journal")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Present, k.Medium, k.Large, k.Down, k.Up, k.Release, k.Dismiss, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Present, k.Medium, k.Large, k.Constant, k.MediumNow, k.LargeNow, k.Prompt},
		{k.Down, k.Up, k.Release, k.FlickDown, k.FlickUp},
		{k.Dismiss, k.TapOutside, k.ModalLock, k.Veto, k.Undimmed, k.Grabber},
		{k.Journal, k.Help, k.Quit},
	}
}
