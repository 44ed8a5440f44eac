package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	Home       key.Binding
	Search     key.Binding
	Titles     key.Binding
	Thumbnails key.Binding
	Up         key.Binding
	Down       key.Binding
	OpenVideo  key.Binding
	OpenUser   key.Binding
	NextField  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Home: key.NewBinding(
			key.WithKeys("esc", "h"),
			key.WithHelp("esc", "home"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Titles: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "titles"),
		),
		Thumbnails: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "thumbnails"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j", "down"),
		),
		OpenVideo: key.NewBinding(
			key.WithKeys("v", "enter"),
			key.WithHelp("v", "view video"),
		),
		OpenUser: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "view user"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
	}
}
