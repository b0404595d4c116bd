package tui

import "github.com/charmbracelet/bubbles/key"

type tableKeys struct {
	Up     key.Binding
	Down   key.Binding
	Remove key.Binding
	Toggle key.Binding
}

func defaultTableKeys() tableKeys {
	return tableKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Remove: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "remove")),
		Toggle: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle list")),
	}
}

type appKeys struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Add       key.Binding
	Switch    key.Binding
	Submit    key.Binding
	Leave     key.Binding
}

func defaultAppKeys() appKeys {
	return appKeys{
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
		Add:       key.NewBinding(key.WithKeys("a", "/"), key.WithHelp("a", "add")),
		Switch:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch focus")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
		Leave:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}
