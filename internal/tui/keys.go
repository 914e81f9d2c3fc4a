package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Complete  key.Binding
	Sort      key.Binding
	Filter    key.Binding
	Quit      key.Binding
	ForceQuit key.Binding

	// confirm dialog
	Yes key.Binding
	No  key.Binding

	// form
	Submit    key.Binding
	Cancel    key.Binding
	NextField key.Binding
	PrevField key.Binding
	Left      key.Binding
	Right     key.Binding
	Toggle    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Complete:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete first")),
		Sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort by name")),
		Filter:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "high only")),
		Quit:      key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),

		Yes: key.NewBinding(key.WithKeys("y", "Y", "enter"), key.WithHelp("y", "yes")),
		No:  key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "no")),

		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		NextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "priority")),
		Right:     key.NewBinding(key.WithKeys("right", "l")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "reminder")),
	}
}

func (k keyMap) listBindings() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Delete, k.Complete, k.Sort, k.Filter}
}
