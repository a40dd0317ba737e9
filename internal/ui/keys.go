package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Prev key.Binding
	Next key.Binding
	Jump key.Binding
	Help key.Binding
	Quit key.Binding

	Up   key.Binding
	Down key.Binding

	// categories
	Add      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding

	// journal
	NewEntry key.Binding
	Save     key.Binding
	Copy     key.Binding

	// mood and home
	Note   key.Binding
	Select key.Binding

	Field  key.Binding
	Cancel key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Prev: key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev page")),
		Next: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next page")),
		Jump: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "jump")),
		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),

		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add category")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:   key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
		MoveUp:   key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
		MoveDown: key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),

		NewEntry: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new entry")),
		Save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy entry")),

		Note:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "mood note")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),

		Field:  key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Jump, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Jump, k.Up, k.Down, k.Help, k.Quit},
		{k.Add, k.Edit, k.Delete, k.MoveUp, k.MoveDown},
		{k.NewEntry, k.Save, k.Copy, k.Field, k.Cancel},
		{k.Note, k.Select},
	}
}
