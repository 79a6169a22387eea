package drill

import (
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/flashquiz/internal/ui/layout"
)

type keyMap struct {
	Submit    key.Binding
	Next      key.Binding
	Backspace key.Binding
	Choose    key.Binding
	Move      key.Binding
	Quit      key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
}

var keys = keyMap{
	Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Submit")),
	Next:      key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("Enter", "Next")),
	Backspace: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "Delete")),
	Choose:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter/1-9", "Choose")),
	Move:      key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑↓", "Move")),
	Quit:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Quit")),
	Confirm:   key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("Y", "End drill")),
	Cancel:    key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("N", "Keep going")),
}

func hints(bindings ...key.Binding) []layout.KeyHint {
	out := make([]layout.KeyHint, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		out = append(out, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return out
}
