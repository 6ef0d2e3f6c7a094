// Package action defines the interface for UI component actions.
package action

import tea "github.com/charmbracelet/bubbletea"

// Action represents an action from a UI component.
// The ActionType method returns a string identifier for logging.
type Action interface {
	ActionType() string
}

// Msg wraps a UI action with its source component name.
// Popups report their results to the owning view this way.
type Msg struct {
	Source string // Component name: "confirm", "textinput", ...
	Action Action
}

var _ tea.Msg = Msg{}

// Is reports whether msg is an action.Msg from source.
func Is(msg tea.Msg, source string) (Action, bool) {
	m, ok := msg.(Msg)
	if !ok || m.Source != source {
		return nil, false
	}
	return m.Action, true
}
