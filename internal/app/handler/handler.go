// Package handler provides a result type and chain function for action
// handlers.
package handler

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/folio/internal/keymap"
)

// Result represents the outcome of an action handler.
type Result struct {
	Handled bool
	Cmd     tea.Cmd
}

// NotHandled is returned when a handler doesn't handle the action.
var NotHandled = Result{}

// Handled creates a Result indicating the action was handled with a command.
func Handled(cmd tea.Cmd) Result {
	return Result{Handled: true, Cmd: cmd}
}

// HandledNoCmd is a convenience for handlers that handle but return no command.
var HandledNoCmd = Result{Handled: true}

// Handler attempts to handle an action resolved from a key.
type Handler func(a keymap.Action, key string) Result

// Chain runs handlers in order until one handles the action.
func Chain(a keymap.Action, key string, handlers ...Handler) (bool, tea.Cmd) {
	if a == "" {
		return false, nil
	}
	for _, h := range handlers {
		if r := h(a, key); r.Handled {
			return true, r.Cmd
		}
	}
	return false, nil
}
