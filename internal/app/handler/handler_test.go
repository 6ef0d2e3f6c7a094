package handler

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/folio/internal/keymap"
)

func TestChain(t *testing.T) {
	var calls []string
	quit := func() tea.Msg { return tea.QuitMsg{} }

	skip := func(keymap.Action, string) Result {
		calls = append(calls, "skip")
		return NotHandled
	}
	take := func(a keymap.Action, _ string) Result {
		calls = append(calls, "take")
		if a == keymap.ActionQuit {
			return Handled(quit)
		}
		return HandledNoCmd
	}
	never := func(keymap.Action, string) Result {
		calls = append(calls, "never")
		return HandledNoCmd
	}

	handled, cmd := Chain(keymap.ActionQuit, "q", skip, take, never)
	if !handled || cmd == nil {
		t.Fatalf("Chain = %v, %v; want handled with a command", handled, cmd)
	}
	if len(calls) != 2 || calls[0] != "skip" || calls[1] != "take" {
		t.Errorf("calls = %v, want [skip take]", calls)
	}

	calls = nil
	if handled, _ := Chain("", "x", take); handled || len(calls) != 0 {
		t.Error("an unbound key runs no handler")
	}
}
