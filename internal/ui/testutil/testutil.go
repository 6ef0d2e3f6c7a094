// Package testutil drives popups in tests.
package testutil

import (
	"regexp"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/folio/internal/ui/popup"
)

var sgr = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI drops SGR sequences so rendered text can be compared.
func StripANSI(s string) string {
	return sgr.ReplaceAllString(s, "")
}

// ExecuteCmd runs cmd synchronously. A nil cmd yields a nil message.
func ExecuteCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

// PopupHarness feeds input to a popup and records the commands it returns.
type PopupHarness struct {
	popup popup.Popup
	cmds  []tea.Cmd
}

// NewPopupHarness wraps p and records its Init command.
func NewPopupHarness(p popup.Popup) *PopupHarness {
	h := &PopupHarness{popup: p}
	h.record(p.Init())
	return h
}

func (h *PopupHarness) record(cmd tea.Cmd) {
	if cmd != nil {
		h.cmds = append(h.cmds, cmd)
	}
}

// Popup returns the current popup value.
func (h *PopupHarness) Popup() popup.Popup { return h.popup }

// View renders the popup.
func (h *PopupHarness) View() string { return h.popup.View() }

// SendMsg passes msg to the popup.
func (h *PopupHarness) SendMsg(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.popup, cmd = h.popup.Update(msg)
	h.record(cmd)
	return cmd
}

// SendKey types key as runes.
func (h *PopupHarness) SendKey(key string) tea.Cmd {
	return h.SendMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
}

// Press sends a non-rune key.
func (h *PopupHarness) Press(t tea.KeyType) tea.Cmd {
	return h.SendMsg(tea.KeyMsg{Type: t})
}

func (h *PopupHarness) SendEnter() tea.Cmd  { return h.Press(tea.KeyEnter) }
func (h *PopupHarness) SendEscape() tea.Cmd { return h.Press(tea.KeyEscape) }
func (h *PopupHarness) SendUp() tea.Cmd     { return h.Press(tea.KeyUp) }
func (h *PopupHarness) SendDown() tea.Cmd   { return h.Press(tea.KeyDown) }

// Commands returns the recorded commands.
func (h *PopupHarness) Commands() []tea.Cmd { return h.cmds }

// LastCommand returns the latest recorded command, or nil.
func (h *PopupHarness) LastCommand() tea.Cmd {
	if len(h.cmds) == 0 {
		return nil
	}
	return h.cmds[len(h.cmds)-1]
}

// ClearCommands forgets the recorded commands.
func (h *PopupHarness) ClearCommands() { h.cmds = nil }

// AssertViewContains returns a failure message when the plain view lacks
// substr, and "" otherwise.
func (h *PopupHarness) AssertViewContains(substr string) string {
	view := StripANSI(h.View())
	if strings.Contains(view, substr) {
		return ""
	}
	return "view does not contain " + substr + ":\n" + view
}
