// Package popupctl owns the modal popups shown over the gallery and the
// dashboard.
package popupctl

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/folio/internal/ui/confirm"
	"github.com/llehouerou/folio/internal/ui/helpbindings"
	"github.com/llehouerou/folio/internal/ui/popup"
	"github.com/llehouerou/folio/internal/ui/styles"
	"github.com/llehouerou/folio/internal/ui/textinput"
)

var frames = [slotCount]popup.SizeConfig{
	Help:      popup.SizeLarge,
	TextInput: popup.SizeEdit,
}

// Manager holds at most one popup per Type. The error popup is a plain
// message rather than a popup.Popup.
type Manager struct {
	slots     [slotCount]popup.Popup
	inputMode InputMode
	errorMsg  string
	width     int
	height    int
}

func New() *Manager {
	return &Manager{}
}

// SetSize records the screen size used to frame popups.
func (p *Manager) SetSize(width, height int) {
	p.width, p.height = width, height
}

func (p *Manager) visible(t Type) bool {
	if t == Error {
		return p.errorMsg != ""
	}
	return p.slots[t] != nil
}

// ActivePopup returns the topmost visible popup, or None.
func (p *Manager) ActivePopup() Type {
	for t := slotCount - 1; t > None; t-- {
		if p.visible(t) {
			return t
		}
	}
	return None
}

func (p *Manager) show(t Type, pop popup.Popup) tea.Cmd {
	w, h := p.contentSize(frames[t])
	pop.SetSize(w, h)
	p.slots[t] = pop
	return pop.Init()
}

// Hide removes the popup in slot t.
func (p *Manager) Hide(t Type) {
	switch t {
	case None, slotCount:
		return
	case Error:
		p.errorMsg = ""
		return
	case TextInput:
		p.inputMode = InputNone
	}
	p.slots[t] = nil
}

// Get returns the popup in slot t, or nil.
func (p *Manager) Get(t Type) popup.Popup {
	if t <= None || t >= slotCount {
		return nil
	}
	return p.slots[t]
}

func (p *Manager) contentSize(size popup.SizeConfig) (width, height int) {
	switch {
	case size.WidthPct > 0:
		return p.width * size.WidthPct / 100, p.height * size.HeightPct / 100
	case size.MaxWidth > 0:
		return min(p.width, size.MaxWidth), p.height
	}
	return p.width, p.height
}

// ShowHelp lists the bindings of the given keymap contexts.
func (p *Manager) ShowHelp(contexts []string) tea.Cmd {
	help := helpbindings.New()
	help.SetContexts(contexts)
	return p.show(Help, &help)
}

// ShowConfirmWithOptions asks the user to pick one of options. The last
// option cancels.
func (p *Manager) ShowConfirmWithOptions(title, message string, options []string, context any) tea.Cmd {
	c := confirm.New()
	c.ShowWithOptions(title, message, options, context, p.width, p.height)
	return p.show(Confirm, &c)
}

// ShowTextInput opens the text input for mode, prefilled with value.
func (p *Manager) ShowTextInput(mode InputMode, title, value string, context any, opts textinput.Options) tea.Cmd {
	p.inputMode = mode
	ti := textinput.New()
	w, h := p.contentSize(frames[TextInput])
	focus := ti.Start(title, value, context, opts, w, h)
	return tea.Batch(p.show(TextInput, &ti), focus)
}

// ShowError shows msg until the next key press.
func (p *Manager) ShowError(msg string) {
	p.errorMsg = msg
}

func (p *Manager) InputMode() InputMode { return p.inputMode }

func (p *Manager) ErrorMsg() string { return p.errorMsg }

// InputFocused reports whether a text input owns the keyboard.
func (p *Manager) InputFocused() bool {
	ti, ok := p.slots[TextInput].(*textinput.Model)
	return ok && p.inputMode != InputNone && ti.Focused()
}

// HandleKey gives msg to the topmost popup. It reports false when no popup
// is shown.
func (p *Manager) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch t := p.ActivePopup(); t {
	case None:
		return false, nil
	case Error:
		p.errorMsg = ""
		return true, nil
	default:
		var cmd tea.Cmd
		p.slots[t], cmd = p.slots[t].Update(msg)
		return true, cmd
	}
}

// Update forwards other messages, such as the cursor blink, to the text
// input.
func (p *Manager) Update(msg tea.Msg) tea.Cmd {
	if p.slots[TextInput] == nil {
		return nil
	}
	var cmd tea.Cmd
	p.slots[TextInput], cmd = p.slots[TextInput].Update(msg)
	return cmd
}

// RenderOverlay draws every visible popup over base, bottom slot first.
func (p *Manager) RenderOverlay(base string) string {
	for t := None + 1; t < slotCount; t++ {
		if !p.visible(t) {
			continue
		}
		content := p.renderError()
		if t != Error {
			content = p.slots[t].View()
		}
		box := popup.RenderBordered(content, p.width, p.height, frames[t])
		base = popup.Compose(base, box, p.width, p.height)
	}
	return base
}

func (p *Manager) renderError() string {
	s := styles.T().S()
	return strings.Join([]string{
		s.Error.Render("Error"),
		"",
		s.Base.Render(p.errorMsg),
		"",
		s.Subtle.Render("Press any key to dismiss"),
	}, "\n")
}
