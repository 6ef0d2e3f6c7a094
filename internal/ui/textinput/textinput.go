// Package textinput provides a single-line text input popup.
package textinput

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/folio/internal/ui"
	"github.com/llehouerou/folio/internal/ui/popup"
	"github.com/llehouerou/folio/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

// Validator checks the submitted text. A non-nil error keeps the popup open
// and is shown below the field.
type Validator func(string) error

// Options configures an input session.
type Options struct {
	Placeholder string
	CharLimit   int // 0 = unlimited
	Validate    Validator
}

// Model is a text input popup.
type Model struct {
	ui.Base
	title    string
	input    textinput.Model
	context  any
	validate Validator
	err      error
}

// New creates a new text input model.
func New() Model {
	return Model{input: textinput.New()}
}

// Start focuses the input with a title and initial text.
func (m *Model) Start(title, initialText string, context any, opts Options, width, height int) tea.Cmd {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = opts.Placeholder
	ti.CharLimit = opts.CharLimit
	ti.Width = max(width-8, 10)
	ti.SetValue(initialText)
	ti.CursorEnd()

	m.title = title
	m.input = ti
	m.context = context
	m.validate = opts.Validate
	m.err = nil
	m.SetSize(width, height)
	return m.input.Focus()
}

// Reset clears the input state.
func (m *Model) Reset() {
	m.input.Blur()
	m.input.SetValue("")
	m.title = ""
	m.context = nil
	m.validate = nil
	m.err = nil
}

// Focused reports whether the input has focus and should receive keys.
func (m Model) Focused() bool {
	return m.input.Focused()
}

// Value returns the current text.
func (m Model) Value() string {
	return m.input.Value()
}

// Err returns the last validation error.
func (m Model) Err() error {
	return m.err
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			ctx := m.context
			m.input.Blur()
			return m, func() tea.Msg {
				return ActionMsg(Result{Canceled: true, Context: ctx})
			}
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if m.validate != nil {
				if err := m.validate(text); err != nil {
					m.err = err
					return m, nil
				}
			}
			ctx := m.context
			m.input.Blur()
			return m, func() tea.Msg {
				return ActionMsg(Result{Text: text, Context: ctx})
			}
		}
		m.err = nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements popup.Popup.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	s := styles.T().S()

	var b strings.Builder
	b.WriteString(s.Title.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(s.Error.Render(m.err.Error()))
	}
	b.WriteString("\n")
	if limit := m.input.CharLimit; limit > 0 {
		b.WriteString(s.Subtle.Render(fmt.Sprintf("%d/%d · ", len([]rune(m.input.Value())), limit)))
	}
	b.WriteString(s.Subtle.Render("enter save · esc cancel"))
	return b.String()
}
