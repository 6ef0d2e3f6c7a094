package popupctl

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/folio/internal/ui/action"
	"github.com/llehouerou/folio/internal/ui/confirm"
	"github.com/llehouerou/folio/internal/ui/textinput"
)

func TestPriority(t *testing.T) {
	p := New()
	p.SetSize(80, 24)
	assert.Equal(t, None, p.ActivePopup())

	p.ShowConfirmWithOptions("Delete", "Sure?", []string{"Delete", "Cancel"}, nil)
	assert.Equal(t, Confirm, p.ActivePopup())

	p.ShowError("boom")
	assert.Equal(t, Error, p.ActivePopup())

	handled, cmd := p.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.True(t, handled)
	assert.Nil(t, cmd)
	assert.Equal(t, Confirm, p.ActivePopup(), "any key dismisses the error")
}

func TestConfirmResultCarriesContext(t *testing.T) {
	p := New()
	p.SetSize(80, 24)
	p.ShowConfirmWithOptions("Delete", "Delete Ridge?", []string{"Delete", "Cancel"}, "ctx")

	_, cmd := p.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	a, ok := action.Is(cmd(), "confirm")
	require.True(t, ok)
	res, ok := a.(confirm.Result)
	require.True(t, ok)
	assert.True(t, res.Confirmed)
	assert.Equal(t, "ctx", res.Context)
}

func TestTextInputFocus(t *testing.T) {
	p := New()
	p.SetSize(100, 30)
	p.ShowTextInput(InputTitle, "Title", "Ridge", 7, textinput.Options{CharLimit: 100})

	assert.Equal(t, TextInput, p.ActivePopup())
	assert.Equal(t, InputTitle, p.InputMode())
	assert.True(t, p.InputFocused())
	assert.Contains(t, p.Get(TextInput).View(), "Ridge")

	p.Hide(TextInput)
	assert.False(t, p.InputFocused())
	assert.Equal(t, None, p.ActivePopup())
}

func TestRenderOverlay_DrawsErrorOverBase(t *testing.T) {
	p := New()
	p.SetSize(40, 12)
	base := strings.TrimSuffix(strings.Repeat(strings.Repeat(".", 40)+"\n", 12), "\n")
	assert.Equal(t, base, p.RenderOverlay(base))

	p.ShowError("disk full")
	out := ansi.Strip(p.RenderOverlay(base))
	assert.Contains(t, out, "disk full")
	assert.Len(t, strings.Split(out, "\n"), 12)
}

func TestHideAndGetIgnoreNone(t *testing.T) {
	p := New()
	p.Hide(None)
	assert.Nil(t, p.Get(None))
	assert.Nil(t, p.Get(Confirm))
}
