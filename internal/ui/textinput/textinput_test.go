package textinput

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/folio/internal/ui/action"
	"github.com/llehouerou/folio/internal/ui/testutil"
)

const photoID = int64(7)

var errRequired = errors.New("title is required")

func start(initial string, opts Options) (*Model, *testutil.PopupHarness) {
	m := New()
	m.Start("Edit title", initial, photoID, opts, 80, 24)
	return &m, testutil.NewPopupHarness(&m)
}

func typeText(h *testutil.PopupHarness, s string) {
	for _, r := range s {
		h.SendMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func result(t *testing.T, h *testutil.PopupHarness) Result {
	t.Helper()
	cmd := h.LastCommand()
	require.NotNil(t, cmd)
	a, ok := action.Is(testutil.ExecuteCmd(cmd), "textinput")
	require.True(t, ok)
	res, ok := a.(Result)
	require.True(t, ok)
	return res
}

func TestSubmit(t *testing.T) {
	m, h := start("", Options{})
	require.True(t, m.Focused())

	typeText(h, "Harbour at dawn")
	h.SendEnter()

	res := result(t, h)
	assert.Equal(t, "Harbour at dawn", res.Text)
	assert.Equal(t, photoID, res.Context)
	assert.False(t, res.Canceled)
	assert.False(t, m.Focused())
}

func TestSubmit_TrimsSpace(t *testing.T) {
	_, h := start("  Fog  ", Options{})
	h.SendEnter()
	assert.Equal(t, "Fog", result(t, h).Text)
}

func TestInitialTextIsEditable(t *testing.T) {
	m, h := start("Dusk", Options{})
	h.Press(tea.KeyBackspace)
	typeText(h, "k!")
	assert.Equal(t, "Dusk!", m.Value())
}

func TestCancel(t *testing.T) {
	m, h := start("Dusk", Options{})
	h.SendEscape()

	res := result(t, h)
	assert.True(t, res.Canceled)
	assert.Equal(t, photoID, res.Context)
	assert.False(t, m.Focused())
}

func TestCharLimit(t *testing.T) {
	m, h := start("", Options{CharLimit: 5})
	typeText(h, "abcdefgh")
	assert.Equal(t, "abcde", m.Value())
	assert.Empty(t, h.AssertViewContains("5/5"))
}

func TestValidation(t *testing.T) {
	validate := func(s string) error {
		if s == "" {
			return errRequired
		}
		return nil
	}
	m, h := start("", Options{Validate: validate})
	h.ClearCommands()

	h.SendEnter()
	assert.Nil(t, h.LastCommand(), "invalid input keeps the popup open")
	assert.ErrorIs(t, m.Err(), errRequired)
	assert.Empty(t, h.AssertViewContains("title is required"))
	assert.True(t, m.Focused())

	typeText(h, "x")
	assert.NoError(t, m.Err(), "typing clears the error")

	h.SendEnter()
	assert.Equal(t, "x", result(t, h).Text)
}

func TestView(t *testing.T) {
	_, h := start("Dusk", Options{})
	view := testutil.StripANSI(h.View())
	assert.Contains(t, view, "Edit title")
	assert.Contains(t, view, "> Dusk")
	assert.Contains(t, view, "esc cancel")
}

func TestView_ZeroSize(t *testing.T) {
	m := New()
	assert.Empty(t, m.View())
}

func TestReset(t *testing.T) {
	m, _ := start("Dusk", Options{Validate: func(string) error { return errRequired }})
	m.Reset()
	assert.False(t, m.Focused())
	assert.Empty(t, m.Value())
	assert.Empty(t, m.title)
}
