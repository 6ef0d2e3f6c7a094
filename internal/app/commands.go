package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/folio/internal/importer"
	"github.com/llehouerou/folio/internal/stderr"
)

// statusTimeout is how long a header status stays up.
const statusTimeout = 5 * time.Second

// waitForChannel creates a command that waits for a value from a channel and converts it to a message.
// onResult receives the value and a boolean indicating if the channel is still open (false means channel closed).
func waitForChannel[T any](ch <-chan T, onResult func(T, bool) tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		result, ok := <-ch
		return onResult(result, ok)
	}
}

// WatchStderr returns a command that waits for captured stderr output.
func WatchStderr() tea.Cmd {
	return func() tea.Msg {
		line, ok := <-stderr.Messages
		if !ok {
			return nil
		}
		return StderrMsg{Line: line}
	}
}

func (m Model) watchLibrary() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return waitForChannel(m.watcher.Events(), func(ev importer.WatchEvent, ok bool) tea.Msg {
		if !ok {
			return nil
		}
		return WatchEventMsg{Event: ev}
	})
}

func clearStatusAfter(gen int) tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{gen: gen}
	})
}
