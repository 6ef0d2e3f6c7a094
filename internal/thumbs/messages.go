package thumbs

import (
	"image"

	tea "github.com/charmbracelet/bubbletea"
)

// Kind tells which request a load message answers.
type Kind int

const (
	KindThumbnail Kind = iota
	KindSource
)

// LoadedMsg carries a decoded image.
type LoadedMsg struct {
	ID    string
	Kind  Kind
	Image image.Image
}

// LoadFailedMsg reports an image that could not be read.
type LoadFailedMsg struct {
	ID   string
	Kind Kind
	Err  error
}

// LoadThumbnail loads path scaled to width x height pixels in the background.
// The resulting message is tagged with id. Callers track the loading state
// from the moment they issue the command.
func LoadThumbnail(l *Loader, id, path string, width, height int) tea.Cmd {
	return load(id, KindThumbnail, func() (image.Image, error) {
		return l.Thumbnail(path, width, height)
	})
}

// LoadSource loads path at lightbox resolution in the background.
func LoadSource(l *Loader, id, path string) tea.Cmd {
	return load(id, KindSource, func() (image.Image, error) {
		return l.Source(path)
	})
}

func load(id string, kind Kind, fn func() (image.Image, error)) tea.Cmd {
	return func() tea.Msg {
		img, err := fn()
		if err != nil {
			return LoadFailedMsg{ID: id, Kind: kind, Err: err}
		}
		return LoadedMsg{ID: id, Kind: kind, Image: img}
	}
}
