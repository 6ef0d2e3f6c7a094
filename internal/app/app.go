// Package app wires the gallery, the lightbox and the dashboard into the
// root Bubble Tea model.
package app

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/folio/internal/app/popupctl"
	"github.com/llehouerou/folio/internal/config"
	"github.com/llehouerou/folio/internal/errmsg"
	"github.com/llehouerou/folio/internal/importer"
	"github.com/llehouerou/folio/internal/notify"
	"github.com/llehouerou/folio/internal/photo"
	"github.com/llehouerou/folio/internal/state"
	"github.com/llehouerou/folio/internal/thumbs"
	"github.com/llehouerou/folio/internal/ui/dashboard"
	"github.com/llehouerou/folio/internal/ui/gallery"
	"github.com/llehouerou/folio/internal/ui/lightbox"
)

// Watcher reports what the library watcher imported.
type Watcher interface {
	Events() <-chan importer.WatchEvent
}

// Deps holds everything the model needs from main.
type Deps struct {
	Config   *config.Config
	Source   photo.Source
	Repo     dashboard.Repository
	Importer dashboard.Importer // nil disables imports
	Changes  <-chan struct{}    // store changes for the dashboard, may be nil
	Watcher  Watcher            // may be nil
	Loader   *thumbs.Loader
	Renderer *thumbs.Renderer
	State    state.Interface
	Notifier *notify.Sender

	// View is the view to start in. Empty restores the last one.
	View string
	// WatchStderr forwards captured stderr lines to the log.
	WatchStderr bool
}

// Model is the root model.
type Model struct {
	Gallery   gallery.Model
	Lightbox  lightbox.Model
	Dashboard dashboard.Model
	Popups    *popupctl.Manager
	StateMgr  state.Interface

	watcher     Watcher
	notifier    *notify.Sender
	lock        *scrollLock
	watchStderr bool

	view          string
	width, height int

	status    string
	statusErr bool
	statusGen int

	// cleanup removes the lightbox image; written by the next frame only.
	cleanup string
	// restoreID is selected once the gallery has its photos.
	restoreID string
	saved     state.UIState
}

// scrollLock records whether the lightbox holds the page behind it.
type scrollLock struct {
	locked bool
}

func (l *scrollLock) Lock()   { l.locked = true }
func (l *scrollLock) Unlock() { l.locked = false }

// New builds the model and restores the last session.
func New(deps Deps) Model {
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.Config{}
	}

	var saved state.UIState
	if deps.State != nil {
		ui, err := deps.State.GetUI()
		if err != nil {
			log.Printf("app: %s", errmsg.Format(errmsg.OpStateLoad, err))
		} else if ui != nil {
			saved = *ui
		}
	}

	view := deps.View
	if view == "" {
		view = saved.View
	}
	if view != state.ViewDashboard {
		view = state.ViewGallery
	}

	gc := cfg.GetGalleryConfig()
	cellW, cellH := thumbs.CellSize(gc.CellWidth, gc.CellHeight)
	sc := cfg.GetSlideshowConfig()
	vc := cfg.GetViewerConfig()
	lock := &scrollLock{}

	importDir := ""
	if len(cfg.Library.Paths) > 0 {
		importDir = cfg.Library.Paths[0]
	}

	return Model{
		Gallery: gallery.New(deps.Source, deps.Loader, gallery.Options{
			Config:            gc,
			CellWidth:         cellW,
			CellHeight:        cellH,
			Category:          saved.Category,
			Slideshow:         *sc.Enabled,
			SlideshowInterval: sc.Interval(),
		}),
		Lightbox: lightbox.New(deps.Loader, deps.Renderer, lightbox.Options{
			DoubleClick: vc.DoubleClickWindow(),
			ClampPan:    vc.ClampPan,
			StrictStart: vc.StrictStart,
			Lock:        lock,
		}),
		Dashboard: dashboard.New(deps.Repo, deps.Importer, dashboard.Options{
			Changes:   deps.Changes,
			ImportDir: importDir,
			Notifier:  deps.Notifier,
		}),
		Popups:      popupctl.New(),
		StateMgr:    deps.State,
		watcher:     deps.Watcher,
		notifier:    deps.Notifier,
		lock:        lock,
		watchStderr: deps.WatchStderr,
		view:        view,
		restoreID:   saved.LastPhotoID,
		saved:       saved,
	}
}

// Init loads both views and starts the background watchers.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.Gallery.Init(),
		m.Dashboard.Init(),
		m.watchLibrary(),
	}
	if m.watchStderr {
		cmds = append(cmds, WatchStderr())
	}
	return tea.Batch(cmds...)
}

// ActiveView returns the active view name.
func (m Model) ActiveView() string {
	return m.view
}

// Status returns the status shown in the header.
func (m Model) Status() (string, bool) {
	return m.status, m.statusErr
}
