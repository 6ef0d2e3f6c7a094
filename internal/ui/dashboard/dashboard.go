// Package dashboard is the owner's view of the catalogue: every photo,
// hidden ones included, with actions to feature, hide, recategorize, edit,
// delete and import photos.
package dashboard

import (
	"context"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/folio/internal/importer"
	"github.com/llehouerou/folio/internal/notify"
	"github.com/llehouerou/folio/internal/photo"
	"github.com/llehouerou/folio/internal/ui"
	"github.com/llehouerou/folio/internal/ui/cursor"
)

// Repository is the part of the store the dashboard reads and edits.
type Repository interface {
	ListAll(ctx context.Context) ([]photo.Item, error)
	UpdateDetails(ctx context.Context, id, title, description string) error
	SetHidden(ctx context.Context, id string, hidden bool) error
	SetFeatured(ctx context.Context, id string, featured bool) error
	SetCategory(ctx context.Context, id, category string) error
	Delete(ctx context.Context, id string) error
}

// Importer adds the images of a directory to the store.
type Importer interface {
	Import(ctx context.Context, dirs []string, progress chan<- importer.Progress) (importer.Result, error)
}

// Options configures the dashboard.
type Options struct {
	// Changes signals that the store was modified elsewhere. May be nil.
	Changes <-chan struct{}
	// ImportDir is suggested when the import prompt opens.
	ImportDir string
	// Notifier posts action results as desktop notifications. May be nil.
	Notifier *notify.Sender
	Now      func() time.Time // nil = time.Now
}

// Field is the photo field an edit request targets.
type Field int

const (
	FieldTitle Field = iota
	FieldDescription
)

// EditRequest asks the owner for a new title or description.
type EditRequest struct {
	Field Field
	Item  photo.Item
}

// DeleteRequest asks the owner to confirm a deletion.
type DeleteRequest struct {
	Item photo.Item
}

// ImportRequest asks the owner for a directory to import.
type ImportRequest struct {
	Dir string
}

// ItemsMsg carries a fresh catalogue.
type ItemsMsg struct {
	Items []photo.Item
	Err   error
}

type changedMsg struct{}

// resultMsg reports the outcome of a mutation.
type resultMsg struct {
	text string
	err  bool
}

type progressMsg struct {
	progress importer.Progress
	run      importRun
}

type importedMsg struct {
	dir    string
	result importer.Result
	err    error
}

type importRun struct {
	progress <-chan importer.Progress
	done     <-chan importedMsg
}

// Model is the dashboard view.
type Model struct {
	ui.Base
	repo     Repository
	imp      Importer
	notifier *notify.Sender
	changes  <-chan struct{}
	now      func() time.Time

	importDir string
	items     []photo.Item
	loaded    bool
	err       error
	cursor    cursor.Cursor

	status    string
	statusErr bool

	importing bool
	progress  importer.Progress
	spin      spinner.Model
}

// New creates a dashboard over repo. imp may be nil, which disables imports.
func New(repo Repository, imp Importer, opts Options) Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return Model{
		repo:      repo,
		imp:       imp,
		notifier:  opts.Notifier,
		changes:   opts.Changes,
		now:       now,
		importDir: opts.ImportDir,
		cursor:    cursor.New(2),
		spin:      spinner.New(spinner.WithSpinner(spinner.MiniDot)),
	}
}

// Init loads the catalogue and starts watching for changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.watch())
}

func (m Model) load() tea.Cmd {
	repo := m.repo
	return func() tea.Msg {
		items, err := repo.ListAll(context.Background())
		return ItemsMsg{Items: items, Err: err}
	}
}

func (m Model) watch() tea.Cmd {
	ch := m.changes
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return changedMsg{}
	}
}

// Items returns the catalogue as displayed.
func (m Model) Items() []photo.Item {
	return m.items
}

// Selected returns the photo under the cursor.
func (m Model) Selected() (photo.Item, bool) {
	if len(m.items) == 0 {
		return photo.Item{}, false
	}
	return m.items[m.cursor.Pos()], true
}

// Status returns the last status line and whether it reports a failure.
func (m Model) Status() (string, bool) {
	return m.status, m.statusErr
}

// Importing reports whether an import is running.
func (m Model) Importing() bool {
	return m.importing
}

// Resize sets the view size.
func (m *Model) Resize(width, height int) {
	m.SetSize(width, height)
	m.cursor.EnsureVisible(len(m.items), m.listHeight())
}

// listHeight is the number of photo rows: the view minus the header, the
// column titles and the status line.
func (m Model) listHeight() int {
	return m.ListHeight(3)
}

// setItems replaces the catalogue and keeps the cursor on the same photo.
func (m *Model) setItems(items []photo.Item) {
	id := ""
	if cur, ok := m.Selected(); ok {
		id = cur.ID
	}
	m.items = items
	m.loaded = true
	if i := slices.IndexFunc(items, func(it photo.Item) bool { return it.ID == id }); i >= 0 {
		m.cursor.Jump(i, len(items), m.listHeight())
		return
	}
	m.cursor.ClampToBounds(len(items))
	m.cursor.EnsureVisible(len(items), m.listHeight())
}
