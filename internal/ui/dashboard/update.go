package dashboard

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/folio/internal/errmsg"
	"github.com/llehouerou/folio/internal/importer"
	"github.com/llehouerou/folio/internal/keymap"
	"github.com/llehouerou/folio/internal/notify"
	"github.com/llehouerou/folio/internal/photo"
)

var (
	errImportRunning = errors.New("an import is already running")
	errNoImporter    = errors.New("imports are not available")
)

// Update handles catalogue loads, action results and mouse input.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ItemsMsg:
		if msg.Err != nil {
			m.err = msg.Err
			log.Printf("dashboard: %s", errmsg.Format(errmsg.OpGalleryLoad, msg.Err))
			return nil
		}
		m.err = nil
		m.setItems(msg.Items)

	case changedMsg:
		return tea.Batch(m.load(), m.watch())

	case resultMsg:
		m.status, m.statusErr = msg.text, msg.err
		return m.load()

	case progressMsg:
		m.progress = msg.progress
		return waitImport(msg.run)

	case importedMsg:
		m.importing = false
		m.progress = importer.Progress{}
		if msg.err != nil {
			m.status, m.statusErr = errmsg.FormatWith(errmsg.OpImportDir, msg.dir, msg.err), true
			log.Printf("dashboard: %s", m.status)
		} else {
			m.status, m.statusErr = msg.result.Summary(), len(msg.result.Failed) > 0
		}
		return tea.Batch(m.load(), m.notify(m.status, "", m.statusErr))

	case spinner.TickMsg:
		if !m.importing {
			return nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return cmd

	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return nil
}

// HandleAction runs a dashboard action on the photo under the cursor.
func (m *Model) HandleAction(a keymap.Action) tea.Cmd {
	if m.cursor.HandleAction(a, len(m.items), m.listHeight()) {
		return nil
	}
	switch a { //nolint:exhaustive // only dashboard actions
	case keymap.ActionRefresh:
		return m.load()
	case keymap.ActionImport:
		return m.requestImport()
	}

	it, ok := m.Selected()
	if !ok {
		return nil
	}
	repo := m.repo
	switch a { //nolint:exhaustive // only dashboard actions
	case keymap.ActionToggleFeatured:
		text := "Featured " + it.DisplayTitle()
		if it.Featured {
			text = "Unfeatured " + it.DisplayTitle()
		}
		return m.mutate(errmsg.OpPhotoFeature, it, text, func(ctx context.Context) error {
			return repo.SetFeatured(ctx, it.ID, !it.Featured)
		})
	case keymap.ActionToggleHidden:
		text := "Hid " + it.DisplayTitle()
		if it.Hidden {
			text = "Showing " + it.DisplayTitle()
		}
		return m.mutate(errmsg.OpPhotoHide, it, text, func(ctx context.Context) error {
			return repo.SetHidden(ctx, it.ID, !it.Hidden)
		})
	case keymap.ActionCycleCategory:
		next := photo.NextCategory(it.Category)
		return m.mutate(errmsg.OpPhotoCategory, it, it.DisplayTitle()+" moved to "+next, func(ctx context.Context) error {
			return repo.SetCategory(ctx, it.ID, next)
		})
	case keymap.ActionEditTitle:
		return request(EditRequest{Field: FieldTitle, Item: it})
	case keymap.ActionEditDescription:
		return request(EditRequest{Field: FieldDescription, Item: it})
	case keymap.ActionDelete:
		return request(DeleteRequest{Item: it})
	}
	return nil
}

func request(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (m *Model) requestImport() tea.Cmd {
	switch {
	case m.imp == nil:
		m.status, m.statusErr = errmsg.Format(errmsg.OpImportDir, errNoImporter), true
		return nil
	case m.importing:
		m.status, m.statusErr = errmsg.Format(errmsg.OpImportDir, errImportRunning), true
		return nil
	}
	return request(ImportRequest{Dir: m.importDir})
}

// SubmitEdit stores the text entered for req.
func (m *Model) SubmitEdit(req EditRequest, text string) tea.Cmd {
	text = strings.TrimSpace(text)
	if err := req.Field.Validator()(text); err != nil {
		m.status, m.statusErr = errmsg.FormatWith(errmsg.OpPhotoUpdate, req.Item.DisplayTitle(), err), true
		return nil
	}
	it := req.Item
	title, desc := it.Title, it.Description
	done := "Renamed to " + text
	if req.Field == FieldDescription {
		desc = text
		done = "Updated description of " + it.DisplayTitle()
	} else {
		title = text
	}
	repo := m.repo
	return m.mutate(errmsg.OpPhotoUpdate, it, done, func(ctx context.Context) error {
		return repo.UpdateDetails(ctx, it.ID, title, desc)
	})
}

// ConfirmDelete removes it from the store and, when withFile is set, deletes
// its image file as well.
func (m *Model) ConfirmDelete(it photo.Item, withFile bool) tea.Cmd {
	repo := m.repo
	notifier := m.notifier
	return func() tea.Msg {
		ctx := context.Background()
		if err := repo.Delete(ctx, it.ID); err != nil {
			return report(notifier, it, errmsg.FormatWith(errmsg.OpPhotoDelete, it.DisplayTitle(), err), true)
		}
		if withFile && it.Path != "" {
			if err := os.Remove(it.Path); err != nil {
				return report(notifier, it, errmsg.FormatWith(errmsg.OpFileDelete, it.Path, err), true)
			}
			return report(notifier, it, "Deleted "+it.DisplayTitle()+" and its file", false)
		}
		return report(notifier, it, "Deleted "+it.DisplayTitle(), false)
	}
}

// Import imports dir in the background, reporting progress in the status
// line.
func (m *Model) Import(dir string) tea.Cmd {
	dir = strings.TrimSpace(dir)
	var err error
	switch {
	case m.imp == nil:
		err = errNoImporter
	case m.importing:
		err = errImportRunning
	case dir == "":
		err = ErrNoDirectory
	}
	if err != nil {
		m.status, m.statusErr = errmsg.Format(errmsg.OpImportDir, err), true
		return nil
	}

	m.importing = true
	m.importDir = dir
	m.status, m.statusErr = "", false
	m.progress = importer.Progress{Phase: "scanning"}

	progress := make(chan importer.Progress, 16)
	done := make(chan importedMsg, 1)
	imp := m.imp
	go func() {
		res, err := imp.Import(context.Background(), []string{dir}, progress)
		done <- importedMsg{dir: dir, result: res, err: err}
	}()
	return tea.Batch(m.spin.Tick, waitImport(importRun{progress: progress, done: done}))
}

// waitImport delivers the next progress report, then the final result once
// the progress channel is closed.
func waitImport(run importRun) tea.Cmd {
	return func() tea.Msg {
		if p, ok := <-run.progress; ok {
			return progressMsg{progress: p, run: run}
		}
		return <-run.done
	}
}

// mutate runs fn in the background and reports the result.
func (m *Model) mutate(op errmsg.Op, it photo.Item, success string, fn func(context.Context) error) tea.Cmd {
	notifier := m.notifier
	return func() tea.Msg {
		if err := fn(context.Background()); err != nil {
			return report(notifier, it, errmsg.FormatWith(op, it.DisplayTitle(), err), true)
		}
		return report(notifier, it, success, false)
	}
}

func (m Model) notify(text, icon string, failed bool) tea.Cmd {
	if !m.notifier.Enabled() || text == "" {
		return nil
	}
	notifier := m.notifier
	return func() tea.Msg {
		send(notifier, text, icon, failed)
		return nil
	}
}

func report(notifier *notify.Sender, it photo.Item, text string, failed bool) resultMsg {
	if failed {
		log.Printf("dashboard: %s", text)
	}
	send(notifier, text, it.Path, failed)
	return resultMsg{text: text, err: failed}
}

func send(notifier *notify.Sender, text, icon string, failed bool) {
	urgency := notify.UrgencyNormal
	if failed {
		urgency = notify.UrgencyCritical
	}
	if err := notifier.Send("Folio", text, icon, urgency); err != nil {
		log.Printf("dashboard: notification: %v", err)
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.cursor.HandleWheel(msg, len(m.items), m.listHeight()) {
		return
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	// Rows start below the header and column titles.
	row := msg.Y - 2
	if row < 0 || row >= m.listHeight() {
		return
	}
	if i := m.cursor.Offset() + row; i < len(m.items) {
		m.cursor.Jump(i, len(m.items), m.listHeight())
	}
}
