package app

import (
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mitchellh/go-homedir"

	"github.com/llehouerou/folio/internal/app/popupctl"
	"github.com/llehouerou/folio/internal/ui/action"
	"github.com/llehouerou/folio/internal/ui/confirm"
	"github.com/llehouerou/folio/internal/ui/dashboard"
	"github.com/llehouerou/folio/internal/ui/helpbindings"
	"github.com/llehouerou/folio/internal/ui/textinput"
)

// Delete dialog options. The last one cancels.
var deleteOptions = []string{"Delete photo", "Delete photo and file", "Cancel"}

const deleteWithFile = 1

func (m *Model) showEdit(req dashboard.EditRequest) tea.Cmd {
	mode, title, value := popupctl.InputTitle, "Edit title", req.Item.Title
	if req.Field == dashboard.FieldDescription {
		mode, title, value = popupctl.InputDescription, "Edit description", req.Item.Description
	}
	return m.Popups.ShowTextInput(mode, title, value, req, textinput.Options{
		CharLimit: req.Field.Limit(),
		Validate:  req.Field.Validator(),
	})
}

func (m *Model) showDelete(req dashboard.DeleteRequest) tea.Cmd {
	msg := "Remove \"" + req.Item.DisplayTitle() + "\" from the portfolio?"
	if req.Item.Path != "" {
		msg += "\n" + req.Item.Path
	}
	return m.Popups.ShowConfirmWithOptions("Delete photo", msg, deleteOptions, req)
}

func (m *Model) showImport(req dashboard.ImportRequest) tea.Cmd {
	return m.Popups.ShowTextInput(popupctl.InputImportDir, "Import directory", req.Dir, req, textinput.Options{
		Placeholder: "~/Pictures",
	})
}

// handleAction handles popup results.
func (m *Model) handleAction(msg action.Msg) tea.Cmd {
	switch a := msg.Action.(type) {
	case textinput.Result:
		m.Popups.Hide(popupctl.TextInput)
		if a.Canceled {
			return nil
		}
		switch req := a.Context.(type) {
		case dashboard.EditRequest:
			return m.Dashboard.SubmitEdit(req, a.Text)
		case dashboard.ImportRequest:
			return m.Dashboard.Import(expandDir(a.Text))
		}

	case confirm.Result:
		m.Popups.Hide(popupctl.Confirm)
		req, ok := a.Context.(dashboard.DeleteRequest)
		if !ok || !a.Confirmed {
			return nil
		}
		return m.Dashboard.ConfirmDelete(req.Item, a.SelectedOption == deleteWithFile)

	case helpbindings.Close:
		m.Popups.Hide(popupctl.Help)
	}
	return nil
}

func expandDir(dir string) string {
	dir = strings.TrimSpace(dir)
	expanded, err := homedir.Expand(dir)
	if err != nil {
		log.Printf("app: expand %q: %v", dir, err)
		return dir
	}
	return expanded
}
