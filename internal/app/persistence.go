package app

import "github.com/llehouerou/folio/internal/state"

// persist saves the category, the photo in focus and the view when one of
// them changed since the last save.
func (m *Model) persist() {
	if m.StateMgr == nil {
		return
	}
	ui := m.uiState()
	if ui == m.saved {
		return
	}
	m.saved = ui
	m.StateMgr.SaveUI(ui)
}

func (m Model) uiState() state.UIState {
	id := m.Gallery.Selected()
	if m.restoreID != "" {
		id = m.restoreID
	}
	if cur, ok := m.Lightbox.Current(); ok && m.Lightbox.IsOpen() {
		id = cur.ID
	}
	if id == "" {
		// Keep the saved photo until the gallery has one.
		id = m.saved.LastPhotoID
	}
	return state.UIState{
		Category:    m.Gallery.Category(),
		LastPhotoID: id,
		View:        m.view,
	}
}
