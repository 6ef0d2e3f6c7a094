package state

import (
	"database/sql"
	"errors"

	"github.com/llehouerou/folio/internal/db"
)

// Views persisted in UIState.View.
const (
	ViewGallery   = "gallery"
	ViewDashboard = "dashboard"
)

// UIState is what the program restores on the next start.
type UIState struct {
	Category    string
	LastPhotoID string
	View        string
}

func getUI(conn *db.DB) (*UIState, error) {
	row := conn.QueryRow(`SELECT category, last_photo_id, view FROM ui_state WHERE id = 1`)

	var state UIState
	var lastPhotoID sql.NullString

	err := row.Scan(&state.Category, &lastPhotoID, &state.View)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved state is valid on first run
	}
	if err != nil {
		return nil, err
	}

	state.LastPhotoID = db.NullStringValue(lastPhotoID)
	return &state, nil
}

func saveUI(conn *db.DB, state UIState) error {
	if state.View == "" {
		state.View = ViewGallery
	}
	var lastPhotoID sql.NullString
	if state.LastPhotoID != "" {
		lastPhotoID = sql.NullString{String: state.LastPhotoID, Valid: true}
	}
	_, err := conn.Exec(conn.Rebind(`
		INSERT INTO ui_state (id, category, last_photo_id, view)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			category = excluded.category,
			last_photo_id = excluded.last_photo_id,
			view = excluded.view
	`), state.Category, lastPhotoID, state.View)
	return err
}
