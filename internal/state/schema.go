package state

import (
	"github.com/llehouerou/folio/internal/db"
)

const currentSchemaVersion = 1

func initSchema(conn *db.DB) error {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS ui_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			category TEXT NOT NULL DEFAULT 'all',
			last_photo_id TEXT,
			view TEXT NOT NULL DEFAULT 'gallery'
		);
	`)
	if err != nil {
		return err
	}

	// Set initial version if not exists
	_, err = conn.Exec(conn.Rebind(`
		INSERT INTO schema_version (version) VALUES (?)
		ON CONFLICT (version) DO NOTHING
	`), currentSchemaVersion)
	return err
}
