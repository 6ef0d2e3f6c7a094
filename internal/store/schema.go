package store

import (
	"github.com/llehouerou/folio/internal/db"
)

// Types are chosen so the same statements run on SQLite and Postgres.
func initSchema(conn *db.DB) error {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS photos (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL,
			path TEXT NOT NULL UNIQUE,
			file_name TEXT,
			featured INTEGER NOT NULL DEFAULT 0,
			hidden INTEGER NOT NULL DEFAULT 0,
			width INTEGER,
			height INTEGER,
			size BIGINT,
			created_at BIGINT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_photos_gallery ON photos(hidden, featured, created_at);
		CREATE INDEX IF NOT EXISTS idx_photos_category ON photos(category);
	`)
	return err
}
