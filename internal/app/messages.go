package app

import "github.com/llehouerou/folio/internal/importer"

// StderrMsg carries a line captured from stderr.
type StderrMsg struct {
	Line string
}

// WatchEventMsg reports a library watcher import.
type WatchEventMsg struct {
	Event importer.WatchEvent
}

// clearStatusMsg clears the header status unless a newer one replaced it.
type clearStatusMsg struct {
	gen int
}
