package state

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/llehouerou/folio/internal/db"
)

// setupTestDB creates an in-memory SQLite database with the schema initialized.
func setupTestDB(t *testing.T) *db.DB {
	t.Helper()

	conn, err := db.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := initSchema(conn); err != nil {
		t.Fatalf("failed to init schema: %v", err)
	}
	return conn
}

func TestGetUI_Empty(t *testing.T) {
	conn := setupTestDB(t)

	ui, err := getUI(conn)
	if err != nil {
		t.Fatalf("getUI failed: %v", err)
	}
	if ui != nil {
		t.Errorf("expected nil state on empty db, got %+v", ui)
	}
}

func TestSaveAndGetUI(t *testing.T) {
	conn := setupTestDB(t)

	want := UIState{Category: "street", LastPhotoID: "abc", View: ViewDashboard}
	if err := saveUI(conn, want); err != nil {
		t.Fatalf("saveUI failed: %v", err)
	}

	got, err := getUI(conn)
	if err != nil {
		t.Fatalf("getUI failed: %v", err)
	}
	if got == nil || *got != want {
		t.Errorf("getUI = %+v, want %+v", got, want)
	}
}

func TestSaveUI_UpdateAndDefaults(t *testing.T) {
	conn := setupTestDB(t)

	if err := saveUI(conn, UIState{Category: "travel", LastPhotoID: "x"}); err != nil {
		t.Fatal(err)
	}
	if err := saveUI(conn, UIState{Category: "all"}); err != nil {
		t.Fatal(err)
	}

	got, err := getUI(conn)
	if err != nil {
		t.Fatal(err)
	}
	want := UIState{Category: "all", View: ViewGallery}
	if *got != want {
		t.Errorf("getUI = %+v, want %+v", *got, want)
	}

	var rows int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM ui_state`).Scan(&rows); err != nil {
		t.Fatal(err)
	}
	if rows != 1 {
		t.Errorf("ui_state has %d rows, want 1", rows)
	}
}

func TestInitSchema_Idempotent(t *testing.T) {
	conn := setupTestDB(t)
	if err := initSchema(conn); err != nil {
		t.Fatalf("second initSchema failed: %v", err)
	}
}

func TestManager_DebouncedSaveCoalesces(t *testing.T) {
	conn := setupTestDB(t)
	m, err := New(conn)
	if err != nil {
		t.Fatal(err)
	}
	m.debounce = time.Hour

	m.SaveUI(UIState{Category: "portrait"})
	m.SaveUI(UIState{Category: "street", LastPhotoID: "p2"})

	if got, _ := m.GetUI(); got != nil {
		t.Fatalf("state written before the debounce elapsed: %+v", got)
	}

	m.Flush()

	got, err := m.GetUI()
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Category != "street" || got.LastPhotoID != "p2" {
		t.Errorf("GetUI = %+v, want the last saved state", got)
	}
}

func TestManager_SaveAfterDebounce(t *testing.T) {
	conn := setupTestDB(t)
	m, err := New(conn)
	if err != nil {
		t.Fatal(err)
	}
	m.debounce = 10 * time.Millisecond

	m.SaveUI(UIState{Category: "landscape"})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got, _ := m.GetUI(); got != nil {
			if got.Category != "landscape" {
				t.Errorf("Category = %q, want landscape", got.Category)
			}
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("debounced save never happened")
}

func openManager(t *testing.T, path string) (*Manager, error) {
	t.Helper()
	conn, err := db.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	return New(conn)
}

func TestManager_CloseFlushes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.db")

	m, err := openManager(t, path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	m.SaveUI(UIState{Category: "other", View: ViewDashboard})
	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	m, err = openManager(t, path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer m.Close()

	got, err := m.GetUI()
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Category != "other" || got.View != ViewDashboard {
		t.Errorf("GetUI after reopen = %+v", got)
	}
}

func TestMock(t *testing.T) {
	m := NewMock()
	m.SaveUI(UIState{Category: "travel"})
	got, _ := m.GetUI()
	if got.Category != "travel" || m.Saves() != 1 {
		t.Errorf("mock state = %+v saves=%d", got, m.Saves())
	}
	_ = m.Close()
	if !m.IsClosed() {
		t.Error("mock not closed")
	}
}
