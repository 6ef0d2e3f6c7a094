package state

import (
	"log"
	"sync"
	"time"

	"github.com/llehouerou/folio/internal/db"
	"github.com/llehouerou/folio/internal/errmsg"
)

const saveDebounce = 500 * time.Millisecond

// Manager persists the UI session. Saves are debounced.
type Manager struct {
	conn     *db.DB
	debounce time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending *UIState
}

// New wraps an open connection. The manager owns it from now on.
func New(conn *db.DB) (*Manager, error) {
	if err := initSchema(conn); err != nil {
		return nil, err
	}
	return &Manager{conn: conn, debounce: saveDebounce}, nil
}

// Close flushes and closes the connection.
func (m *Manager) Close() error {
	m.Flush()
	return m.conn.Close()
}

func (m *Manager) GetUI() (*UIState, error) {
	return getUI(m.conn)
}

// SaveUI stores state after a quiet period; bursts of calls write once.
func (m *Manager) SaveUI(state UIState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = &state
	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = time.AfterFunc(m.debounce, m.Flush)
}

// Flush writes a pending save now.
func (m *Manager) Flush() {
	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.mu.Unlock()

	if pending == nil {
		return
	}
	if err := saveUI(m.conn, *pending); err != nil {
		log.Printf("state: %s", errmsg.Format(errmsg.OpStateSave, err))
	}
}
