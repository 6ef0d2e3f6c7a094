// internal/state/mock.go
package state

// Mock is a test double for Manager.
type Mock struct {
	ui     *UIState
	saves  int
	closed bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SaveUI(state UIState) {
	m.ui = &state
	m.saves++
}

func (m *Mock) GetUI() (*UIState, error) {
	return m.ui, nil
}

func (m *Mock) Flush() {}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetUI(state *UIState) { m.ui = state }

func (m *Mock) Saves() int { return m.saves }

func (m *Mock) IsClosed() bool { return m.closed }

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
