// Package notify posts desktop notifications over D-Bus.
package notify

import (
	"os"
	"sync"
)

// Urgency is the freedesktop urgency hint.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

const (
	appName      = "Folio"
	desktopEntry = "folio"
	// DefaultTimeout is how long folio notifications stay visible, in ms.
	DefaultTimeout int32 = 4000
)

// Notification is one desktop notification. Timeout is in milliseconds; a
// non-zero ReplacesID updates that notification in place.
type Notification struct {
	Title      string
	Body       string
	Icon       string
	Timeout    int32
	ReplacesID uint32
	Urgency    Urgency
}

// Notifier sends desktop notifications. Notify returns the server's id for
// the notification.
type Notifier interface {
	Notify(n Notification) (uint32, error)
}

// Discard drops every notification.
type Discard struct{}

func (Discard) Notify(Notification) (uint32, error) { return 0, nil }

// Sender posts folio's status notifications. Each notification replaces the
// previous one so a burst of imports shows a single popup.
type Sender struct {
	mu      sync.Mutex
	n       Notifier
	enabled bool
	lastID  uint32
}

// NewSender wraps n. A disabled sender or a nil n sends nothing.
func NewSender(n Notifier, enabled bool) *Sender {
	return &Sender{n: n, enabled: enabled && n != nil}
}

// Enabled reports whether notifications are sent.
func (s *Sender) Enabled() bool {
	return s != nil && s.enabled
}

// Send posts title and body, using the image at icon when it exists.
func (s *Sender) Send(title, body, icon string, urgency Urgency) error {
	if !s.Enabled() {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.n.Notify(Notification{
		Title:      title,
		Body:       body,
		Icon:       IconFor(icon),
		Timeout:    DefaultTimeout,
		ReplacesID: s.lastID,
		Urgency:    urgency,
	})
	if err != nil {
		return err
	}
	s.lastID = id
	return nil
}

// IconFor returns path when it names a regular file, else "".
func IconFor(path string) string {
	if path == "" {
		return ""
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return ""
	}
	return path
}
