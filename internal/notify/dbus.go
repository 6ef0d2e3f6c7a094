//go:build linux

package notify

import (
	"github.com/godbus/dbus/v5"
)

const (
	busName   = "org.freedesktop.Notifications"
	busPath   = "/org/freedesktop/Notifications"
	notifyRPC = busName + ".Notify"
)

// caller is the part of dbus.BusObject the notifier uses.
type caller interface {
	Call(method string, flags dbus.Flags, args ...any) *dbus.Call
}

type dbusNotifier struct {
	obj caller
}

// New connects to the session bus. Without one it returns Discard and the
// connection error.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return Discard{}, err
	}
	return &dbusNotifier{obj: conn.Object(busName, busPath)}, nil
}

func (n *dbusNotifier) Notify(notif Notification) (uint32, error) {
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(notif.Urgency)),
		"desktop-entry": dbus.MakeVariant(desktopEntry),
	}
	if notif.Icon != "" {
		hints["image-path"] = dbus.MakeVariant(notif.Icon)
	}

	call := n.obj.Call(notifyRPC, 0,
		appName, notif.ReplacesID, notif.Icon,
		notif.Title, notif.Body, []string{}, hints, notif.Timeout)
	if call.Err != nil {
		return 0, call.Err
	}
	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, err
	}
	return id, nil
}
