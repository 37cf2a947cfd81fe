package backend

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

// Notify sends a desktop notification via org.freedesktop.Notifications on
// the session bus. Used to warn shortly before an override expires.
func Notify(summary, body string) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	defer conn.Close()

	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		"AppWarden",      // app_name
		uint32(0),        // replaces_id
		"dialog-warning", // app_icon
		summary,
		body,
		[]string{}, // actions
		map[string]dbus.Variant{
			"urgency": dbus.MakeVariant(byte(1)),
		},
		int32(10000), // expire_timeout
	)
	if call.Err != nil {
		return fmt.Errorf("failed to send notification: %w", call.Err)
	}
	return nil
}
