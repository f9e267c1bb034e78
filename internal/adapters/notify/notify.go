// Package notify delivers desktop notifications.
package notify

import (
	"log/slog"
	"sync/atomic"

	"github.com/gen2brain/beeep"
	"github.com/melih/lighthouse-tray/internal/core/domain"
)

// AppName is the title of every notification.
const AppName = "Lighthouse Tray"

// Notifier shows desktop notifications. Delivery is best effort.
type Notifier struct {
	enabled atomic.Bool
	send    func(title, message string) error
}

// NewNotifier returns a notifier backed by the desktop notification service.
func NewNotifier(enabled bool) *Notifier {
	return newNotifier(enabled, func(title, message string) error {
		return beeep.Notify(title, message, "")
	})
}

func newNotifier(enabled bool, send func(title, message string) error) *Notifier {
	n := &Notifier{send: send}
	n.enabled.Store(enabled)
	return n
}

// SetEnabled switches desktop delivery on or off. Disabled messages are only logged.
func (n *Notifier) SetEnabled(v bool) {
	n.enabled.Store(v)
}

// Notify shows message; failures are logged.
func (n *Notifier) Notify(message string) {
	if n == nil || !n.enabled.Load() {
		slog.Info("Notification.", "message", message)
		return
	}
	if err := n.send(AppName, message); err != nil {
		slog.Warn("Failed to show notification.", "message", message, "err", err)
	}
}

// ActionResult is a dispatcher result hook.
func (n *Notifier) ActionResult(res domain.ActionResult) {
	n.Notify(res.Message)
}
