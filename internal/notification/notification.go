// Package notification provides cross-platform desktop notifications.
// It uses the beeep library, which picks the native mechanism per platform.
package notification

import (
	"github.com/gen2brain/beeep"

	"github.com/solvere/gram/internal/logger"
)

// notifier is the function that actually delivers the notification. Tests
// swap it out via SetNotifier.
var notifier func(title, message string, icon any) error = beeep.Notify

// SetNotifier replaces the delivery function, for tests.
func SetNotifier(fn func(title, message string, icon any) error) {
	notifier = fn
}

// ResetNotifier restores the default delivery function.
func ResetNotifier() {
	notifier = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
// On macOS this goes through AppleScript, on Linux D-Bus or notify-send,
// on Windows the Runtime COM API.
func Send(title, message string) error {
	logger.Debug("Notification: sending - title=%q, message=%q", title, message)
	err := notifier(title, message, nil)
	if err != nil {
		logger.Warn("Notification: failed to send: %v", err)
	}
	return err
}

// MessageArrived sends a notification for an unread incoming message.
func MessageArrived(chatName, preview string) error {
	return Send(chatName, preview)
}
