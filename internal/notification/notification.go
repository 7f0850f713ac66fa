// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/zhubert/codechat/internal/logger"
)

// AppName is the title used for all notifications.
const AppName = "CodeChat"

// maxPreview bounds how much of a reply is shown in the notification body.
const maxPreview = 80

var (
	notifyMu sync.Mutex
	notifier = beeep.Notify
)

// SetNotifier replaces the notification backend. Used by tests.
func SetNotifier(fn func(title, message string, icon any) error) {
	notifyMu.Lock()
	defer notifyMu.Unlock()
	notifier = fn
}

// ResetNotifier restores the beeep backend.
func ResetNotifier() {
	SetNotifier(beeep.Notify)
}

// Send sends a desktop notification with the given title and message.
func Send(title, message string) error {
	notifyMu.Lock()
	fn := notifier
	notifyMu.Unlock()

	logger.Debug("Notification: title=%q, message=%q", title, message)
	// Empty icon lets beeep use the platform default.
	err := fn(title, message, "")
	if err != nil {
		logger.Warn("Notification: Failed to send notification: %v", err)
	}
	return err
}

// ReplyReceived announces that the assistant answered in a conversation.
func ReplyReceived(conversationName, reply string) error {
	if conversationName == "" {
		conversationName = "Reply received"
	}
	return Send(AppName, conversationName+": "+preview(reply))
}

func preview(s string) string {
	r := []rune(s)
	for i, c := range r {
		if c == '\n' {
			r = r[:i]
			break
		}
	}
	if len(r) > maxPreview {
		return string(r[:maxPreview-3]) + "..."
	}
	return string(r)
}
