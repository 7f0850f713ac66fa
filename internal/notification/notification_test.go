package notification

import (
	"errors"
	"strings"
	"testing"
)

// mockNotification records calls to the notification function
type mockNotification struct {
	calls []struct {
		title   string
		message string
	}
	err error
}

func (m *mockNotification) notify(title, message string, icon any) error {
	m.calls = append(m.calls, struct {
		title   string
		message string
	}{title, message})
	return m.err
}

func TestSend(t *testing.T) {
	tests := []struct {
		name        string
		mockErr     error
		expectError bool
	}{
		{"successful notification", nil, false},
		{"notification error", errors.New("notification failed"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockNotification{err: tt.mockErr}
			SetNotifier(mock.notify)
			defer ResetNotifier()

			err := Send("Title", "Message")
			if (err != nil) != tt.expectError {
				t.Errorf("Send() error = %v, expectError %v", err, tt.expectError)
			}
			if len(mock.calls) != 1 {
				t.Fatalf("expected 1 call, got %d", len(mock.calls))
			}
			if mock.calls[0].title != "Title" || mock.calls[0].message != "Message" {
				t.Errorf("unexpected call: %+v", mock.calls[0])
			}
		})
	}
}

func TestReplyReceived(t *testing.T) {
	tests := []struct {
		name     string
		conv     string
		reply    string
		expected string
	}{
		{"basic", "Fibonacci", "Here you go", "Fibonacci: Here you go"},
		{"first line only", "Chat", "line one\nline two", "Chat: line one"},
		{"no name", "", "ok", "Reply received: ok"},
		{"long reply", "Chat", strings.Repeat("x", 100), "Chat: " + strings.Repeat("x", 77) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockNotification{}
			SetNotifier(mock.notify)
			defer ResetNotifier()

			if err := ReplyReceived(tt.conv, tt.reply); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(mock.calls) != 1 {
				t.Fatalf("expected 1 call, got %d", len(mock.calls))
			}
			if mock.calls[0].title != AppName {
				t.Errorf("title = %q, want %q", mock.calls[0].title, AppName)
			}
			if mock.calls[0].message != tt.expected {
				t.Errorf("message = %q, want %q", mock.calls[0].message, tt.expected)
			}
		})
	}
}
