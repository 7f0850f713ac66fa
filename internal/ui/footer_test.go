package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
)

func TestNewFooter(t *testing.T) {
	footer := NewFooter()

	if footer == nil {
		t.Fatal("NewFooter() returned nil")
	}
	if len(footer.bindings) == 0 {
		t.Error("Expected default bindings to be set")
	}
	if footer.flashMessage != nil {
		t.Error("Expected no flash message initially")
	}
	if footer.Mode() != FooterSidebar {
		t.Errorf("Expected sidebar mode, got %v", footer.Mode())
	}
}

func TestFooter_SetFlash(t *testing.T) {
	footer := NewFooter()

	footer.SetFlash("Rename failed", FlashError)

	if footer.flashMessage == nil {
		t.Fatal("Expected flash message to be set")
	}
	if footer.flashMessage.Text != "Rename failed" {
		t.Errorf("Expected text 'Rename failed', got %q", footer.flashMessage.Text)
	}
	if footer.flashMessage.Type != FlashError {
		t.Errorf("Expected type FlashError, got %v", footer.flashMessage.Type)
	}
	if footer.flashMessage.Duration != DefaultFlashDuration {
		t.Errorf("Expected duration %v, got %v", DefaultFlashDuration, footer.flashMessage.Duration)
	}
}

func TestFooter_SetFlashWithDuration(t *testing.T) {
	footer := NewFooter()
	customDuration := 10 * time.Second

	footer.SetFlashWithDuration("Custom duration", FlashInfo, customDuration)

	if footer.Flash() == nil || footer.Flash().Duration != customDuration {
		t.Errorf("Expected duration %v", customDuration)
	}
}

func TestFooter_ClearFlash(t *testing.T) {
	footer := NewFooter()

	footer.SetFlash("Test message", FlashInfo)
	if !footer.HasFlash() {
		t.Error("Expected HasFlash() to return true")
	}

	footer.ClearFlash()
	if footer.HasFlash() {
		t.Error("Expected HasFlash() to return false after ClearFlash")
	}
}

func TestFlashMessage_IsExpired(t *testing.T) {
	fresh := &FlashMessage{Text: "Test", CreatedAt: time.Now(), Duration: 5 * time.Second}
	if fresh.IsExpired() {
		t.Error("New message should not be expired")
	}

	old := &FlashMessage{Text: "Test", CreatedAt: time.Now().Add(-10 * time.Second), Duration: 5 * time.Second}
	if !old.IsExpired() {
		t.Error("Old message should be expired")
	}
}

func TestFooter_ClearIfExpired(t *testing.T) {
	footer := NewFooter()

	footer.SetFlash("Not expired", FlashInfo)
	if footer.ClearIfExpired() {
		t.Error("Should not clear non-expired message")
	}

	footer.flashMessage = &FlashMessage{
		Text:      "Expired",
		CreatedAt: time.Now().Add(-10 * time.Second),
		Duration:  5 * time.Second,
	}
	if !footer.ClearIfExpired() {
		t.Error("Should clear expired message")
	}
	if footer.HasFlash() {
		t.Error("Flash should be cleared")
	}
}

func TestFooter_View_WithFlash(t *testing.T) {
	footer := NewFooter()
	footer.SetWidth(80)

	if strings.Contains(footer.View(), "Failed to load") {
		t.Error("Should not contain flash text when no flash is set")
	}

	footer.SetFlash("Failed to load conversation 7", FlashError)
	view := ansi.Strip(footer.View())

	if !strings.Contains(view, "Failed to load conversation 7") {
		t.Error("Flash message should be visible in view")
	}
	if strings.Contains(view, "rename") {
		t.Error("Flash should replace the key bindings")
	}
}

func TestFooter_FlashTypes(t *testing.T) {
	tests := []struct {
		name         string
		flashType    FlashType
		expectedIcon string
	}{
		{"Error", FlashError, "✕"},
		{"Warning", FlashWarning, "⚠"},
		{"Info", FlashInfo, "ℹ"},
		{"Success", FlashSuccess, "✓"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			footer := NewFooter()
			footer.SetWidth(80)
			footer.SetFlash("Test message", tt.flashType)

			if !strings.Contains(footer.View(), tt.expectedIcon) {
				t.Errorf("Expected %s flash to contain icon %q", tt.name, tt.expectedIcon)
			}
		})
	}
}

func TestFooter_ModeBindings(t *testing.T) {
	tests := []struct {
		mode    FooterMode
		want    []string
		notWant []string
	}{
		{FooterSidebar, []string{"rename", "delete", "quit"}, []string{"send"}},
		{FooterChat, []string{"send", "attach", "preview code", "select code"}, []string{"rename"}},
		{FooterViewer, []string{"copy", "prev/next", "close"}, []string{"send"}},
		{FooterModal, []string{"confirm", "cancel"}, []string{"rename"}},
	}
	for _, tt := range tests {
		footer := NewFooter()
		footer.SetWidth(200)
		footer.SetMode(tt.mode)
		view := ansi.Strip(footer.View())
		for _, w := range tt.want {
			if !strings.Contains(view, w) {
				t.Errorf("mode %v: missing %q in %q", tt.mode, w, view)
			}
		}
		for _, nw := range tt.notWant {
			if strings.Contains(view, nw) {
				t.Errorf("mode %v: unexpected %q in %q", tt.mode, nw, view)
			}
		}
	}
}

func TestFlashTick(t *testing.T) {
	if FlashTick() == nil {
		t.Error("FlashTick() should return a command")
	}
}
