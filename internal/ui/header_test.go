package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/zhubert/codechat/internal/conversation"
)

func TestNewHeader(t *testing.T) {
	header := NewHeader()

	if header == nil {
		t.Fatal("NewHeader() returned nil")
	}
	if header.conversationName != "" {
		t.Error("Expected empty conversation name initially")
	}
}

func TestHeader_View_NoConversation(t *testing.T) {
	header := NewHeader()
	header.SetWidth(80)

	view := ansi.Strip(header.View())

	if !strings.Contains(view, AppTitle) {
		t.Errorf("Header should contain %q title, got: %q", AppTitle, view)
	}
	if !strings.Contains(view, "0 / 0 / 0") {
		t.Errorf("Header should show zeroed tokens, got: %q", view)
	}
}

func TestHeader_View_WithConversation(t *testing.T) {
	header := NewHeader()
	header.SetWidth(120)
	header.SetConversationName("Refactor the parser")
	header.SetTokens(conversation.TokenUsage{InputTokens: 12, OutputTokens: 30, TotalTokens: 42})

	view := ansi.Strip(header.View())

	for _, want := range []string{AppTitle, "Refactor the parser", "12 / 30 / 42"} {
		if !strings.Contains(view, want) {
			t.Errorf("Header missing %q, got: %q", want, view)
		}
	}
}

func TestHeader_View_FitsWidth(t *testing.T) {
	tests := []struct {
		name  string
		width int
		conv  string
	}{
		{"wide", 120, "short"},
		{"narrow with long name", 50, strings.Repeat("x", 80)},
		{"exact", 60, "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := NewHeader()
			header.SetWidth(tt.width)
			header.SetConversationName(tt.conv)
			header.SetTokens(conversation.ComputedTokenUsage(100, 200))

			view := header.View()
			if got := ansi.StringWidth(view); got != tt.width {
				t.Errorf("header width = %d, want %d", got, tt.width)
			}
			if !strings.Contains(ansi.Strip(view), "100 / 200 / 300") {
				t.Error("token counters must survive truncation")
			}
		})
	}
}

func TestFormatTokens(t *testing.T) {
	got := FormatTokens(conversation.TokenUsage{InputTokens: 1, OutputTokens: 2, TotalTokens: 3})
	if got != "1 / 2 / 3" {
		t.Errorf("FormatTokens() = %q, want %q", got, "1 / 2 / 3")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		hex     string
		r, g, b int
	}{
		{"#7C3AED", 0x7C, 0x3A, 0xED},
		{"#FFFFFF", 255, 255, 255},
		{"invalid", 0, 0, 0},
		{"", 0, 0, 0},
	}
	for _, tt := range tests {
		r, g, b := parseHexColor(tt.hex)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("parseHexColor(%q) = (%d,%d,%d), want (%d,%d,%d)", tt.hex, r, g, b, tt.r, tt.g, tt.b)
		}
	}
}
