package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/zhubert/codechat/internal/conversation"
)

func TestCodeArtifact_Badge(t *testing.T) {
	tests := []struct {
		language string
		want     string
	}{
		{"python", "python"},
		{"Cobol-ish", "Cobol-ish"},
		{"", "markup"},
	}
	for _, tt := range tests {
		a := NewCodeArtifact(conversation.Artifact{Language: tt.language}, false)
		if got := a.Badge(); got != tt.want {
			t.Errorf("Badge(%q) = %q, want %q", tt.language, got, tt.want)
		}
	}
}

func TestCodeArtifact_Messages(t *testing.T) {
	art := conversation.Artifact{ID: "9", Content: "ls -la", Language: "bash"}
	a := NewCodeArtifact(art, true)
	a.Index = 3

	if got := a.PreviewMsg(); got.Artifact.ID != "9" || got.Index != 3 {
		t.Errorf("PreviewMsg = %+v", got)
	}
	if got := a.CopyMsg().Text; got != "ls -la" {
		t.Errorf("CopyMsg text = %q", got)
	}
}

func TestCodeArtifact_View(t *testing.T) {
	art := conversation.Artifact{ID: "9", Content: "ls -la", Language: "bash"}

	selected := NewCodeArtifact(art, false)
	selected.Selected = true
	view := ansi.Strip(selected.View(60))
	for _, want := range []string{"bash", "ls -la", "ctrl+y copy"} {
		if !strings.Contains(view, want) {
			t.Errorf("selected view missing %q: %q", want, view)
		}
	}

	other := ansi.Strip(NewCodeArtifact(art, true).View(60))
	if strings.Contains(other, "ctrl+y") {
		t.Error("only the selected artifact advertises ctrl+y")
	}
	if !strings.Contains(other, "alt+↑/↓ select") {
		t.Errorf("unselected block should hint at selection: %q", other)
	}
}
