package modals

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	}
	return tea.KeyPressMsg{Code: rune(s[0]), Text: s}
}

func TestConfirmDialog_Defaults(t *testing.T) {
	s := NewConfirmDialog("Delete Conversation", "Are you sure?")

	if s.Title() != "Delete Conversation" {
		t.Errorf("Title() = %q", s.Title())
	}
	if s.Confirmed() {
		t.Error("default answer must be cancel")
	}
	if s.Answered() {
		t.Error("new dialog should not be answered")
	}
	if !strings.Contains(s.Render(), "Are you sure?") {
		t.Error("Render() should include the message")
	}
}

func TestConfirmDialog_EnterAndEscapeAreLeftToTheApp(t *testing.T) {
	s := NewConfirmDialog("Delete Conversation", "Are you sure?")

	for _, k := range []string{"enter", "esc"} {
		state, cmd := s.Update(key(k))
		if state != s {
			t.Errorf("%s: Update should keep the same state", k)
		}
		if cmd != nil {
			t.Errorf("%s: Update should not emit a command", k)
		}
		if s.Answered() {
			t.Errorf("%s: must not complete the form", k)
		}
	}
}

func TestConfirmDialog_ToggleSelectsDelete(t *testing.T) {
	s := NewConfirmDialog("Delete Conversation", "Are you sure?")

	s.Update(key("right"))

	if !s.Confirmed() {
		t.Error("toggling from cancel should select delete")
	}
}

func TestRenameState(t *testing.T) {
	s := NewRenameState("7", "Old name")

	if s.NewName() != "Old name" {
		t.Errorf("input should be prefilled, got %q", s.NewName())
	}
	if !strings.Contains(s.Render(), "Old name") {
		t.Error("Render() should show the current name")
	}

	s.NameInput.SetValue("  Shiny new name  ")
	if s.NewName() != "Shiny new name" {
		t.Errorf("NewName() = %q, want trimmed", s.NewName())
	}

	s.Update(key("!"))
	if !strings.HasSuffix(s.NewName(), "!") {
		t.Errorf("typing should reach the input, got %q", s.NewName())
	}
}

func TestAttachFileState(t *testing.T) {
	s := NewAttachFileState()
	if s.Title() != "Attach File" {
		t.Errorf("Title() = %q", s.Title())
	}

	for _, r := range "a.py" {
		s.Update(key(string(r)))
	}
	if s.Path() != "a.py" {
		t.Errorf("Path() = %q, want a.py", s.Path())
	}
}

func TestAttachFileState_ShowsResolvedPath(t *testing.T) {
	s := NewAttachFileState()
	if strings.Contains(ansi.Strip(s.Render()), "→") {
		t.Error("empty input should not show a resolved path")
	}

	s.PathInput.SetValue("~/" + strings.Repeat("deep/", 20) + "main.go")
	var resolved string
	for _, line := range strings.Split(ansi.Strip(s.Render()), "\n") {
		if strings.Contains(line, "→") {
			resolved = strings.TrimSpace(line)
		}
	}
	if !strings.HasPrefix(resolved, "→ …") || !strings.HasSuffix(resolved, "main.go") {
		t.Errorf("resolved path line = %q", resolved)
	}
	if strings.Contains(resolved, "~") {
		t.Errorf("home should be expanded: %q", resolved)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"  /tmp/x.go  ", "/tmp/x.go"},
		{`"/tmp/with space.go"`, "/tmp/with space.go"},
		{"'/tmp/q.go'", "/tmp/q.go"},
		{"~/code/main.go", filepath.Join(home, "code/main.go")},
		{"relative.go", "relative.go"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncatePath(t *testing.T) {
	tests := []struct {
		path     string
		maxWidth int
		wantBase bool
	}{
		{"/short.go", 20, true},
		{"/very/long/directory/structure/for/testing/main.go", 25, true},
		{"/a/" + strings.Repeat("x", 40) + ".go", 20, false},
	}
	for _, tt := range tests {
		got := TruncatePath(tt.path, tt.maxWidth)
		if runewidth.StringWidth(got) > tt.maxWidth {
			t.Errorf("TruncatePath(%q, %d) = %q, too wide", tt.path, tt.maxWidth, got)
		}
		if tt.wantBase && !strings.HasSuffix(got, filepath.Base(tt.path)) {
			t.Errorf("TruncatePath(%q, %d) = %q, lost the file name", tt.path, tt.maxWidth, got)
		}
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("hello", 10); got != "hello" {
		t.Errorf("TruncateString short = %q", got)
	}
	if got := TruncateString("hello world", 6); runewidth.StringWidth(got) > 6 || !strings.HasSuffix(got, "…") {
		t.Errorf("TruncateString long = %q", got)
	}
}

func TestHelpState_Render(t *testing.T) {
	s := NewHelpState([]HelpSection{
		{Title: "Navigation", Shortcuts: []HelpShortcut{{Key: "tab", Desc: "Switch focus"}}},
		{Title: "Empty"},
	})
	out := ansi.Strip(s.Render())
	for _, want := range []string{"Keyboard Shortcuts", "Navigation", "tab", "Switch focus"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q", want)
		}
	}
	if strings.Contains(out, "Empty") {
		t.Error("Render() should skip sections without shortcuts")
	}
}
