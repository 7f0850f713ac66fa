package modals

import (
	"os"
	"path/filepath"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// AttachFileState is the dialog for choosing a file to send with the prompt.
type AttachFileState struct {
	PathInput textinput.Model
}

func (*AttachFileState) modalState() {}

func (s *AttachFileState) Title() string { return "Attach File" }

func (s *AttachFileState) Help() string {
	return "Enter: attach  Esc: cancel"
}

func (s *AttachFileState) Render() string {
	parts := []string{
		ModalTitleStyle.Render(s.Title()),
		label("Path to a file:"),
		inputFrame().Render(s.PathInput.View()),
	}
	if p := s.Path(); p != "" {
		parts = append(parts, ModalHelpStyle.Render("→ "+TruncatePath(p, ModalInputWidth)))
	}
	parts = append(parts, ModalHelpStyle.Render(s.Help()))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *AttachFileState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.PathInput, cmd = s.PathInput.Update(msg)
	return s, cmd
}

// Path returns the entered path with "~/" expanded
func (s *AttachFileState) Path() string {
	return ExpandPath(s.PathInput.Value())
}

// ExpandPath trims p, strips surrounding quotes and expands a leading "~/".
func ExpandPath(p string) string {
	p = strings.TrimSpace(p)
	p = strings.Trim(p, `"'`)
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[2:])
		}
	}
	return p
}

// NewAttachFileState creates the dialog with an empty path
func NewAttachFileState() *AttachFileState {
	pathInput := textinput.New()
	pathInput.Placeholder = "./main.go"
	pathInput.CharLimit = ModalInputCharLimit
	pathInput.SetWidth(ModalInputWidth)
	pathInput.Focus()

	return &AttachFileState{PathInput: pathInput}
}
