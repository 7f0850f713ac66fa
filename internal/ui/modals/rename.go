package modals

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/zhubert/codechat/internal/conversation"
)

// RenameState is the dialog for renaming a conversation.
type RenameState struct {
	ID          conversation.ID
	CurrentName string
	NameInput   textinput.Model
}

func (*RenameState) modalState() {}

func (s *RenameState) Title() string { return "Rename Conversation" }

func (s *RenameState) Help() string {
	return "Enter: save  Esc: cancel"
}

func (s *RenameState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	currentName := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		MarginBottom(1).
		Render("  " + TruncateString(s.CurrentName, ModalInputWidth))

	newLabel := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		MarginTop(1).
		Render("New name:")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		label("Current name:"),
		currentName,
		newLabel,
		inputFrame().Render(s.NameInput.View()),
		ModalHelpStyle.Render(s.Help()),
	)
}

func (s *RenameState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.NameInput, cmd = s.NameInput.Update(msg)
	return s, cmd
}

// NewName returns the trimmed name entered by the user
func (s *RenameState) NewName() string {
	return strings.TrimSpace(s.NameInput.Value())
}

// NewRenameState creates the dialog prefilled with the current name
func NewRenameState(id conversation.ID, currentName string) *RenameState {
	nameInput := textinput.New()
	nameInput.Placeholder = "enter new name"
	nameInput.CharLimit = ModalInputCharLimit
	nameInput.SetWidth(ModalInputWidth)
	nameInput.SetValue(currentName)
	nameInput.Focus()

	return &RenameState{
		ID:          id,
		CurrentName: currentName,
		NameInput:   nameInput,
	}
}
