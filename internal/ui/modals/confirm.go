package modals

import (
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

// ConfirmState is a yes/no dialog built on a huh Confirm field.
// It is the only confirmation dialog; delete uses it.
type ConfirmState struct {
	title     string
	message   string
	confirmed bool
	form      *huh.Form
}

func (*ConfirmState) modalState() {}

func (s *ConfirmState) Title() string { return s.title }

func (s *ConfirmState) Help() string {
	return "←/→: choose  y/n: answer  Enter: confirm  Esc: cancel"
}

func (s *ConfirmState) Render() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorWarning).
		MarginBottom(1).
		Render(s.title)
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *ConfirmState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// Confirmed reports the currently selected answer
func (s *ConfirmState) Confirmed() bool {
	return s.confirmed
}

// Message returns the dialog body
func (s *ConfirmState) Message() string {
	return s.message
}

// Answered reports whether the user finished the form with y or n
func (s *ConfirmState) Answered() bool {
	return s.form.State == huh.StateCompleted
}

// NewConfirmDialog creates a confirmation dialog. The default answer is cancel.
func NewConfirmDialog(title, message string) *ConfirmState {
	s := &ConfirmState{title: title, message: message}
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Description(message).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&s.confirmed),
		),
	).WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(ModalInputWidth)
	s.form.Init()
	return s
}
