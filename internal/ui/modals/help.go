package modals

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// HelpShortcut is one line of the help dialog.
type HelpShortcut struct {
	Key  string
	Desc string
}

// HelpSection groups shortcuts under a heading.
type HelpSection struct {
	Title     string
	Shortcuts []HelpShortcut
}

// HelpState lists the keyboard shortcuts by section.
type HelpState struct {
	Sections []HelpSection
}

func (*HelpState) modalState() {}

func (s *HelpState) Title() string { return "Keyboard Shortcuts" }

func (s *HelpState) Help() string { return "Esc: close" }

func (s *HelpState) Render() string {
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorSecondary).MarginTop(1)
	keyStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).Width(16)
	descStyle := lipgloss.NewStyle().Foreground(ColorText)

	lines := []string{ModalTitleStyle.Render(s.Title())}
	for _, section := range s.Sections {
		if len(section.Shortcuts) == 0 {
			continue
		}
		lines = append(lines, sectionStyle.Render(section.Title))
		for _, sc := range section.Shortcuts {
			lines = append(lines, "  "+keyStyle.Render(sc.Key)+descStyle.Render(sc.Desc))
		}
	}
	lines = append(lines, ModalHelpStyle.Render(s.Help()))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (s *HelpState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	return s, nil
}

// NewHelpState creates the dialog from pre-built sections.
func NewHelpState(sections []HelpSection) *HelpState {
	return &HelpState{Sections: sections}
}
