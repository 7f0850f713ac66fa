package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/codechat/internal/ui"
)

// View renders the app. This is the core Bubble Tea view function.
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.SetContent(m.RenderToString())
	return v
}

// RenderToString renders the current view as a string.
// This is useful for testing.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	m.updateFooterMode()
	m.header.SetProcessing(m.IsProcessing())

	// Overlay modal if visible
	if m.modal.IsVisible() {
		return m.modal.View(m.width, m.height)
	}

	main := m.chat.View()
	if m.viewer != nil {
		main = m.viewer.View()
	}

	panels := main
	if m.SidebarVisible() {
		panels = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), main)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(),
		panels,
		m.footer.View(),
	)
}

// updateFooterMode picks the footer bindings for the current context
func (m *Model) updateFooterMode() {
	switch {
	case m.modal.IsVisible():
		m.footer.SetMode(ui.FooterModal)
	case m.IsProcessing():
		m.footer.SetMode(ui.FooterProcessing)
	case m.viewer != nil:
		m.footer.SetMode(ui.FooterViewer)
	case m.focus == FocusChat:
		m.footer.SetMode(ui.FooterChat)
	default:
		m.footer.SetMode(ui.FooterSidebar)
	}
}

// updateSizes updates component sizes based on terminal dimensions
func (m *Model) updateSizes() {
	if m.width == 0 || m.height == 0 {
		return
	}
	ctx := ui.GetViewContext()
	ctx.UpdateLayout(m.width, m.height, m.SidebarVisible())

	m.header.SetWidth(ctx.TerminalWidth)
	m.footer.SetWidth(ctx.TerminalWidth)
	m.sidebar.SetSize(ctx.SidebarWidth, ctx.ContentHeight)
	m.chat.SetSize(ctx.ChatWidth, ctx.ContentHeight)
	m.sizeViewer()

	if m.focus == FocusSidebar && !m.SidebarVisible() {
		m.setFocus(FocusChat)
	}
}
