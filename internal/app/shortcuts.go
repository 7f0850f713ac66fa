package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/codechat/internal/keys"
	"github.com/zhubert/codechat/internal/ui"
	"github.com/zhubert/codechat/internal/ui/modals"
)

// Shortcut represents a keyboard shortcut with its metadata and handler.
// This is the single source of truth for the app-level key map; sidebar row
// actions (enter, r, d) are handled by the sidebar itself.
type Shortcut struct {
	Key              string                              // The key binding (e.g., "tab", "ctrl+n")
	Description      string                              // Human-readable description
	Category         string                              // Section for grouping in docs and tests
	RequiresSidebar  bool                                // Only while the sidebar is focused
	AllowedInViewer  bool                                // Still active while the code viewer is open
	AllowedWhileBusy bool                                // Still active while a prompt is processing
	Handler          func(m *Model) (tea.Model, tea.Cmd) // Action to perform
	Condition        func(m *Model) bool                 // Optional extra condition
}

// Categories for organizing shortcuts
const (
	CategoryNavigation    = "Navigation"
	CategoryConversations = "Conversations"
	CategoryCode          = "Code"
	CategoryGeneral       = "General"
)

// ShortcutRegistry is the central registry of app-level keyboard shortcuts.
var ShortcutRegistry []Shortcut

// The registry is assigned in init to avoid an initialization cycle:
// some handlers transitively read ShortcutRegistry.
func init() {
	ShortcutRegistry = []Shortcut{
		// Navigation
		{
			Key:              keys.Tab,
			Description:      "Switch between sidebar and chat",
			Category:         CategoryNavigation,
			AllowedWhileBusy: true,
			Handler:          shortcutToggleFocus,
		},
		{
			Key:         keys.Escape,
			Description: "Focus the sidebar",
			Category:    CategoryNavigation,
			Handler:     shortcutFocusSidebar,
			Condition:   func(m *Model) bool { return m.focus == FocusChat && m.SidebarVisible() },
		},
		{
			Key:              keys.CtrlB,
			Description:      "Toggle sidebar",
			Category:         CategoryNavigation,
			AllowedInViewer:  true,
			AllowedWhileBusy: true,
			Handler:          shortcutToggleSidebar,
		},
		{
			Key:              keys.CtrlSlash,
			Description:      "Toggle sidebar",
			Category:         CategoryNavigation,
			AllowedInViewer:  true,
			AllowedWhileBusy: true,
			Handler:          shortcutToggleSidebar,
		},

		// Conversations
		{
			Key:             keys.CtrlN,
			Description:     "New conversation",
			Category:        CategoryConversations,
			AllowedInViewer: true,
			Handler:         shortcutNewConversation,
		},
		{
			Key:              keys.CtrlW,
			Description:      "Show the conversation context",
			Category:         CategoryConversations,
			AllowedInViewer:  true,
			AllowedWhileBusy: true,
			Handler:          shortcutConversationContext,
		},

		// Code
		{
			Key:              keys.CtrlE,
			Description:      "Preview the selected code block",
			Category:         CategoryCode,
			AllowedInViewer:  true,
			AllowedWhileBusy: true,
			Handler:          shortcutPreviewSelected,
		},
		{
			Key:              keys.CtrlY,
			Description:      "Copy the selected code block",
			Category:         CategoryCode,
			AllowedWhileBusy: true,
			Handler:          shortcutCopySelected,
		},
		{
			Key:              keys.AltUp,
			Description:      "Select the previous code block",
			Category:         CategoryCode,
			AllowedWhileBusy: true,
			Handler:          func(m *Model) (tea.Model, tea.Cmd) { return shortcutSelectArtifact(m, -1) },
		},
		{
			Key:              keys.AltDown,
			Description:      "Select the next code block",
			Category:         CategoryCode,
			AllowedWhileBusy: true,
			Handler:          func(m *Model) (tea.Model, tea.Cmd) { return shortcutSelectArtifact(m, 1) },
		},
		{
			Key:             keys.CtrlO,
			Description:     "Attach a file",
			Category:        CategoryCode,
			AllowedInViewer: true,
			Handler:         shortcutAttachFile,
		},
		{
			Key:         keys.CtrlX,
			Description: "Remove the attached file",
			Category:    CategoryCode,
			Handler:     shortcutClearAttachment,
			Condition:   func(m *Model) bool { return m.attachment != nil },
		},

		// General
		{
			Key:              keys.CtrlT,
			Description:      "Toggle light/dark theme",
			Category:         CategoryGeneral,
			AllowedInViewer:  true,
			AllowedWhileBusy: true,
			Handler:          shortcutTheme,
		},
		{
			Key:              keys.CtrlG,
			Description:      "Toggle reply notifications",
			Category:         CategoryGeneral,
			AllowedInViewer:  true,
			AllowedWhileBusy: true,
			Handler:          shortcutNotifications,
		},
		{
			Key:              "q",
			Description:      "Quit",
			Category:         CategoryGeneral,
			RequiresSidebar:  true,
			AllowedWhileBusy: true,
			Handler:          shortcutQuit,
		},
	}
}

// helpShortcut is defined separately to avoid an initialization cycle:
// its handler reads ShortcutRegistry.
var helpShortcut = Shortcut{
	Key:              "?",
	Description:      "Show this help",
	Category:         CategoryGeneral,
	RequiresSidebar:  true,
	AllowedWhileBusy: true,
}

// displayOnlyShortcuts appear in help but are handled by the panels.
var displayOnlyShortcuts = []Shortcut{
	{Key: "↑/↓ or j/k", Description: "Move through conversations", Category: CategoryNavigation},
	{Key: "enter", Description: "Open conversation (sidebar) or send (chat)", Category: CategoryConversations},
	{Key: "r", Description: "Rename conversation", Category: CategoryConversations},
	{Key: "d", Description: "Delete conversation", Category: CategoryConversations},
	{Key: "shift+enter", Description: "New line in the prompt", Category: CategoryGeneral},
	{Key: "←/→", Description: "Previous or next page in the viewer", Category: CategoryCode},
	{Key: "c", Description: "Copy code in the viewer", Category: CategoryCode},
}

// ExecuteShortcut finds and executes a shortcut by key.
// Returns (model, cmd, true) if the shortcut was found and executed.
// Returns (model, nil, false) if the shortcut was not found or guards failed.
func (m *Model) ExecuteShortcut(key string) (tea.Model, tea.Cmd, bool) {
	if key == helpShortcut.Key {
		if m.focus != FocusSidebar || m.viewer != nil {
			return m, nil, false
		}
		result, cmd := shortcutHelp(m)
		return result, cmd, true
	}
	for _, s := range ShortcutRegistry {
		if s.Key != key {
			continue
		}
		if s.RequiresSidebar && m.focus != FocusSidebar {
			continue
		}
		if !s.AllowedInViewer && m.viewer != nil {
			continue
		}
		if s.Condition != nil && !s.Condition(m) {
			continue
		}
		if !s.AllowedWhileBusy && m.IsProcessing() {
			m.log.Debug("shortcut blocked while processing", "key", key)
			return m, m.ShowFlashWarning("Wait for the current request to finish"), true
		}
		m.log.Debug("executing shortcut", "key", key)
		result, cmd := s.Handler(m)
		return result, cmd, true
	}
	return m, nil, false
}

func shortcutToggleFocus(m *Model) (tea.Model, tea.Cmd) {
	if m.focus == FocusSidebar {
		m.setFocus(FocusChat)
	} else {
		m.setFocus(FocusSidebar)
	}
	return m, nil
}

func shortcutFocusSidebar(m *Model) (tea.Model, tea.Cmd) {
	m.setFocus(FocusSidebar)
	return m, nil
}

func shortcutToggleSidebar(m *Model) (tea.Model, tea.Cmd) {
	m.sidebarCollapsed = !m.sidebarCollapsed
	m.config.SetSidebarCollapsed(m.sidebarCollapsed)
	m.updateSizes()
	if !m.SidebarVisible() {
		m.setFocus(FocusChat)
	}
	return m, m.saveConfigOrFlash()
}

func shortcutNewConversation(m *Model) (tea.Model, tea.Cmd) {
	return m, createCmd(m.ctx, m.session, "")
}

func shortcutConversationContext(m *Model) (tea.Model, tea.Cmd) {
	return m, m.openConversationContext()
}

func shortcutPreviewSelected(m *Model) (tea.Model, tea.Cmd) {
	block, ok := m.chat.SelectedArtifact()
	if !ok {
		return m, m.ShowFlashInfo("No code in this conversation yet")
	}
	return m.Update(block.PreviewMsg())
}

func shortcutCopySelected(m *Model) (tea.Model, tea.Cmd) {
	block, ok := m.chat.SelectedArtifact()
	if !ok {
		return m, m.ShowFlashInfo("No code to copy")
	}
	return m.Update(block.CopyMsg())
}

func shortcutSelectArtifact(m *Model, delta int) (tea.Model, tea.Cmd) {
	if !m.chat.SelectArtifact(delta) {
		return m, m.ShowFlashInfo("No code in this conversation yet")
	}
	return m, nil
}

func shortcutAttachFile(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(modals.NewAttachFileState())
	return m, nil
}

func shortcutClearAttachment(m *Model) (tea.Model, tea.Cmd) {
	m.setAttachment(nil)
	return m, nil
}

func shortcutTheme(m *Model) (tea.Model, tea.Cmd) {
	name := ui.ToggleTheme()
	m.config.SetTheme(string(name))
	m.rerender()
	return m, m.saveConfigOrFlash()
}

func shortcutNotifications(m *Model) (tea.Model, tea.Cmd) {
	enabled := !m.config.GetNotificationsEnabled()
	m.config.SetNotificationsEnabled(enabled)
	if cmd := m.saveConfigOrFlash(); cmd != nil {
		return m, cmd
	}
	if enabled {
		return m, m.ShowFlashSuccess("Reply notifications on")
	}
	return m, m.ShowFlashInfo("Reply notifications off")
}

func shortcutHelp(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(modals.NewHelpState(helpSections()))
	return m, nil
}

func shortcutQuit(m *Model) (tea.Model, tea.Cmd) {
	return m, tea.Quit
}

// shortcutsFor lists the entries of all in category, in order.
func shortcutsFor(all []Shortcut, category string) []Shortcut {
	var out []Shortcut
	for _, s := range all {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

// helpSections groups every shortcut, registered or display-only, by category.
func helpSections() []modals.HelpSection {
	all := append(append([]Shortcut{}, ShortcutRegistry...), helpShortcut)
	all = append(all, displayOnlyShortcuts...)

	var sections []modals.HelpSection
	for _, category := range []string{CategoryNavigation, CategoryConversations, CategoryCode, CategoryGeneral} {
		section := modals.HelpSection{Title: category}
		for _, s := range shortcutsFor(all, category) {
			section.Shortcuts = append(section.Shortcuts, modals.HelpShortcut{Key: s.Key, Desc: s.Description})
		}
		sections = append(sections, section)
	}
	return sections
}
