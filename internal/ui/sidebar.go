package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
	"github.com/zhubert/codechat/internal/conversation"
	"github.com/zhubert/codechat/internal/keys"
)

// itemHeight is the number of lines a list item occupies (name + timestamp)
const itemHeight = 2

// ConversationListItem is one sidebar row.
type ConversationListItem struct {
	Conversation conversation.Conversation
	Current      bool
}

// NewConversationListItem creates a sidebar row for conv
func NewConversationListItem(conv conversation.Conversation) ConversationListItem {
	return ConversationListItem{Conversation: conv}
}

// Truncate shortens s to fit width terminal cells, adding an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// View renders the item at the given inner width
func (it ConversationListItem) View(width int, selected bool) string {
	marker := "  "
	if it.Current {
		marker = "● "
	}
	nameWidth := width - 2 - runewidth.StringWidth(marker)
	if nameWidth > SidebarNameWidth {
		nameWidth = SidebarNameWidth
	}
	name := it.Conversation.Name
	if name == "" {
		name = conversation.DefaultName
	}
	line := marker + Truncate(name, nameWidth)

	ts := it.Conversation.CreatedAt.Display()
	tsLine := "  " + SidebarTimeStyle.Render(Truncate(ts, width-4))

	style := SidebarItemStyle.Width(width)
	if selected {
		style = SidebarSelectedStyle.Width(width)
	}
	return style.Render(line + "\n" + tsLine)
}

// RenameMsg is the request this item's rename action emits
func (it ConversationListItem) RenameMsg() RenameRequestMsg {
	return RenameRequestMsg{ID: it.Conversation.ID, Name: it.Conversation.Name}
}

// DeleteMsg is the request this item's delete action emits
func (it ConversationListItem) DeleteMsg() DeleteRequestMsg {
	return DeleteRequestMsg{ID: it.Conversation.ID, Name: it.Conversation.Name}
}

// Sidebar represents the left panel with the conversation list
type Sidebar struct {
	items        []ConversationListItem
	current      conversation.ID
	selectedIdx  int
	scrollOffset int
	width        int
	height       int
	focused      bool
}

// NewSidebar creates a new sidebar
func NewSidebar() *Sidebar {
	return &Sidebar{}
}

// SetSize sets the sidebar dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height

	ctx := GetViewContext()
	ctx.Log("Sidebar.SetSize",
		"outerWidth", width,
		"outerHeight", height,
		"innerWidth", ctx.InnerWidth(width),
		"innerHeight", ctx.InnerHeight(height),
	)
}

// Width returns the sidebar width
func (s *Sidebar) Width() int {
	return s.width
}

// SetFocused sets the focus state
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state
func (s *Sidebar) IsFocused() bool {
	return s.focused
}

// SetConversations replaces the list, keeping the selection on the same id
// when it still exists.
func (s *Sidebar) SetConversations(convs []conversation.Conversation) {
	var selectedID conversation.ID
	if sel := s.SelectedConversation(); sel != nil {
		selectedID = sel.ID
	}

	s.items = make([]ConversationListItem, len(convs))
	for i, c := range convs {
		s.items[i] = NewConversationListItem(c)
		s.items[i].Current = c.ID == s.current
	}

	s.selectedIdx = 0
	if selectedID != "" {
		s.SelectConversation(selectedID)
	}
	s.clampSelection()
}

// Items returns the rows currently shown
func (s *Sidebar) Items() []ConversationListItem {
	return s.items
}

// SetCurrent marks the conversation shown in the chat
func (s *Sidebar) SetCurrent(id conversation.ID) {
	s.current = id
	for i := range s.items {
		s.items[i].Current = s.items[i].Conversation.ID == id
	}
}

// SelectConversation moves the selection to id if present
func (s *Sidebar) SelectConversation(id conversation.ID) {
	for i, it := range s.items {
		if it.Conversation.ID == id {
			s.selectedIdx = i
			return
		}
	}
}

// SelectedConversation returns the highlighted conversation, or nil
func (s *Sidebar) SelectedConversation() *conversation.Conversation {
	if s.selectedIdx < 0 || s.selectedIdx >= len(s.items) {
		return nil
	}
	c := s.items[s.selectedIdx].Conversation
	return &c
}

func (s *Sidebar) clampSelection() {
	if s.selectedIdx >= len(s.items) {
		s.selectedIdx = len(s.items) - 1
	}
	if s.selectedIdx < 0 {
		s.selectedIdx = 0
	}
}

// Update handles navigation and item actions while focused
func (s *Sidebar) Update(msg tea.Msg) (*Sidebar, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !s.focused {
		return s, nil
	}

	switch keyMsg.String() {
	case keys.Up, "k":
		if s.selectedIdx > 0 {
			s.selectedIdx--
		}
	case keys.Down, "j":
		if s.selectedIdx < len(s.items)-1 {
			s.selectedIdx++
		}
	case keys.Home, "g":
		s.selectedIdx = 0
	case keys.End, "G":
		s.selectedIdx = len(s.items) - 1
		s.clampSelection()
	case keys.Enter:
		if sel := s.SelectedConversation(); sel != nil {
			return s, emit(LoadConversationMsg{ID: sel.ID})
		}
	case "r":
		if len(s.items) > 0 {
			return s, emit(s.items[s.selectedIdx].RenameMsg())
		}
	case "d":
		if len(s.items) > 0 {
			return s, emit(s.items[s.selectedIdx].DeleteMsg())
		}
	}
	return s, nil
}

// visibleItems returns how many items fit in the panel
func (s *Sidebar) visibleItems() int {
	inner := GetViewContext().InnerHeight(s.height) - 1 // title line
	n := inner / itemHeight
	if n < 1 {
		n = 1
	}
	return n
}

func (s *Sidebar) ensureVisible() {
	n := s.visibleItems()
	if s.selectedIdx < s.scrollOffset {
		s.scrollOffset = s.selectedIdx
	}
	if s.selectedIdx >= s.scrollOffset+n {
		s.scrollOffset = s.selectedIdx - n + 1
	}
	if s.scrollOffset < 0 {
		s.scrollOffset = 0
	}
}

// View renders the sidebar
func (s *Sidebar) View() string {
	ctx := GetViewContext()

	style := PanelStyle
	if s.focused {
		style = PanelFocusedStyle
	}
	innerWidth := ctx.InnerWidth(s.width)

	var sb strings.Builder
	sb.WriteString(PanelTitleStyle.Render("Conversations"))
	sb.WriteString("\n")

	if len(s.items) == 0 {
		sb.WriteString(lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render(" No conversations yet.\n ctrl+n to start one."))
	} else {
		s.ensureVisible()
		end := s.scrollOffset + s.visibleItems()
		if end > len(s.items) {
			end = len(s.items)
		}
		rows := make([]string, 0, end-s.scrollOffset)
		for i := s.scrollOffset; i < end; i++ {
			rows = append(rows, s.items[i].View(innerWidth, s.focused && i == s.selectedIdx))
		}
		sb.WriteString(strings.Join(rows, "\n"))
	}

	return style.Width(s.width).Height(s.height).Render(sb.String())
}
