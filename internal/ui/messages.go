package ui

import (
	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/codechat/internal/conversation"
)

// Requests emitted by components. The app model performs the work.

// LoadConversationMsg asks to load a conversation into the chat
type LoadConversationMsg struct {
	ID conversation.ID
}

// RenameRequestMsg asks to open the rename modal for a conversation
type RenameRequestMsg struct {
	ID   conversation.ID
	Name string
}

// DeleteRequestMsg asks to confirm and delete a conversation
type DeleteRequestMsg struct {
	ID   conversation.ID
	Name string
}

// PreviewArtifactMsg asks to open an artifact in the viewer. Index is its
// position in Chat.Artifacts.
type PreviewArtifactMsg struct {
	Index    int
	Artifact conversation.Artifact
}

// CopyRequestMsg asks to copy text to the clipboard
type CopyRequestMsg struct {
	Text string
}

// CloseViewerMsg asks to close the viewer
type CloseViewerMsg struct{}

// NavigateViewerMsg asks to show the previous (-1) or next (+1) previewable item
type NavigateViewerMsg struct {
	Delta int
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
