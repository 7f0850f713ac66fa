package ui

import (
	"charm.land/lipgloss/v2"
	"github.com/zhubert/codechat/internal/conversation"
)

// CodeArtifact renders one artifact inline in the chat.
type CodeArtifact struct {
	Artifact conversation.Artifact
	// IsLatest marks the artifact the viewer opened automatically.
	IsLatest bool
	// Index is the position in Chat.Artifacts.
	Index int
	// Selected marks the block ctrl+e and ctrl+y act on.
	Selected bool
}

// NewCodeArtifact creates an inline block for a
func NewCodeArtifact(a conversation.Artifact, isLatest bool) CodeArtifact {
	return CodeArtifact{Artifact: a, IsLatest: isLatest}
}

// Badge is the language tag as the backend sent it
func (c CodeArtifact) Badge() string {
	if c.Artifact.Language == "" {
		return conversation.FallbackLanguage
	}
	return c.Artifact.Language
}

// PreviewMsg is the request the preview control emits
func (c CodeArtifact) PreviewMsg() PreviewArtifactMsg {
	return PreviewArtifactMsg{Index: c.Index, Artifact: c.Artifact}
}

// CopyMsg is the request the copy control emits
func (c CodeArtifact) CopyMsg() CopyRequestMsg {
	return CopyRequestMsg{Text: c.Artifact.Content}
}

// View renders the block at the given width
func (c CodeArtifact) View(width int) string {
	box := ArtifactBoxStyle
	if c.IsLatest {
		box = ArtifactLatestBoxStyle
	}

	badge := ArtifactBadgeStyle.Render(c.Badge())
	controls := "alt+↑/↓ select"
	if c.Selected {
		controls = "ctrl+e preview · ctrl+y copy"
	}
	header := lipgloss.JoinHorizontal(lipgloss.Center, badge, " ", ArtifactControlStyle.Render(controls))

	body := highlightCode(c.Artifact.Content, conversation.NormalizeLanguage(c.Artifact.Language))

	if width > 0 {
		box = box.Width(width)
	}
	return box.Render(header + "\n" + body)
}
