package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/zhubert/codechat/internal/keys"
)

// ContextWindow is the code viewer overlay. The app keeps at most one.
type ContextWindow struct {
	title    string
	language string
	content  string
	viewport viewport.Model
	width    int
	height   int
	index    int
	total    int
	copy     CopyIndicator
}

// NewContextWindow creates a viewer showing content highlighted as language
func NewContextWindow(content, language, title string) *ContextWindow {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	w := &ContextWindow{
		title:    title,
		language: language,
		content:  content,
		viewport: vp,
	}
	w.viewport.SetContent(highlightCode(content, language))
	return w
}

// Title returns the viewer title
func (w *ContextWindow) Title() string { return w.title }

// Language returns the highlighting language
func (w *ContextWindow) Language() string { return w.language }

// Content returns the raw text being shown
func (w *ContextWindow) Content() string { return w.content }

// SetPosition records where this item sits among the previewable items.
// total 0 hides the position and disables navigation.
func (w *ContextWindow) SetPosition(index, total int) {
	w.index = index
	w.total = total
}

// Position returns the index and total set by SetPosition
func (w *ContextWindow) Position() (int, int) {
	return w.index, w.total
}

// SetSize sets the outer dimensions of the viewer
func (w *ContextWindow) SetSize(width, height int) {
	w.width = width
	w.height = height
	ctx := GetViewContext()
	innerH := ctx.InnerHeight(height) - 1 // title line
	if innerH < 1 {
		innerH = 1
	}
	w.viewport.SetWidth(ctx.InnerWidth(width))
	w.viewport.SetHeight(innerH)
}

// SetCopyResult shows the copy indicator and returns its expiry command
func (w *ContextWindow) SetCopyResult(err error) tea.Cmd {
	return w.copy.Set(err)
}

// CopyStatus returns the indicator label, or ""
func (w *ContextWindow) CopyStatus() string {
	return w.copy.Text()
}

// Update handles the viewer controls and scrolling
func (w *ContextWindow) Update(msg tea.Msg) (*ContextWindow, tea.Cmd) {
	switch msg := msg.(type) {
	case CopyIndicatorExpiredMsg:
		w.copy.Expire(msg)
		return w, nil
	case tea.KeyPressMsg:
		switch msg.String() {
		case "c":
			return w, emit(CopyRequestMsg{Text: w.content})
		case keys.Escape, "q":
			return w, emit(CloseViewerMsg{})
		case keys.Left, "h":
			if w.total > 1 {
				return w, emit(NavigateViewerMsg{Delta: -1})
			}
			return w, nil
		case keys.Right, "l":
			if w.total > 1 {
				return w, emit(NavigateViewerMsg{Delta: 1})
			}
			return w, nil
		}
	}
	var cmd tea.Cmd
	w.viewport, cmd = w.viewport.Update(msg)
	return w, cmd
}

// View renders the viewer panel
func (w *ContextWindow) View() string {
	parts := []string{ViewerTitleStyle.Render(w.title)}
	if w.language != "" {
		parts = append(parts, ArtifactBadgeStyle.Render(w.language))
	}
	if w.total > 1 {
		parts = append(parts, ArtifactControlStyle.Render(fmt.Sprintf("%d/%d", w.index+1, w.total)))
	}
	if s := w.copy.View(); s != "" {
		parts = append(parts, s)
	}
	titleLine := strings.Join(parts, " ")

	return PanelFocusedStyle.
		Width(w.width).
		Height(w.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, titleLine, w.viewport.View()))
}
