package ui

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/zhubert/codechat/internal/conversation"
	"github.com/zhubert/codechat/internal/keys"
)

// SpinnerTickMsg advances the processing overlay
type SpinnerTickMsg time.Time

// spinnerFrames are the characters used for the processing animation
var spinnerFrames = []string{"·", "✺", "✹", "✸", "✷", "✶", "✵", "✴", "✳", "✲", "✱", "✧", "✦", "·"}

// SpinnerTick returns a command that sends a tick message after a delay
func SpinnerTick() tea.Cmd {
	return tea.Tick(SpinnerInterval, func(t time.Time) tea.Msg {
		return SpinnerTickMsg(t)
	})
}

// renderSpinner renders the spinner frame followed by the label
func renderSpinner(label string, frameIdx int) string {
	frame := spinnerFrames[frameIdx%len(spinnerFrames)]
	spinnerStyle := lipgloss.NewStyle().Foreground(ColorUser).Bold(true)
	return spinnerStyle.Render(frame) + " " + StatusLoadingStyle.Render(label+"...")
}

// Chat is the main panel: message history above, prompt input below.
type Chat struct {
	viewport viewport.Model
	input    textarea.Model
	width    int
	height   int
	focused  bool

	hasConversation bool
	messages        []conversation.Message
	unassociated    []conversation.Artifact
	// latest and selected index into Artifacts; -1 is unset.
	latest   int
	selected int

	attachment   string
	processing   bool
	spinnerFrame int
	copy         CopyIndicator
}

// NewChat creates a new chat panel
func NewChat() *Chat {
	ti := textarea.New()
	ti.Placeholder = InputPlaceholderText
	ti.CharLimit = 0
	ti.SetHeight(TextareaHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	c := &Chat{
		viewport: vp,
		input:    ti,
		latest:   -1,
		selected: -1,
	}
	c.updateContent()
	return c
}

// SetSize sets the chat panel dimensions
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	ctx := GetViewContext()

	chatPanelHeight := height - InputTotalHeight
	viewportHeight := ctx.InnerHeight(chatPanelHeight)
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	c.viewport.SetWidth(ctx.InnerWidth(width))
	c.viewport.SetHeight(viewportHeight)
	c.input.SetWidth(ctx.InnerWidth(width) - InputPaddingWidth)

	ctx.Log("Chat.SetSize", "width", width, "height", height, "viewportHeight", viewportHeight)
	c.updateContent()
}

// SetFocused sets the focus state
func (c *Chat) SetFocused(focused bool) {
	c.focused = focused
	if focused {
		c.input.Focus()
	} else {
		c.input.Blur()
	}
}

// IsFocused returns the focus state
func (c *Chat) IsFocused() bool {
	return c.focused
}

// SetConversation shows msgs as the history of the current conversation.
// Artifacts must already be associated.
func (c *Chat) SetConversation(msgs []conversation.Message, unassociated []conversation.Artifact) {
	c.hasConversation = true
	c.messages = append([]conversation.Message(nil), msgs...)
	c.unassociated = append([]conversation.Artifact(nil), unassociated...)
	c.latest, c.selected = -1, -1
	c.updateContent()
}

// ClearConversation returns to the welcome screen
func (c *Chat) ClearConversation() {
	c.hasConversation = false
	c.messages = nil
	c.unassociated = nil
	c.latest, c.selected = -1, -1
	c.updateContent()
}

// StartEmpty shows an empty history for a freshly created conversation
func (c *Chat) StartEmpty() {
	c.SetConversation(nil, nil)
}

// HasConversation reports whether a conversation is shown
func (c *Chat) HasConversation() bool {
	return c.hasConversation
}

// AppendMessages adds entries to the end of the history
func (c *Chat) AppendMessages(msgs ...conversation.Message) {
	c.hasConversation = true
	before := c.inlineCount()
	c.messages = append(c.messages, msgs...)
	// Unassociated artifacts follow the inline ones, so their indices shift.
	added := c.inlineCount() - before
	if c.latest >= before {
		c.latest += added
	}
	if c.selected >= before {
		c.selected += added
	}
	c.updateContent()
}

// Messages returns the history being shown
func (c *Chat) Messages() []conversation.Message {
	return c.messages
}

// Artifacts returns every artifact in display order: inline ones first by
// message, then the unassociated ones.
func (c *Chat) Artifacts() []conversation.Artifact {
	var out []conversation.Artifact
	for _, m := range c.messages {
		out = append(out, m.Artifacts...)
	}
	return append(out, c.unassociated...)
}

func (c *Chat) inlineCount() int {
	n := 0
	for _, m := range c.messages {
		n += len(m.Artifacts)
	}
	return n
}

// LastInlineArtifact returns the index of the last artifact attached to a
// message, or -1.
func (c *Chat) LastInlineArtifact() int {
	return c.inlineCount() - 1
}

// SetLatestArtifact marks the artifact at idx as the auto-open candidate and
// selects it. An out-of-range idx clears the mark.
func (c *Chat) SetLatestArtifact(idx int) {
	if idx < 0 || idx >= len(c.Artifacts()) {
		idx = -1
	}
	c.latest = idx
	c.selected = idx
	c.updateContent()
}

// LatestIndex returns the auto-open candidate, or -1
func (c *Chat) LatestIndex() int {
	return c.latest
}

// selectedIndex is the explicit selection, else the last artifact.
func (c *Chat) selectedIndex(total int) int {
	if total == 0 {
		return -1
	}
	if c.selected >= 0 && c.selected < total {
		return c.selected
	}
	return total - 1
}

// SelectedArtifact returns the block ctrl+e and ctrl+y act on.
func (c *Chat) SelectedArtifact() (CodeArtifact, bool) {
	all := c.Artifacts()
	idx := c.selectedIndex(len(all))
	if idx < 0 {
		return CodeArtifact{}, false
	}
	return c.codeArtifact(all[idx], idx, idx), true
}

// SelectArtifact moves the selection by delta, wrapping around. It reports
// false when there is nothing to select.
func (c *Chat) SelectArtifact(delta int) bool {
	total := len(c.Artifacts())
	if total == 0 {
		return false
	}
	cur := c.selectedIndex(total)
	c.selected = ((cur+delta)%total + total) % total
	c.updateContent()
	return true
}

// SelectArtifactAt selects the artifact at idx
func (c *Chat) SelectArtifactAt(idx int) {
	if idx < 0 || idx >= len(c.Artifacts()) {
		return
	}
	c.selected = idx
	c.updateContent()
}

func (c *Chat) codeArtifact(a conversation.Artifact, idx, selected int) CodeArtifact {
	ca := NewCodeArtifact(a, idx == c.latest)
	ca.Index = idx
	ca.Selected = idx == selected
	return ca
}

// GetInput returns the prompt text
func (c *Chat) GetInput() string {
	return c.input.Value()
}

// SetInput replaces the prompt text
func (c *Chat) SetInput(value string) {
	c.input.SetValue(value)
}

// ClearInput empties the prompt
func (c *Chat) ClearInput() {
	c.input.Reset()
}

// InsertNewline adds a line break at the cursor
func (c *Chat) InsertNewline() {
	c.input.InsertString("\n")
}

// SetAttachment shows name under the input
func (c *Chat) SetAttachment(name string) {
	c.attachment = name
}

// ClearAttachment removes the attachment label
func (c *Chat) ClearAttachment() {
	c.attachment = ""
}

// AttachmentLabel returns the text shown under the input
func (c *Chat) AttachmentLabel() string {
	if c.attachment == "" {
		return AttachFileLabel
	}
	return c.attachment
}

// SetProcessing toggles the processing overlay. Starting returns the tick
// command that drives the spinner.
func (c *Chat) SetProcessing(processing bool) tea.Cmd {
	was := c.processing
	c.processing = processing
	c.updateContent()
	if processing && !was {
		c.spinnerFrame = 0
		return SpinnerTick()
	}
	return nil
}

// IsProcessing reports whether the overlay is shown
func (c *Chat) IsProcessing() bool {
	return c.processing
}

// SetCopyResult shows the copy indicator under the input
func (c *Chat) SetCopyResult(err error) tea.Cmd {
	return c.copy.Set(err)
}

// CopyStatus returns the indicator label, or ""
func (c *Chat) CopyStatus() string {
	return c.copy.Text()
}

func (c *Chat) updateContent() {
	wrapWidth := c.viewport.Width()
	if wrapWidth <= 0 {
		wrapWidth = DefaultWrapWidth
	}

	var sb strings.Builder
	switch {
	case !c.hasConversation:
		sb.WriteString(renderWelcome())
	case len(c.messages) == 0 && len(c.unassociated) == 0:
		sb.WriteString(lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render("Start the conversation by typing below."))
	default:
		selected := c.selectedIndex(len(c.Artifacts()))
		idx := 0
		for i, msg := range c.messages {
			if i > 0 {
				sb.WriteString("\n\n")
			}
			blocks := make([]CodeArtifact, len(msg.Artifacts))
			for j, a := range msg.Artifacts {
				blocks[j] = c.codeArtifact(a, idx, selected)
				idx++
			}
			sb.WriteString(renderMessage(msg, wrapWidth, blocks))
		}
		if len(c.unassociated) > 0 {
			if len(c.messages) > 0 {
				sb.WriteString("\n\n")
			}
			sb.WriteString(MarkdownH3Style.Render(UnassociatedHeading))
			for _, a := range c.unassociated {
				sb.WriteString("\n")
				sb.WriteString(c.codeArtifact(a, idx, selected).View(wrapWidth))
				idx++
			}
		}
	}

	if c.processing {
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(renderSpinner(ProcessingLabel, c.spinnerFrame))
	}

	c.viewport.SetContent(sb.String())
	c.viewport.GotoBottom()
}

// Update handles messages
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	switch msg := msg.(type) {
	case SpinnerTickMsg:
		if !c.processing {
			return c, nil
		}
		c.spinnerFrame++
		c.updateContent()
		return c, SpinnerTick()
	case CopyIndicatorExpiredMsg:
		c.copy.Expire(msg)
		return c, nil
	}

	var cmds []tea.Cmd
	if c.focused {
		if keyMsg, isKey := msg.(tea.KeyPressMsg); isKey {
			switch keyMsg.String() {
			case keys.PgUp, keys.PgDown, keys.CtrlU, keys.CtrlD:
				var cmd tea.Cmd
				c.viewport, cmd = c.viewport.Update(msg)
				return c, cmd
			}
			if c.processing {
				// The prompt is locked while a request is in flight.
				return c, nil
			}
			var cmd tea.Cmd
			c.input, cmd = c.input.Update(msg)
			return c, cmd
		}
		if _, isPaste := msg.(tea.PasteMsg); isPaste && !c.processing {
			var cmd tea.Cmd
			c.input, cmd = c.input.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return c, tea.Batch(cmds...)
}

// View renders the chat panel
func (c *Chat) View() string {
	panelStyle := PanelStyle
	if c.focused {
		panelStyle = PanelFocusedStyle
	}

	chatPanel := panelStyle.Width(c.width).Height(c.height - InputTotalHeight).Render(c.viewport.View())

	inputStyle := ChatInputStyle
	if c.focused {
		inputStyle = ChatInputFocusedStyle
	}
	inputArea := inputStyle.Width(c.width).Render(c.input.View())

	status := AttachmentStyle.Render("📎 " + c.AttachmentLabel())
	if s := c.copy.View(); s != "" {
		status += "  " + s
	}

	return lipgloss.JoinVertical(lipgloss.Left, chatPanel, inputArea, " "+status)
}
