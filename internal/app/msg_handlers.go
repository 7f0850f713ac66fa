package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/google/uuid"

	"github.com/zhubert/codechat/internal/conversation"
	pErrors "github.com/zhubert/codechat/internal/errors"
	"github.com/zhubert/codechat/internal/pipeline"
	"github.com/zhubert/codechat/internal/session"
	"github.com/zhubert/codechat/internal/ui"
	"github.com/zhubert/codechat/internal/ui/modals"
)

// codePreviewTitle titles the viewer when it shows an artifact
const codePreviewTitle = "Code Preview"

// errorMessage builds an error-role chat entry
func errorMessage(text string) conversation.Message {
	return conversation.Message{
		ID:        uuid.NewString(),
		Role:      conversation.RoleError,
		Content:   text,
		Timestamp: conversation.Now(),
	}
}

// showError surfaces a failed user action in the chat and the footer.
func (m *Model) showError(err error) tea.Cmd {
	text := pErrors.Message(err)
	m.chat.AppendMessages(errorMessage(text))
	return m.ShowFlashError(text)
}

// busyFlash rejects an action that would race the running submission.
func (m *Model) busyFlash() tea.Cmd {
	return m.ShowFlashWarning("Wait for the current request to finish")
}

// startConversation resets the chat for a freshly created conversation.
func (m *Model) startConversation(conv conversation.Conversation) {
	m.closeViewer()
	m.chat.StartEmpty()
	m.chat.ClearInput()
	m.setAttachment(nil)
	m.contexts = nil
	m.setTokens(conversation.TokenUsage{})
	m.refreshSidebar()
	m.sidebar.SelectConversation(conv.ID)
	m.refreshHeader()
}

func (m *Model) handleConversationCreated(msg conversationCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		return m, m.showError(msg.Err)
	}
	m.startConversation(msg.Conversation)
	m.setFocus(FocusChat)
	return m, m.ShowFlashSuccess("Started " + msg.Conversation.Name)
}

func (m *Model) startLoad(msg ui.LoadConversationMsg) (tea.Model, tea.Cmd) {
	if m.IsProcessing() {
		return m, m.busyFlash()
	}
	m.log.Debug("loading conversation", "conversationID", msg.ID)
	return m, loadCmd(m.ctx, m.session, msg.ID)
}

func (m *Model) handleConversationLoaded(msg conversationLoadedMsg) (tea.Model, tea.Cmd) {
	m.closeViewer()
	if msg.Err != nil {
		// The error replaces whatever was shown.
		m.chat.SetConversation(nil, nil)
		m.chat.AppendMessages(errorMessage(pErrors.Message(msg.Err)))
		return m, m.ShowFlashError(pErrors.Message(msg.Err))
	}

	snap := msg.Snapshot
	// History has no auto-open candidate.
	m.chat.SetConversation(snap.Messages, snap.Unassociated)
	m.contexts = snap.Contexts
	m.setTokens(snap.Tokens)
	m.refreshSidebar()
	m.refreshHeader()
	m.setFocus(FocusChat)
	return m, nil
}

func (m *Model) showRename(msg ui.RenameRequestMsg) (tea.Model, tea.Cmd) {
	if m.IsProcessing() {
		return m, m.busyFlash()
	}
	m.modal.Show(modals.NewRenameState(msg.ID, msg.Name))
	return m, nil
}

// applyRename shows name for id right away; a failed request reverts it.
func (m *Model) applyRename(id conversation.ID, name string) {
	convs := m.session.Conversations()
	for i := range convs {
		if convs[i].ID == id {
			convs[i].Name = name
		}
	}
	m.sidebar.SetConversations(convs)
	if cur, ok := m.session.Current(); ok && cur == id {
		m.header.SetConversationName(name)
	}
}

func (m *Model) handleRenameResult(msg renameResultMsg) (tea.Model, tea.Cmd) {
	m.refreshSidebar()
	m.refreshHeader()
	if msg.Err != nil {
		m.log.Warn("rename reverted", "conversationID", msg.ID, "name", msg.Result.Name)
		return m, m.ShowFlashError("Failed to rename conversation: " + pErrors.Message(msg.Err))
	}
	if msg.Result.Changed {
		return m, m.ShowFlashSuccess("Renamed to " + msg.Result.Name)
	}
	return m, nil
}

func (m *Model) showDeleteConfirm(msg ui.DeleteRequestMsg) (tea.Model, tea.Cmd) {
	if m.IsProcessing() {
		return m, m.busyFlash()
	}
	m.pendingDelete = msg.ID
	m.modal.Show(modals.NewConfirmDialog(session.DeleteTitle, session.DeleteMessage))
	return m, nil
}

func (m *Model) handleDeleteResult(msg deleteResultMsg) (tea.Model, tea.Cmd) {
	if !msg.Result.Deleted {
		if msg.Err != nil {
			return m, m.showError(msg.Err)
		}
		return m, nil
	}

	m.refreshSidebar()
	if msg.Result.Replacement != nil {
		m.startConversation(*msg.Result.Replacement)
		return m, m.ShowFlashSuccess("Conversation deleted")
	}
	if msg.Err != nil {
		// Deleted, but the replacement could not be created.
		m.closeViewer()
		m.chat.ClearConversation()
		m.setTokens(conversation.TokenUsage{})
		m.refreshHeader()
		return m, m.ShowFlashError(pErrors.Message(msg.Err))
	}
	return m, m.ShowFlashSuccess("Conversation deleted")
}

// submit sends the prompt in the input with the queued attachment.
func (m *Model) submit() tea.Cmd {
	prompt := m.chat.GetInput()
	if strings.TrimSpace(prompt) == "" {
		return nil
	}
	if m.IsProcessing() {
		return m.busyFlash()
	}

	m.submitting = true
	m.header.SetProcessing(true)
	m.footer.SetMode(ui.FooterProcessing)
	m.log.Info("submitting prompt", "hasFile", m.attachment != nil)

	return tea.Batch(
		m.chat.SetProcessing(true),
		submitCmd(m.ctx, m.pipeline, pipeline.Submission{Prompt: prompt, File: m.attachment}),
	)
}

func (m *Model) handleSubmitResult(msg submitResultMsg) (tea.Model, tea.Cmd) {
	m.submitting = false
	m.chat.SetProcessing(false)
	m.header.SetProcessing(false)

	out := msg.Outcome
	if pErrors.Is(msg.Err, pErrors.KindBusy) || pErrors.Is(msg.Err, pErrors.KindValidation) {
		return m, m.ShowFlashWarning(pErrors.Message(msg.Err))
	}

	if out.Created != nil {
		m.chat.StartEmpty()
		m.setTokens(conversation.TokenUsage{})
		m.refreshSidebar()
		m.sidebar.SelectConversation(out.Created.ID)
	}

	m.chat.AppendMessages(out.Messages...)
	m.refreshHeader()

	if msg.Err != nil {
		return m, m.ShowFlashError(pErrors.Message(msg.Err))
	}

	var cmds []tea.Cmd
	if out.ClearInput {
		m.chat.ClearInput()
		m.setAttachment(nil)
	}
	if out.Tokens != nil {
		m.setTokens(*out.Tokens)
	}
	if out.AutoOpen != nil {
		// AutoOpen is the reply's last artifact, the last inline one shown.
		idx := m.chat.LastInlineArtifact()
		m.chat.SetLatestArtifact(idx)
		cmds = append(cmds, m.openArtifact(idx))
	}
	if m.config.GetNotificationsEnabled() && len(out.Messages) > 1 {
		name := ""
		if conv, ok := m.session.CurrentConversation(); ok {
			name = conv.Name
		}
		cmds = append(cmds, notifyCmd(name, out.Messages[len(out.Messages)-1].Content))
	}
	return m, tea.Batch(cmds...)
}

// viewerItem is one page the viewer can show.
type viewerItem struct {
	content  string
	language string
	title    string
}

// viewerList says which list the viewer pages through.
type viewerList int

const (
	viewerArtifacts viewerList = iota
	viewerContext
)

func artifactItems(arts []conversation.Artifact) []viewerItem {
	items := make([]viewerItem, len(arts))
	for i, a := range arts {
		items[i] = viewerItem{
			content:  a.Content,
			language: conversation.NormalizeLanguage(a.Language),
			title:    codePreviewTitle,
		}
	}
	return items
}

// contextFileLanguage prefers the backend's file type and falls back to the
// file extension.
func contextFileLanguage(f conversation.ContextFile) string {
	if t := strings.TrimSpace(f.FileType); t != "" {
		return strings.ToLower(t)
	}
	return conversation.DetectLanguage(f.Path)
}

// contextItems is the transcript followed by one page per context file.
func (m *Model) contextItems() []viewerItem {
	var items []viewerItem
	if msgs := m.chat.Messages(); len(msgs) > 0 {
		items = append(items, viewerItem{
			content:  conversation.Transcript(msgs),
			language: "markdown",
			title:    ui.ConversationContext,
		})
	}
	for _, f := range m.contexts {
		items = append(items, viewerItem{
			content:  f.Content,
			language: contextFileLanguage(f),
			title:    f.Path,
		})
	}
	return items
}

// openViewer shows items[idx], replacing any open viewer.
func (m *Model) openViewer(list viewerList, items []viewerItem, idx int) {
	it := items[idx]
	m.viewerList = list
	m.viewerItems = items
	m.viewer = ui.NewContextWindow(it.content, it.language, it.title)
	m.viewer.SetPosition(idx, len(items))
	m.sizeViewer()
}

// openArtifact shows the artifact at idx in Chat.Artifacts and selects it.
func (m *Model) openArtifact(idx int) tea.Cmd {
	items := artifactItems(m.chat.Artifacts())
	if idx < 0 || idx >= len(items) {
		return nil
	}
	m.chat.SelectArtifactAt(idx)
	m.openViewer(viewerArtifacts, items, idx)
	return nil
}

// openConversationContext shows the transcript; the context files follow it.
func (m *Model) openConversationContext() tea.Cmd {
	items := m.contextItems()
	if len(items) == 0 {
		return m.ShowFlashInfo("Nothing in this conversation yet")
	}
	m.openViewer(viewerContext, items, 0)
	return nil
}

// navigateViewer moves to the previous or next page, wrapping around.
func (m *Model) navigateViewer(delta int) tea.Cmd {
	if m.viewer == nil || len(m.viewerItems) < 2 {
		return nil
	}
	idx, total := m.viewer.Position()
	next := ((idx+delta)%total + total) % total
	if m.viewerList == viewerArtifacts {
		m.chat.SelectArtifactAt(next)
	}
	m.openViewer(m.viewerList, m.viewerItems, next)
	return nil
}

func (m *Model) closeViewer() {
	m.viewer = nil
	m.viewerItems = nil
}

func (m *Model) sizeViewer() {
	if m.viewer == nil {
		return
	}
	ctx := ui.GetViewContext()
	m.viewer.SetSize(ctx.ChatWidth, ctx.ContentHeight)
}

func (m *Model) handleCopyResult(msg ui.CopyResultMsg) (tea.Model, tea.Cmd) {
	if m.viewer != nil {
		m.copyInViewer = true
		return m, m.viewer.SetCopyResult(msg.Err)
	}
	m.copyInViewer = false
	return m, m.chat.SetCopyResult(msg.Err)
}

// rerender rebuilds views whose styles were baked in, after a theme change.
func (m *Model) rerender() {
	m.updateSizes()
	if m.viewer == nil || len(m.viewerItems) == 0 {
		return
	}
	idx, _ := m.viewer.Position()
	if idx < len(m.viewerItems) {
		m.openViewer(m.viewerList, m.viewerItems, idx)
	}
}
