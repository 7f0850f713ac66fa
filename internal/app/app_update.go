package app

import (
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/codechat/internal/keys"
	"github.com/zhubert/codechat/internal/pipeline"
	"github.com/zhubert/codechat/internal/ui"
	"github.com/zhubert/codechat/internal/ui/modals"
)

// Update handles messages. This is the core Bubble Tea update function that routes
// all messages to appropriate handlers.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.PasteMsg:
		if result, cmd := m.handlePaste(msg); result != nil {
			return result, cmd
		}

	case tea.KeyPressMsg:
		if result, cmd := m.handleKeyPress(msg); result != nil {
			return result, cmd
		}
		// Key not handled by handleKeyPress, let it fall through to focused panel

	// Requests emitted by ui components
	case ui.LoadConversationMsg:
		return m.startLoad(msg)
	case ui.RenameRequestMsg:
		return m.showRename(msg)
	case ui.DeleteRequestMsg:
		return m.showDeleteConfirm(msg)
	case ui.PreviewArtifactMsg:
		return m, m.openArtifact(msg.Index)
	case ui.CopyRequestMsg:
		return m, ui.CopyCmd(m.clipboard, msg.Text)
	case ui.CloseViewerMsg:
		m.closeViewer()
		return m, nil
	case ui.NavigateViewerMsg:
		return m, m.navigateViewer(msg.Delta)

	// Results of async work
	case conversationCreatedMsg:
		return m.handleConversationCreated(msg)
	case conversationLoadedMsg:
		return m.handleConversationLoaded(msg)
	case renameResultMsg:
		return m.handleRenameResult(msg)
	case deleteResultMsg:
		return m.handleDeleteResult(msg)
	case submitResultMsg:
		return m.handleSubmitResult(msg)
	case ui.CopyResultMsg:
		return m.handleCopyResult(msg)

	case ui.CopyIndicatorExpiredMsg:
		if m.copyInViewer && m.viewer != nil {
			m.viewer, _ = m.viewer.Update(msg)
		} else {
			m.chat, _ = m.chat.Update(msg)
		}
		return m, nil

	case ui.FlashTickMsg:
		if m.footer.ClearIfExpired() {
			return m, nil
		}
		if m.footer.HasFlash() {
			return m, ui.FlashTick()
		}
		return m, nil

	case ui.SpinnerTickMsg:
		chat, cmd := m.chat.Update(msg)
		m.chat = chat
		return m, cmd
	}

	// Update modal
	if m.modal.IsVisible() {
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		// y/n complete the confirm form through its own follow-up messages.
		if s, ok := m.modal.State.(*modals.ConfirmState); ok && s.Answered() {
			return m, m.finishDelete(m.pendingDelete, s.Confirmed())
		}
		return m, cmd
	}

	if m.viewer != nil {
		viewer, cmd := m.viewer.Update(msg)
		m.viewer = viewer
		return m, cmd
	}

	// Update focused panel for other messages
	if m.focus == FocusSidebar {
		sidebar, cmd := m.sidebar.Update(msg)
		m.sidebar = sidebar
		cmds = append(cmds, cmd)
	} else {
		chat, cmd := m.chat.Update(msg)
		m.chat = chat
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles all keyboard input.
// Returns (model, cmd) if the key was handled, or (nil, nil) if it should fall through
// to the focused panel for handling.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	m.log.Debug("key pressed", "key", key, "focus", m.focus.String(), "modalVisible", m.modal.IsVisible())

	// Handle ctrl+c specially - always quits
	if key == keys.CtrlC {
		return m, tea.Quit
	}

	// Handle modal first if visible
	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	// Try executing from shortcut registry
	if result, cmd, handled := m.ExecuteShortcut(key); handled {
		return result, cmd
	}

	// The viewer owns the keyboard while open.
	if m.viewer != nil {
		return nil, nil
	}

	if m.focus == FocusChat {
		switch key {
		case keys.Enter:
			return m, m.submit()
		case keys.ShiftEnter, keys.AltEnter:
			if !m.IsProcessing() {
				m.chat.InsertNewline()
			}
			return m, nil
		}
	}

	// Key not handled - return nil to signal it should fall through to focused panel
	return nil, nil
}

// handlePaste attaches a file when the pasted text is the path of an existing
// file, which is what terminals send for drag and drop. Other pastes fall
// through to the prompt.
func (m *Model) handlePaste(msg tea.PasteMsg) (tea.Model, tea.Cmd) {
	if m.focus != FocusChat || m.modal.IsVisible() || m.viewer != nil || m.IsProcessing() {
		return nil, nil
	}
	content := strings.TrimSpace(msg.Content)
	if content == "" || strings.ContainsAny(content, "\n\r") {
		return nil, nil
	}
	path := modals.ExpandPath(content)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, nil
	}

	m.log.Debug("paste looks like a dropped file", "path", path)
	if err := m.attachFile(path); err != nil {
		return m, m.ShowFlashError(err.Error())
	}
	return m, m.ShowFlashInfo("Attached " + filepath.Base(path))
}

// attachFile reads path and queues it for the next prompt.
func (m *Model) attachFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		m.log.Warn("failed to read attachment", "path", path, "error", err)
		return err
	}
	m.setAttachment(&pipeline.Attachment{Name: filepath.Base(path), Content: data})
	return nil
}
