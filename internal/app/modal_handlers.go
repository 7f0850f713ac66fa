package app

import (
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/codechat/internal/conversation"
	"github.com/zhubert/codechat/internal/keys"
	"github.com/zhubert/codechat/internal/session"
	"github.com/zhubert/codechat/internal/ui/modals"
)

// handleModalKey routes modal key events to the appropriate handler based on modal state type.
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch s := m.modal.State.(type) {
	case *modals.RenameState:
		return m.handleRenameModal(key, msg, s)
	case *modals.ConfirmState:
		return m.handleConfirmDeleteModal(key, msg, s)
	case *modals.AttachFileState:
		return m.handleAttachFileModal(key, msg, s)
	case *modals.HelpState:
		if key == keys.Escape || key == helpShortcut.Key || key == "q" {
			m.modal.Hide()
		}
		return m, nil
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleRenameModal handles key events for the Rename Conversation modal.
func (m *Model) handleRenameModal(key string, msg tea.KeyPressMsg, state *modals.RenameState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		name := state.NewName()
		m.modal.Hide()
		if name == "" || name == state.CurrentName {
			return m, nil
		}
		m.applyRename(state.ID, name)
		return m, renameCmd(m.ctx, m.session, state.ID, name)
	}
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleConfirmDeleteModal handles key events for the delete confirmation.
// The dialog collects the answer; session.Delete receives it as a Confirmer.
func (m *Model) handleConfirmDeleteModal(key string, msg tea.KeyPressMsg, state *modals.ConfirmState) (tea.Model, tea.Cmd) {
	id := m.pendingDelete

	switch key {
	case keys.Escape:
		m.modal.Hide()
		m.pendingDelete = ""
		return m, nil
	case keys.Enter:
		return m, m.finishDelete(id, state.Confirmed())
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	if state.Answered() {
		return m, m.finishDelete(id, state.Confirmed())
	}
	return m, cmd
}

// finishDelete closes the dialog and hands its answer to session.Delete,
// which sends no request when the answer is cancel.
func (m *Model) finishDelete(id conversation.ID, confirmed bool) tea.Cmd {
	m.modal.Hide()
	m.pendingDelete = ""
	if id.IsZero() {
		return nil
	}
	return deleteCmd(m.ctx, m.session, id, session.Answer(confirmed))
}

// handleAttachFileModal handles key events for the Attach File modal.
func (m *Model) handleAttachFileModal(key string, msg tea.KeyPressMsg, state *modals.AttachFileState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		path := state.Path()
		if path == "" {
			m.modal.SetError("Enter a file path")
			return m, nil
		}
		info, err := os.Stat(path)
		if err != nil {
			m.modal.SetError("File not found: " + path)
			return m, nil
		}
		if info.IsDir() {
			m.modal.SetError("That is a directory")
			return m, nil
		}
		if err := m.attachFile(path); err != nil {
			m.modal.SetError("Could not read file: " + err.Error())
			return m, nil
		}
		m.modal.Hide()
		return m, nil
	}
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}
