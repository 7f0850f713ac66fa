// Package modals provides the popup dialogs shown over the main layout.
// Each dialog implements ModalState with its own state struct.
package modals

import (
	tea "charm.land/bubbletea/v2"
)

// ModalState is implemented by every dialog.
type ModalState interface {
	modalState() // marker method to restrict implementations
	Title() string
	Help() string
	Render() string
	Update(msg tea.Msg) (ModalState, tea.Cmd)
}
