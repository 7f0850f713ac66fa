package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/codechat/internal/conversation"
	"github.com/zhubert/codechat/internal/notification"
	"github.com/zhubert/codechat/internal/pipeline"
	"github.com/zhubert/codechat/internal/session"
)

// conversationCreatedMsg is sent when ctrl+n finishes
type conversationCreatedMsg struct {
	Conversation conversation.Conversation
	Err          error
}

// conversationLoadedMsg is sent when a sidebar load finishes
type conversationLoadedMsg struct {
	ID       conversation.ID
	Snapshot session.Snapshot
	Err      error
}

// renameResultMsg is sent when a rename request finishes
type renameResultMsg struct {
	ID     conversation.ID
	Result session.RenameResult
	Err    error
}

// deleteResultMsg is sent when a delete request finishes
type deleteResultMsg struct {
	ID     conversation.ID
	Result session.DeleteResult
	Err    error
}

// submitResultMsg is sent when the pipeline returns
type submitResultMsg struct {
	Outcome pipeline.Outcome
	Err     error
}

func createCmd(ctx context.Context, sess *session.Session, name string) tea.Cmd {
	return func() tea.Msg {
		conv, err := sess.Create(ctx, name)
		return conversationCreatedMsg{Conversation: conv, Err: err}
	}
}

func loadCmd(ctx context.Context, sess *session.Session, id conversation.ID) tea.Cmd {
	return func() tea.Msg {
		snap, err := sess.Load(ctx, id)
		return conversationLoadedMsg{ID: id, Snapshot: snap, Err: err}
	}
}

func renameCmd(ctx context.Context, sess *session.Session, id conversation.ID, name string) tea.Cmd {
	return func() tea.Msg {
		res, err := sess.Rename(ctx, id, name)
		return renameResultMsg{ID: id, Result: res, Err: err}
	}
}

// deleteCmd runs the delete with an answer the dialog already collected.
func deleteCmd(ctx context.Context, sess *session.Session, id conversation.ID, confirm session.Confirmer) tea.Cmd {
	return func() tea.Msg {
		res, err := sess.Delete(ctx, id, confirm)
		return deleteResultMsg{ID: id, Result: res, Err: err}
	}
}

func submitCmd(ctx context.Context, p *pipeline.Pipeline, sub pipeline.Submission) tea.Cmd {
	return func() tea.Msg {
		out, err := p.Submit(ctx, sub)
		return submitResultMsg{Outcome: out, Err: err}
	}
}

// notifyCmd sends the desktop notification off the event loop. Failures are
// logged by the notification package.
func notifyCmd(conversationName, reply string) tea.Cmd {
	return func() tea.Msg {
		_ = notification.ReplyReceived(conversationName, reply)
		return nil
	}
}
