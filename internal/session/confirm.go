package session

import "context"

const (
	DeleteTitle   = "Delete Conversation"
	DeleteMessage = "Are you sure you want to delete this conversation? This action cannot be undone."
)

// Confirmer asks the user to accept or cancel a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, title, message string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, title, message string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, title, message string) (bool, error) {
	return f(ctx, title, message)
}

// Answer is a Confirmer whose decision was already collected, such as from a
// dialog that has closed or a --yes flag.
type Answer bool

func (a Answer) Confirm(context.Context, string, string) (bool, error) {
	return bool(a), nil
}
