package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/zhubert/codechat/internal/api"
	"github.com/zhubert/codechat/internal/config"
	"github.com/zhubert/codechat/internal/conversation"
	pErrors "github.com/zhubert/codechat/internal/errors"
	"github.com/zhubert/codechat/internal/logger"
)

// Session tracks the current conversation and the cached conversation list.
type Session struct {
	backend api.Backend
	cfg     *config.Config
	log     *slog.Logger

	mu      sync.RWMutex
	current conversation.ID
}

// New creates a Session with no current conversation.
func New(backend api.Backend, cfg *config.Config) *Session {
	return &Session{
		backend: backend,
		cfg:     cfg,
		log:     logger.WithComponent("session"),
	}
}

// Snapshot is a loaded conversation ready for display.
type Snapshot struct {
	Conversation conversation.Conversation
	Messages     []conversation.Message // with artifacts associated
	Artifacts    []conversation.Artifact
	Unassociated []conversation.Artifact
	Tokens       conversation.TokenUsage
	Contexts     []conversation.ContextFile
}

// RenameResult reports the name the UI should show after a rename attempt.
type RenameResult struct {
	Changed bool
	Name    string
}

// DeleteResult reports what a delete did. Replacement is set when the
// deleted conversation was current and a new one was started in its place.
type DeleteResult struct {
	Deleted     bool
	Replacement *conversation.Conversation
}

// Current returns the current conversation id, if any.
func (s *Session) Current() (conversation.ID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, !s.current.IsZero()
}

// CurrentConversation returns the cached entry for the current conversation.
func (s *Session) CurrentConversation() (conversation.Conversation, bool) {
	id, ok := s.Current()
	if !ok {
		return conversation.Conversation{}, false
	}
	if c := s.cfg.GetConversation(id); c != nil {
		return *c, true
	}
	return conversation.Conversation{ID: id}, true
}

// Conversations returns the cached list, newest first.
func (s *Session) Conversations() []conversation.Conversation {
	return s.cfg.GetConversations()
}

// Reset clears the current conversation.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = ""
}

// Select makes id current without contacting the backend.
func (s *Session) Select(id conversation.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = id
}

// Create starts a new conversation on the backend and makes it current.
func (s *Session) Create(ctx context.Context, name string) (conversation.Conversation, error) {
	resp, err := s.backend.CreateConversation(ctx, name)
	if err != nil {
		s.log.Error("create conversation failed", "error", err)
		return conversation.Conversation{}, pErrors.E(pErrors.Op("session.Create"), err)
	}

	conv := resp.Conversation()
	if conv.Name == "" {
		conv.Name = conversation.DefaultName
	}
	if !conv.CreatedAt.Valid() {
		conv.CreatedAt = conversation.Now()
	}

	s.cfg.PutConversation(conv)
	s.save()

	s.mu.Lock()
	s.current = conv.ID
	s.mu.Unlock()

	s.log.Info("conversation created", "conversationID", conv.ID, "name", conv.Name)
	return conv, nil
}

// Rename changes a conversation's name. An empty name is ignored. On failure
// the cached name is unchanged and returned so the caller can revert.
func (s *Session) Rename(ctx context.Context, id conversation.ID, newName string) (RenameResult, error) {
	prior := ""
	if c := s.cfg.GetConversation(id); c != nil {
		prior = c.Name
	}

	newName = strings.TrimSpace(newName)
	if newName == "" || newName == prior {
		return RenameResult{Changed: false, Name: prior}, nil
	}

	if err := s.backend.RenameConversation(ctx, id, newName); err != nil {
		s.log.Warn("rename failed, keeping previous name", "conversationID", id, "error", err)
		return RenameResult{Changed: false, Name: prior}, pErrors.E(pErrors.Op("session.Rename"), err)
	}

	if !s.cfg.RenameConversation(id, newName) {
		s.cfg.PutConversation(conversation.Conversation{ID: id, Name: newName, CreatedAt: conversation.Now()})
	}
	s.save()
	return RenameResult{Changed: true, Name: newName}, nil
}

// Delete asks confirm for approval, then deletes the conversation. Deleting
// the current conversation starts a replacement.
func (s *Session) Delete(ctx context.Context, id conversation.ID, confirm Confirmer) (DeleteResult, error) {
	const op = pErrors.Op("session.Delete")

	ok, err := confirm.Confirm(ctx, DeleteTitle, DeleteMessage)
	if err != nil {
		return DeleteResult{}, pErrors.E(op, pErrors.KindIO, err)
	}
	if !ok {
		s.log.Debug("delete cancelled", "conversationID", id)
		return DeleteResult{}, nil
	}

	if err := s.backend.DeleteConversation(ctx, id); err != nil {
		s.log.Error("delete failed", "conversationID", id, "error", err)
		return DeleteResult{}, pErrors.E(op, err)
	}

	s.cfg.RemoveConversation(id)
	s.save()

	s.mu.Lock()
	wasCurrent := s.current == id
	if wasCurrent {
		s.current = ""
	}
	s.mu.Unlock()

	result := DeleteResult{Deleted: true}
	if !wasCurrent {
		return result, nil
	}

	replacement, err := s.Create(ctx, "")
	if err != nil {
		return result, err
	}
	result.Replacement = &replacement
	return result, nil
}

// Load fetches a conversation and makes it current. On failure the current
// conversation is left unchanged.
func (s *Session) Load(ctx context.Context, id conversation.ID) (Snapshot, error) {
	resp, err := s.backend.LoadConversation(ctx, id)
	if err != nil {
		logger.WithConversation(string(id)).Error("load failed", "error", err)
		return Snapshot{}, pErrors.LoadError(string(id), err)
	}

	conv := conversation.Conversation{ID: id}
	if c := s.cfg.GetConversation(id); c != nil {
		conv = *c
	}

	snap := Snapshot{
		Conversation: conv,
		Messages:     conversation.Associate(resp.Messages, resp.Artifacts),
		Artifacts:    resp.Artifacts,
		Unassociated: conversation.Unassociated(resp.Messages, resp.Artifacts),
		Tokens:       conversation.ComputedTokenUsage(resp.Tokens.InputTokens, resp.Tokens.OutputTokens),
		Contexts:     resp.Contexts,
	}

	s.mu.Lock()
	s.current = id
	s.mu.Unlock()

	return snap, nil
}

func (s *Session) save() {
	if err := s.cfg.Save(); err != nil {
		s.log.Warn("failed to persist conversation list", "error", err)
	}
}
