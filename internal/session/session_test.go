package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhubert/codechat/internal/api"
	"github.com/zhubert/codechat/internal/api/apitest"
	"github.com/zhubert/codechat/internal/config"
	"github.com/zhubert/codechat/internal/conversation"
	pErrors "github.com/zhubert/codechat/internal/errors"
)

func newTestSession(t *testing.T) (*Session, *apitest.Fake, *config.Config) {
	t.Helper()
	fake := apitest.New()
	cfg := config.NewInMemory()
	return New(fake, cfg), fake, cfg
}

func TestCreate_MakesCurrentAndPrepends(t *testing.T) {
	s, _, _ := newTestSession(t)
	ctx := context.Background()

	_, ok := s.Current()
	assert.False(t, ok, "no conversation is current initially")

	first, err := s.Create(ctx, "first")
	require.NoError(t, err)
	second, err := s.Create(ctx, "")
	require.NoError(t, err)

	id, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, second.ID, id)
	assert.Equal(t, conversation.DefaultName, second.Name)

	list := s.Conversations()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestCreate_Failure(t *testing.T) {
	s, fake, _ := newTestSession(t)
	fake.CreateErr = pErrors.ServerError("api.CreateConversation", 500, "boom")

	_, err := s.Create(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, pErrors.Is(err, pErrors.KindServer))
	assert.Empty(t, s.Conversations())
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestRename(t *testing.T) {
	s, fake, _ := newTestSession(t)
	ctx := context.Background()
	conv, err := s.Create(ctx, "old name")
	require.NoError(t, err)

	t.Run("empty is a no-op", func(t *testing.T) {
		res, err := s.Rename(ctx, conv.ID, "   ")
		require.NoError(t, err)
		assert.False(t, res.Changed)
		assert.Equal(t, "old name", res.Name)
		assert.NotContains(t, fake.Methods(), "RenameConversation")
	})

	t.Run("success", func(t *testing.T) {
		res, err := s.Rename(ctx, conv.ID, "  new name ")
		require.NoError(t, err)
		assert.True(t, res.Changed)
		assert.Equal(t, "new name", res.Name)
		assert.Equal(t, "new name", s.Conversations()[0].Name)
	})

	t.Run("failure reverts", func(t *testing.T) {
		fake.RenameErr = pErrors.ServerError("api.RenameConversation", 404, "Conversation not found")
		defer func() { fake.RenameErr = nil }()

		res, err := s.Rename(ctx, conv.ID, "doomed")
		require.Error(t, err)
		assert.False(t, res.Changed)
		assert.Equal(t, "new name", res.Name, "result carries the prior name")
		assert.Equal(t, "new name", s.Conversations()[0].Name, "cache is unchanged")
		assert.Equal(t, "Conversation not found", pErrors.Message(err))
	})
}

func TestDelete_Cancelled(t *testing.T) {
	s, fake, _ := newTestSession(t)
	ctx := context.Background()
	conv, err := s.Create(ctx, "keep me")
	require.NoError(t, err)

	var gotTitle, gotMessage string
	confirm := ConfirmFunc(func(_ context.Context, title, message string) (bool, error) {
		gotTitle, gotMessage = title, message
		return false, nil
	})

	res, err := s.Delete(ctx, conv.ID, confirm)
	require.NoError(t, err)
	assert.False(t, res.Deleted)
	assert.Equal(t, DeleteTitle, gotTitle)
	assert.Equal(t, DeleteMessage, gotMessage)
	assert.NotContains(t, fake.Methods(), "DeleteConversation", "cancel sends no request")
	assert.Len(t, s.Conversations(), 1)
}

func TestDelete_NotCurrent(t *testing.T) {
	s, fake, _ := newTestSession(t)
	ctx := context.Background()
	old, err := s.Create(ctx, "old")
	require.NoError(t, err)
	current, err := s.Create(ctx, "current")
	require.NoError(t, err)

	res, err := s.Delete(ctx, old.ID, Answer(true))
	require.NoError(t, err)
	assert.True(t, res.Deleted)
	assert.Nil(t, res.Replacement)

	id, _ := s.Current()
	assert.Equal(t, current.ID, id)
	assert.Equal(t, []string{"CreateConversation", "CreateConversation", "DeleteConversation"}, fake.Methods())
	require.Len(t, s.Conversations(), 1)
}

func TestDelete_CurrentStartsReplacement(t *testing.T) {
	s, fake, _ := newTestSession(t)
	ctx := context.Background()
	conv, err := s.Create(ctx, "current")
	require.NoError(t, err)

	res, err := s.Delete(ctx, conv.ID, Answer(true))
	require.NoError(t, err)
	assert.True(t, res.Deleted)
	require.NotNil(t, res.Replacement)

	id, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, res.Replacement.ID, id)
	assert.NotEqual(t, conv.ID, id)
	assert.Equal(t, "DeleteConversation", fake.Methods()[1])
	assert.Equal(t, "CreateConversation", fake.Methods()[2])
}

func TestDelete_BackendFailure(t *testing.T) {
	s, fake, _ := newTestSession(t)
	ctx := context.Background()
	conv, err := s.Create(ctx, "x")
	require.NoError(t, err)
	fake.DeleteErr = pErrors.NetworkError("api.DeleteConversation", "/delete-conversation", errors.New("refused"))

	res, err := s.Delete(ctx, conv.ID, Answer(true))
	require.Error(t, err)
	assert.True(t, pErrors.Is(err, pErrors.KindNetwork))
	assert.False(t, res.Deleted)
	assert.Len(t, s.Conversations(), 1)
}

func TestDelete_ConfirmerError(t *testing.T) {
	s, fake, _ := newTestSession(t)
	confirm := ConfirmFunc(func(context.Context, string, string) (bool, error) {
		return false, errors.New("stdin closed")
	})

	_, err := s.Delete(context.Background(), "1", confirm)
	require.Error(t, err)
	assert.Empty(t, fake.Methods())
}

func TestLoad(t *testing.T) {
	s, fake, cfg := newTestSession(t)
	cfg.PutConversation(conversation.Conversation{ID: "4", Name: "Cached"})

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)
	fake.Loads["4"] = api.LoadResponse{
		Messages: []conversation.Message{
			{Role: conversation.RoleUser, Content: "q", Timestamp: conversation.NewTimestamp(base)},
			{Role: conversation.RoleAssistant, Content: "a", Timestamp: conversation.NewTimestamp(base.Add(10 * time.Second))},
		},
		Artifacts: []conversation.Artifact{
			{ID: "1", Content: "x", Timestamp: conversation.NewTimestamp(base.Add(10*time.Second + 500*time.Millisecond))},
			{ID: "2", Content: "y", Timestamp: conversation.NewTimestamp(base.Add(time.Hour))},
		},
		Tokens: conversation.TokenUsage{InputTokens: 10, OutputTokens: 5, TotalTokens: 999},
	}

	snap, err := s.Load(context.Background(), "4")
	require.NoError(t, err)

	assert.Equal(t, "Cached", snap.Conversation.Name)
	assert.Empty(t, snap.Messages[0].Artifacts)
	require.Len(t, snap.Messages[1].Artifacts, 1)
	assert.Equal(t, conversation.ID("1"), snap.Messages[1].Artifacts[0].ID)
	require.Len(t, snap.Unassociated, 1)
	assert.Equal(t, 15, snap.Tokens.TotalTokens, "total is computed client-side")

	id, _ := s.Current()
	assert.Equal(t, conversation.ID("4"), id)
}

func TestLoad_FailureKeepsCurrent(t *testing.T) {
	s, fake, _ := newTestSession(t)
	ctx := context.Background()
	conv, err := s.Create(ctx, "current")
	require.NoError(t, err)
	fake.LoadErr = pErrors.ServerError("api.LoadConversation", 500, "db down")

	_, err = s.Load(ctx, "99")
	require.Error(t, err)
	assert.True(t, pErrors.Is(err, pErrors.KindLoad))
	assert.Equal(t, "Failed to load conversation 99", pErrors.Message(err))

	id, _ := s.Current()
	assert.Equal(t, conv.ID, id)
}

func TestReset(t *testing.T) {
	s, _, _ := newTestSession(t)
	_, err := s.Create(context.Background(), "x")
	require.NoError(t, err)

	s.Reset()
	_, ok := s.Current()
	assert.False(t, ok)
	assert.Len(t, s.Conversations(), 1, "reset keeps the list")
}
