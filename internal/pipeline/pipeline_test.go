package pipeline

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhubert/codechat/internal/api"
	"github.com/zhubert/codechat/internal/api/apitest"
	"github.com/zhubert/codechat/internal/config"
	"github.com/zhubert/codechat/internal/conversation"
	pErrors "github.com/zhubert/codechat/internal/errors"
	"github.com/zhubert/codechat/internal/session"
)

func newTestPipeline(t *testing.T) (*Pipeline, *apitest.Fake, *session.Session) {
	t.Helper()
	fake := apitest.New()
	sess := session.New(fake, config.NewInMemory())
	return New(fake, sess), fake, sess
}

func TestSubmit_EmptyPromptSendsNothing(t *testing.T) {
	p, fake, _ := newTestPipeline(t)

	var states []State
	p.OnStateChange(func(s State) { states = append(states, s) })

	for _, prompt := range []string{"", "   ", "\n\t"} {
		_, err := p.Submit(context.Background(), Submission{Prompt: prompt})
		require.Error(t, err)
		assert.True(t, pErrors.Is(err, pErrors.KindValidation))
	}
	assert.Empty(t, fake.Calls(), "no request for an empty prompt")
	assert.Empty(t, states, "no state transition for an empty prompt")
	assert.Equal(t, Idle, p.State())
}

func TestSubmit_FirstPromptCreatesConversation(t *testing.T) {
	p, fake, sess := newTestPipeline(t)

	out, err := p.Submit(context.Background(), Submission{Prompt: "Write a fibonacci function in Python. Thanks!"})
	require.NoError(t, err)

	calls := fake.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "CreateConversation", calls[0].Method)
	assert.Equal(t, "Write a fibonacci function in Python", calls[0].Name)
	assert.Equal(t, "Process", calls[1].Method)

	require.NotNil(t, out.Created)
	assert.Equal(t, out.Created.ID, calls[1].ID, "process uses the new conversation")
	id, ok := sess.Current()
	require.True(t, ok)
	assert.Equal(t, out.Created.ID, id)
}

func TestSubmit_UsesCurrentConversation(t *testing.T) {
	p, fake, sess := newTestPipeline(t)
	sess.Select("42")

	out, err := p.Submit(context.Background(), Submission{Prompt: "hello"})
	require.NoError(t, err)

	assert.Nil(t, out.Created)
	assert.Equal(t, []string{"Process"}, fake.Methods())
	assert.Equal(t, conversation.ID("42"), fake.Calls()[0].ID)
}

func TestSubmit_Success(t *testing.T) {
	p, fake, sess := newTestPipeline(t)
	sess.Select("1")
	fake.ProcessFunc = func(req api.ProcessRequest) api.ProcessResponse {
		return api.ProcessResponse{
			ConversationID: req.ConversationID,
			Response:       "Here are two snippets",
			Timestamp:      conversation.ParseTimestamp("2024-03-01 12:00:00"),
			Artifacts: []conversation.Artifact{
				{ID: "10", Content: "first", Language: "python"},
				{ID: "11", Content: "second", Language: "bash"},
			},
			TotalTokens: conversation.TokenUsage{InputTokens: 30, OutputTokens: 20, TotalTokens: 50},
		}
	}

	out, err := p.Submit(context.Background(), Submission{
		Prompt: "show me",
		File:   &Attachment{Name: "a.py", Content: []byte("x")},
	})
	require.NoError(t, err)

	require.Len(t, out.Messages, 2)
	user, assistant := out.Messages[0], out.Messages[1]
	assert.Equal(t, conversation.RoleUser, user.Role)
	assert.Equal(t, "show me", user.Content)
	assert.Equal(t, conversation.RoleAssistant, assistant.Role)
	assert.Equal(t, "2024-03-01 12:00:00", assistant.Timestamp.Raw)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, user.ID, assistant.ID)

	require.Len(t, assistant.Artifacts, 2)
	for _, a := range assistant.Artifacts {
		assert.Equal(t, assistant.ID, a.MessageID)
	}
	require.NotNil(t, out.AutoOpen)
	assert.Equal(t, conversation.ID("11"), out.AutoOpen.ID, "the last artifact auto-opens")

	require.NotNil(t, out.Tokens)
	assert.Equal(t, 50, out.Tokens.TotalTokens)
	assert.True(t, out.ClearInput)

	sent := fake.Calls()[0].Req
	require.NotNil(t, sent.File)
	assert.Equal(t, "a.py", sent.File.Name)
}

func TestSubmit_ProcessFailure(t *testing.T) {
	p, fake, sess := newTestPipeline(t)
	sess.Select("1")
	fake.ProcessErr = pErrors.ServerError("api.Process", 503, "Claude API Error: overloaded")

	var states []State
	p.OnStateChange(func(s State) { states = append(states, s) })

	out, err := p.Submit(context.Background(), Submission{Prompt: "hi"})
	require.Error(t, err)
	assert.True(t, pErrors.Is(err, pErrors.KindServer))

	require.Len(t, out.Messages, 1)
	assert.Equal(t, conversation.RoleError, out.Messages[0].Role)
	assert.Equal(t, "Claude API Error: overloaded", out.Messages[0].Content)
	assert.False(t, out.ClearInput)
	assert.Nil(t, out.Tokens)

	assert.Equal(t, []State{Submitting, Failed, Idle}, states)
	assert.Equal(t, Idle, p.State())
}

func TestSubmit_CreateFailureSkipsProcess(t *testing.T) {
	p, fake, _ := newTestPipeline(t)
	fake.CreateErr = pErrors.ServerError("api.CreateConversation", 500, "db locked")

	out, err := p.Submit(context.Background(), Submission{Prompt: "hi"})
	require.Error(t, err)
	assert.Equal(t, []string{"CreateConversation"}, fake.Methods())
	require.Len(t, out.Messages, 1)
	assert.Equal(t, conversation.RoleError, out.Messages[0].Role)
	assert.Equal(t, Idle, p.State())
}

func TestSubmit_SuccessTransitions(t *testing.T) {
	p, _, sess := newTestPipeline(t)
	sess.Select("1")

	var states []State
	p.OnStateChange(func(s State) { states = append(states, s) })

	_, err := p.Submit(context.Background(), Submission{Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, []State{Submitting, Success, Idle}, states)
}

func TestSubmit_ConcurrentIsBusy(t *testing.T) {
	p, fake, sess := newTestPipeline(t)
	sess.Select("1")
	fake.Block = make(chan struct{})

	submitting := make(chan struct{})
	var once sync.Once
	p.OnStateChange(func(s State) {
		if s == Submitting {
			once.Do(func() { close(submitting) })
		}
	})

	done := make(chan error, 1)
	go func() {
		_, err := p.Submit(context.Background(), Submission{Prompt: "first"})
		done <- err
	}()

	select {
	case <-submitting:
	case <-time.After(2 * time.Second):
		t.Fatal("first submission never started")
	}

	_, err := p.Submit(context.Background(), Submission{Prompt: "second"})
	require.Error(t, err)
	assert.True(t, pErrors.Is(err, pErrors.KindBusy))

	close(fake.Block)
	require.NoError(t, <-done)
	assert.Equal(t, []string{"Process"}, fake.Methods(), "the second submission sent nothing")
	assert.Equal(t, Idle, p.State())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "submitting", Submitting.String())
	assert.Equal(t, "success", Success.String())
	assert.Equal(t, "failed", Failed.String())
}
