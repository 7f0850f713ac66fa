// Package pipeline turns a prompt into a reply: it makes sure a conversation
// exists, sends the prompt, and shapes the result into chat messages.
package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/zhubert/codechat/internal/api"
	"github.com/zhubert/codechat/internal/conversation"
	pErrors "github.com/zhubert/codechat/internal/errors"
	"github.com/zhubert/codechat/internal/logger"
	"github.com/zhubert/codechat/internal/session"
)

// State is the pipeline's position in a submission.
type State int

const (
	Idle State = iota
	Submitting
	Success
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Attachment is a file sent with a prompt.
type Attachment = api.Attachment

// Submission is one user request.
type Submission struct {
	Prompt string
	File   *Attachment
}

// Outcome describes what the UI should do after a submission.
type Outcome struct {
	// Messages to append to the chat: user and assistant on success, a single
	// error-role message on failure.
	Messages []conversation.Message
	// AutoOpen is the artifact to show in the viewer, if any.
	AutoOpen *conversation.Artifact
	// Tokens replaces the running token count. Only set on success.
	Tokens *conversation.TokenUsage
	// ClearInput is true when the prompt was accepted.
	ClearInput bool
	// Created is set when the submission had to start a conversation.
	Created *conversation.Conversation
	// Metadata from the backend reply.
	Metadata api.ProcessMetadata
}

// Pipeline runs submissions one at a time.
type Pipeline struct {
	backend api.Backend
	session *session.Session
	log     *slog.Logger

	mu        sync.Mutex
	state     State
	observers []func(State)
}

// New creates an idle pipeline.
func New(backend api.Backend, sess *session.Session) *Pipeline {
	return &Pipeline{
		backend: backend,
		session: sess,
		log:     logger.WithComponent("pipeline"),
	}
}

// State returns the current state.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// OnStateChange registers fn to be called after every transition. Observers
// run on the submitting goroutine and must not block.
func (p *Pipeline) OnStateChange(fn func(State)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, fn)
}

func (p *Pipeline) transition(to State) {
	p.mu.Lock()
	p.state = to
	observers := p.observersLocked()
	p.mu.Unlock()
	notify(observers, to)
}

// begin moves Idle to Submitting atomically, or reports that a submission
// is already running.
func (p *Pipeline) begin() bool {
	p.mu.Lock()
	if p.state != Idle {
		p.mu.Unlock()
		return false
	}
	p.state = Submitting
	observers := p.observersLocked()
	p.mu.Unlock()
	notify(observers, Submitting)
	return true
}

func (p *Pipeline) observersLocked() []func(State) {
	out := make([]func(State), len(p.observers))
	copy(out, p.observers)
	return out
}

func notify(observers []func(State), s State) {
	for _, fn := range observers {
		fn(s)
	}
}

// Submit sends sub to the backend. An empty prompt or a submission while
// another is running is rejected without any request. Any other failure is
// returned both as an error and as an error-role message in the Outcome.
func (p *Pipeline) Submit(ctx context.Context, sub Submission) (Outcome, error) {
	const op = pErrors.Op("pipeline.Submit")

	if strings.TrimSpace(sub.Prompt) == "" {
		return Outcome{}, pErrors.ValidationError(op, "prompt is empty")
	}

	if !p.begin() {
		return Outcome{}, pErrors.Busy(op)
	}
	defer p.transition(Idle)

	outcome, err := p.run(ctx, sub)
	if err != nil {
		p.transition(Failed)
		p.log.Error("submission failed", "error", err)
		return Outcome{
			Messages: []conversation.Message{{
				ID:        uuid.NewString(),
				Role:      conversation.RoleError,
				Content:   pErrors.Message(err),
				Timestamp: conversation.Now(),
			}},
			Created: outcome.Created,
		}, pErrors.E(op, err)
	}

	p.transition(Success)
	return outcome, nil
}

func (p *Pipeline) run(ctx context.Context, sub Submission) (Outcome, error) {
	var out Outcome

	id, ok := p.session.Current()
	if !ok {
		conv, err := p.session.Create(ctx, conversation.SynthesizeName(sub.Prompt))
		if err != nil {
			return out, err
		}
		out.Created = &conv
		id = conv.ID
	}

	userMsg := conversation.Message{
		ID:        uuid.NewString(),
		Role:      conversation.RoleUser,
		Content:   sub.Prompt,
		Timestamp: conversation.Now(),
	}

	log := logger.WithConversation(string(id))
	log.Debug("submitting prompt", "hasFile", sub.File != nil)

	resp, err := p.backend.Process(ctx, api.ProcessRequest{
		ConversationID: id,
		Prompt:         sub.Prompt,
		File:           sub.File,
	})
	if err != nil {
		return out, err
	}

	ts := resp.Timestamp
	if !ts.Valid() {
		ts = conversation.Now()
	}
	assistant := conversation.Message{
		ID:        uuid.NewString(),
		Role:      conversation.RoleAssistant,
		Content:   resp.Response,
		Timestamp: ts,
	}
	for _, a := range resp.Artifacts {
		a.MessageID = assistant.ID
		assistant.Artifacts = append(assistant.Artifacts, a)
	}

	out.Messages = []conversation.Message{userMsg, assistant}
	if n := len(assistant.Artifacts); n > 0 {
		last := assistant.Artifacts[n-1]
		out.AutoOpen = &last
	}
	tokens := resp.TotalTokens
	out.Tokens = &tokens
	out.ClearInput = true
	out.Metadata = resp.Metadata

	log.Info("reply received", "artifacts", len(assistant.Artifacts), "totalTokens", tokens.TotalTokens)
	return out, nil
}
