// Package apitest provides an in-memory api.Backend for tests.
package apitest

import (
	"context"
	"strconv"
	"sync"

	"github.com/zhubert/codechat/internal/api"
	"github.com/zhubert/codechat/internal/conversation"
)

// Call records one backend invocation.
type Call struct {
	Method string
	ID     conversation.ID
	Name   string
	Req    api.ProcessRequest
}

// Fake is a scriptable api.Backend. Set the *Err fields to make the next
// calls fail; set the response fields to control what succeeds.
type Fake struct {
	mu sync.Mutex

	CreateErr  error
	RenameErr  error
	DeleteErr  error
	LoadErr    error
	ProcessErr error

	// Loads maps ids to the response LoadConversation returns.
	Loads map[conversation.ID]api.LoadResponse
	// ProcessFunc, when set, builds the Process response.
	ProcessFunc func(req api.ProcessRequest) api.ProcessResponse
	// Block, when set, makes Process wait until it is closed or ctx ends.
	Block chan struct{}

	nextID int
	calls  []Call
}

var _ api.Backend = (*Fake)(nil)

// New returns a Fake whose first created conversation is id 1.
func New() *Fake {
	return &Fake{Loads: make(map[conversation.ID]api.LoadResponse)}
}

func (f *Fake) record(c Call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

// Calls returns the recorded invocations in order.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// Methods returns just the method names of the recorded calls.
func (f *Fake) Methods() []string {
	calls := f.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Method
	}
	return out
}

func (f *Fake) CreateConversation(ctx context.Context, name string) (api.CreateResponse, error) {
	f.record(Call{Method: "CreateConversation", Name: name})
	if f.CreateErr != nil {
		return api.CreateResponse{}, f.CreateErr
	}
	f.mu.Lock()
	f.nextID++
	id := conversation.ID(strconv.Itoa(f.nextID))
	f.mu.Unlock()
	if name == "" {
		name = conversation.DefaultName
	}
	return api.CreateResponse{
		ConversationID: id,
		Name:           name,
		Timestamp:      conversation.Now(),
	}, nil
}

func (f *Fake) RenameConversation(ctx context.Context, id conversation.ID, name string) error {
	f.record(Call{Method: "RenameConversation", ID: id, Name: name})
	return f.RenameErr
}

func (f *Fake) DeleteConversation(ctx context.Context, id conversation.ID) error {
	f.record(Call{Method: "DeleteConversation", ID: id})
	return f.DeleteErr
}

func (f *Fake) LoadConversation(ctx context.Context, id conversation.ID) (api.LoadResponse, error) {
	f.record(Call{Method: "LoadConversation", ID: id})
	if f.LoadErr != nil {
		return api.LoadResponse{}, f.LoadErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Loads[id], nil
}

func (f *Fake) Process(ctx context.Context, req api.ProcessRequest) (api.ProcessResponse, error) {
	f.record(Call{Method: "Process", ID: req.ConversationID, Req: req})
	if f.Block != nil {
		select {
		case <-f.Block:
		case <-ctx.Done():
			return api.ProcessResponse{}, ctx.Err()
		}
	}
	if f.ProcessErr != nil {
		return api.ProcessResponse{}, f.ProcessErr
	}
	if f.ProcessFunc != nil {
		return f.ProcessFunc(req), nil
	}
	return api.ProcessResponse{
		ConversationID: req.ConversationID,
		Response:       "ok",
		Timestamp:      conversation.Now(),
	}, nil
}
