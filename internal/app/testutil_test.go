package app

import (
	"os"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/codechat/internal/api"
	"github.com/zhubert/codechat/internal/api/apitest"
	"github.com/zhubert/codechat/internal/clipboard"
	"github.com/zhubert/codechat/internal/config"
	"github.com/zhubert/codechat/internal/conversation"
	"github.com/zhubert/codechat/internal/keys"
	"github.com/zhubert/codechat/internal/logger"
	"github.com/zhubert/codechat/internal/notification"
	"github.com/zhubert/codechat/internal/ui"
)

func TestMain(m *testing.M) {
	logger.Reset()
	_ = logger.Init(os.DevNull)
	notification.SetNotifier(func(string, string, any) error { return nil })

	code := m.Run()

	notification.ResetNotifier()
	logger.Reset()
	os.Exit(code)
}

// testEnv bundles a model with the fakes behind it.
type testEnv struct {
	m         *Model
	backend   *apitest.Fake
	cfg       *config.Config
	clipboard *clipboard.Memory
}

// testConversations is a cached list, newest first.
func testConversations() []conversation.Conversation {
	return []conversation.Conversation{
		{ID: "12", Name: "Refactor parser", CreatedAt: conversation.ParseTimestamp("2024-05-02 10:00:00")},
		{ID: "11", Name: "Explain channels", CreatedAt: conversation.ParseTimestamp("2024-05-01 09:00:00")},
	}
}

// newTestEnv creates a model over an in-memory config seeded with convs.
func newTestEnv(t *testing.T, convs ...conversation.Conversation) *testEnv {
	t.Helper()
	cfg := config.NewInMemory()
	for i := len(convs) - 1; i >= 0; i-- {
		cfg.PutConversation(convs[i])
	}
	return newTestEnvWithConfig(t, cfg)
}

func newTestEnvWithConfig(t *testing.T, cfg *config.Config) *testEnv {
	t.Helper()
	t.Cleanup(func() { ui.SetTheme(ui.DefaultTheme) })

	backend := apitest.New()
	mem := &clipboard.Memory{}
	m := New(Deps{Config: cfg, Backend: backend, Clipboard: mem, Version: "0.0.0-test"})
	t.Cleanup(m.Close)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	return &testEnv{m: m, backend: backend, cfg: cfg, clipboard: mem}
}

// keyPress creates a tea.KeyPressMsg for the given key string.
// Examples: "a", "enter", "tab", "esc", "ctrl+n", "up", "down"
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.ShiftEnter:
		return tea.KeyPressMsg{Code: tea.KeyEnter, Mod: tea.ModShift}
	case keys.Tab:
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case keys.Escape:
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case keys.Backspace:
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case keys.Up:
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case keys.Down:
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case keys.Left:
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case keys.Right:
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case keys.AltUp:
		return tea.KeyPressMsg{Code: tea.KeyUp, Mod: tea.ModAlt}
	case keys.AltDown:
		return tea.KeyPressMsg{Code: tea.KeyDown, Mod: tea.ModAlt}
	}
	if strings.HasPrefix(key, "ctrl+") && len(key) == len("ctrl+")+1 {
		return tea.KeyPressMsg{Code: rune(key[len(key)-1]), Mod: tea.ModCtrl}
	}
	if len(key) == 1 {
		return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
	}
	return tea.KeyPressMsg{Text: key}
}

// cmdTimeout bounds how long drive waits for a command. Timer commands
// (flash, spinner, copy indicator) take longer and are dropped.
const cmdTimeout = 50 * time.Millisecond

// execCmd runs cmd and returns the messages it produced, expanding batches.
func execCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(cmdTimeout):
		return nil
	}

	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, execCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// drive feeds msg to the model and keeps feeding back whatever its commands
// produce until the model settles. It returns every message seen.
func (e *testEnv) drive(msg tea.Msg) []tea.Msg {
	var seen []tea.Msg
	queue := []tea.Msg{msg}
	for len(queue) > 0 && len(seen) < 100 {
		next := queue[0]
		queue = queue[1:]
		seen = append(seen, next)
		if _, ok := next.(tea.QuitMsg); ok {
			continue
		}
		_, cmd := e.m.Update(next)
		queue = append(queue, execCmd(cmd)...)
	}
	return seen
}

// press drives a key through the model.
func (e *testEnv) press(key string) []tea.Msg {
	return e.drive(keyPress(key))
}

// typeText types text into whatever has focus.
func (e *testEnv) typeText(text string) {
	for _, ch := range text {
		e.m.Update(keyPress(string(ch)))
	}
}

// hasMsg reports whether msgs contains a message of type T.
func hasMsg[T any](msgs []tea.Msg) bool {
	for _, msg := range msgs {
		if _, ok := msg.(T); ok {
			return true
		}
	}
	return false
}

// replyWith makes the fake backend answer every prompt with text and arts.
func replyWith(text string, tokens conversation.TokenUsage, arts ...conversation.Artifact) func(api.ProcessRequest) api.ProcessResponse {
	return func(req api.ProcessRequest) api.ProcessResponse {
		return api.ProcessResponse{
			ConversationID: req.ConversationID,
			Response:       text,
			Timestamp:      conversation.Now(),
			Artifacts:      arts,
			TotalTokens:    tokens,
		}
	}
}
