// Package clipboard copies text to the system clipboard.
package clipboard

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"

	"github.com/zhubert/codechat/internal/logger"
)

// Copier writes text to a clipboard.
type Copier interface {
	Copy(text string) error
}

// System is the Copier backed by the OS clipboard.
type System struct {
	once    sync.Once
	initErr error
}

// NewSystem returns a Copier for the OS clipboard. Initialization is deferred
// to the first Copy so headless environments only fail when copying.
func NewSystem() *System {
	return &System{}
}

func (s *System) init() error {
	s.once.Do(func() {
		if err := clipboard.Init(); err != nil {
			logger.Warn("Clipboard: Failed to initialize: %v", err)
			s.initErr = fmt.Errorf("failed to initialize clipboard: %w", err)
			return
		}
		logger.Debug("Clipboard: Initialized successfully")
	})
	return s.initErr
}

// Copy writes text to the clipboard.
func (s *System) Copy(text string) error {
	if err := s.init(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	logger.Debug("Clipboard: Copied %d bytes", len(text))
	return nil
}

// Memory is an in-process Copier, used in tests and when the OS clipboard is
// unavailable.
type Memory struct {
	mu   sync.Mutex
	text string
	Err  error
}

// Copy stores text, or returns Err if set.
func (m *Memory) Copy(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.text = text
	return nil
}

// Text returns the last copied text.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}
