package app

import (
	"context"
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/codechat/internal/api"
	"github.com/zhubert/codechat/internal/clipboard"
	"github.com/zhubert/codechat/internal/config"
	"github.com/zhubert/codechat/internal/conversation"
	"github.com/zhubert/codechat/internal/logger"
	"github.com/zhubert/codechat/internal/pipeline"
	"github.com/zhubert/codechat/internal/session"
	"github.com/zhubert/codechat/internal/ui"
)

// Focus represents which panel is focused
type Focus int

const (
	FocusSidebar Focus = iota
	FocusChat
)

func (f Focus) String() string {
	if f == FocusChat {
		return "chat"
	}
	return "sidebar"
}

// Deps are the collaborators the model drives.
type Deps struct {
	Config    *config.Config
	Backend   api.Backend
	Clipboard clipboard.Copier
	Version   string
}

// Model is the main Bubble Tea model
type Model struct {
	config    *config.Config
	version   string
	session   *session.Session
	pipeline  *pipeline.Pipeline
	clipboard clipboard.Copier
	log       *slog.Logger

	header  *ui.Header
	footer  *ui.Footer
	sidebar *ui.Sidebar
	chat    *ui.Chat
	modal   *ui.Modal

	// viewer is the single code viewer slot. Opening another replaces it.
	viewer        *ui.ContextWindow
	viewerItems   []viewerItem
	viewerList    viewerList
	copyInViewer  bool
	pendingDelete conversation.ID

	width  int
	height int
	focus  Focus

	// sidebarCollapsed is the saved preference; a narrow terminal also hides
	// the sidebar without touching it.
	sidebarCollapsed bool

	attachment *pipeline.Attachment
	tokens     conversation.TokenUsage
	contexts   []conversation.ContextFile
	submitting bool

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new app model
func New(deps Deps) *Model {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.NewInMemory()
	}
	copier := deps.Clipboard
	if copier == nil {
		copier = &clipboard.Memory{}
	}

	ui.SetThemeByName(cfg.GetTheme())

	sess := session.New(deps.Backend, cfg)
	ctx, cancel := context.WithCancel(context.Background())

	m := &Model{
		config:           cfg,
		version:          deps.Version,
		session:          sess,
		pipeline:         pipeline.New(deps.Backend, sess),
		clipboard:        copier,
		log:              logger.WithComponent("app"),
		header:           ui.NewHeader(),
		footer:           ui.NewFooter(),
		sidebar:          ui.NewSidebar(),
		chat:             ui.NewChat(),
		modal:            ui.NewModal(),
		focus:            FocusSidebar,
		sidebarCollapsed: cfg.GetSidebarCollapsed(),
		ctx:              ctx,
		cancel:           cancel,
	}

	m.pipeline.OnStateChange(func(s pipeline.State) {
		m.log.Debug("pipeline state changed", "state", s.String())
	})

	m.refreshSidebar()
	if m.sidebarCollapsed {
		m.focus = FocusChat
	}
	m.applyFocus()

	return m
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Close cancels requests still in flight. Called once the program exits.
func (m *Model) Close() {
	m.cancel()
}

// Session exposes the conversation session, mainly for tests and the CLI.
func (m *Model) Session() *session.Session {
	return m.session
}

// Focus returns the focused panel
func (m *Model) Focus() Focus {
	return m.focus
}

// IsProcessing reports whether a submission is in flight
func (m *Model) IsProcessing() bool {
	return m.submitting || m.pipeline.State() == pipeline.Submitting
}

// SidebarVisible reports whether the sidebar is shown at the current width
func (m *Model) SidebarVisible() bool {
	if m.sidebarCollapsed {
		return false
	}
	return m.width == 0 || !ui.IsNarrow(m.width)
}

// setFocus switches panels. The sidebar cannot take focus while hidden.
func (m *Model) setFocus(f Focus) {
	if f == FocusSidebar && !m.SidebarVisible() {
		f = FocusChat
	}
	if m.focus != f {
		m.log.Debug("focus changed", "from", m.focus.String(), "to", f.String())
	}
	m.focus = f
	m.applyFocus()
}

func (m *Model) applyFocus() {
	m.sidebar.SetFocused(m.focus == FocusSidebar)
	m.chat.SetFocused(m.focus == FocusChat)
}

// refreshSidebar reloads the cached list and marks the current conversation.
func (m *Model) refreshSidebar() {
	m.sidebar.SetConversations(m.session.Conversations())
	id, _ := m.session.Current()
	m.sidebar.SetCurrent(id)
}

// refreshHeader shows the current conversation name and token counts.
func (m *Model) refreshHeader() {
	name := ""
	if conv, ok := m.session.CurrentConversation(); ok {
		name = conv.Name
	}
	m.header.SetConversationName(name)
	m.header.SetTokens(m.tokens)
	m.header.SetProcessing(m.IsProcessing())
}

// setTokens replaces the displayed token counts
func (m *Model) setTokens(t conversation.TokenUsage) {
	m.tokens = t
	m.header.SetTokens(t)
}

// Tokens returns the displayed token counts
func (m *Model) Tokens() conversation.TokenUsage {
	return m.tokens
}

// Attachment returns the file queued for the next prompt, or nil
func (m *Model) Attachment() *pipeline.Attachment {
	return m.attachment
}

func (m *Model) setAttachment(a *pipeline.Attachment) {
	m.attachment = a
	if a == nil {
		m.chat.ClearAttachment()
		return
	}
	m.chat.SetAttachment(a.Name)
}

// Viewer returns the open code viewer, or nil
func (m *Model) Viewer() *ui.ContextWindow {
	return m.viewer
}
