package ui

import (
	"sync"

	"github.com/zhubert/codechat/internal/logger"
)

// ViewContext holds centralized layout calculations.
// All size calculations should go through this to avoid duplication.
type ViewContext struct {
	// Terminal dimensions
	TerminalWidth  int
	TerminalHeight int

	// Calculated dimensions
	HeaderHeight  int
	FooterHeight  int
	ContentHeight int
	SidebarWidth  int
	ChatWidth     int

	// SidebarVisible is false when the user collapsed it or the terminal is narrow
	SidebarVisible bool

	mu sync.Mutex
}

var ctx *ViewContext
var ctxOnce sync.Once

// GetViewContext returns the singleton ViewContext instance
func GetViewContext() *ViewContext {
	ctxOnce.Do(func() {
		ctx = &ViewContext{
			HeaderHeight:   HeaderHeight,
			FooterHeight:   FooterHeight,
			SidebarVisible: true,
		}
		logger.WithComponent("ui").Debug("ViewContext initialized")
	})
	return ctx
}

// Log writes a debug message to the log file.
func (v *ViewContext) Log(msg string, args ...interface{}) {
	logger.WithComponent("ui").Debug(msg, args...)
}

// IsNarrow reports whether a terminal of the given width should hide the sidebar.
func IsNarrow(width int) bool {
	return width < NarrowWidth
}

// UpdateLayout recalculates all dimensions when the terminal size or the
// sidebar visibility changes. It must be called from the main event loop.
func (v *ViewContext) UpdateLayout(width, height int, sidebarVisible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if height < MinTerminalHeight {
		height = MinTerminalHeight
	}

	v.TerminalWidth = width
	v.TerminalHeight = height
	v.HeaderHeight = HeaderHeight
	v.FooterHeight = FooterHeight
	v.ContentHeight = height - v.HeaderHeight - v.FooterHeight
	v.SidebarVisible = sidebarVisible

	if sidebarVisible {
		v.SidebarWidth = width / SidebarWidthRatio
	} else {
		v.SidebarWidth = 0
	}
	v.ChatWidth = width - v.SidebarWidth

	logger.WithComponent("ui").Debug("Layout updated",
		"width", width,
		"height", height,
		"contentHeight", v.ContentHeight,
		"sidebarVisible", sidebarVisible,
		"sidebarWidth", v.SidebarWidth,
		"chatWidth", v.ChatWidth,
	)
}

// InnerWidth returns the usable width inside a panel with borders
func (v *ViewContext) InnerWidth(panelWidth int) int {
	return panelWidth - BorderSize
}

// InnerHeight returns the usable height inside a panel with borders
func (v *ViewContext) InnerHeight(panelHeight int) int {
	return panelHeight - BorderSize
}
