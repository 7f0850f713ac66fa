// Package ui provides the user interface components for the codechat TUI.
//
// # Layout
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header: app title · conversation name      tokens   │
//	├─────────────────┬───────────────────────────────────┤
//	│                 │                                   │
//	│   Sidebar       │   Chat panel (messages, inline    │
//	│   (1/3 width)   │   code artifacts, input)          │
//	│                 │                                   │
//	├─────────────────┴───────────────────────────────────┤
//	│ Footer: key hints or a flash message                │
//	└─────────────────────────────────────────────────────┘
//
// Terminals narrower than NarrowWidth hide the sidebar. The context window
// (ContextWindow) replaces the chat panel while an artifact is previewed.
//
// # Components
//
// ViewContext is a singleton holding all layout math.
//
// Components never call the backend. User intents leave a component as
// request messages (LoadConversationMsg, RenameRequestMsg, CopyRequestMsg and
// so on) and the app model performs the work.
//
// Dialogs live in the modals subpackage and are hosted by Modal.
//
// # Styles
//
// Style variables in styles.go are rebuilt from the active Theme by
// regenerateStyles. SetTheme also pushes the palette to the modals package.
package ui
