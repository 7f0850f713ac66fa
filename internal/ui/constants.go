package ui

import "time"

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// SidebarWidthRatio is the denominator for sidebar width (1/3 of total width)
	SidebarWidthRatio = 3

	// TextareaHeight is the number of lines for the chat input textarea
	TextareaHeight = 3

	// TextareaBorderHeight is the border size around the textarea
	TextareaBorderHeight = 2

	// AttachmentLineHeight is the line under the input showing the attached file
	AttachmentLineHeight = 1

	// InputPaddingWidth is the horizontal padding inside the input area
	InputPaddingWidth = 2

	// InputTotalHeight is the total height of the input area
	InputTotalHeight = TextareaHeight + TextareaBorderHeight + AttachmentLineHeight

	// DefaultWrapWidth is the default width for text wrapping when viewport width is unknown
	DefaultWrapWidth = 80

	// MinTerminalWidth and MinTerminalHeight clamp layout math on tiny terminals
	MinTerminalWidth  = 40
	MinTerminalHeight = 10

	// NarrowWidth is the terminal width below which the sidebar auto-collapses
	NarrowWidth = 80

	// SidebarNameWidth caps conversation names in the sidebar
	SidebarNameWidth = 40
)

// Modal dimensions
const (
	// ModalWidth is the default width of modals
	ModalWidth = 60

	// ModalInputCharLimit is the character limit for modal text inputs
	ModalInputCharLimit = 256

	// ModalInputWidth is the width of modal text inputs
	ModalInputWidth = 50
)

// Timing
const (
	// FlashDuration is how long footer flash messages stay visible
	FlashDuration = 3 * time.Second

	// CopyIndicatorDuration is how long "Copied!" or "Copy failed" stays visible
	CopyIndicatorDuration = 2 * time.Second

	// SpinnerInterval drives the processing overlay animation
	SpinnerInterval = 120 * time.Millisecond
)

// Labels shown in the UI
const (
	AppTitle             = "codechat"
	ConversationContext  = "Conversation Context"
	AttachFileLabel      = "Attach File"
	CopiedLabel          = "Copied!"
	CopyFailedLabel      = "Copy failed"
	ProcessingLabel      = "Processing"
	UnassociatedHeading  = "Other code from this conversation"
	InputPlaceholderText = "Ask about your code..."
)
