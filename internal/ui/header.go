package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
	"github.com/zhubert/codechat/internal/conversation"
)

// Header represents the top header bar
type Header struct {
	width            int
	conversationName string
	tokens           conversation.TokenUsage
	processing       bool
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetConversationName sets the current conversation name to display
func (h *Header) SetConversationName(name string) {
	h.conversationName = name
}

// SetTokens replaces the token counters
func (h *Header) SetTokens(tokens conversation.TokenUsage) {
	h.tokens = tokens
}

// SetProcessing marks a request in flight
func (h *Header) SetProcessing(processing bool) {
	h.processing = processing
}

// FormatTokens renders token counters as "in / out / total".
func FormatTokens(t conversation.TokenUsage) string {
	return fmt.Sprintf("%d / %d / %d", t.InputTokens, t.OutputTokens, t.TotalTokens)
}

// View renders the header
func (h *Header) View() string {
	titleText := " " + AppTitle
	if h.conversationName != "" {
		titleText += " · " + h.conversationName
	}
	if h.processing {
		titleText += " …"
	}
	rightText := "tokens " + FormatTokens(h.tokens) + " "

	paddingLen := h.width - runewidth.StringWidth(titleText) - runewidth.StringWidth(rightText)
	if paddingLen < 1 {
		// Drop the name before the counters when space runs out.
		avail := h.width - runewidth.StringWidth(rightText) - 1
		if avail < 0 {
			avail = 0
		}
		titleText = runewidth.Truncate(titleText, avail, "…")
		paddingLen = h.width - runewidth.StringWidth(titleText) - runewidth.StringWidth(rightText)
		if paddingLen < 0 {
			paddingLen = 0
		}
	}

	fullContent := titleText + strings.Repeat(" ", paddingLen) + rightText
	return h.renderGradient(fullContent, len([]rune(" "+AppTitle)))
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders the content with a theme-aware gradient background.
// The first boldRunes runes (the title) are bold.
func (h *Header) renderGradient(content string, boldRunes int) string {
	if len(content) == 0 {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	endR, endG, endB := parseHexColor(theme.Bg)

	textColor := lipgloss.Color(theme.TextInverse)
	mutedColor := lipgloss.Color(theme.TextMuted)

	runes := []rune(content)
	width := len(runes)
	// Counters sit on the faded end of the gradient and need the muted color.
	countersStart := width / 2

	var result strings.Builder
	for i, r := range runes {
		t := float64(i) / float64(width)

		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		style := lipgloss.NewStyle().
			Background(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))).
			Bold(i < boldRunes)
		if i >= countersStart {
			style = style.Foreground(mutedColor)
		} else {
			style = style.Foreground(textColor)
		}
		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
