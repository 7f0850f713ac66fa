package ui

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/muesli/reflow/wordwrap"
	"github.com/zhubert/codechat/internal/conversation"
)

// Compiled regex patterns for markdown parsing
var (
	boldPattern       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	underscoreItalic  = regexp.MustCompile(`(?:^|[^a-zA-Z0-9_])_([^_]+)_(?:[^a-zA-Z0-9_]|$)`)
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")
	linkPattern       = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
)

// lexerFor maps a language tag to a chroma lexer. "markup" is the inline
// artifact fallback and highlights as HTML; unknown tags use the fallback lexer.
func lexerFor(language string) chroma.Lexer {
	switch strings.ToLower(language) {
	case conversation.FallbackLanguage:
		language = "html"
	case conversation.PlainText, "":
		return lexers.Fallback
	}
	if l := lexers.Get(language); l != nil {
		return l
	}
	return lexers.Fallback
}

// highlightCode applies syntax highlighting to code using chroma and the
// current theme's style.
func highlightCode(code, language string) string {
	lexer := chroma.Coalesce(lexerFor(language))

	style := styles.Get(ChromaStyle())
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return strings.TrimRight(buf.String(), "\n")
}

// renderInlineMarkdown applies inline formatting (bold, italic, code, links) to a line
func renderInlineMarkdown(line string) string {
	// Protect code spans from other formatting.
	type codeSpan struct {
		placeholder string
		rendered    string
	}
	var codeSpans []codeSpan

	line = inlineCodePattern.ReplaceAllStringFunc(line, func(match string) string {
		code := inlineCodePattern.FindStringSubmatch(match)[1]
		placeholder := fmt.Sprintf("\x00CODE%d\x00", len(codeSpans))
		codeSpans = append(codeSpans, codeSpan{
			placeholder: placeholder,
			rendered:    MarkdownInlineCodeStyle.Render(code),
		})
		return placeholder
	})

	line = boldPattern.ReplaceAllStringFunc(line, func(match string) string {
		return MarkdownBoldStyle.Render(boldPattern.FindStringSubmatch(match)[1])
	})

	// Only underscores at word boundaries, not identifiers like foo_bar_baz.
	line = underscoreItalic.ReplaceAllStringFunc(line, func(match string) string {
		text := underscoreItalic.FindStringSubmatch(match)[1]
		start := strings.Index(match, "_"+text+"_")
		if start < 0 {
			return match
		}
		end := start + len(text) + 2
		return match[:start] + MarkdownItalicStyle.Render(text) + match[end:]
	})

	line = linkPattern.ReplaceAllStringFunc(line, func(match string) string {
		parts := linkPattern.FindStringSubmatch(match)
		return MarkdownLinkStyle.Render(parts[1]) + " (" + MarkdownLinkStyle.Render(parts[2]) + ")"
	})

	for _, cs := range codeSpans {
		line = strings.Replace(line, cs.placeholder, cs.rendered, 1)
	}

	return line
}

// wrapText wraps text to the specified width, handling ANSI escape codes
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}

// indentContinuation indents every line after the first
func indentContinuation(s, indent string) string {
	lines := strings.Split(s, "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = indent + lines[i]
	}
	return strings.Join(lines, "\n")
}

// renderMarkdownLine renders a single line with markdown formatting
func renderMarkdownLine(line string, width int) string {
	trimmed := strings.TrimSpace(line)

	// Headers are not wrapped
	switch {
	case strings.HasPrefix(trimmed, "#### "):
		return MarkdownH4Style.Render(strings.TrimPrefix(trimmed, "#### "))
	case strings.HasPrefix(trimmed, "### "):
		return MarkdownH3Style.Render(strings.TrimPrefix(trimmed, "### "))
	case strings.HasPrefix(trimmed, "## "):
		return MarkdownH2Style.Render(strings.TrimPrefix(trimmed, "## "))
	case strings.HasPrefix(trimmed, "# "):
		return MarkdownH1Style.Render(strings.TrimPrefix(trimmed, "# "))
	}

	if trimmed == "---" || trimmed == "***" || trimmed == "___" {
		return MarkdownHRStyle.Render(strings.Repeat("─", 32))
	}

	if strings.HasPrefix(trimmed, "> ") {
		content := strings.TrimPrefix(trimmed, "> ")
		return MarkdownBlockquoteStyle.Render(wrapText(renderInlineMarkdown(content), width-4))
	}

	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
		bullet := MarkdownListBulletStyle.Render("•")
		wrapped := wrapText(renderInlineMarkdown(trimmed[2:]), width-6)
		return "  " + bullet + " " + indentContinuation(wrapped, "    ")
	}

	if n, rest, ok := numberedItem(trimmed); ok {
		number := MarkdownListBulletStyle.Render(fmt.Sprintf("%d.", n))
		wrapped := wrapText(renderInlineMarkdown(rest), width-6)
		return "  " + number + " " + indentContinuation(wrapped, "     ")
	}

	return wrapText(renderInlineMarkdown(line), width)
}

// numberedItem splits "12. text" into 12 and "text"
func numberedItem(s string) (int, string, bool) {
	i := 0
	for i < len(s) && i < 3 && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || !strings.HasPrefix(s[i:], ". ") {
		return 0, "", false
	}
	var n int
	fmt.Sscanf(s[:i], "%d", &n)
	return n, s[i+2:], true
}

// renderMarkdown renders markdown content with syntax-highlighted code blocks
func renderMarkdown(content string, width int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}

	var result strings.Builder
	inCodeBlock := false
	codeBlockLang := ""
	var codeBlockContent strings.Builder

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "```") {
			if !inCodeBlock {
				inCodeBlock = true
				codeBlockLang = strings.TrimSpace(strings.TrimPrefix(line, "```"))
				codeBlockContent.Reset()
			} else {
				inCodeBlock = false
				if result.Len() > 0 {
					result.WriteString("\n")
				}
				result.WriteString(highlightCode(codeBlockContent.String(), codeBlockLang))
				result.WriteString("\n")
				codeBlockLang = ""
			}
			continue
		}

		if inCodeBlock {
			if codeBlockContent.Len() > 0 {
				codeBlockContent.WriteString("\n")
			}
			codeBlockContent.WriteString(line)
		} else {
			result.WriteString(renderMarkdownLine(line, width))
			result.WriteString("\n")
		}
	}

	if inCodeBlock {
		result.WriteString(highlightCode(codeBlockContent.String(), codeBlockLang))
	}

	return strings.TrimRight(result.String(), "\n")
}

// roleLabel returns the label and style for a message role
func roleLabel(role conversation.Role) (string, lipgloss.Style) {
	switch role {
	case conversation.RoleUser:
		return "You", ChatUserStyle
	case conversation.RoleError:
		return "Error", ChatErrorStyle.Bold(true)
	default:
		return "Assistant", ChatAssistantStyle
	}
}

// renderMessage renders one chat entry with its label, timestamp and the
// blocks for its inline artifacts.
func renderMessage(msg conversation.Message, width int, blocks []CodeArtifact) string {
	label, labelStyle := roleLabel(msg.Role)

	var sb strings.Builder
	sb.WriteString(labelStyle.Render(label + ":"))
	if ts := msg.Timestamp.Display(); ts != "" {
		sb.WriteString(" ")
		sb.WriteString(ChatTimestampStyle.Render(ts))
	}
	sb.WriteString("\n")

	content := strings.TrimSpace(msg.Content)
	if msg.Role == conversation.RoleError {
		sb.WriteString(ChatErrorStyle.Render(wrapText(content, width)))
	} else {
		sb.WriteString(renderMarkdown(content, width))
	}

	for _, b := range blocks {
		sb.WriteString("\n")
		sb.WriteString(b.View(width))
	}
	return sb.String()
}

// renderWelcome renders the placeholder shown when no conversation is current
func renderWelcome() string {
	msgStyle := lipgloss.NewStyle().Foreground(ColorTextMuted)
	keyStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	titleStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Welcome to " + AppTitle))
	sb.WriteString("\n\n")
	sb.WriteString(msgStyle.Render("Ask a question about your code to get started."))
	sb.WriteString("\n\n")
	hint := func(key, desc string) {
		sb.WriteString(msgStyle.Render("  • Press "))
		sb.WriteString(keyStyle.Render(key))
		sb.WriteString(msgStyle.Render(" " + desc))
		sb.WriteString("\n")
	}
	hint("enter", "to send a prompt (a conversation is created for you)")
	hint("ctrl+o", "to attach a file")
	hint("ctrl+n", "to start a new conversation")
	hint("tab", "to browse earlier conversations")
	return strings.TrimRight(sb.String(), "\n")
}
