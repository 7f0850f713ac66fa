package ui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/codechat/internal/clipboard"
	"github.com/zhubert/codechat/internal/logger"
)

// CopyResultMsg reports the outcome of a clipboard write
type CopyResultMsg struct {
	Err error
}

// CopyIndicatorExpiredMsg clears the indicator set by the matching Seq
type CopyIndicatorExpiredMsg struct {
	Seq int
}

// CopyCmd writes text to the clipboard off the event loop
func CopyCmd(c clipboard.Copier, text string) tea.Cmd {
	return func() tea.Msg {
		err := c.Copy(text)
		if err != nil {
			logger.WithComponent("ui").Warn("copy failed", "error", err)
		}
		return CopyResultMsg{Err: err}
	}
}

// CopyIndicator shows "Copied!" or "Copy failed" for a short time.
// A newer result restarts the timer; stale expiry messages are ignored.
type CopyIndicator struct {
	text string
	ok   bool
	seq  int
}

// Set records a copy result and returns the command that clears it
func (c *CopyIndicator) Set(err error) tea.Cmd {
	c.seq++
	c.ok = err == nil
	if c.ok {
		c.text = CopiedLabel
	} else {
		c.text = CopyFailedLabel
	}
	seq := c.seq
	return tea.Tick(CopyIndicatorDuration, func(time.Time) tea.Msg {
		return CopyIndicatorExpiredMsg{Seq: seq}
	})
}

// Expire clears the indicator if msg belongs to the latest result
func (c *CopyIndicator) Expire(msg CopyIndicatorExpiredMsg) {
	if msg.Seq == c.seq {
		c.text = ""
	}
}

// Text returns the visible label, or "" when idle
func (c *CopyIndicator) Text() string {
	return c.text
}

// View renders the label in the success or error style
func (c *CopyIndicator) View() string {
	if c.text == "" {
		return ""
	}
	if c.ok {
		return StatusSuccessStyle.Render(c.text)
	}
	return StatusErrorStyle.Render(c.text)
}
