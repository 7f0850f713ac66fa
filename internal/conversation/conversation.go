// Package conversation holds the data model shared by the backend client,
// the session and pipeline layers, and the UI.
package conversation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ID identifies a conversation or artifact. The backend emits integers, but
// nothing in the client does arithmetic on them, so they are kept opaque.
type ID string

// UnmarshalJSON accepts a JSON string, number, or null.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("conversation id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// IsZero reports whether the id is unset.
func (id ID) IsZero() bool { return id == "" }

// WireLayout is the timestamp format the backend writes.
const WireLayout = "2006-01-02 15:04:05"

var parseLayouts = []string{
	WireLayout, // also accepts trailing fractional seconds
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"15:04:05",
}

// Timestamp is a backend timestamp. Raw keeps the wire string for display;
// Time is zero when Raw could not be parsed.
type Timestamp struct {
	Time time.Time
	Raw  string
}

// ParseTimestamp parses raw using the formats the backend is known to emit.
// Naive timestamps are interpreted in the local zone.
func ParseTimestamp(raw string) Timestamp {
	s := strings.TrimSpace(raw)
	for _, layout := range parseLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Timestamp{Time: t, Raw: raw}
		}
	}
	return Timestamp{Raw: raw}
}

// NewTimestamp wraps t, filling Raw with the wire format.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t, Raw: t.Format(WireLayout)}
}

// Now returns the current time as a Timestamp.
func Now() Timestamp { return NewTimestamp(time.Now()) }

// Valid reports whether the timestamp was parsed.
func (ts Timestamp) Valid() bool { return !ts.Time.IsZero() }

// Millis returns the timestamp as unix milliseconds.
func (ts Timestamp) Millis() int64 { return ts.Time.UnixMilli() }

// Display returns a short human form, falling back to the raw string.
func (ts Timestamp) Display() string {
	if !ts.Valid() {
		return ts.Raw
	}
	if ts.Time.Year() == 0 {
		return ts.Time.Format("15:04:05")
	}
	now := time.Now()
	if ts.Time.Year() == now.Year() && ts.Time.YearDay() == now.YearDay() {
		return ts.Time.Format("15:04")
	}
	return ts.Time.Format("Jan 2 15:04")
}

func (ts Timestamp) String() string { return ts.Raw }

// MarshalJSON writes the raw wire string.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	raw := ts.Raw
	if raw == "" && ts.Valid() {
		raw = ts.Time.Format(WireLayout)
	}
	return json.Marshal(raw)
}

// UnmarshalJSON accepts a string or null.
func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*ts = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	*ts = ParseTimestamp(s)
	return nil
}

// Conversation is a named thread of messages on the backend.
type Conversation struct {
	ID        ID        `json:"id"`
	Name      string    `json:"name"`
	CreatedAt Timestamp `json:"created_at"`
}

// Role identifies who produced a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleError     Role = "error"
)

// Message is one chat entry. ID is assigned client-side for messages created
// in this session and is empty for loaded history.
type Message struct {
	ID        string     `json:"id,omitempty"`
	Role      Role       `json:"role"`
	Content   string     `json:"content"`
	Timestamp Timestamp  `json:"timestamp"`
	Artifacts []Artifact `json:"-"`
}

// Artifact is a code snippet extracted from an assistant reply.
// MessageID links it to the message that produced it when known.
type Artifact struct {
	ID        ID        `json:"id"`
	MessageID string    `json:"message_id,omitempty"`
	Content   string    `json:"content"`
	Language  string    `json:"language"`
	Timestamp Timestamp `json:"timestamp"`
}

// ContextFile is a project file attached to a conversation on the backend.
type ContextFile struct {
	Path        string    `json:"file_path"`
	Content     string    `json:"file_content"`
	FileType    string    `json:"file_type"`
	LastUpdated Timestamp `json:"last_updated"`
}

// TokenUsage is the running token count for a conversation.
type TokenUsage struct {
	InputTokens  int `json:"total_input_tokens"`
	OutputTokens int `json:"total_output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// ComputedTokenUsage builds a usage whose total is in+out.
func ComputedTokenUsage(in, out int) TokenUsage {
	return TokenUsage{InputTokens: in, OutputTokens: out, TotalTokens: in + out}
}

// UnmarshalJSON computes the total when the backend omits it.
func (u *TokenUsage) UnmarshalJSON(b []byte) error {
	var wire struct {
		In    int  `json:"total_input_tokens"`
		Out   int  `json:"total_output_tokens"`
		Total *int `json:"total_tokens"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	*u = ComputedTokenUsage(wire.In, wire.Out)
	if wire.Total != nil {
		u.TotalTokens = *wire.Total
	}
	return nil
}

// Transcript renders messages as plain text, one block per message.
func Transcript(messages []Message) string {
	var sb strings.Builder
	for i, m := range messages {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "%s: %s", m.Role, m.Content)
	}
	return sb.String()
}
