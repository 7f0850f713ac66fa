package conversation

import (
	"encoding/json"
	"testing"
	"time"
)

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input string
		want  ID
	}{
		{`42`, "42"},
		{`"abc"`, "abc"},
		{`null`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var id ID
			if err := json.Unmarshal([]byte(tt.input), &id); err != nil {
				t.Fatalf("Unmarshal(%s) error: %v", tt.input, err)
			}
			if id != tt.want {
				t.Errorf("got %q, want %q", id, tt.want)
			}
		})
	}

	var id ID
	if err := json.Unmarshal([]byte(`{}`), &id); err == nil {
		t.Error("expected error for object id")
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		raw       string
		wantValid bool
		wantMilli int
	}{
		{"2024-03-01 12:00:00", true, 0},
		{"2024-03-01 12:00:00.250000", true, 250},
		{"2024-03-01T12:00:00Z", true, 0},
		{"2024-03-01T12:00:00.5", true, 500},
		{"12:00:00", true, 0},
		{"yesterday", false, 0},
		{"", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			ts := ParseTimestamp(tt.raw)
			if ts.Valid() != tt.wantValid {
				t.Fatalf("Valid() = %v, want %v", ts.Valid(), tt.wantValid)
			}
			if ts.Raw != tt.raw {
				t.Errorf("Raw = %q, want %q", ts.Raw, tt.raw)
			}
			if tt.wantValid {
				if got := ts.Time.Nanosecond() / int(time.Millisecond); got != tt.wantMilli {
					t.Errorf("millis = %d, want %d", got, tt.wantMilli)
				}
			}
		})
	}
}

func TestTimestamp_JSONRoundTrip(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"2024-03-01 12:00:00"`), &ts); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	data, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(data) != `"2024-03-01 12:00:00"` {
		t.Errorf("Marshal = %s", data)
	}

	ts = NewTimestamp(time.Date(2024, 3, 1, 9, 30, 0, 0, time.Local))
	if ts.Raw != "2024-03-01 09:30:00" {
		t.Errorf("NewTimestamp Raw = %q", ts.Raw)
	}
}

func TestTokenUsage_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  TokenUsage
	}{
		{
			name:  "total computed when absent",
			input: `{"total_input_tokens": 10, "total_output_tokens": 5}`,
			want:  TokenUsage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15},
		},
		{
			name:  "backend total trusted",
			input: `{"total_input_tokens": 10, "total_output_tokens": 5, "total_tokens": 20}`,
			want:  TokenUsage{InputTokens: 10, OutputTokens: 5, TotalTokens: 20},
		},
		{
			name:  "empty object",
			input: `{}`,
			want:  TokenUsage{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got TokenUsage
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("Unmarshal error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputedTokenUsage(t *testing.T) {
	if got := ComputedTokenUsage(10, 5); got.TotalTokens != 15 {
		t.Errorf("TotalTokens = %d, want 15", got.TotalTokens)
	}
}

func TestMessage_DecodesLoadedHistory(t *testing.T) {
	input := `{"role": "assistant", "content": "hi", "timestamp": "2024-03-01 12:00:00",
		"tokens_input": 0, "tokens_output": 7, "artifacts": [{"id": 1}]}`
	var m Message
	if err := json.Unmarshal([]byte(input), &m); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if m.Role != RoleAssistant || m.Content != "hi" || !m.Timestamp.Valid() {
		t.Errorf("unexpected message: %+v", m)
	}
	if m.ID != "" || len(m.Artifacts) != 0 {
		t.Errorf("loaded message should carry no id or artifacts: %+v", m)
	}
}

func TestTranscript(t *testing.T) {
	got := Transcript([]Message{
		{Role: RoleUser, Content: "hello"},
		{Role: RoleAssistant, Content: "hi there"},
	})
	want := "user: hello\n\nassistant: hi there"
	if got != want {
		t.Errorf("Transcript() = %q, want %q", got, want)
	}
}
