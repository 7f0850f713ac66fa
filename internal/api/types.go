package api

import "github.com/zhubert/codechat/internal/conversation"

// Attachment is a file uploaded alongside a prompt.
type Attachment struct {
	Name    string
	Content []byte
}

// ProcessRequest is the input to Process.
type ProcessRequest struct {
	ConversationID conversation.ID `validate:"required"`
	Prompt         string          `validate:"required_without=File"`
	File           *Attachment     `validate:"required_without=Prompt"`
}

// CreateResponse is returned by /new-conversation.
type CreateResponse struct {
	ConversationID conversation.ID        `json:"conversation_id"`
	Name           string                 `json:"name"`
	Timestamp      conversation.Timestamp `json:"timestamp"`
	FormattedTime  string                 `json:"formatted_time"`
}

// Conversation converts the response into the domain type.
func (r CreateResponse) Conversation() conversation.Conversation {
	return conversation.Conversation{ID: r.ConversationID, Name: r.Name, CreatedAt: r.Timestamp}
}

// ProcessMetadata describes how a reply was produced.
type ProcessMetadata struct {
	Model            string `json:"model"`
	ConversationName string `json:"conversation_name"`
	HasContextFiles  bool   `json:"has_context_files"`
	ArtifactCount    int    `json:"artifact_count"`
}

// ProcessResponse is returned by /process.
type ProcessResponse struct {
	ConversationID conversation.ID         `json:"conversation_id"`
	Response       string                  `json:"response"`
	Timestamp      conversation.Timestamp  `json:"timestamp"`
	Artifacts      []conversation.Artifact `json:"artifacts"`
	InputTokens    int                     `json:"input_tokens"`
	OutputTokens   int                     `json:"output_tokens"`
	TotalTokens    conversation.TokenUsage `json:"total_tokens"`
	Metadata       ProcessMetadata         `json:"metadata"`
}

// LoadResponse is returned by /load-conversation/{id}. Per-message artifact
// arrays sent by the server are ignored; see conversation.Associate.
type LoadResponse struct {
	Messages  []conversation.Message     `json:"messages"`
	Artifacts []conversation.Artifact    `json:"artifacts"`
	Tokens    conversation.TokenUsage    `json:"tokens"`
	Contexts  []conversation.ContextFile `json:"contexts"`
}

// errorBody is the shape of every backend error response.
type errorBody struct {
	Error string `json:"error"`
}
