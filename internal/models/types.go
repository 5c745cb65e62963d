package models

import "encoding/json"

// ChatMessage represents a single role/content turn in a conversation.
// FunctionCall is only ever set on assistant messages produced by the gateway.
type ChatMessage struct {
	Role         string        `json:"role"`
	Content      string        `json:"content"`
	FunctionCall *FunctionCall `json:"function_call,omitempty"`
}

// FunctionSchema describes a callable function advertised by the caller.
// Parameters stays opaque; the gateway only embeds it into the prompt.
type FunctionSchema struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

// FunctionCall is a structured reply coerced from the model's text output.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ChatCompletionRequest represents an incoming chat completion request
type ChatCompletionRequest struct {
	Model          string           `json:"model"`
	Messages       []ChatMessage    `json:"messages"`
	Stream         bool             `json:"stream,omitempty"`
	ConversationID string           `json:"conversation_id"`
	Temperature    float32          `json:"temperature,omitempty"`
	Functions      []FunctionSchema `json:"functions,omitempty"`
}

// ChatCompletionChoice represents a completion choice
type ChatCompletionChoice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// ChatCompletionResponse represents the response from the chat completion API
type ChatCompletionResponse struct {
	ID      string                 `json:"id"`
	Object  string                 `json:"object"`
	Created int64                  `json:"created"`
	Model   string                 `json:"model"`
	Choices []ChatCompletionChoice `json:"choices"`
}

// ChunkDelta is the incremental part of a streamed choice.
type ChunkDelta struct {
	Role    string `json:"role,omitempty"`
	Content string `json:"content,omitempty"`
}

// ChunkChoice represents one choice inside a streamed chunk. FinishReason is
// a pointer so intermediate chunks serialize it as null.
type ChunkChoice struct {
	Index        int        `json:"index"`
	Delta        ChunkDelta `json:"delta"`
	FinishReason *string    `json:"finish_reason"`
}

// ChatCompletionChunk is one SSE frame of a streamed completion.
type ChatCompletionChunk struct {
	ID      string        `json:"id"`
	Object  string        `json:"object"`
	Created int64         `json:"created"`
	Model   string        `json:"model"`
	Choices []ChunkChoice `json:"choices"`
}

// EditRequest represents a request to the edits endpoint.
type EditRequest struct {
	Input       string `json:"input"`
	Instruction string `json:"instruction"`
	Model       string `json:"model,omitempty"`
}

// EditChoice represents one edited output.
type EditChoice struct {
	Text  string `json:"text"`
	Index int    `json:"index"`
}

// EditResponse represents the response from the edits endpoint.
type EditResponse struct {
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Choices []EditChoice `json:"choices"`
}

// EmbeddingRequest represents a request to the embeddings endpoint.
type EmbeddingRequest struct {
	Input string `json:"input"`
	Model string `json:"model,omitempty"`
}

// EmbeddingData holds a single embedding vector.
type EmbeddingData struct {
	Object    string    `json:"object"`
	Index     int       `json:"index"`
	Embedding []float64 `json:"embedding"`
}

// EmbeddingResponse represents the response from the embeddings endpoint.
type EmbeddingResponse struct {
	Object string          `json:"object"`
	Data   []EmbeddingData `json:"data"`
	Model  string          `json:"model"`
}
