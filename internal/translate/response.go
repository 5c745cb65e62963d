package translate

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hollowdrift/claudegate/internal/models"
)

const (
	objectCompletion = "chat.completion"
	objectChunk      = "chat.completion.chunk"
	finishStop       = "stop"
)

// NewCompletionID generates an opaque completion id. Uniqueness is not
// guaranteed; the id is only used for client-side correlation.
func NewCompletionID() string {
	return "chatcmpl-" + uuid.NewString()
}

// NewCompletion wraps a backend reply into an OpenAI-shaped completion
// object. When function schemas were supplied, the reply text is coerced
// into a structured call if it parses; otherwise the raw text is returned
// unchanged.
func NewCompletion(model, text string, fns []models.FunctionSchema) *models.ChatCompletionResponse {
	msg := models.ChatMessage{Role: "assistant", Content: text}
	if len(fns) > 0 {
		if call, ok := CoerceFunctionReply(text); ok {
			msg.FunctionCall = call
			msg.Content = ""
		}
	}
	return &models.ChatCompletionResponse{
		ID:      NewCompletionID(),
		Object:  objectCompletion,
		Created: time.Now().Unix(),
		Model:   model,
		Choices: []models.ChatCompletionChoice{
			{Index: 0, Message: msg, FinishReason: finishStop},
		},
	}
}

// NewChunk wraps one streamed fragment into a delta chunk.
func NewChunk(id, model, fragment string) *models.ChatCompletionChunk {
	return &models.ChatCompletionChunk{
		ID:      id,
		Object:  objectChunk,
		Created: time.Now().Unix(),
		Model:   model,
		Choices: []models.ChunkChoice{
			{Index: 0, Delta: models.ChunkDelta{Content: fragment}},
		},
	}
}

// FinalChunk is the terminating chunk: empty delta, finish_reason "stop".
func FinalChunk(id, model string) *models.ChatCompletionChunk {
	stop := finishStop
	return &models.ChatCompletionChunk{
		ID:      id,
		Object:  objectChunk,
		Created: time.Now().Unix(),
		Model:   model,
		Choices: []models.ChunkChoice{
			{Index: 0, Delta: models.ChunkDelta{}, FinishReason: &stop},
		},
	}
}

// NewEdit wraps edited text into the edits response shape.
func NewEdit(text string) *models.EditResponse {
	return &models.EditResponse{
		Object:  "edit",
		Created: time.Now().Unix(),
		Choices: []models.EditChoice{{Text: text, Index: 0}},
	}
}

// NewEmbedding wraps a parsed vector into the embeddings response shape.
func NewEmbedding(model string, vec []float64) *models.EmbeddingResponse {
	return &models.EmbeddingResponse{
		Object: "list",
		Data:   []models.EmbeddingData{{Object: "embedding", Index: 0, Embedding: vec}},
		Model:  model,
	}
}

// CoerceFunctionReply attempts to parse free reply text as a structured
// function call. This is the explicit lossy fallback step: when the text is
// not a JSON object naming a function, the caller keeps the raw text and no
// error is surfaced.
func CoerceFunctionReply(text string) (*models.FunctionCall, bool) {
	trimmed := strings.TrimSpace(text)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	trimmed = strings.TrimSpace(trimmed)

	var parsed struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil || parsed.Name == "" {
		return nil, false
	}
	args := "{}"
	if len(parsed.Arguments) > 0 {
		args = string(parsed.Arguments)
	}
	return &models.FunctionCall{Name: parsed.Name, Arguments: args}, true
}

// ParseVector parses a comma-separated numeric string into a vector.
// Surrounding brackets and whitespace are tolerated.
func ParseVector(text string) ([]float64, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.Trim(cleaned, "[]")
	parts := strings.Split(cleaned, ",")
	vec := make([]float64, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		vec = append(vec, f)
	}
	return vec, nil
}
