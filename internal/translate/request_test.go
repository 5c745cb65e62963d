package translate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hollowdrift/claudegate/internal/models"
)

func TestFlattenPrompt(t *testing.T) {
	prompt := FlattenPrompt([]models.ChatMessage{
		{Role: "system", Content: "be brief"},
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
		{Role: "user", Content: "how are you?"},
	}, nil)

	assert.Equal(t, "system: be brief\nuser: hi\nassistant: hello\nuser: how are you?", prompt)
}

func TestFlattenPromptWithFunctions(t *testing.T) {
	fns := []models.FunctionSchema{
		{
			Name:        "get_weather",
			Description: "Look up the weather",
			Parameters:  json.RawMessage(`{"type":"object","properties":{"city":{"type":"string"}}}`),
		},
		{Name: "get_time"},
	}

	prompt := FlattenPrompt([]models.ChatMessage{{Role: "user", Content: "weather in Oslo?"}}, fns)

	assert.Contains(t, prompt, "user: weather in Oslo?")
	assert.Contains(t, prompt, "get_weather: Look up the weather")
	assert.Contains(t, prompt, `"city"`)
	assert.Contains(t, prompt, "get_time")
	assert.Contains(t, prompt, `{"name": "<function name>", "arguments": {...}}`)
}

func TestEditPrompt(t *testing.T) {
	prompt := EditPrompt("I loves programming", "Fix grammar errors")

	assert.Contains(t, prompt, "Edit the following text based on the instruction:")
	assert.Contains(t, prompt, "Text: I loves programming")
	assert.Contains(t, prompt, "Instruction: Fix grammar errors")
}

func TestEmbeddingPrompt(t *testing.T) {
	prompt := EmbeddingPrompt("Hello world")

	assert.Contains(t, prompt, "comma-separated")
	assert.Contains(t, prompt, "Text: Hello world")
}
