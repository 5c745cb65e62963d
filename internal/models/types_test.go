package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatCompletionRequestSerialization(t *testing.T) {
	data := []byte(`{
		"model": "gpt-4",
		"conversation_id": "c1",
		"stream": true,
		"temperature": 0.5,
		"messages": [{"role": "user", "content": "hi"}],
		"functions": [{"name": "get_weather", "parameters": {"type": "object"}}]
	}`)

	var req ChatCompletionRequest
	err := json.Unmarshal(data, &req)
	assert.NoError(t, err)
	assert.Equal(t, "gpt-4", req.Model)
	assert.Equal(t, "c1", req.ConversationID)
	assert.True(t, req.Stream)
	assert.Equal(t, float32(0.5), req.Temperature)
	assert.Equal(t, "user", req.Messages[0].Role)
	assert.Equal(t, "hi", req.Messages[0].Content)
	assert.Equal(t, "get_weather", req.Functions[0].Name)
	assert.JSONEq(t, `{"type":"object"}`, string(req.Functions[0].Parameters))
}

func TestChatCompletionResponseSerialization(t *testing.T) {
	resp := &ChatCompletionResponse{
		ID:      "chatcmpl-123",
		Object:  "chat.completion",
		Created: 1700000000,
		Model:   "claude-sonnet-4",
		Choices: []ChatCompletionChoice{
			{
				Index:        0,
				Message:      ChatMessage{Role: "assistant", Content: "hello"},
				FinishReason: "stop",
			},
		},
	}

	data, err := json.Marshal(resp)
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"object":"chat.completion"`)
	assert.Contains(t, string(data), `"finish_reason":"stop"`)
	assert.Contains(t, string(data), `"role":"assistant"`)
	assert.NotContains(t, string(data), "function_call", "function_call should be omitted when unset")
}

func TestChunkFinishReasonNull(t *testing.T) {
	chunk := &ChatCompletionChunk{
		ID:      "chatcmpl-123",
		Object:  "chat.completion.chunk",
		Choices: []ChunkChoice{{Index: 0, Delta: ChunkDelta{Content: "frag"}}},
	}

	data, err := json.Marshal(chunk)
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"finish_reason":null`, "intermediate chunks carry an explicit null")

	stop := "stop"
	chunk.Choices[0].FinishReason = &stop
	chunk.Choices[0].Delta = ChunkDelta{}
	data, err = json.Marshal(chunk)
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"finish_reason":"stop"`)
	assert.Contains(t, string(data), `"delta":{}`, "final chunk carries an empty delta")
}

func TestAssistantMessageWithFunctionCall(t *testing.T) {
	msg := ChatMessage{
		Role:         "assistant",
		FunctionCall: &FunctionCall{Name: "get_weather", Arguments: `{"city":"Oslo"}`},
	}

	data, err := json.Marshal(msg)
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"name":"get_weather"`)

	var parsed ChatMessage
	assert.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, msg.FunctionCall.Arguments, parsed.FunctionCall.Arguments)
}
