package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hollowdrift/claudegate/internal/models"
)

func TestDriverCall_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/drivers/call", r.URL.Path)
		assert.Equal(t, "Bearer backend-token", r.Header.Get("Authorization"))

		var body driverCallBody
		err := json.NewDecoder(r.Body).Decode(&body)
		assert.NoError(t, err)
		assert.Equal(t, "puter-chat-completion", body.Interface)
		assert.Equal(t, "openai-gpt", body.Service)
		assert.Equal(t, "complete", body.Method)
		assert.Equal(t, "gpt-4", body.Args.Model)
		assert.Len(t, body.Args.Messages, 2)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"result": map[string]interface{}{
				"message": map[string]interface{}{"content": "driver reply"},
			},
		})
	}))
	defer server.Close()

	client := NewDriverCall(DriverCallConfig{Origin: server.URL, AuthToken: "backend-token"})

	text, err := client.Complete(context.Background(), &Request{
		Service: "openai-gpt",
		Model:   "gpt-4",
		Messages: []models.ChatMessage{
			{Role: "system", Content: "be brief"},
			{Role: "user", Content: "hi"},
		},
		Temperature: 1.0,
	})

	assert.NoError(t, err)
	assert.Equal(t, "driver reply", text)
}

func TestDriverCall_CompleteTextFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"result":  map[string]interface{}{"text": "bare text reply"},
		})
	}))
	defer server.Close()

	client := NewDriverCall(DriverCallConfig{Origin: server.URL})

	text, err := client.Complete(context.Background(), &Request{
		Service:  "claude",
		Model:    "claude-sonnet-4",
		Messages: []models.ChatMessage{{Role: "user", Content: "hi"}},
	})

	assert.NoError(t, err)
	assert.Equal(t, "bare text reply", text)
}

func TestDriverCall_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   map[string]interface{}{"message": "usage limit exceeded"},
		})
	}))
	defer server.Close()

	client := NewDriverCall(DriverCallConfig{Origin: server.URL})

	_, err := client.Complete(context.Background(), &Request{
		Service:  "claude",
		Messages: []models.ChatMessage{{Role: "user", Content: "hi"}},
	})

	var be *Error
	assert.ErrorAs(t, err, &be)
	assert.Equal(t, "usage limit exceeded", be.Message)
}

func TestDriverCall_NoAuthHeaderWithoutToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"result":  map[string]interface{}{"text": "ok"},
		})
	}))
	defer server.Close()

	client := NewDriverCall(DriverCallConfig{Origin: server.URL})
	_, err := client.Complete(context.Background(), &Request{Service: "claude"})
	assert.NoError(t, err)
}

func TestDriverCall_StreamingUnsupported(t *testing.T) {
	client := NewDriverCall(DriverCallConfig{Origin: "http://unused"})

	_, err := client.CompleteStream(context.Background(), &Request{Service: "claude"})
	assert.ErrorIs(t, err, ErrNotSupported)
}

func TestDriverCall_FunctionsUnsupported(t *testing.T) {
	client := NewDriverCall(DriverCallConfig{Origin: "http://unused"})

	_, err := client.Complete(context.Background(), &Request{
		Service:   "claude",
		Functions: []models.FunctionSchema{{Name: "get_weather"}},
	})
	assert.ErrorIs(t, err, ErrNotSupported)
}
