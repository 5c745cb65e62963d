package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hollowdrift/claudegate/internal/logger"
	"github.com/hollowdrift/claudegate/internal/models"
)

const chatCompletionInterface = "puter-chat-completion"

// DriverCallConfig configures the remote driver-call backend.
type DriverCallConfig struct {
	Origin    string
	AuthToken string
}

// DriverCall reaches the backend through its driver-call RPC: one POST to
// /drivers/call carrying {interface, service, method, args}. It does not
// support streaming or function schemas.
type DriverCall struct {
	config DriverCallConfig
	client *http.Client
	log    *logger.Logger
}

// NewDriverCall creates a driver-call backend client.
func NewDriverCall(config DriverCallConfig) *DriverCall {
	return &DriverCall{
		config: config,
		client: &http.Client{},
		log:    logger.GetLogger().WithComponent("driver_call"),
	}
}

type driverCallBody struct {
	Interface string     `json:"interface"`
	Service   string     `json:"service"`
	Method    string     `json:"method"`
	Args      driverArgs `json:"args"`
}

type driverArgs struct {
	Messages    []models.ChatMessage `json:"messages"`
	Model       string               `json:"model"`
	Temperature float32              `json:"temperature"`
}

type driverCallResponse struct {
	Success bool `json:"success"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error"`
	Result json.RawMessage `json:"result"`
}

type driverCallResult struct {
	Message *struct {
		Content string `json:"content"`
	} `json:"message"`
	Text string `json:"text"`
}

func (c *DriverCall) Complete(ctx context.Context, req *Request) (string, error) {
	if len(req.Functions) > 0 {
		return "", fmt.Errorf("function calling via driver call: %w", ErrNotSupported)
	}

	body, err := json.Marshal(driverCallBody{
		Interface: chatCompletionInterface,
		Service:   req.Service,
		Method:    "complete",
		Args: driverArgs{
			Messages:    req.Messages,
			Model:       req.Model,
			Temperature: req.Temperature,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.config.Origin+"/drivers/call", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.config.AuthToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.config.AuthToken)
	}

	c.log.Debug("Calling %s service %s with %d messages", chatCompletionInterface, req.Service, len(req.Messages))
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	var call driverCallResponse
	if err := json.NewDecoder(resp.Body).Decode(&call); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	// Any success:false reply is a hard failure carrying the upstream message.
	if !call.Success {
		msg := "driver call failed"
		if call.Error != nil && call.Error.Message != "" {
			msg = call.Error.Message
		}
		return "", &Error{Message: msg}
	}

	var result driverCallResult
	if err := json.Unmarshal(call.Result, &result); err != nil {
		return "", fmt.Errorf("decode result: %w", err)
	}
	if result.Message != nil && result.Message.Content != "" {
		return result.Message.Content, nil
	}
	return result.Text, nil
}

// CompleteStream always refuses: the driver-call API has no streaming shape.
func (c *DriverCall) CompleteStream(ctx context.Context, req *Request) (<-chan string, error) {
	return nil, fmt.Errorf("streaming via driver call: %w", ErrNotSupported)
}
