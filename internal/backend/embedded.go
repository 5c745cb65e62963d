package backend

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hollowdrift/claudegate/internal/logger"
	"github.com/hollowdrift/claudegate/internal/translate"
)

// EmbeddedConfig configures the in-process client backend.
type EmbeddedConfig struct {
	APIBase   string
	AuthToken string
}

// Embedded reaches the backend through an in-process client library. The
// full message sequence is flattened into a single text prompt before each
// call; streaming is supported as an incremental fragment sequence.
type Embedded struct {
	config EmbeddedConfig
	client *openai.Client
	log    *logger.Logger
}

// NewEmbedded creates an embedded-client backend.
func NewEmbedded(config EmbeddedConfig) *Embedded {
	clientConfig := openai.DefaultConfig(config.AuthToken)
	if config.APIBase != "" {
		clientConfig.BaseURL = config.APIBase
		if !strings.HasPrefix(clientConfig.BaseURL, "http://") && !strings.HasPrefix(clientConfig.BaseURL, "https://") {
			clientConfig.BaseURL = "http://" + clientConfig.BaseURL
		}
	}
	return &Embedded{
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
		log:    logger.GetLogger().WithComponent("embedded_client"),
	}
}

func (c *Embedded) buildRequest(req *Request, stream bool) openai.ChatCompletionRequest {
	prompt := translate.FlattenPrompt(req.Messages, req.Functions)
	return openai.ChatCompletionRequest{
		Model:       req.Model,
		Temperature: req.Temperature,
		Stream:      stream,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
}

func (c *Embedded) Complete(ctx context.Context, req *Request) (string, error) {
	c.log.Debug("Completing with %d messages flattened", len(req.Messages))

	resp, err := c.client.CreateChatCompletion(ctx, c.buildRequest(req, false))
	if err != nil {
		// Keep the deadline classification instead of the client's string wrap.
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", &Error{Message: err.Error()}
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Embedded) CompleteStream(ctx context.Context, req *Request) (<-chan string, error) {
	stream, err := c.client.CreateChatCompletionStream(ctx, c.buildRequest(req, true))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &Error{Message: err.Error()}
	}

	fragments := make(chan string)

	go func() {
		defer close(fragments)
		defer stream.Close()

		for {
			resp, err := stream.Recv()
			if err != nil {
				// End of stream or error; either way the sequence is done.
				return
			}
			if len(resp.Choices) == 0 || resp.Choices[0].Delta.Content == "" {
				continue
			}
			select {
			case <-ctx.Done():
				return
			case fragments <- resp.Choices[0].Delta.Content:
			}
		}
	}()

	return fragments, nil
}
