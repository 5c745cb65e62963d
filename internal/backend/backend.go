package backend

import (
	"context"
	"errors"

	"github.com/hollowdrift/claudegate/internal/models"
)

// ErrNotSupported marks a feature the configured backend variant cannot
// serve (for example streaming over the driver-call API, or embeddings).
var ErrNotSupported = errors.New("not supported by this backend")

// Error carries an upstream backend failure message through unchanged.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

// Request is the normalized completion request handed to a driver.
type Request struct {
	// Service is the backend service selector produced by RouteModel.
	Service     string
	Model       string
	Messages    []models.ChatMessage
	Temperature float32
	Functions   []models.FunctionSchema
}

// Driver is the backend capability: given a normalized request, produce a
// completion, or a lazy single-pass sequence of text fragments. The fragment
// channel is closed when the backend finishes; cancelling the context
// releases the backend stream.
type Driver interface {
	Complete(ctx context.Context, req *Request) (string, error)
	CompleteStream(ctx context.Context, req *Request) (<-chan string, error)
}
