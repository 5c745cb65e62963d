package mocks

import (
	"context"

	"github.com/hollowdrift/claudegate/internal/backend"
)

// MockDriver implements backend.Driver for testing
type MockDriver struct {
	CompleteFunc       func(ctx context.Context, req *backend.Request) (string, error)
	CompleteStreamFunc func(ctx context.Context, req *backend.Request) (<-chan string, error)
}

func (m *MockDriver) Complete(ctx context.Context, req *backend.Request) (string, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}
	return "", nil
}

func (m *MockDriver) CompleteStream(ctx context.Context, req *backend.Request) (<-chan string, error) {
	if m.CompleteStreamFunc != nil {
		return m.CompleteStreamFunc(ctx, req)
	}
	ch := make(chan string)
	close(ch)
	return ch, nil
}
