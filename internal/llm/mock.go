package llm

import (
	"context"
	"sync"
)

// Mock is a scripted provider for tests. Responses are returned in
// order; the last one repeats once the script runs out.
type Mock struct {
	Responses []string
	Err       error

	mu       sync.Mutex
	calls    int
	Requests []*CompletionRequest
}

func (m *Mock) Name() string {
	return "mock"
}

func (m *Mock) Ping(ctx context.Context) error {
	return m.Err
}

func (m *Mock) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Requests = append(m.Requests, req)
	if m.Err != nil {
		return nil, m.Err
	}

	content := ""
	if len(m.Responses) > 0 {
		i := m.calls
		if i >= len(m.Responses) {
			i = len(m.Responses) - 1
		}
		content = m.Responses[i]
	}
	m.calls++

	return &CompletionResponse{
		Content:      content,
		Model:        req.Model,
		FinishReason: "stop",
	}, nil
}

// Calls reports how many completions have been requested.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
