package llm

import "context"

// MockClient returns a canned reply for every call. Useful for tests and for
// running the stack without model credentials.
type MockClient struct {
	Reply string
}

func NewMockClient(reply string) *MockClient {
	if reply == "" {
		reply = "mock reply"
	}
	return &MockClient{Reply: reply}
}

func (c *MockClient) Generate(_ context.Context, _ string) (string, error) {
	return c.Reply, nil
}

func (c *MockClient) Answer(_ context.Context, _, _ string) (string, error) {
	return c.Reply, nil
}

func (c *MockClient) ModelName() string {
	return "mock"
}
