package wiki

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockClient is a mock implementation of Client using testify/mock.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) Lookup(ctx context.Context, title string) (Page, error) {
	args := m.Called(ctx, title)
	return args.Get(0).(Page), args.Error(1)
}
