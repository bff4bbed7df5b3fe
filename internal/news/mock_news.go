package news

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockFeed is a mock implementation of Feed using testify/mock.
type MockFeed struct {
	mock.Mock
}

func (m *MockFeed) Fetch(ctx context.Context) ([]Entry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Entry), args.Error(1)
}
