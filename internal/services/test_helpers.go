package services

import (
	"github.com/stretchr/testify/mock"
)

// MockHub is a mock WebSocket hub for health and snapshot tests.
type MockHub struct {
	mock.Mock
}

func (m *MockHub) Broadcast(messageType string, data interface{}) {
	m.Called(messageType, data)
}

func (m *MockHub) ClientCount() int {
	args := m.Called()
	return args.Int(0)
}
