package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueAutofill(profileID, itemID int64) error {
	args := m.Called(profileID, itemID)
	return args.Error(0)
}
