package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/pharmaflash/internal/pubchem"
)

// MockPubChemClient is a mock implementation of pubchem.ClientInterface
type MockPubChemClient struct {
	mock.Mock
}

func (m *MockPubChemClient) Lookup(ctx context.Context, name string) (*pubchem.Compound, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pubchem.Compound), args.Error(1)
}
