package services

import (
	"context"
	"net/url"

	"github.com/stretchr/testify/mock"
)

type MockRevalidator struct {
	mock.Mock
}

func (m *MockRevalidator) Revalidate(ctx context.Context, path string) {
	m.Called(ctx, path)
}

type MockSignInProvider struct {
	mock.Mock
}

func (m *MockSignInProvider) SignIn(ctx context.Context, provider string, form url.Values) (*Session, error) {
	args := m.Called(ctx, provider, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Session), args.Error(1)
}
