package mocks

import (
	"fmt"
	"net/http"

	"github.com/stretchr/testify/mock"
)

type MockHTTPClient struct {
	mock.Mock
}

func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	resp, ok := args.Get(0).(*http.Response)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected *http.Response, got %T", args.Get(0))
	}
	return resp, args.Error(1)
}

// MockCircuitBreaker runs fn directly unless Execute is stubbed to fail.
type MockCircuitBreaker struct {
	mock.Mock
}

func (m *MockCircuitBreaker) Execute(fn func() error) error {
	args := m.Called()
	if err := args.Error(0); err != nil {
		return err
	}
	return fn()
}

func (m *MockCircuitBreaker) State() string {
	return "closed"
}
