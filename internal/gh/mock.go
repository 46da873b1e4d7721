package gh

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/codemetry/codemetry/internal/testutil"
)

// MockClient is a mock implementation of the Client interface
type MockClient struct {
	mock.Mock
}

// NewMockClient creates a new MockClient
func NewMockClient() *MockClient {
	return &MockClient{}
}

// GetDefaultBranchCommit mock implementation
func (m *MockClient) GetDefaultBranchCommit(ctx context.Context, repo *Repository) (*Commit, error) {
	args := m.Called(ctx, repo)
	return testutil.HandleTwoValueReturn[*Commit](args)
}

// GetCommit mock implementation
func (m *MockClient) GetCommit(ctx context.Context, commitsURLTemplate, sha string) (*Commit, error) {
	args := m.Called(ctx, commitsURLTemplate, sha)
	return testutil.HandleTwoValueReturn[*Commit](args)
}

// GetTree mock implementation
func (m *MockClient) GetTree(ctx context.Context, treeURL string) (*Tree, error) {
	args := m.Called(ctx, treeURL)
	return testutil.HandleTwoValueReturn[*Tree](args)
}

// GetBlob mock implementation
func (m *MockClient) GetBlob(ctx context.Context, blobURL string) (*Blob, error) {
	args := m.Called(ctx, blobURL)
	return testutil.HandleTwoValueReturn[*Blob](args)
}
