package gh

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/codemetry/codemetry/internal/errors"
)

func newTestClient(t *testing.T, handler http.Handler) (Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	client := NewClient(logger, Options{HTTPClient: server.Client()})
	return client, server
}

func TestGetTree(t *testing.T) {
	client, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"sha": "r1",
			"tree": [
				{"path": "main.c", "type": "blob", "sha": "b1", "url": "https://example.test/blob/b1"},
				{"path": "src", "type": "tree", "sha": "t1", "url": "https://example.test/tree/t1"}
			]
		}`))
	}))

	tree, err := client.GetTree(context.Background(), server.URL+"/git/trees/r1")
	require.NoError(t, err)

	assert.Equal(t, "r1", tree.SHA)
	require.Len(t, tree.Entries, 2)
	assert.True(t, tree.Entries[0].IsBlob())
	assert.True(t, tree.Entries[1].IsTree())
	assert.Equal(t, "main.c", tree.Entries[0].Path)
}

func TestGetBlob(t *testing.T) {
	client, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"sha": "b1", "content": "aGVsbG8=", "encoding": "base64", "size": 5}`))
	}))

	blob, err := client.GetBlob(context.Background(), server.URL+"/git/blobs/b1")
	require.NoError(t, err)
	assert.Equal(t, "base64", blob.Encoding)
	assert.Equal(t, "aGVsbG8=", blob.Content)
}

func TestGetCommit(t *testing.T) {
	var requestedPath string
	client, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		_, _ = w.Write([]byte(`{"sha": "c1", "tree": {"sha": "r1", "url": "https://example.test/tree/r1"}}`))
	}))

	commit, err := client.GetCommit(context.Background(), server.URL+"/repos/o/r/git/commits{/sha}", "c1")
	require.NoError(t, err)

	assert.Equal(t, "/repos/o/r/git/commits/c1", requestedPath)
	assert.Equal(t, "c1", commit.SHA)
	assert.Equal(t, "https://example.test/tree/r1", commit.Tree.URL)
}

func TestGetDefaultBranchCommit(t *testing.T) {
	client, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/o/r/branches/main", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"name": "main",
			"commit": {
				"sha": "c1",
				"commit": {"tree": {"sha": "r1", "url": "https://example.test/tree/r1"}}
			}
		}`))
	}))

	repo := &Repository{
		DefaultBranch: "main",
		BranchesURL:   server.URL + "/repos/o/r/branches{/branch}",
	}

	commit, err := client.GetDefaultBranchCommit(context.Background(), repo)
	require.NoError(t, err)
	assert.Equal(t, "c1", commit.SHA)
	assert.Equal(t, "r1", commit.Tree.SHA)
}

func TestGetDefaultBranchCommitMissingBranch(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	_, err := client.GetDefaultBranchCommit(context.Background(), &Repository{BranchesURL: "x{/branch}"})
	require.Error(t, err)
}

func TestRequestFailed(t *testing.T) {
	client, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Not Found"}`))
	}))

	_, err := client.GetTree(context.Background(), server.URL+"/git/trees/missing")
	require.Error(t, err)

	var reqErr *appErrors.RequestFailedError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusNotFound, reqErr.Status)
	assert.Contains(t, reqErr.Body, "Not Found")
}

func TestProviderUnavailable(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	client := NewClient(logger, Options{})

	// Unroutable address: transport failure, not an HTTP status
	_, err := client.GetTree(context.Background(), "http://127.0.0.1:1/tree")
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrProviderUnavailable)
}
