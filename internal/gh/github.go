// Package gh provides the client for the hosted source provider's REST API.
package gh

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	appErrors "github.com/codemetry/codemetry/internal/errors"
	"github.com/codemetry/codemetry/internal/logging"
)

// Options configures the HTTP client behavior
type Options struct {
	// Token authenticates requests; empty means anonymous access.
	Token string
	// RequestTimeout bounds each outbound call. Zero disables the bound.
	RequestTimeout time.Duration
	// RequestsPerSecond throttles outbound calls. Zero disables throttling.
	RequestsPerSecond float64
	// HTTPClient overrides the transport, used by tests.
	HTTPClient *http.Client
}

// githubClient implements the Client interface against the REST API
type githubClient struct {
	httpClient *http.Client
	token      string
	timeout    time.Duration
	limiter    *rate.Limiter
	logger     *logrus.Entry
}

// NewClient creates a source provider client.
func NewClient(logger *logrus.Logger, opts Options) Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	return &githubClient{
		httpClient: httpClient,
		token:      opts.Token,
		timeout:    opts.RequestTimeout,
		limiter:    limiter,
		logger:     logging.WithComponent(logger, "github_client"),
	}
}

// GetDefaultBranchCommit resolves the branches URL template against the
// repository's default branch and returns the branch head commit.
func (g *githubClient) GetDefaultBranchCommit(ctx context.Context, repo *Repository) (*Commit, error) {
	if repo.DefaultBranch == "" {
		return nil, appErrors.RequiredFieldError("default_branch")
	}

	url, err := ExpandURLTemplate(repo.BranchesURL, map[string]string{"branch": repo.DefaultBranch})
	if err != nil {
		return nil, appErrors.WrapWithContext(err, "resolve branch URL")
	}

	var branch branchResponse
	if err := g.getJSON(ctx, url, &branch); err != nil {
		return nil, appErrors.WrapWithContext(err, "fetch default branch")
	}

	commit := branch.Commit.Commit
	commit.SHA = branch.Commit.SHA
	return &commit, nil
}

// GetCommit resolves the commits URL template with the given SHA and
// retrieves that commit object.
func (g *githubClient) GetCommit(ctx context.Context, commitsURLTemplate, sha string) (*Commit, error) {
	url, err := ExpandURLTemplate(commitsURLTemplate, map[string]string{"sha": sha})
	if err != nil {
		return nil, appErrors.WrapWithContext(err, "resolve commit URL")
	}

	var commit Commit
	if err := g.getJSON(ctx, url, &commit); err != nil {
		return nil, appErrors.WrapWithContext(err, "fetch commit")
	}

	return &commit, nil
}

// GetTree retrieves one level of a tree listing
func (g *githubClient) GetTree(ctx context.Context, treeURL string) (*Tree, error) {
	var tree Tree
	if err := g.getJSON(ctx, treeURL, &tree); err != nil {
		return nil, appErrors.WrapWithContext(err, "fetch tree")
	}
	return &tree, nil
}

// GetBlob retrieves blob content plus its transport encoding
func (g *githubClient) GetBlob(ctx context.Context, blobURL string) (*Blob, error) {
	var blob Blob
	if err := g.getJSON(ctx, blobURL, &blob); err != nil {
		return nil, appErrors.WrapWithContext(err, "fetch blob")
	}
	return &blob, nil
}

// getJSON performs a GET request and decodes the JSON response.
//
// Transport failures and timeouts surface as ErrProviderUnavailable;
// parseable non-2xx responses surface as RequestFailedError.
func (g *githubClient) getJSON(ctx context.Context, url string, out interface{}) error {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %v", appErrors.ErrProviderUnavailable, err)
		}
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	g.logger.WithField(logging.FieldURL, url).Debug("Fetching provider resource")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrProviderUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		g.logger.WithFields(logrus.Fields{
			logging.FieldURL:    url,
			logging.FieldStatus: resp.StatusCode,
		}).Error("Provider request failed")
		return &appErrors.RequestFailedError{Status: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}

	return nil
}
