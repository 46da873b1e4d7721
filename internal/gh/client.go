package gh

import "context"

// Client defines the interface for source provider operations
type Client interface {
	// GetDefaultBranchCommit resolves the repository's branches URL
	// template against its default branch and returns the head commit.
	GetDefaultBranchCommit(ctx context.Context, repo *Repository) (*Commit, error)

	// GetCommit resolves the commits URL template with the given SHA and
	// returns that commit object.
	GetCommit(ctx context.Context, commitsURLTemplate, sha string) (*Commit, error)

	// GetTree retrieves one level of a tree listing at the given URL.
	GetTree(ctx context.Context, treeURL string) (*Tree, error)

	// GetBlob retrieves transport-encoded blob content at the given URL.
	GetBlob(ctx context.Context, blobURL string) (*Blob, error)
}
