package gh

// Tree entry types as reported by the provider
const (
	EntryTypeBlob = "blob"
	EntryTypeTree = "tree"
)

// Repository describes the webhook payload's repository: the default
// branch plus the URL templates the provider hands out for reaching
// related resources.
type Repository struct {
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	DefaultBranch string `json:"default_branch"`
	BranchesURL   string `json:"branches_url"`    // .../branches{/branch}
	GitCommitsURL string `json:"git_commits_url"` // .../git/commits{/sha}
}

// Commit is a git commit object holding a reference to its root tree
type Commit struct {
	SHA  string     `json:"sha"`
	Tree CommitTree `json:"tree"`
}

// CommitTree references the root tree of a commit
type CommitTree struct {
	SHA string `json:"sha"`
	URL string `json:"url"`
}

// Tree is one level of a repository content tree
type Tree struct {
	SHA       string      `json:"sha"`
	URL       string      `json:"url"`
	Entries   []TreeEntry `json:"tree"`
	Truncated bool        `json:"truncated"`
}

// TreeEntry is a single node in a tree listing. The provider discriminates
// entries with a type field; IsBlob/IsTree replace stringly-typed dispatch
// at call sites.
type TreeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"`
	SHA  string `json:"sha"`
	URL  string `json:"url"`
}

// IsBlob reports whether the entry is a file node
func (e TreeEntry) IsBlob() bool {
	return e.Type == EntryTypeBlob
}

// IsTree reports whether the entry is a directory node
func (e TreeEntry) IsTree() bool {
	return e.Type == EntryTypeTree
}

// Blob is transport-encoded file content
type Blob struct {
	SHA      string `json:"sha"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
	Size     int    `json:"size"`
}

// branchResponse is the provider's branch resource. The git commit object
// is nested inside the branch head commit summary.
type branchResponse struct {
	Name   string `json:"name"`
	Commit struct {
		SHA    string `json:"sha"`
		Commit Commit `json:"commit"`
	} `json:"commit"`
}
