package db

import "context"

// UserStore manages user and token records
type UserStore interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id uint) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	CreateToken(ctx context.Context, token *Token) error
	ListTokens(ctx context.Context, userID uint) ([]*Token, error)
}

// ProjectStore manages project records
type ProjectStore interface {
	CreateProject(ctx context.Context, project *Project) error
	GetProject(ctx context.Context, id uint) (*Project, error)
	GetProjectByName(ctx context.Context, userID uint, name string) (*Project, error)
	ListProjects(ctx context.Context, userID uint) ([]*Project, error)
	UpdateProject(ctx context.Context, project *Project) error
	DeleteProject(ctx context.Context, id uint) error
}

// TreeStore manages the mirrored directory/file hierarchy.
//
// Directory and file deletes cascade: removing a directory removes its
// files and, transitively, its child directories; removing a file removes
// its metric and visualization rows.
type TreeStore interface {
	CreateDirectory(ctx context.Context, dir *Directory) error
	GetRootDirectory(ctx context.Context, projectID uint) (*Directory, error)
	GetDirectory(ctx context.Context, parentID uint, name string) (*Directory, error)
	GetDirectoryByID(ctx context.Context, id uint) (*Directory, error)
	ListDirectories(ctx context.Context, parentID uint) ([]*Directory, error)
	UpdateDirectoryHash(ctx context.Context, id uint, hash string) error
	DeleteDirectory(ctx context.Context, id uint) error

	CreateFile(ctx context.Context, file *File) error
	GetFile(ctx context.Context, directoryID uint, name string) (*File, error)
	GetFileByID(ctx context.Context, id uint) (*File, error)
	ListFiles(ctx context.Context, directoryID uint) ([]*File, error)
	UpdateFileHash(ctx context.Context, id uint, hash string) error
	DeleteFile(ctx context.Context, id uint) error
}

// MetricsStore manages per-file analysis results.
//
// Replace operations use delete-then-insert semantics: metrics are
// one-to-one (or wholly owned) by their file, and re-analysis overwrites
// the previous result set.
type MetricsStore interface {
	ReplaceRawMetrics(ctx context.Context, metrics *RawMetrics) error
	GetRawMetrics(ctx context.Context, fileID uint) (*RawMetrics, error)

	ReplaceHalsteadMetrics(ctx context.Context, metrics *HalsteadMetrics) error
	GetHalsteadMetrics(ctx context.Context, fileID uint) (*HalsteadMetrics, error)

	ReplaceGraphVisualizations(ctx context.Context, fileID uint, graphs []*GraphVisualization) error
	ListGraphVisualizations(ctx context.Context, fileID uint) ([]*GraphVisualization, error)

	// Per-type deletes drop one metric kind, leaving the others in place
	DeleteRawMetrics(ctx context.Context, fileID uint) error
	DeleteHalsteadMetrics(ctx context.Context, fileID uint) error
	DeleteGraphVisualizations(ctx context.Context, fileID uint) error

	// DeleteFileMetrics removes every metric and visualization row of a file
	DeleteFileMetrics(ctx context.Context, fileID uint) error
}

// Store is the persistence gateway used by the synchronizer and handlers
type Store interface {
	UserStore
	ProjectStore
	TreeStore
	MetricsStore

	// WithTx runs fn inside a single transaction. The Store passed to fn
	// operates on that transaction; an error return rolls everything back.
	WithTx(ctx context.Context, fn func(Store) error) error
}
