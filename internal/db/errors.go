package db

import "errors"

// Sentinel errors following internal/errors/errors.go conventions
var (
	// ErrEmptyPath is returned when database path is empty
	ErrEmptyPath = errors.New("database path is required")

	// ErrRecordNotFound is returned when a requested record does not exist
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateName is returned when a unique name constraint is violated
	ErrDuplicateName = errors.New("duplicate name")

	// ErrRootExists is returned when creating a second root directory for a project
	ErrRootExists = errors.New("project already has a root directory")

	// ErrMissingProjectID is returned when creating a directory without a project reference
	ErrMissingProjectID = errors.New("project_id is required")

	// ErrMissingParentID is returned when creating a named directory without a parent
	ErrMissingParentID = errors.New("parent_id is required for non-root directories")

	// ErrMissingFileID is returned when persisting metric rows without a file reference
	ErrMissingFileID = errors.New("file_id is required")

	// ErrMissingUserID is returned when persisting user-owned rows without a user reference
	ErrMissingUserID = errors.New("user_id is required")
)
