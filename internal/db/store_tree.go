package db

import (
	"context"
	"fmt"
)

// CreateDirectory inserts a directory node. A nil Name marks the project
// root; a project may have at most one root, and every other directory
// needs a parent.
func (s *store) CreateDirectory(ctx context.Context, dir *Directory) error {
	if dir.ProjectID == 0 {
		return ErrMissingProjectID
	}
	if dir.Name == nil {
		existing, err := s.GetRootDirectory(ctx, dir.ProjectID)
		if err != nil && err != ErrRecordNotFound {
			return err
		}
		if existing != nil {
			return ErrRootExists
		}
	} else if dir.ParentID == nil {
		return ErrMissingParentID
	}
	if err := s.db.WithContext(ctx).Create(dir).Error; err != nil {
		return fmt.Errorf("failed to create directory: %w", translateError(err))
	}
	return nil
}

// GetRootDirectory retrieves the nameless root directory of a project
func (s *store) GetRootDirectory(ctx context.Context, projectID uint) (*Directory, error) {
	var dir Directory
	err := s.db.WithContext(ctx).
		Where("project_id = ? AND name IS NULL", projectID).
		First(&dir).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &dir, nil
}

// GetDirectory retrieves a named child directory under a parent
func (s *store) GetDirectory(ctx context.Context, parentID uint, name string) (*Directory, error) {
	var dir Directory
	err := s.db.WithContext(ctx).
		Where("parent_id = ? AND name = ?", parentID, name).
		First(&dir).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &dir, nil
}

// GetDirectoryByID retrieves a directory by primary key
func (s *store) GetDirectoryByID(ctx context.Context, id uint) (*Directory, error) {
	var dir Directory
	if err := s.db.WithContext(ctx).First(&dir, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &dir, nil
}

// ListDirectories lists the child directories of a parent by name
func (s *store) ListDirectories(ctx context.Context, parentID uint) ([]*Directory, error) {
	var dirs []*Directory
	err := s.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("name ASC").
		Find(&dirs).Error
	if err != nil {
		return nil, translateError(err)
	}
	return dirs, nil
}

// UpdateDirectoryHash stamps a directory with its new remote tree hash
func (s *store) UpdateDirectoryHash(ctx context.Context, id uint, hash string) error {
	result := s.db.WithContext(ctx).
		Model(&Directory{}).
		Where("id = ?", id).
		Update("git_hash", hash)
	if result.Error != nil {
		return fmt.Errorf("failed to update directory %d hash: %w", id, translateError(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// DeleteDirectory removes a directory and, recursively, everything under
// it. SQLite foreign keys are declared with ON DELETE CASCADE, but the
// explicit walk also clears metric rows for files in nested directories
// and keeps delete behavior independent of pragma state.
func (s *store) DeleteDirectory(ctx context.Context, id uint) error {
	children, err := s.ListDirectories(ctx, id)
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := s.DeleteDirectory(ctx, child.ID); err != nil {
			return err
		}
	}

	files, err := s.ListFiles(ctx, id)
	if err != nil {
		return err
	}
	for _, file := range files {
		if err := s.DeleteFile(ctx, file.ID); err != nil {
			return err
		}
	}

	result := s.db.WithContext(ctx).Delete(&Directory{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete directory %d: %w", id, translateError(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// CreateFile inserts a file node, unique per (directory, name)
func (s *store) CreateFile(ctx context.Context, file *File) error {
	if file.DirectoryID == 0 {
		return ErrMissingParentID
	}
	if err := s.db.WithContext(ctx).Create(file).Error; err != nil {
		return fmt.Errorf("failed to create file %s: %w", file.Name, translateError(err))
	}
	return nil
}

// GetFile retrieves a file by its directory and name
func (s *store) GetFile(ctx context.Context, directoryID uint, name string) (*File, error) {
	var file File
	err := s.db.WithContext(ctx).
		Where("directory_id = ? AND name = ?", directoryID, name).
		First(&file).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &file, nil
}

// GetFileByID retrieves a file by primary key
func (s *store) GetFileByID(ctx context.Context, id uint) (*File, error) {
	var file File
	if err := s.db.WithContext(ctx).First(&file, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &file, nil
}

// ListFiles lists the files of a directory by name
func (s *store) ListFiles(ctx context.Context, directoryID uint) ([]*File, error) {
	var files []*File
	err := s.db.WithContext(ctx).
		Where("directory_id = ?", directoryID).
		Order("name ASC").
		Find(&files).Error
	if err != nil {
		return nil, translateError(err)
	}
	return files, nil
}

// UpdateFileHash stamps a file with its new remote blob hash
func (s *store) UpdateFileHash(ctx context.Context, id uint, hash string) error {
	result := s.db.WithContext(ctx).
		Model(&File{}).
		Where("id = ?", id).
		Update("git_hash", hash)
	if result.Error != nil {
		return fmt.Errorf("failed to update file %d hash: %w", id, translateError(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// DeleteFile removes a file together with its metric and graph rows
func (s *store) DeleteFile(ctx context.Context, id uint) error {
	if err := s.DeleteFileMetrics(ctx, id); err != nil {
		return err
	}
	result := s.db.WithContext(ctx).Delete(&File{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete file %d: %w", id, translateError(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
