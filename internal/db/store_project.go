package db

import (
	"context"
	"fmt"
)

// CreateProject inserts a new project. Names are unique per user.
func (s *store) CreateProject(ctx context.Context, project *Project) error {
	if project.UserID == 0 {
		return ErrMissingUserID
	}
	if err := s.db.WithContext(ctx).Create(project).Error; err != nil {
		return fmt.Errorf("failed to create project %s: %w", project.Name, translateError(err))
	}
	return nil
}

// GetProject retrieves a project by primary key
func (s *store) GetProject(ctx context.Context, id uint) (*Project, error) {
	var project Project
	if err := s.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &project, nil
}

// GetProjectByName retrieves a user's project by name
func (s *store) GetProjectByName(ctx context.Context, userID uint, name string) (*Project, error) {
	var project Project
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(&project).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &project, nil
}

// ListProjects lists a user's projects by name
func (s *store) ListProjects(ctx context.Context, userID uint) ([]*Project, error) {
	var projects []*Project
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&projects).Error
	if err != nil {
		return nil, translateError(err)
	}
	return projects, nil
}

// UpdateProject saves all project fields, including nil-ed HookID and
// updated LastSyncedAt values.
func (s *store) UpdateProject(ctx context.Context, project *Project) error {
	result := s.db.WithContext(ctx).
		Model(&Project{}).
		Where("id = ?", project.ID).
		Select("Name", "Description", "HookID", "LastSyncedAt").
		Updates(project)
	if result.Error != nil {
		return fmt.Errorf("failed to update project %d: %w", project.ID, translateError(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// DeleteProject removes a project and cascades into its mirrored tree
func (s *store) DeleteProject(ctx context.Context, id uint) error {
	return s.WithTx(ctx, func(tx Store) error {
		txs := tx.(*store)

		root, err := txs.GetRootDirectory(ctx, id)
		if err == nil {
			if err := txs.DeleteDirectory(ctx, root.ID); err != nil {
				return err
			}
		} else if err != ErrRecordNotFound {
			return err
		}

		result := txs.db.WithContext(ctx).Delete(&Project{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete project %d: %w", id, translateError(result.Error))
		}
		if result.RowsAffected == 0 {
			return ErrRecordNotFound
		}
		return nil
	})
}
