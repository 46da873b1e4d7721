package db

import (
	"context"
	"fmt"
)

// ReplaceRawMetrics overwrites the raw metrics of a file
func (s *store) ReplaceRawMetrics(ctx context.Context, metrics *RawMetrics) error {
	if metrics.FileID == 0 {
		return ErrMissingFileID
	}
	tdb := s.db.WithContext(ctx)
	if err := tdb.Where("file_id = ?", metrics.FileID).Delete(&RawMetrics{}).Error; err != nil {
		return fmt.Errorf("failed to clear raw metrics for file %d: %w", metrics.FileID, translateError(err))
	}
	if err := tdb.Create(metrics).Error; err != nil {
		return fmt.Errorf("failed to store raw metrics for file %d: %w", metrics.FileID, translateError(err))
	}
	return nil
}

// GetRawMetrics retrieves the raw metrics of a file
func (s *store) GetRawMetrics(ctx context.Context, fileID uint) (*RawMetrics, error) {
	var metrics RawMetrics
	err := s.db.WithContext(ctx).Where("file_id = ?", fileID).First(&metrics).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &metrics, nil
}

// ReplaceHalsteadMetrics overwrites the Halstead metrics of a file
func (s *store) ReplaceHalsteadMetrics(ctx context.Context, metrics *HalsteadMetrics) error {
	if metrics.FileID == 0 {
		return ErrMissingFileID
	}
	tdb := s.db.WithContext(ctx)
	if err := tdb.Where("file_id = ?", metrics.FileID).Delete(&HalsteadMetrics{}).Error; err != nil {
		return fmt.Errorf("failed to clear halstead metrics for file %d: %w", metrics.FileID, translateError(err))
	}
	if err := tdb.Create(metrics).Error; err != nil {
		return fmt.Errorf("failed to store halstead metrics for file %d: %w", metrics.FileID, translateError(err))
	}
	return nil
}

// GetHalsteadMetrics retrieves the Halstead metrics of a file
func (s *store) GetHalsteadMetrics(ctx context.Context, fileID uint) (*HalsteadMetrics, error) {
	var metrics HalsteadMetrics
	err := s.db.WithContext(ctx).Where("file_id = ?", fileID).First(&metrics).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &metrics, nil
}

// ReplaceGraphVisualizations overwrites the graph rows of a file. An empty
// slice clears them without inserting.
func (s *store) ReplaceGraphVisualizations(ctx context.Context, fileID uint, graphs []*GraphVisualization) error {
	if fileID == 0 {
		return ErrMissingFileID
	}
	tdb := s.db.WithContext(ctx)
	if err := tdb.Where("file_id = ?", fileID).Delete(&GraphVisualization{}).Error; err != nil {
		return fmt.Errorf("failed to clear graphs for file %d: %w", fileID, translateError(err))
	}
	for _, graph := range graphs {
		graph.FileID = fileID
		if err := tdb.Create(graph).Error; err != nil {
			return fmt.Errorf("failed to store graph %s for file %d: %w", graph.FunctionName, fileID, translateError(err))
		}
	}
	return nil
}

// ListGraphVisualizations lists the graph rows of a file by function name
func (s *store) ListGraphVisualizations(ctx context.Context, fileID uint) ([]*GraphVisualization, error) {
	var graphs []*GraphVisualization
	err := s.db.WithContext(ctx).
		Where("file_id = ?", fileID).
		Order("function_name ASC").
		Find(&graphs).Error
	if err != nil {
		return nil, translateError(err)
	}
	return graphs, nil
}

// DeleteRawMetrics removes the raw metric rows of a file
func (s *store) DeleteRawMetrics(ctx context.Context, fileID uint) error {
	if err := s.db.WithContext(ctx).Where("file_id = ?", fileID).Delete(&RawMetrics{}).Error; err != nil {
		return fmt.Errorf("failed to delete raw metrics for file %d: %w", fileID, translateError(err))
	}
	return nil
}

// DeleteHalsteadMetrics removes the Halstead metric rows of a file
func (s *store) DeleteHalsteadMetrics(ctx context.Context, fileID uint) error {
	if err := s.db.WithContext(ctx).Where("file_id = ?", fileID).Delete(&HalsteadMetrics{}).Error; err != nil {
		return fmt.Errorf("failed to delete halstead metrics for file %d: %w", fileID, translateError(err))
	}
	return nil
}

// DeleteGraphVisualizations removes the graph rows of a file
func (s *store) DeleteGraphVisualizations(ctx context.Context, fileID uint) error {
	if err := s.db.WithContext(ctx).Where("file_id = ?", fileID).Delete(&GraphVisualization{}).Error; err != nil {
		return fmt.Errorf("failed to delete graphs for file %d: %w", fileID, translateError(err))
	}
	return nil
}

// DeleteFileMetrics removes every metric and graph row of a file
func (s *store) DeleteFileMetrics(ctx context.Context, fileID uint) error {
	if err := s.DeleteRawMetrics(ctx, fileID); err != nil {
		return err
	}
	if err := s.DeleteHalsteadMetrics(ctx, fileID); err != nil {
		return err
	}
	return s.DeleteGraphVisualizations(ctx, fileID)
}
