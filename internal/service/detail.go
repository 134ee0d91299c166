package service

import (
	"context"
	"fmt"

	"projectlog/internal/model"

	"gorm.io/gorm"
)

type DetailService struct{ db *gorm.DB }

func NewDetailService(db *gorm.DB) *DetailService { return &DetailService{db: db} }

func (s *DetailService) Get(ctx context.Context, id model.Identity, projectID int) (*model.ProjectDetail, error) {
	if _, err := readableProject(ctx, s.db, id, projectID); err != nil {
		return nil, err
	}
	var d model.ProjectDetail
	if err := s.db.WithContext(ctx).First(&d, "project_id = ?", projectID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("detail for project %d: %w", projectID, ErrNotFound)
		}
		return nil, fmt.Errorf("load detail: %w", err)
	}
	return &d, nil
}

// Create fails with a conflict when the project already has a detail:
// the relation is strictly one-to-one.
func (s *DetailService) Create(ctx context.Context, id model.Identity, req model.ProjectDetailCreateRequest) (*model.ProjectDetail, error) {
	if _, err := writableProject(ctx, s.db, id, req.ProjectID); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&model.ProjectDetail{}).Where("project_id = ?", req.ProjectID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check detail: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("detail for project %d exists: %w", req.ProjectID, ErrConflict)
	}

	d := model.ProjectDetail{
		ProjectID:           req.ProjectID,
		FullDescription:     req.FullDescription,
		KnownBugs:           req.KnownBugs,
		ArchitectureSummary: req.ArchitectureSummary,
	}
	if err := s.db.WithContext(ctx).Create(&d).Error; err != nil {
		return nil, fmt.Errorf("create detail: %w", err)
	}
	return &d, nil
}

func (s *DetailService) Update(ctx context.Context, id model.Identity, projectID int, req model.ProjectDetailUpdateRequest) error {
	if _, err := writableProject(ctx, s.db, id, projectID); err != nil {
		return err
	}
	var d model.ProjectDetail
	if err := s.db.WithContext(ctx).First(&d, "project_id = ?", projectID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("detail for project %d: %w", projectID, ErrNotFound)
		}
		return fmt.Errorf("load detail: %w", err)
	}

	d.FullDescription = req.FullDescription
	d.KnownBugs = req.KnownBugs
	d.ArchitectureSummary = req.ArchitectureSummary
	if err := s.db.WithContext(ctx).Save(&d).Error; err != nil {
		return fmt.Errorf("update detail: %w", err)
	}
	return nil
}
