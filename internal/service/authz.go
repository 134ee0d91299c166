package service

import (
	"context"
	"fmt"

	"projectlog/internal/model"

	"gorm.io/gorm"
)

// All project-scoped access decisions go through these two guards.
// The ordering contract is fixed repo-wide: callers resolve existence
// first (not found), then rights (forbidden), so a 403 always means
// "exists but not yours".

func canRead(id model.Identity, p *model.Project) error {
	if id.IsAdmin() || id.IsObserver() || p.OwnerID == id.UserID {
		return nil
	}
	return ErrForbidden
}

func canWrite(id model.Identity, p *model.Project) error {
	if id.IsAdmin() {
		return nil
	}
	if id.Role == model.RoleUser && p.OwnerID == id.UserID {
		return nil
	}
	return ErrForbidden
}

// loadProject resolves a project id or reports not found.
func loadProject(ctx context.Context, db *gorm.DB, projectID int) (*model.Project, error) {
	var p model.Project
	if err := db.WithContext(ctx).First(&p, projectID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("project %d: %w", projectID, ErrNotFound)
		}
		return nil, fmt.Errorf("load project: %w", err)
	}
	return &p, nil
}

func readableProject(ctx context.Context, db *gorm.DB, id model.Identity, projectID int) (*model.Project, error) {
	p, err := loadProject(ctx, db, projectID)
	if err != nil {
		return nil, err
	}
	if err := canRead(id, p); err != nil {
		return nil, err
	}
	return p, nil
}

func writableProject(ctx context.Context, db *gorm.DB, id model.Identity, projectID int) (*model.Project, error) {
	p, err := loadProject(ctx, db, projectID)
	if err != nil {
		return nil, err
	}
	if err := canWrite(id, p); err != nil {
		return nil, err
	}
	return p, nil
}
