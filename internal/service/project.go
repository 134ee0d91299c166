package service

import (
	"context"
	"fmt"
	"time"

	"projectlog/internal/logger"
	"projectlog/internal/model"

	"gorm.io/gorm"
)

type ProjectService struct {
	db    *gorm.DB
	store *Storage
}

func NewProjectService(db *gorm.DB, store *Storage) *ProjectService {
	return &ProjectService{db: db, store: store}
}

// List returns projects visible to the caller, newest first. Admins and
// observers see everything, users only what they own.
func (s *ProjectService) List(ctx context.Context, id model.Identity) ([]model.ProjectDTO, error) {
	q := s.db.WithContext(ctx).
		Preload("Owner").Preload("Detail").Preload("Notes").Preload("Files")
	if !id.IsAdmin() && !id.IsObserver() {
		q = q.Where("owner_id = ?", id.UserID)
	}

	var projects []model.Project
	if err := q.Order("created_at desc").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	lookups, err := s.loadLookups(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]model.ProjectDTO, 0, len(projects))
	for i := range projects {
		dtos = append(dtos, toProjectDTO(&projects[i], lookups))
	}
	return dtos, nil
}

func (s *ProjectService) Get(ctx context.Context, id model.Identity, projectID int) (*model.ProjectDTO, error) {
	var p model.Project
	err := s.db.WithContext(ctx).
		Preload("Owner").Preload("Detail").Preload("Notes").Preload("Files").
		First(&p, projectID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("project %d: %w", projectID, ErrNotFound)
		}
		return nil, fmt.Errorf("load project: %w", err)
	}
	if err := canRead(id, &p); err != nil {
		return nil, err
	}

	lookups, err := s.loadLookups(ctx)
	if err != nil {
		return nil, err
	}
	dto := toProjectDTO(&p, lookups)
	return &dto, nil
}

func (s *ProjectService) Create(ctx context.Context, id model.Identity, req model.ProjectCreateRequest) (*model.ProjectDTO, error) {
	if err := s.checkRefs(ctx, req.TypeID, req.StatusID); err != nil {
		return nil, err
	}

	p := model.Project{
		Title:            req.Title,
		ShortDescription: req.ShortDescription,
		TypeID:           req.TypeID,
		StatusID:         req.StatusID,
		OwnerID:          id.UserID,
	}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	logger.Info("project.created", "id", p.ID, "owner", id.UserID)
	return s.Get(ctx, id, p.ID)
}

func (s *ProjectService) Update(ctx context.Context, id model.Identity, projectID int, req model.ProjectUpdateRequest) error {
	p, err := writableProject(ctx, s.db, id, projectID)
	if err != nil {
		return err
	}
	if err := s.checkRefs(ctx, req.TypeID, req.StatusID); err != nil {
		return err
	}

	// Only an admin can move a project to another owner.
	if id.IsAdmin() && req.OwnerID != nil && *req.OwnerID != p.OwnerID {
		var owner model.User
		if err := s.db.WithContext(ctx).First(&owner, *req.OwnerID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("owner %d: %w", *req.OwnerID, ErrInvalid)
			}
			return fmt.Errorf("check owner: %w", err)
		}
		p.OwnerID = owner.ID
	}

	now := time.Now().UTC()
	p.Title = req.Title
	p.ShortDescription = req.ShortDescription
	p.TypeID = req.TypeID
	p.StatusID = req.StatusID
	p.UpdatedAt = &now

	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

// Delete removes the project and everything hanging off it: detail,
// notes, file rows, and the stored file bytes. The row deletes run in a
// single transaction; disk cleanup happens after commit.
func (s *ProjectService) Delete(ctx context.Context, id model.Identity, projectID int) error {
	p, err := writableProject(ctx, s.db, id, projectID)
	if err != nil {
		return err
	}

	var files []model.ProjectFile
	if err := s.db.WithContext(ctx).Where("project_id = ?", projectID).Find(&files).Error; err != nil {
		return fmt.Errorf("list project files: %w", err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Delete(&model.ProjectDetail{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&model.ProjectNote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&model.ProjectFile{}).Error; err != nil {
			return err
		}
		return tx.Delete(p).Error
	})
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	for _, f := range files {
		if err := s.store.Remove(f.StorageKey); err != nil {
			logger.Warn("file cleanup failed", "key", f.StorageKey, "err", err)
		}
	}
	logger.Info("project.deleted", "id", projectID, "by", id.UserID)
	return nil
}

func (s *ProjectService) checkRefs(ctx context.Context, typeID, statusID int) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.ProjectType{}).Where("id = ?", typeID).Count(&count).Error; err != nil {
		return fmt.Errorf("check type: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("type %d: %w", typeID, ErrInvalid)
	}
	if err := s.db.WithContext(ctx).Model(&model.ProjectStatus{}).Where("id = ?", statusID).Count(&count).Error; err != nil {
		return fmt.Errorf("check status: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("status %d: %w", statusID, ErrInvalid)
	}
	return nil
}

type projectLookups struct {
	types      map[int]string
	statuses   map[int]string
	categories map[int]string
}

func (s *ProjectService) loadLookups(ctx context.Context) (*projectLookups, error) {
	l := &projectLookups{
		types:      map[int]string{},
		statuses:   map[int]string{},
		categories: map[int]string{},
	}
	var types []model.ProjectType
	if err := s.db.WithContext(ctx).Find(&types).Error; err != nil {
		return nil, fmt.Errorf("load types: %w", err)
	}
	for _, t := range types {
		l.types[t.ID] = t.Value
	}
	var statuses []model.ProjectStatus
	if err := s.db.WithContext(ctx).Find(&statuses).Error; err != nil {
		return nil, fmt.Errorf("load statuses: %w", err)
	}
	for _, st := range statuses {
		l.statuses[st.ID] = st.Value
	}
	var cats []model.ProjectFileCategory
	if err := s.db.WithContext(ctx).Find(&cats).Error; err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	for _, c := range cats {
		l.categories[c.ID] = c.Name
	}
	return l, nil
}

func toProjectDTO(p *model.Project, l *projectLookups) model.ProjectDTO {
	dto := model.ProjectDTO{
		ID:               p.ID,
		Title:            p.Title,
		ShortDescription: p.ShortDescription,
		TypeID:           p.TypeID,
		Type:             l.types[p.TypeID],
		StatusID:         p.StatusID,
		Status:           l.statuses[p.StatusID],
		OwnerID:          p.OwnerID,
		OwnerUsername:    p.Owner.Username,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
		Detail:           p.Detail,
		Notes:            p.Notes,
		Files:            make([]model.ProjectFileDTO, 0, len(p.Files)),
	}
	if dto.Notes == nil {
		dto.Notes = []model.ProjectNote{}
	}
	for _, f := range p.Files {
		dto.Files = append(dto.Files, toFileDTO(&f, l.categories[f.CategoryID]))
	}
	return dto
}

func toFileDTO(f *model.ProjectFile, categoryName string) model.ProjectFileDTO {
	return model.ProjectFileDTO{
		ID:           f.ID,
		ProjectID:    f.ProjectID,
		FileName:     f.FileName,
		Description:  f.Description,
		CategoryID:   f.CategoryID,
		CategoryName: categoryName,
		UploadedAt:   f.UploadedAt,
	}
}
