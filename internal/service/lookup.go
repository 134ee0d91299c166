package service

import (
	"context"
	"fmt"

	"projectlog/internal/model"

	"gorm.io/gorm"
)

// LookupService manages the three admin-editable reference tables:
// project types, project statuses, and file categories. Deleting a value
// still referenced by rows is rejected, not cascaded.
type LookupService struct{ db *gorm.DB }

func NewLookupService(db *gorm.DB) *LookupService { return &LookupService{db: db} }

func (s *LookupService) Types(ctx context.Context) ([]model.ProjectType, error) {
	var out []model.ProjectType
	if err := s.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list types: %w", err)
	}
	return out, nil
}

func (s *LookupService) TypeByID(ctx context.Context, id int) (*model.ProjectType, error) {
	var t model.ProjectType
	if err := s.db.WithContext(ctx).First(&t, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("type %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("load type: %w", err)
	}
	return &t, nil
}

func (s *LookupService) CreateType(ctx context.Context, value string) (*model.ProjectType, error) {
	if err := s.uniqueValue(ctx, &model.ProjectType{}, "value", value, 0); err != nil {
		return nil, err
	}
	t := model.ProjectType{Value: value}
	if err := s.db.WithContext(ctx).Create(&t).Error; err != nil {
		return nil, fmt.Errorf("create type: %w", err)
	}
	return &t, nil
}

func (s *LookupService) UpdateType(ctx context.Context, id int, value string) error {
	t, err := s.TypeByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.uniqueValue(ctx, &model.ProjectType{}, "value", value, id); err != nil {
		return err
	}
	t.Value = value
	if err := s.db.WithContext(ctx).Save(t).Error; err != nil {
		return fmt.Errorf("update type: %w", err)
	}
	return nil
}

func (s *LookupService) DeleteType(ctx context.Context, id int) error {
	t, err := s.TypeByID(ctx, id)
	if err != nil {
		return err
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Project{}).Where("type_id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("check type usage: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("type %d in use by %d projects: %w", id, count, ErrConflict)
	}
	if err := s.db.WithContext(ctx).Delete(t).Error; err != nil {
		return fmt.Errorf("delete type: %w", err)
	}
	return nil
}

func (s *LookupService) Statuses(ctx context.Context) ([]model.ProjectStatus, error) {
	var out []model.ProjectStatus
	if err := s.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list statuses: %w", err)
	}
	return out, nil
}

func (s *LookupService) StatusByID(ctx context.Context, id int) (*model.ProjectStatus, error) {
	var st model.ProjectStatus
	if err := s.db.WithContext(ctx).First(&st, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("status %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("load status: %w", err)
	}
	return &st, nil
}

func (s *LookupService) CreateStatus(ctx context.Context, value string) (*model.ProjectStatus, error) {
	if err := s.uniqueValue(ctx, &model.ProjectStatus{}, "value", value, 0); err != nil {
		return nil, err
	}
	st := model.ProjectStatus{Value: value}
	if err := s.db.WithContext(ctx).Create(&st).Error; err != nil {
		return nil, fmt.Errorf("create status: %w", err)
	}
	return &st, nil
}

func (s *LookupService) UpdateStatus(ctx context.Context, id int, value string) error {
	st, err := s.StatusByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.uniqueValue(ctx, &model.ProjectStatus{}, "value", value, id); err != nil {
		return err
	}
	st.Value = value
	if err := s.db.WithContext(ctx).Save(st).Error; err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	return nil
}

func (s *LookupService) DeleteStatus(ctx context.Context, id int) error {
	st, err := s.StatusByID(ctx, id)
	if err != nil {
		return err
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Project{}).Where("status_id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("check status usage: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("status %d in use by %d projects: %w", id, count, ErrConflict)
	}
	if err := s.db.WithContext(ctx).Delete(st).Error; err != nil {
		return fmt.Errorf("delete status: %w", err)
	}
	return nil
}

func (s *LookupService) Categories(ctx context.Context) ([]model.ProjectFileCategory, error) {
	var out []model.ProjectFileCategory
	if err := s.db.WithContext(ctx).Order("name").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

func (s *LookupService) CreateCategory(ctx context.Context, name string) (*model.ProjectFileCategory, error) {
	if err := s.uniqueValue(ctx, &model.ProjectFileCategory{}, "name", name, 0); err != nil {
		return nil, err
	}
	c := model.ProjectFileCategory{Name: name}
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &c, nil
}

func (s *LookupService) UpdateCategory(ctx context.Context, id int, name string) error {
	var c model.ProjectFileCategory
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("category %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("load category: %w", err)
	}
	if err := s.uniqueValue(ctx, &model.ProjectFileCategory{}, "name", name, id); err != nil {
		return err
	}
	c.Name = name
	if err := s.db.WithContext(ctx).Save(&c).Error; err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

func (s *LookupService) DeleteCategory(ctx context.Context, id int) error {
	var c model.ProjectFileCategory
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("category %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("load category: %w", err)
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.ProjectFile{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("check category usage: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("category %d in use by %d files: %w", id, count, ErrConflict)
	}
	if err := s.db.WithContext(ctx).Delete(&c).Error; err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (s *LookupService) uniqueValue(ctx context.Context, probe any, col, value string, excludeID int) error {
	q := s.db.WithContext(ctx).Model(probe).Where(col+" = ?", value)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return fmt.Errorf("check %s: %w", col, err)
	}
	if count > 0 {
		return fmt.Errorf("%s %q taken: %w", col, value, ErrConflict)
	}
	return nil
}
