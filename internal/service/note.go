package service

import (
	"context"
	"fmt"

	"projectlog/internal/model"

	"gorm.io/gorm"
)

type NoteService struct{ db *gorm.DB }

func NewNoteService(db *gorm.DB) *NoteService { return &NoteService{db: db} }

func (s *NoteService) ListByProject(ctx context.Context, id model.Identity, projectID int) ([]model.ProjectNote, error) {
	if _, err := readableProject(ctx, s.db, id, projectID); err != nil {
		return nil, err
	}
	var notes []model.ProjectNote
	err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at desc").
		Find(&notes).Error
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	if notes == nil {
		notes = []model.ProjectNote{}
	}
	return notes, nil
}

func (s *NoteService) Create(ctx context.Context, id model.Identity, req model.ProjectNoteCreateRequest) (*model.ProjectNote, error) {
	if _, err := writableProject(ctx, s.db, id, req.ProjectID); err != nil {
		return nil, err
	}
	note := model.ProjectNote{ProjectID: req.ProjectID, NoteText: req.NoteText}
	if err := s.db.WithContext(ctx).Create(&note).Error; err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return &note, nil
}

func (s *NoteService) Update(ctx context.Context, id model.Identity, noteID int, req model.ProjectNoteUpdateRequest) error {
	note, err := s.load(ctx, noteID)
	if err != nil {
		return err
	}
	if _, err := writableProject(ctx, s.db, id, note.ProjectID); err != nil {
		return err
	}
	note.NoteText = req.NoteText
	if err := s.db.WithContext(ctx).Save(note).Error; err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	return nil
}

func (s *NoteService) Delete(ctx context.Context, id model.Identity, noteID int) error {
	note, err := s.load(ctx, noteID)
	if err != nil {
		return err
	}
	if _, err := writableProject(ctx, s.db, id, note.ProjectID); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(note).Error; err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

func (s *NoteService) load(ctx context.Context, noteID int) (*model.ProjectNote, error) {
	var note model.ProjectNote
	if err := s.db.WithContext(ctx).First(&note, noteID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("note %d: %w", noteID, ErrNotFound)
		}
		return nil, fmt.Errorf("load note: %w", err)
	}
	return &note, nil
}
