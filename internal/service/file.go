package service

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"projectlog/internal/logger"
	"projectlog/internal/model"

	"gorm.io/gorm"
)

type FileService struct {
	db    *gorm.DB
	store *Storage
}

func NewFileService(db *gorm.DB, store *Storage) *FileService {
	return &FileService{db: db, store: store}
}

func (s *FileService) ListByProject(ctx context.Context, id model.Identity, projectID int) ([]model.ProjectFileDTO, error) {
	if _, err := readableProject(ctx, s.db, id, projectID); err != nil {
		return nil, err
	}
	var files []model.ProjectFile
	err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("uploaded_at desc").
		Find(&files).Error
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	dtos := make([]model.ProjectFileDTO, 0, len(files))
	for i := range files {
		dtos = append(dtos, toFileDTO(&files[i], s.categoryName(ctx, files[i].CategoryID)))
	}
	return dtos, nil
}

// Upload saves each submitted file independently and reports a per-item
// result. One bad file never rolls back its siblings; the caller gets
// the full picture and can retry just the failures.
func (s *FileService) Upload(ctx context.Context, id model.Identity, projectID, categoryID int, description string, files []*multipart.FileHeader) ([]model.UploadResult, error) {
	if _, err := writableProject(ctx, s.db, id, projectID); err != nil {
		return nil, err
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.ProjectFileCategory{}).Where("id = ?", categoryID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check category: %w", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("category %d: %w", categoryID, ErrInvalid)
	}

	catName := s.categoryName(ctx, categoryID)
	results := make([]model.UploadResult, 0, len(files))
	for _, fh := range files {
		name := filepath.Base(fh.Filename)
		rec, err := s.saveOne(ctx, projectID, categoryID, description, name, fh)
		if err != nil {
			logger.Warn("upload.failed", "project", projectID, "file", name, "err", err)
			results = append(results, model.UploadResult{FileName: name, Error: err.Error()})
			continue
		}
		dto := toFileDTO(rec, catName)
		results = append(results, model.UploadResult{FileName: name, OK: true, File: &dto})
	}
	return results, nil
}

func (s *FileService) saveOne(ctx context.Context, projectID, categoryID int, description, name string, fh *multipart.FileHeader) (*model.ProjectFile, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	key, err := s.store.Save(projectID, name, src)
	if err != nil {
		return nil, err
	}

	rec := model.ProjectFile{
		ProjectID:   projectID,
		FileName:    name,
		StorageKey:  key,
		Description: description,
		CategoryID:  categoryID,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		s.store.Remove(key)
		return nil, fmt.Errorf("insert file record: %w", err)
	}
	return &rec, nil
}

func (s *FileService) Update(ctx context.Context, id model.Identity, fileID int, req model.ProjectFileUpdateRequest) error {
	rec, err := s.load(ctx, fileID)
	if err != nil {
		return err
	}
	if _, err := writableProject(ctx, s.db, id, rec.ProjectID); err != nil {
		return err
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.ProjectFileCategory{}).Where("id = ?", req.CategoryID).Count(&count).Error; err != nil {
		return fmt.Errorf("check category: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("category %d: %w", req.CategoryID, ErrInvalid)
	}

	rec.FileName = filepath.Base(req.FileName)
	rec.Description = req.Description
	rec.CategoryID = req.CategoryID
	if err := s.db.WithContext(ctx).Save(rec).Error; err != nil {
		return fmt.Errorf("update file: %w", err)
	}
	return nil
}

func (s *FileService) Delete(ctx context.Context, id model.Identity, fileID int) error {
	rec, err := s.load(ctx, fileID)
	if err != nil {
		return err
	}
	if _, err := writableProject(ctx, s.db, id, rec.ProjectID); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(rec).Error; err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	if err := s.store.Remove(rec.StorageKey); err != nil {
		logger.Warn("file cleanup failed", "key", rec.StorageKey, "err", err)
	}
	return nil
}

// Download opens the stored bytes for a single file. The caller must
// close the reader.
func (s *FileService) Download(ctx context.Context, id model.Identity, fileID int) (*model.ProjectFile, io.ReadCloser, error) {
	rec, err := s.load(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}
	if _, err := readableProject(ctx, s.db, id, rec.ProjectID); err != nil {
		return nil, nil, err
	}
	f, err := s.store.Open(rec.StorageKey)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("file %d missing on disk: %w", fileID, ErrNotFound)
		}
		return nil, nil, fmt.Errorf("open stored file: %w", err)
	}
	return rec, f, nil
}

// Zip streams an archive of the requested files. Strict all-or-nothing:
// every id must resolve, every file must be readable by the caller and
// present on disk, otherwise nothing is written.
func (s *FileService) Zip(ctx context.Context, id model.Identity, fileIDs []int, w io.Writer) error {
	if len(fileIDs) == 0 {
		return fmt.Errorf("no file ids: %w", ErrInvalid)
	}

	type entry struct {
		rec  *model.ProjectFile
		name string
	}
	readable := map[int]bool{}
	entries := make([]entry, 0, len(fileIDs))
	used := map[string]int{}

	for _, fid := range fileIDs {
		rec, err := s.load(ctx, fid)
		if err != nil {
			return err
		}
		if !readable[rec.ProjectID] {
			if _, err := readableProject(ctx, s.db, id, rec.ProjectID); err != nil {
				return err
			}
			readable[rec.ProjectID] = true
		}
		if !s.store.Exists(rec.StorageKey) {
			return fmt.Errorf("file %d missing on disk", fid)
		}
		entries = append(entries, entry{rec: rec, name: dedupeName(used, rec.FileName)})
	}

	zw := zip.NewWriter(w)
	for _, e := range entries {
		src, err := s.store.Open(e.rec.StorageKey)
		if err != nil {
			zw.Close()
			return fmt.Errorf("open %q: %w", e.rec.FileName, err)
		}
		dst, err := zw.Create(e.name)
		if err != nil {
			src.Close()
			zw.Close()
			return fmt.Errorf("zip entry %q: %w", e.name, err)
		}
		if _, err := io.Copy(dst, src); err != nil {
			src.Close()
			zw.Close()
			return fmt.Errorf("zip copy %q: %w", e.name, err)
		}
		src.Close()
	}
	return zw.Close()
}

// dedupeName keeps archive entries unique when two files share an
// upload name: "a.txt", "a (2).txt", "a (3).txt".
func dedupeName(used map[string]int, name string) string {
	used[name]++
	if used[name] == 1 {
		return name
	}
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return fmt.Sprintf("%s (%d)%s", base, used[name], ext)
}

func (s *FileService) load(ctx context.Context, fileID int) (*model.ProjectFile, error) {
	var rec model.ProjectFile
	if err := s.db.WithContext(ctx).First(&rec, fileID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("file %d: %w", fileID, ErrNotFound)
		}
		return nil, fmt.Errorf("load file: %w", err)
	}
	return &rec, nil
}

func (s *FileService) categoryName(ctx context.Context, categoryID int) string {
	var cat model.ProjectFileCategory
	if err := s.db.WithContext(ctx).First(&cat, categoryID).Error; err != nil {
		return ""
	}
	return cat.Name
}
