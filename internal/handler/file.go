package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"projectlog/internal/middleware"
	"projectlog/internal/model"
	"projectlog/internal/service"

	"github.com/gin-gonic/gin"
)

type FileHandler struct{ svc *service.FileService }

func NewFileHandler(svc *service.FileService) *FileHandler { return &FileHandler{svc: svc} }

// GET /api/projects/:id/files
func (h *FileHandler) ListByProject(c *gin.Context) {
	projectID, ok := idParam(c, "id")
	if !ok {
		return
	}
	files, err := h.svc.ListByProject(c.Request.Context(), middleware.GetIdentity(c), projectID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, files)
}

// POST /api/project-files/upload
// multipart form: files (1..n), project_id, category_id, description
func (h *FileHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		badRequest(c)
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files received"})
		return
	}
	projectID, err := strconv.Atoi(c.PostForm("project_id"))
	if err != nil || projectID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project_id"})
		return
	}
	categoryID, err := strconv.Atoi(c.PostForm("category_id"))
	if err != nil || categoryID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category is required"})
		return
	}

	results, err := h.svc.Upload(c.Request.Context(), middleware.GetIdentity(c),
		projectID, categoryID, c.PostForm("description"), files)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// PUT /api/project-files/:id
func (h *FileHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req model.ProjectFileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	if err := h.svc.Update(c.Request.Context(), middleware.GetIdentity(c), id, req); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DELETE /api/project-files/:id
func (h *FileHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), middleware.GetIdentity(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/project-files/download/:id
func (h *FileHandler) Download(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	rec, rc, err := h.svc.Download(c.Request.Context(), middleware.GetIdentity(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rec.FileName))
	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	io.Copy(c.Writer, rc)
}

// POST /api/project-files/download-zip  body: {"file_ids":[...]}
func (h *FileHandler) DownloadZip(c *gin.Context) {
	var req model.ZipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	// Authorization and existence are checked before the first byte is
	// written, so errors still come out as clean JSON statuses.
	c.Header("Content-Disposition", `attachment; filename="project-files.zip"`)
	c.Header("Content-Type", "application/zip")
	if err := h.svc.Zip(c.Request.Context(), middleware.GetIdentity(c), req.FileIDs, &deferredWriter{c: c}); err != nil {
		c.Header("Content-Disposition", "")
		c.Header("Content-Type", "application/json; charset=utf-8")
		fail(c, err)
	}
}

// deferredWriter delays the 200 until the first archive byte, keeping
// the status line correct when validation inside Zip fails.
type deferredWriter struct {
	c       *gin.Context
	started bool
}

func (w *deferredWriter) Write(p []byte) (int, error) {
	if !w.started {
		w.c.Status(http.StatusOK)
		w.started = true
	}
	return w.c.Writer.Write(p)
}
