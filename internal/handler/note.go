package handler

import (
	"net/http"

	"projectlog/internal/middleware"
	"projectlog/internal/model"
	"projectlog/internal/service"

	"github.com/gin-gonic/gin"
)

type NoteHandler struct{ svc *service.NoteService }

func NewNoteHandler(svc *service.NoteService) *NoteHandler { return &NoteHandler{svc: svc} }

// GET /api/project-notes/:projectId
func (h *NoteHandler) ListByProject(c *gin.Context) {
	projectID, ok := idParam(c, "projectId")
	if !ok {
		return
	}
	notes, err := h.svc.ListByProject(c.Request.Context(), middleware.GetIdentity(c), projectID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

// POST /api/project-notes
func (h *NoteHandler) Create(c *gin.Context) {
	var req model.ProjectNoteCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	note, err := h.svc.Create(c.Request.Context(), middleware.GetIdentity(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

// PUT /api/project-notes/:id
func (h *NoteHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req model.ProjectNoteUpdateRequest
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

// DELETE /api/project-notes/:id
func (h *NoteHandler) Delete(c *gin.Context) {
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
