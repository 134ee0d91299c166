package handler

import (
	"net/http"

	"projectlog/internal/middleware"
	"projectlog/internal/model"
	"projectlog/internal/service"

	"github.com/gin-gonic/gin"
)

type DetailHandler struct{ svc *service.DetailService }

func NewDetailHandler(svc *service.DetailService) *DetailHandler {
	return &DetailHandler{svc: svc}
}

// GET /api/project-details/:projectId
func (h *DetailHandler) Get(c *gin.Context) {
	projectID, ok := idParam(c, "projectId")
	if !ok {
		return
	}
	d, err := h.svc.Get(c.Request.Context(), middleware.GetIdentity(c), projectID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// POST /api/project-details
func (h *DetailHandler) Create(c *gin.Context) {
	var req model.ProjectDetailCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	d, err := h.svc.Create(c.Request.Context(), middleware.GetIdentity(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// PUT /api/project-details/:projectId
func (h *DetailHandler) Update(c *gin.Context) {
	projectID, ok := idParam(c, "projectId")
	if !ok {
		return
	}
	var req model.ProjectDetailUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	if err := h.svc.Update(c.Request.Context(), middleware.GetIdentity(c), projectID, req); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
