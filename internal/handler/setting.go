package handler

import (
	"net/http"

	"projectlog/internal/model"
	"projectlog/internal/service"

	"github.com/gin-gonic/gin"
)

type SettingHandler struct{ svc *service.SettingService }

func NewSettingHandler(svc *service.SettingService) *SettingHandler {
	return &SettingHandler{svc: svc}
}

// GET /api/app-settings
func (h *SettingHandler) List(c *gin.Context) {
	settings, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// GET /api/app-settings/:key
func (h *SettingHandler) Get(c *gin.Context) {
	setting, err := h.svc.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, setting)
}

// PUT /api/app-settings/:key
func (h *SettingHandler) Update(c *gin.Context) {
	var req model.AppSettingUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	if err := h.svc.Update(c.Request.Context(), c.Param("key"), req.Value); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
