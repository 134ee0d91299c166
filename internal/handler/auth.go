package handler

import (
	"net/http"

	"projectlog/internal/logger"
	"projectlog/internal/middleware"
	"projectlog/internal/model"
	"projectlog/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ auth *service.AuthService }

func NewAuthHandler(auth *service.AuthService) *AuthHandler { return &AuthHandler{auth: auth} }

// POST /api/auth/login  body: {"username":"...","password":"..."}
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	u, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		logger.Warn("login.failed", "username", req.Username)
		fail(c, err)
		return
	}

	token, expires, err := middleware.GenerateToken(u)
	if err != nil {
		fail(c, err)
		return
	}

	logger.Info("login.ok", "uid", u.ID, "username", u.Username, "role", u.Role.Name)
	c.JSON(http.StatusOK, model.LoginResponse{
		Token:   token,
		Expires: expires,
		User: model.UserDTO{
			ID:        u.ID,
			Username:  u.Username,
			RoleID:    u.RoleID,
			RoleName:  u.Role.Name,
			CreatedAt: u.CreatedAt,
		},
	})
}
