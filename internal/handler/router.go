package handler

import (
	"projectlog/internal/middleware"
	"projectlog/internal/model"
	"projectlog/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NewRouter wires every route with its capability requirement in one
// place: role gates live here, never inside handlers. Ownership checks
// happen one level down in the services.
func NewRouter(db *gorm.DB, store *service.Storage) *gin.Engine {
	projectSvc := service.NewProjectService(db, store)

	authH := NewAuthHandler(service.NewAuthService(db))
	projectH := NewProjectHandler(projectSvc)
	detailH := NewDetailHandler(service.NewDetailService(db))
	noteH := NewNoteHandler(service.NewNoteService(db))
	fileH := NewFileHandler(service.NewFileService(db, store))
	userH := NewUserHandler(service.NewUserService(db, projectSvc))
	lookupH := NewLookupHandler(service.NewLookupService(db))
	settingH := NewSettingHandler(service.NewSettingService(db))

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	r.POST("/api/auth/login", authH.Login)

	// Any authenticated role. Ownership-scoped reads enforce the rest.
	api := r.Group("/api", middleware.Auth())
	api.GET("/projects", projectH.List)
	api.GET("/projects/:id", projectH.Get)
	api.GET("/project-details/:projectId", detailH.Get)
	api.GET("/project-notes/:projectId", noteH.ListByProject)
	api.GET("/projects/:id/files", fileH.ListByProject)
	api.GET("/project-files/download/:id", fileH.Download)
	api.POST("/project-files/download-zip", fileH.DownloadZip)
	api.GET("/file-categories", lookupH.ListCategories)
	api.GET("/project-types", lookupH.ListTypes)
	api.GET("/project-types/:id", lookupH.GetType)
	api.GET("/project-statuses", lookupH.ListStatuses)
	api.GET("/project-statuses/:id", lookupH.GetStatus)

	// Writers: admins and owners. Observers stop here.
	writer := api.Group("", middleware.RequireRole(model.RoleAdmin, model.RoleUser))
	writer.POST("/projects", projectH.Create)
	writer.PUT("/projects/:id", projectH.Update)
	writer.DELETE("/projects/:id", projectH.Delete)
	writer.POST("/project-details", detailH.Create)
	writer.PUT("/project-details/:projectId", detailH.Update)
	writer.POST("/project-notes", noteH.Create)
	writer.PUT("/project-notes/:id", noteH.Update)
	writer.DELETE("/project-notes/:id", noteH.Delete)
	writer.POST("/project-files/upload", fileH.Upload)
	writer.PUT("/project-files/:id", fileH.Update)
	writer.DELETE("/project-files/:id", fileH.Delete)

	// Admin-only management surface.
	admin := api.Group("", middleware.RequireRole(model.RoleAdmin))
	admin.GET("/users", userH.List)
	admin.GET("/users/roles", userH.Roles)
	admin.POST("/users", userH.Create)
	admin.PUT("/users/:id", userH.Update)
	admin.DELETE("/users/:id", userH.Delete)
	admin.POST("/file-categories", lookupH.CreateCategory)
	admin.PUT("/file-categories/:id", lookupH.UpdateCategory)
	admin.DELETE("/file-categories/:id", lookupH.DeleteCategory)
	admin.POST("/project-types", lookupH.CreateType)
	admin.PUT("/project-types/:id", lookupH.UpdateType)
	admin.DELETE("/project-types/:id", lookupH.DeleteType)
	admin.POST("/project-statuses", lookupH.CreateStatus)
	admin.PUT("/project-statuses/:id", lookupH.UpdateStatus)
	admin.DELETE("/project-statuses/:id", lookupH.DeleteStatus)
	admin.GET("/app-settings", settingH.List)
	admin.GET("/app-settings/:key", settingH.Get)
	admin.PUT("/app-settings/:key", settingH.Update)

	return r
}
