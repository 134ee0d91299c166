package database

import (
	"fmt"

	"projectlog/internal/logger"
	"projectlog/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Init migrates the schema and seeds reference data plus the default
// admin account. Safe to run on every startup.
func Init(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.Project{},
		&model.ProjectDetail{},
		&model.ProjectNote{},
		&model.ProjectFile{},
		&model.ProjectFileCategory{},
		&model.ProjectType{},
		&model.ProjectStatus{},
		&model.AppSetting{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return Seed(db)
}

func Seed(db *gorm.DB) error {
	roles := []model.Role{
		{ID: 1, Name: string(model.RoleAdmin)},
		{ID: 2, Name: string(model.RoleUser)},
		{ID: 3, Name: string(model.RoleObserver)},
	}
	for _, r := range roles {
		if err := firstOrCreate(db, &model.Role{}, "id = ?", r.ID, &r); err != nil {
			return err
		}
	}

	for _, t := range []string{"System", "Module", "Device", "Experiment", "Rewrite"} {
		if err := firstOrCreate(db, &model.ProjectType{}, "value = ?", t, &model.ProjectType{Value: t}); err != nil {
			return err
		}
	}
	for _, s := range []string{"Active", "Abandoned", "Rewritten", "Frozen", "Completed"} {
		if err := firstOrCreate(db, &model.ProjectStatus{}, "value = ?", s, &model.ProjectStatus{Value: s}); err != nil {
			return err
		}
	}
	for _, c := range []string{"Documentation", "Screenshots", "Source", "Builds", "Other"} {
		if err := firstOrCreate(db, &model.ProjectFileCategory{}, "name = ?", c, &model.ProjectFileCategory{Name: c}); err != nil {
			return err
		}
	}
	for k, v := range map[string]string{"BackendPort": "8080", "UploadDir": "uploads"} {
		if err := firstOrCreate(db, &model.AppSetting{}, "`key` = ?", k, &model.AppSetting{Key: k, Value: v}); err != nil {
			return err
		}
	}

	return seedDefaultAdmin(db)
}

func seedDefaultAdmin(db *gorm.DB) error {
	var count int64
	db.Model(&model.User{}).Where("username = ?", "admin").Count(&count)
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := model.User{Username: "admin", PasswordHash: string(hashed), RoleID: 1}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	logger.Info("default admin user created", "username", "admin")
	return nil
}

func firstOrCreate(db *gorm.DB, probe any, cond string, arg any, row any) error {
	var count int64
	if err := db.Model(probe).Where(cond, arg).Count(&count).Error; err != nil {
		return fmt.Errorf("seed lookup: %w", err)
	}
	if count > 0 {
		return nil
	}
	if err := db.Create(row).Error; err != nil {
		return fmt.Errorf("seed insert: %w", err)
	}
	return nil
}
