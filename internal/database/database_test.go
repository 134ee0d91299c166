package database

import (
	"fmt"
	"testing"

	"projectlog/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return db
}

func TestInitSeedsReferenceData(t *testing.T) {
	db := openTestDB(t)
	if err := Init(db); err != nil {
		t.Fatalf("init: %v", err)
	}

	counts := []struct {
		model any
		want  int64
	}{
		{&model.Role{}, 3},
		{&model.ProjectType{}, 5},
		{&model.ProjectStatus{}, 5},
		{&model.ProjectFileCategory{}, 5},
		{&model.AppSetting{}, 2},
	}
	for _, c := range counts {
		var n int64
		db.Model(c.model).Count(&n)
		if n != c.want {
			t.Fatalf("%T: expected %d rows got %d", c.model, c.want, n)
		}
	}

	var admin model.User
	if err := db.Preload("Role").Where("username = ?", "admin").First(&admin).Error; err != nil {
		t.Fatalf("seeded admin missing: %v", err)
	}
	if admin.RoleName() != model.RoleAdmin {
		t.Fatalf("admin has role %q", admin.RoleName())
	}
}

func TestInitIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	for i := 0; i < 3; i++ {
		if err := Init(db); err != nil {
			t.Fatalf("init run %d: %v", i, err)
		}
	}
	var roles, users int64
	db.Model(&model.Role{}).Count(&roles)
	db.Model(&model.User{}).Count(&users)
	if roles != 3 || users != 1 {
		t.Fatalf("seed duplicated: %d roles, %d users", roles, users)
	}
}

func TestSeedKeepsExistingRows(t *testing.T) {
	db := openTestDB(t)
	if err := Init(db); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := db.Model(&model.AppSetting{}).
		Where("`key` = ?", "BackendPort").
		Update("value", "9090").Error; err != nil {
		t.Fatalf("update: %v", err)
	}

	if err := Seed(db); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	var s model.AppSetting
	db.Where("`key` = ?", "BackendPort").First(&s)
	if s.Value != "9090" {
		t.Fatalf("reseed overwrote operator value: %q", s.Value)
	}
}
