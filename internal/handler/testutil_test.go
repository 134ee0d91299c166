package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"projectlog/internal/database"
	"projectlog/internal/middleware"
	"projectlog/internal/model"
	"projectlog/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
	store  *service.Storage
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.Init("test-secret", time.Hour)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Init(db); err != nil {
		t.Fatalf("init db: %v", err)
	}

	store := service.NewStorage(t.TempDir())
	return &testEnv{t: t, db: db, router: NewRouter(db, store), store: store}
}

// createUser inserts a user with the given role id (1 Admin, 2 User,
// 3 Observer) and returns it with a valid token.
func (e *testEnv) createUser(username string, roleID int) (model.User, string) {
	e.t.Helper()
	hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	u := model.User{Username: username, PasswordHash: string(hash), RoleID: roleID}
	if err := e.db.Create(&u).Error; err != nil {
		e.t.Fatalf("create user: %v", err)
	}
	if err := e.db.Preload("Role").First(&u, u.ID).Error; err != nil {
		e.t.Fatalf("reload user: %v", err)
	}
	token, _, err := middleware.GenerateToken(&u)
	if err != nil {
		e.t.Fatalf("token: %v", err)
	}
	return u, token
}

func (e *testEnv) adminToken() string {
	e.t.Helper()
	var admin model.User
	if err := e.db.Preload("Role").Where("username = ?", "admin").First(&admin).Error; err != nil {
		e.t.Fatalf("load seeded admin: %v", err)
	}
	token, _, err := middleware.GenerateToken(&admin)
	if err != nil {
		e.t.Fatalf("token: %v", err)
	}
	return token
}

func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	e.t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			e.t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) createProject(token, title string) int {
	e.t.Helper()
	w := e.do(http.MethodPost, "/api/projects", token, model.ProjectCreateRequest{
		Title: title, TypeID: 1, StatusID: 1,
	})
	if w.Code != http.StatusCreated {
		e.t.Fatalf("create project: %d %s", w.Code, w.Body.String())
	}
	var p model.ProjectDTO
	decode(e.t, w, &p)
	return p.ID
}

// upload posts a multipart form with the given name→content files.
func (e *testEnv) upload(token string, projectID, categoryID int, files map[string]string) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		fw, err := mw.CreateFormFile("files", name)
		if err != nil {
			e.t.Fatalf("form file: %v", err)
		}
		fw.Write([]byte(content))
	}
	mw.WriteField("project_id", fmt.Sprint(projectID))
	mw.WriteField("category_id", fmt.Sprint(categoryID))
	mw.WriteField("description", "test upload")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/project-files/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}
