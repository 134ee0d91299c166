package handler

import (
	"net/http"
	"testing"

	"projectlog/internal/model"
)

func TestTypeAdminCRUD(t *testing.T) {
	e := newTestEnv(t)
	admin := e.adminToken()

	w := e.do(http.MethodPost, "/api/project-types", admin, model.NamedValueRequest{Value: "Library"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	var created model.ProjectType
	decode(t, w, &created)

	w = e.do(http.MethodPut, "/api/project-types/"+itoa(created.ID), admin, model.NamedValueRequest{Value: "Shared Library"})
	if w.Code != http.StatusNoContent {
		t.Fatalf("update: %d", w.Code)
	}
	w = e.do(http.MethodGet, "/api/project-types/"+itoa(created.ID), e.adminToken(), nil)
	var got model.ProjectType
	decode(t, w, &got)
	if got.Value != "Shared Library" {
		t.Fatalf("update not visible: %+v", got)
	}

	if w := e.do(http.MethodDelete, "/api/project-types/"+itoa(created.ID), admin, nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete: %d", w.Code)
	}
	if w := e.do(http.MethodGet, "/api/project-types/"+itoa(created.ID), admin, nil); w.Code != http.StatusNotFound {
		t.Fatalf("deleted type expected 404 got %d", w.Code)
	}
}

func TestTypeDeleteRestrictedWhenInUse(t *testing.T) {
	e := newTestEnv(t)
	_, alice := e.createUser("alice", 2)
	e.createProject(alice, "Uses type 1")

	w := e.do(http.MethodDelete, "/api/project-types/1", e.adminToken(), nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("in-use delete expected 409 got %d", w.Code)
	}
	var rec model.ProjectType
	if err := e.db.First(&rec, 1).Error; err != nil {
		t.Fatal("in-use type was deleted anyway")
	}
}

func TestStatusCRUDAndRestrict(t *testing.T) {
	e := newTestEnv(t)
	admin := e.adminToken()
	_, alice := e.createUser("alice", 2)
	e.createProject(alice, "Uses status 1")

	if w := e.do(http.MethodDelete, "/api/project-statuses/1", admin, nil); w.Code != http.StatusConflict {
		t.Fatalf("in-use delete expected 409 got %d", w.Code)
	}

	w := e.do(http.MethodPost, "/api/project-statuses", admin, model.NamedValueRequest{Value: "Paused"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d", w.Code)
	}
	var created model.ProjectStatus
	decode(t, w, &created)
	if w := e.do(http.MethodDelete, "/api/project-statuses/"+itoa(created.ID), admin, nil); w.Code != http.StatusNoContent {
		t.Fatalf("unused delete: %d", w.Code)
	}
}

func TestCategoryDeleteRestrictedWhenInUse(t *testing.T) {
	e := newTestEnv(t)
	_, alice := e.createUser("alice", 2)
	id := e.createProject(alice, "Has uploads")
	e.upload(alice, id, 1, map[string]string{"doc.md": "text"})

	if w := e.do(http.MethodDelete, "/api/file-categories/1", e.adminToken(), nil); w.Code != http.StatusConflict {
		t.Fatalf("in-use delete expected 409 got %d", w.Code)
	}
	if w := e.do(http.MethodDelete, "/api/file-categories/2", e.adminToken(), nil); w.Code != http.StatusNoContent {
		t.Fatalf("unused delete expected 204 got %d", w.Code)
	}
}

func TestLookupDuplicateNames(t *testing.T) {
	e := newTestEnv(t)
	admin := e.adminToken()

	if w := e.do(http.MethodPost, "/api/project-types", admin, model.NamedValueRequest{Value: "System"}); w.Code != http.StatusConflict {
		t.Fatalf("duplicate type expected 409 got %d", w.Code)
	}
	if w := e.do(http.MethodPost, "/api/file-categories", admin, model.CategoryRequest{Name: "Builds"}); w.Code != http.StatusConflict {
		t.Fatalf("duplicate category expected 409 got %d", w.Code)
	}
}

func TestLookupReadsOpenWritesAdminOnly(t *testing.T) {
	e := newTestEnv(t)
	_, olive := e.createUser("olive", 3)

	for _, path := range []string{"/api/project-types", "/api/project-statuses", "/api/file-categories"} {
		if w := e.do(http.MethodGet, path, olive, nil); w.Code != http.StatusOK {
			t.Fatalf("GET %s expected 200 got %d", path, w.Code)
		}
		if w := e.do(http.MethodPost, path, olive, model.NamedValueRequest{Value: "Rogue"}); w.Code != http.StatusForbidden {
			t.Fatalf("POST %s expected 403 got %d", path, w.Code)
		}
	}
}
