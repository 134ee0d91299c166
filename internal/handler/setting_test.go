package handler

import (
	"net/http"
	"testing"

	"projectlog/internal/model"
)

func TestSettingListAndUpdate(t *testing.T) {
	e := newTestEnv(t)
	admin := e.adminToken()

	w := e.do(http.MethodGet, "/api/app-settings", admin, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d", w.Code)
	}
	var settings []model.AppSetting
	decode(t, w, &settings)
	if len(settings) < 2 {
		t.Fatalf("expected seeded settings got %d", len(settings))
	}

	if w := e.do(http.MethodPut, "/api/app-settings/UploadDir", admin, model.AppSettingUpdateRequest{
		Value: "/srv/uploads",
	}); w.Code != http.StatusNoContent {
		t.Fatalf("update: %d %s", w.Code, w.Body.String())
	}

	w = e.do(http.MethodGet, "/api/app-settings/UploadDir", admin, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: %d", w.Code)
	}
	var got model.AppSetting
	decode(t, w, &got)
	if got.Value != "/srv/uploads" {
		t.Fatalf("update not visible: %+v", got)
	}
}

func TestSettingUnknownKey(t *testing.T) {
	e := newTestEnv(t)
	admin := e.adminToken()

	if w := e.do(http.MethodGet, "/api/app-settings/NoSuchKey", admin, nil); w.Code != http.StatusNotFound {
		t.Fatalf("get unknown expected 404 got %d", w.Code)
	}
	if w := e.do(http.MethodPut, "/api/app-settings/NoSuchKey", admin, model.AppSettingUpdateRequest{
		Value: "x",
	}); w.Code != http.StatusNotFound {
		t.Fatalf("put unknown expected 404 got %d", w.Code)
	}
}

func TestSettingAdminOnly(t *testing.T) {
	e := newTestEnv(t)
	_, alice := e.createUser("alice", 2)
	_, olive := e.createUser("olive", 3)

	for _, token := range []string{alice, olive} {
		if w := e.do(http.MethodGet, "/api/app-settings", token, nil); w.Code != http.StatusForbidden {
			t.Fatalf("list expected 403 got %d", w.Code)
		}
		if w := e.do(http.MethodPut, "/api/app-settings/UploadDir", token, model.AppSettingUpdateRequest{
			Value: "/tmp/hax",
		}); w.Code != http.StatusForbidden {
			t.Fatalf("update expected 403 got %d", w.Code)
		}
	}
	var rec model.AppSetting
	e.db.Where("`key` = ?", "UploadDir").First(&rec)
	if rec.Value == "/tmp/hax" {
		t.Fatal("forbidden update persisted")
	}
}
