package handler

import (
	"net/http"
	"testing"

	"projectlog/internal/middleware"
	"projectlog/internal/model"
)

func TestLoginSeededAdmin(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(http.MethodPost, "/api/auth/login", "", model.LoginRequest{
		Username: "admin", Password: "admin",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}

	var resp model.LoginResponse
	decode(t, w, &resp)
	if resp.Token == "" {
		t.Fatal("no token in response")
	}
	if resp.User.RoleName != string(model.RoleAdmin) {
		t.Fatalf("unexpected role: %s", resp.User.RoleName)
	}

	claims, err := middleware.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("issued token invalid: %v", err)
	}
	if claims.UserID != resp.User.ID || claims.Username != "admin" || claims.Role != model.RoleAdmin {
		t.Fatalf("claims do not match issuer: %+v", claims)
	}
}

func TestLoginFailures(t *testing.T) {
	e := newTestEnv(t)

	wrongPass := e.do(http.MethodPost, "/api/auth/login", "", model.LoginRequest{
		Username: "admin", Password: "nope",
	})
	unknownUser := e.do(http.MethodPost, "/api/auth/login", "", model.LoginRequest{
		Username: "ghost", Password: "nope",
	})

	if wrongPass.Code != http.StatusUnauthorized || unknownUser.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401 got %d/%d", wrongPass.Code, unknownUser.Code)
	}
	// Same body either way: no username probing.
	if wrongPass.Body.String() != unknownUser.Body.String() {
		t.Fatalf("responses differ: %s vs %s", wrongPass.Body.String(), unknownUser.Body.String())
	}
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	e := newTestEnv(t)

	for _, path := range []string{"/api/projects", "/api/users", "/api/app-settings"} {
		w := e.do(http.MethodGet, path, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 got %d", path, w.Code)
		}
	}
}
