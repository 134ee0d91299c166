package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"projectlog/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func testUser() *model.User {
	return &model.User{
		ID:       7,
		Username: "frida",
		RoleID:   2,
		Role:     model.Role{ID: 2, Name: string(model.RoleUser)},
	}
}

func TestTokenRoundTrip(t *testing.T) {
	Init("test-secret", time.Hour)

	token, expires, err := GenerateToken(testUser())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if time.Until(expires) > time.Hour || time.Until(expires) < 59*time.Minute {
		t.Fatalf("unexpected expiry %v", expires)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "frida" || claims.Role != model.RoleUser {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	Init("test-secret", time.Hour)

	token, _, err := GenerateToken(testUser())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// Swap the role claim in the payload; the signature no longer matches.
	parts := strings.Split(token, ".")
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(payload, &m); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	m["role"] = string(model.RoleAdmin)
	forged, _ := json.Marshal(m)
	parts[1] = base64.RawURLEncoding.EncodeToString(forged)

	if _, err := ValidateToken(strings.Join(parts, ".")); err == nil {
		t.Fatal("tampered token accepted")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	Init("test-secret", -time.Minute)
	token, _, err := GenerateToken(testUser())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	Init("test-secret", time.Hour)
	if _, err := ValidateToken(token); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestTokenWithoutExpiryRejected(t *testing.T) {
	Init("test-secret", time.Hour)

	// Correctly signed, but no exp claim: must not validate, renewal
	// would otherwise dereference a nil ExpiresAt.
	claims := &Claims{UserID: 7, Username: "frida", Role: model.RoleUser}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ValidateToken(token); err == nil {
		t.Fatal("token without exp accepted")
	}
}

func TestWrongSecretRejected(t *testing.T) {
	Init("secret-one", time.Hour)
	token, _, err := GenerateToken(testUser())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	Init("secret-two", time.Hour)
	if _, err := ValidateToken(token); err == nil {
		t.Fatal("token signed with old secret accepted")
	}
}

func TestAuthMiddleware(t *testing.T) {
	Init("test-secret", time.Hour)
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/whoami", Auth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, GetIdentity(c))
	})

	// No header.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w.Code)
	}

	// Garbage token.
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer nonsense")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w.Code)
	}

	// Valid token round-trips the identity.
	token, _, _ := GenerateToken(testUser())
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var id model.Identity
	if err := json.Unmarshal(w.Body.Bytes(), &id); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if id.UserID != 7 || id.Role != model.RoleUser {
		t.Fatalf("identity mismatch: %+v", id)
	}
}

func TestAuthRenewalHeader(t *testing.T) {
	// TTL of a minute puts every fresh token inside the renewal window.
	Init("test-secret", time.Minute)
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/ping", Auth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	token, _, _ := GenerateToken(testUser())
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	fresh := w.Header().Get("X-New-Token")
	if fresh == "" {
		t.Fatal("expected renewal header")
	}
	claims, err := ValidateToken(fresh)
	if err != nil {
		t.Fatalf("renewed token invalid: %v", err)
	}
	if claims.UserID != 7 || claims.Role != model.RoleUser {
		t.Fatalf("renewed claims mismatch: %+v", claims)
	}
}

func TestRequireRole(t *testing.T) {
	Init("test-secret", time.Hour)
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/admin-only", Auth(), RequireRole(model.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	token, _, _ := GenerateToken(testUser())
	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", w.Code)
	}

	admin := &model.User{ID: 1, Username: "root", Role: model.Role{Name: string(model.RoleAdmin)}}
	token, _, _ = GenerateToken(admin)
	req = httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
}
