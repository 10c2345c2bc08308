package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/storepanel/internal/authz"
	"github.com/storepanel/internal/config"
	"github.com/storepanel/internal/models"
	"github.com/storepanel/internal/repository"
	"github.com/storepanel/internal/service"
	handlershared "github.com/storepanel/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testJWTSecret = "middleware-test-secret-key-0123456789"

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	if w2.Header().Get(requestIDHeader) == "" {
		t.Fatalf("generated request id should not be empty")
	}
}

func setupAuthMiddlewareTest(t *testing.T) (*gorm.DB, repository.UserRepository, *service.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Store{}, &models.User{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.JWT.SecretKey = testJWTSecret
	cfg.JWT.ExpireHours = 1
	userRepo := repository.NewUserRepository(db)
	return db, userRepo, service.NewAuthService(cfg, userRepo)
}

func createMiddlewareTestUser(t *testing.T, db *gorm.DB, role models.Role, storeID *uint) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("Secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	user := &models.User{
		Name:         "Alice",
		Email:        fmt.Sprintf("%s@example.com", strings.ToLower(strings.ReplaceAll(t.Name(), "/", "-"))),
		PasswordHash: string(hash),
		Role:         role,
		StoreID:      storeID,
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func authTestEngine(userRepo repository.UserRepository) *gin.Engine {
	r := gin.New()
	r.GET("/protected", JWTAuthMiddleware(testJWTSecret, userRepo), func(c *gin.Context) {
		scope, ok := handlershared.GetScope(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no scope"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": scope.UserID, "role": scope.Role.String()})
	})
	return r
}

func TestJWTAuthMiddlewareValidToken(t *testing.T) {
	db, userRepo, authSvc := setupAuthMiddlewareTest(t)
	storeID := uint(3)
	user := createMiddlewareTestUser(t, db, models.RoleStoreAdmin, &storeID)

	token, _, err := authSvc.GenerateJWT(user)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}

	r := authTestEngine(userRepo)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d body=%s", w.Code, w.Body.String())
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["role"] != models.RoleStoreAdmin.String() {
		t.Fatalf("role want store_admin, got %v", resp["role"])
	}
}

func TestJWTAuthMiddlewareMissingAndMalformedHeader(t *testing.T) {
	_, userRepo, _ := setupAuthMiddlewareTest(t)
	r := authTestEngine(userRepo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("missing header status want 401 got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("malformed header status want 401 got %d", w.Code)
	}
}

func TestJWTAuthMiddlewareRevokedTokenVersion(t *testing.T) {
	db, userRepo, authSvc := setupAuthMiddlewareTest(t)
	user := createMiddlewareTestUser(t, db, models.RoleSuperAdmin, nil)

	token, _, err := authSvc.GenerateJWT(user)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}
	// 吊销：版本号自增后旧令牌失效
	if err := db.Model(user).Update("token_version", user.TokenVersion+1).Error; err != nil {
		t.Fatalf("bump token version failed: %v", err)
	}

	r := authTestEngine(userRepo)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("revoked token status want 401 got %d", w.Code)
	}
}

func TestJWTAuthMiddlewareDisabledUser(t *testing.T) {
	db, userRepo, authSvc := setupAuthMiddlewareTest(t)
	user := createMiddlewareTestUser(t, db, models.RoleSuperAdmin, nil)

	token, _, err := authSvc.GenerateJWT(user)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}
	if err := db.Model(user).Update("is_active", false).Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}

	r := authTestEngine(userRepo)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("disabled user status want 401 got %d", w.Code)
	}
}

func TestRBACMiddlewareDeniesOutOfPolicy(t *testing.T) {
	db, userRepo, authSvc := setupAuthMiddlewareTest(t)
	storeID := uint(1)
	user := createMiddlewareTestUser(t, db, models.RoleStoreAdmin, &storeID)

	authzSvc, err := authz.NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	if err := authzSvc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap roles failed: %v", err)
	}
	if err := authzSvc.SetUserRole(user.ID, user.Role.String()); err != nil {
		t.Fatalf("set user role failed: %v", err)
	}

	token, _, err := authSvc.GenerateJWT(user)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}

	r := gin.New()
	group := r.Group("/api/v1/admin", JWTAuthMiddleware(testJWTSecret, userRepo), RBACMiddleware(authzSvc))
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) }
	group.GET("/products", ok)
	group.POST("/stores", ok)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("in-policy status want 200 got %d body=%s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/stores", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("out-of-policy status want 403 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestRBACMiddlewareAppliesUserRevocations(t *testing.T) {
	db, userRepo, authSvc := setupAuthMiddlewareTest(t)
	storeID := uint(1)
	user := createMiddlewareTestUser(t, db, models.RoleStoreAdmin, &storeID)
	user.Permissions = models.StringArray{"/admin/notifications", "/admin/notifications/:id"}
	if err := db.Save(user).Error; err != nil {
		t.Fatalf("save user permissions failed: %v", err)
	}

	authzSvc, err := authz.NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	if err := authzSvc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap roles failed: %v", err)
	}
	if err := authzSvc.SetUserRole(user.ID, user.Role.String()); err != nil {
		t.Fatalf("set user role failed: %v", err)
	}

	token, _, err := authSvc.GenerateJWT(user)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}

	r := gin.New()
	group := r.Group("/api/v1/admin", JWTAuthMiddleware(testJWTSecret, userRepo), RBACMiddleware(authzSvc))
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) }
	group.GET("/products", ok)
	group.GET("/notifications", ok)

	// 未回收的资源仍按角色放行
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("products status want 200 got %d body=%s", w.Code, w.Body.String())
	}

	// 回收列表覆盖角色授权
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/notifications", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("revoked status want 403 got %d body=%s", w.Code, w.Body.String())
	}
}
