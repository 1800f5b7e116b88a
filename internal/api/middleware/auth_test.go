package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"imovia/internal/models"
	"imovia/internal/utils"
)

const testSecret = "test-secret"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Admin{}))
	return db
}

func newTestAdmin(t *testing.T, db *gorm.DB, role models.AdminRole, active bool) (*models.Admin, string) {
	t.Helper()

	admin := &models.Admin{
		Name:     "Test",
		Email:    fmt.Sprintf("%s@example.com", uuid.New().String()),
		Password: "irrelevant-hash",
		Role:     role,
		IsActive: active,
	}
	require.NoError(t, db.Create(admin).Error)

	token, err := utils.GenerateJWT(admin, testSecret)
	require.NoError(t, err)
	return admin, token
}

// newTestServer registers a protected route set mirroring the real
// router so the policy table sees real registered paths.
func newTestServer(db *gorm.DB) *echo.Echo {
	e := echo.New()
	auth := NewAuthMiddleware(testSecret, db)

	ok := func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"adminId": GetAdminID(c)})
	}

	e.POST("/api/properties", ok, auth.Middleware())
	e.DELETE("/api/properties/:id", ok, auth.Middleware())

	admins := e.Group("/api/admins")
	admins.Use(auth.Middleware())
	admins.GET("", ok)
	admins.DELETE("/:id", ok)

	return e
}

func doRequest(e *echo.Echo, method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware_MissingOrBadToken(t *testing.T) {
	e := newTestServer(newTestDB(t))

	t.Run("missing header", func(t *testing.T) {
		rec := doRequest(e, http.MethodPost, "/api/properties", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/properties", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := doRequest(e, http.MethodPost, "/api/properties", "not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		db := newTestDB(t)
		admin := &models.Admin{Name: "X", Email: "x@example.com", Password: "h", Role: models.AdminRoleAdmin, IsActive: true}
		require.NoError(t, db.Create(admin).Error)
		token, err := utils.GenerateJWT(admin, "other-secret")
		require.NoError(t, err)

		rec := doRequest(e, http.MethodPost, "/api/properties", token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthMiddleware_RolePolicy(t *testing.T) {
	db := newTestDB(t)
	e := newTestServer(db)

	_, adminToken := newTestAdmin(t, db, models.AdminRoleAdmin, true)
	_, superToken := newTestAdmin(t, db, models.AdminRoleSuperAdmin, true)

	t.Run("any admin can mutate properties", func(t *testing.T) {
		rec := doRequest(e, http.MethodPost, "/api/properties", adminToken)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = doRequest(e, http.MethodDelete, "/api/properties/some-id", adminToken)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("admin management is super admin only", func(t *testing.T) {
		rec := doRequest(e, http.MethodGet, "/api/admins", adminToken)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = doRequest(e, http.MethodDelete, "/api/admins/some-id", adminToken)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = doRequest(e, http.MethodGet, "/api/admins", superToken)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAuthMiddleware_AccountState(t *testing.T) {
	db := newTestDB(t)
	e := newTestServer(db)

	t.Run("deactivated account is rejected despite a valid token", func(t *testing.T) {
		_, token := newTestAdmin(t, db, models.AdminRoleAdmin, false)
		rec := doRequest(e, http.MethodPost, "/api/properties", token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("deleted account is rejected", func(t *testing.T) {
		admin, token := newTestAdmin(t, db, models.AdminRoleAdmin, true)
		require.NoError(t, db.Delete(admin).Error)

		rec := doRequest(e, http.MethodPost, "/api/properties", token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("context carries the admin identity", func(t *testing.T) {
		admin, token := newTestAdmin(t, db, models.AdminRoleAdmin, true)
		rec := doRequest(e, http.MethodPost, "/api/properties", token)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), admin.ID)
	})
}

func TestRoleAllowed(t *testing.T) {
	assert.True(t, RoleAllowed(nil, models.AdminRoleViewer))
	assert.True(t, RoleAllowed([]models.AdminRole{models.AdminRoleSuperAdmin}, models.AdminRoleSuperAdmin))
	assert.False(t, RoleAllowed([]models.AdminRole{models.AdminRoleSuperAdmin}, models.AdminRoleAdmin))
}
