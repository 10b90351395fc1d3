package utils_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"crmportal-backend/config"
	"crmportal-backend/models"
	"crmportal-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "middleware-test-secret")
	os.Exit(m.Run())
}

func setupGateDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.AdminUser{}))

	config.DB = db
	config.Logger = zap.NewNop()
	return db
}

func gatedRouter() *gin.Engine {
	r := gin.New()
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.GET("/private", utils.AuthMiddleware(), ok)
	r.GET("/admin", utils.AuthMiddleware(), utils.AdminMiddleware(), ok)
	return r
}

func redirectHint(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Redirect string `json:"redirect"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Redirect
}

func TestAuthMiddlewareNoToken(t *testing.T) {
	setupGateDB(t)
	router := gatedRouter()

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "/auth", redirectHint(t, w))
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	setupGateDB(t)
	router := gatedRouter()

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "/auth", redirectHint(t, w))
}

func TestAuthMiddlewareBearerToken(t *testing.T) {
	setupGateDB(t)
	router := gatedRouter()

	token, err := utils.GenerateToken(uuid.NewString())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

// The session cookie set at login works as a fallback when no Authorization
// header is present.
func TestAuthMiddlewareCookieToken(t *testing.T) {
	setupGateDB(t)
	router := gatedRouter()

	token, err := utils.GenerateToken(uuid.NewString())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminMiddlewareNonAdmin(t *testing.T) {
	setupGateDB(t)
	router := gatedRouter()

	token, err := utils.GenerateToken(uuid.NewString())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "/dashboard", redirectHint(t, w))
}

func TestAdminMiddlewareAdmin(t *testing.T) {
	db := setupGateDB(t)
	router := gatedRouter()

	adminID := uuid.New()
	require.NoError(t, db.Create(&models.AdminUser{UserID: adminID}).Error)

	token, err := utils.GenerateToken(adminID.String())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

// TestIsAdminFailClosed points the lookup at a database missing the
// admin_users table; the error must read as "not an admin".
func TestIsAdminFailClosed(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	config.DB = db
	config.Logger = zap.NewNop()

	assert.False(t, utils.IsAdmin(uuid.NewString()))
}

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := utils.HashPassword("abcdef")
	require.NoError(t, err)
	assert.NotEqual(t, "abcdef", hash)
	assert.True(t, utils.CheckPasswordHash("abcdef", hash))
	assert.False(t, utils.CheckPasswordHash("abcdex", hash))
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := utils.GenerateToken(uuid.NewString())
	assert.Error(t, err)
}
