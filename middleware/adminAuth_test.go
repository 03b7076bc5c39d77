package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vibezone/config"
	"vibezone/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/ping", AdminAuthMiddleware(), func(c *gin.Context) {
		subject, _ := c.Get("adminSubject")
		c.JSON(http.StatusOK, gin.H{"subject": subject})
	})
	return r
}

func getWithToken(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminAuthAcceptsMintedToken(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	r := newAdminRouter()

	token, err := utils.GenerateAdminToken("ops@vibezone.example", time.Hour)
	require.NoError(t, err)

	w := getWithToken(r, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ops@vibezone.example")
}

func TestAdminAuthRejectsExpiredToken(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	r := newAdminRouter()

	token, err := utils.GenerateAdminToken("ops@vibezone.example", -time.Minute)
	require.NoError(t, err)

	w := getWithToken(r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuthRejectsWrongSecret(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	token, err := utils.GenerateAdminToken("ops@vibezone.example", time.Hour)
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "rotated-secret"
	r := newAdminRouter()

	w := getWithToken(r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuthRejectsMissingHeader(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	r := newAdminRouter()

	w := getWithToken(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuthRejectsMalformedToken(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	r := newAdminRouter()

	w := getWithToken(r, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
