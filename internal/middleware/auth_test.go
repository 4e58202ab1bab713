package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garvthakre/kf12/internal/authz"
	"github.com/garvthakre/kf12/internal/models"
)

var testSecret = []byte("test-secret")

type stubResolver struct {
	user *models.User
}

func (s *stubResolver) GetByID(_ context.Context, _ int64) (*models.User, error) {
	return s.user, nil
}

func activeUser() *models.User {
	return &models.User{
		ID:       10,
		TenantID: 1,
		Email:    "agent@x.kz",
		Role:     authz.RoleAgent,
		IsActive: true,
	}
}

func signToken(t *testing.T, method jwt.SigningMethod, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(testSecret)
	require.NoError(t, err)
	return token
}

func validClaims(ttl time.Duration) Claims {
	return Claims{
		UserID:   10,
		TenantID: 1,
		Email:    "agent@x.kz",
		Role:     authz.RoleAgent,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

// роутер с одним защищённым эндпоинтом, отдающим ключи контекста
func newTestRouter(resolver UserResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware(testSecret, resolver))
	r.GET("/leads", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":   c.GetInt64(CtxUserID),
			"tenant_id": c.GetInt64(CtxTenantID),
			"role":      c.GetString(CtxRole),
		})
	})
	r.POST("/webhooks/fairex/lead-captured", func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return r
}

func doRequest(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_ValidTokenSetsContext(t *testing.T) {
	r := newTestRouter(&stubResolver{user: activeUser()})
	token := signToken(t, jwt.SigningMethodHS256, validClaims(time.Hour))

	w := doRequest(r, http.MethodGet, "/leads", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":10`)
	assert.Contains(t, w.Body.String(), `"tenant_id":1`)
	assert.Contains(t, w.Body.String(), `"role":"agent"`)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	r := newTestRouter(&stubResolver{user: activeUser()})

	w := doRequest(r, http.MethodGet, "/leads", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	r := newTestRouter(&stubResolver{user: activeUser()})
	// просрочен сильнее, чем leeway в 2 минуты
	token := signToken(t, jwt.SigningMethodHS256, validClaims(-time.Hour))

	w := doRequest(r, http.MethodGet, "/leads", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_DeactivatedUser(t *testing.T) {
	u := activeUser()
	u.IsActive = false
	r := newTestRouter(&stubResolver{user: u})
	token := signToken(t, jwt.SigningMethodHS256, validClaims(time.Hour))

	w := doRequest(r, http.MethodGet, "/leads", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// токен выписан под другой tenant — даже валидная подпись не пускает
func TestAuthMiddleware_TenantMismatch(t *testing.T) {
	u := activeUser()
	u.TenantID = 2
	r := newTestRouter(&stubResolver{user: u})
	token := signToken(t, jwt.SigningMethodHS256, validClaims(time.Hour))

	w := doRequest(r, http.MethodGet, "/leads", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_WebhookPathIsPublic(t *testing.T) {
	r := newTestRouter(&stubResolver{user: nil})

	w := doRequest(r, http.MethodPost, "/webhooks/fairex/lead-captured", "")
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestIsPublicPath(t *testing.T) {
	assert.True(t, isPublicPath("/auth/token"))
	assert.True(t, isPublicPath("/webhooks/fairex/lead-captured"))
	assert.True(t, isPublicPath("/swagger/index.html"))
	assert.True(t, isPublicPath("/healthz"))
	assert.False(t, isPublicPath("/leads"))
	assert.False(t, isPublicPath("/auth/me"))
}
