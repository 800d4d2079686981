package middleware

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/photoshare-dev/photoshare/internal/auth"
	"github.com/photoshare-dev/photoshare/internal/models"
	"github.com/photoshare-dev/photoshare/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeUsers map[uint]*models.User

func (f fakeUsers) GetUser(ctx context.Context, id uint) (*models.User, error) {
	if user, ok := f[id]; ok {
		return user, nil
	}
	return nil, fmt.Errorf("user %d not found", id)
}

func setupRouter(t *testing.T) (*gin.Engine, *auth.TokenManager) {
	gin.SetMode(gin.TestMode)

	tokens, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	users := fakeUsers{
		1: {BaseModel: models.BaseModel{ID: 1}, Username: "bob", IsActive: true},
		2: {BaseModel: models.BaseModel{ID: 2}, Username: "root", IsActive: true, IsAdmin: true},
		3: {BaseModel: models.BaseModel{ID: 3}, Username: "gone", IsActive: false},
	}

	r := gin.New()
	authed := r.Group("/", AuthMiddleware(tokens, users))
	authed.GET("/me", func(c *gin.Context) {
		user := c.MustGet(types.ContextUserKey).(*models.User)
		c.String(http.StatusOK, user.Username)
	})
	authed.GET("/admin", RequireStaff(), RequirePermission("photoshare.delete_user"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	return r, tokens
}

func do(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r, tokens := setupRouter(t)

	bobToken, err := tokens.GenerateJWT(1, "bob")
	require.NoError(t, err)

	t.Run("Bearer header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+bobToken)

		w := do(r, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "bob", w.Body.String())
	})

	t.Run("Cookie", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)
		req.AddCookie(&http.Cookie{Name: types.TokenCookieName, Value: bobToken})

		assert.Equal(t, http.StatusOK, do(r, req).Code)
	})

	t.Run("Missing token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do(r, httptest.NewRequest("GET", "/me", nil)).Code)
	})

	t.Run("Malformed header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Token "+bobToken)

		assert.Equal(t, http.StatusUnauthorized, do(r, req).Code)
	})

	t.Run("Bad token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer nope")

		assert.Equal(t, http.StatusUnauthorized, do(r, req).Code)
	})

	t.Run("Unknown or inactive user", func(t *testing.T) {
		for _, id := range []uint{3, 99} {
			token, err := tokens.GenerateJWT(id, "x")
			require.NoError(t, err)

			req := httptest.NewRequest("GET", "/me", nil)
			req.Header.Set("Authorization", "Bearer "+token)

			assert.Equal(t, http.StatusUnauthorized, do(r, req).Code)
		}
	})
}

func TestRequireStaff(t *testing.T) {
	r, tokens := setupRouter(t)

	bobToken, err := tokens.GenerateJWT(1, "bob")
	require.NoError(t, err)
	rootToken, err := tokens.GenerateJWT(2, "root")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+bobToken)
	assert.Equal(t, http.StatusForbidden, do(r, req).Code)

	req = httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+rootToken)
	assert.Equal(t, http.StatusNoContent, do(r, req).Code)
}

func TestGuardsWithoutUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/staff", RequireStaff())
	r.GET("/perm", RequirePermission("x"))

	assert.Equal(t, http.StatusUnauthorized, do(r, httptest.NewRequest("GET", "/staff", nil)).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, httptest.NewRequest("GET", "/perm", nil)).Code)
}

func TestIPRateLimiter(t *testing.T) {
	t.Run("GetLimiter", func(t *testing.T) {
		limiter := NewIPRateLimiter(rate.Limit(10), 5, logger)

		l1 := limiter.GetLimiter("192.168.1.1")
		assert.Equal(t, rate.Limit(10), l1.Limit())
		assert.Equal(t, 5, l1.Burst())
		assert.Same(t, l1, limiter.GetLimiter("192.168.1.1"))
		assert.NotSame(t, l1, limiter.GetLimiter("1.1.1.1"))
	})

	t.Run("Middleware", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		limiter := NewIPRateLimiter(rate.Limit(0.001), 2, logger)

		r := gin.New()
		r.Use(limiter.Middleware())
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		for i := 0; i < 2; i++ {
			assert.Equal(t, http.StatusOK, do(r, httptest.NewRequest("GET", "/", nil)).Code)
		}
		assert.Equal(t, http.StatusTooManyRequests, do(r, httptest.NewRequest("GET", "/", nil)).Code)
	})

	t.Run("Cleanup", func(t *testing.T) {
		limiter := NewIPRateLimiter(rate.Limit(1), 1, logger)

		for i := 0; i <= maxTrackedIPs; i++ {
			limiter.GetLimiter(fmt.Sprintf("ip-%d", i))
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		limiter.StartCleanup(ctx, 10*time.Millisecond)

		assert.Eventually(t, func() bool {
			limiter.mu.Lock()
			defer limiter.mu.Unlock()
			return len(limiter.ips) == 0
		}, time.Second, 10*time.Millisecond)
	})
}
