package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Urbanbaseprops/property-manager/internal/domain/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, path string) int {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w.Code
}

func TestExtractToken(t *testing.T) {
	assert.Equal(t, "abc", ExtractToken("Bearer abc"))
	assert.Equal(t, "abc", ExtractToken("bearer  abc"))
	assert.Equal(t, "abc", ExtractToken("abc"))
	assert.Equal(t, "", ExtractToken(""))
}

func TestRateLimiter_PerKey(t *testing.T) {
	r := gin.New()
	r.Use(RateLimiter(RateLimiterConfig{
		Rate:    0.001,
		Burst:   2,
		KeyFunc: func(c *gin.Context) string { return c.Query("who") },
	}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, "/?who=a"))
	assert.Equal(t, http.StatusOK, serve(r, "/?who=a"))
	assert.Equal(t, http.StatusTooManyRequests, serve(r, "/?who=a"))
	assert.Equal(t, http.StatusOK, serve(r, "/?who=b"))
}

func TestRequireRole(t *testing.T) {
	as := func(role string) gin.HandlerFunc {
		return func(c *gin.Context) {
			if role != "" {
				c.Set(IdentityKey, models.Identity{Email: "x@example.com", Role: role})
			}
			c.Next()
		}
	}
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }

	r := gin.New()
	r.GET("/admin", as("admin"), RequireRole("admin"), ok)
	r.GET("/staff", as("staff"), RequireRole("admin"), ok)
	r.GET("/anon", as(""), RequireRole("admin"), ok)

	assert.Equal(t, http.StatusOK, serve(r, "/admin"))
	assert.Equal(t, http.StatusForbidden, serve(r, "/staff"))
	assert.Equal(t, http.StatusUnauthorized, serve(r, "/anon"))
}
