package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pulse-go/internal/apperr"
	"pulse-go/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubVerifier map[string]string

func (s stubVerifier) Verify(ctx context.Context, token string) (*model.User, error) {
	id, ok := s[token]
	if !ok {
		return nil, apperr.Unauthenticated("登录凭证无效或已过期")
	}
	return &model.User{ID: id}, nil
}

func serve(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func viewerEcho(c *gin.Context) {
	v := GetViewer(c)
	if v.IsGuest() {
		c.String(http.StatusOK, "guest")
		return
	}
	c.String(http.StatusOK, "member:"+v.ID)
}

func TestAuthOptional(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/v", AuthOptional(stubVerifier{"good": "u1"}), viewerEcho)

	assert.Equal(t, "guest", serve(r, "/v", "").Body.String())
	assert.Equal(t, "member:u1", serve(r, "/v", "good").Body.String())
	assert.Equal(t, "guest", serve(r, "/v?guest=true", "good").Body.String())

	w := serve(r, "/v", "bad")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"type":"Unauthenticated"`)
}

func TestAuthRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/v", AuthRequired(stubVerifier{"good": "u1"}), viewerEcho)

	assert.Equal(t, http.StatusUnauthorized, serve(r, "/v", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, "/v", "bad").Code)
	assert.Equal(t, "member:u1", serve(r, "/v", "good").Body.String())
}

func TestExtractTokenScheme(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/v", AuthOptional(stubVerifier{"good": "u1"}), viewerEcho)

	req := httptest.NewRequest(http.MethodGet, "/v", nil)
	req.Header.Set("Authorization", "Basic good")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "guest", w.Body.String())
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := serve(r, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `"type":"Dependency"`))
}

func TestTimeoutSetsDeadline(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Timeout(time.Second))
	r.GET("/d", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		assert.True(t, ok)
		c.Status(http.StatusNoContent)
	})

	assert.Equal(t, http.StatusNoContent, serve(r, "/d", "").Code)
}
