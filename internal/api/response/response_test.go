package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pulse-go/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, err error) (int, ErrorInfo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Error(c, err)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body.Error
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusOf(apperr.KindNotFound))
	assert.Equal(t, http.StatusConflict, StatusOf(apperr.KindConflict))
	assert.Equal(t, http.StatusBadRequest, StatusOf(apperr.KindInvalidOperation))
	assert.Equal(t, http.StatusUnauthorized, StatusOf(apperr.KindUnauthenticated))
	assert.Equal(t, http.StatusForbidden, StatusOf(apperr.KindForbidden))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(apperr.KindDependency))
}

func TestErrorEnvelope(t *testing.T) {
	code, info := render(t, apperr.NotFound("帖子不存在"))
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, ErrorInfo{Code: 404, Message: "帖子不存在", Type: "NotFound"}, info)

	code, info = render(t, apperr.ErrForbidden)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Forbidden", info.Message)
}

func TestDependencyErrorsHideCause(t *testing.T) {
	code, info := render(t, errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Dependency", info.Type)
	assert.NotContains(t, info.Message, "pq")

	_, info = render(t, &apperr.Error{Kind: apperr.KindDependency, Message: "帖子已删除，部分关联数据清理失败", Leg: "comments,media"})
	assert.Equal(t, "comments,media", info.Leg)
	assert.Equal(t, "帖子已删除，部分关联数据清理失败", info.Message)
}
