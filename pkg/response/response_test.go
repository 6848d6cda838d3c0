package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/jpashop/pkg/errors"
)

func perform(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	handler(c)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestSuccess(t *testing.T) {
	w, resp := perform(t, func(c *gin.Context) {
		Success(c, Result{Count: 1, Data: []string{"kim"}})
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, resp.Code)
	assert.Equal(t, "success", resp.Message)
	assert.JSONEq(t, `{"count":1,"data":["kim"]}`, mustJSON(t, resp.Data))
}

func TestError(t *testing.T) {
	t.Run("业务错误使用错误码推导状态码", func(t *testing.T) {
		w, resp := perform(t, func(c *gin.Context) {
			Error(c, apperrors.New(apperrors.ErrCodeDuplicateMember, "已存在的会员"))
		})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, apperrors.ErrCodeDuplicateMember, resp.Code)
		assert.Equal(t, "已存在的会员", resp.Message)
	})

	t.Run("普通错误隐藏内部信息", func(t *testing.T) {
		w, resp := perform(t, func(c *gin.Context) {
			Error(c, errors.New("dial tcp 127.0.0.1:3306: connection refused"))
		})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, apperrors.ErrCodeInternal, resp.Code)
		assert.NotContains(t, resp.Message, "3306")
	})
}

func TestBindError(t *testing.T) {
	w, resp := perform(t, func(c *gin.Context) {
		BindError(c, errors.New("Key: 'name' Error:Field validation for 'Name' failed on the 'required' tag"))
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.ErrCodeBindError, resp.Code)
}

func mustJSON(t *testing.T, v interface{}) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
