package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code int
		want int
	}{
		{ErrCodeNotEnoughStock, http.StatusBadRequest},
		{ErrCodeInvalidParams, http.StatusBadRequest},
		{ErrCodeMemberNotFound, http.StatusNotFound},
		{ErrCodeDuplicateMember, http.StatusConflict},
		{ErrCodeDatabaseError, http.StatusInternalServerError},
		{0, http.StatusInternalServerError},
		{12345, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.code))
		})
	}
}

func TestAppErrorIs(t *testing.T) {
	notFound := New(ErrCodeMemberNotFound, "会员不存在")

	t.Run("WithMessage后按错误码匹配", func(t *testing.T) {
		err := fmt.Errorf("handler: %w", notFound.WithMessage("会员不存在: id=3"))
		assert.True(t, errors.Is(err, notFound))
	})

	t.Run("不同错误码不匹配", func(t *testing.T) {
		assert.False(t, errors.Is(New(ErrCodeItemNotFound, "商品不存在"), notFound))
	})
}

func TestGetAppError(t *testing.T) {
	t.Run("普通错误包装为内部错误", func(t *testing.T) {
		raw := errors.New("connection refused")
		appErr := GetAppError(raw)
		require.NotNil(t, appErr)
		assert.Equal(t, ErrCodeInternal, appErr.Code)
		assert.ErrorIs(t, appErr, raw)
	})

	t.Run("AppError原样返回", func(t *testing.T) {
		src := New(ErrCodeConflict, "冲突")
		assert.Same(t, src, GetAppError(fmt.Errorf("wrap: %w", src)))
	})
}
