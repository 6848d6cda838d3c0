package member

import (
	apperrors "github.com/xiebiao/jpashop/pkg/errors"
)

// 会员领域错误定义
var (
	// ErrMemberNotFound 会员不存在
	ErrMemberNotFound = apperrors.New(apperrors.ErrCodeMemberNotFound, "会员不存在")

	// ErrDuplicateMember 会员名已存在
	ErrDuplicateMember = apperrors.New(apperrors.ErrCodeDuplicateMember, "已存在的会员")

	// ErrEmptyName 会员名为空
	ErrEmptyName = apperrors.New(apperrors.ErrCodeInvalidParams, "会员名不能为空")
)
