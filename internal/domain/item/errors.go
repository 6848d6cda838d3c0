package item

import (
	apperrors "github.com/xiebiao/jpashop/pkg/errors"
)

// 商品领域错误定义
var (
	// ErrItemNotFound 商品不存在
	ErrItemNotFound = apperrors.New(apperrors.ErrCodeItemNotFound, "商品不存在")

	// ErrNotEnoughStock 库存不足
	ErrNotEnoughStock = apperrors.New(apperrors.ErrCodeNotEnoughStock, "库存不足")

	// ErrInvalidItem 商品信息不合法
	ErrInvalidItem = apperrors.New(apperrors.ErrCodeInvalidParams, "商品信息不合法")
)
