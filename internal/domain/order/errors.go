package order

import (
	apperrors "github.com/xiebiao/jpashop/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "订单不存在")

	// ErrDeliveryNotFound 配送信息不存在
	ErrDeliveryNotFound = apperrors.New(apperrors.ErrCodeNotFound, "配送信息不存在")

	// ErrAlreadyDelivered 已发货的订单不能取消
	ErrAlreadyDelivered = apperrors.New(apperrors.ErrCodeAlreadyDelivered, "已发货的商品不能取消")

	// ErrAlreadyCancelled 订单已取消
	ErrAlreadyCancelled = apperrors.New(apperrors.ErrCodeBusinessError, "订单已取消")

	// ErrEmptyOrderItems 订单明细为空
	ErrEmptyOrderItems = apperrors.New(apperrors.ErrCodeInvalidParams, "订单明细不能为空")

	// ErrInvalidCount 购买数量不合法
	ErrInvalidCount = apperrors.New(apperrors.ErrCodeInvalidParams, "购买数量必须大于0")

	// ErrInvalidStatus 未知的订单状态
	ErrInvalidStatus = apperrors.New(apperrors.ErrCodeInvalidParams, "未知的订单状态")

	// ErrAssociationNotLoaded 关联对象未加载（调用方漏了加载步骤，属于程序错误）
	ErrAssociationNotLoaded = apperrors.New(apperrors.ErrCodeInternal, "订单关联数据未加载")
)
