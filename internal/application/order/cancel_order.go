package order

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/jpashop/internal/domain/order"
	"github.com/xiebiao/jpashop/pkg/metrics"
)

// CancelOrderUseCase 取消订单用例
type CancelOrderUseCase struct {
	orderService order.Service
}

// NewCancelOrderUseCase 创建取消用例
func NewCancelOrderUseCase(orderService order.Service) *CancelOrderUseCase {
	return &CancelOrderUseCase{orderService: orderService}
}

// Execute 取消订单，已发货的订单返回order.ErrAlreadyDelivered
func (uc *CancelOrderUseCase) Execute(ctx context.Context, orderID uint) error {
	if err := uc.orderService.CancelOrder(ctx, orderID); err != nil {
		return err
	}

	metrics.IncCounter(metrics.OrdersCancelledTotal)
	zap.L().Info("订单已取消", zap.Uint("order_id", orderID))
	return nil
}
