package order

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/jpashop/internal/domain/order"
	"github.com/xiebiao/jpashop/pkg/metrics"
)

// PlaceOrderUseCase 下单用例
// 事务、库存扣减都在领域服务order.Service.Order中完成，这里只做指标和日志
type PlaceOrderUseCase struct {
	orderService order.Service
}

// NewPlaceOrderUseCase 创建下单用例
func NewPlaceOrderUseCase(orderService order.Service) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{orderService: orderService}
}

// PlaceOrderRequest 下单请求DTO
type PlaceOrderRequest struct {
	MemberID uint
	ItemID   uint
	Count    int
}

// PlaceOrderResponse 下单响应DTO
type PlaceOrderResponse struct {
	ID uint `json:"id"`
}

// Execute 执行下单
func (uc *PlaceOrderUseCase) Execute(ctx context.Context, req PlaceOrderRequest) (*PlaceOrderResponse, error) {
	start := time.Now()
	defer func() {
		metrics.ObserveHistogram(metrics.OrderPlacementDuration, time.Since(start).Seconds())
	}()

	id, err := uc.orderService.Order(ctx, req.MemberID, req.ItemID, req.Count)
	if err != nil {
		metrics.IncCounter(metrics.OrdersFailedTotal)
		return nil, err
	}

	metrics.IncCounter(metrics.OrdersPlacedTotal)
	zap.L().Info("下单成功",
		zap.Uint("order_id", id),
		zap.Uint("member_id", req.MemberID),
		zap.Uint("item_id", req.ItemID),
		zap.Int("count", req.Count),
	)
	return &PlaceOrderResponse{ID: id}, nil
}
