package order

import (
	"context"

	"github.com/xiebiao/jpashop/internal/domain/item"
	"github.com/xiebiao/jpashop/internal/domain/member"
	"github.com/xiebiao/jpashop/internal/domain/order"
)

// SearchOrdersUseCase 订单检索用例
// 检索结果不含关联，会员名、配送地址通过懒加载补齐
type SearchOrdersUseCase struct {
	orderService order.Service
	orders       order.Repository
	members      member.Repository
	items        item.Repository
}

// NewSearchOrdersUseCase 创建检索用例
func NewSearchOrdersUseCase(
	orderService order.Service,
	orders order.Repository,
	members member.Repository,
	items item.Repository,
) *SearchOrdersUseCase {
	return &SearchOrdersUseCase{
		orderService: orderService,
		orders:       orders,
		members:      members,
		items:        items,
	}
}

// SearchOrdersRequest 检索条件，空字段表示不限
type SearchOrdersRequest struct {
	MemberName  string
	OrderStatus string
}

// Execute 执行检索
func (uc *SearchOrdersUseCase) Execute(ctx context.Context, req SearchOrdersRequest) ([]SimpleOrderDto, error) {
	found, err := uc.orderService.FindOrders(ctx, order.Search{
		MemberName: req.MemberName,
		Status:     order.OrderStatus(req.OrderStatus),
	})
	if err != nil {
		return nil, err
	}

	loader := newLazyLoader(uc.members, uc.orders, uc.items)
	result := make([]SimpleOrderDto, 0, len(found))
	for _, o := range found {
		if err := loader.memberAndDelivery(ctx, o); err != nil {
			return nil, err
		}
		result = append(result, toSimpleOrderDto(o))
	}
	return result, nil
}
