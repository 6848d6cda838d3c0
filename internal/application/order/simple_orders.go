package order

import (
	"context"

	"github.com/xiebiao/jpashop/internal/domain/item"
	"github.com/xiebiao/jpashop/internal/domain/member"
	"github.com/xiebiao/jpashop/internal/domain/order"
)

// SimpleOrderQueryUseCase 订单概要查询（对一关联：会员、配送）
// 教学要点：同一份数据的四种查法，SQL条数（两个订单、两个会员时）：
//
//	V1 返回实体 + 懒加载          1 + N + N = 5
//	V2 DTO + 懒加载               1 + N + N = 5
//	V3 DTO + JOIN                 1
//	V4 直接投影DTO                1
//
// 对一关联JOIN不会让行数变多，优先用V3；V4少查几列，但仓储和API形状绑定在一起
type SimpleOrderQueryUseCase struct {
	orders  order.Repository
	queries order.QueryRepository
	members member.Repository
	items   item.Repository
}

// NewSimpleOrderQueryUseCase 创建订单概要查询用例
func NewSimpleOrderQueryUseCase(
	orders order.Repository,
	queries order.QueryRepository,
	members member.Repository,
	items item.Repository,
) *SimpleOrderQueryUseCase {
	return &SimpleOrderQueryUseCase{
		orders:  orders,
		queries: queries,
		members: members,
		items:   items,
	}
}

// V1 返回实体，逐个触发会员、配送的懒加载
func (uc *SimpleOrderQueryUseCase) V1(ctx context.Context) (result []*order.Order, err error) {
	ctx, span := startSpan(ctx, "simple-orders.v1", strategyLazy)
	defer func() { endSpan(span, len(result), err) }()

	orders, err := uc.orders.FindAllByString(ctx, order.Search{})
	if err != nil {
		return nil, err
	}
	loader := newLazyLoader(uc.members, uc.orders, uc.items)
	for _, o := range orders {
		if err := loader.memberAndDelivery(ctx, o); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// V2 转成DTO，加载方式与V1相同
func (uc *SimpleOrderQueryUseCase) V2(ctx context.Context) (result []SimpleOrderDto, err error) {
	ctx, span := startSpan(ctx, "simple-orders.v2", strategyLazy)
	defer func() { endSpan(span, len(result), err) }()

	orders, err := uc.orders.FindAllByString(ctx, order.Search{})
	if err != nil {
		return nil, err
	}
	loader := newLazyLoader(uc.members, uc.orders, uc.items)
	result = make([]SimpleOrderDto, 0, len(orders))
	for _, o := range orders {
		if err := loader.memberAndDelivery(ctx, o); err != nil {
			return nil, err
		}
		result = append(result, toSimpleOrderDto(o))
	}
	return result, nil
}

// V3 一条SQL JOIN会员和配送
func (uc *SimpleOrderQueryUseCase) V3(ctx context.Context) (result []SimpleOrderDto, err error) {
	ctx, span := startSpan(ctx, "simple-orders.v3", strategyFetchJoin)
	defer func() { endSpan(span, len(result), err) }()

	orders, err := uc.orders.FindAllWithMemberDelivery(ctx)
	if err != nil {
		return nil, err
	}
	return toSimpleOrderDtos(orders), nil
}

// V4 直接投影成DTO
func (uc *SimpleOrderQueryUseCase) V4(ctx context.Context) (result []*order.SimpleQueryDto, err error) {
	ctx, span := startSpan(ctx, "simple-orders.v4", strategyProjection)
	defer func() { endSpan(span, len(result), err) }()

	return uc.queries.FindOrderDtos(ctx)
}
