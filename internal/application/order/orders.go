package order

import (
	"context"

	"github.com/xiebiao/jpashop/internal/domain/item"
	"github.com/xiebiao/jpashop/internal/domain/member"
	"github.com/xiebiao/jpashop/internal/domain/order"
)

// PageLimits 分页参数的默认值和上限
type PageLimits struct {
	Default int
	Max     int
}

// PageRequest 分页请求
type PageRequest struct {
	Offset int
	Limit  int
}

// OrderQueryUseCase 订单查询（含明细，一对多）
// 教学要点：两个订单各两条明细时的SQL条数：
//
//	V1   实体 + 懒加载                    1 + 2 + 2 + 2 + 4(商品) = 11
//	V2   DTO + 懒加载                     同V1
//	V3   全部JOIN，内存去重                1，不能分页
//	V3.1 对一JOIN分页 + 明细批量IN         3，与页大小无关
//	V4   投影 + 每个订单查明细             1 + N
//	V5   投影 + 明细IN                     2
//	V6   扁平投影，内存分组                1，数据重复、不能分页
//
// 选择顺序：先用实体转DTO，需要优化时JOIN（对一）+批量IN（一对多），仍不够再用DTO投影
type OrderQueryUseCase struct {
	orders  order.Repository
	queries order.QueryRepository
	members member.Repository
	items   item.Repository
	limits  PageLimits
}

// NewOrderQueryUseCase 创建订单查询用例
func NewOrderQueryUseCase(
	orders order.Repository,
	queries order.QueryRepository,
	members member.Repository,
	items item.Repository,
	limits PageLimits,
) *OrderQueryUseCase {
	return &OrderQueryUseCase{
		orders:  orders,
		queries: queries,
		members: members,
		items:   items,
		limits:  limits,
	}
}

// V1 返回实体，懒加载全部关联
func (uc *OrderQueryUseCase) V1(ctx context.Context) (result []*order.Order, err error) {
	ctx, span := startSpan(ctx, "orders.v1", strategyLazy)
	defer func() { endSpan(span, len(result), err) }()

	return uc.findAllLazy(ctx)
}

// V2 转成DTO，加载方式与V1相同
func (uc *OrderQueryUseCase) V2(ctx context.Context) (result []OrderDto, err error) {
	ctx, span := startSpan(ctx, "orders.v2", strategyLazy)
	defer func() { endSpan(span, len(result), err) }()

	orders, err := uc.findAllLazy(ctx)
	if err != nil {
		return nil, err
	}
	return toOrderDtos(orders), nil
}

func (uc *OrderQueryUseCase) findAllLazy(ctx context.Context) ([]*order.Order, error) {
	orders, err := uc.orders.FindAllByString(ctx, order.Search{})
	if err != nil {
		return nil, err
	}
	loader := newLazyLoader(uc.members, uc.orders, uc.items)
	for _, o := range orders {
		if err := loader.all(ctx, o); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// V3 一条SQL JOIN全部关联
func (uc *OrderQueryUseCase) V3(ctx context.Context) (result []OrderDto, err error) {
	ctx, span := startSpan(ctx, "orders.v3", strategyFetchJoin)
	defer func() { endSpan(span, len(result), err) }()

	orders, err := uc.orders.FindAllWithItem(ctx)
	if err != nil {
		return nil, err
	}
	return toOrderDtos(orders), nil
}

// V3Page 对一关联JOIN并在SQL里分页，明细批量加载
func (uc *OrderQueryUseCase) V3Page(ctx context.Context, page PageRequest) (result []OrderDto, err error) {
	ctx, span := startSpan(ctx, "orders.v3.1", strategyFetchJoinBatch)
	defer func() { endSpan(span, len(result), err) }()

	page = uc.normalize(page)
	orders, err := uc.orders.FindAllWithMemberDeliveryPaged(ctx, page.Offset, page.Limit)
	if err != nil {
		return nil, err
	}
	if err := uc.orders.BatchLoadOrderItems(ctx, orders); err != nil {
		return nil, err
	}
	return toOrderDtos(orders), nil
}

// normalize 参数默认值与范围限制
func (uc *OrderQueryUseCase) normalize(page PageRequest) PageRequest {
	if page.Offset < 0 {
		page.Offset = 0
	}
	if page.Limit < 1 {
		page.Limit = uc.limits.Default
	}
	if uc.limits.Max > 0 && page.Limit > uc.limits.Max {
		page.Limit = uc.limits.Max
	}
	return page
}

// V4 投影 + 每个订单查一次明细
func (uc *OrderQueryUseCase) V4(ctx context.Context) (result []*order.QueryDto, err error) {
	ctx, span := startSpan(ctx, "orders.v4", strategyProjectionN)
	defer func() { endSpan(span, len(result), err) }()

	return uc.queries.FindOrderQueryDtos(ctx)
}

// V5 投影 + 明细一次IN查询
func (uc *OrderQueryUseCase) V5(ctx context.Context) (result []*order.QueryDto, err error) {
	ctx, span := startSpan(ctx, "orders.v5", strategyProjectionIn)
	defer func() { endSpan(span, len(result), err) }()

	return uc.queries.FindAllByDtoOptimization(ctx)
}

// V6 扁平投影后在内存中按订单分组
func (uc *OrderQueryUseCase) V6(ctx context.Context) (result []*order.QueryDto, err error) {
	ctx, span := startSpan(ctx, "orders.v6", strategyProjectionFlat)
	defer func() { endSpan(span, len(result), err) }()

	flats, err := uc.queries.FindAllByDtoFlat(ctx)
	if err != nil {
		return nil, err
	}
	return order.GroupFlat(flats), nil
}
