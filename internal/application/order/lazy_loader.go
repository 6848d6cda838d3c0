package order

import (
	"context"

	"github.com/xiebiao/jpashop/internal/domain/item"
	"github.com/xiebiao/jpashop/internal/domain/member"
	"github.com/xiebiao/jpashop/internal/domain/order"
)

// lazyLoader 按需加载订单的关联对象
// 教学要点:
// 1. 关联为nil时才查询，第一次访问触发一条SQL（懒加载）
// 2. 同一个loader内按ID缓存已加载的对象（身份映射），同一会员只查一次
// 3. loader只在一次用例调用内有效，不在请求之间共享
//
// 用它遍历N个订单：1条订单查询 + 最多N条会员 + N条配送 + ...，这就是N+1问题
type lazyLoader struct {
	members member.Repository
	orders  order.Repository
	items   item.Repository

	memberByID   map[uint]*member.Member
	deliveryByID map[uint]*order.Delivery
	itemByID     map[uint]*item.Item
}

func newLazyLoader(members member.Repository, orders order.Repository, items item.Repository) *lazyLoader {
	return &lazyLoader{
		members:      members,
		orders:       orders,
		items:        items,
		memberByID:   make(map[uint]*member.Member),
		deliveryByID: make(map[uint]*order.Delivery),
		itemByID:     make(map[uint]*item.Item),
	}
}

func (l *lazyLoader) member(ctx context.Context, o *order.Order) (*member.Member, error) {
	if o.Member != nil {
		return o.Member, nil
	}
	m, ok := l.memberByID[o.MemberID]
	if !ok {
		var err error
		if m, err = l.members.FindOne(ctx, o.MemberID); err != nil {
			return nil, err
		}
		l.memberByID[o.MemberID] = m
	}
	o.Member = m
	return m, nil
}

func (l *lazyLoader) delivery(ctx context.Context, o *order.Order) (*order.Delivery, error) {
	if o.Delivery != nil {
		return o.Delivery, nil
	}
	d, ok := l.deliveryByID[o.DeliveryID]
	if !ok {
		var err error
		if d, err = l.orders.FindDelivery(ctx, o.DeliveryID); err != nil {
			return nil, err
		}
		l.deliveryByID[o.DeliveryID] = d
	}
	o.Delivery = d
	return d, nil
}

func (l *lazyLoader) orderItems(ctx context.Context, o *order.Order) ([]*order.OrderItem, error) {
	if o.OrderItems != nil {
		return o.OrderItems, nil
	}
	items, err := l.orders.FindOrderItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.OrderItems = items
	return items, nil
}

func (l *lazyLoader) item(ctx context.Context, oi *order.OrderItem) (*item.Item, error) {
	if oi.Item != nil {
		return oi.Item, nil
	}
	it, ok := l.itemByID[oi.ItemID]
	if !ok {
		var err error
		if it, err = l.items.FindOne(ctx, oi.ItemID); err != nil {
			return nil, err
		}
		l.itemByID[oi.ItemID] = it
	}
	oi.Item = it
	return it, nil
}

// memberAndDelivery 强制加载对一关联
func (l *lazyLoader) memberAndDelivery(ctx context.Context, o *order.Order) error {
	if _, err := l.member(ctx, o); err != nil {
		return err
	}
	_, err := l.delivery(ctx, o)
	return err
}

// all 强制加载全部关联
func (l *lazyLoader) all(ctx context.Context, o *order.Order) error {
	if err := l.memberAndDelivery(ctx, o); err != nil {
		return err
	}
	items, err := l.orderItems(ctx, o)
	if err != nil {
		return err
	}
	for _, oi := range items {
		if _, err := l.item(ctx, oi); err != nil {
			return err
		}
	}
	return nil
}
