package order

import (
	"context"

	"github.com/xiebiao/jpashop/internal/domain/item"
	"github.com/xiebiao/jpashop/internal/domain/member"
	"github.com/xiebiao/jpashop/internal/domain/shared"
)

// Service 订单领域服务
// 下单、取消涉及会员、商品、订单三个聚合，放在领域服务里协调
type Service interface {
	// Order 下单，返回订单ID
	Order(ctx context.Context, memberID, itemID uint, count int) (uint, error)

	// CancelOrder 取消订单并恢复库存
	CancelOrder(ctx context.Context, orderID uint) error

	// FindOrders 按条件检索订单（关联未加载）
	FindOrders(ctx context.Context, search Search) ([]*Order, error)
}

type service struct {
	orders  Repository
	members member.Repository
	items   item.Repository
	tx      shared.Transactor
}

// NewService 创建订单服务
func NewService(orders Repository, members member.Repository, items item.Repository, tx shared.Transactor) Service {
	return &service{orders: orders, members: members, items: items, tx: tx}
}

// Order 下单
// 步骤（同一事务）：
// 1. 查询会员和商品
// 2. 用会员地址创建配送信息
// 3. 按当前价格创建订单明细（扣减库存）
// 4. 保存订单（级联保存配送和明细），写回商品库存
func (s *service) Order(ctx context.Context, memberID, itemID uint, count int) (uint, error) {
	var orderID uint
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		m, err := s.members.FindOne(ctx, memberID)
		if err != nil {
			return err
		}
		it, err := s.items.FindOne(ctx, itemID)
		if err != nil {
			return err
		}

		delivery := NewDelivery(m.Address)

		orderItem, err := CreateOrderItem(it, it.Price, count)
		if err != nil {
			return err
		}

		o, err := CreateOrder(m, delivery, orderItem)
		if err != nil {
			return err
		}

		if err := s.orders.Save(ctx, o); err != nil {
			return err
		}
		if err := s.items.Update(ctx, it); err != nil {
			return err
		}

		orderID = o.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return orderID, nil
}

// CancelOrder 取消订单
func (s *service) CancelOrder(ctx context.Context, orderID uint) error {
	return s.tx.Transaction(ctx, func(ctx context.Context) error {
		o, err := s.orders.FindOne(ctx, orderID)
		if err != nil {
			return err
		}
		if err := o.Cancel(); err != nil {
			return err
		}
		if err := s.orders.UpdateStatus(ctx, o); err != nil {
			return err
		}
		for _, oi := range o.OrderItems {
			if err := s.items.Update(ctx, oi.Item); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *service) FindOrders(ctx context.Context, search Search) ([]*Order, error) {
	if search.Status != "" && !search.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.orders.FindAllByCriteria(ctx, search)
}
