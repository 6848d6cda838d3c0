package order

import (
	"context"
)

// Repository 订单仓储接口
// 查询方法按“加载了哪些关联”区分，调用方根据场景选择，避免N+1
type Repository interface {
	// Save 保存订单，级联保存Delivery和OrderItems并回填ID
	Save(ctx context.Context, o *Order) error

	// UpdateStatus 写回订单状态
	UpdateStatus(ctx context.Context, o *Order) error

	// FindOne 按ID查询，加载Delivery、OrderItems及每个明细的Item
	FindOne(ctx context.Context, id uint) (*Order, error)

	// FindAllByString 动态检索（拼接查询字符串），只返回订单本身，关联均未加载
	FindAllByString(ctx context.Context, search Search) ([]*Order, error)

	// FindAllByCriteria 动态检索（条件表达式组合），结果同FindAllByString
	FindAllByCriteria(ctx context.Context, search Search) ([]*Order, error)

	// FindAllWithMemberDelivery 一条SQL同时加载Member和Delivery
	FindAllWithMemberDelivery(ctx context.Context) ([]*Order, error)

	// FindAllWithMemberDeliveryPaged 同上，在SQL里分页
	FindAllWithMemberDeliveryPaged(ctx context.Context, offset, limit int) ([]*Order, error)

	// FindAllWithItem 一条SQL加载Member、Delivery、OrderItems、Item
	// 一对多JOIN会让订单行重复，在内存中去重，因此不能分页
	FindAllWithItem(ctx context.Context) ([]*Order, error)

	// BatchLoadOrderItems 为一批订单加载明细及商品
	// 明细一条IN查询，商品一条IN查询，与订单数量无关
	BatchLoadOrderItems(ctx context.Context, orders []*Order) error

	// FindOrderItems 查询单个订单的明细（Item未加载），懒加载时使用
	FindOrderItems(ctx context.Context, orderID uint) ([]*OrderItem, error)

	// FindDelivery 按ID查询配送信息，懒加载时使用
	FindDelivery(ctx context.Context, id uint) (*Delivery, error)
}
