package order

import (
	"time"

	"github.com/xiebiao/jpashop/internal/domain/item"
	"github.com/xiebiao/jpashop/internal/domain/member"
	"github.com/xiebiao/jpashop/internal/domain/shared"
)

// OrderStatus 订单状态
// 使用字符串存储，新增状态不会打乱已有数据的含义
type OrderStatus string

const (
	StatusOrdered OrderStatus = "ORDERED" // 已下单
	StatusCancel  OrderStatus = "CANCEL"  // 已取消
)

// Valid 是否为已知状态
func (s OrderStatus) Valid() bool {
	return s == StatusOrdered || s == StatusCancel
}

// DeliveryStatus 配送状态
type DeliveryStatus string

const (
	DeliveryReady DeliveryStatus = "READY" // 准备中
	DeliveryComp  DeliveryStatus = "COMP"  // 已发货
)

// Order 订单实体（聚合根）
// 关联对象的加载约定：
// 1. Member、Delivery为nil表示尚未加载，只有MemberID、DeliveryID可用
// 2. OrderItems为nil表示尚未加载；加载过但没有明细时是长度为0的切片
// 3. 同一个查询结果里，不同订单引用的同一个会员指向同一个*member.Member
type Order struct {
	ID         uint
	OrderDate  time.Time
	Status     OrderStatus
	MemberID   uint
	Member     *member.Member
	DeliveryID uint
	Delivery   *Delivery
	OrderItems []*OrderItem
}

// OrderItem 订单明细
// OrderPrice是下单时的价格快照，之后商品改价不影响历史订单
type OrderItem struct {
	ID         uint
	OrderID    uint
	ItemID     uint
	Item       *item.Item
	OrderPrice int
	Count      int
}

// Delivery 配送信息，与订单一对一
type Delivery struct {
	ID      uint
	Address shared.Address
	Status  DeliveryStatus
}

// NewDelivery 创建配送信息（初始状态READY）
func NewDelivery(address shared.Address) *Delivery {
	return &Delivery{Address: address, Status: DeliveryReady}
}

// CreateOrderItem 创建订单明细（工厂方法）
// 创建即扣减库存，库存不足返回item.ErrNotEnoughStock
func CreateOrderItem(it *item.Item, orderPrice, count int) (*OrderItem, error) {
	if count <= 0 {
		return nil, ErrInvalidCount
	}
	if err := it.RemoveStock(count); err != nil {
		return nil, err
	}
	return &OrderItem{
		ItemID:     it.ID,
		Item:       it,
		OrderPrice: orderPrice,
		Count:      count,
	}, nil
}

// CreateOrder 创建订单（工厂方法）
func CreateOrder(m *member.Member, delivery *Delivery, orderItems ...*OrderItem) (*Order, error) {
	if len(orderItems) == 0 {
		return nil, ErrEmptyOrderItems
	}
	o := &Order{
		OrderDate:  time.Now(),
		Status:     StatusOrdered,
		MemberID:   m.ID,
		Member:     m,
		Delivery:   delivery,
		OrderItems: make([]*OrderItem, 0, len(orderItems)),
	}
	for _, oi := range orderItems {
		o.AddOrderItem(oi)
	}
	return o, nil
}

// AddOrderItem 添加明细并维护双向关联
func (o *Order) AddOrderItem(oi *OrderItem) {
	oi.OrderID = o.ID
	o.OrderItems = append(o.OrderItems, oi)
}

// Cancel 取消订单
// 业务规则：已发货（COMP）的订单不能取消；取消时恢复每个商品的库存
// 要求Delivery和OrderItems[*].Item已加载
func (o *Order) Cancel() error {
	if o.Delivery == nil {
		return ErrAssociationNotLoaded
	}
	if o.Delivery.Status == DeliveryComp {
		return ErrAlreadyDelivered
	}
	if o.Status == StatusCancel {
		return ErrAlreadyCancelled
	}
	for _, oi := range o.OrderItems {
		if oi.Item == nil {
			return ErrAssociationNotLoaded
		}
	}
	for _, oi := range o.OrderItems {
		oi.Cancel()
	}
	o.Status = StatusCancel
	return nil
}

// TotalPrice 订单总价
func (o *Order) TotalPrice() int {
	total := 0
	for _, oi := range o.OrderItems {
		total += oi.TotalPrice()
	}
	return total
}

// Cancel 恢复库存，要求Item已加载
func (oi *OrderItem) Cancel() {
	oi.Item.AddStock(oi.Count)
}

// TotalPrice 明细小计
func (oi *OrderItem) TotalPrice() int {
	return oi.OrderPrice * oi.Count
}

// Search 订单检索条件
// 零值表示不过滤：Status为空不按状态过滤，MemberName为空不按会员名过滤
type Search struct {
	MemberName string
	Status     OrderStatus
}

// MaxSearchResults 动态检索的最大返回条数
const MaxSearchResults = 1000
