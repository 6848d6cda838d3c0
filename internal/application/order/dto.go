package order

import (
	"time"

	"github.com/xiebiao/jpashop/internal/domain/order"
	"github.com/xiebiao/jpashop/internal/domain/shared"
)

// SimpleOrderDto 订单概要（只含对一关联）
type SimpleOrderDto struct {
	OrderID     uint              `json:"orderId"`
	Name        string            `json:"name"`
	OrderDate   time.Time         `json:"orderDate"`
	OrderStatus order.OrderStatus `json:"orderStatus"`
	Address     shared.Address    `json:"address"`
}

// OrderDto 订单（含明细）
// 明细也要转成DTO，不能把OrderItem实体直接挂在DTO上
type OrderDto struct {
	OrderID     uint              `json:"orderId"`
	Name        string            `json:"name"`
	OrderDate   time.Time         `json:"orderDate"`
	OrderStatus order.OrderStatus `json:"orderStatus"`
	Address     shared.Address    `json:"address"`
	OrderItems  []OrderItemDto    `json:"orderItems"`
}

// OrderItemDto 订单明细
type OrderItemDto struct {
	ItemName   string `json:"itemName"`
	OrderPrice int    `json:"orderPrice"`
	Count      int    `json:"count"`
}

// 调用前关联必须已加载
func toSimpleOrderDto(o *order.Order) SimpleOrderDto {
	return SimpleOrderDto{
		OrderID:     o.ID,
		Name:        o.Member.Name,
		OrderDate:   o.OrderDate,
		OrderStatus: o.Status,
		Address:     o.Delivery.Address,
	}
}

func toOrderDto(o *order.Order) OrderDto {
	items := make([]OrderItemDto, len(o.OrderItems))
	for i, oi := range o.OrderItems {
		items[i] = OrderItemDto{
			ItemName:   oi.Item.Name,
			OrderPrice: oi.OrderPrice,
			Count:      oi.Count,
		}
	}
	return OrderDto{
		OrderID:     o.ID,
		Name:        o.Member.Name,
		OrderDate:   o.OrderDate,
		OrderStatus: o.Status,
		Address:     o.Delivery.Address,
		OrderItems:  items,
	}
}

func toSimpleOrderDtos(orders []*order.Order) []SimpleOrderDto {
	result := make([]SimpleOrderDto, len(orders))
	for i, o := range orders {
		result[i] = toSimpleOrderDto(o)
	}
	return result
}

func toOrderDtos(orders []*order.Order) []OrderDto {
	result := make([]OrderDto, len(orders))
	for i, o := range orders {
		result[i] = toOrderDto(o)
	}
	return result
}
