package mysql

import (
	"github.com/xiebiao/jpashop/internal/domain/item"
	"github.com/xiebiao/jpashop/internal/domain/member"
	"github.com/xiebiao/jpashop/internal/domain/order"
	"github.com/xiebiao/jpashop/internal/domain/shared"
)

// =========================================
// 辅助函数：模型转换
// =========================================
// Repository负责GORM模型与领域实体之间的转换，domain层不感知GORM

func toAddress(a AddressModel) shared.Address {
	return shared.Address{City: a.City, Street: a.Street, Zipcode: a.Zipcode}
}

func toAddressModel(a shared.Address) AddressModel {
	return AddressModel{City: a.City, Street: a.Street, Zipcode: a.Zipcode}
}

func toMemberEntity(model *MemberModel) *member.Member {
	return &member.Member{
		ID:      model.ID,
		Name:    model.Name,
		Address: toAddress(model.Address),
	}
}

func toMemberModel(m *member.Member) *MemberModel {
	return &MemberModel{
		ID:      m.ID,
		Name:    m.Name,
		Address: toAddressModel(m.Address),
	}
}

func toItemEntity(model *ItemModel) *item.Item {
	return &item.Item{
		ID:            model.ID,
		Name:          model.Name,
		Price:         model.Price,
		StockQuantity: model.StockQuantity,
		Author:        model.Author,
		ISBN:          model.ISBN,
	}
}

func toItemModel(i *item.Item) *ItemModel {
	return &ItemModel{
		ID:            i.ID,
		DType:         dtypeBook,
		Name:          i.Name,
		Price:         i.Price,
		StockQuantity: i.StockQuantity,
		Author:        i.Author,
		ISBN:          i.ISBN,
	}
}

func toDeliveryEntity(model *DeliveryModel) *order.Delivery {
	return &order.Delivery{
		ID:      model.ID,
		Address: toAddress(model.Address),
		Status:  order.DeliveryStatus(model.Status),
	}
}

// toOrderEntity 只转换订单本身
// Member/Delivery在模型中已被JOIN填充（ID非0）时才挂到实体上
func toOrderEntity(model *OrderModel) *order.Order {
	o := &order.Order{
		ID:         model.ID,
		OrderDate:  model.OrderDate,
		Status:     order.OrderStatus(model.Status),
		MemberID:   model.MemberID,
		DeliveryID: model.DeliveryID,
	}
	if model.Member.ID != 0 {
		o.Member = toMemberEntity(&model.Member)
	}
	if model.Delivery.ID != 0 {
		o.Delivery = toDeliveryEntity(&model.Delivery)
	}
	return o
}

func toOrderItemEntity(model *OrderItemModel) *order.OrderItem {
	oi := &order.OrderItem{
		ID:         model.ID,
		OrderID:    model.OrderID,
		ItemID:     model.ItemID,
		OrderPrice: model.OrderPrice,
		Count:      model.Count,
	}
	if model.Item.ID != 0 {
		oi.Item = toItemEntity(&model.Item)
	}
	return oi
}
