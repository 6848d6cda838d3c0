package order

import (
	"context"
	"time"

	"github.com/xiebiao/jpashop/internal/domain/shared"
)

// =========================================
// 查询专用模型
// =========================================
// 这些结构直接由SQL投影得到，不是实体：没有行为，也不会被写回数据库。
// 当实体+JOIN无法满足分页或传输量要求时才使用

// SimpleQueryDto 订单概要投影（订单+会员名+配送地址）
type SimpleQueryDto struct {
	OrderID     uint           `json:"orderId"`
	Name        string         `json:"name"`
	OrderDate   time.Time      `json:"orderDate"`
	OrderStatus OrderStatus    `json:"orderStatus"`
	Address     shared.Address `json:"address"`
}

// QueryDto 订单投影（含明细）
type QueryDto struct {
	OrderID     uint            `json:"orderId"`
	Name        string          `json:"name"`
	OrderDate   time.Time       `json:"orderDate"`
	OrderStatus OrderStatus     `json:"orderStatus"`
	Address     shared.Address  `json:"address"`
	OrderItems  []*ItemQueryDto `json:"orderItems"`
}

// ItemQueryDto 订单明细投影
// OrderID只用于内存分组，不输出
type ItemQueryDto struct {
	OrderID    uint   `json:"-"`
	ItemName   string `json:"itemName"`
	OrderPrice int    `json:"orderPrice"`
	Count      int    `json:"count"`
}

// FlatDto 订单与明细JOIN后的一行
type FlatDto struct {
	OrderID     uint
	Name        string
	OrderDate   time.Time
	OrderStatus OrderStatus
	Address     shared.Address
	ItemName    string
	OrderPrice  int
	Count       int
}

// QueryRepository 订单投影查询
type QueryRepository interface {
	// FindOrderDtos 一条SQL投影出订单概要
	FindOrderDtos(ctx context.Context) ([]*SimpleQueryDto, error)

	// FindOrderQueryDtos 根查询1次 + 每个订单查询1次明细（1+N）
	FindOrderQueryDtos(ctx context.Context) ([]*QueryDto, error)

	// FindAllByDtoOptimization 根查询1次 + 用订单ID集合一次查出全部明细（1+1）
	FindAllByDtoOptimization(ctx context.Context) ([]*QueryDto, error)

	// FindAllByDtoFlat 一条SQL查出订单×明细的扁平结果
	FindAllByDtoFlat(ctx context.Context) ([]*FlatDto, error)
}

// GroupFlat 把扁平行还原成订单+明细的层级结构
// 订单按第一次出现的顺序输出，明细保持行顺序
func GroupFlat(flats []*FlatDto) []*QueryDto {
	result := make([]*QueryDto, 0)
	index := make(map[uint]*QueryDto)

	for _, f := range flats {
		dto, ok := index[f.OrderID]
		if !ok {
			dto = &QueryDto{
				OrderID:     f.OrderID,
				Name:        f.Name,
				OrderDate:   f.OrderDate,
				OrderStatus: f.OrderStatus,
				Address:     f.Address,
				OrderItems:  make([]*ItemQueryDto, 0),
			}
			index[f.OrderID] = dto
			result = append(result, dto)
		}
		dto.OrderItems = append(dto.OrderItems, &ItemQueryDto{
			OrderID:    f.OrderID,
			ItemName:   f.ItemName,
			OrderPrice: f.OrderPrice,
			Count:      f.Count,
		})
	}

	return result
}

// GroupItems 按订单ID把明细挂到对应订单上
// 没有明细的订单得到空切片而不是nil
func GroupItems(orders []*QueryDto, items []*ItemQueryDto) {
	byOrder := make(map[uint][]*ItemQueryDto, len(orders))
	for _, it := range items {
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}
	for _, o := range orders {
		o.OrderItems = byOrder[o.OrderID]
		if o.OrderItems == nil {
			o.OrderItems = make([]*ItemQueryDto, 0)
		}
	}
}

// OrderIDs 提取订单ID集合
func OrderIDs(orders []*QueryDto) []uint {
	ids := make([]uint, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.OrderID)
	}
	return ids
}
