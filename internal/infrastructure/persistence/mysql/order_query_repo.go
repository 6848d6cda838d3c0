package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/jpashop/internal/domain/order"
	"github.com/xiebiao/jpashop/internal/domain/shared"
	apperrors "github.com/xiebiao/jpashop/pkg/errors"
)

// orderQueryRepository 订单投影查询
// 直接SELECT需要的列扫描到查询模型，不经过实体
type orderQueryRepository struct {
	db *gorm.DB
}

// NewOrderQueryRepository 创建订单投影查询仓储
func NewOrderQueryRepository(db *gorm.DB) order.QueryRepository {
	return &orderQueryRepository{db: db}
}

// orderSummaryRow 订单+会员名+配送地址
type orderSummaryRow struct {
	OrderID     uint
	Name        string
	OrderDate   time.Time
	OrderStatus string
	City        string
	Street      string
	Zipcode     string
}

// orderFlatRow 订单概要+一条明细
type orderFlatRow struct {
	OrderID     uint
	Name        string
	OrderDate   time.Time
	OrderStatus string
	City        string
	Street      string
	Zipcode     string
	ItemName    string
	OrderPrice  int
	Count       int
}

const orderSummaryColumns = "o.id AS order_id, m.name AS name, o.order_date, o.status AS order_status, d.city, d.street, d.zipcode"

func (r *orderQueryRepository) findSummaries(ctx context.Context) ([]orderSummaryRow, error) {
	var rows []orderSummaryRow
	err := dbFrom(ctx, r.db).
		Table("orders o").
		Select(orderSummaryColumns).
		Joins("JOIN members m ON m.id = o.member_id").
		Joins("JOIN deliveries d ON d.id = o.delivery_id").
		Order("o.id").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return rows, nil
}

// FindOrderDtos 订单概要，一条SQL
func (r *orderQueryRepository) FindOrderDtos(ctx context.Context) ([]*order.SimpleQueryDto, error) {
	rows, err := r.findSummaries(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]*order.SimpleQueryDto, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, &order.SimpleQueryDto{
			OrderID:     row.OrderID,
			Name:        row.Name,
			OrderDate:   row.OrderDate,
			OrderStatus: order.OrderStatus(row.OrderStatus),
			Address:     shared.NewAddress(row.City, row.Street, row.Zipcode),
		})
	}
	return dtos, nil
}

// FindOrderQueryDtos 根查询1次，每个订单再查1次明细
// 对一关联JOIN不增加行数，先一次查出；一对多关联单独查
func (r *orderQueryRepository) FindOrderQueryDtos(ctx context.Context) ([]*order.QueryDto, error) {
	result, err := r.findOrders(ctx)
	if err != nil {
		return nil, err
	}

	for _, o := range result {
		items, err := r.findOrderItems(ctx, o.OrderID)
		if err != nil {
			return nil, err
		}
		o.OrderItems = items
	}
	return result, nil
}

// FindAllByDtoOptimization 根查询1次 + 明细IN查询1次，内存按订单ID分组
func (r *orderQueryRepository) FindAllByDtoOptimization(ctx context.Context) ([]*order.QueryDto, error) {
	result, err := r.findOrders(ctx)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return result, nil
	}

	items, err := r.findOrderItemsIn(ctx, order.OrderIDs(result))
	if err != nil {
		return nil, err
	}
	order.GroupItems(result, items)
	return result, nil
}

// FindAllByDtoFlat 一条SQL，订单×明细
// 传输的数据有重复（订单字段在每行都出现），且无法按订单分页
func (r *orderQueryRepository) FindAllByDtoFlat(ctx context.Context) ([]*order.FlatDto, error) {
	var rows []orderFlatRow
	err := dbFrom(ctx, r.db).
		Table("orders o").
		Select(orderSummaryColumns + ", i.name AS item_name, oi.order_price, oi.count").
		Joins("JOIN members m ON m.id = o.member_id").
		Joins("JOIN deliveries d ON d.id = o.delivery_id").
		Joins("JOIN order_items oi ON oi.order_id = o.id").
		Joins("JOIN items i ON i.id = oi.item_id").
		Order("o.id, oi.id").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询订单失败")
	}

	flats := make([]*order.FlatDto, 0, len(rows))
	for _, row := range rows {
		flats = append(flats, &order.FlatDto{
			OrderID:     row.OrderID,
			Name:        row.Name,
			OrderDate:   row.OrderDate,
			OrderStatus: order.OrderStatus(row.OrderStatus),
			Address:     shared.NewAddress(row.City, row.Street, row.Zipcode),
			ItemName:    row.ItemName,
			OrderPrice:  row.OrderPrice,
			Count:       row.Count,
		})
	}
	return flats, nil
}

func (r *orderQueryRepository) findOrders(ctx context.Context) ([]*order.QueryDto, error) {
	rows, err := r.findSummaries(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*order.QueryDto, 0, len(rows))
	for _, row := range rows {
		result = append(result, &order.QueryDto{
			OrderID:     row.OrderID,
			Name:        row.Name,
			OrderDate:   row.OrderDate,
			OrderStatus: order.OrderStatus(row.OrderStatus),
			Address:     shared.NewAddress(row.City, row.Street, row.Zipcode),
		})
	}
	return result, nil
}

const orderItemColumns = "oi.order_id, i.name AS item_name, oi.order_price, oi.count"

func (r *orderQueryRepository) findOrderItems(ctx context.Context, orderID uint) ([]*order.ItemQueryDto, error) {
	items := make([]*order.ItemQueryDto, 0)
	err := dbFrom(ctx, r.db).
		Table("order_items oi").
		Select(orderItemColumns).
		Joins("JOIN items i ON i.id = oi.item_id").
		Where("oi.order_id = ?", orderID).
		Order("oi.id").
		Scan(&items).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询订单明细失败")
	}
	return items, nil
}

func (r *orderQueryRepository) findOrderItemsIn(ctx context.Context, orderIDs []uint) ([]*order.ItemQueryDto, error) {
	var items []*order.ItemQueryDto
	err := dbFrom(ctx, r.db).
		Table("order_items oi").
		Select(orderItemColumns).
		Joins("JOIN items i ON i.id = oi.item_id").
		Where("oi.order_id IN ?", orderIDs).
		Order("oi.id").
		Scan(&items).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询订单明细失败")
	}
	return items, nil
}
