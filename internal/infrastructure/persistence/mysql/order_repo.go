package mysql

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/jpashop/internal/domain/item"
	"github.com/xiebiao/jpashop/internal/domain/member"
	"github.com/xiebiao/jpashop/internal/domain/order"
	"github.com/xiebiao/jpashop/internal/domain/shared"
	apperrors "github.com/xiebiao/jpashop/pkg/errors"
)

// orderRepository 订单仓储实现（MySQL）
// 教学要点:
// 每个查询方法加载的关联范围不同，SQL条数也不同：
//
//	FindAllByString / FindAllByCriteria   1条，只有订单
//	FindAllWithMemberDelivery(+Paged)     1条，LEFT JOIN会员、配送
//	FindAllWithItem                       1条，JOIN全部关联后内存去重
//	BatchLoadOrderItems                   2条，明细IN + 商品IN
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Save 保存订单
// 顺序：配送 → 订单 → 明细，在一个（嵌套）事务中完成
func (r *orderRepository) Save(ctx context.Context, o *order.Order) error {
	if o.Delivery == nil {
		return order.ErrAssociationNotLoaded
	}

	err := dbFrom(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		delivery := &DeliveryModel{
			Address: toAddressModel(o.Delivery.Address),
			Status:  string(o.Delivery.Status),
		}
		if err := tx.Create(delivery).Error; err != nil {
			return err
		}

		model := &OrderModel{
			MemberID:   o.MemberID,
			DeliveryID: delivery.ID,
			OrderDate:  o.OrderDate,
			Status:     string(o.Status),
		}
		if err := tx.Omit(clause.Associations).Create(model).Error; err != nil {
			return err
		}

		items := make([]OrderItemModel, 0, len(o.OrderItems))
		for _, oi := range o.OrderItems {
			items = append(items, OrderItemModel{
				OrderID:    model.ID,
				ItemID:     oi.ItemID,
				OrderPrice: oi.OrderPrice,
				Count:      oi.Count,
			})
		}
		if len(items) > 0 {
			if err := tx.Omit(clause.Associations).Create(&items).Error; err != nil {
				return err
			}
		}

		// 回填ID
		o.Delivery.ID = delivery.ID
		o.DeliveryID = delivery.ID
		o.ID = model.ID
		for i, oi := range o.OrderItems {
			oi.ID = items[i].ID
			oi.OrderID = model.ID
		}
		return nil
	})
	if err != nil {
		return apperrors.Wrap(err, "保存订单失败")
	}
	return nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, o *order.Order) error {
	err := dbFrom(ctx, r.db).Model(&OrderModel{ID: o.ID}).Update("status", string(o.Status)).Error
	if err != nil {
		return apperrors.Wrap(err, "更新订单状态失败")
	}
	return nil
}

// FindOne 加载订单及全部关联（取消订单时需要）
func (r *orderRepository) FindOne(ctx context.Context, id uint) (*order.Order, error) {
	var model OrderModel
	err := dbFrom(ctx, r.db).
		Joins("Member").
		Joins("Delivery").
		Preload("OrderItems", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id") }).
		Preload("OrderItems.Item").
		First(&model, "orders.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}

	// 同一商品出现在多条明细时共用一个*item.Item，取消时库存才能累加恢复
	o := toOrderEntity(&model)
	o.OrderItems = make([]*order.OrderItem, 0, len(model.OrderItems))
	items := make(map[uint]*item.Item)
	for i := range model.OrderItems {
		oi := toOrderItemEntity(&model.OrderItems[i])
		if oi.Item != nil {
			if seen, ok := items[oi.ItemID]; ok {
				oi.Item = seen
			} else {
				items[oi.ItemID] = oi.Item
			}
		}
		o.OrderItems = append(o.OrderItems, oi)
	}
	return o, nil
}

// FindAllByString 动态检索：按条件逐段拼接查询字符串
// 第一个条件前加where，之后的条件前加and
func (r *orderRepository) FindAllByString(ctx context.Context, search order.Search) ([]*order.Order, error) {
	query := "SELECT o.* FROM orders o JOIN members m ON m.id = o.member_id"
	var args []interface{}

	isFirstCondition := true
	appendCondition := func(cond string) {
		if isFirstCondition {
			query += " WHERE "
			isFirstCondition = false
		} else {
			query += " AND "
		}
		query += cond
	}

	// 订单状态
	if search.Status != "" {
		appendCondition("o.status = ?")
		args = append(args, string(search.Status))
	}

	// 会员名（包含匹配）
	if name := strings.TrimSpace(search.MemberName); name != "" {
		appendCondition("m.name LIKE ? ESCAPE '" + likeEscape + "'")
		args = append(args, containsPattern(name))
	}

	query += " ORDER BY o.id LIMIT ?"
	args = append(args, order.MaxSearchResults)

	var models []OrderModel
	if err := dbFrom(ctx, r.db).Raw(query, args...).Scan(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "检索订单失败")
	}
	return toOrderEntities(models), nil
}

// likeEscape LIKE的转义字符
// 不用反斜杠：MySQL字符串字面量里反斜杠本身要转义，sqlite不需要，两边写法不一致
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

// containsPattern 包含匹配的LIKE模式，名字里的%和_按普通字符匹配
func containsPattern(name string) string {
	return "%" + likeReplacer.Replace(name) + "%"
}

// FindAllByCriteria 动态检索：用条件表达式组合
// 与FindAllByString结果一致，条件由clause.Expression构建，不拼接字符串
func (r *orderRepository) FindAllByCriteria(ctx context.Context, search order.Search) ([]*order.Order, error) {
	var criteria []clause.Expression

	if search.Status != "" {
		criteria = append(criteria, clause.Eq{
			Column: clause.Column{Table: "orders", Name: "status"},
			Value:  string(search.Status),
		})
	}
	if name := strings.TrimSpace(search.MemberName); name != "" {
		criteria = append(criteria, clause.Expr{
			SQL:  "m.name LIKE ? ESCAPE '" + likeEscape + "'",
			Vars: []interface{}{containsPattern(name)},
		})
	}

	tx := dbFrom(ctx, r.db).
		Model(&OrderModel{}).
		Select("orders.*").
		Joins("JOIN members m ON m.id = orders.member_id")
	if len(criteria) > 0 {
		tx = tx.Clauses(clause.Where{Exprs: []clause.Expression{clause.And(criteria...)}})
	}

	var models []OrderModel
	if err := tx.Order("orders.id").Limit(order.MaxSearchResults).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "检索订单失败")
	}
	return toOrderEntities(models), nil
}

// FindAllWithMemberDelivery 一条SQL加载订单+会员+配送
// 对一关联JOIN不会让行数变多，可以放心JOIN
func (r *orderRepository) FindAllWithMemberDelivery(ctx context.Context) ([]*order.Order, error) {
	var models []OrderModel
	if err := r.withMemberDelivery(ctx).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntitiesShared(models), nil
}

// FindAllWithMemberDeliveryPaged 同上，OFFSET/LIMIT直接下推到SQL
func (r *orderRepository) FindAllWithMemberDeliveryPaged(ctx context.Context, offset, limit int) ([]*order.Order, error) {
	var models []OrderModel
	if err := r.withMemberDelivery(ctx).Offset(offset).Limit(limit).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "分页查询订单失败")
	}
	return toOrderEntitiesShared(models), nil
}

func (r *orderRepository) withMemberDelivery(ctx context.Context) *gorm.DB {
	return dbFrom(ctx, r.db).
		Joins("Member").
		Joins("Delivery").
		Order("orders.id")
}

// orderGraphRow 订单×明细JOIN后的一行
type orderGraphRow struct {
	OrderID         uint
	OrderDate       time.Time
	Status          string
	MemberID        uint
	MemberName      string
	MemberCity      string
	MemberStreet    string
	MemberZipcode   string
	DeliveryID      uint
	DeliveryCity    string
	DeliveryStreet  string
	DeliveryZipcode string
	DeliveryStatus  string
	OrderItemID     uint
	OrderPrice      int
	Count           int
	ItemID          uint
	ItemName        string
	ItemPrice       int
	ItemStock       int
	ItemAuthor      string
	ItemIsbn        string
}

// FindAllWithItem 一条SQL加载订单全部关联
// 教学要点:
// 1. 一对多JOIN后，每个订单会重复出现（有几条明细就几行）
// 2. 按订单ID在内存中去重，保留第一次出现的顺序
// 3. 去重发生在取回全部行之后，所以这个方法不能分页；需要分页用FindAllWithMemberDeliveryPaged+BatchLoadOrderItems
func (r *orderRepository) FindAllWithItem(ctx context.Context) ([]*order.Order, error) {
	var rows []orderGraphRow
	err := dbFrom(ctx, r.db).
		Table("orders o").
		Select(`o.id AS order_id, o.order_date, o.status,
			m.id AS member_id, m.name AS member_name, m.city AS member_city, m.street AS member_street, m.zipcode AS member_zipcode,
			d.id AS delivery_id, d.city AS delivery_city, d.street AS delivery_street, d.zipcode AS delivery_zipcode, d.status AS delivery_status,
			oi.id AS order_item_id, oi.order_price, oi.count,
			i.id AS item_id, i.name AS item_name, i.price AS item_price, i.stock_quantity AS item_stock, i.author AS item_author, i.isbn AS item_isbn`).
		Joins("JOIN members m ON m.id = o.member_id").
		Joins("JOIN deliveries d ON d.id = o.delivery_id").
		Joins("JOIN order_items oi ON oi.order_id = o.id").
		Joins("JOIN items i ON i.id = oi.item_id").
		Order("o.id, oi.id").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询订单失败")
	}

	orders := make([]*order.Order, 0)
	seen := make(map[uint]*order.Order)
	members := make(map[uint]*member.Member)
	items := make(map[uint]*item.Item)

	for _, row := range rows {
		o, ok := seen[row.OrderID]
		if !ok {
			m, ok := members[row.MemberID]
			if !ok {
				m = &member.Member{
					ID:      row.MemberID,
					Name:    row.MemberName,
					Address: shared.NewAddress(row.MemberCity, row.MemberStreet, row.MemberZipcode),
				}
				members[row.MemberID] = m
			}
			o = &order.Order{
				ID:         row.OrderID,
				OrderDate:  row.OrderDate,
				Status:     order.OrderStatus(row.Status),
				MemberID:   row.MemberID,
				Member:     m,
				DeliveryID: row.DeliveryID,
				Delivery: &order.Delivery{
					ID:      row.DeliveryID,
					Address: shared.NewAddress(row.DeliveryCity, row.DeliveryStreet, row.DeliveryZipcode),
					Status:  order.DeliveryStatus(row.DeliveryStatus),
				},
				OrderItems: make([]*order.OrderItem, 0),
			}
			seen[row.OrderID] = o
			orders = append(orders, o)
		}

		it, ok := items[row.ItemID]
		if !ok {
			it = &item.Item{
				ID:            row.ItemID,
				Name:          row.ItemName,
				Price:         row.ItemPrice,
				StockQuantity: row.ItemStock,
				Author:        row.ItemAuthor,
				ISBN:          row.ItemIsbn,
			}
			items[row.ItemID] = it
		}
		o.OrderItems = append(o.OrderItems, &order.OrderItem{
			ID:         row.OrderItemID,
			OrderID:    row.OrderID,
			ItemID:     row.ItemID,
			Item:       it,
			OrderPrice: row.OrderPrice,
			Count:      row.Count,
		})
	}

	return orders, nil
}

// BatchLoadOrderItems 批量加载明细和商品
// 不管有多少订单都只发两条SQL：order_id IN (...) 和 items.id IN (...)
func (r *orderRepository) BatchLoadOrderItems(ctx context.Context, orders []*order.Order) error {
	if len(orders) == 0 {
		return nil
	}

	orderIDs := make([]uint, 0, len(orders))
	byID := make(map[uint]*order.Order, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
		byID[o.ID] = o
		o.OrderItems = make([]*order.OrderItem, 0)
	}

	db := dbFrom(ctx, r.db)

	var itemModels []OrderItemModel
	if err := db.Where("order_id IN ?", orderIDs).Order("id").Find(&itemModels).Error; err != nil {
		return apperrors.Wrap(err, "批量查询订单明细失败")
	}
	if len(itemModels) == 0 {
		return nil
	}

	itemIDs := make([]uint, 0, len(itemModels))
	seen := make(map[uint]bool)
	for _, m := range itemModels {
		if !seen[m.ItemID] {
			seen[m.ItemID] = true
			itemIDs = append(itemIDs, m.ItemID)
		}
	}

	var goods []ItemModel
	if err := db.Where("id IN ?", itemIDs).Find(&goods).Error; err != nil {
		return apperrors.Wrap(err, "批量查询商品失败")
	}
	itemByID := make(map[uint]*item.Item, len(goods))
	for i := range goods {
		itemByID[goods[i].ID] = toItemEntity(&goods[i])
	}

	for i := range itemModels {
		oi := toOrderItemEntity(&itemModels[i])
		oi.Item = itemByID[oi.ItemID]
		if o, ok := byID[oi.OrderID]; ok {
			o.OrderItems = append(o.OrderItems, oi)
		}
	}
	return nil
}

// FindOrderItems 单个订单的明细（懒加载用，Item未加载）
func (r *orderRepository) FindOrderItems(ctx context.Context, orderID uint) ([]*order.OrderItem, error) {
	var models []OrderItemModel
	if err := dbFrom(ctx, r.db).Where("order_id = ?", orderID).Order("id").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询订单明细失败")
	}
	items := make([]*order.OrderItem, 0, len(models))
	for i := range models {
		items = append(items, toOrderItemEntity(&models[i]))
	}
	return items, nil
}

func (r *orderRepository) FindDelivery(ctx context.Context, id uint) (*order.Delivery, error) {
	var model DeliveryModel
	err := dbFrom(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrDeliveryNotFound
		}
		return nil, apperrors.Wrap(err, "查询配送信息失败")
	}
	return toDeliveryEntity(&model), nil
}

func toOrderEntities(models []OrderModel) []*order.Order {
	orders := make([]*order.Order, 0, len(models))
	for i := range models {
		orders = append(orders, toOrderEntity(&models[i]))
	}
	return orders
}

// toOrderEntitiesShared 转换时让同一会员只对应一个实体
func toOrderEntitiesShared(models []OrderModel) []*order.Order {
	orders := toOrderEntities(models)
	members := make(map[uint]*member.Member)
	for _, o := range orders {
		if o.Member == nil {
			continue
		}
		if m, ok := members[o.MemberID]; ok {
			o.Member = m
		} else {
			members[o.MemberID] = o.Member
		}
	}
	return orders
}
