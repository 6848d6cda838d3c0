package mysql_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/jpashop/internal/domain/member"
	"github.com/xiebiao/jpashop/internal/domain/order"
	"github.com/xiebiao/jpashop/internal/domain/shared"
	"github.com/xiebiao/jpashop/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/jpashop/internal/infrastructure/persistence/mysql/mysqltest"
)

func TestOrderRepository_FindAllWithMemberDelivery(t *testing.T) {
	db := mysqltest.NewDB(t)
	f := mysqltest.Seed(t, db)
	repo := mysql.NewOrderRepository(db)

	ctx, counter := mysql.WithQueryCounter(context.Background())
	orders, err := repo.FindAllWithMemberDelivery(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), counter.Count(), "会员和配送应通过JOIN一次加载")
	require.Len(t, orders, 2)
	assert.Equal(t, f.OrderIDs, []uint{orders[0].ID, orders[1].ID})

	require.NotNil(t, orders[0].Member)
	require.NotNil(t, orders[0].Delivery)
	assert.Equal(t, "userA", orders[0].Member.Name)
	assert.Equal(t, "Seoul", orders[0].Delivery.Address.City)
	assert.Equal(t, order.DeliveryReady, orders[0].Delivery.Status)
	assert.Equal(t, "userB", orders[1].Member.Name)
	assert.Nil(t, orders[0].OrderItems, "明细未加载")
}

func TestOrderRepository_Paged(t *testing.T) {
	db := mysqltest.NewDB(t)
	f := mysqltest.Seed(t, db)
	repo := mysql.NewOrderRepository(db)
	ctx := context.Background()

	tests := []struct {
		offset, limit int
		want          []uint
	}{
		{0, 100, f.OrderIDs},
		{0, 1, f.OrderIDs[:1]},
		{1, 1, f.OrderIDs[1:]},
		{2, 10, nil},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("offset=%d,limit=%d", tt.offset, tt.limit), func(t *testing.T) {
			orders, err := repo.FindAllWithMemberDeliveryPaged(ctx, tt.offset, tt.limit)
			require.NoError(t, err)

			var ids []uint
			for _, o := range orders {
				ids = append(ids, o.ID)
				assert.NotNil(t, o.Member)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestOrderRepository_FindAllWithItem(t *testing.T) {
	db := mysqltest.NewDB(t)
	f := mysqltest.Seed(t, db)
	repo := mysql.NewOrderRepository(db)

	ctx, counter := mysql.WithQueryCounter(context.Background())
	orders, err := repo.FindAllWithItem(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), counter.Count())
	require.Len(t, orders, 2, "一对多JOIN产生4行，去重后应为2个订单")

	first := orders[0]
	assert.Equal(t, f.OrderIDs[0], first.ID)
	assert.Equal(t, "userA", first.Member.Name)
	require.Len(t, first.OrderItems, 2)
	assert.Equal(t, "JPA1 BOOK", first.OrderItems[0].Item.Name)
	assert.Equal(t, 1, first.OrderItems[0].Count)
	assert.Equal(t, "JPA2 BOOK", first.OrderItems[1].Item.Name)
	assert.Equal(t, 50000, first.TotalPrice(), "10000×1 + 20000×2")

	second := orders[1]
	require.Len(t, second.OrderItems, 2)
	assert.Equal(t, "SPRING2 BOOK", second.OrderItems[1].Item.Name)
	assert.Equal(t, 4, second.OrderItems[1].Count)
}

func TestOrderRepository_BatchLoadOrderItems(t *testing.T) {
	db := mysqltest.NewDB(t)
	mysqltest.Seed(t, db)
	repo := mysql.NewOrderRepository(db)

	ctx, counter := mysql.WithQueryCounter(context.Background())
	orders, err := repo.FindAllWithMemberDelivery(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.BatchLoadOrderItems(ctx, orders))

	assert.Equal(t, int64(3), counter.Count(), "订单1条 + 明细IN 1条 + 商品IN 1条")
	for _, o := range orders {
		require.Len(t, o.OrderItems, 2)
		for _, oi := range o.OrderItems {
			require.NotNil(t, oi.Item)
			assert.Equal(t, oi.ItemID, oi.Item.ID)
		}
	}

	t.Run("空列表不查询", func(t *testing.T) {
		ctx, counter := mysql.WithQueryCounter(context.Background())
		require.NoError(t, repo.BatchLoadOrderItems(ctx, nil))
		assert.Zero(t, counter.Count())
	})
}

func TestOrderRepository_DynamicSearch(t *testing.T) {
	db := mysqltest.NewDB(t)
	f := mysqltest.Seed(t, db)
	repo := mysql.NewOrderRepository(db)
	ctx := context.Background()

	// 取消userB的订单，制造不同状态
	require.NoError(t, repo.UpdateStatus(ctx, &order.Order{ID: f.OrderIDs[1], Status: order.StatusCancel}))

	tests := []struct {
		name   string
		search order.Search
		want   []uint
	}{
		{"无条件", order.Search{}, f.OrderIDs},
		{"按状态", order.Search{Status: order.StatusOrdered}, f.OrderIDs[:1]},
		{"按会员名包含", order.Search{MemberName: "B"}, f.OrderIDs[1:]},
		{"会员名公共部分", order.Search{MemberName: "user"}, f.OrderIDs},
		{"状态+会员名", order.Search{Status: order.StatusCancel, MemberName: "userA"}, nil},
		{"空白会员名视为无条件", order.Search{MemberName: "  "}, f.OrderIDs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			byString, err := repo.FindAllByString(ctx, tt.search)
			require.NoError(t, err)
			byCriteria, err := repo.FindAllByCriteria(ctx, tt.search)
			require.NoError(t, err)

			assert.Equal(t, tt.want, orderIDs(byString))
			assert.Equal(t, tt.want, orderIDs(byCriteria))
			for _, o := range byString {
				assert.Nil(t, o.Member, "检索结果不加载关联")
				assert.NotZero(t, o.MemberID)
			}
		})
	}
}

// TestOrderRepository_SearchWildcards 会员名里的%和_按普通字符匹配
func TestOrderRepository_SearchWildcards(t *testing.T) {
	db := mysqltest.NewDB(t)
	f := mysqltest.Seed(t, db)
	repo := mysql.NewOrderRepository(db)
	ctx := context.Background()

	special := member.NewMember("user_50%", shared.NewAddress("Busan", "3", "3333"))
	require.NoError(t, mysql.NewMemberRepository(db).Save(ctx, special))
	delivery := mysql.DeliveryModel{Status: string(order.DeliveryReady)}
	require.NoError(t, db.Create(&delivery).Error)
	extra := mysql.OrderModel{
		MemberID:   special.ID,
		DeliveryID: delivery.ID,
		OrderDate:  time.Now(),
		Status:     string(order.StatusOrdered),
	}
	require.NoError(t, db.Omit("Member", "Delivery", "OrderItems").Create(&extra).Error)

	tests := []struct {
		name       string
		memberName string
		want       []uint
	}{
		{"下划线", "_", []uint{extra.ID}},
		{"百分号", "%", []uint{extra.ID}},
		{"转义字符本身", "!", nil},
		{"包含通配符的片段", "r_5", []uint{extra.ID}},
		{"下划线不匹配任意字符", "user_A", nil},
		{"普通名字", "user", append(append([]uint{}, f.OrderIDs...), extra.ID)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			search := order.Search{MemberName: tt.memberName}
			byString, err := repo.FindAllByString(ctx, search)
			require.NoError(t, err)
			byCriteria, err := repo.FindAllByCriteria(ctx, search)
			require.NoError(t, err)

			assert.Equal(t, tt.want, orderIDs(byString))
			assert.Equal(t, tt.want, orderIDs(byCriteria))
		})
	}
}

func TestOrderRepository_SearchLimit(t *testing.T) {
	db := mysqltest.NewDB(t)
	f := mysqltest.Seed(t, db)
	repo := mysql.NewOrderRepository(db)

	// 直接写入足够多的订单，超过检索上限
	extra := order.MaxSearchResults
	deliveries := make([]mysql.DeliveryModel, extra)
	for i := range deliveries {
		deliveries[i] = mysql.DeliveryModel{Status: string(order.DeliveryReady)}
	}
	require.NoError(t, db.CreateInBatches(&deliveries, 200).Error)

	orders := make([]mysql.OrderModel, extra)
	for i := range orders {
		orders[i] = mysql.OrderModel{
			MemberID:   f.UserA.ID,
			DeliveryID: deliveries[i].ID,
			OrderDate:  time.Now(),
			Status:     string(order.StatusOrdered),
		}
	}
	require.NoError(t, db.Omit("Member", "Delivery", "OrderItems").CreateInBatches(&orders, 200).Error)

	ctx := context.Background()
	byString, err := repo.FindAllByString(ctx, order.Search{})
	require.NoError(t, err)
	assert.Len(t, byString, order.MaxSearchResults)

	byCriteria, err := repo.FindAllByCriteria(ctx, order.Search{MemberName: "userA"})
	require.NoError(t, err)
	assert.Len(t, byCriteria, order.MaxSearchResults)
}

func TestOrderRepository_FindOne(t *testing.T) {
	db := mysqltest.NewDB(t)
	f := mysqltest.Seed(t, db)
	repo := mysql.NewOrderRepository(db)
	ctx := context.Background()

	o, err := repo.FindOne(ctx, f.OrderIDs[1])
	require.NoError(t, err)
	assert.Equal(t, "userB", o.Member.Name)
	assert.Equal(t, "Jinju", o.Delivery.Address.City)
	require.Len(t, o.OrderItems, 2)
	assert.Equal(t, "SPRING1 BOOK", o.OrderItems[0].Item.Name)
	assert.Equal(t, 197, o.OrderItems[0].Item.StockQuantity)

	_, err = repo.FindOne(ctx, 9999)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

// TestOrderRepository_FindOne_SharedItem 同一商品的多条明细共用一个商品对象
func TestOrderRepository_FindOne_SharedItem(t *testing.T) {
	db := mysqltest.NewDB(t)
	f := mysqltest.Seed(t, db)
	repo := mysql.NewOrderRepository(db)
	items := mysql.NewItemRepository(db)
	ctx := context.Background()

	book := f.Books[0]
	require.Equal(t, 99, book.StockQuantity)
	first, err := order.CreateOrderItem(book, book.Price, 2)
	require.NoError(t, err)
	second, err := order.CreateOrderItem(book, book.Price, 3)
	require.NoError(t, err)
	o, err := order.CreateOrder(f.UserA, order.NewDelivery(f.UserA.Address), first, second)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, o))
	require.NoError(t, items.Update(ctx, book))

	found, err := repo.FindOne(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, found.OrderItems, 2)
	assert.Same(t, found.OrderItems[0].Item, found.OrderItems[1].Item)
	assert.Equal(t, 94, found.OrderItems[0].Item.StockQuantity)

	// 两条明细的库存都恢复到同一个对象上
	require.NoError(t, found.Cancel())
	assert.Equal(t, 99, found.OrderItems[0].Item.StockQuantity)
	require.NoError(t, items.Update(ctx, found.OrderItems[0].Item))

	reloaded, err := items.FindOne(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 99, reloaded.StockQuantity)
}

func TestOrderRepository_LazyLoadHelpers(t *testing.T) {
	db := mysqltest.NewDB(t)
	f := mysqltest.Seed(t, db)
	repo := mysql.NewOrderRepository(db)
	ctx := context.Background()

	orders, err := repo.FindAllByString(ctx, order.Search{})
	require.NoError(t, err)
	require.NotEmpty(t, orders)

	items, err := repo.FindOrderItems(ctx, orders[0].ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Nil(t, items[0].Item)
	assert.Equal(t, f.Books[0].ID, items[0].ItemID)

	d, err := repo.FindDelivery(ctx, orders[0].DeliveryID)
	require.NoError(t, err)
	assert.Equal(t, f.UserA.Address, d.Address)

	_, err = repo.FindDelivery(ctx, 9999)
	assert.ErrorIs(t, err, order.ErrDeliveryNotFound)
}

func orderIDs(orders []*order.Order) []uint {
	var ids []uint
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	return ids
}
