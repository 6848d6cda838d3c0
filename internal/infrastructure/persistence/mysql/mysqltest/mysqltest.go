// Package mysqltest 为测试提供内存数据库和初始数据
//
// 表结构与生产环境共用AutoMigrate，驱动换成纯Go实现的sqlite，不需要启动MySQL
package mysqltest

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/jpashop/internal/domain/item"
	"github.com/xiebiao/jpashop/internal/domain/member"
	"github.com/xiebiao/jpashop/internal/domain/order"
	"github.com/xiebiao/jpashop/internal/domain/shared"
	"github.com/xiebiao/jpashop/internal/infrastructure/persistence/mysql"
)

var seq atomic.Int64

// NewDB 创建独立的内存数据库，测试结束自动关闭
// 只开一个连接：内存库随连接存在，事务内外也必须落在同一连接上
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, seq.Add(1))

	db, err := mysql.Open(sqlite.Open(dsn), logger.Default.LogMode(logger.Silent))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, mysql.AutoMigrate(db))
	return db
}

// Fixture 初始数据
type Fixture struct {
	UserA, UserB *member.Member
	Books        []*item.Item // JPA1 BOOK, JPA2 BOOK, SPRING1 BOOK, SPRING2 BOOK
	OrderIDs     []uint
}

// Seed 写入两个会员、四本书、两个订单
//
//	userA(Seoul) 订购 JPA1 BOOK ×1、JPA2 BOOK ×2
//	userB(Jinju) 订购 SPRING1 BOOK ×3、SPRING2 BOOK ×4
func Seed(t testing.TB, db *gorm.DB) *Fixture {
	t.Helper()
	ctx := context.Background()

	members := mysql.NewMemberRepository(db)
	items := mysql.NewItemRepository(db)
	orders := mysql.NewOrderRepository(db)
	tx := mysql.NewTxManager(db)

	f := &Fixture{
		UserA: member.NewMember("userA", shared.NewAddress("Seoul", "1", "1111")),
		UserB: member.NewMember("userB", shared.NewAddress("Jinju", "2", "2222")),
	}
	require.NoError(t, members.Save(ctx, f.UserA))
	require.NoError(t, members.Save(ctx, f.UserB))

	for _, b := range []struct {
		name  string
		price int
		stock int
	}{
		{"JPA1 BOOK", 10000, 100},
		{"JPA2 BOOK", 20000, 100},
		{"SPRING1 BOOK", 20000, 200},
		{"SPRING2 BOOK", 40000, 300},
	} {
		book, err := item.NewBook(b.name, b.price, b.stock, "kim", "isbn-"+b.name)
		require.NoError(t, err)
		require.NoError(t, items.Save(ctx, book))
		f.Books = append(f.Books, book)
	}

	place := func(m *member.Member, lines ...struct {
		book  *item.Item
		count int
	}) uint {
		var orderID uint
		err := tx.Transaction(ctx, func(ctx context.Context) error {
			var orderItems []*order.OrderItem
			for _, l := range lines {
				oi, err := order.CreateOrderItem(l.book, l.book.Price, l.count)
				if err != nil {
					return err
				}
				orderItems = append(orderItems, oi)
			}
			o, err := order.CreateOrder(m, order.NewDelivery(m.Address), orderItems...)
			if err != nil {
				return err
			}
			if err := orders.Save(ctx, o); err != nil {
				return err
			}
			for _, l := range lines {
				if err := items.Update(ctx, l.book); err != nil {
					return err
				}
			}
			orderID = o.ID
			return nil
		})
		require.NoError(t, err)
		return orderID
	}

	type line = struct {
		book  *item.Item
		count int
	}
	f.OrderIDs = append(f.OrderIDs,
		place(f.UserA, line{f.Books[0], 1}, line{f.Books[1], 2}),
		place(f.UserB, line{f.Books[2], 3}, line{f.Books[3], 4}),
	)
	return f
}
