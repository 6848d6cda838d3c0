package main

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/jpashop/internal/infrastructure/config"
	"github.com/xiebiao/jpashop/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/jpashop/internal/infrastructure/persistence/mysql/mysqltest"
)

func TestProvideItemCache(t *testing.T) {
	cfg := &config.Config{Redis: config.RedisConfig{ItemTTL: time.Minute}}

	assert.Nil(t, provideItemCache(cfg, nil), "Redis未启用时不创建缓存")

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	assert.NotNil(t, provideItemCache(cfg, client))
}

// TestProvideServices 商品服务读缓存，下单读数据库并删除缓存
func TestProvideServices(t *testing.T) {
	db := mysqltest.NewDB(t)
	f := mysqltest.Seed(t, db)
	ctx := context.Background()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	cache := provideItemCache(&config.Config{Redis: config.RedisConfig{ItemTTL: time.Minute}}, client)

	tx := mysql.NewTxManager(db)
	items := mysql.NewItemRepository(db)
	itemService := provideItemService(items, cache, tx)
	orderService := provideOrderService(mysql.NewOrderRepository(db), mysql.NewMemberRepository(db), items, cache, tx)

	book := f.Books[0]
	cached, err := itemService.FindOne(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 99, cached.StockQuantity)
	require.True(t, mr.Exists("jpashop:item:1"))

	_, err = orderService.Order(ctx, f.UserA.ID, book.ID, 9)
	require.NoError(t, err)
	assert.False(t, mr.Exists("jpashop:item:1"), "扣库存后缓存失效")

	found, err := itemService.FindOne(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 90, found.StockQuantity)
}

func TestProvidePageLimits(t *testing.T) {
	limits := providePageLimits(&config.Config{Query: config.QueryConfig{DefaultPageLimit: 50, MaxPageLimit: 500}})
	assert.Equal(t, 50, limits.Default)
	assert.Equal(t, 500, limits.Max)
}
