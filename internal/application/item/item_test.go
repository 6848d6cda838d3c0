package item

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/jpashop/internal/domain/item"
	"github.com/xiebiao/jpashop/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/jpashop/internal/infrastructure/persistence/mysql/mysqltest"
	"github.com/xiebiao/jpashop/internal/infrastructure/persistence/redis"
)

func TestSaveAndUpdateItem(t *testing.T) {
	db := mysqltest.NewDB(t)
	svc := item.NewService(mysql.NewItemRepository(db), mysql.NewTxManager(db))
	ctx := context.Background()

	saved, err := NewSaveItemUseCase(svc).Execute(ctx, SaveBookRequest{
		Name: "JPA", Price: 10000, StockQuantity: 10, Author: "kim", ISBN: "978-1",
	})
	require.NoError(t, err)

	updated, err := NewUpdateItemUseCase(svc).Execute(ctx, UpdateItemRequest{
		ID: saved.ID, Name: "JPA 2nd", Price: 12000, StockQuantity: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, ItemDto{ID: saved.ID, Name: "JPA 2nd", Price: 12000, StockQuantity: 7, Author: "kim", ISBN: "978-1"}, *updated)

	got, err := NewListItemsUseCase(svc).Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	t.Run("非法参数不落库", func(t *testing.T) {
		_, err := NewUpdateItemUseCase(svc).Execute(ctx, UpdateItemRequest{ID: saved.ID, Name: "", Price: 1, StockQuantity: 1})
		assert.ErrorIs(t, err, item.ErrInvalidItem)

		got, err := NewListItemsUseCase(svc).Get(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, "JPA 2nd", got.Name)
	})

	t.Run("登记非法商品", func(t *testing.T) {
		_, err := NewSaveItemUseCase(svc).Execute(ctx, SaveBookRequest{Name: "x", Price: -1})
		assert.ErrorIs(t, err, item.ErrInvalidItem)
	})

	t.Run("不存在", func(t *testing.T) {
		_, err := NewUpdateItemUseCase(svc).Execute(ctx, UpdateItemRequest{ID: 9999, Name: "x"})
		assert.ErrorIs(t, err, item.ErrItemNotFound)
	})
}

// 修改商品后缓存失效，再次查询读到新值
func TestUpdateItem_InvalidatesCache(t *testing.T) {
	db := mysqltest.NewDB(t)
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := redis.NewCachedItemRepository(mysql.NewItemRepository(db), redis.NewItemCache(client, time.Minute))
	svc := item.NewService(repo, mysql.NewTxManager(db))
	ctx := context.Background()

	saved, err := NewSaveItemUseCase(svc).Execute(ctx, SaveBookRequest{Name: "JPA", Price: 10000, StockQuantity: 10})
	require.NoError(t, err)

	list := NewListItemsUseCase(svc)
	_, err = list.Get(ctx, saved.ID)
	require.NoError(t, err)
	require.True(t, mr.Exists("jpashop:item:1"))

	_, err = NewUpdateItemUseCase(svc).Execute(ctx, UpdateItemRequest{ID: saved.ID, Name: "JPA 2nd", Price: 12000, StockQuantity: 3})
	require.NoError(t, err)
	assert.False(t, mr.Exists("jpashop:item:1"))

	got, err := list.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "JPA 2nd", got.Name)
	assert.Equal(t, 3, got.StockQuantity)

	all, err := list.Execute(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
