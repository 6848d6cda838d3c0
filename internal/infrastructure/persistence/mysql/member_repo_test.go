package mysql_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/jpashop/internal/domain/item"
	"github.com/xiebiao/jpashop/internal/domain/member"
	"github.com/xiebiao/jpashop/internal/domain/shared"
	"github.com/xiebiao/jpashop/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/jpashop/internal/infrastructure/persistence/mysql/mysqltest"
)

func TestMemberRepository(t *testing.T) {
	db := mysqltest.NewDB(t)
	repo := mysql.NewMemberRepository(db)
	ctx := context.Background()

	m := member.NewMember("kim", shared.NewAddress("Seoul", "river", "12345"))
	require.NoError(t, repo.Save(ctx, m))
	require.NotZero(t, m.ID)

	found, err := repo.FindOne(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m, found)

	t.Run("按名称精确匹配", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, member.NewMember("kimchi", shared.Address{})))

		byName, err := repo.FindByName(ctx, "kim")
		require.NoError(t, err)
		require.Len(t, byName, 1)
		assert.Equal(t, m.ID, byName[0].ID)

		none, err := repo.FindByName(ctx, "lee")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("更新名称", func(t *testing.T) {
		require.NoError(t, m.ChangeName("park"))
		require.NoError(t, repo.Update(ctx, m))

		found, err := repo.FindOne(ctx, m.ID)
		require.NoError(t, err)
		assert.Equal(t, "park", found.Name)
		assert.Equal(t, "Seoul", found.Address.City)
	})

	t.Run("列表按ID排序", func(t *testing.T) {
		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Less(t, all[0].ID, all[1].ID)
	})

	t.Run("不存在", func(t *testing.T) {
		_, err := repo.FindOne(ctx, 9999)
		assert.ErrorIs(t, err, member.ErrMemberNotFound)
	})
}

func TestItemRepository(t *testing.T) {
	db := mysqltest.NewDB(t)
	repo := mysql.NewItemRepository(db)
	ctx := context.Background()

	book, err := item.NewBook("JPA", 10000, 5, "kim", "978-1")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, book))

	other, err := item.NewBook("Spring", 20000, 1, "lee", "978-2")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, other))

	found, err := repo.FindOne(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, book, found)

	t.Run("库存可以更新为0", func(t *testing.T) {
		require.NoError(t, found.ChangeItemInfo("JPA 2nd", 12000, 0))
		require.NoError(t, repo.Update(ctx, found))

		again, err := repo.FindOne(ctx, book.ID)
		require.NoError(t, err)
		assert.Equal(t, "JPA 2nd", again.Name)
		assert.Equal(t, 12000, again.Price)
		assert.Equal(t, 0, again.StockQuantity)
		assert.Equal(t, "kim", again.Author, "作者不随商品信息修改")
	})

	t.Run("FindByIDs", func(t *testing.T) {
		items, err := repo.FindByIDs(ctx, []uint{other.ID, book.ID, 9999})
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, book.ID, items[0].ID)

		empty, err := repo.FindByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("不存在", func(t *testing.T) {
		_, err := repo.FindOne(ctx, 9999)
		assert.ErrorIs(t, err, item.ErrItemNotFound)
	})
}

func TestTxManager_Rollback(t *testing.T) {
	db := mysqltest.NewDB(t)
	repo := mysql.NewMemberRepository(db)
	tx := mysql.NewTxManager(db)
	ctx := context.Background()

	errBoom := errors.New("boom")
	err := tx.Transaction(ctx, func(ctx context.Context) error {
		if err := repo.Save(ctx, member.NewMember("rollback", shared.Address{})); err != nil {
			return err
		}
		inTx, err := repo.FindByName(ctx, "rollback")
		if err != nil {
			return err
		}
		assert.Len(t, inTx, 1, "事务内可以读到未提交的写入")
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)

	after, err := repo.FindByName(ctx, "rollback")
	require.NoError(t, err)
	assert.Empty(t, after)
}

func TestQueryCounter(t *testing.T) {
	db := mysqltest.NewDB(t)
	repo := mysql.NewMemberRepository(db)

	t.Run("未开启计数时不统计", func(t *testing.T) {
		assert.Nil(t, mysql.QueryCounterFrom(context.Background()))
		_, err := repo.FindAll(context.Background())
		require.NoError(t, err)
	})

	t.Run("写操作不计入", func(t *testing.T) {
		ctx, counter := mysql.WithQueryCounter(context.Background())
		require.NoError(t, repo.Save(ctx, member.NewMember("counter", shared.Address{})))
		assert.Zero(t, counter.Count())

		_, err := repo.FindAll(ctx)
		require.NoError(t, err)
		_, err = repo.FindByName(ctx, "counter")
		require.NoError(t, err)
		assert.Equal(t, int64(2), counter.Count())
		assert.Same(t, counter, mysql.QueryCounterFrom(ctx))
	})
}
