package redis

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/jpashop/internal/domain/item"
	"github.com/xiebiao/jpashop/pkg/metrics"
)

const itemCacheName = "item"

// cachedItemRepository 带缓存的商品仓储（装饰器）
// 教学要点:
// 1. Cache-Aside：读时先查缓存，未命中查数据库再回填
// 2. 写时先更新数据库再删除缓存，不直接改缓存
// 3. 缓存故障只记日志降级到数据库，不影响业务
//
// 只缓存FindOne；列表和批量查询直接走数据库
type cachedItemRepository struct {
	next       item.Repository
	cache      *ItemCache
	cacheReads bool
}

// NewCachedItemRepository 用缓存装饰商品仓储：读走缓存，写后删缓存
func NewCachedItemRepository(next item.Repository, cache *ItemCache) item.Repository {
	return &cachedItemRepository{next: next, cache: cache, cacheReads: true}
}

// NewInvalidatingItemRepository 读直接走数据库，写后删缓存
// 缓存中的库存可能是旧值，下单、取消这类基于库存的读-改-写必须读数据库
func NewInvalidatingItemRepository(next item.Repository, cache *ItemCache) item.Repository {
	return &cachedItemRepository{next: next, cache: cache}
}

func (r *cachedItemRepository) Save(ctx context.Context, i *item.Item) error {
	return r.next.Save(ctx, i)
}

// Update 更新后删除缓存。事务提交前另一个请求可能把旧值回填进缓存，由TTL兜底
func (r *cachedItemRepository) Update(ctx context.Context, i *item.Item) error {
	if err := r.next.Update(ctx, i); err != nil {
		return err
	}
	if err := r.cache.Delete(ctx, i.ID); err != nil {
		zap.L().Warn("删除商品缓存失败", zap.Uint("item_id", i.ID), zap.Error(err))
	}
	return nil
}

func (r *cachedItemRepository) FindOne(ctx context.Context, id uint) (*item.Item, error) {
	if !r.cacheReads {
		return r.next.FindOne(ctx, id)
	}

	cached, err := r.cache.Get(ctx, id)
	switch {
	case err != nil:
		metrics.RecordCache(itemCacheName, metrics.CacheError)
		zap.L().Warn("读取商品缓存失败，降级查询数据库", zap.Uint("item_id", id), zap.Error(err))
	case cached != nil:
		metrics.RecordCache(itemCacheName, metrics.CacheHit)
		return cached, nil
	default:
		metrics.RecordCache(itemCacheName, metrics.CacheMiss)
	}

	found, err := r.next.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Set(ctx, found); err != nil {
		zap.L().Warn("回填商品缓存失败", zap.Uint("item_id", id), zap.Error(err))
	}
	return found, nil
}

func (r *cachedItemRepository) FindAll(ctx context.Context) ([]*item.Item, error) {
	return r.next.FindAll(ctx)
}

func (r *cachedItemRepository) FindByIDs(ctx context.Context, ids []uint) ([]*item.Item, error) {
	return r.next.FindByIDs(ctx, ids)
}
