package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/jpashop/internal/domain/item"
	"github.com/xiebiao/jpashop/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/jpashop/pkg/errors"
)

// ItemCache 商品缓存
// 设计说明：
// 1. Key设计：jpashop:item:{id}，冒号分隔命名空间
// 2. Value为JSON，字段与item.Item一一对应
// 3. 设置过期时间，即使漏删也只在TTL内读到旧数据
// 4. 可选熔断器：Redis连续失败后短时间内不再访问，直接按缓存错误处理
type ItemCache struct {
	client  *redis.Client
	ttl     time.Duration
	breaker *circuitbreaker.CircuitBreaker
}

// CacheOption 商品缓存选项
type CacheOption func(*ItemCache)

// WithBreaker 用熔断器保护Redis访问
func WithBreaker(cb *circuitbreaker.CircuitBreaker) CacheOption {
	return func(c *ItemCache) { c.breaker = cb }
}

// NewItemCache 创建商品缓存
func NewItemCache(client *redis.Client, ttl time.Duration, opts ...CacheOption) *ItemCache {
	c := &ItemCache{client: client, ttl: ttl}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do 执行一次Redis命令，配置了熔断器时经过熔断器
func (c *ItemCache) do(cmd func() error) error {
	if c.breaker == nil {
		return cmd()
	}
	return c.breaker.Execute(cmd)
}

type cachedItem struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Price         int    `json:"price"`
	StockQuantity int    `json:"stockQuantity"`
	Author        string `json:"author"`
	ISBN          string `json:"isbn"`
}

func itemKey(id uint) string {
	return fmt.Sprintf("jpashop:item:%d", id)
}

// Get 读取缓存，未命中返回(nil, nil)
func (c *ItemCache) Get(ctx context.Context, id uint) (*item.Item, error) {
	var data []byte
	err := c.do(func() error {
		var err error
		data, err = c.client.Get(ctx, itemKey(id)).Bytes()
		if errors.Is(err, redis.Nil) {
			// 未命中不算Redis故障
			return nil
		}
		return err
	})
	if err != nil {
		return nil, redisError(err, "读取商品缓存失败")
	}
	if data == nil {
		return nil, nil
	}

	var ci cachedItem
	if err := json.Unmarshal(data, &ci); err != nil {
		return nil, apperrors.Wrap(err, "解析商品缓存失败")
	}
	return &item.Item{
		ID:            ci.ID,
		Name:          ci.Name,
		Price:         ci.Price,
		StockQuantity: ci.StockQuantity,
		Author:        ci.Author,
		ISBN:          ci.ISBN,
	}, nil
}

// Set 写入缓存
func (c *ItemCache) Set(ctx context.Context, i *item.Item) error {
	data, err := json.Marshal(cachedItem{
		ID:            i.ID,
		Name:          i.Name,
		Price:         i.Price,
		StockQuantity: i.StockQuantity,
		Author:        i.Author,
		ISBN:          i.ISBN,
	})
	if err != nil {
		return apperrors.Wrap(err, "序列化商品失败")
	}
	if err := c.do(func() error {
		return c.client.Set(ctx, itemKey(i.ID), data, c.ttl).Err()
	}); err != nil {
		return redisError(err, "写入商品缓存失败")
	}
	return nil
}

// Delete 删除缓存（商品变更后调用）
func (c *ItemCache) Delete(ctx context.Context, id uint) error {
	if err := c.do(func() error {
		return c.client.Del(ctx, itemKey(id)).Err()
	}); err != nil {
		return redisError(err, "删除商品缓存失败")
	}
	return nil
}

func redisError(err error, message string) *apperrors.AppError {
	return &apperrors.AppError{Code: apperrors.ErrCodeRedisError, Message: message, Err: err}
}
