package main

import (
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apporder "github.com/xiebiao/jpashop/internal/application/order"
	"github.com/xiebiao/jpashop/internal/domain/item"
	"github.com/xiebiao/jpashop/internal/domain/member"
	"github.com/xiebiao/jpashop/internal/domain/order"
	"github.com/xiebiao/jpashop/internal/domain/shared"
	"github.com/xiebiao/jpashop/internal/infrastructure/config"
	"github.com/xiebiao/jpashop/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/jpashop/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/jpashop/internal/interface/http/router"
	"github.com/xiebiao/jpashop/pkg/circuitbreaker"
	"github.com/xiebiao/jpashop/pkg/metrics"
)

// provideDB 创建数据库连接，cleanup时关闭连接池
func provideDB(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := mysql.NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

// provideRedis 创建Redis客户端；未启用时客户端为nil
func provideRedis(cfg *config.Config) (*goredis.Client, func(), error) {
	client, err := redis.NewClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if client != nil {
			_ = client.Close()
		}
	}
	return client, cleanup, nil
}

// provideItemCache Redis未启用时返回nil，商品服务直接走数据库
func provideItemCache(cfg *config.Config, client *goredis.Client) *redis.ItemCache {
	if client == nil {
		return nil
	}

	breaker := circuitbreaker.NewCircuitBreaker("item", circuitbreaker.Config{
		MaxFailures: cfg.Redis.BreakerFailures,
		OpenTimeout: cfg.Redis.BreakerTimeout,
	})
	breaker.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		metrics.CacheBreakerState.WithLabelValues(name).Set(float64(to))
		zap.L().Warn("缓存熔断器状态变化",
			zap.String("cache", name),
			zap.Stringer("from", from),
			zap.Stringer("to", to),
		)
	})
	return redis.NewItemCache(client, cfg.Redis.ItemTTL, redis.WithBreaker(breaker))
}

// provideItemService 商品服务的读走缓存
func provideItemService(items item.Repository, cache *redis.ItemCache, tx shared.Transactor) item.Service {
	if cache != nil {
		items = redis.NewCachedItemRepository(items, cache)
	}
	return item.NewService(items, tx)
}

// provideOrderService 订单服务要改库存，读数据库，写后删缓存
func provideOrderService(
	orders order.Repository,
	members member.Repository,
	items item.Repository,
	cache *redis.ItemCache,
	tx shared.Transactor,
) order.Service {
	if cache != nil {
		items = redis.NewInvalidatingItemRepository(items, cache)
	}
	return order.NewService(orders, members, items, tx)
}

// providePageLimits 从配置提取分页参数
func providePageLimits(cfg *config.Config) apporder.PageLimits {
	return apporder.PageLimits{
		Default: cfg.Query.DefaultPageLimit,
		Max:     cfg.Query.MaxPageLimit,
	}
}

// provideGinEngine 创建Gin引擎并注册路由
func provideGinEngine(cfg *config.Config, handlers router.Handlers) *gin.Engine {
	zap.L().Debug("注册路由", zap.String("mode", cfg.Server.Mode))
	return router.NewRouter(cfg.Server.Mode, handlers)
}
