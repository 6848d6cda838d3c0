package mysql

import (
	"context"
	"sync/atomic"

	"gorm.io/gorm"
)

type counterKey struct{}

// QueryCounter 统计一个context内执行的查询语句数
// 懒加载的N+1问题看代码很难发现，数一数SELECT的条数就一目了然
type QueryCounter struct {
	n atomic.Int64
}

// Count 当前计数
func (c *QueryCounter) Count() int64 {
	return c.n.Load()
}

// WithQueryCounter 返回携带新计数器的context
func WithQueryCounter(ctx context.Context) (context.Context, *QueryCounter) {
	c := &QueryCounter{}
	return context.WithValue(ctx, counterKey{}, c), c
}

// QueryCounterFrom 取出context中的计数器，没有则返回nil
func QueryCounterFrom(ctx context.Context) *QueryCounter {
	c, _ := ctx.Value(counterKey{}).(*QueryCounter)
	return c
}

// RegisterQueryCounter 在Query和Row回调链上挂计数回调
// Find/First/Preload走Query链，Raw(...).Scan和Rows走Row链，写操作不计数
func RegisterQueryCounter(db *gorm.DB) error {
	count := func(tx *gorm.DB) {
		if tx.Statement == nil || tx.Statement.Context == nil {
			return
		}
		if c := QueryCounterFrom(tx.Statement.Context); c != nil {
			c.n.Add(1)
		}
	}

	if err := db.Callback().Query().After("gorm:query").Register("jpashop:count_query", count); err != nil {
		return err
	}
	return db.Callback().Row().After("gorm:row").Register("jpashop:count_row", count)
}
