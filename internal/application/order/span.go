package order

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/xiebiao/jpashop/pkg/tracing"
)

// 查询策略名，写入Span属性query.strategy
const (
	strategyLazy           = "lazy-loading"
	strategyFetchJoin      = "fetch-join"
	strategyFetchJoinBatch = "fetch-join+batch"
	strategyProjection     = "dto-projection"
	strategyProjectionN    = "dto-projection+per-order"
	strategyProjectionIn   = "dto-projection+in"
	strategyProjectionFlat = "dto-projection-flat"
)

func startSpan(ctx context.Context, name, strategy string) (context.Context, trace.Span) {
	ctx, span := tracing.StartSpan(ctx, tracing.TracerName, name)
	span.SetAttributes(attribute.String("query.strategy", strategy))
	return ctx, span
}

func endSpan(span trace.Span, orders int, err error) {
	span.SetAttributes(attribute.Int("query.orders", orders))
	tracing.EndSpan(span, err)
}
