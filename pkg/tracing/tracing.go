// Package tracing 提供基于OpenTelemetry的追踪
//
// # 核心概念
//
//   - Trace：一个请求的完整链路，所有Span共享同一个TraceID
//   - Span：一个操作单元，记录名称、起止时间、状态和属性
//   - SpanContext：TraceID + SpanID，沿context向下传递构成调用树
//
// # 在本项目中的用法
//
// 每个订单查询策略都包一层Span，属性里带上策略名和返回的订单数。
// 同一份数据用不同策略查询时，在Jaeger里对比各Span的耗时：
//
//	Trace: GET /api/v2/orders
//	└─ Span: orders.v2（耗时12ms, strategy=lazy）
//	Trace: GET /api/v3.1/orders
//	└─ Span: orders.v3.1（耗时2ms, strategy=fetch-join+batch）
//
// # 使用示例
//
//	shutdown, err := tracing.InitTracer("jpashop", "localhost:4317")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer shutdown(context.Background())
//
//	ctx, span := tracing.StartSpan(ctx, tracing.TracerName, "orders.v4")
//	defer span.End()
//
// # 采样
//
//   - 开发环境：AlwaysSample（100%）
//   - 生产环境建议TraceIDRatioBased（如1%）
package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// TracerName 应用内Span使用的Tracer名称
const TracerName = "jpashop"

// InitTracer 初始化全局Tracer Provider
//
// 参数：
//   - serviceName: 服务名称（在Jaeger UI中显示）
//   - endpoint: OTLP gRPC端点（host:port，如localhost:4317），不含协议前缀
//
// 返回的shutdown必须在程序退出前调用，否则最后一批Span会丢失
//
// 注意：exporter创建时不会等待连接建立，Collector不可用只会导致Span发送失败，不影响启动
func InitTracer(serviceName, endpoint string) (func(context.Context) error, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exporter, err := otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(), // 禁用TLS（生产环境应启用）
	)
	if err != nil {
		return nil, fmt.Errorf("创建OTLP exporter失败: %w", err)
	}

	// Resource的属性会附加到所有Span上
	res, err := resource.New(
		ctx,
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("创建资源属性失败: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		// 批量发送：默认每5秒或攒够512个Span发送一次
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{}, // W3C traceparent
			propagation.Baggage{},
		),
	)

	shutdown := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}
	return shutdown, nil
}

// StartSpan 创建一个新的Span（便捷函数）
//
// ctx中已有Span时新Span成为它的子Span；必须把返回的ctx传给下游，否则调用树会断开
// 没有调用InitTracer时使用otel默认的空实现，不产生任何数据
func StartSpan(ctx context.Context, tracerName, spanName string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, spanName)
}

// EndSpan 按err设置状态后结束Span
//
//	ctx, span := tracing.StartSpan(ctx, tracing.TracerName, "orders.v2")
//	defer func() { tracing.EndSpan(span, err) }()
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// ExtractTraceID 从Context提取TraceID（用于关联日志）
// 没有有效Span时返回空字符串
func ExtractTraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return ""
	}
	return sc.TraceID().String()
}

// ExtractSpanID 从Context提取SpanID
func ExtractSpanID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return ""
	}
	return sc.SpanID().String()
}
