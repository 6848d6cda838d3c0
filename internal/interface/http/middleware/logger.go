package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xiebiao/jpashop/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/jpashop/pkg/metrics"
	"github.com/xiebiao/jpashop/pkg/tracing"
)

// RequestIDHeader 请求ID的响应头
const RequestIDHeader = "X-Request-ID"

// slowRequest 超过该耗时记警告日志
const slowRequest = 3 * time.Second

// Logger 请求日志中间件
//
// 教学要点：
// 1. 生成请求ID，写入响应头和gin.Context
// 2. 给请求context挂上查询计数器，日志里能直接看到每个请求执行了几条SELECT
// 3. 查询条数同时记入Prometheus直方图，按路由模板分组
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		ctx, counter := mysql.WithQueryCounter(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.ObserveHistogramVec(metrics.DBQueriesPerRequest,
			map[string]string{"path": path}, float64(counter.Count()))

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.Int64("queries", counter.Count()),
		}
		if traceID := tracing.ExtractTraceID(c.Request.Context()); traceID != "" {
			fields = append(fields, zap.String("trace_id", traceID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case c.Writer.Status() >= 500:
			zap.L().Error("请求失败", fields...)
		case latency > slowRequest:
			zap.L().Warn("慢请求", fields...)
		default:
			zap.L().Info("请求完成", fields...)
		}
	}
}

// GetRequestID 取出当前请求ID
func GetRequestID(c *gin.Context) string {
	return c.GetString("request_id")
}
