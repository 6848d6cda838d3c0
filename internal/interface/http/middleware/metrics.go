package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/jpashop/pkg/metrics"
)

// Metrics HTTP指标中间件
// path标签使用路由模板（/api/v2/items/:id），避免ID撑爆标签基数
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			c.Next()
			return
		}

		metrics.IncGauge(metrics.HTTPRequestsInProgress)
		start := time.Now()
		defer func() {
			metrics.DecGauge(metrics.HTTPRequestsInProgress)
			metrics.ObserveHistogramVec(metrics.HTTPRequestDuration, map[string]string{
				"method": c.Request.Method,
				"path":   path,
			}, time.Since(start).Seconds())
			metrics.IncCounterVec(metrics.HTTPRequestsTotal, map[string]string{
				"method": c.Request.Method,
				"path":   path,
				"status": strconv.Itoa(c.Writer.Status()),
			})
		}()

		c.Next()
	}
}
