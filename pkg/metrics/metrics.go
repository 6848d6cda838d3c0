// Package metrics 提供基于Prometheus的指标收集
//
// # 核心概念
//
// **1. Counter（计数器）**：只增不减的累计值
//   - 示例：HTTP请求总数、下单总数、缓存命中次数
//
// **2. Gauge（仪表盘）**：可增可减的瞬时值
//   - 示例：正在处理的请求数
//
// **3. Histogram（直方图）**：观测值的分布
//   - 示例：请求耗时、每个请求执行的SQL条数
//
// # 为什么统计每个请求的SQL条数？
//
// 懒加载的N+1问题在代码里看不出来，只有数据量上来后才暴露。
// 把"每个请求执行了多少条SELECT"做成直方图，按path分组：
//
//	/api/v2/simple-orders  → 1 + 2N（N为订单数）
//	/api/v3/simple-orders  → 1
//
// 在Grafana上一眼就能看出哪个接口随数据量线性增长。
//
// # 使用示例
//
//	// 1. 启动时注册指标
//	metrics.InitMetrics()
//
//	// 2. 暴露/metrics端点
//	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	// 3. 业务代码中记录
//	metrics.IncCounter(metrics.OrdersPlacedTotal)
//
// # 命名规范
//
//   - Counter以`_total`结尾：`orders_placed_total`
//   - Histogram以单位结尾：`http_request_duration_seconds`
//   - 标签只用有限取值的维度（method、path、result），不要用member_id
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var registerOnce sync.Once

// 指标在包初始化时创建、InitMetrics时注册
// 这样业务代码和测试里即使没调用InitMetrics也不会遇到nil指标
var (
	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（路由模板，如/api/v2/orders/:id/cancel）、status（200/404）
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP请求耗时（秒）",
			// 1ms、10ms、100ms、500ms、1s、5s、10s
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	// DBQueriesPerRequest 每个请求执行的查询条数（Histogram）
	// 数值来自GORM查询计数回调
	DBQueriesPerRequest = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_queries_per_request",
			Help:    "每个HTTP请求执行的SELECT条数",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21, 50, 100},
		},
		[]string{"path"},
	)

	// 缓存指标

	// CacheRequestsTotal 缓存访问次数（Counter）
	// 标签：cache（item）、result（hit/miss/error）
	CacheRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_requests_total",
			Help: "缓存访问次数",
		},
		[]string{"cache", "result"},
	)

	// CacheBreakerState 缓存熔断器状态（Gauge）
	// 0=CLOSED 1=OPEN 2=HALF_OPEN
	CacheBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_breaker_state",
			Help: "缓存熔断器状态（0=CLOSED 1=OPEN 2=HALF_OPEN）",
		},
		[]string{"cache"},
	)

	// 业务指标

	// MembersJoinedTotal 会员注册总数（Counter）
	MembersJoinedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "members_joined_total",
			Help: "会员注册总数",
		},
	)

	// OrdersPlacedTotal 下单成功总数（Counter）
	OrdersPlacedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "下单成功总数",
		},
	)

	// OrdersFailedTotal 下单失败总数（Counter）
	OrdersFailedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_failed_total",
			Help: "下单失败总数",
		},
	)

	// OrdersCancelledTotal 取消订单总数（Counter）
	OrdersCancelledTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_cancelled_total",
			Help: "取消订单总数",
		},
	)

	// OrderPlacementDuration 下单耗时（Histogram）
	// 下单在一个事务里查会员、查商品、写订单、扣库存
	OrderPlacementDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "order_placement_duration_seconds",
			Help:    "下单耗时（秒）",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)
)

// InitMetrics 把所有指标注册到默认Registry
//
// 程序启动时调用一次，重复调用无副作用
//
// 示例：
//
//	func main() {
//	    metrics.InitMetrics()
//	    router.GET("/metrics", gin.WrapH(promhttp.Handler()))
//	}
func InitMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDuration,
			HTTPRequestsInProgress,
			DBQueriesPerRequest,
			CacheRequestsTotal,
			CacheBreakerState,
			MembersJoinedTotal,
			OrdersPlacedTotal,
			OrdersFailedTotal,
			OrdersCancelledTotal,
			OrderPlacementDuration,
		)
	})
}

// 缓存访问结果
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// IncCounter 递增Counter（便捷函数）
func IncCounter(counter prometheus.Counter) {
	counter.Inc()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// SetGauge 设置Gauge值
func SetGauge(gauge prometheus.Gauge, value float64) {
	gauge.Set(value)
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	histogram.Observe(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}

// RecordCache 记录一次缓存访问
func RecordCache(cache, result string) {
	CacheRequestsTotal.WithLabelValues(cache, result).Inc()
}
