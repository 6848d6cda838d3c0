package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/xiebiao/jpashop/docs" // 注册swagger文档
	"github.com/xiebiao/jpashop/internal/interface/http/handler"
	"github.com/xiebiao/jpashop/internal/interface/http/middleware"
	"github.com/xiebiao/jpashop/pkg/response"
)

// Handlers 路由需要的全部处理器
type Handlers struct {
	Member     *handler.MemberHandler
	Item       *handler.ItemHandler
	Order      *handler.OrderHandler
	OrderQuery *handler.OrderQueryHandler
}

// NewRouter 创建Gin引擎并注册路由
//
// 路由按版本分组，同一资源的不同版本演示不同的查询方式：
//
//	/api/v1/simple-orders ... /api/v4/simple-orders
//	/api/v1/orders ... /api/v6/orders，另有 /api/v3.1/orders 分页
func NewRouter(mode string, h Handlers) *gin.Engine {
	if mode != "" {
		gin.SetMode(mode)
	}

	r := gin.New()
	r.Use(middleware.Logger(), middleware.Recovery(), middleware.Metrics())

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	// 生产环境建议关闭或加访问控制
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")

	v1 := api.Group("/v1")
	{
		v1.GET("/members", h.Member.MembersV1)
		v1.POST("/members", h.Member.SaveMemberV1)
		v1.GET("/simple-orders", h.OrderQuery.SimpleOrdersV1)
		v1.GET("/orders", h.OrderQuery.OrdersV1)
	}

	v2 := api.Group("/v2")
	{
		members := v2.Group("/members")
		{
			members.GET("", h.Member.MembersV2)
			members.POST("", h.Member.SaveMemberV2)
			members.PUT("/:id", h.Member.UpdateMemberV2)
		}

		items := v2.Group("/items")
		{
			items.GET("", h.Item.ListItems)
			items.POST("", h.Item.CreateBook)
			items.GET("/:id", h.Item.GetItem)
			items.PUT("/:id", h.Item.UpdateItem)
		}

		v2.GET("/simple-orders", h.OrderQuery.SimpleOrdersV2)

		orders := v2.Group("/orders")
		{
			orders.GET("", h.OrderQuery.OrdersV2)
			orders.POST("", h.Order.PlaceOrder)
			orders.GET("/search", h.Order.SearchOrders)
			orders.POST("/:id/cancel", h.Order.CancelOrder)
		}
	}

	api.GET("/v3/simple-orders", h.OrderQuery.SimpleOrdersV3)
	api.GET("/v3/orders", h.OrderQuery.OrdersV3)
	api.GET("/v3.1/orders", h.OrderQuery.OrdersV3Page)
	api.GET("/v4/simple-orders", h.OrderQuery.SimpleOrdersV4)
	api.GET("/v4/orders", h.OrderQuery.OrdersV4)
	api.GET("/v5/orders", h.OrderQuery.OrdersV5)
	api.GET("/v6/orders", h.OrderQuery.OrdersV6)

	return r
}
