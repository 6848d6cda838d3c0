package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/jpashop/internal/application/order"
	"github.com/xiebiao/jpashop/internal/interface/http/dto"
	"github.com/xiebiao/jpashop/pkg/response"
)

// OrderQueryHandler 订单查询的各个版本
// 每个版本返回相同的数据，区别只在SQL条数，见apporder包的说明
type OrderQueryHandler struct {
	simple *apporder.SimpleOrderQueryUseCase
	full   *apporder.OrderQueryUseCase
}

// NewOrderQueryHandler 创建订单查询处理器
func NewOrderQueryHandler(simple *apporder.SimpleOrderQueryUseCase, full *apporder.OrderQueryUseCase) *OrderQueryHandler {
	return &OrderQueryHandler{simple: simple, full: full}
}

// respond 统一输出查询结果
func respond[T any](c *gin.Context, result T, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// SimpleOrdersV1 简单订单v1：实体 + 懒加载
// @Summary      简单订单v1
// @Description  直接暴露实体，会员、配送逐个懒加载（1+N+N）
// @Tags         订单查询
// @Produce      json
// @Success      200 {object} response.Response{data=[]order.Order}
// @Router       /api/v1/simple-orders [get]
func (h *OrderQueryHandler) SimpleOrdersV1(c *gin.Context) {
	result, err := h.simple.V1(c.Request.Context())
	respond(c, result, err)
}

// SimpleOrdersV2 简单订单v2：DTO + 懒加载
// @Summary      简单订单v2
// @Tags         订单查询
// @Produce      json
// @Success      200 {object} response.Response{data=[]apporder.SimpleOrderDto}
// @Router       /api/v2/simple-orders [get]
func (h *OrderQueryHandler) SimpleOrdersV2(c *gin.Context) {
	result, err := h.simple.V2(c.Request.Context())
	respond(c, result, err)
}

// SimpleOrdersV3 简单订单v3：JOIN一次取关联
// @Summary      简单订单v3
// @Tags         订单查询
// @Produce      json
// @Success      200 {object} response.Response{data=[]apporder.SimpleOrderDto}
// @Router       /api/v3/simple-orders [get]
func (h *OrderQueryHandler) SimpleOrdersV3(c *gin.Context) {
	result, err := h.simple.V3(c.Request.Context())
	respond(c, result, err)
}

// SimpleOrdersV4 简单订单v4：直接查询DTO
// @Summary      简单订单v4
// @Tags         订单查询
// @Produce      json
// @Success      200 {object} response.Response{data=[]order.SimpleQueryDto}
// @Router       /api/v4/simple-orders [get]
func (h *OrderQueryHandler) SimpleOrdersV4(c *gin.Context) {
	result, err := h.simple.V4(c.Request.Context())
	respond(c, result, err)
}

// OrdersV1 订单v1：实体 + 懒加载全部关联
// @Summary      订单v1
// @Tags         订单查询
// @Produce      json
// @Success      200 {object} response.Response{data=[]order.Order}
// @Router       /api/v1/orders [get]
func (h *OrderQueryHandler) OrdersV1(c *gin.Context) {
	result, err := h.full.V1(c.Request.Context())
	respond(c, result, err)
}

// OrdersV2 订单v2：DTO + 懒加载
// @Summary      订单v2
// @Tags         订单查询
// @Produce      json
// @Success      200 {object} response.Response{data=[]apporder.OrderDto}
// @Router       /api/v2/orders [get]
func (h *OrderQueryHandler) OrdersV2(c *gin.Context) {
	result, err := h.full.V2(c.Request.Context())
	respond(c, result, err)
}

// OrdersV3 订单v3：JOIN明细后内存去重
// @Summary      订单v3
// @Description  一条SQL，但不能分页
// @Tags         订单查询
// @Produce      json
// @Success      200 {object} response.Response{data=[]apporder.OrderDto}
// @Router       /api/v3/orders [get]
func (h *OrderQueryHandler) OrdersV3(c *gin.Context) {
	result, err := h.full.V3(c.Request.Context())
	respond(c, result, err)
}

// OrdersV3Page 订单v3.1：对一JOIN分页 + 明细批量加载
// @Summary      订单v3.1
// @Tags         订单查询
// @Produce      json
// @Param        offset query int false "起始位置" default(0)
// @Param        limit  query int false "页大小" default(100)
// @Success      200 {object} response.Response{data=[]apporder.OrderDto}
// @Failure      400 {object} response.Response "分页参数错误"
// @Router       /api/v3.1/orders [get]
func (h *OrderQueryHandler) OrdersV3Page(c *gin.Context) {
	var page dto.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BindError(c, err)
		return
	}
	result, err := h.full.V3Page(c.Request.Context(), apporder.PageRequest{Offset: page.Offset, Limit: page.Limit})
	respond(c, result, err)
}

// OrdersV4 订单v4：DTO投影，每个订单查询一次明细
// @Summary      订单v4
// @Tags         订单查询
// @Produce      json
// @Success      200 {object} response.Response{data=[]order.QueryDto}
// @Router       /api/v4/orders [get]
func (h *OrderQueryHandler) OrdersV4(c *gin.Context) {
	result, err := h.full.V4(c.Request.Context())
	respond(c, result, err)
}

// OrdersV5 订单v5：DTO投影，明细一次IN查询
// @Summary      订单v5
// @Tags         订单查询
// @Produce      json
// @Success      200 {object} response.Response{data=[]order.QueryDto}
// @Router       /api/v5/orders [get]
func (h *OrderQueryHandler) OrdersV5(c *gin.Context) {
	result, err := h.full.V5(c.Request.Context())
	respond(c, result, err)
}

// OrdersV6 订单v6：扁平投影后内存分组
// @Summary      订单v6
// @Tags         订单查询
// @Produce      json
// @Success      200 {object} response.Response{data=[]order.QueryDto}
// @Router       /api/v6/orders [get]
func (h *OrderQueryHandler) OrdersV6(c *gin.Context) {
	result, err := h.full.V6(c.Request.Context())
	respond(c, result, err)
}
