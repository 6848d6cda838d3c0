package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/jpashop/internal/application/order"
	"github.com/xiebiao/jpashop/internal/interface/http/dto"
	"github.com/xiebiao/jpashop/pkg/response"
)

// OrderHandler 订单命令和检索的HTTP处理器
type OrderHandler struct {
	placeOrderUseCase   *apporder.PlaceOrderUseCase
	cancelOrderUseCase  *apporder.CancelOrderUseCase
	searchOrdersUseCase *apporder.SearchOrdersUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	placeOrderUseCase *apporder.PlaceOrderUseCase,
	cancelOrderUseCase *apporder.CancelOrderUseCase,
	searchOrdersUseCase *apporder.SearchOrdersUseCase,
) *OrderHandler {
	return &OrderHandler{
		placeOrderUseCase:   placeOrderUseCase,
		cancelOrderUseCase:  cancelOrderUseCase,
		searchOrdersUseCase: searchOrdersUseCase,
	}
}

// PlaceOrder 下单
// @Summary      下单
// @Description  单个商品下单，库存不足返回40001
// @Tags         订单
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateOrderRequest true "下单信息"
// @Success      200 {object} response.Response{data=dto.IDResponse}
// @Failure      400 {object} response.Response "参数错误或库存不足"
// @Failure      404 {object} response.Response "会员或商品不存在"
// @Router       /api/v2/orders [post]
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.placeOrderUseCase.Execute(c.Request.Context(), apporder.PlaceOrderRequest{
		MemberID: req.MemberID,
		ItemID:   req.ItemID,
		Count:    req.Count,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.IDResponse{ID: result.ID})
}

// CancelOrder 取消订单
// @Summary      取消订单
// @Description  已配送完成的订单不能取消
// @Tags         订单
// @Produce      json
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "订单状态不允许取消"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v2/orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	var uri dto.IDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	if err := h.cancelOrderUseCase.Execute(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// SearchOrders 按会员名和状态检索订单
// @Summary      检索订单
// @Tags         订单
// @Produce      json
// @Param        memberName  query string false "会员名（模糊匹配）"
// @Param        orderStatus query string false "订单状态" Enums(ORDERED, CANCEL)
// @Success      200 {object} response.Response{data=[]apporder.SimpleOrderDto}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v2/orders/search [get]
func (h *OrderHandler) SearchOrders(c *gin.Context) {
	var query dto.OrderSearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.searchOrdersUseCase.Execute(c.Request.Context(), apporder.SearchOrdersRequest{
		MemberName:  query.MemberName,
		OrderStatus: query.OrderStatus,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
