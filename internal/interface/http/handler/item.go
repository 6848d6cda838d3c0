package handler

import (
	"github.com/gin-gonic/gin"

	appitem "github.com/xiebiao/jpashop/internal/application/item"
	"github.com/xiebiao/jpashop/internal/interface/http/dto"
	"github.com/xiebiao/jpashop/pkg/response"
)

// ItemHandler 商品HTTP处理器
type ItemHandler struct {
	saveItemUseCase   *appitem.SaveItemUseCase
	updateItemUseCase *appitem.UpdateItemUseCase
	listItemsUseCase  *appitem.ListItemsUseCase
}

// NewItemHandler 创建商品处理器
func NewItemHandler(
	saveItemUseCase *appitem.SaveItemUseCase,
	updateItemUseCase *appitem.UpdateItemUseCase,
	listItemsUseCase *appitem.ListItemsUseCase,
) *ItemHandler {
	return &ItemHandler{
		saveItemUseCase:   saveItemUseCase,
		updateItemUseCase: updateItemUseCase,
		listItemsUseCase:  listItemsUseCase,
	}
}

// CreateBook 登记图书
// @Summary      登记图书
// @Tags         商品
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=dto.IDResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v2/items [post]
func (h *ItemHandler) CreateBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.saveItemUseCase.Execute(c.Request.Context(), appitem.SaveBookRequest{
		Name:          req.Name,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		Author:        req.Author,
		ISBN:          req.ISBN,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.IDResponse{ID: result.ID})
}

// UpdateItem 修改商品
// @Summary      修改商品
// @Description  只修改名称、价格、库存
// @Tags         商品
// @Accept       json
// @Produce      json
// @Param        id path int true "商品ID"
// @Param        request body dto.UpdateItemRequest true "商品信息"
// @Success      200 {object} response.Response{data=appitem.ItemDto}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v2/items/{id} [put]
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	var uri dto.IDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}
	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.updateItemUseCase.Execute(c.Request.Context(), appitem.UpdateItemRequest{
		ID:            uri.ID,
		Name:          req.Name,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListItems 商品列表
// @Summary      商品列表
// @Tags         商品
// @Produce      json
// @Success      200 {object} response.Response{data=response.Result{data=[]appitem.ItemDto}}
// @Router       /api/v2/items [get]
func (h *ItemHandler) ListItems(c *gin.Context) {
	list, err := h.listItemsUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, response.Result{Count: len(list), Data: list})
}

// GetItem 商品详情
// @Summary      商品详情
// @Tags         商品
// @Produce      json
// @Param        id path int true "商品ID"
// @Success      200 {object} response.Response{data=appitem.ItemDto}
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v2/items/{id} [get]
func (h *ItemHandler) GetItem(c *gin.Context) {
	var uri dto.IDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.listItemsUseCase.Get(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
