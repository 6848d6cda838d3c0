package item

import (
	"context"

	"github.com/xiebiao/jpashop/internal/domain/item"
)

// UpdateItemUseCase 修改商品用例
// 教学要点:
// 不要用请求数据拼一个新实体整体覆盖（没传的字段会被清空）；
// 先加载已有实体，只修改允许修改的字段，再写回。
type UpdateItemUseCase struct {
	itemService item.Service
}

// NewUpdateItemUseCase 创建修改用例
func NewUpdateItemUseCase(itemService item.Service) *UpdateItemUseCase {
	return &UpdateItemUseCase{itemService: itemService}
}

// UpdateItemRequest 修改请求DTO
type UpdateItemRequest struct {
	ID            uint
	Name          string
	Price         int
	StockQuantity int
}

// Execute 修改名称、价格、库存
func (uc *UpdateItemUseCase) Execute(ctx context.Context, req UpdateItemRequest) (*ItemDto, error) {
	updated, err := uc.itemService.UpdateItem(ctx, req.ID, req.Name, req.Price, req.StockQuantity)
	if err != nil {
		return nil, err
	}
	dto := toItemDto(updated)
	return &dto, nil
}
