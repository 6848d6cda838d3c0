package item

import (
	"context"

	"github.com/xiebiao/jpashop/internal/domain/item"
)

// ListItemsUseCase 商品查询用例
type ListItemsUseCase struct {
	itemService item.Service
}

// NewListItemsUseCase 创建查询用例
func NewListItemsUseCase(itemService item.Service) *ListItemsUseCase {
	return &ListItemsUseCase{itemService: itemService}
}

// Execute 查询全部商品
func (uc *ListItemsUseCase) Execute(ctx context.Context) ([]ItemDto, error) {
	items, err := uc.itemService.FindItems(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]ItemDto, len(items))
	for i, it := range items {
		list[i] = toItemDto(it)
	}
	return list, nil
}

// Get 查询单个商品
// 开启Redis时这里会先读缓存
func (uc *ListItemsUseCase) Get(ctx context.Context, id uint) (*ItemDto, error) {
	found, err := uc.itemService.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toItemDto(found)
	return &dto, nil
}
