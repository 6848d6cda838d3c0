package item

import (
	"context"

	"github.com/xiebiao/jpashop/internal/domain/item"
)

// SaveItemUseCase 登记商品用例（目前只有图书）
type SaveItemUseCase struct {
	itemService item.Service
}

// NewSaveItemUseCase 创建登记用例
func NewSaveItemUseCase(itemService item.Service) *SaveItemUseCase {
	return &SaveItemUseCase{itemService: itemService}
}

// SaveBookRequest 登记图书请求DTO
type SaveBookRequest struct {
	Name          string
	Price         int
	StockQuantity int
	Author        string
	ISBN          string
}

// SaveItemResponse 登记响应DTO
type SaveItemResponse struct {
	ID uint `json:"id"`
}

// Execute 登记图书
func (uc *SaveItemUseCase) Execute(ctx context.Context, req SaveBookRequest) (*SaveItemResponse, error) {
	book, err := item.NewBook(req.Name, req.Price, req.StockQuantity, req.Author, req.ISBN)
	if err != nil {
		return nil, err
	}

	id, err := uc.itemService.SaveItem(ctx, book)
	if err != nil {
		return nil, err
	}
	return &SaveItemResponse{ID: id}, nil
}
