package item

import "github.com/xiebiao/jpashop/internal/domain/item"

// ItemDto 商品DTO
type ItemDto struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Price         int    `json:"price"`
	StockQuantity int    `json:"stockQuantity"`
	Author        string `json:"author"`
	ISBN          string `json:"isbn"`
}

func toItemDto(i *item.Item) ItemDto {
	return ItemDto{
		ID:            i.ID,
		Name:          i.Name,
		Price:         i.Price,
		StockQuantity: i.StockQuantity,
		Author:        i.Author,
		ISBN:          i.ISBN,
	}
}
