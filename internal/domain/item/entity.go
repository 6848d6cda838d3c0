package item

// Item 商品实体
// 目前只有图书一种商品，Author和ISBN是图书特有的属性
// 库存的增减只能通过AddStock/RemoveStock，保证库存不为负数
type Item struct {
	ID            uint
	Name          string
	Price         int
	StockQuantity int
	Author        string
	ISBN          string
}

// NewBook 创建图书（工厂方法）
func NewBook(name string, price, stockQuantity int, author, isbn string) (*Item, error) {
	b := &Item{
		Name:          name,
		Price:         price,
		StockQuantity: stockQuantity,
		Author:        author,
		ISBN:          isbn,
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// AddStock 增加库存
func (i *Item) AddStock(quantity int) {
	i.StockQuantity += quantity
}

// RemoveStock 扣减库存
// 扣减后为负数时返回ErrNotEnoughStock，库存保持不变
func (i *Item) RemoveStock(quantity int) error {
	rest := i.StockQuantity - quantity
	if rest < 0 {
		return ErrNotEnoughStock
	}
	i.StockQuantity = rest
	return nil
}

// ChangeItemInfo 修改商品信息
// 修改商品只走这一个入口，不提供单独的setter
func (i *Item) ChangeItemInfo(name string, price, stockQuantity int) error {
	changed := *i
	changed.Name = name
	changed.Price = price
	changed.StockQuantity = stockQuantity
	if err := changed.validate(); err != nil {
		return err
	}
	*i = changed
	return nil
}

func (i *Item) validate() error {
	if i.Name == "" {
		return ErrInvalidItem.WithMessage("商品名不能为空")
	}
	if i.Price < 0 {
		return ErrInvalidItem.WithMessage("价格不能为负数")
	}
	if i.StockQuantity < 0 {
		return ErrInvalidItem.WithMessage("库存不能为负数")
	}
	return nil
}
