package item

import "context"

// Repository 商品仓储接口
type Repository interface {
	// Save 保存新商品并回填ID
	Save(ctx context.Context, i *Item) error

	// Update 写回名称、价格、库存
	Update(ctx context.Context, i *Item) error

	// FindOne 按ID查询，不存在返回ErrItemNotFound
	FindOne(ctx context.Context, id uint) (*Item, error)

	// FindAll 查询全部商品（按ID升序）
	FindAll(ctx context.Context) ([]*Item, error)

	// FindByIDs 批量查询（一条IN查询），结果按ID升序
	FindByIDs(ctx context.Context, ids []uint) ([]*Item, error)
}
