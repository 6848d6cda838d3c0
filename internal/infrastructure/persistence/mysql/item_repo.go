package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/jpashop/internal/domain/item"
	apperrors "github.com/xiebiao/jpashop/pkg/errors"
)

// itemRepository 商品仓储实现（MySQL）
type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository 创建商品仓储
func NewItemRepository(db *gorm.DB) item.Repository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Save(ctx context.Context, i *item.Item) error {
	model := toItemModel(i)
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "保存商品失败")
	}
	i.ID = model.ID
	return nil
}

// Update 写回名称、价格、库存
// 用map而不是结构体，库存改为0时也会被更新（GORM的Updates会忽略结构体零值字段）
func (r *itemRepository) Update(ctx context.Context, i *item.Item) error {
	err := dbFrom(ctx, r.db).Model(&ItemModel{ID: i.ID}).Updates(map[string]interface{}{
		"name":           i.Name,
		"price":          i.Price,
		"stock_quantity": i.StockQuantity,
	}).Error
	if err != nil {
		return apperrors.Wrap(err, "更新商品失败")
	}
	return nil
}

func (r *itemRepository) FindOne(ctx context.Context, id uint) (*item.Item, error) {
	var model ItemModel
	err := dbFrom(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, item.ErrItemNotFound
		}
		return nil, apperrors.Wrap(err, "查询商品失败")
	}
	return toItemEntity(&model), nil
}

func (r *itemRepository) FindAll(ctx context.Context) ([]*item.Item, error) {
	var models []ItemModel
	if err := dbFrom(ctx, r.db).Order("id").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询商品列表失败")
	}
	return toItemEntities(models), nil
}

func (r *itemRepository) FindByIDs(ctx context.Context, ids []uint) ([]*item.Item, error) {
	if len(ids) == 0 {
		return []*item.Item{}, nil
	}
	var models []ItemModel
	if err := dbFrom(ctx, r.db).Where("id IN ?", ids).Order("id").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询商品失败")
	}
	return toItemEntities(models), nil
}

func toItemEntities(models []ItemModel) []*item.Item {
	items := make([]*item.Item, 0, len(models))
	for i := range models {
		items = append(items, toItemEntity(&models[i]))
	}
	return items
}
