package item

import (
	"context"

	"github.com/xiebiao/jpashop/internal/domain/shared"
)

// Service 商品领域服务
type Service interface {
	SaveItem(ctx context.Context, i *Item) (uint, error)
	UpdateItem(ctx context.Context, id uint, name string, price, stockQuantity int) (*Item, error)
	FindItems(ctx context.Context) ([]*Item, error)
	FindOne(ctx context.Context, id uint) (*Item, error)
}

type service struct {
	repo Repository
	tx   shared.Transactor
}

// NewService 创建商品服务
func NewService(repo Repository, tx shared.Transactor) Service {
	return &service{repo: repo, tx: tx}
}

func (s *service) SaveItem(ctx context.Context, i *Item) (uint, error) {
	if err := i.validate(); err != nil {
		return 0, err
	}
	if err := s.repo.Save(ctx, i); err != nil {
		return 0, err
	}
	return i.ID, nil
}

// UpdateItem 修改商品
// 在同一个事务里加载、修改、写回。写回放在事务闭包的最后一步，
// 闭包返回nil时才提交，中途任何错误都不会留下半更新的数据
func (s *service) UpdateItem(ctx context.Context, id uint, name string, price, stockQuantity int) (*Item, error) {
	var updated *Item
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		found, err := s.repo.FindOne(ctx, id)
		if err != nil {
			return err
		}
		if err := found.ChangeItemInfo(name, price, stockQuantity); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, found); err != nil {
			return err
		}
		updated = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) FindItems(ctx context.Context) ([]*Item, error) {
	return s.repo.FindAll(ctx)
}

func (s *service) FindOne(ctx context.Context, id uint) (*Item, error) {
	return s.repo.FindOne(ctx, id)
}
