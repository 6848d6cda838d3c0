package member

import (
	"context"

	"github.com/xiebiao/jpashop/internal/domain/shared"
)

// Service 会员领域服务
type Service interface {
	// Join 会员注册，返回新会员ID
	Join(ctx context.Context, m *Member) (uint, error)

	// FindMembers 查询全部会员
	FindMembers(ctx context.Context) ([]*Member, error)

	// FindOne 查询单个会员
	FindOne(ctx context.Context, id uint) (*Member, error)

	// Update 修改会员名
	Update(ctx context.Context, id uint, name string) (*Member, error)
}

type service struct {
	repo Repository
	tx   shared.Transactor
}

// NewService 创建会员服务
func NewService(repo Repository, tx shared.Transactor) Service {
	return &service{repo: repo, tx: tx}
}

// Join 会员注册
// 业务规则：
// 1. 会员名不能为空
// 2. 会员名不能重复
//
// 注意：重名检查是“先查再插”，两个并发请求可能同时通过检查。
// 这里有意不加唯一索引，重名只是业务提示，不是数据完整性约束
func (s *service) Join(ctx context.Context, m *Member) (uint, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}

	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.validateDuplicateMember(ctx, m.Name); err != nil {
			return err
		}
		return s.repo.Save(ctx, m)
	})
	if err != nil {
		return 0, err
	}

	return m.ID, nil
}

func (s *service) validateDuplicateMember(ctx context.Context, name string) error {
	found, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return err
	}
	if len(found) > 0 {
		return ErrDuplicateMember
	}
	return nil
}

func (s *service) FindMembers(ctx context.Context) ([]*Member, error) {
	return s.repo.FindAll(ctx)
}

func (s *service) FindOne(ctx context.Context, id uint) (*Member, error) {
	return s.repo.FindOne(ctx, id)
}

// Update 修改会员名
// 先加载再修改：实体上的ChangeName负责校验，仓储只负责写回
func (s *service) Update(ctx context.Context, id uint, name string) (*Member, error) {
	var updated *Member
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		m, err := s.repo.FindOne(ctx, id)
		if err != nil {
			return err
		}
		if err := m.ChangeName(name); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, m); err != nil {
			return err
		}
		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
