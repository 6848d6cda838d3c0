package member

import "context"

// Repository 会员仓储接口
type Repository interface {
	// Save 保存新会员并回填ID
	Save(ctx context.Context, m *Member) error

	// Update 更新会员（名称、地址）
	Update(ctx context.Context, m *Member) error

	// FindOne 按ID查询，不存在返回ErrMemberNotFound
	FindOne(ctx context.Context, id uint) (*Member, error)

	// FindAll 查询全部会员（按ID升序）
	FindAll(ctx context.Context) ([]*Member, error)

	// FindByName 按名称精确查询，可能返回多条
	FindByName(ctx context.Context, name string) ([]*Member, error)
}
