package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/jpashop/internal/domain/member"
	apperrors "github.com/xiebiao/jpashop/pkg/errors"
)

// memberRepository 会员仓储实现（MySQL）
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository 创建会员仓储
// 注意：返回的是domain层的接口类型，不是具体类型（依赖倒置）
func NewMemberRepository(db *gorm.DB) member.Repository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Save(ctx context.Context, m *member.Member) error {
	model := toMemberModel(m)
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "保存会员失败")
	}
	m.ID = model.ID
	return nil
}

func (r *memberRepository) Update(ctx context.Context, m *member.Member) error {
	err := dbFrom(ctx, r.db).Model(&MemberModel{ID: m.ID}).Updates(map[string]interface{}{
		"name":    m.Name,
		"city":    m.Address.City,
		"street":  m.Address.Street,
		"zipcode": m.Address.Zipcode,
	}).Error
	if err != nil {
		return apperrors.Wrap(err, "更新会员失败")
	}
	return nil
}

func (r *memberRepository) FindOne(ctx context.Context, id uint) (*member.Member, error) {
	var model MemberModel
	err := dbFrom(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, member.ErrMemberNotFound
		}
		return nil, apperrors.Wrap(err, "查询会员失败")
	}
	return toMemberEntity(&model), nil
}

func (r *memberRepository) FindAll(ctx context.Context) ([]*member.Member, error) {
	var models []MemberModel
	if err := dbFrom(ctx, r.db).Order("id").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询会员列表失败")
	}
	return toMemberEntities(models), nil
}

// FindByName 按名称精确匹配
func (r *memberRepository) FindByName(ctx context.Context, name string) ([]*member.Member, error) {
	var models []MemberModel
	if err := dbFrom(ctx, r.db).Where("name = ?", name).Order("id").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询会员失败")
	}
	return toMemberEntities(models), nil
}

func toMemberEntities(models []MemberModel) []*member.Member {
	members := make([]*member.Member, 0, len(models))
	for i := range models {
		members = append(members, toMemberEntity(&models[i]))
	}
	return members
}
