package member

import (
	"context"

	"github.com/xiebiao/jpashop/internal/domain/member"
)

// ListMembersUseCase 会员列表查询用例
// 教学要点:
// v1直接返回实体：实体字段一改，API就跟着变；
// v2返回只含name的DTO，API与实体解耦
type ListMembersUseCase struct {
	memberService member.Service
}

// NewListMembersUseCase 创建列表查询用例
func NewListMembersUseCase(memberService member.Service) *ListMembersUseCase {
	return &ListMembersUseCase{memberService: memberService}
}

// MemberDto 会员DTO
type MemberDto struct {
	Name string `json:"name"`
}

// ExecuteEntities 返回实体（v1）
func (uc *ListMembersUseCase) ExecuteEntities(ctx context.Context) ([]*member.Member, error) {
	return uc.memberService.FindMembers(ctx)
}

// Execute 返回DTO（v2）
func (uc *ListMembersUseCase) Execute(ctx context.Context) ([]MemberDto, error) {
	members, err := uc.memberService.FindMembers(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]MemberDto, len(members))
	for i, m := range members {
		list[i] = MemberDto{Name: m.Name}
	}
	return list, nil
}
