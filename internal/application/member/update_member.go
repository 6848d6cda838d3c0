package member

import (
	"context"

	"github.com/xiebiao/jpashop/internal/domain/member"
)

// UpdateMemberUseCase 修改会员用例
type UpdateMemberUseCase struct {
	memberService member.Service
}

// NewUpdateMemberUseCase 创建修改用例
func NewUpdateMemberUseCase(memberService member.Service) *UpdateMemberUseCase {
	return &UpdateMemberUseCase{memberService: memberService}
}

// UpdateMemberResponse 修改响应DTO
type UpdateMemberResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Execute 修改会员名，返回修改后的结果
func (uc *UpdateMemberUseCase) Execute(ctx context.Context, id uint, name string) (*UpdateMemberResponse, error) {
	m, err := uc.memberService.Update(ctx, id, name)
	if err != nil {
		return nil, err
	}
	return &UpdateMemberResponse{ID: m.ID, Name: m.Name}, nil
}
