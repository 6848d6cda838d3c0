package member

import (
	"context"

	"github.com/xiebiao/jpashop/internal/domain/member"
	"github.com/xiebiao/jpashop/internal/domain/shared"
	"github.com/xiebiao/jpashop/pkg/metrics"
)

// JoinMemberUseCase 会员注册用例
type JoinMemberUseCase struct {
	memberService member.Service
}

// NewJoinMemberUseCase 创建注册用例
func NewJoinMemberUseCase(memberService member.Service) *JoinMemberUseCase {
	return &JoinMemberUseCase{memberService: memberService}
}

// JoinMemberRequest 注册请求DTO
type JoinMemberRequest struct {
	Name    string
	Address shared.Address
}

// JoinMemberResponse 注册响应DTO
type JoinMemberResponse struct {
	ID uint `json:"id"`
}

// Execute 执行注册
// 名称校验和重名检查都在领域服务里完成
func (uc *JoinMemberUseCase) Execute(ctx context.Context, req JoinMemberRequest) (*JoinMemberResponse, error) {
	id, err := uc.memberService.Join(ctx, member.NewMember(req.Name, req.Address))
	if err != nil {
		return nil, err
	}

	metrics.IncCounter(metrics.MembersJoinedTotal)
	return &JoinMemberResponse{ID: id}, nil
}
