package handler

import (
	"github.com/gin-gonic/gin"

	appmember "github.com/xiebiao/jpashop/internal/application/member"
	"github.com/xiebiao/jpashop/internal/domain/member"
	"github.com/xiebiao/jpashop/internal/domain/shared"
	"github.com/xiebiao/jpashop/internal/interface/http/dto"
	"github.com/xiebiao/jpashop/pkg/response"
)

// MemberHandler 会员HTTP处理器
type MemberHandler struct {
	joinMemberUseCase   *appmember.JoinMemberUseCase
	listMembersUseCase  *appmember.ListMembersUseCase
	updateMemberUseCase *appmember.UpdateMemberUseCase
}

// NewMemberHandler 创建会员处理器
func NewMemberHandler(
	joinMemberUseCase *appmember.JoinMemberUseCase,
	listMembersUseCase *appmember.ListMembersUseCase,
	updateMemberUseCase *appmember.UpdateMemberUseCase,
) *MemberHandler {
	return &MemberHandler{
		joinMemberUseCase:   joinMemberUseCase,
		listMembersUseCase:  listMembersUseCase,
		updateMemberUseCase: updateMemberUseCase,
	}
}

// SaveMemberV1 会员注册（请求体直接绑定到实体）
// @Summary      会员注册v1
// @Description  请求体直接绑定到领域实体，实体改动会直接改变API
// @Tags         会员
// @Accept       json
// @Produce      json
// @Param        request body member.Member true "会员实体"
// @Success      200 {object} response.Response{data=dto.IDResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "会员名已存在"
// @Router       /api/v1/members [post]
func (h *MemberHandler) SaveMemberV1(c *gin.Context) {
	var m member.Member
	if err := c.ShouldBindJSON(&m); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.joinMemberUseCase.Execute(c.Request.Context(), appmember.JoinMemberRequest{
		Name:    m.Name,
		Address: m.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.IDResponse{ID: result.ID})
}

// SaveMemberV2 会员注册（独立的请求DTO）
// @Summary      会员注册v2
// @Tags         会员
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateMemberRequest true "会员信息"
// @Success      200 {object} response.Response{data=dto.IDResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "会员名已存在"
// @Router       /api/v2/members [post]
func (h *MemberHandler) SaveMemberV2(c *gin.Context) {
	var req dto.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.joinMemberUseCase.Execute(c.Request.Context(), appmember.JoinMemberRequest{
		Name:    req.Name,
		Address: shared.NewAddress(req.Address.City, req.Address.Street, req.Address.Zipcode),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.IDResponse{ID: result.ID})
}

// UpdateMemberV2 修改会员名
// @Summary      修改会员
// @Tags         会员
// @Accept       json
// @Produce      json
// @Param        id path int true "会员ID"
// @Param        request body dto.UpdateMemberRequest true "新名称"
// @Success      200 {object} response.Response{data=appmember.UpdateMemberResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "会员不存在"
// @Router       /api/v2/members/{id} [put]
func (h *MemberHandler) UpdateMemberV2(c *gin.Context) {
	var uri dto.IDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}
	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.updateMemberUseCase.Execute(c.Request.Context(), uri.ID, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// MembersV1 会员列表（直接返回实体）
// @Summary      会员列表v1
// @Tags         会员
// @Produce      json
// @Success      200 {object} response.Response{data=[]member.Member}
// @Router       /api/v1/members [get]
func (h *MemberHandler) MembersV1(c *gin.Context) {
	members, err := h.listMembersUseCase.ExecuteEntities(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, members)
}

// MembersV2 会员列表（DTO + count包装）
// @Summary      会员列表v2
// @Tags         会员
// @Produce      json
// @Success      200 {object} response.Response{data=response.Result{data=[]appmember.MemberDto}}
// @Router       /api/v2/members [get]
func (h *MemberHandler) MembersV2(c *gin.Context) {
	list, err := h.listMembersUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, response.Result{Count: len(list), Data: list})
}
