package dto

// AddressRequest 地址
type AddressRequest struct {
	City    string `json:"city" binding:"max=100" example:"Seoul"`
	Street  string `json:"street" binding:"max=200" example:"1"`
	Zipcode string `json:"zipcode" binding:"max=20" example:"1111"`
}

// CreateMemberRequest 会员注册请求（v2）
// 与实体分离：实体改字段不会影响API
type CreateMemberRequest struct {
	Name    string         `json:"name" binding:"required,max=100" example:"userA"`
	Address AddressRequest `json:"address"`
}

// UpdateMemberRequest 修改会员请求
type UpdateMemberRequest struct {
	Name string `json:"name" binding:"required,max=100" example:"userB"`
}

// IDResponse 只返回ID
type IDResponse struct {
	ID uint `json:"id" example:"1"`
}
