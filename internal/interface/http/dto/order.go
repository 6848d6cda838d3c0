package dto

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	MemberID uint `json:"memberId" binding:"required" example:"1"`
	ItemID   uint `json:"itemId" binding:"required" example:"1"`
	Count    int  `json:"count" binding:"required,min=1" example:"2"`
}

// OrderSearchQuery 订单检索条件
type OrderSearchQuery struct {
	MemberName  string `form:"memberName" binding:"max=100"`
	OrderStatus string `form:"orderStatus" binding:"omitempty,oneof=ORDERED CANCEL"`
}

// PageQuery 分页参数
type PageQuery struct {
	Offset int `form:"offset,default=0" binding:"min=0"`
	Limit  int `form:"limit,default=100" binding:"min=1,max=1000"`
}

// IDUri 路径中的ID
type IDUri struct {
	ID uint `uri:"id" binding:"required,min=1"`
}
