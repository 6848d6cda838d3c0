package dto

// CreateBookRequest 登记图书请求
type CreateBookRequest struct {
	Name          string `json:"name" binding:"required,max=200" example:"JPA1 BOOK"`
	Price         int    `json:"price" binding:"min=0" example:"10000"`
	StockQuantity int    `json:"stockQuantity" binding:"min=0" example:"100"`
	Author        string `json:"author" binding:"max=100" example:"kim"`
	ISBN          string `json:"isbn" binding:"max=20" example:"9788960777330"`
}

// UpdateItemRequest 修改商品请求
// 作者、ISBN不允许修改
type UpdateItemRequest struct {
	Name          string `json:"name" binding:"required,max=200" example:"JPA1 BOOK 2nd"`
	Price         int    `json:"price" binding:"min=0" example:"12000"`
	StockQuantity int    `json:"stockQuantity" binding:"min=0" example:"50"`
}
