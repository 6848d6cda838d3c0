package shared

import "context"

// Address 地址（值对象）
// 没有ID，整体嵌入Member和Delivery，修改时整体替换而不是改某个字段
type Address struct {
	City    string `json:"city"`
	Street  string `json:"street"`
	Zipcode string `json:"zipcode"`
}

// NewAddress 创建地址
func NewAddress(city, street, zipcode string) Address {
	return Address{City: city, Street: street, Zipcode: zipcode}
}

// Transactor 事务边界
// 由persistence/mysql.TxManager实现，fn返回nil时提交，返回error时回滚
// 领域服务只依赖这个接口，单元测试可以替换为直接调用fn的实现
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
