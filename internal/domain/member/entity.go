package member

import (
	"strings"

	"github.com/xiebiao/jpashop/internal/domain/shared"
)

// Member 会员实体
// 说明：
// 1. 会员与订单是一对多关系，但Member不持有订单列表
//    订单一侧保存MemberID，需要“某会员的订单”时由订单仓储查询
// 2. 领域实体不依赖GORM tag
type Member struct {
	ID      uint
	Name    string
	Address shared.Address
}

// NewMember 创建会员（工厂方法）
func NewMember(name string, address shared.Address) *Member {
	return &Member{
		Name:    strings.TrimSpace(name),
		Address: address,
	}
}

// ChangeName 修改会员名（领域行为）
func (m *Member) ChangeName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	m.Name = name
	return nil
}

// Validate 校验实体不变量
func (m *Member) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyName
	}
	return nil
}
