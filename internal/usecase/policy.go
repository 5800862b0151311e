package usecase

import "app/internal/domain/model"

type Operation string

const (
	OpCancelOrder   Operation = "order.cancel"
	OpDeleteOrder   Operation = "order.delete"
	OpMutateStock   Operation = "stock.mutate"
	OpDeleteProduct Operation = "product.delete"
	OpManageUsers   Operation = "user.manage"
)

// 操作ごとのroleの許可リスト。role比較をcontrollerに散らばらせない。
type Policy struct {
	allow map[Operation][]model.Role
}

func NewPolicy() *Policy {
	return &Policy{
		allow: map[Operation][]model.Role{
			OpCancelOrder:   {model.RoleAdmin},
			OpDeleteOrder:   {model.RoleAdmin},
			OpMutateStock:   {model.RoleAdmin},
			OpDeleteProduct: {model.RoleAdmin},
			OpManageUsers:   {model.RoleAdmin},
		},
	}
}

func (p *Policy) Allows(role model.Role, op Operation) bool {
	roles, ok := p.allow[op]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
