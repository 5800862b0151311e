package repository

import (
	"app/internal/domain/model"
	"context"
)

// ユーザーの保存・取得を約束
type UserRepository interface {
	Create(ctx context.Context, user model.User) (model.User, error)
	FindByID(ctx context.Context, userID int64) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdateRole(ctx context.Context, userID int64, role model.Role) (model.User, error)
	Delete(ctx context.Context, userID int64) error
}
