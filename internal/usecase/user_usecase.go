package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 管理者向けのユーザー管理。
type UserUsecase struct {
	users  repo.UserRepository
	policy *Policy
}

func NewUserUsecase(users repo.UserRepository, policy *Policy) *UserUsecase {
	return &UserUsecase{users: users, policy: policy}
}

func (u *UserUsecase) List(ctx context.Context, actingRole model.Role) ([]model.User, error) {
	if !u.policy.Allows(actingRole, OpManageUsers) {
		return []model.User{}, NewHTTPError(http.StatusForbidden, "admin only")
	}

	users, err := u.users.List(ctx)
	if err != nil {
		return []model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return users, nil
}

func (u *UserUsecase) GetByID(ctx context.Context, actingRole model.Role, userID int64) (model.User, error) {
	if !u.policy.Allows(actingRole, OpManageUsers) {
		return model.User{}, NewHTTPError(http.StatusForbidden, "admin only")
	}
	if userID <= 0 {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return model.User{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return user, nil
}

func (u *UserUsecase) UpdateRole(ctx context.Context, actingRole model.Role, userID int64, newRole string) (model.User, error) {
	if !u.policy.Allows(actingRole, OpManageUsers) {
		return model.User{}, NewHTTPError(http.StatusForbidden, "admin only")
	}
	if userID <= 0 {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	role := model.Role(newRole)
	switch role {
	case model.RoleUser, model.RoleAdmin:
		// OK
	default:
		return model.User{}, NewHTTPError(http.StatusBadRequest, "invalid role")
	}

	user, err := u.users.UpdateRole(ctx, userID, role)
	if err == repo.ErrNotFound {
		return model.User{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return user, nil
}

func (u *UserUsecase) Delete(ctx context.Context, actingRole model.Role, userID int64) error {
	if !u.policy.Allows(actingRole, OpManageUsers) {
		return NewHTTPError(http.StatusForbidden, "admin only")
	}
	if userID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.users.Delete(ctx, userID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err == repo.ErrConflict {
		// 注文が残っているユーザーは消せない
		return NewHTTPError(http.StatusConflict, "user has orders")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
