package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

// ユーザー作成。emailの重複はErrDuplicate。
func (r *UserGormRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		return model.User{}, translatePgError(err)
	}
	return user, nil
}

func (r *UserGormRepository) FindByID(ctx context.Context, userID int64) (model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).First(&u, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, repo.ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

func (r *UserGormRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, repo.ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

func (r *UserGormRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("id asc").Find(&users).Error; err != nil {
		return []model.User{}, err
	}
	return users, nil
}

func (r *UserGormRepository) UpdateRole(ctx context.Context, userID int64, role model.Role) (model.User, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("role", role)
	if res.Error != nil {
		return model.User{}, res.Error
	}
	if res.RowsAffected == 0 {
		return model.User{}, repo.ErrNotFound
	}
	return r.FindByID(ctx, userID)
}

func (r *UserGormRepository) Delete(ctx context.Context, userID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.User{}, userID)
	if res.Error != nil {
		return translatePgError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
