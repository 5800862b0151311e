package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type stubIssuer struct{}

func (stubIssuer) Issue(_ model.User, now time.Time) (string, time.Time, error) {
	return "token-abc", now.Add(24 * time.Hour), nil
}

func TestAuthUsecase_Register_Validation(t *testing.T) {
	u := usecase.NewAuthUsecase(&MockUserRepo{}, usecase.NewBcryptHasher(4), stubIssuer{})

	_, err := u.Register(context.Background(), usecase.RegisterInput{Username: "", Email: "a@b.c", Password: "password1"})
	assertErrContains(t, err, "username required")

	_, err = u.Register(context.Background(), usecase.RegisterInput{Username: "alice", Email: "not-an-email", Password: "password1"})
	assertErrContains(t, err, "invalid email")

	_, err = u.Register(context.Background(), usecase.RegisterInput{Username: "alice", Email: "a@b.c", Password: "short"})
	assertErrContains(t, err, "at least 8 characters")
}

func TestAuthUsecase_Register_DefaultsToUserRole(t *testing.T) {
	users := &MockUserRepo{}
	users.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		// 平文は保存しない
		return u.Role == model.RoleUser && u.PasswordHash != "password1"
	})).Return(model.User{ID: 1, Username: "alice", Role: model.RoleUser}, nil)

	u := usecase.NewAuthUsecase(users, usecase.NewBcryptHasher(4), stubIssuer{})

	created, err := u.Register(context.Background(), usecase.RegisterInput{
		Username: " alice ",
		Email:    "alice@example.com",
		Password: "password1",
	})

	assert.NoError(t, err)
	assert.Equal(t, model.RoleUser, created.Role)
	users.AssertExpectations(t)
}

func TestAuthUsecase_Register_DuplicateEmail(t *testing.T) {
	users := &MockUserRepo{}
	users.On("Create", mock.Anything, mock.Anything).
		Return(model.User{}, repo.ErrDuplicate)

	u := usecase.NewAuthUsecase(users, usecase.NewBcryptHasher(4), stubIssuer{})

	_, err := u.Register(context.Background(), usecase.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password1",
	})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Status)
}

func TestAuthUsecase_Login(t *testing.T) {
	hasher := usecase.NewBcryptHasher(4)
	hash, err := hasher.Hash("password1")
	assert.NoError(t, err)

	users := &MockUserRepo{}
	users.On("FindByEmail", mock.Anything, "alice@example.com").
		Return(model.User{ID: 1, Email: "alice@example.com", PasswordHash: hash}, nil)

	u := usecase.NewAuthUsecase(users, hasher, stubIssuer{})

	out, err := u.Login(context.Background(), "alice@example.com", "password1")

	assert.NoError(t, err)
	assert.Equal(t, "token-abc", out.Token)
	assert.Equal(t, int64(1), out.User.ID)
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	hasher := usecase.NewBcryptHasher(4)
	hash, err := hasher.Hash("password1")
	assert.NoError(t, err)

	users := &MockUserRepo{}
	users.On("FindByEmail", mock.Anything, "alice@example.com").
		Return(model.User{ID: 1, PasswordHash: hash}, nil)

	u := usecase.NewAuthUsecase(users, hasher, stubIssuer{})

	_, err = u.Login(context.Background(), "alice@example.com", "wrong-password")

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Status)
	assert.Equal(t, "invalid credentials", he.Message)
}

// emailの有無で応答を変えない
func TestAuthUsecase_Login_UnknownEmail(t *testing.T) {
	users := &MockUserRepo{}
	users.On("FindByEmail", mock.Anything, "ghost@example.com").
		Return(model.User{}, repo.ErrNotFound)

	u := usecase.NewAuthUsecase(users, usecase.NewBcryptHasher(4), stubIssuer{})

	_, err := u.Login(context.Background(), "ghost@example.com", "password1")

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Status)
	assert.Equal(t, "invalid credentials", he.Message)
}
