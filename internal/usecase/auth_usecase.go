package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// アクセストークンの発行。実装はmainで組み立てる。
type TokenIssuer interface {
	Issue(user model.User, now time.Time) (token string, expiresAt time.Time, err error)
}

// パスワードのハッシュ化と照合
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash string, password string) bool
}

type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *BcryptHasher) Verify(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

type AuthUsecase struct {
	users  repo.UserRepository
	hasher PasswordHasher
	issuer TokenIssuer
}

func NewAuthUsecase(users repo.UserRepository, hasher PasswordHasher, issuer TokenIssuer) *AuthUsecase {
	return &AuthUsecase{users: users, hasher: hasher, issuer: issuer}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (model.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)

	if username == "" {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "username required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}
	if len(in.Password) < 8 {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "password must be at least 8 characters")
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user, err := u.users.Create(ctx, model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
	})
	if err == repo.ErrDuplicate {
		return model.User{}, NewHTTPError(http.StatusConflict, "email already in use")
	}
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return user, nil
}

type LoginOutput struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      model.User `json:"user"`
}

func (u *AuthUsecase) Login(ctx context.Context, email, password string) (LoginOutput, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return LoginOutput{}, NewHTTPError(http.StatusBadRequest, "email and password required")
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err == repo.ErrNotFound {
		// emailの存在は漏らさない
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !u.hasher.Verify(user.PasswordHash, password) {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	token, expiresAt, err := u.issuer.Issue(user, time.Now())
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return LoginOutput{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}
