package repository

import (
	"errors"

	repo "app/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// 制約違反をrepositoryのsentinelエラーに変換する。
// ドライバのエラーコードをこの層より上に漏らさない。
func translatePgError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return repo.ErrDuplicate
		case pgForeignKeyViolation:
			return repo.ErrConflict
		}
	}
	return err
}
