package repository

import "errors"

var (
	// 対象の行が見つからない
	ErrNotFound = errors.New("not found")
	// unique制約違反（sku・emailなど）
	ErrDuplicate = errors.New("duplicate")
	// 外部キー制約違反（参照されている行の削除など）
	ErrConflict = errors.New("conflict")
)
